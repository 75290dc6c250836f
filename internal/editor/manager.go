package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/stickerboard/internal/document"
	"github.com/five82/stickerboard/internal/fetch"
	"github.com/five82/stickerboard/internal/storage"
)

// FetchStatus reports whether a URL background is being fetched.
type FetchStatus int

const (
	StatusIdle FetchStatus = iota
	StatusFetching
)

func (s FetchStatus) String() string {
	if s == StatusFetching {
		return "fetching"
	}
	return "idle"
}

const (
	// DefaultAutosaveKey is the storage key the document is autosaved under.
	DefaultAutosaveKey = "autosaved.stickerboard"

	// DefaultAutosaveDelay is the quiet period before a coalesced autosave.
	DefaultAutosaveDelay = 5 * time.Second

	eventBuffer    = 16
	storageTimeout = 10 * time.Second
)

// Options configure a Manager. Storage is required.
type Options struct {
	Storage       storage.Store
	AutosaveKey   string
	AutosaveDelay time.Duration
	Fetcher       fetch.Fetcher
	Decoder       fetch.Decoder
	Clock         Clock
	Logger        logrus.FieldLogger
}

// Manager owns the document being edited and its derived state.
//
// A Manager is not safe for concurrent use. One goroutine owns it, calls its
// intents, and feeds every value received from Events back into Handle.
// Background fetches and autosave timers never touch the manager directly.
type Manager struct {
	store   storage.Store
	key     string
	delay   time.Duration
	fetcher fetch.Fetcher
	decode  fetch.Decoder
	clock   Clock
	log     logrus.FieldLogger

	ctx    context.Context
	cancel context.CancelFunc
	events chan Event
	done   chan struct{}
	closed bool

	doc       document.Document
	selection map[int]struct{}
	status    FetchStatus
	image     image.Image
	epoch     uint64

	autosave Timer
	saveGen  uint64
}

// New builds a Manager and restores the autosaved document, if any. A
// restored document immediately starts resolving its background.
func New(ctx context.Context, opts Options) (*Manager, error) {
	if opts.Storage == nil {
		return nil, errors.New("editor requires a storage backend")
	}
	if opts.AutosaveKey == "" {
		opts.AutosaveKey = DefaultAutosaveKey
	}
	if opts.AutosaveDelay <= 0 {
		opts.AutosaveDelay = DefaultAutosaveDelay
	}
	if opts.Fetcher == nil {
		opts.Fetcher = fetch.NewClient(0)
	}
	if opts.Decoder == nil {
		opts.Decoder = fetch.Decode
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	runCtx, cancel := context.WithCancel(ctx)
	m := &Manager{
		store:     opts.Storage,
		key:       opts.AutosaveKey,
		delay:     opts.AutosaveDelay,
		fetcher:   opts.Fetcher,
		decode:    opts.Decoder,
		clock:     opts.Clock,
		log:       opts.Logger.WithField("component", "editor"),
		ctx:       runCtx,
		cancel:    cancel,
		events:    make(chan Event, eventBuffer),
		done:      make(chan struct{}),
		selection: make(map[int]struct{}),
	}

	if doc, ok := m.restore(ctx); ok {
		m.doc = doc
		m.resolveBackground()
	}
	return m, nil
}

func (m *Manager) restore(ctx context.Context) (document.Document, bool) {
	log := m.log.WithField("key", m.key)
	data, err := m.store.Get(ctx, m.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Debug("no autosaved document, starting empty")
		} else {
			log.WithError(err).Warn("load autosaved document failed, starting empty")
		}
		return document.Document{}, false
	}
	doc, err := document.Decode(data)
	if err != nil {
		log.WithError(err).Warn("autosaved document is unreadable, starting empty")
		return document.Document{}, false
	}
	log.WithField("stickers", len(doc.Stickers)).Info("restored autosaved document")
	return doc, true
}

// Events delivers asynchronous results that must be passed to Handle.
func (m *Manager) Events() <-chan Event {
	return m.events
}

// Handle applies an event received from Events.
func (m *Manager) Handle(ev Event) {
	switch ev := ev.(type) {
	case fetchResult:
		m.applyFetch(ev)
	case autosaveDue:
		if ev.gen != m.saveGen || m.autosave == nil {
			return
		}
		m.autosave = nil
		_ = m.save()
	}
}

// Close flushes a pending autosave and stops background work. The manager
// must not be used afterwards.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	var err error
	if m.autosave != nil {
		m.autosave.Stop()
		m.autosave = nil
		err = m.save()
	}
	m.cancel()
	close(m.done)
	return err
}

// Document returns a copy of the current document.
func (m *Manager) Document() document.Document { return m.doc.Clone() }

// Background returns the current background.
func (m *Manager) Background() document.Background { return m.doc.Background }

// Stickers returns a copy of the stickers in insertion order.
func (m *Manager) Stickers() []document.Sticker { return slices.Clone(m.doc.Stickers) }

// Sticker looks up a sticker by ID.
func (m *Manager) Sticker(id int) (document.Sticker, bool) {
	i := m.doc.Index(id)
	if i < 0 {
		return document.Sticker{}, false
	}
	return m.doc.Stickers[i], true
}

// BackgroundImage returns the decoded background, or nil.
func (m *Manager) BackgroundImage() image.Image { return m.image }

// FetchStatus reports the background fetch state.
func (m *Manager) FetchStatus() FetchStatus { return m.status }

// AutosavePending reports whether a change is waiting to be written.
func (m *Manager) AutosavePending() bool { return m.autosave != nil }

// SetBackground replaces the background.
func (m *Manager) SetBackground(bg document.Background) {
	m.update(func(d *document.Document) bool {
		d.Background = bg
		return true
	})
	m.log.WithField("background", bg.String()).Debug("background set")
}

// AddSticker appends a sticker and returns its ID. Size should be positive at
// creation; later scaling may take it to zero or below.
func (m *Manager) AddSticker(text string, x, y, size int) int {
	var id int
	m.update(func(d *document.Document) bool {
		id = d.AddSticker(text, x, y, size).ID
		return true
	})
	return id
}

// MoveSticker offsets the sticker with id. Unknown IDs are ignored.
func (m *Manager) MoveSticker(id, dx, dy int) {
	m.update(func(d *document.Document) bool {
		return move(d, id, dx, dy)
	})
}

// MoveSelected offsets every selected sticker.
func (m *Manager) MoveSelected(dx, dy int) {
	m.update(func(d *document.Document) bool {
		moved := false
		for _, id := range m.Selection() {
			moved = move(d, id, dx, dy) || moved
		}
		return moved
	})
}

// ScaleSticker multiplies the sticker's size by factor, rounding half away
// from zero. The result is not clamped. A NaN or infinite factor is ignored.
func (m *Manager) ScaleSticker(id int, factor float64) {
	m.update(func(d *document.Document) bool {
		return scale(d, id, factor)
	})
}

// ScaleSelected scales every selected sticker.
func (m *Manager) ScaleSelected(factor float64) {
	m.update(func(d *document.Document) bool {
		scaled := false
		for _, id := range m.Selection() {
			scaled = scale(d, id, factor) || scaled
		}
		return scaled
	})
}

// RemoveSelected deletes the selected stickers and clears the selection.
func (m *Manager) RemoveSelected() {
	if len(m.selection) == 0 {
		return
	}
	m.update(func(d *document.Document) bool {
		before := len(d.Stickers)
		d.Stickers = slices.DeleteFunc(d.Stickers, func(s document.Sticker) bool {
			_, ok := m.selection[s.ID]
			return ok
		})
		return len(d.Stickers) != before
	})
	clear(m.selection)
}

// ToggleSelection adds id to the selection, or removes it if present.
func (m *Manager) ToggleSelection(id int) {
	if _, ok := m.selection[id]; ok {
		delete(m.selection, id)
		return
	}
	m.selection[id] = struct{}{}
}

// ClearSelection deselects everything.
func (m *Manager) ClearSelection() {
	clear(m.selection)
}

// IsSelected reports whether id is selected.
func (m *Manager) IsSelected(id int) bool {
	_, ok := m.selection[id]
	return ok
}

// Selection returns the selected IDs in ascending order. It may include IDs
// of stickers that no longer exist.
func (m *Manager) Selection() []int {
	ids := make([]int, 0, len(m.selection))
	for id := range m.selection {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func move(d *document.Document, id, dx, dy int) bool {
	i := d.Index(id)
	if i < 0 {
		return false
	}
	d.Stickers[i].X += dx
	d.Stickers[i].Y += dy
	return true
}

func scale(d *document.Document, id int, factor float64) bool {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return false
	}
	i := d.Index(id)
	if i < 0 {
		return false
	}
	d.Stickers[i].Size = int(math.Round(float64(d.Stickers[i].Size) * factor))
	return true
}

// update runs mutate against the document and, if it reports a change, fires
// the side effects: re-arm the autosave and, when the background changed,
// start resolving the new one.
func (m *Manager) update(mutate func(d *document.Document) bool) {
	prev := m.doc.Background
	if !mutate(&m.doc) {
		return
	}
	m.scheduleAutosave()
	if !prev.Equal(m.doc.Background) {
		m.resolveBackground()
	}
}

func (m *Manager) scheduleAutosave() {
	if m.closed {
		return
	}
	if m.autosave != nil {
		m.autosave.Stop()
	}
	m.saveGen++
	gen := m.saveGen
	m.autosave = m.clock.AfterFunc(m.delay, func() {
		m.post(autosaveDue{gen: gen})
	})
}

func (m *Manager) save() error {
	log := m.log.WithField("key", m.key)
	data, err := m.doc.Encode()
	if err != nil {
		log.WithError(err).Error("autosave encode failed")
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	if err := m.store.Set(ctx, m.key, data); err != nil {
		log.WithError(err).Error("autosave write failed")
		return fmt.Errorf("autosave: %w", err)
	}
	log.WithField("bytes", len(data)).Debug("autosaved")
	return nil
}

// resolveBackground starts a new resolution epoch for the current background.
func (m *Manager) resolveBackground() {
	m.epoch++
	m.image = nil

	bg := m.doc.Background
	switch bg.Kind() {
	case document.KindURL:
		m.status = StatusFetching
		go m.fetch(m.epoch, bg.Address())
	case document.KindImageData:
		m.status = StatusIdle
		m.image = m.decodeImage(bg.Data(), "embedded")
	default:
		m.status = StatusIdle
	}
}

// fetch runs on its own goroutine and only performs I/O.
func (m *Manager) fetch(epoch uint64, url string) {
	data, err := m.fetcher.Fetch(m.ctx, url)
	m.post(fetchResult{epoch: epoch, url: url, data: data, err: err})
}

func (m *Manager) applyFetch(res fetchResult) {
	log := m.log.WithFields(logrus.Fields{"url": res.url, "epoch": res.epoch})
	if res.epoch != m.epoch {
		log.Debug("discarding superseded background fetch")
		return
	}
	m.status = StatusIdle
	if res.err != nil {
		log.WithError(res.err).Warn("background fetch failed")
		return
	}
	m.image = m.decodeImage(res.data, res.url)
}

func (m *Manager) decodeImage(data []byte, source string) image.Image {
	img, err := m.decode(data)
	if err != nil {
		m.log.WithError(err).WithField("source", source).Warn("background decode failed")
		return nil
	}
	return img
}

func (m *Manager) post(ev Event) {
	select {
	case m.events <- ev:
	case <-m.done:
	}
}
