package palette

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/stickerboard/internal/storage"
)

const (
	keyPrefix      = "PaletteStore"
	storageTimeout = 10 * time.Second
)

// Store is an ordered, persisted collection of palettes. It is safe for
// concurrent use.
type Store struct {
	name string
	kv   storage.Store
	log  logrus.FieldLogger

	mu       sync.Mutex
	palettes []Palette
}

// Open restores the palettes stored under name, seeding the defaults when
// nothing usable is stored.
func Open(ctx context.Context, kv storage.Store, name string, logger logrus.FieldLogger) *Store {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Store{
		name: name,
		kv:   kv,
		log:  logger.WithFields(logrus.Fields{"component": "palette", "store": name}),
	}
	s.palettes = s.restore(ctx)
	if len(s.palettes) == 0 {
		s.log.Info("seeding default palettes")
		for _, d := range defaults {
			s.Insert(d.name, d.emojis, 0)
		}
	} else {
		s.log.WithField("palettes", len(s.palettes)).Info("restored palettes")
	}
	return s
}

// Key returns the storage key for a store called name. The name is
// path-escaped so names containing separators stay a single key.
func Key(name string) string {
	return keyPrefix + url.PathEscape(name)
}

func (s *Store) restore(ctx context.Context) []Palette {
	data, err := s.kv.Get(ctx, Key(s.name))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).Warn("load palettes failed")
		}
		return nil
	}
	var palettes []Palette
	if err := json.Unmarshal(data, &palettes); err != nil {
		s.log.WithError(err).Warn("stored palettes are unreadable")
		return nil
	}
	return reassignDuplicates(palettes, s.log)
}

// reassignDuplicates gives every palette whose ID was already seen a fresh
// one above the current maximum.
func reassignDuplicates(palettes []Palette, log logrus.FieldLogger) []Palette {
	next := maxID(palettes) + 1
	seen := make(map[int]struct{}, len(palettes))
	for i := range palettes {
		if _, dup := seen[palettes[i].ID]; dup {
			log.WithFields(logrus.Fields{"palette": palettes[i].Name, "id": palettes[i].ID, "new_id": next}).
				Warn("duplicate palette id reassigned")
			palettes[i].ID = next
			next++
		}
		seen[palettes[i].ID] = struct{}{}
	}
	return palettes
}

func maxID(palettes []Palette) int {
	m := 0
	for _, p := range palettes {
		m = max(m, p.ID)
	}
	return m
}

// Len returns the number of palettes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.palettes)
}

// All returns a copy of the palettes in display order.
func (s *Store) All() []Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.palettes)
}

// PaletteAt returns the palette at index, clamped into range. An empty store
// yields the zero Palette.
func (s *Store) PaletteAt(index int) Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.palettes) == 0 {
		return Palette{}
	}
	return s.palettes[clamp(index, 0, len(s.palettes)-1)]
}

// Insert adds a palette at index, clamped to [0, Len()], and returns it.
func (s *Store) Insert(name, emojis string, index int) Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := Palette{Name: name, Emojis: emojis, ID: maxID(s.palettes) + 1}
	s.palettes = slices.Insert(s.palettes, clamp(index, 0, len(s.palettes)), p)
	s.persist()
	return p
}

// Remove deletes the palette at index unless it is the last one or index is
// out of range. It returns index modulo the resulting count as the
// suggested next focus.
func (s *Store) Remove(index int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.palettes) > 1 && index >= 0 && index < len(s.palettes) {
		s.palettes = slices.Delete(s.palettes, index, index+1)
		s.persist()
	}
	if len(s.palettes) == 0 {
		return 0
	}
	return index % len(s.palettes)
}

// Rename changes the name of the palette at index. Invalid indexes are
// ignored.
func (s *Store) Rename(index int, name string) {
	s.edit(index, func(p *Palette) bool {
		if p.Name == name {
			return false
		}
		p.Name = name
		return true
	})
}

// AddEmojis prepends glyphs the palette at index does not already contain.
func (s *Store) AddEmojis(index int, emojis string) {
	s.edit(index, func(p *Palette) bool {
		merged := merge(p.Emojis, emojis)
		if merged == p.Emojis {
			return false
		}
		p.Emojis = merged
		return true
	})
}

// RemoveEmoji drops every occurrence of glyph from the palette at index.
func (s *Store) RemoveEmoji(index int, glyph string) {
	s.edit(index, func(p *Palette) bool {
		trimmed := without(p.Emojis, glyph)
		if trimmed == p.Emojis {
			return false
		}
		p.Emojis = trimmed
		return true
	})
}

func (s *Store) edit(index int, change func(p *Palette) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.palettes) {
		return
	}
	if change(&s.palettes[index]) {
		s.persist()
	}
}

// persist writes the whole collection. Callers hold mu.
func (s *Store) persist() {
	data, err := json.Marshal(s.palettes)
	if err != nil {
		s.log.WithError(err).Error("encode palettes failed")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	if err := s.kv.Set(ctx, Key(s.name), data); err != nil {
		s.log.WithError(err).Error("persist palettes failed")
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
