package document

import (
	"bytes"
	"slices"

	"github.com/dustin/go-humanize"
)

// Kind identifies which background variant is active.
type Kind int

const (
	KindBlank Kind = iota
	KindImageData
	KindURL
)

func (k Kind) String() string {
	switch k {
	case KindImageData:
		return "imageData"
	case KindURL:
		return "url"
	default:
		return "blank"
	}
}

// Background is the canvas backdrop. Exactly one variant is active; the zero
// value is Blank.
type Background struct {
	kind    Kind
	data    []byte
	address string
}

// Blank returns the empty background.
func Blank() Background {
	return Background{}
}

// ImageData returns a background embedding raw image bytes.
func ImageData(data []byte) Background {
	return Background{kind: KindImageData, data: bytes.Clone(data)}
}

// URL returns a background that must be fetched from address.
func URL(address string) Background {
	return Background{kind: KindURL, address: address}
}

// Kind reports the active variant.
func (b Background) Kind() Kind { return b.kind }

// Data returns a copy of the embedded bytes; nil unless Kind is KindImageData.
func (b Background) Data() []byte { return bytes.Clone(b.data) }

// Address returns the remote address; empty unless Kind is KindURL.
func (b Background) Address() string { return b.address }

// Equal compares two backgrounds by value.
func (b Background) Equal(other Background) bool {
	if b.kind != other.kind {
		return false
	}
	switch b.kind {
	case KindImageData:
		return bytes.Equal(b.data, other.data)
	case KindURL:
		return b.address == other.address
	default:
		return true
	}
}

func (b Background) String() string {
	switch b.kind {
	case KindImageData:
		return "imageData(" + humanize.IBytes(uint64(len(b.data))) + ")"
	case KindURL:
		return "url(" + b.address + ")"
	default:
		return "blank"
	}
}

// Sticker is a glyph placed on the canvas. X and Y are offsets from the canvas
// center.
type Sticker struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Size int    `json:"size"`
}

// Document is the persisted aggregate of background and stickers.
type Document struct {
	Background Background
	Stickers   []Sticker

	// lastID is the highest sticker ID ever handed out, so removed IDs are
	// never reissued.
	lastID int
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	dup := d
	dup.Background = Background{kind: d.Background.kind, data: bytes.Clone(d.Background.data), address: d.Background.address}
	dup.Stickers = slices.Clone(d.Stickers)
	return dup
}

// Equal reports whether two documents hold the same background and stickers.
func (d Document) Equal(other Document) bool {
	return d.Background.Equal(other.Background) && slices.Equal(d.Stickers, other.Stickers)
}

// Index returns the position of the sticker with id, or -1.
func (d Document) Index(id int) int {
	return slices.IndexFunc(d.Stickers, func(s Sticker) bool { return s.ID == id })
}

// NextStickerID returns the ID the next added sticker will receive.
func (d Document) NextStickerID() int {
	return max(d.lastID, d.maxID()) + 1
}

// AddSticker appends a sticker with a freshly allocated ID and returns it.
// Callers pass a positive size; the value is stored as given.
func (d *Document) AddSticker(text string, x, y, size int) Sticker {
	s := Sticker{ID: d.NextStickerID(), Text: text, X: x, Y: y, Size: size}
	d.lastID = s.ID
	d.Stickers = append(d.Stickers, s)
	return s
}

func (d Document) maxID() int {
	highest := 0
	for _, s := range d.Stickers {
		highest = max(highest, s.ID)
	}
	return highest
}
