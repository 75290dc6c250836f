package document

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidDocument is returned by Decode for payloads that parse but violate
// the document's invariants.
var ErrInvalidDocument = errors.New("invalid document")

type backgroundJSON struct {
	Kind string `json:"kind"`
	URL  string `json:"url,omitempty"`
	Data []byte `json:"data,omitempty"`
}

type documentJSON struct {
	Background Background `json:"background"`
	Stickers   []Sticker  `json:"stickers"`
	LastID     int        `json:"lastStickerId,omitempty"`
}

// MarshalJSON encodes the background as a tagged object.
func (b Background) MarshalJSON() ([]byte, error) {
	return json.Marshal(backgroundJSON{Kind: b.kind.String(), URL: b.address, Data: b.data})
}

// UnmarshalJSON decodes a tagged background object.
func (b *Background) UnmarshalJSON(data []byte) error {
	var raw backgroundJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	bg, err := raw.background()
	if err != nil {
		return err
	}
	*b = bg
	return nil
}

func (raw backgroundJSON) background() (Background, error) {
	switch raw.Kind {
	case "", "blank":
		return Blank(), nil
	case "imageData":
		return ImageData(raw.Data), nil
	case "url":
		if raw.URL == "" {
			return Background{}, fmt.Errorf("%w: url background without address", ErrInvalidDocument)
		}
		return URL(raw.URL), nil
	default:
		return Background{}, fmt.Errorf("%w: unknown background kind %q", ErrInvalidDocument, raw.Kind)
	}
}

// Encode serializes the document.
func (d Document) Encode() ([]byte, error) {
	stickers := d.Stickers
	if stickers == nil {
		stickers = []Sticker{}
	}
	payload := documentJSON{
		Background: d.Background,
		Stickers:   stickers,
		LastID:     max(d.lastID, d.maxID()),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Decode parses a document produced by Encode.
func Decode(data []byte) (Document, error) {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}

	seen := make(map[int]struct{}, len(raw.Stickers))
	for _, s := range raw.Stickers {
		if _, dup := seen[s.ID]; dup {
			return Document{}, fmt.Errorf("decode document: %w: duplicate sticker id %d", ErrInvalidDocument, s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	doc := Document{Background: raw.Background, Stickers: raw.Stickers, lastID: raw.LastID}
	doc.lastID = max(doc.lastID, doc.maxID())
	return doc, nil
}
