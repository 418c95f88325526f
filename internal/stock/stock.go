// Package stock turns persisted stock data into the list of sizes a shopper can
// pick, and decides whether a size/quantity selection may go into the cart.
package stock

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultLabelQuantity is the quantity each label of a bare size list stands for.
const DefaultLabelQuantity = 5

var ErrUnsupportedEncoding = errors.New("stock must be a JSON object, array or null")

// Kind tags which encoding a Source was read from.
type Kind int

const (
	KindNone Kind = iota
	KindMapping
	KindLabelList
)

func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindLabelList:
		return "label_list"
	}
	return "none"
}

// Entry is one size of a mapping as it was stored. Valid is false when the
// stored quantity was not a number.
type Entry struct {
	Size     string
	Quantity int
	Valid    bool
}

// Source is the raw stock representation of a product.
type Source struct {
	kind            Kind
	entries         []Entry
	labels          []string
	defaultQuantity int
}

// SizeStock is one available size and the units on hand.
type SizeStock struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// Mapping builds a size->quantity source in the given order.
func Mapping(entries ...Entry) Source {
	return Source{kind: KindMapping, entries: entries}
}

// MappingOf is a convenience for mappings built in code.
func MappingOf(sizes ...SizeStock) Source {
	entries := make([]Entry, 0, len(sizes))
	for _, s := range sizes {
		entries = append(entries, Entry{Size: s.Size, Quantity: s.Quantity, Valid: true})
	}
	return Mapping(entries...)
}

// LabelList builds a source where every label carries defaultQuantity units.
// A defaultQuantity of 0 marks the whole list out of stock.
func LabelList(defaultQuantity int, labels ...string) Source {
	return Source{kind: KindLabelList, labels: labels, defaultQuantity: defaultQuantity}
}

func (s Source) Kind() Kind { return s.kind }

func (s Source) IsZero() bool { return s.kind == KindNone }

// Normalize returns the sizes with a positive quantity, in source order.
// Empty labels, non-numeric quantities and repeated labels are dropped.
func Normalize(src Source) []SizeStock {
	out := make([]SizeStock, 0)
	seen := make(map[string]struct{})

	add := func(size string, qty int) {
		size = strings.TrimSpace(size)
		if size == "" || qty <= 0 {
			return
		}
		if _, dup := seen[size]; dup {
			return
		}
		seen[size] = struct{}{}
		out = append(out, SizeStock{Size: size, Quantity: qty})
	}

	switch src.kind {
	case KindMapping:
		for _, e := range src.entries {
			if !e.Valid {
				continue
			}
			add(e.Size, e.Quantity)
		}
	case KindLabelList:
		for _, label := range src.labels {
			add(label, src.defaultQuantity)
		}
	}
	return out
}

// Level returns the stored units of size, or 0 when the source does not list it.
func (s Source) Level(size string) int {
	for _, sz := range Normalize(s) {
		if sz.Size == size {
			return sz.Quantity
		}
	}
	return 0
}

// WithLevel returns a mapping with size set to qty. Label lists are expanded to
// their default quantity first; a size the source does not list is appended.
func (s Source) WithLevel(size string, qty int) Source {
	entries := make([]Entry, 0, len(s.entries)+len(s.labels)+1)
	switch s.kind {
	case KindMapping:
		entries = append(entries, s.entries...)
	case KindLabelList:
		seen := make(map[string]struct{}, len(s.labels))
		for _, label := range s.labels {
			label = strings.TrimSpace(label)
			if label == "" {
				continue
			}
			if _, dup := seen[label]; dup {
				continue
			}
			seen[label] = struct{}{}
			entries = append(entries, Entry{Size: label, Quantity: s.defaultQuantity, Valid: true})
		}
	}

	for i, e := range entries {
		if e.Valid && strings.TrimSpace(e.Size) == size {
			entries[i].Quantity = qty
			return Mapping(entries...)
		}
	}
	return Mapping(append(entries, Entry{Size: size, Quantity: qty, Valid: true})...)
}

// DecodeJSON reads a stored stock column. Objects become mappings in document
// order, arrays become label lists carrying defaultQuantity, null or empty input
// becomes KindNone.
func DecodeJSON(raw []byte, defaultQuantity int) (Source, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Source{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return Source{}, err
	}

	switch tok {
	case json.Delim('{'):
		entries := make([]Entry, 0)
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return Source{}, err
			}
			key, _ := keyTok.(string)
			var value json.RawMessage
			if err := dec.Decode(&value); err != nil {
				return Source{}, err
			}
			qty, ok := parseQuantity(value)
			entries = append(entries, Entry{Size: key, Quantity: qty, Valid: ok})
		}
		if _, err := dec.Token(); err != nil {
			return Source{}, err
		}
		return Mapping(entries...), nil
	case json.Delim('['):
		labels := make([]string, 0)
		for dec.More() {
			var value json.RawMessage
			if err := dec.Decode(&value); err != nil {
				return Source{}, err
			}
			var label string
			if err := json.Unmarshal(value, &label); err != nil {
				// non-string labels are kept as empty so Normalize drops them
				label = ""
			}
			labels = append(labels, label)
		}
		if _, err := dec.Token(); err != nil {
			return Source{}, err
		}
		return LabelList(defaultQuantity, labels...), nil
	}
	return Source{}, ErrUnsupportedEncoding
}

func parseQuantity(raw json.RawMessage) (int, bool) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil && f == float64(int64(f)) {
			return int(f), true
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

// MarshalJSON writes mappings as objects (keeping order), label lists as arrays
// and an empty source as null.
func (s Source) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case KindMapping:
		var buf bytes.Buffer
		buf.WriteByte('{')
		first := true
		for _, e := range s.entries {
			if !e.Valid {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			key, err := json.Marshal(e.Size)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			fmt.Fprintf(&buf, ":%d", e.Quantity)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case KindLabelList:
		return json.Marshal(s.labels)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts the same encodings as DecodeJSON, using
// DefaultLabelQuantity for label lists.
func (s *Source) UnmarshalJSON(data []byte) error {
	src, err := DecodeJSON(data, DefaultLabelQuantity)
	if err != nil {
		return err
	}
	*s = src
	return nil
}
