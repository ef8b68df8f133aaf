package http1

import (
	"github.com/valyala/bytebufferpool"
)

// Field is one header field. Name and Value are referenced, not copied.
type Field struct {
	Name  []byte
	Value []byte
}

// Header is an ordered list of fields. Duplicate names are allowed and the
// stored order is the wire order. Name lookups are ASCII case-insensitive.
type Header struct {
	fields []Field
}

func (h *Header) Add(name, value string) {
	h.AddBytes(s2b(name), s2b(value))
}

func (h *Header) AddBytes(name, value []byte) {
	h.fields = append(h.fields, Field{Name: name, Value: value})
}

// Set replaces every field named name with a single field holding value,
// keeping the position of the first occurrence.
func (h *Header) Set(name, value string) {
	for i := range h.fields {
		if eqFold(h.fields[i].Name, name) {
			h.fields[i].Value = s2b(value)
			h.delFrom(i+1, name)
			return
		}
	}
	h.Add(name, value)
}

// Get returns the value of the first field named name, or nil.
func (h *Header) Get(name string) []byte {
	for _, f := range h.fields {
		if eqFold(f.Name, name) {
			return f.Value
		}
	}
	return nil
}

// Values returns the values of every field named name, in order.
func (h *Header) Values(name string) [][]byte {
	var values [][]byte
	for _, f := range h.fields {
		if eqFold(f.Name, name) {
			values = append(values, f.Value)
		}
	}
	return values
}

func (h *Header) Has(name string) bool {
	return h.Get(name) != nil
}

func (h *Header) Del(name string) {
	h.delFrom(0, name)
}

func (h *Header) delFrom(i int, name string) {
	kept := h.fields[:i]
	for _, f := range h.fields[i:] {
		if !eqFold(f.Name, name) {
			kept = append(kept, f)
		}
	}
	h.fields = kept
}

// Len returns the number of fields.
func (h *Header) Len() int {
	return len(h.fields)
}

// Fields returns the ordered field list. The slice is owned by the Header.
func (h *Header) Fields() []Field {
	return h.fields
}

func (h *Header) Reset() {
	h.fields = h.fields[:0]
}

// String renders the field block (no start-line, no terminating blank line)
// for diagnostics.
func (h *Header) String() string {
	buf := headBufPool.Get()
	defer headBufPool.Put(buf)
	for _, f := range h.fields {
		buf.B = appendLine(buf.B, f.Name, f.Value)
	}
	return string(buf.B)
}

var headBufPool bytebufferpool.Pool
