package rlp

import (
	"fmt"
	"io"
	"math/big"
	"reflect"
)

// Kind identifies the shape of the next RLP item in a Stream.
type Kind int

const (
	Byte Kind = iota
	String
	List
)

// Decode parses RLP-encoded data into val, which must be a non-nil
// pointer. It accepts non-canonical encodings (non-minimal length
// prefixes, leading zero bytes) by default, matching the permissive
// decoders most of the ecosystem ships; use DecodeStrict to reject
// anything that isn't the unique canonical encoding.
func Decode(data []byte, val interface{}) error {
	return decodeWith(NewStream(data), val)
}

// DecodeStrict is Decode, but rejects any non-canonical encoding
// (ErrCanonSize, ErrCanonInt, ErrNonCanonicalSize) instead of accepting it.
func DecodeStrict(data []byte, val interface{}) error {
	return decodeWith(NewStrictStream(data), val)
}

func decodeWith(s *Stream, val interface{}) error {
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("rlp: Decode requires a non-nil pointer")
	}
	if err := s.decodeInto(rv.Elem()); err != nil {
		return err
	}
	if s.pos != len(s.data) {
		return ErrMoreThanOneElement
	}
	return nil
}

// DecodeBytes is Decode operating directly on a byte slice without
// requiring the caller to build a Stream.
func DecodeBytes(data []byte, val interface{}) error { return Decode(data, val) }

// IsCanonical reports whether data is, in its entirety, the unique
// canonical RLP encoding of some value: every length prefix uses the
// shortest form, every long-form size has no leading zero byte, and
// every long-form string/list payload exceeds 55 bytes (the point at
// which the short form stops being available). It recurses into list
// payloads, since a non-canonical encoding nested inside an otherwise
// canonical list still makes the whole buffer non-canonical.
func IsCanonical(data []byte) bool {
	n, ok := canonicalItemLen(data)
	return ok && n == len(data)
}

func canonicalItemLen(b []byte) (int, bool) {
	it, err := readItem(b, true)
	if err != nil {
		return 0, false
	}
	if it.kind == List {
		pos := 0
		for pos < len(it.content) {
			n, ok := canonicalItemLen(it.content[pos:])
			if !ok {
				return 0, false
			}
			pos += n
		}
		if pos != len(it.content) {
			return 0, false
		}
	}
	return it.consumed, true
}

// listFrame tracks the byte range of a list the Stream has entered.
type listFrame struct {
	end int
}

// Stream is a cursor over an RLP byte buffer supporting incremental,
// nested decoding. By default it is lenient, accepting non-canonical
// length prefixes; NewStrictStream produces one that rejects them.
type Stream struct {
	data   []byte
	pos    int
	stack  []listFrame
	strict bool
}

// NewStream wraps data for incremental, lenient decoding.
func NewStream(data []byte) *Stream {
	return &Stream{data: data}
}

// NewStrictStream wraps data for incremental decoding that rejects any
// non-canonical length prefix or leading-zero integer encoding.
func NewStrictStream(data []byte) *Stream {
	return &Stream{data: data, strict: true}
}

func newByteStream(data []byte) *Stream { return NewStream(data) }

// item describes one decoded RLP element.
type item struct {
	kind     Kind
	content  []byte // payload (for Byte/String) or raw list body (for List)
	consumed int     // total bytes consumed including the prefix
}

// Kind peeks at the next item without consuming it, reporting its kind
// and payload size.
func (s *Stream) Kind() (Kind, uint64, error) {
	it, err := s.peekItem()
	if err != nil {
		return 0, 0, err
	}
	return it.kind, uint64(len(it.content)), nil
}

func (s *Stream) remaining() []byte {
	end := len(s.data)
	if len(s.stack) > 0 {
		end = s.stack[len(s.stack)-1].end
	}
	if s.pos > end {
		return nil
	}
	return s.data[s.pos:end]
}

func (s *Stream) peekItem() (item, error) {
	return readItem(s.remaining(), s.strict)
}

// readItem decodes the single RLP item prefix at the start of b. When
// strict is true it enforces canonical-form rules:
//   - a single byte < 0x80 must not be wrapped in a 1-byte string form
//   - lengths must not carry leading zero bytes
//   - the short form must be used whenever the payload fits in 55 bytes
//
// When strict is false, these same shapes are accepted: the prefix is
// still decoded to find the payload boundaries, it is just not treated
// as an error for the encoding to be non-minimal.
func readItem(b []byte, strict bool) (item, error) {
	if len(b) == 0 {
		return item{}, io.ErrUnexpectedEOF
	}
	tag := b[0]

	switch {
	case tag < 0x80:
		return item{kind: Byte, content: b[0:1], consumed: 1}, nil

	case tag < 0xb8:
		size := int(tag - 0x80)
		if strict && size == 1 && len(b) > 1 && b[1] < 0x80 {
			return item{}, ErrCanonSize
		}
		if len(b) < 1+size {
			return item{}, io.ErrUnexpectedEOF
		}
		return item{kind: String, content: b[1 : 1+size], consumed: 1 + size}, nil

	case tag < 0xc0:
		lenOfLen := int(tag - 0xb7)
		if len(b) < 1+lenOfLen {
			return item{}, io.ErrUnexpectedEOF
		}
		sizeBytes := b[1 : 1+lenOfLen]
		if strict && sizeBytes[0] == 0 {
			return item{}, ErrCanonInt
		}
		size, err := readBigEndianInt(sizeBytes)
		if err != nil {
			return item{}, err
		}
		if strict && size <= 55 {
			return item{}, ErrNonCanonicalSize
		}
		start := 1 + lenOfLen
		if len(b) < start+size {
			return item{}, io.ErrUnexpectedEOF
		}
		return item{kind: String, content: b[start : start+size], consumed: start + size}, nil

	case tag < 0xf8:
		size := int(tag - 0xc0)
		if len(b) < 1+size {
			return item{}, io.ErrUnexpectedEOF
		}
		return item{kind: List, content: b[1 : 1+size], consumed: 1 + size}, nil

	default:
		lenOfLen := int(tag - 0xf7)
		if len(b) < 1+lenOfLen {
			return item{}, io.ErrUnexpectedEOF
		}
		sizeBytes := b[1 : 1+lenOfLen]
		if strict && sizeBytes[0] == 0 {
			return item{}, ErrCanonInt
		}
		size, err := readBigEndianInt(sizeBytes)
		if err != nil {
			return item{}, err
		}
		if strict && size <= 55 {
			return item{}, ErrNonCanonicalSize
		}
		start := 1 + lenOfLen
		if len(b) < start+size {
			return item{}, io.ErrUnexpectedEOF
		}
		return item{kind: List, content: b[start : start+size], consumed: start + size}, nil
	}
}

func readBigEndianInt(b []byte) (int, error) {
	if len(b) > 8 {
		return 0, ErrValueTooLarge
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	if v > 1<<31 {
		return 0, ErrValueTooLarge
	}
	return int(v), nil
}

// Bytes consumes and returns the next string item's raw bytes.
func (s *Stream) Bytes() ([]byte, error) {
	it, err := s.peekItem()
	if err != nil {
		return nil, err
	}
	if it.kind == List {
		return nil, ErrExpectedString
	}
	s.pos += it.consumed
	out := make([]byte, len(it.content))
	copy(out, it.content)
	return out, nil
}

// List enters the next list item, returning its declared byte size.
func (s *Stream) List() (uint64, error) {
	it, err := s.peekItem()
	if err != nil {
		return 0, err
	}
	if it.kind != List {
		return 0, ErrExpectedList
	}
	contentStart := s.pos + (it.consumed - len(it.content))
	s.stack = append(s.stack, listFrame{end: contentStart + len(it.content)})
	s.pos = contentStart
	return uint64(len(it.content)), nil
}

// ListEnd exits the current list scope, skipping any unread trailing
// elements within it.
func (s *Stream) ListEnd() error {
	if len(s.stack) == 0 {
		return fmt.Errorf("rlp: ListEnd called outside of a list")
	}
	frame := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.pos = frame.end
	return nil
}

// MoreDataInList reports whether the current list scope has unread bytes.
func (s *Stream) MoreDataInList() bool {
	if len(s.stack) == 0 {
		return s.pos < len(s.data)
	}
	return s.pos < s.stack[len(s.stack)-1].end
}

// Uint64 consumes and decodes the next string item as a uint64,
// rejecting values that don't fit in 64 bits and, in strict mode,
// non-canonical (leading-zero) encodings.
func (s *Stream) Uint64() (uint64, error) {
	b, err := s.Bytes()
	if err != nil {
		return 0, err
	}
	if len(b) > 8 {
		return 0, ErrUint64Range
	}
	if s.strict && len(b) > 0 && b[0] == 0 {
		return 0, ErrCanonInt
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

// BigInt consumes and decodes the next string item as a *big.Int.
func (s *Stream) BigInt() (*big.Int, error) {
	b, err := s.Bytes()
	if err != nil {
		return nil, err
	}
	if s.strict && len(b) > 0 && b[0] == 0 {
		return nil, ErrCanonInt
	}
	return new(big.Int).SetBytes(b), nil
}

func (s *Stream) decodeInto(v reflect.Value) error {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}

	if bi, ok := v.Addr().Interface().(*big.Int); ok {
		parsed, err := s.BigInt()
		if err != nil {
			return err
		}
		bi.Set(parsed)
		return nil
	}

	switch v.Kind() {
	case reflect.Bool:
		b, err := s.Bytes()
		if err != nil {
			return err
		}
		v.SetBool(len(b) == 1 && b[0] == 1)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := s.Uint64()
		if err != nil {
			return err
		}
		v.SetUint(u)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		u, err := s.Uint64()
		if err != nil {
			return err
		}
		v.SetInt(int64(u))
		return nil
	case reflect.String:
		b, err := s.Bytes()
		if err != nil {
			return err
		}
		v.SetString(string(b))
		return nil
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b, err := s.Bytes()
			if err != nil {
				return err
			}
			return setBytes(v, b)
		}
		return s.decodeList(v)
	case reflect.Struct:
		return s.decodeStruct(v)
	default:
		return fmt.Errorf("rlp: unsupported type %s", v.Type())
	}
}

func setBytes(v reflect.Value, b []byte) error {
	if v.Kind() == reflect.Array {
		if len(b) != v.Len() {
			return ErrValueTooLarge
		}
		reflect.Copy(v, reflect.ValueOf(b))
		return nil
	}
	v.Set(reflect.MakeSlice(v.Type(), len(b), len(b)))
	reflect.Copy(v, reflect.ValueOf(b))
	return nil
}

func (s *Stream) decodeList(v reflect.Value) error {
	if _, err := s.List(); err != nil {
		return err
	}
	elemType := v.Type().Elem()
	var elems []reflect.Value
	for s.MoreDataInList() {
		elem := reflect.New(elemType).Elem()
		if err := s.decodeInto(elem); err != nil {
			return err
		}
		elems = append(elems, elem)
	}
	if err := s.ListEnd(); err != nil {
		return err
	}
	if v.Kind() == reflect.Array {
		if len(elems) != v.Len() {
			return ErrValueTooLarge
		}
		for i, e := range elems {
			v.Index(i).Set(e)
		}
		return nil
	}
	slice := reflect.MakeSlice(v.Type(), len(elems), len(elems))
	for i, e := range elems {
		slice.Index(i).Set(e)
	}
	v.Set(slice)
	return nil
}

func (s *Stream) decodeStruct(v reflect.Value) error {
	if _, err := s.List(); err != nil {
		return err
	}
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		if tag := field.Tag.Get("rlp"); tag == "-" {
			continue
		}
		if err := s.decodeInto(v.Field(i)); err != nil {
			return fmt.Errorf("rlp: field %s: %w", field.Name, err)
		}
	}
	return s.ListEnd()
}
