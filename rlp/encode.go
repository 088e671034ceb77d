package rlp

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"reflect"
)

// Encode writes the canonical RLP encoding of val to w.
func Encode(w io.Writer, val interface{}) error {
	buf := new(bytes.Buffer)
	if err := encodeValue(buf, reflect.ValueOf(val)); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// EncodeToBytes returns the canonical RLP encoding of val.
func EncodeToBytes(val interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := encodeValue(buf, reflect.ValueOf(val)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v reflect.Value) error {
	if !v.IsValid() {
		buf.WriteByte(0x80)
		return nil
	}
	for v.Kind() == reflect.Interface {
		v = v.Elem()
		if !v.IsValid() {
			buf.WriteByte(0x80)
			return nil
		}
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			buf.WriteByte(0x80)
			return nil
		}
		if bi, ok := v.Interface().(*big.Int); ok {
			return encodeBigInt(buf, bi)
		}
		return encodeValue(buf, v.Elem())
	}
	if bi, ok := v.Interface().(big.Int); ok {
		return encodeBigInt(buf, &bi)
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			buf.WriteByte(0x01)
		} else {
			buf.WriteByte(0x80)
		}
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return encodeUint(buf, v.Uint())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := v.Int()
		if i < 0 {
			return fmt.Errorf("rlp: cannot encode negative integer %d", i)
		}
		return encodeUint(buf, uint64(i))
	case reflect.String:
		return encodeString(buf, []byte(v.String()))
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return encodeString(buf, toBytes(v))
		}
		return encodeList(buf, v)
	case reflect.Struct:
		return encodeStruct(buf, v)
	default:
		return fmt.Errorf("rlp: unsupported type %s", v.Type())
	}
}

func toBytes(v reflect.Value) []byte {
	if v.Kind() == reflect.Slice {
		return v.Bytes()
	}
	b := make([]byte, v.Len())
	reflect.Copy(reflect.ValueOf(b), v)
	return b
}

func encodeUint(buf *bytes.Buffer, i uint64) error {
	if i == 0 {
		buf.WriteByte(0x80)
		return nil
	}
	if i < 0x80 {
		buf.WriteByte(byte(i))
		return nil
	}
	var b [8]byte
	n := putUintBigEndian(b[:], i)
	return encodeString(buf, b[8-n:])
}

func encodeBigInt(buf *bytes.Buffer, i *big.Int) error {
	if i.Sign() < 0 {
		return fmt.Errorf("rlp: cannot encode negative *big.Int")
	}
	if i.Sign() == 0 {
		buf.WriteByte(0x80)
		return nil
	}
	return encodeString(buf, i.Bytes())
}

// encodeString writes the canonical RLP string encoding of b: a single
// byte < 0x80 is its own encoding, strings up to 55 bytes get an 0x80+len
// prefix, longer strings get an 0xb7+lenOfLen length-of-length prefix.
func encodeString(buf *bytes.Buffer, b []byte) error {
	if len(b) == 1 && b[0] < 0x80 {
		buf.WriteByte(b[0])
		return nil
	}
	if len(b) <= 55 {
		buf.WriteByte(0x80 + byte(len(b)))
		buf.Write(b)
		return nil
	}
	return encodeLongString(buf, b)
}

func encodeLongString(buf *bytes.Buffer, b []byte) error {
	var lenBytes [8]byte
	n := putUintBigEndian(lenBytes[:], uint64(len(b)))
	buf.WriteByte(0xb7 + byte(n))
	buf.Write(lenBytes[8-n:])
	buf.Write(b)
	return nil
}

func encodeList(buf *bytes.Buffer, v reflect.Value) error {
	inner := new(bytes.Buffer)
	for i := 0; i < v.Len(); i++ {
		if err := encodeValue(inner, v.Index(i)); err != nil {
			return err
		}
	}
	return wrapList(buf, inner.Bytes())
}

func encodeStruct(buf *bytes.Buffer, v reflect.Value) error {
	inner := new(bytes.Buffer)
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // unexported
			continue
		}
		if tag := field.Tag.Get("rlp"); tag == "-" {
			continue
		}
		if err := encodeValue(inner, v.Field(i)); err != nil {
			return err
		}
	}
	return wrapList(buf, inner.Bytes())
}

// WrapList prepends the canonical RLP list prefix for payload to buf.
func WrapList(payload []byte) []byte {
	buf := new(bytes.Buffer)
	wrapList(buf, payload)
	return buf.Bytes()
}

func wrapList(buf *bytes.Buffer, payload []byte) error {
	if len(payload) <= 55 {
		buf.WriteByte(0xc0 + byte(len(payload)))
		buf.Write(payload)
		return nil
	}
	var lenBytes [8]byte
	n := putUintBigEndian(lenBytes[:], uint64(len(payload)))
	buf.WriteByte(0xf7 + byte(n))
	buf.Write(lenBytes[8-n:])
	buf.Write(payload)
	return nil
}

// putUintBigEndian writes i into the tail of b (which must be exactly 8
// bytes) in minimal-length big-endian form and returns the number of
// significant bytes written, so callers slice b[8-n:] for the result.
func putUintBigEndian(b []byte, i uint64) int {
	for j := 0; j < 8; j++ {
		b[7-j] = byte(i >> uint(8*j))
	}
	n := 8
	for n > 1 && b[8-n] == 0 {
		n--
	}
	return n
}
