package rlp

import "errors"

var (
	ErrExpectedString    = errors.New("rlp: expected string or byte")
	ErrExpectedList      = errors.New("rlp: expected list")
	ErrCanonSize         = errors.New("rlp: non-canonical size information")
	ErrCanonInt          = errors.New("rlp: non-canonical integer format")
	ErrNonCanonicalSize  = errors.New("rlp: non-canonical size (short form required)")
	ErrUint64Range       = errors.New("rlp: value too large for uint64")
	ErrValueTooLarge     = errors.New("rlp: value too large for byte array")
	ErrEOL               = errors.New("rlp: end of list")
	ErrUnexpectedEOF     = errors.New("rlp: unexpected EOF")
	ErrMoreThanOneElement = errors.New("rlp: input contains more than one value")
)
