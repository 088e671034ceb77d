package common

import (
	"errors"
	"fmt"
)

// Kind classifies the failure modes primitives in this module can raise.
// Failing operations in the common and crypto packages and the
// validation and signing operations in core/types return an error whose
// Kind can be recovered with AsError, so callers can branch on failure
// category without string-matching error text. The rlp and core/vm
// packages and the transaction RLP codec in core/types (EncodeRLP,
// DecodeTxRLP) return plain errors that carry no Kind.
type Kind string

const (
	InvalidFormat          Kind = "invalid_format"
	InvalidLength          Kind = "invalid_length"
	InvalidSize            Kind = "invalid_size"
	OutOfRange             Kind = "out_of_range"
	InvalidSignature       Kind = "invalid_signature"
	RecoveryFailed         Kind = "recovery_failed"
	InvalidTransactionType Kind = "invalid_transaction_type"
	TransactionNotSigned   Kind = "transaction_not_signed"
	InvalidJumpDest        Kind = "invalid_jump_dest"
	KzgNotInitialized      Kind = "kzg_not_initialized"
	NotImplemented         Kind = "not_implemented"
	DecodingError          Kind = "decoding_error"
)

// Error is the tagged error type returned by the operations listed on Kind.
// Op names the failing operation ("common.HexToHash", "crypto.Recover", ...),
// Kind classifies the failure, and Err carries the underlying cause when
// there is one worth wrapping. Context and Value carry machine-readable
// diagnostic data a caller can inspect without parsing Error(); DocsPath
// points at the reference page documenting this Kind.
type Error struct {
	Op       string
	Kind     Kind
	Err      error
	Context  map[string]any
	Value    any
	DocsPath string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// WithContext attaches a machine-readable context map to e and returns e.
func (e *Error) WithContext(ctx map[string]any) *Error {
	e.Context = ctx
	return e
}

// WithValue attaches the failing value to e and returns e. Only small
// values (a field, a length, a single element) belong here — never a
// full payload.
func (e *Error) WithValue(v any) *Error {
	e.Value = v
	return e
}

// NewError builds a tagged Error, optionally wrapping a cause. DocsPath
// is populated from kind; callers can chain WithContext/WithValue for
// the cases that have diagnostic data worth attaching.
func NewError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err, DocsPath: docsPathFor(kind)}
}

// docsPathFor returns the reference documentation path for a Kind.
func docsPathFor(kind Kind) string {
	return "/docs/errors/" + string(kind)
}

// AsError reports whether err (or something it wraps) is an *Error, and
// returns it.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// KindOf returns the Kind carried by err if it is an *Error, or "" otherwise.
func KindOf(err error) Kind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return ""
}
