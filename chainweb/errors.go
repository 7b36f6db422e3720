package chainweb

import (
	"github.com/pkg/errors"
)

// ErrorKind distinguishes the three user-visible proof error kinds plus
// the internal-invariant kind that signals local database corruption.
type ErrorKind int

const (
	// KindTargetNotReachable means the requested proof cannot be built
	// from the target chain's current head: the path is longer than the
	// head allows, or the requested source height is above the
	// reachable source head. The caller may retry with a later target
	// head or a different source parameter.
	KindTargetNotReachable ErrorKind = iota
	// KindInconsistentPayloadData means a payload's hash did not match
	// the owning header's payload-hash field, or an expected payload,
	// transaction list, or output list was missing from the content
	// store. Fatal: it indicates local store corruption.
	KindInconsistentPayloadData
	// KindVerificationFailed means a proof's fold root was not found
	// among the target chain's currently confirmed headers. The caller
	// should obtain a newer proof.
	KindVerificationFailed
	// KindInternalInvariantViolation means a data-model invariant this
	// package assumes always holds (e.g. every non-genesis header has an
	// adjacent-parent hash for every neighbor chain) did not hold.
	KindInternalInvariantViolation
)

func (k ErrorKind) String() string {
	switch k {
	case KindTargetNotReachable:
		return "TargetNotReachable"
	case KindInconsistentPayloadData:
		return "InconsistentPayloadData"
	case KindVerificationFailed:
		return "VerificationFailed"
	case KindInternalInvariantViolation:
		return "InternalInvariantViolation"
	default:
		return "Unknown"
	}
}

// Error is the single error type the proof builder and verifier return.
// Its Kind distinguishes the three user-visible cases from the fatal
// internal-invariant case; Unwrap exposes any underlying cause so callers
// can still use errors.Is/errors.As against it.
type Error struct {
	Kind ErrorKind
	msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.msg + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

func wrapError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, msg: msg, Err: cause}
}

// NewTargetNotReachable builds a TargetNotReachable error.
func NewTargetNotReachable(msg string) error {
	return newError(KindTargetNotReachable, msg)
}

// NewInconsistentPayloadData builds an InconsistentPayloadData error.
func NewInconsistentPayloadData(msg string, cause error) error {
	return wrapError(KindInconsistentPayloadData, msg, cause)
}

// NewVerificationFailed builds a VerificationFailed error.
func NewVerificationFailed(msg string) error {
	return newError(KindVerificationFailed, msg)
}

// NewInternalInvariantViolation builds an InternalInvariantViolation error.
func NewInternalInvariantViolation(msg string) error {
	return newError(KindInternalInvariantViolation, msg)
}

// IsKind reports whether err is a *Error of the given kind, unwrapping
// github.com/pkg/errors-style wrapped causes along the way.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
