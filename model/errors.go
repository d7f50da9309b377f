package model

import "errors"

// The error kinds of the vote casting core. An operation failing with any
// of them is terminal and must not be retried automatically.
var (
	// ErrInvalidInput marks caller-supplied data of the wrong shape or range.
	// It is detected before any cryptographic computation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIncompatibleParameters marks election parameters that cannot serve
	// the requested selections. It points to an upstream configuration error.
	ErrIncompatibleParameters = errors.New("incompatible parameters")
	// ErrInvalidObliviousTransferResponse marks a malformed or adversarial
	// authority reply. The whole reply must be rejected and audited.
	ErrInvalidObliviousTransferResponse = errors.New("invalid oblivious transfer response")
)

// Kind classifies an error returned by the core.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindIncompatibleParameters
	KindInvalidObliviousTransferResponse
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindIncompatibleParameters:
		return "IncompatibleParameters"
	case KindInvalidObliviousTransferResponse:
		return "InvalidObliviousTransferResponse"
	default:
		return "Unknown"
	}
}

// KindOf returns the kind of err, looking through wrapped errors.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidObliviousTransferResponse):
		return KindInvalidObliviousTransferResponse
	case errors.Is(err, ErrIncompatibleParameters):
		return KindIncompatibleParameters
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindUnknown
	}
}
