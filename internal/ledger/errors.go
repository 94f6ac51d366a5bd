package ledger

import (
	"errors"
	"fmt"
)

// Kind discriminates ledger errors so callers can branch without parsing messages.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalidAmount
	KindMissingCategory
	KindMissingDescription
	KindSameAccount
	KindLocked
	KindInsufficientFunds
	KindNotFound
	KindTransientIO
	KindInvalidType
	KindInvalidDivision
	KindMissingAccount
)

var kindNames = map[Kind]string{
	KindUnknown:            "Unknown",
	KindInvalidAmount:      "InvalidAmount",
	KindMissingCategory:    "MissingCategory",
	KindMissingDescription: "MissingDescription",
	KindSameAccount:        "SameAccount",
	KindLocked:             "Locked",
	KindInsufficientFunds:  "InsufficientFunds",
	KindNotFound:           "NotFound",
	KindTransientIO:        "TransientIOError",
	KindInvalidType:        "InvalidType",
	KindInvalidDivision:    "InvalidDivision",
	KindMissingAccount:     "MissingAccount",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind is the inverse of Kind.String. Unrecognized names map to KindUnknown.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return k
		}
	}
	return KindUnknown
}

// IsValidation reports whether the kind is detected before any mutation happens.
func (k Kind) IsValidation() bool {
	switch k {
	case KindInvalidAmount, KindMissingCategory, KindMissingDescription, KindSameAccount,
		KindInvalidType, KindInvalidDivision, KindMissingAccount:
		return true
	}
	return false
}

// Error is the single error type produced by the ledger core.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrLocked) works
// for every locked rejection regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidAmount      = &Error{Kind: KindInvalidAmount}
	ErrMissingCategory    = &Error{Kind: KindMissingCategory}
	ErrMissingDescription = &Error{Kind: KindMissingDescription}
	ErrSameAccount        = &Error{Kind: KindSameAccount}
	ErrLocked             = &Error{Kind: KindLocked}
	ErrInsufficientFunds  = &Error{Kind: KindInsufficientFunds}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrTransientIO        = &Error{Kind: KindTransientIO}
	ErrInvalidType        = &Error{Kind: KindInvalidType}
	ErrInvalidDivision    = &Error{Kind: KindInvalidDivision}
	ErrMissingAccount     = &Error{Kind: KindMissingAccount}
)

// NewError builds an *Error of the given kind.
func NewError(kind Kind, field, message string) *Error {
	return &Error{Kind: kind, Field: field, Message: message}
}

// NotFoundError reports a missing resource by its identity.
func NotFoundError(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Field: resource, Message: fmt.Sprintf("%s not found", id)}
}

// TransientError wraps a collaborator failure.
func TransientError(op string, err error) *Error {
	return &Error{Kind: KindTransientIO, Message: op + " failed", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
