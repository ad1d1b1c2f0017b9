package httperr

import "errors"

// Kind classifies a business error so the presentation layer can pick a response
// without knowing every code.
type Kind uint8

const (
	KindRule Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindAlreadyExists
	KindConflict
	KindInvalidCredentials
	KindUnavailable
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func New(kind Kind, code string) error {
	return BusinessError{Kind: kind, Code: code}
}

var (
	ErrUnauthenticated    = New(KindUnauthenticated, "unauthenticated")
	ErrForbidden          = New(KindForbidden, "forbidden")
	ErrInvalidCredentials = New(KindInvalidCredentials, "invalid_credentials")
	ErrSystemNotReady     = New(KindUnavailable, "system_not_ready")
)

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf reports the kind of a business error. ok is false for any other error.
func KindOf(err error) (kind Kind, ok bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
