// Package apperr defines the error taxonomy shared by services and handlers.
//
// Every handled failure is an *Error tagged with a Kind. Re-wrapping with
// AsBusiness changes the Kind to KindBusiness but keeps the original kind in
// Origin and the original machine-readable Code, so callers can still tell a
// credential mismatch from any other business failure.
package apperr

import "errors"

type Kind string

const (
	KindValidation     Kind = "VALIDATION"
	KindAuthentication Kind = "AUTHENTICATION"
	KindNotFound       Kind = "RESOURCE_NOT_FOUND"
	KindBusiness       Kind = "BUSINESS"
	KindSystem         Kind = "SYSTEM"
)

// Machine-readable codes carried in the response envelope.
const (
	CodeSuccess        = "SUCCESS_200"
	CodeValidation     = "ERR_VALIDATION"
	CodeAuthentication = "ERR_AUTHENTICATION"
	CodeAuthorization  = "ERR_AUTHORIZATION"
	CodeNotFound       = "ERR_RESOURCE_NOT_FOUND"
	CodeBusiness       = "ERR_BUSINESS"
	CodeSystem         = "ERR_SYSTEM"
	CodeException      = "ERR_EXCEPTION"
)

type Error struct {
	Kind    Kind
	Origin  Kind
	Code    string
	Message string
	// Fields holds field-level messages for validation failures.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, code, msg string, err error) *Error {
	return &Error{Kind: kind, Origin: kind, Code: code, Message: msg, Err: err}
}

func Validation(msg string, fields map[string]string) *Error {
	e := newError(KindValidation, CodeValidation, msg, nil)
	e.Fields = fields
	return e
}

func Authentication(msg string) *Error {
	return newError(KindAuthentication, CodeAuthentication, msg, nil)
}

func NotFound(msg string) *Error {
	return newError(KindNotFound, CodeNotFound, msg, nil)
}

func Business(msg string, err error) *Error {
	return newError(KindBusiness, CodeBusiness, msg, err)
}

func System(msg string, err error) *Error {
	return newError(KindSystem, CodeSystem, msg, err)
}

// AsBusiness normalizes err into a KindBusiness error. An *Error anywhere in
// the chain donates its Origin, Code and Fields; anything else becomes a plain
// ERR_BUSINESS failure. The original error stays reachable through Unwrap.
func AsBusiness(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		if ae.Kind == KindBusiness {
			return ae
		}
		return &Error{
			Kind:    KindBusiness,
			Origin:  ae.Origin,
			Code:    ae.Code,
			Message: ae.Message,
			Fields:  ae.Fields,
			Err:     err,
		}
	}
	return Business(err.Error(), err)
}

// KindOf returns the outer kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// OriginOf returns the kind the error had before any re-wrapping.
func OriginOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Origin
	}
	return ""
}

// CodeOf returns the envelope code for err, falling back to ERR_EXCEPTION.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	return CodeException
}
