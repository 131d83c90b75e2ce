package gateway

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when a call is attempted with no credentials
// set on the client.
var ErrUnauthenticated = errors.New("no broker credentials set")

// UnauthorizedError is returned on HTTP 401: the broker rejected the
// configured credentials. Distinct from a generic request failure so callers
// can prompt for re-authentication.
type UnauthorizedError struct {
	Op string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("authentication failed: broker rejected credentials (%s)", e.Op)
}

// NotFoundError is returned on HTTP 404. Often a normal condition: callers
// interpret it as "does not exist yet" and must suppress it explicitly when
// they want ignore-missing semantics.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.Resource)
}

// IsNotFound reports whether err is a gateway NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// RequestError is any other non-2xx management API response.
type RequestError struct {
	Op     string
	Status int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %s returned status %d", e.Op, e.Status)
}

// MalformedResponseError indicates a response declared as JSON that could not
// be decoded.
type MalformedResponseError struct {
	Op  string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Op, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
