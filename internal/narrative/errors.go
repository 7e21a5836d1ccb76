package narrative

import (
	"context"
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
)

// Kind classifies why a narrative request failed.
type Kind string

const (
	// KindTimeout means the per-request deadline passed.
	KindTimeout Kind = "timeout"
	// KindRequestFailed covers transport errors, error statuses, an open
	// circuit, and a disabled provider.
	KindRequestFailed Kind = "request_failed"
	// KindMalformed means the provider answered with text that could not be
	// used, such as an empty body or JSON that fails validation.
	KindMalformed Kind = "malformed_response"
)

// Error is returned by every Generator method.
type Error struct {
	Kind    Kind
	Section string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("narrative: %s %s: %v", e.Section, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or "" when err is not a narrative error.
func KindOf(err error) Kind {
	var ne *Error
	if errors.As(err, &ne) {
		return ne.Kind
	}
	return ""
}

// errMalformed marks provider output that could not be used.
var errMalformed = eris.New("malformed response")

func classify(ctx context.Context, section string, err error) *Error {
	var ne *Error
	if errors.As(err, &ne) {
		return ne
	}
	kind := KindRequestFailed
	switch {
	case errors.Is(err, errMalformed):
		kind = KindMalformed
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	}
	return &Error{Kind: kind, Section: section, Err: err}
}
