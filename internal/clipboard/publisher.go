// Package clipboard copies generated prompts to the system clipboard and
// tracks the transient "copied" acknowledgment shown to the user.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

var (
	// ErrEmpty is returned when there is nothing to copy.
	ErrEmpty = errors.New("nothing to copy")

	// ErrUnavailable is returned when the platform clipboard cannot be used.
	// Callers leave the text on screen for manual selection.
	ErrUnavailable = errors.New("clipboard unavailable")
)

// Publisher writes text to a clipboard.
type Publisher interface {
	Publish(text string) error
}

// writeAll is a package-level variable to allow mocking in tests.
var writeAll = clipboard.WriteAll

// unsupported reports whether the platform has no clipboard utility.
var unsupported = func() bool { return clipboard.Unsupported }

// System publishes to the operating system clipboard.
type System struct{}

// NewSystem returns the operating system publisher.
func NewSystem() *System {
	return &System{}
}

// Publish copies text to the system clipboard. It does not retry.
func (System) Publish(text string) error {
	if text == "" {
		return ErrEmpty
	}
	if unsupported() {
		return ErrUnavailable
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(text string) error

// Publish calls f(text).
func (f PublisherFunc) Publish(text string) error {
	return f(text)
}
