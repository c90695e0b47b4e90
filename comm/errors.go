package comm

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for message passing.
var (
	// ErrInvalidSize is returned when a world is created with fewer than one rank.
	ErrInvalidSize = errors.New("comm: world size must be >= 1")

	// ErrInvalidRank is returned when a peer rank is outside the world.
	ErrInvalidRank = errors.New("comm: rank out of range")

	// ErrLengthMismatch is returned when a received payload does not fit the
	// receive buffer exactly.
	ErrLengthMismatch = errors.New("comm: payload length mismatch")

	// ErrTypeMismatch is returned when sender and receiver disagree on the
	// element type of a message.
	ErrTypeMismatch = errors.New("comm: payload type mismatch")

	// ErrAborted is returned by blocking operations once the world context is done.
	ErrAborted = errors.New("comm: world aborted")

	// ErrOptionViolation is returned by NewWorld for invalid options.
	ErrOptionViolation = errors.New("comm: invalid option supplied")
)

// aborted wraps the context cause so callers can match both ErrAborted and
// context.Canceled/DeadlineExceeded.
func aborted(ctx context.Context, op string, rank int) error {
	return fmt.Errorf("%s(rank %d): %w: %w", op, rank, ErrAborted, context.Cause(ctx))
}
