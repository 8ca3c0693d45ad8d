package db

import "errors"

// ErrUnknownStage reports a plan stage no driver case handles. The stage set
// is closed, so hitting this means a driver was not updated alongside a new
// stage type.
var ErrUnknownStage = errors.New("db: unknown plan stage")

// Op constants map to MongoDB command names for error context.
const (
	OpConnect   = "connect"
	OpPing      = "ping"
	OpFind      = "find"
	OpAggregate = "aggregate"
	OpCursor    = "getMore"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
