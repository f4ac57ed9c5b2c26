package wm

import (
	"errors"

	"github.com/yourusername/gridwm/internal/config"
	"github.com/yourusername/gridwm/internal/focus"
	"github.com/yourusername/gridwm/internal/model"
	"github.com/yourusername/gridwm/internal/types"
)

var (
	ErrCommandTimeout  = errors.New("command timeout")
	ErrStopped         = errors.New("manager stopped")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Error kinds reported to control clients.
const (
	KindNotFound            = "NotFound"
	KindDuplicateWindow     = "DuplicateWindow"
	KindIndexOutOfRange     = "IndexOutOfRange"
	KindNoFocus             = "NoFocus"
	KindInvalidLayoutParams = "InvalidLayoutParams"
	KindCommandTimeout      = "CommandTimeout"
	KindConfigInvalid       = "ConfigInvalid"
	KindInvalidArgument     = "InvalidArgument"
	KindUnknownCommand      = "UnknownCommand"
	KindStopped             = "Stopped"
	KindInternal            = "Internal"
)

// ErrorKind classifies err for the control protocol.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, model.ErrNotFound):
		return KindNotFound
	case errors.Is(err, model.ErrDuplicateWindow):
		return KindDuplicateWindow
	case errors.Is(err, model.ErrIndexOutOfRange):
		return KindIndexOutOfRange
	case errors.Is(err, focus.ErrNoFocus):
		return KindNoFocus
	case errors.Is(err, types.ErrInvalidLayoutParams):
		return KindInvalidLayoutParams
	case errors.Is(err, ErrCommandTimeout):
		return KindCommandTimeout
	case errors.Is(err, config.ErrInvalid):
		return KindConfigInvalid
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrUnknownCommand):
		return KindUnknownCommand
	case errors.Is(err, ErrStopped):
		return KindStopped
	default:
		return KindInternal
	}
}
