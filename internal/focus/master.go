package focus

import (
	"errors"

	"github.com/yourusername/gridwm/internal/model"
)

// ErrNoFocus is returned by operations that need a focused tiled window.
var ErrNoFocus = errors.New("no focused window")

// MasterSwap returns the pair of windows to exchange so the focused window
// takes sequence position 0. Both ids are equal when the focused window
// already is the master.
func MasterSwap(ws model.WorkspaceView, focused uint32) (uint32, uint32, error) {
	if focused == 0 {
		return 0, 0, ErrNoFocus
	}
	ids := ws.IDs()
	if FindWindowIndex(ids, focused) < 0 {
		return 0, 0, ErrNoFocus
	}
	return focused, ids[0], nil
}
