// Package model holds the in-memory tree of displays, workspaces and windows.
//
// Entities live in maps keyed by id and refer to each other by id only. A
// Model is not safe for concurrent use: the manager loop is its single writer.
package model

import (
	"errors"

	"github.com/yourusername/gridwm/internal/types"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateWindow = errors.New("duplicate window")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrExists          = errors.New("already exists")
	ErrLastDisplay     = errors.New("cannot remove the last display")
)

// Display is one physical monitor.
type Display struct {
	ID         string
	Frame      types.Rect // usable area, menu bar and dock excluded
	Main       bool
	Workspaces []string
	Active     string // visible workspace
}

// Workspace is a named collection of windows on one display sharing one layout.
type Workspace struct {
	ID      string
	Display string
	Layout  types.LayoutKind
	Params  types.LayoutParams
	Windows []uint32 // tiling sequence: managed, non-floating windows only
	Focused uint32   // 0 when nothing is focused
}

// Window is a top-level OS window tracked by the manager.
type Window struct {
	ID        uint32
	Workspace string
	Geometry  types.Rect
	Managed   bool
	Floating  bool

	App   string
	Title string
}

// tiled reports whether the window belongs in its workspace's sequence.
func (w *Window) tiled() bool {
	return w.Managed && !w.Floating
}

// Model is the arena holding every display, workspace and window.
type Model struct {
	displays     map[string]*Display
	displayOrder []string
	workspaces   map[string]*Workspace
	windows      map[uint32]*Window
	focused      uint32
}

// New returns an empty model.
func New() *Model {
	return &Model{
		displays:   make(map[string]*Display),
		workspaces: make(map[string]*Workspace),
		windows:    make(map[uint32]*Window),
	}
}

func indexOf(ids []uint32, id uint32) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func removeAt(ids []uint32, i int) []uint32 {
	out := make([]uint32, 0, len(ids)-1)
	out = append(out, ids[:i]...)
	return append(out, ids[i+1:]...)
}

func insertAt(ids []uint32, i int, id uint32) []uint32 {
	out := make([]uint32, 0, len(ids)+1)
	out = append(out, ids[:i]...)
	out = append(out, id)
	return append(out, ids[i:]...)
}
