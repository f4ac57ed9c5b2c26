package types

import "math"

// Epsilon is the tolerance used when comparing pixel coordinates.
const Epsilon = 1e-6

// Rect represents pixel bounds on screen
type Rect struct {
	X      float64 `json:"x"`      // Left edge (pixels from screen left)
	Y      float64 `json:"y"`      // Top edge (pixels from screen top)
	Width  float64 `json:"width"`  // Width in pixels
	Height float64 `json:"height"` // Height in pixels
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Area returns Width*Height
func (r Rect) Area() float64 { return r.Width * r.Height }

// IsEmpty reports whether the rect has no area
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Center returns the center point of a Rect
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Contains checks if a point is inside the rect
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// ContainsRect reports whether other lies entirely inside r (within Epsilon).
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X-Epsilon && other.Y >= r.Y-Epsilon &&
		other.Right() <= r.Right()+Epsilon && other.Bottom() <= r.Bottom()+Epsilon
}

// Overlap returns the area of intersection between two Rects
func (r Rect) Overlap(other Rect) float64 {
	left := max(r.X, other.X)
	right := min(r.X+r.Width, other.X+other.Width)
	top := max(r.Y, other.Y)
	bottom := min(r.Y+r.Height, other.Y+other.Height)

	if left >= right || top >= bottom {
		return 0
	}
	return (right - left) * (bottom - top)
}

// Inset shrinks the rect by d on every side. Never returns negative sizes.
func (r Rect) Inset(d float64) Rect {
	out := Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// ApproxEqual compares two rects coordinate-wise within Epsilon.
func (r Rect) ApproxEqual(other Rect) bool {
	return math.Abs(r.X-other.X) < Epsilon &&
		math.Abs(r.Y-other.Y) < Epsilon &&
		math.Abs(r.Width-other.Width) < Epsilon &&
		math.Abs(r.Height-other.Height) < Epsilon
}

// WindowPlacement specifies where a window should be positioned
type WindowPlacement struct {
	WindowID uint32 `json:"windowId"` // Window identifier from the OS binding
	Bounds   Rect   `json:"bounds"`   // Target position and size
}

// Direction represents navigation direction
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// Horizontal reports whether the direction moves along the x axis.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// ParseDirection converts a string to Direction
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left", "west":
		return DirLeft, true
	case "right", "east":
		return DirRight, true
	case "up", "north":
		return DirUp, true
	case "down", "south":
		return DirDown, true
	default:
		return 0, false
	}
}
