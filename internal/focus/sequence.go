package focus

// CycleWindowIndex calculates the next window index when cycling through windows.
// Wraps around at boundaries.
func CycleWindowIndex(current, total int, forward bool) int {
	if total <= 0 {
		return 0
	}

	if forward {
		return (current + 1) % total
	}

	// Backward - handle wrap-around
	return (current - 1 + total) % total
}

// FindWindowIndex finds the index of a window ID in the slice.
// Returns -1 if not found.
func FindWindowIndex(windows []uint32, windowID uint32) int {
	for i, wid := range windows {
		if wid == windowID {
			return i
		}
	}
	return -1
}

// Next returns the window after current in the sequence, wrapping at the end.
// When current is not in the sequence the first window is returned.
func Next(windows []uint32, current uint32) (uint32, bool) {
	if len(windows) == 0 {
		return 0, false
	}
	idx := FindWindowIndex(windows, current)
	if idx < 0 {
		return windows[0], true
	}
	return windows[CycleWindowIndex(idx, len(windows), true)], true
}

// Previous returns the window before current, wrapping at the start.
// When current is not in the sequence the last window is returned.
func Previous(windows []uint32, current uint32) (uint32, bool) {
	if len(windows) == 0 {
		return 0, false
	}
	idx := FindWindowIndex(windows, current)
	if idx < 0 {
		return windows[len(windows)-1], true
	}
	return windows[CycleWindowIndex(idx, len(windows), false)], true
}
