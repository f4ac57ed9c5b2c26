package types

// WindowInfo is one window as reported by the OS binding.
type WindowInfo struct {
	ID        uint32 `json:"id"`
	App       string `json:"appName"`
	BundleID  string `json:"bundleId,omitempty"`
	Title     string `json:"title,omitempty"`
	Role      string `json:"role,omitempty"`
	Subrole   string `json:"subrole,omitempty"`
	Level     int    `json:"level"`
	Parent    uint32 `json:"parent,omitempty"`
	Frame     Rect   `json:"frame"`
	Display   string `json:"display,omitempty"` // display hint; empty when unknown
	OnSpace   bool   `json:"onSpace"`           // assigned to at least one space
	Minimized bool   `json:"isMinimized,omitempty"`
	Hidden    bool   `json:"isHidden,omitempty"`
	Focused   bool   `json:"focused,omitempty"`
}

// DisplayInfo is one monitor as reported by the OS binding.
type DisplayInfo struct {
	ID    string `json:"uuid"`
	Frame Rect   `json:"frame"` // usable area, menu bar and dock excluded
	Main  bool   `json:"isMain"`
}
