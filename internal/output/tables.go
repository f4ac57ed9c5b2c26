package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/gridwm/internal/model"
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/wm"
)

// PrintDisplaysTable prints displays in a table format
func PrintDisplaysTable(w io.Writer, status *wm.Status) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Frame", "Main", "Active", "Workspaces")

	for _, d := range status.Displays {
		main := ""
		if d.Main {
			main = "✓"
		}
		table.Append(
			truncate(d.ID, 24),
			formatRect(d.Frame),
			main,
			d.Active,
			strings.Join(d.Workspaces, ", "),
		)
	}

	table.Render()
}

// PrintWorkspacesTable prints workspaces in a table format
func PrintWorkspacesTable(w io.Writer, status *wm.Status) {
	table := tablewriter.NewWriter(w)
	table.Header("Name", "Display", "Layout", "Ratio", "Tiled", "Floating", "Focused")

	for _, ws := range status.Workspaces {
		name := ws.ID
		if ws.ID == status.Active {
			name += " *"
		}
		focused := ""
		if ws.Focused != 0 {
			focused = fmt.Sprintf("%d", ws.Focused)
		}
		table.Append(
			name,
			truncate(ws.Display, 24),
			string(ws.Layout),
			fmt.Sprintf("%.2f", ws.Params.SplitRatio),
			formatIDs(ws.IDs()),
			fmt.Sprintf("%d", len(ws.Floating)),
			focused,
		)
	}

	table.Render()
}

// PrintWindowsTable prints every known window, managed or not, sorted by id.
func PrintWindowsTable(w io.Writer, status *wm.Status) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "App", "Title", "Workspace", "Geometry", "State")

	windows := AllWindows(status)
	for _, win := range windows {
		id := fmt.Sprintf("%d", win.ID)
		if win.ID == status.Focused {
			id += " *"
		}
		table.Append(
			id,
			truncate(win.App, 20),
			truncate(win.Title, 30),
			win.Workspace,
			formatRect(win.Geometry),
			windowState(win),
		)
	}

	table.Render()
}

// AllWindows flattens a status into one id-ordered list.
func AllWindows(status *wm.Status) []model.WindowView {
	var windows []model.WindowView
	for _, ws := range status.Workspaces {
		windows = append(windows, ws.Windows...)
		windows = append(windows, ws.Floating...)
	}
	windows = append(windows, status.Unmanaged...)
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].ID < windows[j].ID
	})
	return windows
}

func windowState(win model.WindowView) string {
	switch {
	case !win.Managed:
		return "unmanaged"
	case win.Floating:
		return "floating"
	default:
		return "tiled"
	}
}

func formatRect(r types.Rect) string {
	return fmt.Sprintf("%.0fx%.0f @ %.0f,%.0f", r.Width, r.Height, r.X, r.Y)
}

func formatIDs(ids []uint32) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, " ")
}
