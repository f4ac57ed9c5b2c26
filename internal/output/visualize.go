package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/yourusername/gridwm/internal/model"
	"github.com/yourusername/gridwm/internal/wm"
)

// VisualizationOptions controls the appearance of the visualization
type VisualizationOptions struct {
	UseUnicode bool
	ShowIDs    bool
	MaxWidth   int
	MaxHeight  int
}

// DefaultVisualizationOptions returns sensible defaults
func DefaultVisualizationOptions() VisualizationOptions {
	width, height := getTerminalSize()
	// Leave room for the header and footer lines.
	height -= 4
	if height < 10 {
		height = 10
	}
	return VisualizationOptions{
		UseUnicode: supportsUnicode(),
		ShowIDs:    true,
		MaxWidth:   width,
		MaxHeight:  height,
	}
}

// VisualizeDisplay renders the active workspace of one display.
func VisualizeDisplay(status *wm.Status, displayIndex int, opts VisualizationOptions) (string, error) {
	if displayIndex < 0 || displayIndex >= len(status.Displays) {
		return "", fmt.Errorf("display index %d out of range (have %d displays)", displayIndex, len(status.Displays))
	}

	display := status.Displays[displayIndex]
	ws, ok := findWorkspace(status, display.Active)
	if !ok {
		return fmt.Sprintf("Display %d: %s (no active workspace)\n", displayIndex, truncate(display.ID, 24)), nil
	}

	header := fmt.Sprintf("Display %d: %s [%.0fx%.0f] workspace %s (%s)\n",
		displayIndex,
		truncate(display.ID, 24),
		display.Frame.Width,
		display.Frame.Height,
		ws.ID,
		ws.Layout)

	windows := append(append([]model.WindowView{}, ws.Windows...), ws.Floating...)
	if len(windows) == 0 {
		return header + "(no windows)\n", nil
	}

	sc := NewScalingContext(display.Frame, opts.MaxWidth, opts.MaxHeight)
	canvas := NewCanvas(opts.MaxWidth, opts.MaxHeight, opts.UseUnicode)
	body := renderWindowsOnCanvas(windows, ws.Focused, sc, canvas, opts)

	footer := fmt.Sprintf("\nTotal: %d tiled, %d floating\n", len(ws.Windows), len(ws.Floating))
	return header + body + footer, nil
}

// VisualizeAll renders every display one after another.
func VisualizeAll(status *wm.Status, opts VisualizationOptions) (string, error) {
	if len(status.Displays) == 0 {
		return "No displays found\n", nil
	}

	var result strings.Builder
	for i := range status.Displays {
		vis, err := VisualizeDisplay(status, i, opts)
		if err != nil {
			return "", err
		}
		result.WriteString(vis)
		if i < len(status.Displays)-1 {
			result.WriteString("\n")
		}
	}
	return result.String(), nil
}

// renderWindowsOnCanvas draws tiled windows, then floating ones on top.
// The focused window is drawn last with a double border.
func renderWindowsOnCanvas(windows []model.WindowView, focused uint32, sc *ScalingContext, canvas *Canvas, opts VisualizationOptions) string {
	canvas.DrawBox(0, 0, sc.TermWidth, sc.TermHeight)

	var focusedWin *model.WindowView
	for i := range windows {
		if windows[i].ID == focused {
			focusedWin = &windows[i]
			continue
		}
		drawWindow(canvas, sc, windows[i], canvas.style, opts)
	}
	if focusedWin != nil {
		style := FocusStyle
		if !opts.UseUnicode {
			style = ASCIIFocusStyle
		}
		drawWindow(canvas, sc, *focusedWin, style, opts)
	}

	return canvas.String()
}

func drawWindow(canvas *Canvas, sc *ScalingContext, win model.WindowView, style BoxStyle, opts VisualizationOptions) {
	x, y, w, h := sc.RectToTerminal(win.Geometry)
	if w < 3 || h < 2 {
		return
	}
	canvas.DrawStyledBox(x, y, w, h, style)
	if h > 2 {
		canvas.DrawText(x+1, y+1, truncate(createWindowLabel(win, opts.ShowIDs), w-2))
	}
}

func findWorkspace(status *wm.Status, id string) (model.WorkspaceView, bool) {
	for _, ws := range status.Workspaces {
		if ws.ID == id {
			return ws, true
		}
	}
	return model.WorkspaceView{}, false
}

// createWindowLabel creates a label for a window
func createWindowLabel(win model.WindowView, showID bool) string {
	appName := win.App
	if appName == "" {
		appName = "Unknown"
	}
	if win.Floating {
		appName += " ~"
	}

	if showID {
		return fmt.Sprintf("[%d] %s", win.ID, appName)
	}
	return appName
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		// Default to 80x24 if we can't detect
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode reports whether stdout is a UTF-8 terminal.
func supportsUnicode() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}

// PrintVisualization writes a colored visualization. A negative index
// renders every display.
func PrintVisualization(w io.Writer, status *wm.Status, displayIndex int, opts VisualizationOptions) error {
	var result string
	var err error

	if displayIndex < 0 {
		result, err = VisualizeAll(status, opts)
	} else {
		result, err = VisualizeDisplay(status, displayIndex, opts)
	}

	if err != nil {
		return err
	}

	if color.NoColor {
		fmt.Fprint(w, result)
	} else {
		color.New(color.FgCyan).Fprint(w, result)
	}

	return nil
}
