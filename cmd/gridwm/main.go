package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridwm/internal/ipc"
	"github.com/yourusername/gridwm/internal/model"
	"github.com/yourusername/gridwm/internal/models"
	"github.com/yourusername/gridwm/internal/output"
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/wm"
)

var (
	socketPath string
	configPath string
	timeout    time.Duration
	jsonOutput bool
	noColor    bool
	debugMode  bool

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "gridwm",
	Short: "Tiling window manager daemon and control client",
	Long: `gridwm tiles windows on macOS through the GridServer accessibility helper.

Run "gridwm daemon" to start managing windows. Every other command talks to
the running daemon over its control socket.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// pingCmd tests daemon connectivity
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test connection to the daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := ipc.NewClient(socketPath, timeout)
		defer c.Close()

		start := time.Now()
		result, err := c.Ping(context.Background())
		elapsed := time.Since(start)

		if err != nil {
			printError(fmt.Sprintf("Ping failed: %v", err))
			return reported(err)
		}

		if jsonOutput {
			return printJSON(result)
		}

		successColor.Println("✓ Pong received")
		fmt.Printf("Response time: %v\n", elapsed)
		if ts, ok := result["timestamp"].(float64); ok {
			fmt.Printf("Daemon timestamp: %v\n", time.Unix(int64(ts), 0))
		}

		return nil
	},
}

var statusWindows bool

// statusCmd prints the daemon's model
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show displays, workspaces and windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := getStatus()
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(status)
		}

		keyColor.Println("Displays")
		output.PrintDisplaysTable(os.Stdout, status)
		keyColor.Println("\nWorkspaces")
		output.PrintWorkspacesTable(os.Stdout, status)
		if statusWindows {
			keyColor.Println("\nWindows")
			output.PrintWindowsTable(os.Stdout, status)
		}

		keyColor.Print("\nActive workspace: ")
		fmt.Println(status.Active)
		if status.Focused != 0 {
			keyColor.Print("Focused window: ")
			fmt.Println(status.Focused)
		}
		return nil
	},
}

var (
	showASCII   bool
	showUnicode bool
	showNoIDs   bool
	showWidth   int
	showHeight  int
)

// showCmd draws the active workspace of each display
var showCmd = &cobra.Command{
	Use:   "show [display-index]",
	Short: "Visualize window geometry in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index := -1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid display index: %s", args[0])
			}
			index = n
		}

		status, err := getStatus()
		if err != nil {
			return err
		}
		if err := output.PrintVisualization(os.Stdout, status, index, getVisualizationOptions()); err != nil {
			printError(err.Error())
			return reported(err)
		}
		return nil
	},
}

// focusCmd moves focus
var focusCmd = &cobra.Command{
	Use:   "focus <left|right|up|down|next|prev|window-id>",
	Short: "Move focus directionally, cyclically or to a window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := strings.ToLower(args[0])

		var (
			method string
			params map[string]interface{}
		)
		switch arg {
		case "next":
			method = string(wm.CmdFocusNext)
		case "prev", "previous":
			method = string(wm.CmdFocusPrevious)
		default:
			if dir, ok := types.ParseDirection(arg); ok {
				method = string(wm.CmdFocusDirection)
				params = map[string]interface{}{"direction": dir.String()}
				break
			}
			id, err := strconv.ParseUint(arg, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid focus target: %s", args[0])
			}
			method = string(wm.CmdFocusWindow)
			params = map[string]interface{}{"windowId": id}
		}

		resp, err := call(method, params)
		if err != nil {
			return err
		}
		return printWindowResult(resp, "Focused")
	},
}

var moveWorkspace string

// moveCmd moves the focused window
var moveCmd = &cobra.Command{
	Use:   "move [left|right|up|down]",
	Short: "Move the focused window in a direction or to a workspace",
	Example: `  gridwm move left
  gridwm move --workspace 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if moveWorkspace != "" {
			if len(args) > 0 {
				return errors.New("give either a direction or --workspace, not both")
			}
			if _, err := call(string(wm.CmdMoveToWorkspace), map[string]interface{}{"workspace": moveWorkspace}); err != nil {
				return err
			}
			return printDone(fmt.Sprintf("Moved window to workspace %s", moveWorkspace))
		}

		if len(args) == 0 {
			return errors.New("a direction or --workspace is required")
		}
		dir, ok := types.ParseDirection(args[0])
		if !ok {
			return fmt.Errorf("invalid direction: %s", args[0])
		}
		if _, err := call(string(wm.CmdMoveDirection), map[string]interface{}{"direction": dir.String()}); err != nil {
			return err
		}
		return printDone(fmt.Sprintf("Moved window %s", dir))
	},
}

var swapCmd = &cobra.Command{
	Use:   "swap",
	Short: "Swap the focused window with the master window",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := call(string(wm.CmdSwapMaster), nil); err != nil {
			return err
		}
		return printDone("Swapped with master")
	},
}

var closeCmd = &cobra.Command{
	Use:   "close [window-id]",
	Short: "Close a window (default: focused)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		method := string(wm.CmdCloseFocused)
		var params map[string]interface{}
		if len(args) == 1 {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid window id: %s", args[0])
			}
			method = string(wm.CmdCloseWindow)
			params = map[string]interface{}{"windowId": id}
		}
		if _, err := call(method, params); err != nil {
			return err
		}
		return printDone("Close requested")
	},
}

var placeCmd = &cobra.Command{
	Use:   "place <window-id> <x> <y> <width> <height>",
	Short: "Float a window and place it at an exact frame",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid window id: %s", args[0])
		}
		var v [4]float64
		for i, arg := range args[1:] {
			if v[i], err = strconv.ParseFloat(arg, 64); err != nil {
				return fmt.Errorf("invalid number: %s", arg)
			}
		}

		resp, err := call(string(wm.CmdMoveWindow), map[string]interface{}{
			"windowId": id,
			"frame": map[string]interface{}{
				"x": v[0], "y": v[1], "width": v[2], "height": v[3],
			},
		})
		if err != nil {
			return err
		}
		return printWindowResult(resp, "Placed")
	},
}

var execCmd = &cobra.Command{
	Use:   "exec <command...>",
	Short: "Run a shell command from the daemon",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		line := strings.Join(args, " ")
		if _, err := call(string(wm.CmdExec), map[string]interface{}{"command": line}); err != nil {
			return err
		}
		return printDone(fmt.Sprintf("Started: %s", line))
	},
}

// layoutCmd groups the layout subcommands
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Change workspace layouts",
}

var (
	layoutWorkspace string
	layoutRatio     float64
	layoutReverse   bool
)

var layoutSetCmd = &cobra.Command{
	Use:   "set <bsp|stack|grid|spiral|column|monocle|float>",
	Short: "Set the layout of a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := types.ParseLayoutKind(args[0])
		if err != nil {
			return err
		}
		params := map[string]interface{}{"kind": string(kind)}
		if layoutWorkspace != "" {
			params["workspace"] = layoutWorkspace
		}
		if layoutRatio != 0 {
			params["splitRatio"] = layoutRatio
		}

		resp, err := call(string(wm.CmdSetLayout), params)
		if err != nil {
			return err
		}
		return printWorkspaceResult(resp)
	},
}

var layoutCycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Switch a workspace to the next layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]interface{}{"reverse": layoutReverse}
		if layoutWorkspace != "" {
			params["workspace"] = layoutWorkspace
		}

		resp, err := call(string(wm.CmdCycleLayout), params)
		if err != nil {
			return err
		}
		return printWorkspaceResult(resp)
	},
}

var layoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List layout kinds",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return printJSON(types.LayoutKinds())
		}
		for _, k := range types.LayoutKinds() {
			fmt.Println(k)
		}
		return nil
	},
}

var fullscreenCmd = &cobra.Command{
	Use:   "fullscreen",
	Short: "Toggle monocle on the focused workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := call(string(wm.CmdToggleFullscreen), nil)
		if err != nil {
			return err
		}
		return printWorkspaceResult(resp)
	},
}

var floatCmd = &cobra.Command{
	Use:   "float [window-id]",
	Short: "Toggle floating for a window (default: focused)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var params map[string]interface{}
		if len(args) == 1 {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid window id: %s", args[0])
			}
			params = map[string]interface{}{"windowId": id}
		}

		resp, err := call(string(wm.CmdToggleFloat), params)
		if err != nil {
			return err
		}
		return printWindowResult(resp, "Toggled")
	},
}

var ratioCmd = &cobra.Command{
	Use:   "ratio <delta>",
	Short: "Grow or shrink the master split",
	Example: `  gridwm ratio 0.05
  gridwm ratio -- -0.05`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid delta: %s", args[0])
		}

		resp, err := call(string(wm.CmdAdjustRatio), map[string]interface{}{"delta": delta})
		if err != nil {
			return err
		}
		return printWorkspaceResult(resp)
	},
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the daemon configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := call(string(wm.CmdReload), nil); err != nil {
			return err
		}
		return printDone("Configuration reloaded")
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := ipc.NewClient(socketPath, timeout)
		defer c.Close()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := c.Connect(); err != nil {
			printError(err.Error())
			return reported(err)
		}

		// The daemon may drop the connection before the reply while it
		// shuts down; only a reported error counts as failure.
		_, err := c.Call(ctx, string(wm.CmdStop), nil)
		var remote *ipc.RemoteError
		if errors.As(err, &remote) {
			printError(err.Error())
			return reported(err)
		}
		return printDone("Daemon stopping")
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "/tmp/gridwm.sock", "Control socket path")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/gridwm/config.yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", ipc.DefaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(swapCmd)
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(placeCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(floatCmd)
	rootCmd.AddCommand(fullscreenCmd)
	rootCmd.AddCommand(ratioCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(stopCmd)

	rootCmd.AddCommand(layoutCmd)
	layoutCmd.AddCommand(layoutSetCmd)
	layoutCmd.AddCommand(layoutCycleCmd)
	layoutCmd.AddCommand(layoutListCmd)
	layoutCmd.PersistentFlags().StringVar(&layoutWorkspace, "workspace", "", "Workspace name (default: focused workspace)")
	layoutSetCmd.Flags().Float64Var(&layoutRatio, "ratio", 0, "Split ratio in (0,1); 0 keeps the current one")
	layoutCycleCmd.Flags().BoolVar(&layoutReverse, "reverse", false, "Cycle backwards")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)

	statusCmd.Flags().BoolVar(&statusWindows, "windows", false, "Also list every window")
	moveCmd.Flags().StringVar(&moveWorkspace, "workspace", "", "Move to this workspace, creating it if needed")

	daemonCmd.Flags().BoolVar(&foreground, "foreground", false, "Also log to stderr")

	showCmd.Flags().BoolVar(&showASCII, "ascii", false, "Force ASCII mode (no Unicode)")
	showCmd.Flags().BoolVar(&showUnicode, "unicode", false, "Force Unicode mode")
	showCmd.Flags().BoolVar(&showNoIDs, "no-ids", false, "Hide window IDs")
	showCmd.Flags().IntVar(&showWidth, "width", 0, "Override terminal width")
	showCmd.Flags().IntVar(&showHeight, "height", 0, "Override terminal height")

	// Disable color if requested
	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			printError(err.Error())
		}
		os.Exit(1)
	}
}

// errReported marks an error already printed by the command.
var errReported = errors.New("reported")

func reported(err error) error {
	return fmt.Errorf("%w: %v", errReported, err)
}

// call sends one request to the daemon and prints any failure.
func call(method string, params map[string]interface{}) (*models.Response, error) {
	c := ipc.NewClient(socketPath, timeout)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := c.Call(ctx, method, params)
	if err != nil {
		printError(err.Error())
		return nil, reported(err)
	}
	return resp, nil
}

// getStatus fetches the daemon's model summary
func getStatus() (*wm.Status, error) {
	c := ipc.NewClient(socketPath, timeout)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	status, err := c.Status(ctx)
	if err != nil {
		printError(fmt.Sprintf("Failed to get status: %v", err))
		return nil, reported(err)
	}
	return status, nil
}

func printWindowResult(resp *models.Response, verb string) error {
	if jsonOutput {
		return printJSON(resp.Result)
	}
	var win model.WindowView
	if err := resp.Decode(&win); err != nil {
		return err
	}
	if win.ID == 0 {
		infoColor.Println("No window there")
		return nil
	}

	successColor.Printf("✓ %s window %d", verb, win.ID)
	if win.App != "" {
		fmt.Printf(" (%s)", win.App)
	}
	if win.Floating {
		fmt.Print(" [floating]")
	}
	fmt.Println()
	return nil
}

func printWorkspaceResult(resp *models.Response) error {
	if jsonOutput {
		return printJSON(resp.Result)
	}
	var ws model.WorkspaceView
	if err := resp.Decode(&ws); err != nil {
		return err
	}

	successColor.Printf("✓ Workspace %s: ", ws.ID)
	fmt.Printf("%s (ratio %.2f, %d windows)\n", ws.Layout, ws.Params.SplitRatio, len(ws.Windows))
	return nil
}

func printDone(msg string) error {
	if jsonOutput {
		return printJSON(map[string]interface{}{"ok": true})
	}
	successColor.Println("✓ " + msg)
	return nil
}

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

// getVisualizationOptions builds options from flags
func getVisualizationOptions() output.VisualizationOptions {
	opts := output.DefaultVisualizationOptions()

	// Override with flags if set
	if showASCII {
		opts.UseUnicode = false
	}
	if showUnicode {
		opts.UseUnicode = true
	}
	if showNoIDs {
		opts.ShowIDs = false
	}
	if showWidth > 0 {
		opts.MaxWidth = showWidth
	}
	if showHeight > 0 {
		opts.MaxHeight = showHeight
	}

	return opts
}
