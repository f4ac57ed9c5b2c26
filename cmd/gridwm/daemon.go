package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/gridwm/internal/bridge"
	"github.com/yourusername/gridwm/internal/config"
	"github.com/yourusername/gridwm/internal/ipc"
	"github.com/yourusername/gridwm/internal/logging"
	"github.com/yourusername/gridwm/internal/state"
	"github.com/yourusername/gridwm/internal/wm"
)

var foreground bool

const shutdownGrace = 2 * time.Second

// daemonCmd runs the window manager
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the window manager",
	Long: `Connects to the GridServer helper, takes over window placement and
serves control requests until stopped by a signal or "gridwm stop".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon(cmd.Flags().Changed("socket"))
	},
}

func runDaemon(socketOverride bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		printError(fmt.Sprintf("Failed to load config: %v", err))
		return reported(err)
	}

	level := cfg.Logging.Level
	if debugMode {
		level = "debug"
	}
	if err := logging.Init(logging.Options{
		Level:   level,
		Path:    cfg.Logging.Path,
		Console: foreground || debugMode,
	}); err != nil {
		printError(fmt.Sprintf("Failed to open log: %v", err))
		return reported(err)
	}
	defer logging.Close()

	var (
		store     *state.RuntimeState
		statePath string
	)
	if cfg.State.Enabled {
		statePath = cfg.StatePath()
		store, err = state.LoadStateFrom(statePath)
		if err != nil {
			logging.Warn().Err(err).Str("path", statePath).Msg("ignoring unreadable state file")
			store = state.NewRuntimeState()
		}
	}

	binding, err := bridge.Dial(cfg.Bridge.SocketPath, cfg.Bridge.Timeout())
	if err != nil {
		logging.Error().Err(err).Str("path", cfg.Bridge.SocketPath).Msg("cannot reach window-system helper")
		printError(fmt.Sprintf("Cannot reach GridServer: %v", err))
		return reported(err)
	}
	defer binding.Disconnect()

	mgr, err := wm.New(wm.Options{
		Binding:   binding,
		Config:    cfg,
		Loader:    func() (*config.Config, error) { return config.LoadConfig(configPath) },
		State:     store,
		StatePath: statePath,
	})
	if err != nil {
		printError(err.Error())
		return reported(err)
	}

	path := cfg.IPC.SocketPath
	if socketOverride {
		path = socketPath
	}
	srv, err := ipc.Listen(path, mgr)
	if err != nil {
		logging.Error().Err(err).Str("path", path).Msg("cannot acquire control socket")
		if errors.Is(err, ipc.ErrSocketInUse) {
			printError("Another gridwm daemon is already running on " + path)
		} else {
			printError(err.Error())
		}
		return reported(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ctx) }()

	runErr := mgr.Run(ctx)
	// A stop request is answered just before Run returns; let that reply out.
	srv.Shutdown(shutdownGrace)
	if err := <-serveErr; err != nil {
		logging.Warn().Err(err).Msg("control socket stopped")
	}

	if runErr != nil {
		logging.Error().Err(runErr).Msg("manager failed")
		printError(runErr.Error())
		return reported(runErr)
	}
	return nil
}
