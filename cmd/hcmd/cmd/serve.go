package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/hcmd/internal/remote"
	"github.com/msto63/hcmd/pkg/core/config"
)

var (
	serveHost  string
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the websocket remote console",
	Long: `Starts the remote console server.

Each websocket connection gets its own interpreter. Clients send
  {"type":"exec","payload":{"input":"echo hi"}}
and receive
  {"type":"output","payload":{"text":"hi\n", ...}}

Examples:
  hcmd serve                 # listen on the configured address
  hcmd serve --port 9500
  hcmd serve --watch         # apply config changes to new sessions`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reload console settings when the config file changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := remote.FromConfig(appConfig)
	cfg.Session.Logger = logger
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	srv := remote.New(cfg, logger)

	if serveWatch {
		w, err := watchConfig(srv)
		if err != nil {
			return err
		}
		if w != nil {
			defer w.Close()
		}
	}

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "remote console on ws://%s%s\n", srv.Address(), cfg.Path)
	fmt.Fprintln(cmd.OutOrStdout(), "press Ctrl+C to stop")

	select {
	case <-sigCh:
		fmt.Fprintln(cmd.OutOrStdout(), "\nstopping...")
	case err := <-errCh:
		if err != nil {
			printError(cmd, "server", err)
		}
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}

// watchConfig reconfigures srv whenever the loaded config file changes.
// Without a config file there is nothing to watch.
func watchConfig(srv *remote.Server) (*config.Watcher, error) {
	path := appConfig.Source()
	if path == "" {
		logger.Warn("no config file loaded, --watch ignored")
		return nil, nil
	}

	return config.Watch(path, func(cfg *config.Config) {
		next := remote.FromConfig(cfg)
		next.Session.Logger = logger
		srv.Reconfigure(next)
	}, logger)
}
