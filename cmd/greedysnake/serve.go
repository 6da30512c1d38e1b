package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/greedysnake/internal/logging"
	"github.com/vovakirdan/greedysnake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the greedysnake SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session sized to the client's terminal.
All sessions start from the same configuration.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.greedysnake/host_key

Examples:
  greedysnake serve                           # Listen on :23234 with auto-generated key
  greedysnake serve --ssh :2222               # Listen on port 2222
  greedysnake serve --host-key ./my_host_key  # Use specific host key
  greedysnake serve --metrics :9090           # Expose Prometheus metrics

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}

func runServe(_ *cobra.Command, _ []string) {
	gameCfg, src, err := loadConfig()
	exitOnError("loading config", err)

	logger, closer, err := logging.New(gameCfg.Logger, "greedysnake-ssh", os.Stderr)
	exitOnError("opening log", err)
	defer closer.Close()
	logger.Info("configuration loaded", "source", src)

	cfg := tui.SSHServerConfig{
		Address:        flagSSHAddr,
		HostKeyPath:    flagHostKey,
		IdleTimeout:    time.Duration(flagIdleTimeout) * time.Minute,
		MetricsAddress: flagMetricsAddr,
		Game:           gameCfg,
	}

	server, err := tui.NewSSHServer(cfg, logger)
	exitOnError("creating server", err)

	fmt.Printf("Starting greedysnake SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		closer.Close()
		exitOnError("serving", err)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return port
}
