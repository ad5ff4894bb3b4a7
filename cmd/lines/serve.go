package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host Lines over SSH",
	Long: `Run an SSH server where every connection opens the Lines menu.

Players are identified by their SSH user name: it is shown on the
leaderboard and keys their suspended games. All sessions share the
database given by --db and the configuration given by --config.

A host key is generated at ~/.lines/host_key on first start unless
--host-key points somewhere else.

Examples:
  lines serve
  lines serve --ssh :2222 --idle-timeout 10m
  lines serve --host-key ./host_key --db ./lines.db

Connect with:
  ssh -p 23234 alice@localhost`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&flagSSHAddr, "ssh", tui.DefaultSSHServerConfig().Address, "listen address (host:port)")
	f.StringVar(&flagHostKey, "host-key", "", "host key file, generated when missing")
	f.DurationVar(&flagIdleTimeout, "idle-timeout", tui.DefaultSSHServerConfig().IdleTimeout, "disconnect idle sessions after this long")
}

func runServe(cmd *cobra.Command, _ []string) error {
	lines, err := loadConfig()
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = flagIdleTimeout
	cfg.TickRate = flagFPS
	cfg.Lines = &lines

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Lines SSH server listening on %s (Ctrl+C to stop)\n", server.Addr())
	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
	return nil
}
