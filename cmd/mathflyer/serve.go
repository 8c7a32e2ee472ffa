package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mathflyer/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Math Flyer SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own independent run sized to its terminal.
Global flags (--config, --difficulty, --category, ...) apply to every session.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.mathflyer/host_key

Examples:
  mathflyer serve                           # Listen on :23234 with auto-generated key
  mathflyer serve --ssh :2222               # Listen on port 2222
  mathflyer serve --difficulty easy --max-difficulty 2

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	exitOnErr("loading config", err)

	qs, err := loadQuestions()
	exitOnErr("loading questions", err)

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = flagSSHAddr
	srvCfg.HostKeyPath = flagHostKey
	srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	if flagFPS > 0 {
		srvCfg.TickRate = flagFPS
	}

	server, err := tui.NewSSHServer(srvCfg, tui.GameOptions{
		Config:    cfg,
		Questions: qs,
		Debug:     flagDebug,
	})
	exitOnErr("creating server", err)

	fmt.Printf("Starting Math Flyer SSH server on %s with %d questions\n", srvCfg.Address, len(qs))
	fmt.Println("Press Ctrl+C to stop")

	exitOnErr("serving", server.ListenAndServe())
}
