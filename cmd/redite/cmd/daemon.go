package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/camille/redite/internal/adapters/socket"
	"github.com/camille/redite/internal/app"
	"github.com/spf13/cobra"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the redite daemon",
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon",
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE:  runDaemonStop,
}

var daemonStem bool

func init() {
	daemonStartCmd.Flags().BoolVar(&daemonStem, "stem", false, "stem out-of-dictionary words")
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	dir := resolveDataDir()
	sockPath := socket.SocketPath(dir)

	client := socket.NewClient(sockPath)
	if client.Ping() {
		fmt.Println("daemon already running")
		return nil
	}

	a, err := app.New(app.Config{DataDir: dir, StemFallback: daemonStem})
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	// Watch the bundle file so a rebuild hot-reloads the dictionary.
	if err := a.Start(); err != nil {
		return err
	}

	srv := socket.NewServer(a, sockPath)
	if err := srv.Start(); err != nil {
		a.Stop()
		return err
	}

	entries, _ := a.DictionaryStats()
	fmt.Printf("redite daemon started at %s (%d entries)\n", sockPath, entries)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case <-srv.ShutdownCh():
	}

	fmt.Println("shutting down...")
	srv.Stop()
	return a.Stop()
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	sockPath := socket.SocketPath(resolveDataDir())
	client := socket.NewClient(sockPath)

	if !client.Ping() {
		fmt.Println("daemon is not running")
		return nil
	}

	if err := client.Shutdown(); err != nil {
		return err
	}

	fmt.Println("daemon stopped")
	return nil
}
