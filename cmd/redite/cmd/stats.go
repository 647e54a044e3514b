package cmd

import (
	"fmt"

	"github.com/camille/redite/internal/adapters/socket"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dictionary statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	client := socket.NewClient(socket.SocketPath(resolveDataDir()))

	if !client.Ping() {
		return fmt.Errorf("daemon not running. Start with: redite daemon start")
	}

	stats, err := client.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("entries:  %d\n", stats.Entries)
	fmt.Printf("built at: %s\n", stats.BundleBuiltAt)
	fmt.Printf("busy:     %v\n", stats.Busy)
	fmt.Printf("uptime:   %ds\n", stats.UptimeSeconds)
	return nil
}
