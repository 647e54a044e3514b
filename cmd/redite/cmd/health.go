package cmd

import (
	"fmt"

	"github.com/camille/redite/internal/adapters/socket"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check daemon status",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	client := socket.NewClient(socket.SocketPath(resolveDataDir()))

	if !client.Ping() {
		fmt.Println("redite daemon is not running")
		return nil
	}

	health, err := client.Health()
	if err != nil {
		return err
	}

	fmt.Printf("status:  %s\n", health.Status)
	fmt.Printf("entries: %d\n", health.Entries)
	fmt.Printf("uptime:  %s\n", health.Uptime)
	return nil
}
