package cmd

import (
	"fmt"

	"github.com/camille/redite/internal/adapters/bbolt"
	"github.com/camille/redite/internal/adapters/bundlefile"
	"github.com/camille/redite/internal/adapters/socket"
	"github.com/camille/redite/internal/app"
	"github.com/camille/redite/internal/ports"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the stored bundle to a portable JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	dir := resolveDataDir()

	// A running daemon holds the store's exclusive lock; the canonical
	// bundle file carries the same data.
	var bundle *ports.Bundle
	if socket.NewClient(socket.SocketPath(dir)).Ping() {
		b, err := bundlefile.Read(app.BundlePath(dir))
		if err != nil {
			return fmt.Errorf("read bundle file: %w", err)
		}
		bundle = b
	} else {
		store, err := bbolt.NewStore(app.DBPath(dir))
		if err != nil {
			return err
		}
		defer store.Close()

		bundle, err = store.LoadBundle()
		if err != nil {
			return err
		}
	}
	if bundle == nil {
		return fmt.Errorf("no bundle in store; run 'redite build' first")
	}

	if err := bundlefile.Write(args[0], bundle); err != nil {
		return err
	}

	fmt.Printf("exported %d entries to %s\n", len(bundle.Entries), args[0])
	return nil
}
