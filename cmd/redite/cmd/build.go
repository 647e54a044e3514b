package cmd

import (
	"fmt"
	"os"

	"github.com/camille/redite/internal/adapters/bbolt"
	"github.com/camille/redite/internal/adapters/bundlefile"
	"github.com/camille/redite/internal/adapters/fetch"
	"github.com/camille/redite/internal/adapters/socket"
	"github.com/camille/redite/internal/app"
	"github.com/camille/redite/internal/domain/lexicon"
	"github.com/spf13/cobra"
)

var buildBaseURL string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fetch lexicon sources and build the dictionary bundle",
	Long: "Fetches one source file per lexical category, extracts the entry " +
		"lists, merges them in priority order, and writes the bundle to the " +
		"store and the portable bundle file.",
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildBaseURL, "base", "", "base URL for category sources (<base>/<category>.js)")
	buildCmd.MarkFlagRequired("base")
}

func runBuild(cmd *cobra.Command, args []string) error {
	dir := resolveDataDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("data dir: %w", err)
	}

	client := fetch.NewClient(buildBaseURL)

	// Sequential, one category at a time; first failure aborts the build.
	var categories []lexicon.CategoryEntries
	for _, name := range lexicon.Categories {
		source, err := client.FetchCategory(name)
		if err != nil {
			return err
		}

		entries, err := lexicon.ExtractEntries(source, name)
		if err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}

		fmt.Printf("  %-12s %6d entries\n", name, len(entries))
		categories = append(categories, lexicon.CategoryEntries{Name: name, Entries: entries})
	}

	bundle := lexicon.Merge(categories)

	if err := bundlefile.Write(app.BundlePath(dir), bundle); err != nil {
		return err
	}

	// A running daemon holds the store's exclusive lock; it picks up
	// the new bundle file itself and persists it. Otherwise write the
	// store directly.
	if socket.NewClient(socket.SocketPath(dir)).Ping() {
		fmt.Println("daemon running; it will hot-reload the new bundle")
	} else {
		store, err := bbolt.NewStore(app.DBPath(dir))
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveBundle(bundle); err != nil {
			return err
		}
	}

	fmt.Printf("bundle built: %d entries (%s)\n", len(bundle.Entries), bundle.Timestamp)
	return nil
}
