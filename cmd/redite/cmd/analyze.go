package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/camille/redite/internal/adapters/socket"
	"github.com/camille/redite/internal/app"
	"github.com/camille/redite/internal/domain/analysis"
	"github.com/camille/redite/internal/ports"
	"github.com/spf13/cobra"
)

var (
	analyzeStem bool
	analyzeJSON bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a text file for repeated vocabulary",
	Long: "Reads the file and reports lemmas that occur two or more times. " +
		"Uses the daemon when one is running for this data dir, otherwise " +
		"loads the dictionary inline.",
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeStem, "stem", false, "stem out-of-dictionary words (inline mode only)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw result as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	text := string(data)

	dir := resolveDataDir()
	client := socket.NewClient(socket.SocketPath(dir))

	var result *ports.Result
	if client.Ping() {
		result, err = client.Analyze(text, nil)
	} else {
		result, err = analyzeInline(dir, text)
	}
	if err != nil {
		return err
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printResult(result)
	return nil
}

// analyzeInline runs one analysis without a daemon: load the
// dictionary, run the engine, wait for the terminal event.
func analyzeInline(dir, text string) (*ports.Result, error) {
	a, err := app.New(app.Config{DataDir: dir, StemFallback: analyzeStem})
	if err != nil {
		return nil, err
	}
	defer a.Stop()

	events, err := a.Analyze(text)
	if err != nil {
		return nil, err
	}

	for ev := range events {
		switch e := ev.(type) {
		case analysis.Complete:
			return &e.Result, nil
		case analysis.Failure:
			return nil, fmt.Errorf("analysis failed: %s", e.Err)
		}
	}
	return nil, fmt.Errorf("analysis ended without a result")
}

func printResult(r *ports.Result) {
	if len(r.LemmaFrequencies) == 0 {
		fmt.Println("no repeated vocabulary")
		fmt.Printf("%d words analyzed in %.1fms\n", r.Stats.WordCount, r.Stats.DurationMs)
		return
	}

	fmt.Printf("%-20s %5s %5s\n", "LEMMA", "FREQ", "HEAT")
	for _, lc := range r.LemmaFrequencies {
		fmt.Printf("%-20s %5d %5d\n", lc.Lemma, lc.Frequency, lc.Heat)
	}
	fmt.Printf("\n%d words, %d repeated occurrences, %.1fms\n",
		r.Stats.WordCount, r.Stats.RepeatedTokenCount, r.Stats.DurationMs)
}
