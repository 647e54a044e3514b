// redite flags vocabulary repetition in French prose.
// Single binary: builds the lemma dictionary, analyzes text, and runs
// the daemon behind the editor integration.
package main

import (
	"os"

	"github.com/camille/redite/cmd/redite/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
