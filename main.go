// main is the entry point for the adlens CLI.
package main

import (
	"fmt"
	"os"

	"github.com/adlens/adlens/cmd"
	"github.com/adlens/adlens/internal/iostore"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns the process exit code.
// It exists so deferred cleanup runs before os.Exit.
func run() int {
	cmd.SetStoreManager(iostore.Manager)
	defer iostore.CloseStores()

	err := cmd.Execute()

	if perr := cmd.StopProfiling(); perr != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warn failed to stop profiling: %v\n", perr)
	}

	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Fatal %v\n", err)
		return 1
	}
	return 0
}
