// Command replay verifies a logged event stream against a fresh
// matching core: every E record is replayed through the engine and the
// resulting trades are compared, in order, against the logged T
// records. Exit codes: 0 match, 1 mismatch, 2 I/O error.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"elob/replay"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: replay <logfile>")
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	result, err := replay.Run(os.Args[1], logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(2)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	fmt.Printf("expected trades: %d\nproduced trades: %d\n", result.ExpectedCount, result.ProducedCount)

	if result.OK {
		fmt.Println("MATCH")
		os.Exit(0)
	}

	fmt.Println("MISMATCH")
	for _, m := range result.Mismatches {
		fmt.Println(" -", m)
	}
	os.Exit(1)
}
