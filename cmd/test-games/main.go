package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/diamondos/dugout/internal/testgames"
)

// Default configuration constants.
const (
	defaultNumGames     = 10
	defaultInnings      = 6
	defaultConflictRate = 0.2
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultTestTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numGames     = flag.Int("games", defaultNumGames, "Number of games to script and play")
		innings      = flag.Int("innings", defaultInnings, "Innings per game")
		conflictRate = flag.Float64("conflict", defaultConflictRate, "Fraction of plays where managers disagree")
		workers      = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile      = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testgames.ShowHelp()
		return
	}

	// Setup logging
	if err := testgames.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &testgames.Config{
		BaseURL:      *baseURL,
		NumGames:     *numGames,
		Innings:      *innings,
		ConflictRate: *conflictRate,
		Workers:      *workers,
		Timeout:      *timeout,
		LogFile:      *logFile,
		Verbose:      *verbose,
	}

	// Run the test
	if err := testgames.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
