package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/k4lab/go-cipher-search/api"
	"github.com/k4lab/go-cipher-search/config"
	"github.com/k4lab/go-cipher-search/internal/engine"
	apperrors "github.com/k4lab/go-cipher-search/internal/errors"
	"github.com/k4lab/go-cipher-search/internal/metrics"
	"github.com/k4lab/go-cipher-search/internal/report"
	"github.com/k4lab/go-cipher-search/kryptos"
)

func main() {
	// Define command-line flags
	var (
		help     = flag.Bool("help", false, "Show help message")
		version  = flag.Bool("version", false, "Show version information")
		port     = flag.String("port", "8080", "Port to run the server on")
		dataDir  = flag.String("data-dir", "./case_data", "Directory to store case data")
		caseFile = flag.String("case-file", "", "YAML case definition to load at startup")
		loadK4   = flag.Bool("k4", false, "Preload the canonical Kryptos K4 case")
		oneshot  = flag.String("oneshot", "", "Run a single search on the named case, print the report, and exit")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Cipher Search Engine - Parameter-grid cryptanalysis against anchored ciphertexts\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                                # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                    # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --case-file case.yml           # Load a case definition at startup\n", os.Args[0])
		fmt.Printf("  %s --k4 --oneshot %s      # Search the K4 case once and print the report\n", os.Args[0], kryptos.CaseName)
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Cipher Search Engine v1.0.0\n")
		fmt.Printf("Known-plaintext grid search with correction refinement and run archiving\n")
		return
	}

	// Initialize the engine
	log.Printf("Using data directory: %s", *dataDir)
	searchEngine := engine.NewEngine(*dataDir)

	instruments := metrics.New()
	searchEngine.SetInstruments(instruments)

	if *loadK4 {
		registerCase(searchEngine, kryptos.NewCase())
	}

	if *caseFile != "" {
		caseConfig, err := config.LoadCaseFile(*caseFile)
		if err != nil {
			log.Fatalf("Failed to load case file %s: %v", *caseFile, err)
		}
		registerCase(searchEngine, caseConfig)
	}

	// One-shot mode searches a single case synchronously and prints the
	// report instead of serving the API.
	if *oneshot != "" {
		if err := runOneshot(searchEngine, *oneshot); err != nil {
			log.Fatalf("One-shot search failed: %v", err)
		}
		return
	}

	// Initialize Gin router
	router := gin.Default()

	// Setup API routes
	api.SetupRoutes(router, searchEngine, instruments)

	// Start the server
	log.Printf("Starting server on port %s...", *port)
	if err := router.Run(":" + *port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// registerCase creates a case on the engine, tolerating one that already
// exists from a previous run's persisted data.
func registerCase(searchEngine *engine.Engine, caseConfig config.CaseConfig) {
	err := searchEngine.CreateCase(caseConfig)
	if errors.Is(err, apperrors.ErrCaseAlreadyExists) {
		log.Printf("Case '%s' already present, keeping persisted state", caseConfig.Name)
		return
	}
	if err != nil {
		log.Fatalf("Failed to create case '%s': %v", caseConfig.Name, err)
	}
	log.Printf("Created case '%s'", caseConfig.Name)
}

func runOneshot(searchEngine *engine.Engine, caseName string) error {
	caseAccessor, err := searchEngine.GetCase(caseName)
	if err != nil {
		return err
	}

	record, err := caseAccessor.Search(context.Background())
	if err != nil {
		return err
	}

	if err := searchEngine.PersistCaseData(caseName); err != nil {
		log.Printf("Warning: Failed to persist case data for '%s': %v", caseName, err)
	}

	return report.WriteText(os.Stdout, record)
}
