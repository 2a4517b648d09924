package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/coursegrid/scheduler/internal/model"
	"github.com/coursegrid/scheduler/internal/solve"
)

var (
	validSolvers   = []string{"gophersat", "openwbo"}
	validEncodings = []string{"period", "fine"}
	validSpreads   = []string{"hard", "soft"}
	solvers        = map[string]func() solve.Solver{
		"gophersat": solve.NewGophersatSolver,
		"openwbo":   solve.NewOpenWBOSolver,
	}
)

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the input file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	solverPtr := flag.String("solver", "gophersat", "MaxSAT solver to use. Allowed values are: \"gophersat\" (in-process) and \"openwbo\" (external binary), where \"gophersat\" is the default")
	encodingPtr := flag.String("encoding", "period", "Variable encoding. Allowed values are: \"period\" (class-period grid) and \"fine\" (30-minute ticks), where \"period\" is the default")
	spreadPtr := flag.String("spread", "hard", "Department spread enforcement. Allowed values are: \"hard\" and \"soft\", where \"hard\" is the default")
	requireAllPtr := flag.Bool("require-all", false, "Fail the whole request unless every course can be scheduled")
	limitPtr := flag.Int("limit", 0, "Solver time limit in seconds; overrides the input file's time_limit_seconds")
	flag.Parse()
	solverStr := strings.ToLower(*solverPtr)
	encodingStr := strings.ToLower(*encodingPtr)
	spreadStr := strings.ToLower(*spreadPtr)
	filePath := *filePathPtr
	outFile := *outFilePathPtr

	// Validate arguments
	if !slices.Contains(validSolvers, solverStr) {
		log.Fatalf("%v is not a valid solver", solverStr)
	} else if !slices.Contains(validEncodings, encodingStr) {
		log.Fatalf("%v is not a valid encoding", encodingStr)
	} else if !slices.Contains(validSpreads, spreadStr) {
		log.Fatalf("%v is not a valid spread mode", spreadStr)
	} else if filePath == "" {
		log.Fatal("an input file must be specified")
	}

	// Extract input
	input, err := model.InputFromJSON(filePath)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	request, err := input.BuildRequest()
	if err != nil {
		log.Fatalf("invalid input: %v", err)
	}

	encoding, _ := model.ParseEncoding(encodingStr)
	spread, _ := model.ParseSpreadMode(spreadStr)
	cfg := model.Config{Encoding: encoding, Spread: spread, RequireAll: *requireAllPtr}

	limitSeconds := *limitPtr
	if limitSeconds <= 0 {
		limitSeconds = input.TimeLimitSeconds
	}
	if limitSeconds <= 0 {
		limitSeconds = model.DefaultTimeLimit
	}

	// Build schedule
	scheduler := model.NewScheduler(solvers[solverStr](), cfg)
	outcome, err := scheduler.Schedule(request, time.Duration(limitSeconds)*time.Second)
	if err != nil {
		log.Fatalf("an error occurred during schedule construction: %v", err)
	}

	if !outcome.Success {
		fmt.Printf("Status: %v\n", outcome.Status)
		os.Exit(20)
	}

	// Verify schedule correctness
	if err := model.Verify(request, cfg, outcome); err != nil {
		fmt.Printf("Verification failed: %v\n", err)
		os.Exit(15)
	}

	// Marshal output into json
	outcomeJson, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(outcomeJson))
	} else {
		err := os.WriteFile(outFile, outcomeJson, 0666)
		if err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}

	fmt.Printf("Scheduled: %v/%v\n", outcome.ScheduledCount, outcome.TotalCount)
	fmt.Printf("Status: %v\n", outcome.Status)
	os.Exit(10)
}
