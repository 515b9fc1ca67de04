// Package main provides a performance benchmarking tool for the MyGameON CLI.
// It generates synthetic catalog exports of increasing size, runs tag
// normalization and catalog imports against each one several times, treating
// the first successful run as cold and averaging the rest as warm, and writes
// the timings to CSV for performance analysis and documentation.
//
// Prerequisites:
// - mygameon binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated CSV files and SQLite databases
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-store average, cold run and average of warm runs).
type BenchmarkResult struct {
	Catalog     string
	Command     string
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Workers     int
	NoStoreRuns int
	StoreRuns   int
	Sizes       []int
}

// rawTags are sampled to build synthetic tag cells, including unknown ones.
var rawTags = []string{
	"Controller Support", "co-op", "Online PvP", "multiplayer", "open world",
	"Story Rich", "Remastered", "VR", "Anime", "Rogue-like", "speedrun",
	"Local Co-Op", "singleplayer", "Early Access", "Metroidvania", "cozy",
}

// rawGenres are sampled to build synthetic genre cells.
var rawGenres = []string{"RPG", "Sandbox", "Action", "Pixel Art", "Strategy", "Puzzle", "Simulation"}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     5 * time.Minute,
		Workers:     8,
		NoStoreRuns: 3,
		StoreRuns:   4,
		Sizes:       []int{1_000, 10_000, 100_000},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the mygameon binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("mygameon"); err != nil {
		return fmt.Errorf("mygameon binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// runBenchmarks executes all benchmark tests across the generated catalogs
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d catalogs, %v timeout, %d workers, no-store: %d runs, store: %d runs\n",
		len(config.Sizes), config.Timeout, config.Workers, config.NoStoreRuns, config.StoreRuns)

	for _, size := range config.Sizes {
		name := fmt.Sprintf("games_%d", size)
		csvPath := filepath.Join(config.WorkDir, name+".csv")
		if err := generateCatalog(csvPath, size); err != nil {
			fmt.Printf("Skipping %s: %v\n", name, err)
			continue
		}
		fmt.Printf("Benchmarking %s\n", name)

		results = append(results, runBenchmarkSuite(config, name, "tags", "tag normalization", []string{"tags", "file", csvPath}))
		results = append(results, runBenchmarkSuite(config, name, "import", "catalog import", []string{"catalog", "import", csvPath}))
	}

	return results
}

// generateCatalog writes a synthetic catalog export with n rows
func generateCatalog(path string, n int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	rng := rand.New(rand.NewPCG(uint64(n), 42))
	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"objectID", "name", "genre", "tags", "size_gb"}); err != nil {
		return err
	}
	for i := range n {
		tags := make([]string, 1+rng.IntN(5))
		for j := range tags {
			tags[j] = rawTags[rng.IntN(len(rawTags))]
		}
		name := fmt.Sprintf("Game %d", i)
		if rng.IntN(10) == 0 {
			name += " Remastered"
		}
		record := []string{
			fmt.Sprintf("game-%d", i),
			name,
			rawGenres[rng.IntN(len(rawGenres))],
			strings.Join(tags, ";"),
			strconv.FormatFloat(rng.Float64()*150, 'f', 1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// runBenchmarkSuite runs both no-store and store benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, catalog, command, description string, args []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, catalog)

	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, args, backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No catalog store
	_, noStoreAvg := runPhase("none", config.NoStoreRuns, "No-store")

	// Phase 2: Fresh SQLite catalog; the first run inserts, the rest update
	dbPath := filepath.Join(config.WorkDir, catalog+"_"+command+".db")
	_ = os.Remove(dbPath)
	coldTime, warmAvg := runPhase("sqlite:"+dbPath, config.StoreRuns, "Store")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Catalog:     catalog,
		Command:     command,
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a mygameon command multiple times against a backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, args []string, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	backendName, connStr, _ := strings.Cut(backend, ":")
	args = append(append([]string{}, args...),
		"--catalog-backend", backendName,
		"--workers", strconv.Itoa(config.Workers),
		"--limit", "1",
	)
	if connStr != "" {
		args = append(args, "--catalog-db-connect", connStr)
	}

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("mygameon", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, args[0]) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)
	if command == "catalog" {
		return strings.Contains(outputStr, "Pushed") || strings.Contains(outputStr, "records in")
	}
	return strings.Contains(outputStr, "Completed in") && strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/mygameon_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"catalog", "cmd", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Catalog, result.Command, result.NoStoreTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "tags", "Tag Normalization:")
	printCommandSummary(results, "import", "Catalog Import:")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-14s: No-store: %s, Cold: %s, Warm: %s\n", result.Catalog, result.NoStoreTime, result.ColdTime, result.WarmTime)
		}
	}
}
