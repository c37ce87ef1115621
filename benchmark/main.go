// Package main provides a performance benchmarking tool for the repocat CLI.
// It generates synthetic metrics tables of increasing size, then times each
// command reading the table from a CSV file and from an imported SQLite store.
// The first successful store run is treated as cold and the rest are averaged as warm.
//
// Prerequisites:
// - repocat binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for the generated tables and the SQLite store
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (file average, cold store run and average of warm store runs).
type BenchmarkResult struct {
	Rows     int
	Command  string
	Strategy string
	FileTime string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir    string
	Timeout    time.Duration
	Workers    int
	FileRuns   int
	StoreRuns  int
	TableSizes []int
	Commands   []string
	Strategies []string
}

// tableHeader is the column layout of a generated table.
var tableHeader = []string{
	"collection_name", "display_name",
	"star_count", "fork_count", "developer_count", "contributor_count",
	"active_developer_count_6_months", "commit_count_6_months",
	"merged_pull_request_count_6_months", "closed_issue_count_6_months",
	"first_commit_date", "last_commit_date",
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:    os.Args[1],
		Timeout:    5 * time.Minute,
		Workers:    8,
		FileRuns:   3,
		StoreRuns:  4,
		TableSizes: []int{1_000, 10_000, 100_000},
		Commands:   []string{"classify", "summary"},
		Strategies: []string{"standard", "median"},
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

	printSummary(config, results)
}

// checkPrerequisites verifies that the repocat binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("repocat"); err != nil {
		return fmt.Errorf("repocat binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// generateTable writes a synthetic table of n rows spread over ten collections.
func generateTable(path string, n int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	rng := rand.New(rand.NewPCG(uint64(n), 42))
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	writer := csv.NewWriter(file)
	if err := writer.Write(tableHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range n {
		count := func(scale int) string { return strconv.Itoa(int(rng.ExpFloat64() * float64(scale))) }
		first := end.AddDate(0, 0, -rng.IntN(5000))
		last := end.AddDate(0, 0, -rng.IntN(900))
		row := []string{
			fmt.Sprintf("collection-%d", i%10), fmt.Sprintf("org%d/repo%d", i/100, i),
			count(500), count(150), count(12), count(40),
			count(6), count(150), count(60), count(40),
			first.Format(time.DateOnly), last.Format(time.DateOnly),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// runBenchmarks executes all benchmark tests across the configured table sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult
	for _, size := range config.TableSizes {
		tablePath := filepath.Join(config.WorkDir, fmt.Sprintf("metrics_%d.csv", size))
		dbPath := filepath.Join(config.WorkDir, fmt.Sprintf("repocat_%d.db", size))
		fmt.Printf("Generating %d rows at %s\n", size, tablePath)
		if err := generateTable(tablePath, size); err != nil {
			fmt.Printf("Warning: failed to generate table: %v\n", err)
			continue
		}

		_ = os.Remove(dbPath)
		importCmd := exec.Command("repocat", "table", "import", tablePath, "--backend", "sqlite", "--db-connect", dbPath)
		if output, err := importCmd.CombinedOutput(); err != nil {
			fmt.Printf("Warning: failed to import table: %v\nOutput: %s\n", err, string(output))
			continue
		}

		for _, command := range config.Commands {
			for _, strategy := range config.Strategies {
				results = append(results, runBenchmarkSuite(config, size, tablePath, dbPath, command, strategy))
			}
		}
	}
	return results
}

// runBenchmarkSuite runs both file and store benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, size int, tablePath, dbPath, command, strategy string) BenchmarkResult {
	fmt.Printf("Running %s --strategy %s on %d rows\n", command, strategy, size)
	base := []string{command, "--strategy", strategy, "--workers", strconv.Itoa(config.Workers), "--as-of", "2024-06-01", "--output", "csv"}

	// Phase 1: file runs; every run parses the CSV, so all of them are averaged
	fmt.Printf("  File phase (%d runs)\n", config.FileRuns)
	fileAvg := average(runBenchmark(config, slices.Concat([]string{tablePath}, base), config.FileRuns))

	// Phase 2: store runs
	fmt.Printf("  Store phase (%d runs)\n", config.StoreRuns)
	storeTimes := runBenchmark(config, slices.Concat(base, []string{"--backend", "sqlite", "--db-connect", dbPath}), config.StoreRuns)
	var coldTime float64
	warmAvg := "TIMEOUT"
	if len(storeTimes) > 0 {
		coldTime = storeTimes[0]
		warmAvg = average(storeTimes[1:])
	}

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  File average: %s, Cold store time: %s, Warm store average: %s\n", fileAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Rows:     size,
		Command:  command,
		Strategy: strategy,
		FileTime: fileAvg,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// average formats the mean of times, or TIMEOUT when no run succeeded
func average(times []float64) string {
	if len(times) == 0 {
		return "TIMEOUT"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// runBenchmark executes a repocat command multiple times and returns the times of the successful runs
func runBenchmark(config BenchmarkConfig, args []string, numRuns int) []float64 {
	var times []float64
	for range numRuns {
		start := time.Now()
		cmd := exec.Command("repocat", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.Output()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	return times
}

// isSuccess checks that the command printed a CSV header and at least one row
func isSuccess(output []byte) bool {
	return strings.Count(string(output), "\n") >= 2
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("repocat_benchmark_%s.csv", timestamp))

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

	if err := writer.Write([]string{"rows", "cmd", "strategy", "file_avg", "cold_store", "warm_store_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		record := []string{strconv.Itoa(r.Rows), r.Command, r.Strategy, r.FileTime, r.ColdTime, r.WarmTime}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range config.Commands {
		fmt.Printf("%s:\n", command)
		for _, r := range results {
			if r.Command == command {
				fmt.Printf("  %7d rows %-9s: File: %s, Cold: %s, Warm: %s\n", r.Rows, r.Strategy, r.FileTime, r.ColdTime, r.WarmTime)
			}
		}
	}
}
