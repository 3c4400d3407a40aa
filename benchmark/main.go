// Package main provides a performance benchmarking tool for the auditview CLI.
// It measures dashboard render times across sample companies and worker counts,
// running each case multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - auditview binary installed and available in PATH
// - A DataLake directory holding <domain>_<company>_analysis.json payloads
//
// Usage: go run benchmark/main.go [datalake-dir]
//
//	datalake-dir: Directory containing the DataLake payload files
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Company  string
	Workers  int
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DataDir   string
	Timeout   time.Duration
	Runs      int
	Companies []string
	Workers   []int
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [datalake-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		DataDir:   os.Args[1],
		Timeout:   time.Minute,
		Runs:      5,
		Companies: []string{"aura", "beta", "crisis"},
		Workers:   []int{1, 5},
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

// checkPrerequisites verifies that the auditview binary and every company's payloads exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("auditview"); err != nil {
		return fmt.Errorf("auditview binary not found in PATH")
	}

	for _, company := range config.Companies {
		matches, err := filepath.Glob(filepath.Join(config.DataDir, "*_"+company+"_analysis.json"))
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("no analysis payloads for %s in %s", company, config.DataDir)
		}
	}

	return nil
}

// runBenchmarks executes the dashboard benchmark for every company and worker count
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d companies, %v timeout, workers %v, %d runs\n",
		len(config.Companies), config.Timeout, config.Workers, config.Runs)

	for _, company := range config.Companies {
		for _, workers := range config.Workers {
			fmt.Printf("Benchmarking %s with %d workers\n", company, workers)
			cold, warm := runBenchmark(config, company, workers)

			coldStr := "TIMEOUT"
			if cold > 0 {
				coldStr = fmt.Sprintf("%.3fs", cold)
			}
			warmStr := "TIMEOUT"
			if len(warm) > 0 {
				var sum float64
				for _, t := range warm {
					sum += t
				}
				warmStr = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
			}

			fmt.Printf("  Cold time: %s, Warm average: %s\n", coldStr, warmStr)
			results = append(results, BenchmarkResult{Company: company, Workers: workers, ColdTime: coldStr, WarmTime: warmStr})
		}
	}

	return results
}

// runBenchmark renders one company dashboard several times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, company string, workers int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"dashboard",
		"--company", company,
		"--source-dir", config.DataDir,
		"--workers", strconv.Itoa(workers),
		"--color", "no",
	}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("auditview", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
			<-done
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output carries the dashboard footer
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Rendered") &&
		strings.Contains(outputStr, "views") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/auditview_benchmark_%s.csv", timestamp)

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

	if err := writer.Write([]string{"company", "workers", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Company, strconv.Itoa(result.Workers), result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-8s %2d workers: Cold: %s, Warm: %s\n", result.Company, result.Workers, result.ColdTime, result.WarmTime)
	}
}
