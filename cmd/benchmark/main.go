package main

import (
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"bdsp-validator/internal/loader"
	"bdsp-validator/internal/validator"
)

// Benchmark harness: validates a corpus of solution files sequentially and
// records per-file wall time next to the verdict, so evaluator changes can
// be compared run to run.

type benchmarkResult struct {
	Filename   string
	Instance   string
	Legs       int
	Shifts     int
	Objective  int
	Feasible   bool
	DurationMs int64
}

func main() {
	inputPtr := flag.String("input", "", "Folder of solution CSVs to benchmark")
	instanceDirPtr := flag.String("instances", "instances", "Folder holding the instance JSON files")
	outPtr := flag.String("out", "benchmark_results.csv", "Output CSV file")
	flag.Parse()
	if *inputPtr == "" {
		log.Fatal("an input folder must be specified")
	}

	files, err := filepath.Glob(filepath.Join(*inputPtr, "*.csv"))
	if err != nil {
		log.Fatalf("cannot list solution files: %v", err)
	}
	sort.Strings(files)

	results := make([]benchmarkResult, 0, len(files))
	for i, file := range files {
		result, err := benchmarkFile(file, *instanceDirPtr)
		if err != nil {
			log.Printf("(%v/%v)\tskipping %v: %v", i+1, len(files), file, err)
			continue
		}
		log.Printf("(%v/%v)\t%v: %vms, objective %v, feasible %v",
			i+1, len(files), result.Filename, result.DurationMs, result.Objective, result.Feasible)
		results = append(results, result)
	}

	if err := writeResults(results, *outPtr); err != nil {
		log.Fatalf("cannot write results: %v", err)
	}
	log.Printf("benchmark results written to %v", *outPtr)
}

func benchmarkFile(file, instanceDir string) (benchmarkResult, error) {
	name := validator.InstanceName(file)
	inst, err := loader.InstanceFromJSON(filepath.Join(instanceDir, name+".json"))
	if err != nil {
		return benchmarkResult{}, err
	}
	sol, err := loader.SolutionFromCSV(inst, file)
	if err != nil {
		return benchmarkResult{}, err
	}

	start := time.Now()
	v := validator.New(inst, sol)
	feasible := v.Validate()
	duration := time.Since(start)

	return benchmarkResult{
		Filename:   filepath.Base(file),
		Instance:   inst.Name,
		Legs:       len(inst.Legs),
		Shifts:     len(sol.Shifts),
		Objective:  sol.Value,
		Feasible:   feasible,
		DurationMs: duration.Milliseconds(),
	}, nil
}

func writeResults(results []benchmarkResult, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"filename", "instance", "legs", "shifts", "objective", "feasible", "duration_ms"}); err != nil {
		return err
	}
	for _, result := range results {
		row := []string{
			result.Filename,
			result.Instance,
			strconv.Itoa(result.Legs),
			strconv.Itoa(result.Shifts),
			strconv.Itoa(result.Objective),
			strconv.FormatBool(result.Feasible),
			strconv.FormatInt(result.DurationMs, 10),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
