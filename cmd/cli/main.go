package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"bdsp-validator/internal/loader"
	"bdsp-validator/internal/validator"
)

var validModes = []string{"file", "folder", "convert"}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Print("no .env file found (using environment variables)")
	}

	// Define arguments
	modePtr := flag.String("mode", "file", `Validation mode. Allowed values are:
- "file" (validate a single solution CSV against its instance),
- "folder" (validate every solution CSV in a folder) and
- "convert" (convert an instance between JSON and the CSV triple, or rewrite
  a solution matrix normalized when -instance is given), where "file" is the default`)
	instancePtr := flag.String("instance", "", "Path to the instance JSON file (file and convert modes); in file mode, if empty, the instance is resolved from the solution filename")
	inputPtr := flag.String("input", "", "Solution CSV file (file mode), folder of solution CSVs (folder mode) or instance/solution file (convert mode)")
	outputPtr := flag.String("output", "", "Output file: per-shift breakdown CSV (file mode), aggregate report CSV (folder mode) or conversion target (convert mode)")
	flag.Parse()
	mode := strings.ToLower(*modePtr)
	instanceFile := *instancePtr
	input := *inputPtr
	output := *outputPtr

	instanceDir := getEnv("INSTANCE_DIR", "instances")

	// Validate arguments
	if !slices.Contains(validModes, mode) {
		log.Fatalf("%v is not a valid mode", mode)
	} else if input == "" {
		log.Fatal("an input file or folder must be specified")
	}

	start := time.Now()

	switch mode {
	case "file":
		if instanceFile == "" {
			instanceFile = filepath.Join(instanceDir, validator.InstanceName(input)+".json")
		}
		inst, err := loader.InstanceFromJSON(instanceFile)
		if err != nil {
			log.Fatalf("cannot load instance: %v", err)
		}
		sol, err := loader.SolutionFromCSV(inst, input)
		if err != nil {
			log.Fatalf("cannot load solution: %v", err)
		}

		log.Printf("validating %v\tfilename: %v", inst.Name, input)
		v := validator.New(inst, sol)
		valid := v.Validate()
		v.Report()

		if output != "" {
			if err := v.WriteBreakdown(output); err != nil {
				log.Fatalf("cannot write breakdown: %v", err)
			}
			log.Printf("objective breakdown written to %v", output)
		}
		if !valid {
			os.Exit(1)
		}

	case "folder":
		fv := validator.NewFolderValidator(input, instanceDir)
		if workers := getEnv("WORKERS", ""); workers != "" {
			n, err := strconv.Atoi(workers)
			if err != nil || n < 1 {
				log.Fatalf("WORKERS must be a positive integer: %v", workers)
			}
			fv.Workers = n
		}
		if output == "" {
			output = "validation_report.csv"
		}

		if err := fv.ValidateAll(); err != nil {
			log.Fatalf("an error occurred during folder validation: %v", err)
		}
		if err := fv.WriteReport(output); err != nil {
			log.Fatalf("cannot write report: %v", err)
		}
		log.Printf("completely finished after %.2f seconds", time.Since(start).Seconds())

	case "convert":
		var err error
		if instanceFile != "" {
			err = normalizeSolution(instanceFile, input, output)
		} else {
			err = convertInstance(input, output)
		}
		if err != nil {
			log.Fatalf("cannot convert: %v", err)
		}
	}
}

// convertInstance converts an instance between the JSON document and the
// CSV triple, picking the direction from the input extension. A JSON
// instance is written as the triple into the output directory; a legs CSV
// (with its companion _dist/_extra files) is written as a JSON document.
func convertInstance(input, output string) error {
	switch strings.ToLower(filepath.Ext(input)) {
	case ".json":
		inst, err := loader.InstanceFromJSON(input)
		if err != nil {
			return err
		}
		if output == "" {
			output = filepath.Dir(input)
		}
		if err := loader.WriteInstanceCSV(inst, output); err != nil {
			return err
		}
		log.Printf("instance %v written as CSV triple in %v", inst.Name, output)
	case ".csv":
		base := strings.TrimSuffix(input, filepath.Ext(input))
		inst, err := loader.InstanceFromCSV(input, base+"_dist.csv", base+"_extra.csv")
		if err != nil {
			return err
		}
		if output == "" {
			output = base + ".json"
		}
		if err := loader.WriteInstanceJSON(inst, output); err != nil {
			return err
		}
		log.Printf("instance %v written to %v", inst.Name, output)
	default:
		return fmt.Errorf("unsupported instance extension: %v", input)
	}
	return nil
}

// normalizeSolution rewrites a solution matrix against its instance: empty
// rows are dropped and shifts are renumbered in file order.
func normalizeSolution(instanceFile, input, output string) error {
	inst, err := loader.InstanceFromJSON(instanceFile)
	if err != nil {
		return err
	}
	sol, err := loader.SolutionFromCSV(inst, input)
	if err != nil {
		return err
	}
	if output == "" {
		output = input
	}
	if err := loader.WriteSolutionCSV(sol, output); err != nil {
		return err
	}
	log.Printf("solution with %v shifts written to %v", len(sol.Shifts), output)
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
