package validator

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"bdsp-validator/internal/loader"
)

// FileResult is one row of the batch report.
type FileResult struct {
	Filename  string
	Instance  string
	Objective int
	Feasible  bool
	Errors    []string
}

// FolderValidator validates every solution CSV in a folder, resolving each
// file's instance by filename convention from InstanceDir. Files are
// validated concurrently; shift evaluation is pure, so the only shared data
// is the read-only instances.
type FolderValidator struct {
	SolutionDir string
	InstanceDir string
	Workers     int
	Results     []FileResult
}

func NewFolderValidator(solutionDir, instanceDir string) *FolderValidator {
	return &FolderValidator{
		SolutionDir: solutionDir,
		InstanceDir: instanceDir,
		Workers:     runtime.NumCPU(),
	}
}

// InstanceName derives the instance name from a solution filename. Files
// named *realistic_m_n* resolve to realistic_m_n; anything else resolves to
// the filename without its extension.
func InstanceName(file string) string {
	name := filepath.Base(file)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if i := strings.Index(name, "realistic"); i >= 0 {
		parts := strings.Split(name[i:], "_")
		if len(parts) >= 3 {
			return strings.Join(parts[:3], "_")
		}
	}
	return name
}

// ValidateAll validates every solution file in the folder. A file that fails
// to load is reported in its result row and does not abort the run. Results
// keep the sorted file order regardless of worker scheduling.
func (fv *FolderValidator) ValidateAll() error {
	files, err := filepath.Glob(filepath.Join(fv.SolutionDir, "*.csv"))
	if err != nil {
		return fmt.Errorf("list solutions in %v: %w", fv.SolutionDir, err)
	}
	sort.Strings(files)
	log.Printf("found %v solution files in %v", len(files), fv.SolutionDir)

	workers := fv.Workers
	if workers < 1 {
		workers = 1
	}

	fv.Results = make([]FileResult, len(files))
	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				fv.Results[i] = fv.validateFile(files[i])
			}
		}()
	}
	for i := range files {
		indices <- i
	}
	close(indices)
	wg.Wait()

	for i, result := range fv.Results {
		log.Printf("(%v/%v)\tvalidated %v against instance %v: feasible=%v",
			i+1, len(files), result.Filename, result.Instance, result.Feasible)
	}
	return nil
}

func (fv *FolderValidator) validateFile(file string) FileResult {
	name := InstanceName(file)
	result := FileResult{Filename: filepath.Base(file), Instance: name}

	inst, err := loader.InstanceFromJSON(filepath.Join(fv.InstanceDir, name+".json"))
	if err != nil {
		result.Errors = []string{err.Error()}
		return result
	}
	sol, err := loader.SolutionFromCSV(inst, file)
	if err != nil {
		result.Errors = []string{err.Error()}
		return result
	}

	v := New(inst, sol)
	result.Feasible = v.Validate()
	result.Objective = sol.Value
	result.Errors = v.ErrorMessages()
	return result
}

// WriteReport writes one aggregate row per validated file.
func (fv *FolderValidator) WriteReport(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("write report %v: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"filename", "instance", "objective", "feasible", "errors"}); err != nil {
		return fmt.Errorf("write report %v: %w", file, err)
	}
	for _, result := range fv.Results {
		row := []string{
			result.Filename,
			result.Instance,
			strconv.Itoa(result.Objective),
			strconv.FormatBool(result.Feasible),
			strings.Join(result.Errors, "; "),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write report %v: %w", file, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
