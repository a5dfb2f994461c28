package loader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"bdsp-validator/internal/model"
)

// instanceDocument mirrors the instance JSON layout: a legs array plus
// position-keyed distance and overhead tables.
type instanceDocument struct {
	Legs      []legDocument                 `mapstructure:"legs"`
	Distances map[string]map[string]float64 `mapstructure:"distances"`
	Extra     map[string]extraDocument      `mapstructure:"extra"`
}

type legDocument struct {
	Tour     int `mapstructure:"tour"`
	Start    int `mapstructure:"start"`
	End      int `mapstructure:"end"`
	StartPos int `mapstructure:"startPos"`
	EndPos   int `mapstructure:"endPos"`
}

type extraDocument struct {
	StartWork int `mapstructure:"startWork"`
	EndWork   int `mapstructure:"endWork"`
}

// InstanceFromJSON reads an instance from a single JSON document with keys
// "legs", "distances" and "extra". The position-keyed maps are converted to
// dense arrays, so any missing or out-of-range position is rejected here.
func InstanceFromJSON(file string) (*model.Instance, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read instance %v: %w", file, err)
	}
	var document map[string]any
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("parse instance %v: %w", file, err)
	}
	var doc instanceDocument
	if err := mapstructure.Decode(document, &doc); err != nil {
		return nil, fmt.Errorf("decode instance %v: %w", file, err)
	}

	legs := make([]model.Leg, 0, len(doc.Legs))
	for i, leg := range doc.Legs {
		legs = append(legs, model.Leg{
			ID:       i,
			Tour:     leg.Tour,
			Start:    leg.Start,
			End:      leg.End,
			StartPos: leg.StartPos,
			EndPos:   leg.EndPos,
		})
	}

	distance, err := denseMatrix(doc.Distances)
	if err != nil {
		return nil, fmt.Errorf("decode instance %v: %w", file, err)
	}
	startWork := make([]int, len(doc.Extra))
	endWork := make([]int, len(doc.Extra))
	for key, extra := range doc.Extra {
		position, err := strconv.Atoi(key)
		if err != nil || position < 0 || position >= len(doc.Extra) {
			return nil, fmt.Errorf("decode instance %v: extra position %q out of range", file, key)
		}
		startWork[position] = extra.StartWork
		endWork[position] = extra.EndWork
	}

	return model.NewInstance(instanceName(file), legs, distance, startWork, endWork)
}

// denseMatrix turns the string-keyed distances table into a dense square
// matrix indexed by integer position.
func denseMatrix(table map[string]map[string]float64) ([][]int, error) {
	n := len(table)
	matrix := make([][]int, n)
	for i := range matrix {
		matrix[i] = make([]int, n)
	}
	for rowKey, row := range table {
		i, err := strconv.Atoi(rowKey)
		if err != nil || i < 0 || i >= n {
			return nil, fmt.Errorf("distance position %q out of range", rowKey)
		}
		if len(row) != n {
			return nil, fmt.Errorf("distance row %v has %v entries, want %v", i, len(row), n)
		}
		for colKey, value := range row {
			j, err := strconv.Atoi(colKey)
			if err != nil || j < 0 || j >= n {
				return nil, fmt.Errorf("distance position %q out of range", colKey)
			}
			matrix[i][j] = int(value)
		}
	}
	return matrix, nil
}

// InstanceFromCSV reads an instance from the delimited-text triple: the legs
// table, the distance matrix and the two-row start/end overhead table. Leg
// ids are assigned from the row counter, in file order.
func InstanceFromCSV(legsFile, distanceFile, extraFile string) (*model.Instance, error) {
	legRows, err := readCSV(legsFile)
	if err != nil {
		return nil, err
	}
	if len(legRows) == 0 {
		return nil, fmt.Errorf("read legs %v: missing header", legsFile)
	}
	legs := make([]model.Leg, 0, len(legRows)-1)
	for id, row := range legRows[1:] {
		if len(row) != 5 {
			return nil, fmt.Errorf("read legs %v: row %v has %v fields, want 5", legsFile, id, len(row))
		}
		fields, err := numericRow(row)
		if err != nil {
			return nil, fmt.Errorf("read legs %v: row %v: %w", legsFile, id, err)
		}
		legs = append(legs, model.Leg{
			ID:       id,
			Tour:     fields[0],
			Start:    fields[1],
			End:      fields[2],
			StartPos: fields[3],
			EndPos:   fields[4],
		})
	}

	distanceRows, err := readCSV(distanceFile)
	if err != nil {
		return nil, err
	}
	distance := make([][]int, 0, len(distanceRows))
	for i, row := range distanceRows {
		fields, err := numericRow(row)
		if err != nil {
			return nil, fmt.Errorf("read distances %v: row %v: %w", distanceFile, i, err)
		}
		distance = append(distance, fields)
	}

	extraRows, err := readCSV(extraFile)
	if err != nil {
		return nil, err
	}
	if len(extraRows) != 2 {
		return nil, fmt.Errorf("read overheads %v: got %v rows, want 2", extraFile, len(extraRows))
	}
	startWork, err := numericRow(extraRows[0])
	if err != nil {
		return nil, fmt.Errorf("read overheads %v: %w", extraFile, err)
	}
	endWork, err := numericRow(extraRows[1])
	if err != nil {
		return nil, fmt.Errorf("read overheads %v: %w", extraFile, err)
	}

	return model.NewInstance(instanceName(legsFile), legs, distance, startWork, endWork)
}

// WriteInstanceJSON emits the instance as the single-document JSON layout
// accepted by InstanceFromJSON.
func WriteInstanceJSON(inst *model.Instance, file string) error {
	legs := make([]map[string]int, 0, len(inst.Legs))
	for _, leg := range inst.Legs {
		legs = append(legs, map[string]int{
			"tour":     leg.Tour,
			"start":    leg.Start,
			"end":      leg.End,
			"startPos": leg.StartPos,
			"endPos":   leg.EndPos,
		})
	}
	distances := make(map[string]map[string]int, len(inst.Distance))
	for i, row := range inst.Distance {
		entry := make(map[string]int, len(row))
		for j, value := range row {
			entry[strconv.Itoa(j)] = value
		}
		distances[strconv.Itoa(i)] = entry
	}
	extra := make(map[string]map[string]int, len(inst.StartWork))
	for i := range inst.StartWork {
		extra[strconv.Itoa(i)] = map[string]int{
			"startWork": inst.StartWork[i],
			"endWork":   inst.EndWork[i],
		}
	}

	raw, err := json.MarshalIndent(map[string]any{
		"legs":      legs,
		"distances": distances,
		"extra":     extra,
	}, "", "   ")
	if err != nil {
		return fmt.Errorf("encode instance %v: %w", inst.Name, err)
	}
	if err := os.WriteFile(file, raw, 0o644); err != nil {
		return fmt.Errorf("write instance %v: %w", file, err)
	}
	return nil
}

// WriteInstanceCSV emits the CSV triple (<name>.csv, <name>_dist.csv,
// <name>_extra.csv) into dir.
func WriteInstanceCSV(inst *model.Instance, dir string) error {
	if inst.Name == "" {
		return fmt.Errorf("write instance: name is not defined")
	}
	base := filepath.Join(dir, inst.Name)

	var legs strings.Builder
	legs.WriteString("tour,start,end,startPos,endPos\n")
	for _, leg := range inst.Legs {
		fmt.Fprintf(&legs, "%v,%v,%v,%v,%v\n", leg.Tour, leg.Start, leg.End, leg.StartPos, leg.EndPos)
	}
	if err := os.WriteFile(base+".csv", []byte(legs.String()), 0o644); err != nil {
		return fmt.Errorf("write legs: %w", err)
	}

	var dist strings.Builder
	for _, row := range inst.Distance {
		dist.WriteString(joinInts(row) + "\n")
	}
	if err := os.WriteFile(base+"_dist.csv", []byte(dist.String()), 0o644); err != nil {
		return fmt.Errorf("write distances: %w", err)
	}

	extra := joinInts(inst.StartWork) + "\n" + joinInts(inst.EndWork) + "\n"
	if err := os.WriteFile(base+"_extra.csv", []byte(extra), 0o644); err != nil {
		return fmt.Errorf("write overheads: %w", err)
	}
	return nil
}

func readCSV(file string) ([][]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open %v: %w", file, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %v: %w", file, err)
	}
	return rows, nil
}

// numericRow parses a CSV row of numbers. Fields may be written as floats
// (some producers quote non-numerics and emit 1.0 for 1); values are
// truncated to whole minutes.
func numericRow(row []string) ([]int, error) {
	fields := make([]int, 0, len(row))
	for _, cell := range row {
		value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, fmt.Errorf("field %q is not numeric", cell)
		}
		fields = append(fields, int(value))
	}
	return fields, nil
}

func joinInts(values []int) string {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = strconv.Itoa(v)
	}
	return strings.Join(cells, ",")
}

// instanceName derives the instance name from its file path.
func instanceName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
