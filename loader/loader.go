// Package loader implements the CSV ingestion contract external to the
// structure-learning core: given a file path and an ordered description
// of variables (name plus permissible string categories), it produces
// the variable domain table and an N×M integer matrix whose entries are
// value-indices into each variable's domain.
package loader

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/JohnPierman/bnstruct/variable"
)

// VariableSpec describes one declared variable for Load: its name (must
// match a column in the CSV header, column order may differ) and its
// ordered list of permissible string values.
type VariableSpec struct {
	Name   string
	Values []string
}

// Load reads the CSV file at path, whose header row names variables (a
// superset of specs, in any order, is permitted), and returns the
// domain table — one variable.Variable per spec, in spec order — along
// with an N×M matrix where column j holds the value-index, within
// specs[j].Values, of row i's cell for specs[j].Name.
//
// Every data row must be non-empty. Every cell for a declared column
// must be one of that variable's declared values, else Load fails with
// an *InvalidValueError naming the row, variable, and offending value.
func Load(path string, specs []VariableSpec) ([]variable.Variable, [][]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, err
	}

	columnOf := make(map[string]int, len(header))
	for i, name := range header {
		columnOf[name] = i
	}

	vars := make([]variable.Variable, len(specs))
	sourceColumn := make([]int, len(specs))
	for j, spec := range specs {
		vars[j] = variable.New(spec.Name, spec.Values)
		col, ok := columnOf[spec.Name]
		if !ok {
			return nil, nil, &MissingColumnError{Variable: spec.Name}
		}
		sourceColumn[j] = col
	}

	var matrix [][]int
	rowNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rowNum++

		if len(record) == 0 || allEmpty(record) {
			return nil, nil, &EmptyRowError{Row: rowNum}
		}

		row := make([]int, len(specs))
		for j, spec := range specs {
			cell := record[sourceColumn[j]]
			idx, ok := vars[j].ValueIndex(cell)
			if !ok {
				return nil, nil, &InvalidValueError{Variable: spec.Name, Value: cell, Row: rowNum}
			}
			row[j] = idx
		}
		matrix = append(matrix, row)
	}

	return vars, matrix, nil
}

func allEmpty(record []string) bool {
	for _, cell := range record {
		if cell != "" {
			return false
		}
	}
	return true
}
