// Package ioexport reads tabular exports: BiG-SLICE BGC-info,
// GCF-membership and search results, harvested regions and biome
// assignments.
//
// Every reader skips malformed rows and returns them as errors next to
// the parsed rows.
package ioexport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/canerbagci/bgcatlas/internal/iofs"
)

// headerFunc tells if the first row of a file is a header.
type headerFunc func(row []string) bool

// numericID treats the first row as a header when its first field is not
// an integer.
func numericID(row []string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(row[0]))
	return err != nil
}

func always([]string) bool { return true }

func firstColumn(name string) headerFunc {
	return func(row []string) bool {
		return strings.EqualFold(strings.TrimSpace(row[0]), name)
	}
}

// rowFunc handles one data row. Line is 1-based.
type rowFunc func(line int, row []string) error

// readRows calls fn for every data row of a separated-values file.
// Errors from fn and malformed lines are collected, a failure to read
// the file stops reading.
func readRows(
	path string,
	sep rune,
	isHeader headerFunc,
	minCols int,
	fn rowFunc,
) ([]error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = sep
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var skipped []error
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				skipped = append(skipped, RowError(path, pe.Line, pe.Err))
				continue
			}
			return skipped, iofs.ReadFileError(path, err)
		}
		line, _ := r.FieldPos(0)

		if first {
			first = false
			if isHeader(row) {
				continue
			}
		}

		if len(row) < minCols {
			err = fmt.Errorf("expected %d columns, got %d", minCols, len(row))
			skipped = append(skipped, RowError(path, line, err))
			continue
		}
		if err = fn(line, row); err != nil {
			skipped = append(skipped, RowError(path, line, err))
		}
	}
	return skipped, nil
}

// fields converts columns of a row. The first conversion error is kept.
type fields struct {
	row []string
	err error
}

func (f *fields) str(i int) string {
	return strings.TrimSpace(f.row[i])
}

func (f *fields) int(i int, name string) int {
	s := f.str(i)
	res, err := strconv.Atoi(s)
	if err != nil && f.err == nil {
		f.err = fmt.Errorf("bad %s %q", name, s)
	}
	return res
}

func (f *fields) float(i int, name string) float64 {
	s := f.str(i)
	res, err := strconv.ParseFloat(s, 64)
	if err != nil && f.err == nil {
		f.err = fmt.Errorf("bad %s %q", name, s)
	}
	return res
}

// bool accepts 1/0, true/false in any case. An empty field is false.
func (f *fields) bool(i int, name string) bool {
	s := f.str(i)
	if s == "" {
		return false
	}
	res, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil && f.err == nil {
		f.err = fmt.Errorf("bad %s %q", name, s)
	}
	return res
}
