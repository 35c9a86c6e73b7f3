// Package grid reads and writes rectangular arrays of float64 stored as plain
// text, one row per line with whitespace separated values.
package grid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrMalformed      = errors.New("failed to parse input")
	ErrEmpty          = errors.New("input is empty")
	ErrNotRectangular = errors.New("input is not rectangular")
)

// Load parses a rectangular array from r.  Every line is one row; a line
// containing anything that is not a finite decimal float fails with
// ErrMalformed.  The
// number of values must be a non-zero multiple of the number of lines.
func Load(r io.Reader) (*mat.Dense, error) {
	var values []float64
	rows := 0

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for s.Scan() {
		rows++
		for _, field := range strings.Fields(s.Text()) {
			v, err := parseValue(field)
			if err != nil {
				return nil, fmt.Errorf("%w: line %v: %q", ErrMalformed, rows, field)
			}
			values = append(values, v)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to load from input: %w", err)
	}

	if len(values) == 0 {
		return nil, ErrEmpty
	} else if len(values)%rows != 0 {
		return nil, fmt.Errorf("%w: %v values on %v lines", ErrNotRectangular, len(values), rows)
	}
	return mat.NewDense(rows, len(values)/rows, values), nil
}

// parseValue accepts decimal notation only.  ParseFloat alone would also
// take nan, inf and hex floats.
func parseValue(field string) (float64, error) {
	if strings.ContainsAny(field, "xX") {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

// LoadFile loads the array stored in the file at path.
func LoadFile(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file %v: %w", path, err)
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return m, nil
}

// Write writes m to w one row per line with tab separated values formatted
// with %.6g.
func Write(w io.Writer, m mat.Matrix) error {
	bw := bufio.NewWriter(w)
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if j > 0 {
				bw.WriteByte('\t')
			}
			bw.WriteString(strconv.FormatFloat(m.At(i, j), 'g', 6, 64))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile writes m to the file at path, replacing any existing content.
func WriteFile(path string, m mat.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
