package builder

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MatrixDef is the parsed contents of matrix.def: a dense connection
// cost matrix in the same column-major layout dict.ConnectionTable uses.
type MatrixDef struct {
	Rows, Cols int
	Data       []int16
}

// ParseMatrixDef reads matrix.def: a "rows cols" header line followed by
// "right_id left_id cost" triples.
func ParseMatrixDef(path string) (*MatrixDef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("builder: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("builder: %s: missing header line", path)
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 2 {
		return nil, fmt.Errorf("builder: %s: header must have 2 fields, got %d", path, len(header))
	}
	rows, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, fmt.Errorf("builder: %s: rows: %w", path, err)
	}
	cols, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, fmt.Errorf("builder: %s: cols: %w", path, err)
	}

	data := make([]int16, rows*cols)
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("builder: %s line %d: expected 3 fields, got %d", path, lineNo, len(fields))
		}
		r, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("builder: %s line %d: row: %w", path, lineNo, err)
		}
		c, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("builder: %s line %d: col: %w", path, lineNo, err)
		}
		v, err := strconv.ParseInt(fields[2], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("builder: %s line %d: cost: %w", path, lineNo, err)
		}
		if r < 0 || r >= rows || c < 0 || c >= cols {
			return nil, fmt.Errorf("builder: %s line %d: index (%d,%d) out of range for %dx%d matrix", path, lineNo, r, c, rows, cols)
		}
		data[c*rows+r] = int16(v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("builder: %s: %w", path, err)
	}
	return &MatrixDef{Rows: rows, Cols: cols, Data: data}, nil
}
