package builder

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/text/encoding"
)

// Record is one parsed lexicon entry: MeCab's surface/left_id/right_id/
// cost columns plus whatever feature columns follow.
type Record struct {
	Surface  string
	LeftID   int
	RightID  int
	Cost     int64
	Features []string
}

func readDecoded(path string, enc encoding.Encoding) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("builder: read %s: %w", path, err)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("builder: decode %s: %w", path, err)
	}
	return decoded, nil
}

// ParseCSV parses one MeCab-format lexicon CSV file.
func ParseCSV(path string, enc encoding.Encoding) ([]Record, error) {
	decoded, err := readDecoded(path, enc)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("builder: parse csv %s: %w", path, err)
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		if len(row) < 4 {
			return nil, fmt.Errorf("builder: %s line %d: need at least 4 fields, got %d", path, i+1, len(row))
		}
		left, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("builder: %s line %d: left_id: %w", path, i+1, err)
		}
		right, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("builder: %s line %d: right_id: %w", path, i+1, err)
		}
		cost, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("builder: %s line %d: cost: %w", path, i+1, err)
		}
		features := make([]string, len(row)-4)
		copy(features, row[4:])
		records = append(records, Record{Surface: row[0], LeftID: left, RightID: right, Cost: cost, Features: features})
	}
	return records, nil
}
