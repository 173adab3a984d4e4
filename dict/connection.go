package dict

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ConnectionTable is a column-major i16[rows*cols] matrix of connection
// costs between right/left context IDs.
type ConnectionTable struct {
	Rows, Cols int
	Data       []int16
}

// NewConnectionTable wraps rows/cols/data into a ConnectionTable,
// matching the column-major layout WriteDict/ReadConnectionTable expect.
func NewConnectionTable(rows, cols int, data []int16) ConnectionTable {
	return ConnectionTable{Rows: rows, Cols: cols, Data: data}
}

// Get returns the connection cost from rightID to leftID:
// data[leftID*rows + rightID].
func (c ConnectionTable) Get(rightID, leftID int) int16 {
	return c.Data[leftID*c.Rows+rightID]
}

// WriteDict serializes: usize rows, usize cols, then rows*cols
// little-endian i16 in column-major order.
func (c ConnectionTable) WriteDict(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(c.Rows)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(c.Cols)); err != nil {
		return err
	}
	for _, v := range c.Data {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadConnectionTable deserializes a ConnectionTable written by
// WriteDict.
func ReadConnectionTable(r io.Reader) (ConnectionTable, error) {
	var rows, cols uint64
	if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
		return ConnectionTable{}, fmt.Errorf("dict: read connection rows: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &cols); err != nil {
		return ConnectionTable{}, fmt.Errorf("dict: read connection cols: %w", err)
	}
	data := make([]int16, rows*cols)
	for i := range data {
		if err := binary.Read(r, binary.LittleEndian, &data[i]); err != nil {
			return ConnectionTable{}, fmt.Errorf("dict: read connection data[%d]: %w", i, err)
		}
	}
	return ConnectionTable{Rows: int(rows), Cols: int(cols), Data: data}, nil
}
