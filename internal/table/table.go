package table

import (
	"errors"
	"fmt"
)

// Column positions of a comment table.
const (
	ColUser    = 0 // author identity (text)
	ColContent = 1 // comment text (text)
	ColVideo   = 2 // video name (text, unused by the analysis)
	ColLabel   = 3 // spam label (flag)

	// Width is the number of cells in every row.
	Width = 4
)

var (
	// ErrTypeMismatch is returned when a cell holds the wrong variant for its column.
	ErrTypeMismatch = errors.New("cell type mismatch")
	// ErrRowWidth is returned when a row does not have exactly Width cells.
	ErrRowWidth = errors.New("row width mismatch")
)

// TypeMismatchError describes the offending cell of an ErrTypeMismatch.
type TypeMismatchError struct {
	Row    int
	Column int
	Want   Kind
	Got    Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("row %d column %d: expected %s cell, got %s", e.Row, e.Column, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrTypeMismatch) hold.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// Table is an immutable rectangular table of cells.
type Table struct {
	rows [][]Cell
}

// New builds a table from rows. Every row must have exactly Width cells.
// The rows are copied, so later changes to the argument do not leak in.
func New(rows [][]Cell) (*Table, error) {
	t := &Table{rows: make([][]Cell, len(rows))}
	for i, row := range rows {
		if len(row) != Width {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), Width, ErrRowWidth)
		}
		t.rows[i] = append([]Cell(nil), row...)
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Cell returns the cell at row i, column col. It panics when out of range.
func (t *Table) Cell(i, col int) Cell {
	return t.rows[i][col]
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []Cell {
	return append([]Cell(nil), t.rows[i]...)
}

// Column returns a copy of column col.
func (t *Table) Column(col int) []Cell {
	out := make([]Cell, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[col]
	}
	return out
}

// TextAt returns the text value at row i, column col, or a *TypeMismatchError.
func (t *Table) TextAt(i, col int) (string, error) {
	c := t.rows[i][col]
	s, ok := c.Text()
	if !ok {
		return "", &TypeMismatchError{Row: i, Column: col, Want: KindText, Got: c.Kind()}
	}
	return s, nil
}

// FlagAt returns the boolean value at row i, column col, or a *TypeMismatchError.
func (t *Table) FlagAt(i, col int) (bool, error) {
	c := t.rows[i][col]
	b, ok := c.Flag()
	if !ok {
		return false, &TypeMismatchError{Row: i, Column: col, Want: KindFlag, Got: c.Kind()}
	}
	return b, nil
}

// Filter returns a new table with the rows for which keep returns true.
// The first error returned by keep aborts the filter.
func (t *Table) Filter(keep func(i int) (bool, error)) (*Table, error) {
	out := &Table{}
	for i, row := range t.rows {
		ok, err := keep(i)
		if err != nil {
			return nil, err
		}
		if ok {
			out.rows = append(out.rows, row)
		}
	}
	return out, nil
}
