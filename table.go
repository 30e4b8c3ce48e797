package rowmap

import (
	"github.com/Station-Manager/errors"
)

// Column describes one column of a Table.
type Column struct {
	Name  string
	Index int
}

// Table is a materialized result: a fixed column schema and any number of
// rows, randomly accessible and re-readable.
type Table struct {
	columns []Column
	byName  map[string]int
	rows    [][]any
}

// NewTable creates an empty table with the given column names.
func NewTable(columns ...string) (*Table, error) {
	const op errors.Op = "rowmap.NewTable"
	t := &Table{
		columns: make([]Column, len(columns)),
		byName:  make(map[string]int, len(columns)),
	}
	for i, name := range columns {
		if _, dup := t.byName[name]; dup || name == "" {
			return nil, &Error{Kind: KindDuplicateColumn, Op: op, Column: name, Index: i}
		}
		t.byName[name] = i
		t.columns[i] = Column{Name: name, Index: i}
	}
	return t, nil
}

// LoadTable drains rows into a new Table. rows is consumed; the caller still
// closes it.
func LoadTable(rows Rows) (*Table, error) {
	const op errors.Op = "rowmap.LoadTable"
	cols, err := rows.Columns()
	if err != nil {
		return nil, wrap(op, err)
	}
	t, err := NewTable(cols...)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, wrap(op, err)
		}
		t.rows = append(t.rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return t, nil
}

// AddRow appends a row. The number of values must equal the column count.
func (t *Table) AddRow(values ...any) error {
	const op errors.Op = "rowmap.Table.AddRow"
	if len(values) != len(t.columns) {
		return &Error{
			Kind: KindColumnCountMismatch,
			Op:   op,
			Err:  errors.New(op).Errorf("got %d values for %d columns", len(values), len(t.columns)),
		}
	}
	t.rows = append(t.rows, append([]any(nil), values...))
	return nil
}

// Columns returns a copy of the column schema.
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

func (t *Table) RowCount() int { return len(t.rows) }

// Row returns a view of row i.
func (t *Table) Row(i int) (Row, error) {
	const op errors.Op = "rowmap.Table.Row"
	if i < 0 || i >= len(t.rows) {
		return nil, indexError(op, i)
	}
	return tableRow{t: t, i: i}, nil
}

// Value returns the value stored at (row, column).
func (t *Table) Value(row int, column string) (any, error) {
	const op errors.Op = "rowmap.Table.Value"
	if row < 0 || row >= len(t.rows) {
		return nil, indexError(op, row)
	}
	c, ok := t.byName[column]
	if !ok {
		return nil, &Error{Kind: KindIndexOutOfRange, Op: op, Column: column, Index: -1}
	}
	return t.rows[row][c], nil
}

// Reader returns a RowSource positioned before the first row. Readers do not
// consume the table; any number may be used, in any order.
func (t *Table) Reader() *TableReader {
	return &TableReader{t: t, pos: -1}
}

type tableRow struct {
	t *Table
	i int
}

func (r tableRow) ColumnCount() int { return len(r.t.columns) }

func (r tableRow) ColumnName(i int) string {
	if i < 0 || i >= len(r.t.columns) {
		return ""
	}
	return r.t.columns[i].Name
}

func (r tableRow) Value(i int) (any, error) {
	const op errors.Op = "rowmap.Table.Row.Value"
	if i < 0 || i >= len(r.t.columns) {
		return nil, indexError(op, i)
	}
	return r.t.rows[r.i][i], nil
}

// TableReader walks a Table in row order.
type TableReader struct {
	t   *Table
	pos int
}

// Advance moves to the next row. Past the last row it keeps returning false.
func (r *TableReader) Advance() (bool, error) {
	if r.pos < len(r.t.rows) {
		r.pos++
	}
	return r.pos < len(r.t.rows), nil
}

// Reset rewinds the reader to before the first row.
func (r *TableReader) Reset() { r.pos = -1 }

func (r *TableReader) ColumnCount() int { return len(r.t.columns) }

func (r *TableReader) ColumnName(i int) string {
	return tableRow{t: r.t}.ColumnName(i)
}

func (r *TableReader) Value(i int) (any, error) {
	const op errors.Op = "rowmap.TableReader.Value"
	if r.pos < 0 {
		return nil, newError(KindNotPositioned, op)
	}
	if r.pos >= len(r.t.rows) {
		return nil, newError(KindNoMoreRows, op)
	}
	return tableRow{t: r.t, i: r.pos}.Value(i)
}
