package rowmap

import (
	"github.com/Station-Manager/errors"
)

type cursorState uint8

const (
	cursorNotStarted cursorState = iota
	cursorPositioned
	cursorExhausted
)

// Cursor adapts a forward-only Rows to RowSource. Every Advance consumes the
// upstream row; once the upstream reports no more data the cursor is
// exhausted for good.
type Cursor struct {
	rows  Rows
	cols  []string
	vals  []any
	ptrs  []any
	state cursorState
}

// NewCursor wraps rows. The caller keeps ownership of rows and closes it.
func NewCursor(rows Rows) *Cursor {
	return &Cursor{rows: rows}
}

// Advance moves to the next row. It returns false when the upstream has no
// more rows and fails with ErrNoMoreRows if called again after that.
func (c *Cursor) Advance() (bool, error) {
	const op errors.Op = "rowmap.Cursor.Advance"
	if c.state == cursorExhausted {
		return false, newError(KindNoMoreRows, op)
	}
	if !c.rows.Next() {
		c.state = cursorExhausted
		c.vals = nil
		if err := c.rows.Err(); err != nil {
			return false, wrap(op, err)
		}
		return false, nil
	}
	if err := c.loadColumns(); err != nil {
		c.state = cursorExhausted
		return false, wrap(op, err)
	}
	for i := range c.vals {
		c.vals[i] = nil
	}
	if err := c.rows.Scan(c.ptrs...); err != nil {
		return false, wrap(op, err)
	}
	c.state = cursorPositioned
	return true, nil
}

func (c *Cursor) loadColumns() error {
	if c.cols != nil {
		return nil
	}
	cols, err := c.rows.Columns()
	if err != nil {
		return err
	}
	c.cols = cols
	c.vals = make([]any, len(cols))
	c.ptrs = make([]any, len(cols))
	for i := range c.vals {
		c.ptrs[i] = &c.vals[i]
	}
	return nil
}

// ColumnCount returns the number of columns in the result. The schema is
// read from the upstream on first use.
func (c *Cursor) ColumnCount() int {
	if c.cols == nil {
		if err := c.loadColumns(); err != nil {
			return 0
		}
	}
	return len(c.cols)
}

// ColumnName returns the name of column i, or "" if i is out of range.
func (c *Cursor) ColumnName(i int) string {
	if i < 0 || i >= c.ColumnCount() {
		return ""
	}
	return c.cols[i]
}

// Value returns the raw value of column i in the current row.
func (c *Cursor) Value(i int) (any, error) {
	const op errors.Op = "rowmap.Cursor.Value"
	switch c.state {
	case cursorNotStarted:
		return nil, newError(KindNotPositioned, op)
	case cursorExhausted:
		return nil, newError(KindNoMoreRows, op)
	}
	if i < 0 || i >= len(c.vals) {
		return nil, indexError(op, i)
	}
	return c.vals[i], nil
}
