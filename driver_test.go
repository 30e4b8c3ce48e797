package rowmap

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
)

// DBHandler answers one query of the in-memory test driver.
type DBHandler func(query string, args []driver.NamedValue) (cols []string, rows [][]driver.Value, err error)

type testConnector struct {
	h        DBHandler
	closeErr error
}

func (c *testConnector) Connect(context.Context) (driver.Conn, error) {
	return &testConn{h: c.h, closeErr: c.closeErr}, nil
}
func (c *testConnector) Driver() driver.Driver { return testDriver{} }

type testDriver struct{}

func (testDriver) Open(name string) (driver.Conn, error) {
	return nil, errors.New("testDriver.Open should not be called; use sql.OpenDB with connector")
}

type testConn struct {
	h        DBHandler
	closeErr error
}

func (c *testConn) Prepare(string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (c *testConn) Close() error                        { return nil }
func (c *testConn) Begin() (driver.Tx, error)           { return nil, driver.ErrSkip }

func (c *testConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	cols, data, err := c.h(query, args)
	if err != nil {
		return nil, err
	}
	return &testRows{cols: cols, data: data, closeErr: c.closeErr}, nil
}

type testRows struct {
	cols     []string
	data     [][]driver.Value
	i        int
	closeErr error
}

func (r *testRows) Columns() []string { return append([]string(nil), r.cols...) }
func (r *testRows) Close() error      { return r.closeErr }
func (r *testRows) Next(dest []driver.Value) error {
	if r.i >= len(r.data) {
		return io.EOF
	}
	row := r.data[r.i]
	for i := range dest {
		if i < len(row) {
			dest[i] = row[i]
		} else {
			dest[i] = nil
		}
	}
	r.i++
	return nil
}

// newTestDB creates a *sql.DB backed by the in-memory test driver.
func newTestDB(t *testing.T, h DBHandler) *sql.DB {
	t.Helper()
	db := sql.OpenDB(&testConnector{h: h})
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// staticDB serves the same result for every query.
func staticDB(t *testing.T, cols []string, rows ...[]driver.Value) *sql.DB {
	t.Helper()
	return newTestDB(t, func(string, []driver.NamedValue) ([]string, [][]driver.Value, error) {
		return cols, rows, nil
	})
}

// queryRows runs a query against db and closes the rows at test end.
func queryRows(t *testing.T, db *sql.DB) *sql.Rows {
	t.Helper()
	rows, err := db.QueryContext(context.Background(), "SELECT")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	t.Cleanup(func() { _ = rows.Close() })
	return rows
}

// stubRows is a Rows whose Next/Err behaviour is scripted.
type stubRows struct {
	cols    []string
	data    [][]any
	i       int
	err     error
	colsErr error
}

func (s *stubRows) Next() bool {
	if s.i >= len(s.data) {
		return false
	}
	s.i++
	return true
}

func (s *stubRows) Columns() ([]string, error) { return s.cols, s.colsErr }

func (s *stubRows) Scan(dest ...any) error {
	row := s.data[s.i-1]
	for i := range dest {
		*(dest[i].(*any)) = row[i]
	}
	return nil
}

func (s *stubRows) Err() error { return s.err }

// mustTable builds a Table or fails the test.
func mustTable(t *testing.T, cols []string, rows ...[]any) *Table {
	t.Helper()
	tbl, err := NewTable(cols...)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	for _, r := range rows {
		if err := tbl.AddRow(r...); err != nil {
			t.Fatalf("AddRow: %v", err)
		}
	}
	return tbl
}

// firstRow returns row 0 of a one-off table.
func firstRow(t *testing.T, cols []string, vals ...any) Row {
	t.Helper()
	row, err := mustTable(t, cols, vals).Row(0)
	if err != nil {
		t.Fatalf("Row: %v", err)
	}
	return row
}
