package rowmap

import (
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_RejectsDuplicateColumns(t *testing.T) {
	_, err := NewTable("id", "name", "id")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateColumn)
	assert.Contains(t, err.Error(), `column "id"`)

	_, err = NewTable("id", "")
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestTable_AddRowCountMismatch(t *testing.T) {
	tbl, err := NewTable("a", "b")
	require.NoError(t, err)

	err = tbl.AddRow(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrColumnCountMismatch)
	assert.Zero(t, tbl.RowCount())

	require.NoError(t, tbl.AddRow(1, 2))
	assert.Equal(t, 1, tbl.RowCount())
}

func TestTable_Accessors(t *testing.T) {
	tbl := mustTable(t, []string{"Name", "Age"}, []any{"ada", int64(36)}, []any{"bob", nil})

	cols := tbl.Columns()
	assert.Equal(t, []Column{{Name: "Name", Index: 0}, {Name: "Age", Index: 1}}, cols)
	cols[0].Name = "changed"
	assert.Equal(t, "Name", tbl.Columns()[0].Name)

	v, err := tbl.Value(1, "Name")
	require.NoError(t, err)
	assert.Equal(t, "bob", v)

	v, err = tbl.Value(1, "Age")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = tbl.Value(2, "Name")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = tbl.Value(0, "Missing")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	row, err := tbl.Row(0)
	require.NoError(t, err)
	assert.Equal(t, 2, row.ColumnCount())
	assert.Equal(t, "Age", row.ColumnName(1))
	assert.Empty(t, row.ColumnName(2))
	_, err = row.Value(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	for _, i := range []int{-1, 2} {
		_, err = tbl.Row(i)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
}

func TestTable_AddRowCopiesValues(t *testing.T) {
	tbl, err := NewTable("a")
	require.NoError(t, err)
	vals := []any{"x"}
	require.NoError(t, tbl.AddRow(vals...))
	vals[0] = "y"

	v, err := tbl.Value(0, "a")
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestTableReader(t *testing.T) {
	tbl := mustTable(t, []string{"Name"}, []any{"ada"}, []any{"bob"})
	r := tbl.Reader()

	_, err := r.Value(0)
	assert.ErrorIs(t, err, ErrNotPositioned)

	var names []any
	for {
		ok, err := r.Advance()
		require.NoError(t, err)
		if !ok {
			break
		}
		v, err := r.Value(0)
		require.NoError(t, err)
		names = append(names, v)
	}
	assert.Equal(t, []any{"ada", "bob"}, names)

	// past the end Advance keeps reporting false without an error
	ok, err := r.Advance()
	assert.NoError(t, err)
	assert.False(t, ok)
	_, err = r.Value(0)
	assert.ErrorIs(t, err, ErrNoMoreRows)

	r.Reset()
	ok, err = r.Advance()
	require.NoError(t, err)
	require.True(t, ok)
	v, err := r.Value(0)
	require.NoError(t, err)
	assert.Equal(t, "ada", v)
	assert.Equal(t, 1, r.ColumnCount())
	assert.Equal(t, "Name", r.ColumnName(0))
}

func TestLoadTable(t *testing.T) {
	db := staticDB(t, []string{"Name", "Age"},
		[]driver.Value{"ada", int64(36)},
		[]driver.Value{[]byte("bob"), nil},
	)

	tbl, err := LoadTable(queryRows(t, db))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.RowCount())

	v, err := tbl.Value(1, "Name")
	require.NoError(t, err)
	assert.Equal(t, []byte("bob"), v)
}

func TestLoadTable_Errors(t *testing.T) {
	boom := errors.New("boom")

	_, err := LoadTable(&stubRows{colsErr: boom})
	assert.ErrorIs(t, err, boom)

	_, err = LoadTable(&stubRows{cols: []string{"a", "a"}})
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = LoadTable(&stubRows{cols: []string{"a"}, data: [][]any{{1}}, err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestLoadTable_Empty(t *testing.T) {
	tbl, err := LoadTable(&stubRows{cols: []string{"a"}})
	require.NoError(t, err)
	assert.Zero(t, tbl.RowCount())
	assert.Len(t, tbl.Columns(), 1)
}
