// Package rowmap maps relational query results onto plain Go structs by matching column names to field names.
//
// The same mapping runs over two row shapes: a forward-only cursor (Cursor,
// wrapping *sql.Rows or any Rows) and a materialized Table that can be read
// any number of times.
//
// # Basic Usage
//
//	m := rowmap.New()
//	users, err := rowmap.MapAll[User](m, rowmap.NewCursor(rows))
//
//	t, _ := rowmap.LoadTable(rows)
//	first, err := rowmap.MapTableFirst[User](m, t)
//
// # Mapping Rules
//
// For every column of a row, in column order:
//  1. Find the writable field whose name equals the column name (case-sensitive
//     unless WithCaseInsensitive is set). Columns with no field are skipped;
//     fields with no column keep their zero value.
//  2. Apply a registered converter for the field, if any.
//  3. Enum fields (see RegisterEnum) are parsed by member name; a value that
//     names no member leaves the field unset without an error.
//  4. Everything else is coerced into the field type; a value that cannot be
//     represented fails with ErrTypeCoercion.
//  5. Run a registered validator for the field, if any.
//
// A row with no columns fails with ErrEmptyRow; a result with no rows fails
// with ErrEmptyResult.
//
// # Coercion
//
// Numbers, booleans, strings and times convert the way spf13/cast does, with
// range checks on narrow integer and float fields. Fields implementing
// sql.Scanner (null.String, types.Decimal, uuid.UUID, ...) scan the raw value.
// Pointer fields take NULL as nil. Struct, map and slice fields decode JSON
// text columns.
//
// # Field Names
//
// Fields can be renamed or excluded with struct tags:
//
//	type User struct {
//	    ID       int64  `rowmap:"user_id"`
//	    Password string `rowmap:"-"`
//	}
//
// A MappingFile (YAML) does the same without touching the type. Embedded
// structs, including pointers to structs, are flattened.
//
// # AdditionalData
//
// With WithCollectUnmatched, columns that no field claims are marshaled into
// an AdditionalData field of type null.JSON or sqlboiler types.JSON.
//
// # Thread Safety
//
// A Mapper is safe for concurrent use. Record plans are cached per type and
// registries are copy-on-write. Cursors and table readers are not; each
// mapping call should own its row source.
package rowmap
