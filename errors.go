package rowmap

import (
	"fmt"
	"strings"

	"github.com/Station-Manager/errors"
)

// Kind classifies a mapping failure.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindEmptyRow
	KindEmptyResult
	KindIndexOutOfRange
	KindNoMoreRows
	KindNotPositioned
	KindTypeCoercion
	KindInvalidTarget
	KindDuplicateColumn
	KindColumnCountMismatch
	KindValidation
)

var kindNames = [...]string{
	KindUnknown:             "unknown",
	KindEmptyRow:            "row has no columns",
	KindEmptyResult:         "result has no rows",
	KindIndexOutOfRange:     "index out of range",
	KindNoMoreRows:          "no more rows",
	KindNotPositioned:       "cursor is not positioned on a row",
	KindTypeCoercion:        "type coercion failed",
	KindInvalidTarget:       "invalid target",
	KindDuplicateColumn:     "duplicate column",
	KindColumnCountMismatch: "column count mismatch",
	KindValidation:          "validation failed",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Sentinels for errors.Is. Any *Error of the same Kind matches.
var (
	ErrEmptyRow            = &Error{Kind: KindEmptyRow}
	ErrEmptyResult         = &Error{Kind: KindEmptyResult}
	ErrIndexOutOfRange     = &Error{Kind: KindIndexOutOfRange}
	ErrNoMoreRows          = &Error{Kind: KindNoMoreRows}
	ErrNotPositioned       = &Error{Kind: KindNotPositioned}
	ErrTypeCoercion        = &Error{Kind: KindTypeCoercion}
	ErrInvalidTarget       = &Error{Kind: KindInvalidTarget}
	ErrDuplicateColumn     = &Error{Kind: KindDuplicateColumn}
	ErrColumnCountMismatch = &Error{Kind: KindColumnCountMismatch}
	ErrValidation          = &Error{Kind: KindValidation}
)

// Error is returned by every operation in this package.
type Error struct {
	Kind   Kind
	Op     errors.Op
	Column string // column name, when the failure concerns one
	Field  string // destination field name, when the failure concerns one
	Index  int    // row or column index for KindIndexOutOfRange
	Err    error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("rowmap: ")
	if e.Op != "" {
		b.WriteString(string(e.Op))
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Kind == KindIndexOutOfRange {
		fmt.Fprintf(&b, " (index %d)", e.Index)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ": column %q", e.Column)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " -> field %s", e.Field)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, op errors.Op) *Error {
	return &Error{Kind: kind, Op: op}
}

func indexError(op errors.Op, index int) *Error {
	return &Error{Kind: KindIndexOutOfRange, Op: op, Index: index}
}

func coercionError(op errors.Op, column, field string, cause error) *Error {
	return &Error{Kind: KindTypeCoercion, Op: op, Column: column, Field: field, Err: cause}
}

// wrap annotates an upstream error with op, keeping it reachable through
// errors.Is and errors.As.
func wrap(op errors.Op, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// causeErr tags err with op and keeps its text as the message, which
// errors.New would otherwise leave as a generic placeholder.
func causeErr(op errors.Op, err error) error {
	return errors.New(op).Err(err).Msg(err.Error())
}
