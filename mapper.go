package rowmap

import (
	"context"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Station-Manager/errors"
)

// Mapper maps rows onto records. Record plans, converters and validators are
// shared by every call; the Mapper is safe for concurrent use.
type Mapper struct {
	converters    atomic.Value // holds *converterRegistry
	validators    atomic.Value // holds *validatorRegistry
	regMu         sync.Mutex   // serializes registry writers
	metadataCache sync.Map     // map[reflect.Type]*structMetadata
	options       Options
	logger        *slog.Logger
}

// New creates a Mapper with default options.
func New() *Mapper { return NewWithOptions() }

// NewWithOptions creates a Mapper with the provided options.
func NewWithOptions(opts ...Option) *Mapper {
	m := &Mapper{}
	for _, f := range opts {
		f(&m.options)
	}
	m.logger = m.options.Logger
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	m.converters.Store(newConverterRegistry())
	m.validators.Store(newValidatorRegistry())
	return m
}

var (
	defaultMapper     *Mapper
	defaultMapperOnce sync.Once
)

// Default returns the package-level Mapper used when a nil *Mapper is passed
// to the generic helpers.
func Default() *Mapper {
	defaultMapperOnce.Do(func() { defaultMapper = New() })
	return defaultMapper
}

func orDefault(m *Mapper) *Mapper {
	if m == nil {
		return Default()
	}
	return m
}

// RegisterConverter adds a converter for fieldName on any record type.
func (m *Mapper) RegisterConverter(fieldName string, fn ConverterFunc) {
	m.regMu.Lock()
	defer m.regMu.Unlock()
	reg := m.converters.Load().(*converterRegistry).clone(1)
	reg.global[fieldName] = fn
	m.converters.Store(reg)
}

// RegisterConverterFor adds a converter for fieldName on one record type.
// It takes precedence over a global converter for the same field.
func (m *Mapper) RegisterConverterFor(record any, fieldName string, fn ConverterFunc) {
	m.regMu.Lock()
	defer m.regMu.Unlock()
	reg := m.converters.Load().(*converterRegistry).clone(1)
	reg.setFor(recordType(record), fieldName, fn)
	m.converters.Store(reg)
}

// RegisterValidator adds a validator for fieldName on any record type.
func (m *Mapper) RegisterValidator(fieldName string, fn ValidatorFunc) {
	m.regMu.Lock()
	defer m.regMu.Unlock()
	reg := m.validators.Load().(*validatorRegistry).clone(1)
	reg.global[fieldName] = fn
	m.validators.Store(reg)
}

// RegisterValidatorFor adds a validator for fieldName on one record type.
func (m *Mapper) RegisterValidatorFor(record any, fieldName string, fn ValidatorFunc) {
	m.regMu.Lock()
	defer m.regMu.Unlock()
	reg := m.validators.Load().(*validatorRegistry).clone(1)
	reg.setFor(recordType(record), fieldName, fn)
	m.validators.Store(reg)
}

// Warm builds record plans ahead of the first mapping. Pass values, pointers
// or reflect.Types; non-struct examples are skipped.
func (m *Mapper) Warm(examples ...any) error {
	for _, e := range examples {
		if e == nil {
			continue
		}
		t := recordType(e)
		if t.Kind() != reflect.Struct {
			continue
		}
		if _, err := m.getOrBuildMetadata(t); err != nil {
			return err
		}
	}
	return nil
}

// MapRow fills the struct dst points to from row. dst is written only when
// the whole row maps successfully.
func (m *Mapper) MapRow(dst any, row Row) error {
	const op errors.Op = "rowmap.Mapper.MapRow"
	dv := reflect.ValueOf(dst)
	if !dv.IsValid() || dv.Kind() != reflect.Pointer || dv.IsNil() {
		return &Error{Kind: KindInvalidTarget, Op: op, Err: errors.New(op).Errorf("dst must be a non-nil pointer, got %T", dst)}
	}
	out, err := m.newRecord(dv.Type().Elem(), row, nil)
	if err != nil {
		return err
	}
	dv.Elem().Set(out)
	return nil
}

// binding holds, per column position, the field a column fills (nil if
// none). It is valid for one column layout.
type binding struct {
	meta    *structMetadata
	columns []string
	fields  []*fieldInfo
}

func (b *binding) matches(row Row) bool {
	if row.ColumnCount() != len(b.columns) {
		return false
	}
	for i, c := range b.columns {
		if row.ColumnName(i) != c {
			return false
		}
	}
	return true
}

func (m *Mapper) bind(meta *structMetadata, row Row) *binding {
	n := row.ColumnCount()
	b := &binding{meta: meta, columns: make([]string, n), fields: make([]*fieldInfo, n)}
	for i := 0; i < n; i++ {
		name := row.ColumnName(i)
		b.columns[i] = name
		fi, ok := meta.byColumn[name]
		if !ok && meta.byFolded != nil {
			fi = meta.byFolded[strings.ToLower(name)]
		}
		b.fields[i] = fi
	}
	return b
}

// newRecord builds a fresh value of type rt (a struct or a pointer to one)
// from row. prev is reused when it still fits the row's columns; the binding
// used is stored back through it.
func (m *Mapper) newRecord(rt reflect.Type, row Row, prev **binding) (reflect.Value, error) {
	const op errors.Op = "rowmap.Mapper.mapRow"
	if row.ColumnCount() == 0 {
		return reflect.Value{}, newError(KindEmptyRow, op)
	}
	st := rt
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	var b *binding
	if prev != nil && *prev != nil && (*prev).meta.typ == st && (*prev).matches(row) {
		b = *prev
	} else {
		meta, err := m.getOrBuildMetadata(st)
		if err != nil {
			return reflect.Value{}, err
		}
		b = m.bind(meta, row)
		if prev != nil {
			*prev = b
		}
	}

	ptr := reflect.New(st)
	if err := m.fill(ptr.Elem(), b, row); err != nil {
		return reflect.Value{}, err
	}
	if rt.Kind() == reflect.Pointer {
		return ptr, nil
	}
	return ptr.Elem(), nil
}

func (m *Mapper) fill(rec reflect.Value, b *binding, row Row) error {
	const op errors.Op = "rowmap.Mapper.mapRow"
	convs := m.converters.Load().(*converterRegistry)
	vals := m.validators.Load().(*validatorRegistry)
	collect := m.options.CollectUnmatched && b.meta.additionalDataField != nil
	var unmatched map[string]any

	for i, fi := range b.fields {
		raw, err := row.Value(i)
		if err != nil {
			return err
		}
		if fi == nil {
			if collect && (raw != nil || m.options.IncludeNulls) {
				if unmatched == nil {
					unmatched = make(map[string]any)
				}
				unmatched[b.columns[i]] = textual(raw)
			}
			continue
		}
		if fn := convs.lookup(b.meta.typ, fi.name); fn != nil {
			if raw, err = fn(raw); err != nil {
				return coercionError(op, b.columns[i], fi.name, err)
			}
		}
		field := fieldByIndexAlloc(rec, fi.index)
		if err := fi.set(field, raw); err != nil {
			if unparsed, ok := err.(errEnumUnparsed); ok {
				m.logger.LogAttrs(context.Background(), slog.LevelDebug, "enum value not recognised, field left unset",
					slog.String("record", b.meta.typ.String()),
					slog.String("column", b.columns[i]),
					slog.String("field", fi.name),
					slog.String("value", unparsed.value))
				continue
			}
			return coercionError(op, b.columns[i], fi.name, err)
		}
		if fn := vals.lookup(b.meta.typ, fi.name); fn != nil {
			if err := fn(field.Interface()); err != nil {
				return &Error{Kind: KindValidation, Op: op, Column: b.columns[i], Field: fi.name, Err: err}
			}
		}
	}

	if collect {
		ad := fieldByIndexAlloc(rec, b.meta.additionalDataField.index)
		if err := marshalUnmatched(ad, unmatched); err != nil {
			return coercionError(op, "", b.meta.additionalDataField.name, err)
		}
	}
	return nil
}
