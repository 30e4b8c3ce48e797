package rowmap

import (
	"reflect"
	"strings"

	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
	boilertypes "github.com/aarondl/sqlboiler/v4/types"
)

const defaultTagName = "rowmap"

type fieldInfo struct {
	index            []int
	name             string
	column           string
	depth            int
	typ              reflect.Type
	isAdditionalData bool
	set              setterFunc
}

// structMetadata is the per-record plan: every writable field, the keys it
// answers to and the setter that coerces raw values into it.
type structMetadata struct {
	typ                 reflect.Type
	fields              []fieldInfo
	byColumn            map[string]*fieldInfo
	byFolded            map[string]*fieldInfo
	additionalDataField *fieldInfo
}

func (m *Mapper) getOrBuildMetadata(typ reflect.Type) (*structMetadata, error) {
	if cached, ok := m.metadataCache.Load(typ); ok {
		return cached.(*structMetadata), nil
	}
	meta, err := m.buildMetadata(typ)
	if err != nil {
		return nil, err
	}
	actual, _ := m.metadataCache.LoadOrStore(typ, meta)
	return actual.(*structMetadata), nil
}

func (m *Mapper) buildMetadata(typ reflect.Type) (*structMetadata, error) {
	const op errors.Op = "rowmap.Mapper.buildMetadata"
	if typ.Kind() != reflect.Struct {
		return nil, &Error{Kind: KindInvalidTarget, Op: op, Err: errors.New(op).Errorf("%s is not a struct", typ)}
	}
	rec := m.options.Mapping.record(typ)
	ignored := make(map[string]bool)
	if rec != nil {
		for _, f := range rec.Ignore {
			ignored[f] = true
		}
	}

	meta := &structMetadata{typ: typ}
	m.walkFields(typ, meta, nil, ignored, make(map[reflect.Type]bool))

	columns := newFieldIndex(len(meta.fields))
	names := newFieldIndex(len(meta.fields))
	for i := range meta.fields {
		fi := &meta.fields[i]
		fi.set = setterFor(fi.typ)
		if fi.isAdditionalData && m.options.CollectUnmatched {
			meta.additionalDataField = fi
			continue
		}
		columns.claim(fi.column, fi)
		names.claim(fi.name, fi)
	}
	meta.byColumn = columns.byKey
	if rec != nil {
		for column, field := range rec.Columns {
			fi, ok := names.byKey[field]
			if !ok {
				return nil, &Error{Kind: KindInvalidTarget, Op: op, Column: column, Field: field,
					Err: errors.New(op).Errorf("%s has no writable field %s", typ, field)}
			}
			meta.byColumn[column] = fi
		}
	}
	if m.options.CaseInsensitive {
		folded := newFieldIndex(len(meta.byColumn))
		for key, fi := range meta.byColumn {
			folded.claim(strings.ToLower(key), fi)
		}
		meta.byFolded = folded.byKey
	}
	return meta, nil
}

// fieldIndex keys fields under Go's promotion rules: the shallowest field
// wins, and distinct fields tied at that depth hide each other.
type fieldIndex struct {
	byKey map[string]*fieldInfo
	tied  map[string]int // key -> depth at which it is ambiguous
}

func newFieldIndex(n int) *fieldIndex {
	return &fieldIndex{byKey: make(map[string]*fieldInfo, n), tied: make(map[string]int)}
}

func (x *fieldIndex) claim(key string, fi *fieldInfo) {
	if d, ok := x.tied[key]; ok && d <= fi.depth {
		return
	}
	cur, ok := x.byKey[key]
	switch {
	case !ok || fi.depth < cur.depth:
		x.byKey[key] = fi
		delete(x.tied, key)
	case fi.depth == cur.depth && cur != fi:
		delete(x.byKey, key)
		x.tied[key] = fi.depth
	}
}

// walkFields collects the writable fields of typ, flattening untagged
// embedded structs. path holds the struct types being walked; an embedded
// type already on it is kept as an ordinary field instead of flattened.
func (m *Mapper) walkFields(typ reflect.Type, meta *structMetadata, prefix []int, ignored map[string]bool, path map[reflect.Type]bool) {
	path[typ] = true
	defer delete(path, typ)

	tagName := m.options.TagName
	if tagName == "" {
		tagName = defaultTagName
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		idx := append(append([]int(nil), prefix...), i)
		tag, hasTag := f.Tag.Lookup(tagName)
		if tag == "-" || ignored[f.Name] {
			continue
		}
		if f.Anonymous && !hasTag {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				if !f.IsExported() {
					continue
				}
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && !reflect.PointerTo(ft).Implements(scannerType) && ft != timeType && !path[ft] {
				m.walkFields(ft, meta, idx, ignored, path)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		column := f.Name
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			column = name
		}
		isAD := f.Name == "AdditionalData" && (f.Type == reflect.TypeFor[null.JSON]() || f.Type == reflect.TypeFor[boilertypes.JSON]())
		meta.fields = append(meta.fields, fieldInfo{
			index:            idx,
			name:             f.Name,
			column:           column,
			depth:            len(prefix),
			typ:              f.Type,
			isAdditionalData: isAD,
		})
	}
}

// fieldByIndexAlloc walks index, allocating nil embedded pointers so the
// final field is settable.
func fieldByIndexAlloc(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}
