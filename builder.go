package rowmap

import "reflect"

// Builder provides a fluent API to construct a Mapper with options, converters and validators pre-registered.
type Builder struct {
	opts     []Option
	convsG   map[string]ConverterFunc
	convsDst map[reflect.Type]map[string]ConverterFunc
	valsG    map[string]ValidatorFunc
	valsDst  map[reflect.Type]map[string]ValidatorFunc
	warm     []any
}

// NewBuilder creates a new builder.
func NewBuilder() *Builder {
	return &Builder{
		convsG:   make(map[string]ConverterFunc),
		convsDst: make(map[reflect.Type]map[string]ConverterFunc),
		valsG:    make(map[string]ValidatorFunc),
		valsDst:  make(map[reflect.Type]map[string]ValidatorFunc),
	}
}

// WithOptions appends mapper options to the builder.
func (b *Builder) WithOptions(opts ...Option) *Builder { b.opts = append(b.opts, opts...); return b }

// AddConverter registers a global converter by field name.
func (b *Builder) AddConverter(field string, fn ConverterFunc) *Builder {
	b.convsG[field] = fn
	return b
}

// AddConverterFor registers a converter for a record type and field name.
func (b *Builder) AddConverterFor(record any, field string, fn ConverterFunc) *Builder {
	dt := recordType(record)
	m := b.convsDst[dt]
	if m == nil {
		m = make(map[string]ConverterFunc)
		b.convsDst[dt] = m
	}
	m[field] = fn
	return b
}

// AddValidator registers a global validator by field name.
func (b *Builder) AddValidator(field string, fn ValidatorFunc) *Builder {
	b.valsG[field] = fn
	return b
}

// AddValidatorFor registers a validator for a record type and field name.
func (b *Builder) AddValidatorFor(record any, field string, fn ValidatorFunc) *Builder {
	dt := recordType(record)
	m := b.valsDst[dt]
	if m == nil {
		m = make(map[string]ValidatorFunc)
		b.valsDst[dt] = m
	}
	m[field] = fn
	return b
}

// Warm queues record types whose plans are built by Build.
func (b *Builder) Warm(records ...any) *Builder { b.warm = append(b.warm, records...); return b }

// Build constructs a Mapper using a single registry swap for converters and validators.
func (b *Builder) Build() (*Mapper, error) {
	m := NewWithOptions(b.opts...)
	creg := &converterRegistry{global: make(map[string]ConverterFunc, len(b.convsG)), byDst: make(map[reflect.Type]map[string]ConverterFunc, len(b.convsDst))}
	for k, v := range b.convsG {
		creg.global[k] = v
	}
	for t, sub := range b.convsDst {
		for k, v := range sub {
			creg.setFor(t, k, v)
		}
	}
	m.converters.Store(creg)
	vreg := &validatorRegistry{global: make(map[string]ValidatorFunc, len(b.valsG)), byDst: make(map[reflect.Type]map[string]ValidatorFunc, len(b.valsDst))}
	for k, v := range b.valsG {
		vreg.global[k] = v
	}
	for t, sub := range b.valsDst {
		for k, v := range sub {
			vreg.setFor(t, k, v)
		}
	}
	m.validators.Store(vreg)
	if err := m.Warm(b.warm...); err != nil {
		return nil, err
	}
	return m, nil
}
