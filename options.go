package rowmap

import (
	"log/slog"
)

type Options struct {
	CaseInsensitive  bool         // when true, columns match field names ignoring case
	TagName          string       // struct tag holding column names and "-" ignores; default "rowmap"
	CollectUnmatched bool         // when true, unmatched columns are marshaled into AdditionalData
	IncludeNulls     bool         // when true, NULL unmatched columns are kept in AdditionalData
	Logger           *slog.Logger // receives debug records for unparsed enum values
	Mapping          *MappingFile // per-record column aliases and ignores
}

type Option func(*Options)

func WithCaseInsensitive(v bool) Option { return func(o *Options) { o.CaseInsensitive = v } }
func WithTagName(name string) Option { return func(o *Options) { o.TagName = name } }
func WithCollectUnmatched(v bool) Option {
	return func(o *Options) { o.CollectUnmatched = v }
}
func WithIncludeNulls(v bool) Option { return func(o *Options) { o.IncludeNulls = v } }
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }
func WithMapping(mf *MappingFile) Option { return func(o *Options) { o.Mapping = mf } }
