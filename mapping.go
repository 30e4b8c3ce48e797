package rowmap

import (
	"os"
	"reflect"

	"github.com/Station-Manager/errors"
	"gopkg.in/yaml.v3"
)

// MappingFile describes, per record type, columns whose names differ from the
// field they fill and fields that must never be filled.
//
//	version: "1"
//	records:
//	  - type: shop.Customer
//	    columns:
//	      customer_id: ID
//	      full_name: Name
//	    ignore: [PasswordHash]
type MappingFile struct {
	Version string          `yaml:"version"`
	Records []RecordMapping `yaml:"records"`
}

// RecordMapping applies to the record type whose reflect string ("pkg.Type")
// or bare name equals Type. The qualified form wins when both match.
type RecordMapping struct {
	Type    string            `yaml:"type"`
	Columns map[string]string `yaml:"columns"`
	Ignore  []string          `yaml:"ignore"`
}

// LoadMappingFile reads and parses a YAML mapping file.
func LoadMappingFile(path string) (*MappingFile, error) {
	const op errors.Op = "rowmap.LoadMappingFile"
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, causeErr(op, err)
	}
	return ParseMapping(data)
}

// ParseMapping parses YAML mapping data.
func ParseMapping(data []byte) (*MappingFile, error) {
	const op errors.Op = "rowmap.ParseMapping"
	var mf MappingFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, causeErr(op, err)
	}
	if mf.Version == "" {
		mf.Version = "1"
	}
	seen := make(map[string]bool, len(mf.Records))
	for i, r := range mf.Records {
		if r.Type == "" {
			return nil, errors.New(op).Errorf("record %d has no type", i)
		}
		if seen[r.Type] {
			return nil, errors.New(op).Errorf("record type %s listed twice", r.Type)
		}
		seen[r.Type] = true
	}
	return &mf, nil
}

func (mf *MappingFile) record(t reflect.Type) *RecordMapping {
	if mf == nil {
		return nil
	}
	var byName *RecordMapping
	for i := range mf.Records {
		r := &mf.Records[i]
		switch r.Type {
		case t.String():
			return r
		case t.Name():
			byName = r
		}
	}
	return byName
}
