package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// InsertModels renders a multi-row insert for structs tagged with `db`.
// Unexported fields and fields tagged "-" are skipped.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, errors.New("insert models are required")
	}

	typ := reflect.TypeFor[T]()
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("insert models: %s is not a struct", typ)
	}
	fields := taggedFields(typ)
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("insert models: %s has no db columns", typ)
	}

	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.column
	}
	ins := InsertInto(table).Columns(columns...).Suffix(suffix)

	for i := range models {
		row := reflect.ValueOf(&models[i]).Elem()
		for row.Kind() == reflect.Pointer {
			if row.IsNil() {
				return "", nil, fmt.Errorf("insert models: model %d is nil", i)
			}
			row = row.Elem()
		}
		values := make([]any, len(fields))
		for j, f := range fields {
			values[j] = row.Field(f.index).Interface()
		}
		ins.Values(values...)
	}
	return ins.ToSQL()
}

type taggedField struct {
	index  int
	column string
}

func taggedFields(typ reflect.Type) []taggedField {
	var out []taggedField
	for i := range typ.NumField() {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("db"), ",")
		if name = strings.TrimSpace(name); name == "" || name == "-" {
			continue
		}
		out = append(out, taggedField{index: i, column: name})
	}
	return out
}
