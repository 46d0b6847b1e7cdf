package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel renders a single-row INSERT from the exported `db`-tagged
// fields of a table model. onConflict is appended verbatim, typically an
// ON CONFLICT ... RETURNING tail.
func InsertModel(table string, model any, onConflict string) (string, []any, error) {
	if table == "" {
		return "", nil, fmt.Errorf("insert: table is required")
	}
	cols, vals, err := modelColumns(model)
	if err != nil {
		return "", nil, fmt.Errorf("insert %s: %w", table, err)
	}

	var w sqlWriter
	w.write("INSERT INTO ", table, " (", strings.Join(cols, ", "), ") VALUES (")
	for i, v := range vals {
		if i > 0 {
			w.write(", ")
		}
		w.bind(v)
	}
	w.write(")")
	if tail := strings.TrimSpace(onConflict); tail != "" {
		w.write(" ", tail)
	}
	return w.sb.String(), w.args, nil
}

func modelColumns(model any) ([]string, []any, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, fmt.Errorf("nil model")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model is %s, want struct", v.Kind())
	}

	t := v.Type()
	var cols []string
	var vals []any
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, v.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", t.Name())
	}
	return cols, vals, nil
}
