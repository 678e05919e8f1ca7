// Package export serializes whole record collections for download,
// either as delimited text with a header row or as an indented JSON
// dump. Purely derived output; stored state is never touched.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Filename builds the download name for a table export, embedding the
// export date.
func Filename(table, format string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", table, now.Format("2006-01-02"), format)
}

// CSV renders the records as delimited text. The header row carries
// the records' JSON field names in declaration order; fields holding
// the delimiter or a quote are wrapped in quotes with internal quotes
// doubled (the csv writer's quoting rule). Nil and zero-value optional
// fields flatten to empty strings.
func CSV[T any](records []T) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := fieldNames(reflect.TypeOf((*T)(nil)).Elem())
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for i := range records {
		if err := w.Write(fieldValues(reflect.ValueOf(records[i]))); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON renders the records as an indented dump.
func JSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func fieldNames(t reflect.Type) []string {
	var names []string
	for i := 0; i < t.NumField(); i++ {
		name, ok := columnName(t.Field(i))
		if !ok {
			continue
		}
		names = append(names, name)
	}
	return names
}

func fieldValues(v reflect.Value) []string {
	t := v.Type()
	var values []string
	for i := 0; i < t.NumField(); i++ {
		if _, ok := columnName(t.Field(i)); !ok {
			continue
		}
		values = append(values, flatten(v.Field(i)))
	}
	return values
}

// columnName maps a struct field to its json name, skipping hidden
// fields and nested records (association pointers).
func columnName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return "", false
	}
	name := strings.Split(tag, ",")[0]
	if name == "" {
		return "", false
	}
	if f.Type.Kind() == reflect.Ptr && f.Type.Elem().Kind() == reflect.Struct && f.Type.Elem() != reflect.TypeOf(time.Time{}) {
		return "", false
	}
	return name, true
}

func flatten(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Struct:
		if ts, ok := v.Interface().(time.Time); ok {
			return ts.UTC().Format(time.RFC3339)
		}
		return ""
	default:
		return ""
	}
}
