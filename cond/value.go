package cond

import "reflect"

// NullValue, SQL NULL için kullanılan işaret tipidir. Kendisi asla bağlanmaz.
type NullValue struct{}

// Null, Bind'a verildiğinde SQL NULL anlamına gelir. nil ile eşdeğerdir.
var Null = NullValue{}

// String, fmt çıktılarında "NULL" yazılmasını sağlar.
func (NullValue) String() string { return "NULL" }

// isNull, değerin SQL NULL olup olmadığını söyler.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(NullValue)
	return ok
}

// isList, değerin bir liste (slice veya array) olup olmadığını söyler.
// []byte ve [N]byte skaler kabul edilir (BLOB, UUID vb.).
func isList(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return t.Elem().Kind() != reflect.Uint8
	}
	return false
}

// listValues, bir listeyi sırasını koruyarak []any'ye açar.
func listValues(v any) []any {
	if vals, ok := v.([]any); ok {
		out := make([]any, len(vals))
		copy(out, vals)
		return out
	}

	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
