package mapper

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// Names returns the column names of a struct record type in declaration
// order. It returns nil for non-struct types.
func Names(t reflect.Type) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	fields := cachedFields(t).list
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

// MapKeys returns the sorted keys of a map record.
func MapKeys(record reflect.Value) []string {
	for record.Kind() == reflect.Pointer || record.Kind() == reflect.Interface {
		if record.IsNil() {
			return nil
		}
		record = record.Elem()
	}
	if record.Kind() != reflect.Map {
		return nil
	}
	keys := make([]string, 0, record.Len())
	for _, k := range record.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	return keys
}

// Text returns the textual form of the field called name on record.
// Missing fields, nil pointers and empty omitempty fields yield "".
func (a *Assigner) Text(record reflect.Value, name string) (string, error) {
	rv := record
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		f, ok := cachedFields(rv.Type()).find(name)
		if !ok {
			return "", nil
		}
		fv := fieldByIndex(rv, f.idx, false)
		if !fv.IsValid() || f.omitEmpty && fv.IsZero() {
			return "", nil
		}
		return a.text(fv)
	case reflect.Map:
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return "", nil
		}
		return a.text(v)
	}
	return "", fmt.Errorf("cannot encode field %q of Go value of type %s", name, record.Type())
}

func (a *Assigner) text(v reflect.Value) (string, error) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", nil
		}
		v = v.Elem()
	}

	switch v.Type() {
	case timeType:
		layout := time.RFC3339
		if len(a.TimeLayouts) > 0 {
			layout = a.TimeLayouts[0]
		}
		return v.Interface().(time.Time).Format(layout), nil
	case durationType:
		return time.Duration(v.Int()).String(), nil
	}

	if v.CanInterface() {
		if m, ok := v.Interface().(encoding.TextMarshaler); ok {
			b, err := m.MarshalText()
			if err != nil {
				return "", err
			}
			return string(b), nil
		}
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()), nil
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return string(v.Bytes()), nil
		}
	}
	return "", fmt.Errorf("cannot encode Go value of type %s as text", v.Type())
}
