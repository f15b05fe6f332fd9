package mapper

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// DefaultTimeLayouts are tried, in order, when a time.Time field is assigned.
var DefaultTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// Setter is implemented by record types that bind their own fields
// instead of relying on reflection.
type Setter interface {
	SetCSVField(name, value string) error
}

var (
	setterType   = reflect.TypeFor[Setter]()
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
)

// Assigner stores text values onto records, converting each value into
// the declared type of the target field.
type Assigner struct {
	TimeLayouts []string
}

// Check reports whether records of type t can be populated.
func Check(t reflect.Type) error {
	if t.Implements(setterType) || reflect.PointerTo(t).Implements(setterType) {
		return nil
	}
	elem := t
	if elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	switch elem.Kind() {
	case reflect.Struct:
		return nil
	case reflect.Map:
		if elem.Key().Kind() != reflect.String {
			return fmt.Errorf("cannot decode records into map with non-string key type %s", elem.Key())
		}
		return nil
	}
	return fmt.Errorf("cannot decode records into Go value of type %s", t)
}

// New returns a blank, addressable record of type t. Pointers and maps
// are allocated so the record can be assigned to straight away.
func New(t reflect.Type) reflect.Value {
	rv := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Pointer:
		rv.Set(reflect.New(t.Elem()))
		if t.Elem().Kind() == reflect.Map {
			rv.Elem().Set(reflect.MakeMap(t.Elem()))
		}
	case reflect.Map:
		rv.Set(reflect.MakeMap(t))
	}
	return rv
}

// Assign locates the field called name on record and stores value in it.
// Names that match no field are ignored.
func (a *Assigner) Assign(record reflect.Value, name, value string) error {
	if s, ok := asSetter(record); ok {
		return s.SetCSVField(name, value)
	}

	rv := record
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		f, ok := cachedFields(rv.Type()).find(name)
		if !ok {
			return nil
		}
		fv := fieldByIndex(rv, f.idx, true)
		if !fv.IsValid() || !fv.CanSet() {
			return nil
		}
		return a.set(fv, value)
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		elem := reflect.New(rv.Type().Elem()).Elem()
		if err := a.set(elem, value); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()), elem)
		return nil
	}
	return fmt.Errorf("cannot assign field %q on Go value of type %s", name, record.Type())
}

func asSetter(record reflect.Value) (Setter, bool) {
	if record.Kind() != reflect.Pointer && record.CanAddr() {
		record = record.Addr()
	}
	if !record.CanInterface() {
		return nil, false
	}
	s, ok := record.Interface().(Setter)
	return s, ok
}

// set converts s into the type of rv and stores it.
func (a *Assigner) set(rv reflect.Value, s string) error { //nolint:gocyclo
	if rv.Kind() == reflect.Pointer {
		if s == "" {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return a.set(rv.Elem(), s)
	}

	switch rv.Type() {
	case timeType:
		if s == "" {
			rv.Set(reflect.Zero(timeType))
			return nil
		}
		t, err := a.parseTime(s)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(t))
		return nil
	case durationType:
		if s == "" {
			rv.SetInt(0)
			return nil
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return convertError(s, rv, err)
		}
		rv.SetInt(int64(d))
		return nil
	}

	if rv.CanAddr() {
		if u, ok := rv.Addr().Interface().(encoding.TextUnmarshaler); ok {
			if err := u.UnmarshalText([]byte(s)); err != nil {
				return convertError(s, rv, err)
			}
			return nil
		}
	}

	if s == "" && rv.Kind() != reflect.String && rv.Kind() != reflect.Interface {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(s)
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return fmt.Errorf("cannot assign text into non-empty interface %s", rv.Type())
		}
		rv.Set(reflect.ValueOf(s))
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return convertError(s, rv, err)
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return convertError(s, rv, err)
		}
		if rv.OverflowInt(i) {
			return fmt.Errorf("integer value %d overflows Go value of type %s", i, rv.Type())
		}
		rv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return convertError(s, rv, err)
		}
		if rv.OverflowUint(u) {
			return fmt.Errorf("integer value %d overflows Go value of type %s", u, rv.Type())
		}
		rv.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, rv.Type().Bits())
		if err != nil {
			return convertError(s, rv, err)
		}
		rv.SetFloat(f)
	case reflect.Slice:
		if rv.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("cannot assign text into Go value of type %s", rv.Type())
		}
		rv.SetBytes([]byte(s))
	default:
		return fmt.Errorf("cannot assign text into Go value of type %s", rv.Type())
	}
	return nil
}

func (a *Assigner) parseTime(s string) (time.Time, error) {
	layouts := a.TimeLayouts
	if len(layouts) == 0 {
		layouts = DefaultTimeLayouts
	}
	var firstErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, fmt.Errorf("cannot convert %q into time.Time: %w", s, firstErr)
}

func convertError(s string, rv reflect.Value, err error) error {
	return fmt.Errorf("cannot convert %q into Go value of type %s: %w", s, rv.Type(), err)
}
