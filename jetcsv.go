package jetcsv

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/jetsons/jetcsv/internal/mapper"
)

// FieldSetter is implemented by record types that bind column values
// themselves. The decoder calls SetCSVField instead of using reflection.
type FieldSetter = mapper.Setter

// Request holds everything one decode operation needs.
type Request struct {
	// Text is the raw input. It is used for header detection, and split
	// into Lines when Lines is nil.
	Text string
	// Lines is the input already split on line breaks.
	Lines []string
	// Header selects how the first line is treated.
	Header HeaderMode
	// Columns, when set, seeds the header list. It is never modified.
	Columns []string
	// Delimiter separates fields. Zero means a comma.
	Delimiter rune
	// Strict records malformed input as ParseErrors.
	Strict bool
	// PreserveNewlines keeps line breaks inside multi-line quoted values.
	PreserveNewlines bool
	// TimeLayouts are tried in order for time.Time fields.
	TimeLayouts []string
}

// Result is the outcome of a decode operation.
type Result[T any] struct {
	// Success is true on normal completion. Only strict mode, or the string
	// and file adapters for missing input, report false.
	Success bool
	// Headers are the column names: caller supplied, read from the header
	// line, or synthesized as Column1, Column2, ...
	Headers []string
	// Records holds one value per decoded record, in input order.
	Records []T
	// Errors lists the problems recorded in strict mode.
	Errors ParseErrors
}

// Err returns the recorded errors, or nil if there are none.
func (r *Result[T]) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors
}

// DecodeRequest decodes req into records of type T. It never returns nil
// and never fails outright: malformed input is absorbed, or recorded in
// Errors when req.Strict is set.
func DecodeRequest[T any](req Request) *Result[T] {
	ds := decodeRequest(reflect.TypeFor[T](), req)

	res := &Result[T]{
		Success: ds.success(),
		Headers: ds.headers,
		Records: make([]T, len(ds.records)),
		Errors:  ds.errs,
	}
	for i, rv := range ds.records {
		res.Records[i], _ = rv.Interface().(T)
	}
	return res
}

// Decode parses CSV text into records of type T.
//
// T may be a struct, a pointer to a struct, a map with string keys, or
// any type implementing FieldSetter. Columns are bound to struct fields by
// the `csv` tag or the field name, case-insensitively as a fallback.
//
// Empty input yields an empty, unsuccessful result. Otherwise the text is
// trimmed, split into lines and handed to DecodeRequest. The returned error
// is only non-nil for invalid options or an unsupported T.
func Decode[T any](text string, opts ...Option) (*Result[T], error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := mapper.Check(reflect.TypeFor[T]()); err != nil {
		return nil, fmt.Errorf("jetcsv: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return &Result[T]{}, nil
	}
	return DecodeRequest[T](o.request(text)), nil
}

// Unmarshal parses CSV data and stores the records in the slice pointed
// to by v. See Decode for the supported record types.
//
// The returned error is a ParseErrors value when strict mode recorded
// problems; the records decoded so far are stored regardless.
func Unmarshal(data []byte, v any, opts ...Option) error {
	o, err := buildOptions(opts)
	if err != nil {
		return err
	}
	_, err = unmarshal(data, v, &o)
	return err
}

func unmarshal(data []byte, v any, o *options) (*decodeState, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("jetcsv: Unmarshal(non-pointer %T or nil)", v)
	}
	sv := rv.Elem()
	if sv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("jetcsv: cannot unmarshal records into Go value of type %s", sv.Type())
	}
	elemType := sv.Type().Elem()
	if err := mapper.Check(elemType); err != nil {
		return nil, fmt.Errorf("jetcsv: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		sv.Set(reflect.MakeSlice(sv.Type(), 0, 0))
		return &decodeState{}, nil
	}

	ds := decodeRequest(elemType, o.request(text))
	out := reflect.MakeSlice(sv.Type(), len(ds.records), len(ds.records))
	for i, rec := range ds.records {
		out.Index(i).Set(rec)
	}
	sv.Set(out)

	if len(ds.errs) > 0 {
		return ds, ds.errs
	}
	return ds, nil
}
