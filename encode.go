package jetcsv

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/jetsons/jetcsv/internal/mapper"
)

// Marshal returns the CSV encoding of v, which must be a slice or array of
// records (or a pointer to one). See Encoder.Encode for details.
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encoder writes CSV records to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes a header row followed by one row per record in v.
//
// Columns come from the Columns option when given, otherwise from the
// struct fields of the record type, or from the sorted union of keys for
// map records. The header row is left out with Headers(NoHeader).
//
// A value is quoted when it contains the delimiter, a quote or a line
// break. Quotes inside a quoted value are doubled.
func (e *Encoder) Encode(v any) error {
	o, err := buildOptions(e.opts)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return fmt.Errorf("jetcsv: Marshal(nil %T)", v)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("jetcsv: cannot marshal Go value of type %T, want a slice of records", v)
	}

	columns := o.columns
	if len(columns) == 0 {
		columns = mapper.Names(rv.Type().Elem())
	}
	if len(columns) == 0 {
		columns = mapColumns(rv)
	}

	es := &encodeState{
		w:         bufio.NewWriter(e.w),
		assigner:  mapper.Assigner{TimeLayouts: o.timeLayouts},
		delimiter: o.delimiter,
	}
	if o.header != NoHeader {
		es.writeRow(columns)
	}
	row := make([]string, len(columns))
	for i := 0; i < rv.Len(); i++ {
		rec := rv.Index(i)
		for j, name := range columns {
			text, err := es.assigner.Text(rec, name)
			if err != nil {
				return fmt.Errorf("jetcsv: record %d: %w", i, err)
			}
			row[j] = text
		}
		es.writeRow(row)
	}
	return es.w.Flush()
}

// mapColumns collects the keys of every map record.
func mapColumns(rv reflect.Value) []string {
	seen := make(map[string]bool)
	var columns []string
	for i := 0; i < rv.Len(); i++ {
		for _, k := range mapper.MapKeys(rv.Index(i)) {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)
	return columns
}

type encodeState struct {
	w         *bufio.Writer
	assigner  mapper.Assigner
	delimiter rune
}

func (es *encodeState) writeRow(fields []string) {
	for i, f := range fields {
		if i > 0 {
			es.w.WriteRune(es.delimiter)
		}
		if !es.needsQuotes(f) {
			es.w.WriteString(f)
			continue
		}
		es.w.WriteByte('"')
		es.w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		es.w.WriteByte('"')
	}
	es.w.WriteByte('\n')
}

func (es *encodeState) needsQuotes(f string) bool {
	return strings.ContainsRune(f, es.delimiter) || strings.ContainsAny(f, "\"\r\n")
}
