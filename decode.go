package jetcsv

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/jetsons/jetcsv/internal/mapper"
	"github.com/jetsons/jetcsv/internal/scanner"
)

// Decoder reads and decodes CSV records from an input stream.
type Decoder struct {
	r       io.Reader
	opts    []Option
	headers []string
}

// NewDecoder returns a new decoder that reads from r.
//
// It is the caller's responsibility to call Close on r if required.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads all of its input and stores the records in the slice
// pointed to by v.
//
// See the documentation for Unmarshal for details about the conversion of
// CSV into Go values.
//
// Note: This is a non-streaming implementation. It reads the entire
// reader into memory first before decoding.
func (d *Decoder) Decode(v any) error {
	if d.r == nil {
		return fmt.Errorf("jetcsv: Decode(nil reader)")
	}
	o, err := buildOptions(d.opts)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}
	ds, err := unmarshal(data, v, &o)
	if ds != nil {
		d.headers = ds.headers
	}
	return err
}

// Headers returns the column names resolved by the last call to Decode.
func (d *Decoder) Headers() []string {
	return d.headers
}

// decodeState builds records from the events of a scanner.Scanner and
// accumulates the headers, records and errors of one decode call.
type decodeState struct {
	assigner mapper.Assigner
	typ      reflect.Type
	strict   bool

	headers []string
	// supplied is the number of caller supplied column names.
	supplied int
	// headerIndex counts the fields of the header line.
	headerIndex int

	records []reflect.Value
	record  reflect.Value
	index   int

	errs ParseErrors
}

func decodeRequest(typ reflect.Type, req Request) *decodeState {
	ds := &decodeState{
		assigner: mapper.Assigner{TimeLayouts: req.TimeLayouts},
		typ:      typ,
		strict:   req.Strict,
		headers:  append([]string(nil), req.Columns...),
		supplied: len(req.Columns),
	}

	lines := req.Lines
	if lines == nil {
		lines = scanner.SplitLines(req.Text)
	}
	if len(lines) == 0 {
		return ds
	}

	text := req.Text
	if text == "" {
		text = strings.Join(lines, "\n")
	}
	delimiter := req.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}
	header := firstLineIsHeaders(req.Header, text, delimiter)

	s := scanner.New(ds, scanner.Config{
		Delimiter:        delimiter,
		Strict:           req.Strict,
		PreserveNewlines: req.PreserveNewlines,
	})
	s.Scan(lines, header)
	return ds
}

func (ds *decodeState) success() bool {
	return !ds.strict || len(ds.errs) == 0
}

// BeginRecord starts a blank record and appends it to the output.
func (ds *decodeState) BeginRecord(int) {
	ds.record = mapper.New(ds.typ)
	ds.records = append(ds.records, ds.record)
	ds.index = 0
	ds.headerName(0)
}

// Field registers a header or binds a value onto the current record.
func (ds *decodeState) Field(raw string, header bool, line, column int) {
	value := strings.TrimSpace(raw)

	if header {
		// Caller supplied names take precedence over the header line.
		if ds.headerIndex >= ds.supplied {
			ds.headers = append(ds.headers, value)
		}
		ds.headerIndex++
		return
	}

	name := ds.headerName(ds.index)
	ds.index++
	if !ds.record.IsValid() {
		// A value that ends on a line after a multi-line header has no
		// record to land on.
		return
	}
	if err := ds.assigner.Assign(ds.record, name, value); err != nil && ds.strict {
		ds.errs = append(ds.errs, &ParseError{Line: line, Column: column, Field: name, Err: err})
	}
}

// Error records a strict-mode scanner error.
func (ds *decodeState) Error(line, column int, err error) {
	ds.errs = append(ds.errs, &ParseError{Line: line, Column: column, Err: err})
}

// headerName returns the header at index i, synthesizing ColumnN names
// until the index is covered.
func (ds *decodeState) headerName(i int) string {
	for len(ds.headers) <= i {
		ds.headers = append(ds.headers, "Column"+strconv.Itoa(len(ds.headers)+1))
	}
	return ds.headers[i]
}
