package jetcsv

import (
	"fmt"
	"unicode/utf8"
)

// Option configures decoding and encoding.
type Option func(*options) error

type options struct {
	delimiter        rune
	header           HeaderMode
	columns          []string
	strict           bool
	preserveNewlines bool
	timeLayouts      []string
}

func defaultOptions() options {
	return options{
		delimiter: ',',
		header:    AutoDetect,
	}
}

func buildOptions(opts []Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return o, err
		}
	}
	return o, nil
}

// request turns the options into a Request for text.
func (o *options) request(text string) Request {
	return Request{
		Text:             text,
		Header:           o.header,
		Columns:          o.columns,
		Delimiter:        o.delimiter,
		Strict:           o.strict,
		PreserveNewlines: o.preserveNewlines,
		TimeLayouts:      o.timeLayouts,
	}
}

// Delimiter returns an Option that sets the field delimiter. The default
// is a comma.
//
// The delimiter must be a valid rune and cannot be a quote or a line break.
func Delimiter(r rune) Option {
	return func(o *options) error {
		if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError || !utf8.ValidRune(r) {
			return fmt.Errorf("jetcsv: invalid delimiter %q", r)
		}
		o.delimiter = r
		return nil
	}
}

// Headers returns an Option that sets how the first line is treated.
// The default is AutoDetect.
//
// When encoding, NoHeader suppresses the header row.
func Headers(mode HeaderMode) Option {
	return func(o *options) error {
		if !mode.valid() {
			return fmt.Errorf("jetcsv: unknown header mode %d", int(mode))
		}
		o.header = mode
		return nil
	}
}

// Columns returns an Option that supplies the column names up front.
// They take precedence over a header line; a header line that is longer
// than names contributes only its extra columns. With names x, y and the
// header line a,b,c the headers are x, y, c, not x, y, a, b, c: the header
// line is never appended after the supplied names.
//
// When encoding, names select and order the columns written.
func Columns(names ...string) Option {
	return func(o *options) error {
		o.columns = append([]string(nil), names...)
		return nil
	}
}

// Strict returns an Option that records malformed input instead of
// absorbing it. A quote in the middle of an unquoted field, an unterminated
// quoted value and a value that cannot be converted to its field's type
// are each reported as a *ParseError, and the Result is not successful.
func Strict() Option {
	return func(o *options) error {
		o.strict = true
		return nil
	}
}

// PreserveNewlines returns an Option that keeps the line break between the
// physical lines of a multi-line quoted value. By default it is dropped.
func PreserveNewlines() Option {
	return func(o *options) error {
		o.preserveNewlines = true
		return nil
	}
}

// TimeLayouts returns an Option that sets the layouts tried, in order,
// when decoding time.Time fields. The first layout is used for encoding.
func TimeLayouts(layouts ...string) Option {
	return func(o *options) error {
		if len(layouts) == 0 {
			return fmt.Errorf("jetcsv: at least one time layout is required")
		}
		o.timeLayouts = append([]string(nil), layouts...)
		return nil
	}
}
