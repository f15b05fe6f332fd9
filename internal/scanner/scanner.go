package scanner

import (
	"errors"
	"strings"
)

const (
	// Quote opens and closes a quoted value. It is not configurable.
	Quote = '"'
	// Backslash before a quote inside a quoted value escapes that quote.
	// Outside strict mode the character following the quote is skipped.
	Backslash = '\\'
)

var (
	// ErrBareQuote is reported in strict mode when a quote appears in the
	// middle of an unquoted field.
	ErrBareQuote = errors.New("bare quote in non-quoted field")
	// ErrUnterminatedQuote is reported in strict mode when the input ends
	// inside a quoted value.
	ErrUnterminatedQuote = errors.New("unterminated quoted field")
)

// Sink receives the events produced by a Scanner.
type Sink interface {
	// BeginRecord is called for every line that starts outside a quoted
	// value, except the header line.
	BeginRecord(line int)
	// Field is called with the raw, untrimmed text of a completed field.
	// line and column locate the first character of the field.
	Field(raw string, header bool, line, column int)
	// Error reports a strict-mode violation.
	Error(line, column int, err error)
}

// Config controls the scanner.
type Config struct {
	Delimiter        rune
	Strict           bool
	PreserveNewlines bool
}

// Scanner holds the state for splitting lines into fields.
//
// The quoting mode survives line boundaries, so a quoted value may span
// several lines. A new record starts only on a line that begins unquoted.
type Scanner struct {
	cfg  Config
	sink Sink

	quoted bool
	header bool
	buf    strings.Builder

	line   int
	column int

	fieldLine   int
	fieldColumn int
	quoteLine   int
	quoteColumn int
}

// New creates and returns a new Scanner that reports to sink.
func New(sink Sink, cfg Config) *Scanner {
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ','
	}
	return &Scanner{cfg: cfg, sink: sink}
}

// Scan walks every line, character by character. When header is true the
// first line is reported as the header line.
func (s *Scanner) Scan(lines []string, header bool) {
	s.header = header
	for i, line := range lines {
		s.line = i + 1
		s.column = 0
		if s.quoted {
			if s.cfg.PreserveNewlines {
				s.buf.WriteByte('\n')
			}
		} else {
			if !s.header {
				s.sink.BeginRecord(s.line)
			}
			s.markField()
		}
		s.scanLine([]rune(line))

		// at end of line take the pending value
		if !s.quoted && s.buf.Len() > 0 {
			s.emit()
		}
		s.header = false
	}

	if s.quoted && s.cfg.Strict {
		s.sink.Error(s.quoteLine, s.quoteColumn, ErrUnterminatedQuote)
	}
}

func (s *Scanner) scanLine(line []rune) {
	for x := 0; x < len(line); x++ {
		ch := line[x]
		s.column = x + 1

		if !s.quoted {
			switch {
			case ch == s.cfg.Delimiter:
				s.emit()
				s.fieldLine, s.fieldColumn = s.line, s.column+1
			case ch == Quote:
				if s.cfg.Strict && strings.TrimSpace(s.buf.String()) != "" {
					s.sink.Error(s.line, s.column, ErrBareQuote)
					s.buf.WriteRune(ch)
					continue
				}
				s.quoted = true
				s.quoteLine, s.quoteColumn = s.line, s.column
			default:
				s.buf.WriteRune(ch)
			}
			continue
		}

		if ch != Quote {
			s.buf.WriteRune(ch)
			continue
		}
		switch {
		case isChar(line, x+1, Quote):
			s.buf.WriteRune(Quote)
			x++
		case isChar(line, x-1, Backslash):
			s.buf.WriteRune(Quote)
			if !s.cfg.Strict {
				// the character after an escaped quote is dropped
				x++
			}
		default:
			s.quoted = false
		}
	}
}

func (s *Scanner) emit() {
	s.sink.Field(s.buf.String(), s.header, s.fieldLine, s.fieldColumn)
	s.buf.Reset()
}

func (s *Scanner) markField() {
	s.fieldLine = s.line
	s.fieldColumn = 1
}

func isChar(line []rune, x int, ch rune) bool {
	return x >= 0 && x < len(line) && line[x] == ch
}
