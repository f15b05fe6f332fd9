package jetcsv

import (
	"fmt"
	"strings"

	"github.com/jetsons/jetcsv/internal/scanner"
)

// HeaderMode tells the decoder whether the first line holds column names.
type HeaderMode int

const (
	// AutoDetect treats the first line as headers unless it starts with a
	// bare number before the first delimiter.
	AutoDetect HeaderMode = iota
	// FirstRow always treats the first line as headers.
	FirstRow
	// NoHeader never treats the first line as headers; columns are named
	// Column1, Column2 and so on.
	NoHeader
)

func (m HeaderMode) valid() bool {
	return m >= AutoDetect && m <= NoHeader
}

func (m HeaderMode) String() string {
	switch m {
	case AutoDetect:
		return "auto"
	case FirstRow:
		return "first-row"
	case NoHeader:
		return "none"
	}
	return fmt.Sprintf("HeaderMode(%d)", int(m))
}

// ParseHeaderMode parses the names returned by HeaderMode.String.
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "autodetect", "":
		return AutoDetect, nil
	case "first-row", "firstrow", "first":
		return FirstRow, nil
	case "none", "no", "noheader":
		return NoHeader, nil
	}
	return AutoDetect, fmt.Errorf("jetcsv: unknown header mode %q", s)
}

// firstLineIsHeaders decides, once per decode, whether the first line is
// the header line. For AutoDetect it looks at the raw text preceding the
// first delimiter, which may run across line breaks when the first line
// has no delimiter.
func firstLineIsHeaders(mode HeaderMode, text string, delimiter rune) bool {
	switch mode {
	case FirstRow:
		return true
	case NoHeader:
		return false
	}
	lead, _, _ := strings.Cut(text, string(delimiter))
	return !scanner.IsNumber(lead)
}
