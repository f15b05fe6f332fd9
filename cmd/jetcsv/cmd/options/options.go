// Package options turns the CLI configuration into jetcsv options.
package options

import (
	"fmt"
	"unicode/utf8"

	"github.com/jetsons/jetcsv"
	"github.com/spf13/viper"
)

// FromConfig builds the decode options from the viper configuration.
func FromConfig() ([]jetcsv.Option, error) {
	delimiter, err := parseDelimiter(viper.GetString("delimiter"))
	if err != nil {
		return nil, err
	}
	mode, err := jetcsv.ParseHeaderMode(viper.GetString("header"))
	if err != nil {
		return nil, err
	}

	opts := []jetcsv.Option{jetcsv.Delimiter(delimiter), jetcsv.Headers(mode)}
	if columns := viper.GetStringSlice("columns"); len(columns) > 0 {
		opts = append(opts, jetcsv.Columns(columns...))
	}
	if viper.GetBool("strict") {
		opts = append(opts, jetcsv.Strict())
	}
	if viper.GetBool("preserve-newlines") {
		opts = append(opts, jetcsv.PreserveNewlines())
	}
	return opts, nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r, nil
}
