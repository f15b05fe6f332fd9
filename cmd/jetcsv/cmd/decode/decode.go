package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jetsons/jetcsv"
	"github.com/jetsons/jetcsv/cmd/jetcsv/cmd/options"
	"github.com/jetsons/jetcsv/loader"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type conf struct {
	format string
	files  []string
}

// document is written once per decoded input.
type document struct {
	File    string              `json:"file" yaml:"file"`
	Success bool                `json:"success" yaml:"success"`
	Headers []string            `json:"headers" yaml:"headers"`
	Records []map[string]string `json:"records" yaml:"records"`
	Errors  []string            `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "decode FILE...",
		Short: "Decode CSV files into JSON or YAML documents",
		Long: `Decode each file and write one document per file holding the
resolved headers and the records. Use - to read from standard input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.files = args
			c.format = viper.GetString("format")
			return runE(cmd, c)
		},
	}

	cmd.Flags().StringP("format", "f", "json", "output format: json or yaml")
	if err := viper.BindPFlag("format", cmd.Flags().Lookup("format")); err != nil {
		panic(err)
	}

	return cmd
}

func runE(cmd *cobra.Command, c *conf) error {
	opts, err := options.FromConfig()
	if err != nil {
		return err
	}

	enc, closeEnc, err := newEncoder(cmd.OutOrStdout(), c.format)
	if err != nil {
		return err
	}

	failed := 0
	for _, file := range c.files {
		res, err := decodeFile(cmd.InOrStdin(), file, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		doc := document{File: file, Success: res.Success, Headers: res.Headers, Records: res.Records}
		for _, e := range res.Errors {
			log.Warnf("%s: %v", file, e)
			doc.Errors = append(doc.Errors, e.Error())
		}
		if !res.Success {
			failed++
		}
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}
	if err := closeEnc(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs did not decode successfully", failed, len(c.files))
	}
	return nil
}

func decodeFile(stdin io.Reader, file string, opts []jetcsv.Option) (*jetcsv.Result[map[string]string], error) {
	if file != "-" {
		return loader.LoadFile[map[string]string](file, opts...)
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return nil, err
	}
	return jetcsv.Decode[map[string]string](string(b), opts...)
}

type encoder interface {
	Encode(v any) error
}

func newEncoder(w io.Writer, format string) (encoder, func() error, error) {
	switch format {
	case "json":
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e, func() error { return nil }, nil
	case "yaml", "yml":
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		return e, e.Close, nil
	}
	return nil, nil, errors.New("unknown output format " + format)
}
