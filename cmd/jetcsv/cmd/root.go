package cmd

import (
	"os"
	"strings"

	"github.com/jetsons/jetcsv/cmd/jetcsv/cmd/decode"
	"github.com/jetsons/jetcsv/cmd/jetcsv/cmd/headers"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type conf struct {
	cfgFile string
}

// NewCommand returns a new cobra.Command implementing the root command for jetcsv
func NewCommand() *cobra.Command {
	c := &conf{}
	cmd := &cobra.Command{
		Use:   "jetcsv",
		Short: "Decode delimited text into structured records",
		Long: `jetcsv decodes CSV and other delimited text into records.

Headers are read from the first line, synthesized as Column1, Column2, ...
or detected automatically. Files ending in .lz4 or .gz are decompressed.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// cobra.OnInitialize hooks are global, so the config is read here.
			c.initConfig()

			level, err := log.ParseLevel(viper.GetString("log-level"))
			if err != nil {
				return err
			}
			log.SetOutput(os.Stderr)
			log.SetLevel(level)
			return nil
		},
	}

	// Flags
	cmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.jetcsv.yaml)")
	cmd.PersistentFlags().String("log-level", "warn", "log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().StringP("delimiter", "d", ",", "field delimiter (a single character, or \\t for tab)")
	cmd.PersistentFlags().String("header", "auto", "header mode: auto, first-row or none")
	cmd.PersistentFlags().StringSlice("columns", nil, "column names, taking precedence over the header line")
	cmd.PersistentFlags().Bool("strict", false, "report malformed quoting and conversion errors")
	cmd.PersistentFlags().Bool("preserve-newlines", false, "keep line breaks inside multi-line quoted values")
	if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
		panic(err)
	}

	// Subcommands
	cmd.AddCommand(decode.NewCommand())
	cmd.AddCommand(headers.NewCommand())

	return cmd
}

// initConfig reads in config file and ENV variables if set.
func (c *conf) initConfig() {
	if c.cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(c.cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			log.Warnf("cannot find home directory: %v", err)
		} else {
			// Search config in home directory with name ".jetcsv" (without extension).
			viper.AddConfigPath(home)
			viper.SetConfigName(".jetcsv")
		}
	}

	viper.SetEnvPrefix("jetcsv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("using config file: %s", viper.ConfigFileUsed())
	} else if c.cfgFile != "" {
		log.Warnf("cannot read config file %s: %v", c.cfgFile, err)
	}
}
