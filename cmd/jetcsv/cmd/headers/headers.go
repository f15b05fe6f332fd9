package headers

import (
	"fmt"

	"github.com/jetsons/jetcsv/cmd/jetcsv/cmd/options"
	"github.com/jetsons/jetcsv/loader"
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "headers FILE",
		Short: "Print the resolved column names of a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options.FromConfig()
			if err != nil {
				return err
			}
			res, err := loader.LoadFile[map[string]string](args[0], opts...)
			if err != nil {
				return err
			}
			for i, h := range res.Headers {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i+1, h)
			}
			return nil
		},
	}
	return cmd
}
