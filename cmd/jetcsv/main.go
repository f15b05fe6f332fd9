package main

import (
	"os"

	"github.com/jetsons/jetcsv/cmd/jetcsv/cmd"
)

func main() {
	if err := cmd.NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
