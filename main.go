package main

import (
	"os"

	"github.com/mzielinski/freqwatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
