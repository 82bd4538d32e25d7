package main

import (
	"os"

	"github.com/mlmathbook/mlmath/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
