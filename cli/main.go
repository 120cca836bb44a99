package main

import (
	"os"

	"github.com/cargolens-systems/cargolens-oracle/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
