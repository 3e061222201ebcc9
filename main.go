package main

import (
	"os"

	"github.com/scripta-tools/linehistory/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
