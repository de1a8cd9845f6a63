package main

import (
	"os"

	"github.com/decodoc/decodoc/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
