package main

import (
	"os"

	"github.com/business-central-sdk/bcschema/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
