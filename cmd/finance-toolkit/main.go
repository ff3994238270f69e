package main

import (
	"os"

	"github.com/iwvelando/finance-toolkit/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
