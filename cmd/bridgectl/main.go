package main

import (
	"os"

	"bridgequote/cmd/bridgectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
