package main

import (
	"log"

	"github.com/aibiikeo/journal-cli/pkg/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
