package main

import (
	"os"

	"github.com/wonny/quotehub/cmd/quotehub/commands"
)

// main is the entry point for the quotehub CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/quotehub [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
