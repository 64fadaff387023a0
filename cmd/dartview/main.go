package main

import (
	"os"

	"github.com/hyesung/dartview/cmd/dartview/commands"
)

// main is the entry point for the DartView CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/dartview [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
