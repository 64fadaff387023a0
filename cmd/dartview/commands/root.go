package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dartview",
	Short: "DartView - DART 재무제표 뷰어",
	Long: `DartView Unified CLI

DART 공시 데이터 기반 재무제표 조회 서비스.
회사 검색부터 재무제표 조회, AI 요약까지.

Usage:
  go run ./cmd/dartview [command]

Examples:
  go run ./cmd/dartview serve
  go run ./cmd/dartview init-db
  go run ./cmd/dartview status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
