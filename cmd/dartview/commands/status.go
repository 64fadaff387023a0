package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyesung/dartview/internal/store"
	"github.com/hyesung/dartview/pkg/config"
	"github.com/hyesung/dartview/pkg/logger"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "회사 스토어 상태 확인",
	Long: `회사 스토어의 현재 상태를 표시합니다.

표시 정보:
- Total: 전체 회사 수
- Listed: 상장 회사 수
- Samples: 상장 회사 샘플

Example:
  go run ./cmd/dartview status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== DartView Store Status ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	st, err := store.Open(cfg.Data.StorePath)
	if err != nil {
		log.WithError(err).WithField("path", cfg.Data.StorePath).
			Error("Company store unavailable")
		return fmt.Errorf("open store: %w (run init-db first)", err)
	}
	defer st.Close()

	ctx := context.Background()

	total, err := st.Count(ctx)
	if err != nil {
		return fmt.Errorf("count companies: %w", err)
	}
	listed, err := st.ListedCount(ctx)
	if err != nil {
		return fmt.Errorf("count listed companies: %w", err)
	}

	fmt.Println("\n📊 Store Statistics")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("%-15s %10d\n", "Total:", total)
	fmt.Printf("%-15s %10d\n", "Listed:", listed)
	fmt.Printf("%-15s %10d\n", "Unlisted:", total-listed)

	samples, err := st.SampleListed(ctx, 5)
	if err == nil && len(samples) > 0 {
		fmt.Println("\n📋 Sample listed companies")
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		for _, rec := range samples {
			fmt.Printf("  %s  %s (%s)\n", rec.CorpCode, rec.CorpName, rec.StockCode)
		}
	}

	return nil
}
