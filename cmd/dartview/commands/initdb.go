package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyesung/dartview/internal/store"
	"github.com/hyesung/dartview/pkg/config"
	"github.com/hyesung/dartview/pkg/logger"
)

// initDBCmd represents the init-db command
var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "회사 스토어 재구축",
	Long: `corpCodes 데이터셋으로 회사 스토어(SQLite)를 재구축합니다.

이 명령어는:
- 기존 스토어 파일 삭제 후 재생성
- 1000건 단위 배치 트랜잭션 적재
- 중복 고유번호 제거
- 적재 결과 통계 출력

데이터셋 읽기/파싱 실패 시 스토어를 건드리지 않고 중단합니다.

Example:
  go run ./cmd/dartview init-db
  go run ./cmd/dartview init-db --batch-size 500`,
	RunE: runInitDB,
}

var (
	initDBBatchSize int
)

func init() {
	rootCmd.AddCommand(initDBCmd)

	// Flags
	initDBCmd.Flags().IntVar(&initDBBatchSize, "batch-size", 0, "배치 크기 (기본: COMPANY_STORE_BATCH_SIZE)")
}

func runInitDB(cmd *cobra.Command, args []string) error {
	fmt.Println("=== DartView Store Loader ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if initDBBatchSize > 0 {
		cfg.Data.BatchSize = initDBBatchSize
	}

	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"dataset":    cfg.Data.CorpCodesPath,
		"store":      cfg.Data.StorePath,
		"batch_size": cfg.Data.BatchSize,
	}).Info("Starting store load")

	loader := store.NewLoader(cfg.Data, log)
	stats, err := loader.Run(context.Background())
	if err != nil {
		log.WithError(err).Error("Store load failed")
		return fmt.Errorf("store load: %w", err)
	}

	fmt.Println("\n✅ Store rebuilt")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("%-15s %10d\n", "Total:", stats.Total)
	fmt.Printf("%-15s %10d\n", "Listed:", stats.Listed)
	fmt.Printf("%-15s %10d\n", "Unlisted:", stats.Unlisted)
	fmt.Printf("%-15s %10d\n", "Batches:", stats.Batches)
	fmt.Printf("%-15s %9.1fK\n", "File size:", float64(stats.FileSizeBytes)/1024)

	if len(stats.Samples) > 0 {
		fmt.Println("\n📋 Sample listed companies")
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		for _, rec := range stats.Samples {
			fmt.Printf("  %s  %s (%s)\n", rec.CorpCode, rec.CorpName, rec.StockCode)
		}
	}

	return nil
}
