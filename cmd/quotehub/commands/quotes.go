package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/quotehub/pkg/logger"
)

// quotesCmd polls once and prints the list
var quotesCmd = &cobra.Command{
	Use:   "quotes [codes...]",
	Short: "시세 1회 조회",
	Long: `Polls both feeds once and prints the merged list.

Without codes the QUOTE_CODES watch list is used.

Example:
  go run ./cmd/quotehub quotes sh000001 hk00700 usr_aapl cnf_V2201 --order -1`,
	RunE: runQuotes,
}

var quotesOrder int

func init() {
	rootCmd.AddCommand(quotesCmd)
	quotesCmd.Flags().IntVar(&quotesOrder, "order", 0, "0 = provider order, 1 = percent ascending, -1 = percent descending")
}

func runQuotes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.NewWithWriter(cfg, os.Stderr)

	ctx := context.Background()
	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	codes := args
	if len(codes) == 0 {
		codes = cfg.Quote.Codes
	}
	order := cfg.Quote.SortOrder
	if cmd.Flags().Changed("order") {
		order = quotesOrder
	}

	list := a.service.FetchQuotes(ctx, codes, order)
	out := cmd.OutOrStdout()
	PrintQuotes(out, list)
	PrintCounters(out, a.publisher.Counters())
	return nil
}
