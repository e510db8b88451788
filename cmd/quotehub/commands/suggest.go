package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/quotehub/pkg/logger"
)

// suggestCmd resolves free text into instrument codes
var suggestCmd = &cobra.Command{
	Use:   "suggest [text]",
	Short: "종목 코드 검색",
	Long: `Resolves free text into instrument codes.
Text starting with an uppercase letter searches futures.

Example:
  go run ./cmd/quotehub suggest 腾讯
  go run ./cmd/quotehub suggest V22`,
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
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

	PrintSuggestions(cmd.OutOrStdout(), a.resolver.Resolve(ctx, strings.Join(args, " ")))
	return nil
}
