package commands

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/wonny/quotehub/internal/quote"
	"github.com/wonny/quotehub/internal/suggest"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const separatorWidth = 59

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Printf("ℹ️  %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(w io.Writer, columns []string, widths []int) {
	PrintTableRow(w, columns, widths)

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row; widths count runes, not bytes
func PrintTableRow(w io.Writer, values []string, widths []int) {
	for i, val := range values {
		fmt.Fprint(w, val)
		if pad := widths[i] - utf8.RuneCountInString(val); pad > 0 && i < len(values)-1 {
			fmt.Fprint(w, strings.Repeat(" ", pad))
		}
		if i < len(values)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

var quoteColumns = []string{"CODE", "NAME", "PRICE", "UPDOWN", "PERCENT", "HIGH", "LOW", "VOLUME", "AMOUNT"}
var quoteWidths = []int{12, 12, 10, 9, 8, 10, 10, 10, 10}

// PrintQuotes prints the snapshot list as a table
func PrintQuotes(w io.Writer, list []quote.Snapshot) {
	if len(list) == 0 {
		fmt.Fprintln(w, "(no quotes)")
		return
	}

	PrintTableHeader(w, quoteColumns, quoteWidths)
	for _, s := range list {
		name := s.Name
		if s.ContextValue == quote.ContextFailed {
			name = s.Label
		}
		PrintTableRow(w, []string{s.Code, name, s.Price, s.Updown, s.Percent, s.High, s.Low, s.Volume, s.Amount}, quoteWidths)
	}
}

// PrintCounters prints the per-market counters
func PrintCounters(w io.Writer, c quote.Counters) {
	fmt.Fprintln(w, strings.Repeat("─", separatorWidth))
	fmt.Fprintf(w, "A股 %d  港股 %d  美股 %d  期货 %d  无数据 %d\n", c.Mainland, c.HK, c.US, c.Futures, c.NoData)
}

// PrintSuggestions prints one suggestion per line
func PrintSuggestions(w io.Writer, results []suggest.Result) {
	for _, r := range results {
		if r.Description == "" {
			fmt.Fprintln(w, r.Label)
			continue
		}
		fmt.Fprintf(w, "%s  (%s)\n", r.Label, r.Description)
	}
}
