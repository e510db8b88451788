package quote

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultPrecision is the floor for equity quotes
	DefaultPrecision = 2
	// significantDigits is what a float64 carries; digits past it are binary noise
	significantDigits = 15
	// PercentPrecision is fixed regardless of instrument
	PercentPrecision = 2
)

var (
	hundred     = decimal.NewFromInt(100)
	tenThousand = decimal.NewFromInt(10_000)
	hundredMln  = decimal.NewFromInt(100_000_000)
	wanFrom     = decimal.NewFromInt(1_000)
	yiFrom      = decimal.NewFromInt(10_000_000)
)

// PriceInputs are the five provider numbers metrics are derived from, as raw text
type PriceInputs struct {
	Open           string
	YesterdayClose string
	Price          string
	High           string
	Low            string
}

// Derived is the display-ready output of Derive
type Derived struct {
	Precision      int
	Open           string
	YesterdayClose string
	Price          string
	High           string
	Low            string
	Updown         string
	Percent        string
}

// parseDecimal reads provider text, treating blanks and garbage as zero.
// Float noise such as 12.340000000000002 is rounded away at 15 significant digits.
func parseDecimal(raw string) decimal.Decimal {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strconv.FormatFloat(f, 'g', significantDigits, 64))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// fractionDigits counts significant fractional digits ("12.3400" -> 2)
func fractionDigits(raw string) int {
	s := parseDecimal(raw).String()
	idx := strings.IndexByte(s, '.')
	if idx < 0 {
		return 0
	}
	return len(s) - idx - 1
}

// Precision picks the digit count that keeps every input intact, never below floor
func (in PriceInputs) Precision(floor int) int {
	p := floor
	for _, raw := range []string{in.Open, in.YesterdayClose, in.Price, in.High, in.Low} {
		if n := fractionDigits(raw); n > p {
			p = n
		}
	}
	return p
}

// Derive computes precision, formatted prices, updown and percent.
// Before the first trade (open <= 0) yesterday's close stands in for the price
// when computing the change; the reported Price is left as the provider sent it.
// ⭐ SSOT: 파생 지표 계산은 이 함수에서만
func Derive(in PriceInputs, floor int) Derived {
	p := in.Precision(floor)
	places := int32(p)

	open := parseDecimal(in.Open).Round(places)
	yc := parseDecimal(in.YesterdayClose).Round(places)
	price := parseDecimal(in.Price).Round(places)

	effective := price
	if !open.IsPositive() {
		effective = yc
	}
	updown := effective.Sub(yc)

	return Derived{
		Precision:      p,
		Open:           open.StringFixed(places),
		YesterdayClose: yc.StringFixed(places),
		Price:          price.StringFixed(places),
		High:           parseDecimal(in.High).StringFixed(places),
		Low:            parseDecimal(in.Low).StringFixed(places),
		Updown:         updown.StringFixed(places),
		Percent:        percentChange(updown, yc),
	}
}

// percentChange renders |updown| / yesterdayClose as a signed two-digit percentage
func percentChange(updown, yesterdayClose decimal.Decimal) string {
	sign := "+"
	if updown.IsNegative() {
		sign = "-"
	}
	magnitude := decimal.Zero
	if !yesterdayClose.IsZero() {
		magnitude = updown.Abs().Div(yesterdayClose.Abs()).Mul(hundred)
	}
	return sign + magnitude.StringFixed(PercentPrecision)
}

// FormatPrice renders one raw number at the snapshot precision
func FormatPrice(raw string, precision int) string {
	return parseDecimal(raw).StringFixed(int32(precision))
}

// FormatAmount renders volume/turnover with 万/亿 units
func FormatAmount(raw string, precision int) string {
	n := parseDecimal(raw)
	places := int32(precision)
	switch {
	case n.GreaterThan(yiFrom):
		return n.Div(hundredMln).StringFixed(places) + "亿"
	case n.GreaterThan(wanFrom):
		return n.Div(tenThousand).StringFixed(places) + "万"
	default:
		return n.StringFixed(places)
	}
}

// percentValue is the sort key of a snapshot; placeholders sort as zero
func percentValue(s Snapshot) decimal.Decimal {
	return parseDecimal(strings.TrimPrefix(s.Percent, "+"))
}
