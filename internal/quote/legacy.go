package quote

import (
	"regexp"
	"strings"

	"github.com/wonny/quotehub/pkg/logger"
)

// absent marks a field the format does not carry
const absent = -1

// legacyFormat is the fixed field-offset contract of one legacy sub-format.
// Offsets are positions in the comma separated record; there is no schema on the wire.
type legacyFormat struct {
	name    string
	match   *regexp.Regexp
	market  Market
	typeTag string // "" means the code's own prefix (code[:symbolStart])

	symbolStart  int    // leading code characters that are not the ticker
	outputPrefix string // prepended to the provider code on output
	floor        int    // minimum decimal precision

	nameAt, openAt, yesterdayCloseAt, priceAt, highAt, lowAt int
	volumeAt, amountAt, priorSettlementAt                     int
	timeAt                                                    []int
}

// legacyFormats is checked in order; the first match wins.
//
// Futures sample (V2201):
//
//	PVC2201,230000,8585.00,8692.00,8467.00,8641.00,8673.00,8674.00,8675.00,8630.00,8821.00,109,2,289274,230643,连,PVC,...
//	name    time   open    high    low     prev    bid1    ask1    price   avg     settle  bv  av hold   volume
//
// The futures offsets come from that one documented record; re-check them against live
// provider output when the provider changes anything.
var legacyFormats = []legacyFormat{
	{
		name:        "mainland",
		match:       regexp.MustCompile(`^(sh|sz)`),
		market:      MarketMainland,
		symbolStart: 2,
		floor:       DefaultPrecision,
		nameAt:      0, openAt: 1, yesterdayCloseAt: 2, priceAt: 3, highAt: 4, lowAt: 5,
		volumeAt: 8, amountAt: 9, priorSettlementAt: absent,
		timeAt: []int{30, 31},
	},
	{
		name:        "us-nodata",
		match:       regexp.MustCompile(`^gb_`),
		market:      MarketNoData,
		symbolStart: 3,
		floor:       DefaultPrecision,
		nameAt:      0, priceAt: 1, openAt: 5, highAt: 6, lowAt: 7, yesterdayCloseAt: 26,
		volumeAt: 10, amountAt: absent, priorSettlementAt: absent,
	},
	{
		name:        "us",
		match:       regexp.MustCompile(`^usr_`),
		market:      MarketUS,
		symbolStart: 4,
		floor:       DefaultPrecision,
		nameAt:      0, priceAt: 1, openAt: 5, highAt: 6, lowAt: 7, yesterdayCloseAt: 26,
		volumeAt: 10, amountAt: absent, priorSettlementAt: absent,
	},
	{
		name:         "futures",
		match:        regexp.MustCompile(`^[A-Z]`),
		market:       MarketFutures,
		typeTag:      futuresTag,
		outputPrefix: futuresTag,
		floor:        0,
		nameAt:       0, openAt: 2, highAt: 3, lowAt: 4, yesterdayCloseAt: 5, priceAt: 8,
		priorSettlementAt: 10, volumeAt: 14, amountAt: absent,
	},
}

// detectLegacyFormat picks the sub-format for a provider code
func detectLegacyFormat(code string) (*legacyFormat, bool) {
	for i := range legacyFormats {
		if legacyFormats[i].match.MatchString(code) {
			return &legacyFormats[i], true
		}
	}
	return nil, false
}

// LegacyCanonical maps a provider code to the caller-facing code ("V2201" -> "cnf_V2201")
func LegacyCanonical(code string) string {
	if f, ok := detectLegacyFormat(code); ok {
		return f.outputPrefix + code
	}
	return code
}

// field returns fields[i], or "" when i is absent or past the end
func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}

// project turns one record into a snapshot using the format's offsets
func (f *legacyFormat) project(code string, fields []string) Snapshot {
	in := PriceInputs{
		Open:           field(fields, f.openAt),
		YesterdayClose: field(fields, f.yesterdayCloseAt),
		Price:          field(fields, f.priceAt),
		High:           field(fields, f.highAt),
		Low:            field(fields, f.lowAt),
	}
	d := Derive(in, f.floor)

	typeTag := f.typeTag
	if typeTag == "" {
		typeTag = code[:f.symbolStart]
	}

	s := Snapshot{
		Code:             f.outputPrefix + code,
		Name:             field(fields, f.nameAt),
		Type:             typeTag,
		Symbol:           code[f.symbolStart:],
		Open:             d.Open,
		YesterdayClose:   d.YesterdayClose,
		Price:            d.Price,
		High:             d.High,
		Low:              d.Low,
		Volume:           FormatAmount(field(fields, f.volumeAt), d.Precision),
		Amount:           NoDataSentinel,
		Updown:           d.Updown,
		Percent:          d.Percent,
		DecimalPrecision: d.Precision,
	}
	if f.amountAt != absent {
		s.Amount = FormatAmount(field(fields, f.amountAt), d.Precision)
	}
	if f.priorSettlementAt != absent {
		s.PriorSettlement = FormatPrice(field(fields, f.priorSettlementAt), d.Precision)
	}
	if len(f.timeAt) > 0 {
		parts := make([]string, 0, len(f.timeAt))
		for _, i := range f.timeAt {
			parts = append(parts, field(fields, i))
		}
		s.Time = strings.TrimSpace(strings.Join(parts, " "))
	}
	return s
}

var legacyFailure = regexp.MustCompile(`FAILED`)

// IsLegacyBatchFailure reports whether the provider rejected the whole batch
func IsLegacyBatchFailure(body string) bool {
	return legacyFailure.MatchString(body)
}

const legacyRecordPrefix = "var hq_str_"

// legacyRecord is one `var hq_str_<code>="f0,f1,...";` line
type legacyRecord struct {
	code   string
	fields []string
}

func splitLegacyRecords(body string) []legacyRecord {
	var records []legacyRecord
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSuffix(line, ";")
		if !strings.HasPrefix(line, legacyRecordPrefix) {
			continue
		}

		code, payload, ok := strings.Cut(line[len(legacyRecordPrefix):], `="`)
		if !ok || code == "" {
			continue
		}
		payload = strings.TrimSuffix(payload, `"`)

		records = append(records, legacyRecord{code: code, fields: strings.Split(payload, ",")})
	}
	return records
}

// ParseLegacy parses one batched legacy response.
// Empty records become no-data placeholders; records of an unknown format are skipped.
// A body carrying the failure marker yields ErrBatchFailed and nothing else.
// ⭐ SSOT: 레거시 피드 파싱은 이 함수에서만
func ParseLegacy(body string, log *logger.Logger) ([]Snapshot, Counters, error) {
	var counters Counters
	if IsLegacyBatchFailure(body) {
		return nil, counters, ErrBatchFailed
	}

	records := splitLegacyRecords(body)
	snapshots := make([]Snapshot, 0, len(records))
	for _, rec := range records {
		if len(rec.fields) < 2 {
			counters.Inc(MarketNoData)
			snapshots = append(snapshots, NoDataSnapshot(rec.code))
			continue
		}

		f, ok := detectLegacyFormat(rec.code)
		if !ok {
			log.WithField("code", rec.code).Debug("Skipped legacy record of unknown format")
			continue
		}

		counters.Inc(f.market)
		snapshots = append(snapshots, f.project(rec.code, rec.fields))
	}

	return snapshots, counters, nil
}
