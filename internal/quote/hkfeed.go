package quote

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// HKBatchError carries the provider's whole-batch error for the JSON feed
type HKBatchError struct {
	Code        string
	Description string
}

func (e *HKBatchError) Error() string {
	return fmt.Sprintf("hk batch error (%s, %s)", e.Code, e.Description)
}

// Unwrap lets callers match ErrBatchFailed
func (e *HKBatchError) Unwrap() error {
	return ErrBatchFailed
}

// numberOr reads a numeric field as raw text; absent or null fields read as "0"
func numberOr(q gjson.Result, path string) string {
	v := q.Get(path)
	if !v.Exists() || v.Type == gjson.Null || v.Raw == "" {
		return "0"
	}
	if v.Type == gjson.String {
		if v.Str == "" {
			return "0"
		}
		return v.Str
	}
	return v.Raw
}

// ParseHKQuotes parses one JSON-feed document.
// A non-empty error_code yields *HKBatchError (errors.Is ErrBatchFailed) and no snapshots.
// Unparseable JSON is a transport-class error, not a batch failure.
// ⭐ SSOT: 홍콩 시세 파싱은 이 함수에서만
func ParseHKQuotes(body []byte) ([]Snapshot, Counters, error) {
	var counters Counters
	if !gjson.ValidBytes(body) {
		return nil, counters, fmt.Errorf("invalid hk quote document")
	}

	doc := gjson.ParseBytes(body)
	if code := doc.Get("error_code"); code.Exists() && code.Type != gjson.Null && code.String() != "" && code.String() != "0" {
		return nil, counters, &HKBatchError{
			Code:        code.String(),
			Description: doc.Get("error_description").String(),
		}
	}

	items := doc.Get("data.items").Array()
	snapshots := make([]Snapshot, 0, len(items))
	for _, item := range items {
		q := item.Get("quote")
		if !q.Exists() {
			continue
		}

		in := PriceInputs{
			Open:           numberOr(q, "open"),
			YesterdayClose: numberOr(q, "last_close"),
			Price:          numberOr(q, "current"),
			High:           numberOr(q, "high"),
			Low:            numberOr(q, "low"),
		}
		d := Derive(in, DefaultPrecision)

		counters.Inc(MarketHK)
		snapshots = append(snapshots, Snapshot{
			Code:             HKCanonical(q.Get("symbol").String()),
			Name:             q.Get("name").String(),
			Type:             hkTag,
			Symbol:           q.Get("code").String(),
			Open:             d.Open,
			YesterdayClose:   d.YesterdayClose,
			Price:            d.Price,
			High:             d.High,
			Low:              d.Low,
			Volume:           FormatAmount(numberOr(q, "volume"), d.Precision),
			Amount:           FormatAmount(numberOr(q, "amount"), d.Precision),
			Updown:           d.Updown,
			Percent:          d.Percent,
			DecimalPrecision: d.Precision,
		})
	}

	return snapshots, counters, nil
}
