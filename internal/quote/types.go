package quote

import (
	"errors"
)

// Market is the aggregate counter bucket an instrument falls into
type Market string

const (
	MarketMainland Market = "mainland"
	MarketUS       Market = "us"
	MarketHK       Market = "hk"
	MarketFutures  Market = "futures"
	MarketNoData   Market = "nodata"
)

// Display constants shared by both parsers
const (
	// NoDataSentinel fills Amount when the provider has no turnover figure
	NoDataSentinel = "接口无数据"

	ContextFailed = "failed"
	ContextNoData = "nodata"

	failedName   = "错误代码"
	failedSuffix = " 错误代码，请查看是否缺少交易所信息"
	noDataName   = "接口不支持该股票 "
)

// ErrBatchFailed marks a whole-batch provider failure (failure marker or error code)
var ErrBatchFailed = errors.New("provider rejected batch")

// Snapshot is the normalized quote of one instrument.
// All price fields, Updown, Volume and Amount are rendered at DecimalPrecision;
// Percent always carries two digits and a sign.
// ⭐ SSOT: 종목 시세 스냅샷 구조는 여기서만 정의
type Snapshot struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	Symbol           string `json:"symbol"`
	Open             string `json:"open"`
	YesterdayClose   string `json:"yesterdayClose"`
	Price            string `json:"price"`
	High             string `json:"high"`
	Low              string `json:"low"`
	PriorSettlement  string `json:"priorSettlement,omitempty"` // futures only
	Volume           string `json:"volume"`
	Amount           string `json:"amount"`
	Updown           string `json:"updown"`
	Percent          string `json:"percent"`
	DecimalPrecision int    `json:"decimalPrecision"`
	Time             string `json:"time,omitempty"` // mainland only
	ContextValue     string `json:"contextValue,omitempty"`
	Label            string `json:"label,omitempty"`
}

// FailedSnapshot stands in for a code the provider rejected
func FailedSnapshot(code string) Snapshot {
	return Snapshot{
		Code:         code,
		Name:         failedName,
		Percent:      "0",
		ContextValue: ContextFailed,
		Label:        code + failedSuffix,
	}
}

// NoDataSnapshot stands in for a code the provider returned an empty record for
func NoDataSnapshot(code string) Snapshot {
	return Snapshot{
		Code:         code,
		Name:         noDataName + code,
		Type:         ContextNoData,
		ContextValue: ContextNoData,
	}
}

// Counters are per-poll instrument counts by market
type Counters struct {
	Mainland int `json:"aStockCount"`
	US       int `json:"usStockCount"`
	HK       int `json:"hkStockCount"`
	Futures  int `json:"cnfStockCount"`
	NoData   int `json:"noDataStockCount"`
}

// Inc bumps the counter of one market
func (c *Counters) Inc(m Market) {
	switch m {
	case MarketMainland:
		c.Mainland++
	case MarketUS:
		c.US++
	case MarketHK:
		c.HK++
	case MarketFutures:
		c.Futures++
	case MarketNoData:
		c.NoData++
	}
}

// Add returns the element-wise sum
func (c Counters) Add(o Counters) Counters {
	return Counters{
		Mainland: c.Mainland + o.Mainland,
		US:       c.US + o.US,
		HK:       c.HK + o.HK,
		Futures:  c.Futures + o.Futures,
		NoData:   c.NoData + o.NoData,
	}
}

// Total returns the number of counted instruments
func (c Counters) Total() int {
	return c.Mainland + c.US + c.HK + c.Futures + c.NoData
}
