package quote_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/quotehub/internal/quote"
	"github.com/wonny/quotehub/pkg/logger"
)

func TestParseLegacy_Mainland(t *testing.T) {
	snaps, counters, err := quote.ParseLegacy(mainlandLine(), logger.NewNop())
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	s := snaps[0]
	assert.Equal(t, "sh000001", s.Code)
	assert.Equal(t, "sh", s.Type)
	assert.Equal(t, "000001", s.Symbol)
	assert.Equal(t, "上证指数", s.Name)
	assert.Equal(t, "10.50", s.Open)
	assert.Equal(t, "10.00", s.YesterdayClose)
	assert.Equal(t, "11.00", s.Price)
	assert.Equal(t, "11.20", s.High)
	assert.Equal(t, "10.40", s.Low)
	assert.Equal(t, "0.12亿", s.Volume)
	assert.Equal(t, "9.88万", s.Amount)
	assert.Equal(t, "1.00", s.Updown)
	assert.Equal(t, "+10.00", s.Percent)
	assert.Equal(t, 2, s.DecimalPrecision)
	assert.Equal(t, "2022-01-05 15:00:03", s.Time)
	assert.Empty(t, s.ContextValue)

	assert.Equal(t, quote.Counters{Mainland: 1}, counters)
}

func TestParseLegacy_MainlandTypeAndSymbol(t *testing.T) {
	for _, code := range []string{"sh600519", "sz000001", "sz399006"} {
		t.Run(code, func(t *testing.T) {
			body := legacyLine(code, 33, map[int]string{0: "x", 1: "1", 2: "1", 3: "1"})
			snaps, _, err := quote.ParseLegacy(body, logger.NewNop())
			require.NoError(t, err)
			require.Len(t, snaps, 1)

			assert.Equal(t, code[:2], snaps[0].Type)
			assert.Equal(t, code[2:], snaps[0].Symbol)
		})
	}
}

func TestParseLegacy_US(t *testing.T) {
	snaps, counters, err := quote.ParseLegacy(usLine("usr_aapl")+usLine("gb_dji"), logger.NewNop())
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	usr := snaps[0]
	assert.Equal(t, "usr_aapl", usr.Code)
	assert.Equal(t, "usr_", usr.Type)
	assert.Equal(t, "aapl", usr.Symbol)
	assert.Equal(t, "179.61", usr.Open)
	assert.Equal(t, "182.88", usr.High)
	assert.Equal(t, "178.93", usr.Low)
	assert.Equal(t, "179.70", usr.YesterdayClose)
	assert.Equal(t, "182.01", usr.Price)
	assert.Equal(t, "1.04亿", usr.Volume)
	assert.Equal(t, quote.NoDataSentinel, usr.Amount)
	assert.Equal(t, "2.31", usr.Updown)
	assert.Equal(t, "+1.29", usr.Percent)

	gb := snaps[1]
	assert.Equal(t, "gb_", gb.Type)
	assert.Equal(t, "dji", gb.Symbol)
	assert.Equal(t, quote.NoDataSentinel, gb.Amount)

	assert.Equal(t, quote.Counters{US: 1, NoData: 1}, counters)
}

func TestParseLegacy_Futures(t *testing.T) {
	snaps, counters, err := quote.ParseLegacy(futuresLine, logger.NewNop())
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	s := snaps[0]
	assert.Equal(t, "cnf_V2201", s.Code)
	assert.Equal(t, "cnf_", s.Type)
	assert.Equal(t, "V2201", s.Symbol)
	assert.Equal(t, "PVC2201", s.Name)
	assert.Equal(t, 0, s.DecimalPrecision)
	assert.Equal(t, "8585", s.Open)
	assert.Equal(t, "8692", s.High)
	assert.Equal(t, "8467", s.Low)
	assert.Equal(t, "8641", s.YesterdayClose)
	assert.Equal(t, "8675", s.Price)
	assert.Equal(t, "8821", s.PriorSettlement)
	assert.Equal(t, "23万", s.Volume)
	assert.Equal(t, quote.NoDataSentinel, s.Amount)
	assert.Equal(t, "34", s.Updown)
	assert.Equal(t, "+0.39", s.Percent)

	assert.Equal(t, quote.Counters{Futures: 1}, counters)
}

func TestParseLegacy_NoDataRecord(t *testing.T) {
	body := "var hq_str_sh999999=\"\";\n" + mainlandLine()

	snaps, counters, err := quote.ParseLegacy(body, logger.NewNop())
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	assert.Equal(t, quote.NoDataSnapshot("sh999999"), snaps[0])
	assert.Equal(t, quote.ContextNoData, snaps[0].ContextValue)
	assert.Empty(t, snaps[0].Percent)
	assert.Equal(t, "sh000001", snaps[1].Code)

	assert.Equal(t, quote.Counters{Mainland: 1, NoData: 1}, counters)
}

func TestParseLegacy_UnknownFormatSkipped(t *testing.T) {
	body := "var hq_str_xx123=\"a,b,c\";\n" + mainlandLine()

	snaps, counters, err := quote.ParseLegacy(body, logger.NewNop())
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, 1, counters.Total())
}

func TestParseLegacy_BatchFailure(t *testing.T) {
	snaps, counters, err := quote.ParseLegacy("FAILED", logger.NewNop())

	assert.ErrorIs(t, err, quote.ErrBatchFailed)
	assert.Empty(t, snaps)
	assert.Zero(t, counters.Total())
}

func TestParseLegacy_ShortRecordFieldsReadAsZero(t *testing.T) {
	// 10 fields: no timestamp, but still a mainland record
	body := legacyLine("sz000002", 10, map[int]string{0: "万科A", 1: "20", 2: "19", 3: "21"})

	snaps, _, err := quote.ParseLegacy(body, logger.NewNop())
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Empty(t, snaps[0].Time)
	assert.Equal(t, "+10.53", snaps[0].Percent)
}
