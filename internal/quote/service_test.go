package quote_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wonny/quotehub/internal/quote"
	"github.com/wonny/quotehub/pkg/logger"
)

type serviceFixture struct {
	legacy  *MockLegacyFeed
	hk      *MockJSONFeed
	alerts  *MockAlerts
	pub     *quote.Publisher
	svc     *quote.Service
	updates []quote.ListUpdate
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &serviceFixture{
		legacy: NewMockLegacyFeed(ctrl),
		hk:     NewMockJSONFeed(ctrl),
		alerts: NewMockAlerts(ctrl),
		pub:    quote.NewPublisher(logger.NewNop()),
	}
	f.legacy.EXPECT().QuoteURL(gomock.Any()).Return("http://legacy").AnyTimes()
	f.hk.EXPECT().QuoteURL(gomock.Any()).Return("http://hk").AnyTimes()
	f.pub.Subscribe(func(u quote.ListUpdate) { f.updates = append(f.updates, u) })
	f.svc = quote.NewService(f.legacy, f.hk, f.alerts, f.pub, 2, logger.NewNop())
	return f
}

func TestFetchQuotes_EmptyCodesNoNetwork(t *testing.T) {
	f := newServiceFixture(t)

	list := f.svc.FetchQuotes(context.Background(), nil, quote.OrderProvider)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	list = f.svc.FetchQuotes(context.Background(), []string{"", "cnf_"}, quote.OrderProvider)
	assert.Empty(t, list)
	assert.Empty(t, f.updates, "nothing is published")
}

func TestFetchQuotes_MergesBothFeeds(t *testing.T) {
	f := newServiceFixture(t)
	f.legacy.EXPECT().FetchQuotes(gomock.Any(), []string{"sh000001", "V2201"}).Return(mainlandLine()+futuresLine, nil)
	f.hk.EXPECT().FetchBatchQuote(gomock.Any(), []string{"00700", "HSI"}).Return([]byte(hkBody), nil)

	list := f.svc.FetchQuotes(context.Background(), []string{"sh000001", "hk00700", "cnf_V2201", "hkHSI"}, quote.OrderProvider)

	require.Len(t, list, 4)
	assert.Equal(t, []string{"sh000001", "cnf_V2201", "hk00700", "hkHSI"}, codesOf(list))

	require.Len(t, f.updates, 1)
	assert.Equal(t, list, f.updates[0].New)
	assert.Empty(t, f.updates[0].Old)
	assert.Equal(t, quote.Counters{Mainland: 1, Futures: 1, HK: 2}, f.updates[0].Counters)
	assert.Equal(t, f.updates[0].Counters, f.pub.Counters())
}

func TestFetchQuotes_SingleCodeBatchFailure(t *testing.T) {
	f := newServiceFixture(t)
	f.legacy.EXPECT().FetchQuotes(gomock.Any(), []string{"sh999999"}).Return("FAILED", nil)
	f.alerts.EXPECT().InvalidCode(gomock.Any(), "sh999999").Times(1)

	list := f.svc.FetchQuotes(context.Background(), []string{"sh999999"}, quote.OrderProvider)

	require.Len(t, list, 1)
	assert.Equal(t, quote.ContextFailed, list[0].ContextValue)
	assert.Equal(t, "sh999999", list[0].Code)
	assert.Equal(t, "sh999999 错误代码，请查看是否缺少交易所信息", list[0].Label)
}

func TestFetchQuotes_OneBadCodeIsolated(t *testing.T) {
	f := newServiceFixture(t)
	codes := []string{"sh000001", "sh999999", "usr_aapl"}

	f.legacy.EXPECT().FetchQuotes(gomock.Any(), codes).Return("FAILED", nil)
	f.legacy.EXPECT().FetchQuotes(gomock.Any(), []string{"sh000001"}).Return(mainlandLine(), nil)
	f.legacy.EXPECT().FetchQuotes(gomock.Any(), []string{"sh999999"}).Return("FAILED", nil)
	f.legacy.EXPECT().FetchQuotes(gomock.Any(), []string{"usr_aapl"}).Return(usLine("usr_aapl"), nil)
	f.alerts.EXPECT().InvalidCode(gomock.Any(), "sh999999").Times(1)

	list := f.svc.FetchQuotes(context.Background(), codes, quote.OrderProvider)

	require.Len(t, list, 3)
	assert.Equal(t, codes, codesOf(list), "fetch order is kept")

	failed := 0
	for _, s := range list {
		if s.ContextValue == quote.ContextFailed {
			failed++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, quote.Counters{Mainland: 1, US: 1}, f.pub.Counters())
}

func TestFetchQuotes_HKSingleBatchError(t *testing.T) {
	f := newServiceFixture(t)
	f.hk.EXPECT().FetchBatchQuote(gomock.Any(), []string{"00700"}).Return([]byte(hkErrorBody), nil)
	f.alerts.EXPECT().HKRequestError(gomock.Any(), "00700", "400016", "bad symbol").Times(1)

	list := f.svc.FetchQuotes(context.Background(), []string{"hk00700"}, quote.OrderProvider)

	require.Len(t, list, 1)
	assert.Equal(t, quote.ContextFailed, list[0].ContextValue)
	assert.Equal(t, "hk00700", list[0].Code)
}

func TestFetchQuotes_HKOneBadSymbolIsolated(t *testing.T) {
	f := newServiceFixture(t)
	f.hk.EXPECT().FetchBatchQuote(gomock.Any(), []string{"00700", "99999"}).Return([]byte(hkErrorBody), nil)
	f.hk.EXPECT().FetchBatchQuote(gomock.Any(), []string{"00700"}).Return([]byte(hkSingleBody("00700")), nil)
	f.hk.EXPECT().FetchBatchQuote(gomock.Any(), []string{"99999"}).Return([]byte(hkErrorBody), nil)
	f.alerts.EXPECT().HKRequestError(gomock.Any(), "99999", "400016", "bad symbol").Times(1)

	list := f.svc.FetchQuotes(context.Background(), []string{"hk00700", "hk99999"}, quote.OrderProvider)

	require.Len(t, list, 2)
	assert.Equal(t, []string{"hk00700", "hk99999"}, codesOf(list))
	assert.Empty(t, list[0].ContextValue)
	assert.Equal(t, quote.ContextFailed, list[1].ContextValue)
}

func TestFetchQuotes_OneFeedDownStillPublishes(t *testing.T) {
	f := newServiceFixture(t)
	boom := errors.New("connection reset")
	f.legacy.EXPECT().FetchQuotes(gomock.Any(), []string{"sh000001"}).Return("", boom)
	f.hk.EXPECT().FetchBatchQuote(gomock.Any(), []string{"00700", "HSI"}).Return([]byte(hkBody), nil)
	f.alerts.EXPECT().TransportFailure(gomock.Any(), quote.SourceLegacy, "http://legacy", boom).Times(1)

	list := f.svc.FetchQuotes(context.Background(), []string{"sh000001", "hk00700", "hkHSI"}, quote.OrderProvider)

	assert.Equal(t, []string{"hk00700", "hkHSI"}, codesOf(list))
	require.Len(t, f.updates, 1)
	assert.Equal(t, quote.Counters{HK: 2}, f.updates[0].Counters)
}

func TestFetchQuotes_TotalFailureKeepsPreviousList(t *testing.T) {
	f := newServiceFixture(t)
	previous := []quote.Snapshot{{Code: "sh000001", Percent: "+1.00"}}
	f.pub.Seed(previous, quote.Counters{Mainland: 1})

	f.legacy.EXPECT().FetchQuotes(gomock.Any(), gomock.Any()).Return("", errors.New("timeout"))
	f.hk.EXPECT().FetchBatchQuote(gomock.Any(), gomock.Any()).Return([]byte("<html>"), nil)
	f.alerts.EXPECT().TransportFailure(gomock.Any(), quote.SourceLegacy, gomock.Any(), gomock.Any())
	f.alerts.EXPECT().TransportFailure(gomock.Any(), quote.SourceJSON, "http://hk", gomock.Any())

	list := f.svc.FetchQuotes(context.Background(), []string{"sh000001", "hk00700"}, quote.OrderProvider)

	assert.Equal(t, previous, list)
	assert.Empty(t, f.updates)
	assert.Equal(t, previous, f.pub.Current())
	assert.Equal(t, quote.Counters{Mainland: 1}, f.pub.Counters())
}

func TestFetchQuotes_Idempotent(t *testing.T) {
	f := newServiceFixture(t)
	f.legacy.EXPECT().FetchQuotes(gomock.Any(), gomock.Any()).Return(mainlandLine()+usLine("usr_aapl"), nil).Times(2)
	f.hk.EXPECT().FetchBatchQuote(gomock.Any(), gomock.Any()).Return([]byte(hkBody), nil).Times(2)

	codes := []string{"sh000001", "usr_aapl", "hk00700", "hkHSI"}
	first := f.svc.FetchQuotes(context.Background(), codes, quote.OrderDescending)
	second := f.svc.FetchQuotes(context.Background(), codes, quote.OrderDescending)

	assert.Equal(t, first, second)
	require.Len(t, f.updates, 2)
	assert.Equal(t, first, f.updates[1].Old)
	assert.Equal(t, second, f.updates[1].New)
}

func TestFetchQuotes_SortOrder(t *testing.T) {
	f := newServiceFixture(t)
	f.legacy.EXPECT().FetchQuotes(gomock.Any(), gomock.Any()).Return(mainlandLine()+usLine("usr_aapl")+futuresLine, nil).Times(2)

	codes := []string{"sh000001", "usr_aapl", "V2201"}

	// +10.00, +1.29, +0.39
	desc := f.svc.FetchQuotes(context.Background(), codes, quote.OrderDescending)
	assert.Equal(t, []string{"sh000001", "usr_aapl", "cnf_V2201"}, codesOf(desc))

	asc := f.svc.FetchQuotes(context.Background(), codes, quote.OrderAscending)
	assert.Equal(t, []string{"cnf_V2201", "usr_aapl", "sh000001"}, codesOf(asc))
}

func TestPoll_SerializesOverlappingPolls(t *testing.T) {
	f := newServiceFixture(t)
	started := make(chan struct{})
	release := make(chan struct{})
	var secondFetched atomic.Bool

	f.legacy.EXPECT().FetchQuotes(gomock.Any(), []string{"sh000001"}).DoAndReturn(
		func(context.Context, []string) (string, error) {
			close(started)
			<-release
			return mainlandLine(), nil
		})
	f.legacy.EXPECT().FetchQuotes(gomock.Any(), []string{"usr_aapl"}).DoAndReturn(
		func(context.Context, []string) (string, error) {
			secondFetched.Store(true)
			return usLine("usr_aapl"), nil
		})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		f.svc.Poll(context.Background(), []string{"sh000001"}, quote.OrderProvider)
	}()
	<-started

	var second quote.Counters
	go func() {
		defer wg.Done()
		_, second = f.svc.Poll(context.Background(), []string{"usr_aapl"}, quote.OrderProvider)
	}()

	assert.Never(t, secondFetched.Load, 100*time.Millisecond, 10*time.Millisecond, "second poll waits for the first")
	close(release)
	wg.Wait()

	require.Len(t, f.updates, 2)
	assert.Equal(t, []string{"sh000001"}, codesOf(f.updates[0].New))
	assert.Equal(t, []string{"usr_aapl"}, codesOf(f.updates[1].New))
	assert.Equal(t, []string{"usr_aapl"}, codesOf(f.pub.Current()))
	assert.Equal(t, quote.Counters{US: 1}, second)
	assert.Equal(t, second, f.pub.Counters())
}

func TestPoll_TotalFailureReturnsPublishedCounters(t *testing.T) {
	f := newServiceFixture(t)
	f.pub.Seed([]quote.Snapshot{{Code: "sh000001"}}, quote.Counters{Mainland: 1})
	f.legacy.EXPECT().FetchQuotes(gomock.Any(), gomock.Any()).Return("", errors.New("timeout"))
	f.alerts.EXPECT().TransportFailure(gomock.Any(), quote.SourceLegacy, gomock.Any(), gomock.Any())

	list, counters := f.svc.Poll(context.Background(), []string{"sh000001"}, quote.OrderProvider)

	assert.Equal(t, []string{"sh000001"}, codesOf(list))
	assert.Equal(t, quote.Counters{Mainland: 1}, counters)
}

func TestLookup_DoesNotPublish(t *testing.T) {
	f := newServiceFixture(t)
	watch := []quote.Snapshot{{Code: "sh000001"}}
	f.pub.Seed(watch, quote.Counters{Mainland: 1})
	f.legacy.EXPECT().FetchQuotes(gomock.Any(), []string{"usr_aapl"}).Return(usLine("usr_aapl"), nil)

	list, counters := f.svc.Lookup(context.Background(), []string{"usr_aapl"}, quote.OrderProvider)

	assert.Equal(t, []string{"usr_aapl"}, codesOf(list))
	assert.Equal(t, quote.Counters{US: 1}, counters)
	assert.Empty(t, f.updates)
	assert.Equal(t, watch, f.pub.Current())
	assert.Equal(t, quote.Counters{Mainland: 1}, f.pub.Counters())
}

func TestLookup_TotalFailureIsEmpty(t *testing.T) {
	f := newServiceFixture(t)
	f.pub.Seed([]quote.Snapshot{{Code: "sh000001"}}, quote.Counters{Mainland: 1})
	f.legacy.EXPECT().FetchQuotes(gomock.Any(), gomock.Any()).Return("", errors.New("timeout"))
	f.alerts.EXPECT().TransportFailure(gomock.Any(), quote.SourceLegacy, gomock.Any(), gomock.Any())

	list, counters := f.svc.Lookup(context.Background(), []string{"usr_aapl"}, quote.OrderProvider)

	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.Zero(t, counters)
}

func codesOf(list []quote.Snapshot) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.Code)
	}
	return out
}
