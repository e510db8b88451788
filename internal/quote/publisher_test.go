package quote_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/quotehub/internal/quote"
	"github.com/wonny/quotehub/pkg/logger"
)

func TestPublisher_PublishCarriesOldAndNew(t *testing.T) {
	p := quote.NewPublisher(logger.NewNop())

	var got []quote.ListUpdate
	p.Subscribe(func(u quote.ListUpdate) { got = append(got, u) })

	first := []quote.Snapshot{{Code: "sh000001"}}
	second := []quote.Snapshot{{Code: "sz000001"}}

	p.Publish(first, quote.Counters{Mainland: 1})
	p.Publish(second, quote.Counters{Mainland: 1, US: 2})

	assert.Len(t, got, 2)
	assert.Nil(t, got[0].Old)
	assert.Equal(t, first, got[1].Old)
	assert.Equal(t, second, got[1].New)
	assert.Equal(t, second, p.Current())
	assert.Equal(t, quote.Counters{Mainland: 1, US: 2}, p.Counters(), "counters are overwritten, not accumulated")
}

func TestPublisher_SeedIsSilent(t *testing.T) {
	p := quote.NewPublisher(logger.NewNop())

	called := false
	p.Subscribe(func(quote.ListUpdate) { called = true })
	p.Seed([]quote.Snapshot{{Code: "hk00700"}}, quote.Counters{HK: 1})

	assert.False(t, called)
	assert.Equal(t, 1, p.Counters().HK)
}

func TestSortSnapshots_Stable(t *testing.T) {
	list := []quote.Snapshot{
		{Code: "a", Percent: "+1.00"},
		{Code: "b", Percent: "-2.00"},
		{Code: "c", Percent: "+1.00"},
		{Code: "d", Percent: "0"},
		{Code: "e"},
	}

	asc := quote.SortSnapshots(list, quote.OrderAscending)
	assert.Equal(t, []string{"b", "d", "e", "a", "c"}, codesOf(asc))

	desc := quote.SortSnapshots(list, quote.OrderDescending)
	assert.Equal(t, []string{"a", "c", "d", "e", "b"}, codesOf(desc))

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, codesOf(quote.SortSnapshots(list, quote.OrderProvider)))
	assert.Equal(t, "a", list[0].Code, "input is not reordered")
}
