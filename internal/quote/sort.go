package quote

import "sort"

// Sort orders
const (
	OrderProvider   = 0
	OrderAscending  = 1
	OrderDescending = -1
)

// SortSnapshots returns a percent-ordered copy; ties keep fetch order.
// Any order other than ±1 keeps provider order.
func SortSnapshots(list []Snapshot, order int) []Snapshot {
	out := make([]Snapshot, len(list))
	copy(out, list)

	switch order {
	case OrderAscending:
		sort.SliceStable(out, func(i, j int) bool {
			return percentValue(out[i]).LessThan(percentValue(out[j]))
		})
	case OrderDescending:
		sort.SliceStable(out, func(i, j int) bool {
			return percentValue(out[i]).GreaterThan(percentValue(out[j]))
		})
	}
	return out
}
