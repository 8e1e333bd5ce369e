package domain

import "strings"

// ActionStatus is the restock classification assigned to a product.
type ActionStatus string

const (
	// StatusBrownType1 flags a stockout with demand still arriving.
	StatusBrownType1 ActionStatus = "brown_type_1"
	// StatusRed means critical cover, reorder now.
	StatusRed ActionStatus = "red"
	// StatusYellow means a reorder should be planned.
	StatusYellow ActionStatus = "yellow"
	// StatusGreen means the current buffer is healthy.
	StatusGreen ActionStatus = "green"
	// StatusBrownType2 flags stock well above demand.
	StatusBrownType2 ActionStatus = "brown_type_2"
	// StatusGrey collects products with insufficient or anomalous signal.
	StatusGrey ActionStatus = "grey"
)

// AllStatuses lists every action status in dashboard display order.
var AllStatuses = []ActionStatus{
	StatusBrownType1,
	StatusRed,
	StatusYellow,
	StatusGreen,
	StatusGrey,
	StatusBrownType2,
}

var statusLabels = map[ActionStatus]string{
	StatusBrownType1: "Stockout, demand pending",
	StatusRed:        "Critical, reorder now",
	StatusYellow:     "Plan reorder",
	StatusGreen:      "Healthy buffer",
	StatusBrownType2: "Overstocked vs demand",
	StatusGrey:       "Insufficient signal",
}

// Label returns a human-readable description for a status.
func (s ActionStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}

	return string(s)
}

// ParseActionStatus resolves a status from its wire name (case-insensitive).
func ParseActionStatus(name string) (ActionStatus, bool) {
	candidate := ActionStatus(strings.ToLower(strings.TrimSpace(name)))
	_, ok := statusLabels[candidate]

	return candidate, ok
}
