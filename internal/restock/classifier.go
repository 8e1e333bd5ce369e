// Package restock classifies products into action statuses from their
// order rate and peak stock availability.
package restock

import (
	"math"

	"github.com/beniamp/orders-tracking/internal/domain"
)

// availabilityEpsilon replaces a zero availability in the restock ratio
// denominator.
const availabilityEpsilon = 0.1

// Metrics are the per-product figures the classifier decides on.
type Metrics struct {
	OrderRate       float64
	MaxAvailability float64
	RestockRatio    float64
	DaysRemaining   float64
}

// Compute derives the classifier inputs from total ordered volume, the
// number of distinct days in the analysis range and peak availability.
//
// DaysRemaining is +Inf when the order rate is zero and stock is on hand;
// it is NaN when both are zero, which no rule matches.
func Compute(totalVolume float64, distinctDays int, maxAvailability float64) Metrics {
	m := Metrics{MaxAvailability: maxAvailability}
	if distinctDays > 0 {
		m.OrderRate = totalVolume / float64(distinctDays)
	}
	m.RestockRatio = m.OrderRate / math.Max(maxAvailability, availabilityEpsilon)
	m.DaysRemaining = daysRemaining(m.OrderRate, maxAvailability)
	return m
}

func daysRemaining(orderRate, maxAvailability float64) float64 {
	if orderRate == 0 {
		if maxAvailability == 0 {
			return math.NaN()
		}
		return math.Inf(1)
	}
	return math.Round(maxAvailability / orderRate)
}

// rule is one branch of the classification decision table.
type rule struct {
	status  domain.ActionStatus
	matches func(Metrics) bool
}

// rules is evaluated top to bottom; the first match wins. The order is the
// priority contract, so changing it changes classifications.
var rules = []rule{
	{domain.StatusBrownType1, func(m Metrics) bool {
		return m.RestockRatio > 1 && m.MaxAvailability == 0
	}},
	{domain.StatusRed, func(m Metrics) bool {
		return m.RestockRatio > 0.05 && m.MaxAvailability != 0 && m.DaysRemaining < 10
	}},
	{domain.StatusYellow, func(m Metrics) bool {
		return m.RestockRatio > 0.01 && m.RestockRatio <= 1 && m.DaysRemaining < 30
	}},
	{domain.StatusGreen, func(m Metrics) bool {
		return m.RestockRatio > 0.01 && m.RestockRatio <= 0.05 && m.DaysRemaining > 30
	}},
	{domain.StatusBrownType2, func(m Metrics) bool {
		return (m.RestockRatio > 0.001 && m.RestockRatio < 0.01) || m.DaysRemaining > 90
	}},
}

// Classify assigns exactly one action status per product.
func Classify(m Metrics) domain.ActionStatus {
	for _, r := range rules {
		if r.matches(m) {
			return r.status
		}
	}
	return domain.StatusGrey
}
