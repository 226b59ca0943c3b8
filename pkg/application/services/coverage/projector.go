package coverage

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNegativeQuantity is returned for negative or non-finite input
	ErrNegativeQuantity = errors.New("negative quantity")
	// ErrSeriesLength is returned when demand and replenishment differ in length
	ErrSeriesLength = errors.New("series length mismatch")
)

// Project computes the days of supply for every day of the horizon.
//
// The stock at the start of day d is drawn down against demand[d:] only;
// replenishment reaches the stock of the following day. On the last day
// its replenishment is added before that day's coverage is computed.
func Project(initialStock float64, demand, replenishment []float64) ([]float64, error) {
	if len(demand) != len(replenishment) {
		return nil, fmt.Errorf("%w: %d demand days, %d replenishment days", ErrSeriesLength, len(demand), len(replenishment))
	}
	if err := checkQuantity("initial stock", 0, initialStock); err != nil {
		return nil, err
	}
	for i := range demand {
		if err := checkQuantity("demand", i, demand[i]); err != nil {
			return nil, err
		}
		if err := checkQuantity("replenishment", i, replenishment[i]); err != nil {
			return nil, err
		}
	}

	n := len(demand)
	daysOfSupply := make([]float64, n)
	stock := initialStock
	for d := 0; d < n; d++ {
		if d == n-1 {
			stock += replenishment[d]
		}
		daysOfSupply[d] = DaysOfSupply(stock, demand[d:])
		stock = stock - demand[d] + replenishment[d]
	}
	return daysOfSupply, nil
}

// DaysOfSupply counts how many consecutive days of demand the stock covers,
// with a fractional share of the first day it cannot fully cover
func DaysOfSupply(stock float64, demand []float64) float64 {
	days := 0.0
	available := stock
	for _, q := range demand {
		if available >= q {
			days++
			available -= q
			continue
		}
		if available > 0 {
			days += available / q
		}
		break
	}
	return days
}

func checkQuantity(name string, day int, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s %v on day %d", ErrNegativeQuantity, name, v, day)
	}
	return nil
}
