package timeseries

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/supplycover/pkg/domain/entities"
)

// DatedQuantity is a quantity booked on the day containing Time
type DatedQuantity struct {
	Time     time.Time
	Quantity decimal.Decimal
}

// Dated builds a DatedQuantity list from records, skipping records without a time
func Dated[T any](records []T, at func(T) *time.Time, quantity func(T) decimal.Decimal) []DatedQuantity {
	out := make([]DatedQuantity, 0, len(records))
	for _, r := range records {
		t := at(r)
		if t == nil {
			continue
		}
		out = append(out, DatedQuantity{Time: *t, Quantity: quantity(r)})
	}
	return out
}

// QuantityPerDay sums quantities into one bucket per calendar day of the
// horizon starting at the day of start. The result always has length days;
// quantities outside the horizon are ignored.
func QuantityPerDay(records []DatedQuantity, start time.Time, days int, cal entities.Calendar) []float64 {
	if days <= 0 {
		return []float64{}
	}
	buckets := make([]decimal.Decimal, days)
	for _, r := range records {
		i := cal.DaysBetween(start, r.Time)
		if i < 0 || i >= days {
			continue
		}
		buckets[i] = buckets[i].Add(r.Quantity)
	}

	out := make([]float64, days)
	for i, sum := range buckets {
		out[i] = sum.InexactFloat64()
	}
	return out
}

// Merge adds equally long series element by element
func Merge(series ...[]float64) ([]float64, error) {
	if len(series) == 0 {
		return []float64{}, nil
	}
	n := len(series[0])
	sums := make([]decimal.Decimal, n)
	for _, s := range series {
		if len(s) != n {
			return nil, fmt.Errorf("series length mismatch: %d != %d", len(s), n)
		}
		for i, v := range s {
			sums[i] = sums[i].Add(decimal.NewFromFloat(v))
		}
	}

	out := make([]float64, n)
	for i, sum := range sums {
		out[i] = sum.InexactFloat64()
	}
	return out, nil
}
