package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Denominations is the fixed set of note values accepted in a billetage,
// largest first.
var Denominations = []int64{20000, 10000, 5000, 2000, 1000, 500, 200, 100}

// Billetage is a denomination-by-denomination physical cash count, keyed by
// note value.
type Billetage map[int64]int

// Total returns the monetary value of the count.
func (b Billetage) Total() decimal.Decimal {
	total := decimal.Zero
	for value, count := range b {
		total = total.Add(decimal.NewFromInt(value).Mul(decimal.NewFromInt(int64(count))))
	}
	return total
}

// Validate checks that the count uses only known denominations, has no
// negative counts, and sums to the declared real balance.
func (b Billetage) Validate(declared decimal.Decimal) error {
	known := make(map[int64]bool, len(Denominations))
	for _, d := range Denominations {
		known[d] = true
	}
	for value, count := range b {
		if !known[value] {
			return fmt.Errorf("unknown denomination %d", value)
		}
		if count < 0 {
			return fmt.Errorf("negative count for denomination %d", value)
		}
	}
	if total := b.Total(); !total.Equal(declared) {
		return fmt.Errorf("billetage total %s does not match declared balance %s", total.String(), declared.String())
	}
	return nil
}
