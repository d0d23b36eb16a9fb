package coins

import (
	"sort"

	"github.com/anietieasuquo/vending-machine/internal/core/domain"
)

// Denominations lists the coin values the machine accepts, ascending, in
// minor units. Deposits, product costs and change are all expressed in
// these coins.
var Denominations = []int64{5, 10, 20, 50, 100}

// SmallestDenomination is the granularity every product cost must respect.
const SmallestDenomination int64 = 5

// ValidateDeposit checks that value is exactly one accepted coin. Deposits
// are made one coin at a time, so sums of coins are rejected here.
func ValidateDeposit(value int64) error {
	for _, d := range Denominations {
		if value == d {
			return nil
		}
	}
	return domain.Validation("invalid deposit: only 5, 10, 20, 50, 100 cent coins are allowed")
}

// ValidCost reports whether value is a positive multiple of the smallest
// denomination.
func ValidCost(value int64) bool {
	return value > 0 && value%SmallestDenomination == 0
}

// MakeChange returns the minimum-count multiset of denominations summing
// exactly to amount. It runs the classic bottom-up minimum-coin-count
// dynamic program and reconstructs the coin list through backpointers, so
// space stays linear in amount. A greedy walk is not used because it is
// not optimal for arbitrary coin sets.
//
// amount 0 yields an empty list. An amount no combination of denoms can
// reach yields a validation error.
func MakeChange(denoms []int64, amount int64) ([]int64, error) {
	if amount < 0 {
		return nil, domain.Validation("cannot make change for a negative amount")
	}
	if amount == 0 {
		return []int64{}, nil
	}

	const unreachable = int64(1) << 62
	minCoins := make([]int64, amount+1)
	lastCoin := make([]int64, amount+1)
	for i := int64(1); i <= amount; i++ {
		minCoins[i] = unreachable
	}

	for _, coin := range denoms {
		for total := coin; total <= amount; total++ {
			if minCoins[total-coin]+1 < minCoins[total] {
				minCoins[total] = minCoins[total-coin] + 1
				lastCoin[total] = coin
			}
		}
	}

	if minCoins[amount] >= unreachable {
		return nil, domain.Validation("cannot make change of %d with the given coins", amount)
	}

	change := make([]int64, 0, minCoins[amount])
	for remaining := amount; remaining > 0; remaining -= lastCoin[remaining] {
		change = append(change, lastCoin[remaining])
	}
	sort.Slice(change, func(i, j int) bool { return change[i] < change[j] })
	return change, nil
}
