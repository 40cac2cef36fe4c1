package lendingstate

import "fmt"

// mustDistinctSizes is the Go analogue of
// autara-lib/src/state/mod.rs's validate_all_different_sizes const-eval
// check: a discriminator that only knows each account's encoded byte
// length must be able to tell every account kind apart, so no two of the
// four persisted account sizes may collide. Go has no const fn over
// unsafe.Sizeof for this to run at compile time, so it runs once here at
// package init instead and panics immediately if the invariant is broken
// by a future field addition.
func mustDistinctSizes(sizes ...int) {
	for i := 0; i < len(sizes); i++ {
		for j := i + 1; j < len(sizes); j++ {
			if sizes[i] == sizes[j] {
				panic(fmt.Sprintf("lendingstate: account sizes %d and %d collide (%d bytes each)", i, j, sizes[i]))
			}
		}
	}
}

var _ = mustDistinctSizesInit()

func mustDistinctSizesInit() struct{} {
	mustDistinctSizes(MarketSize, SupplyPositionSize, BorrowPositionSize, GlobalConfigSize)
	return struct{}{}
}
