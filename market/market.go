package market

import (
	"github.com/autara-finance/lending-core/fixedpoint"
	"github.com/autara-finance/lending-core/interestrate"
	"github.com/autara-finance/lending-core/vault"
)

// BorrowState is the debt-side accounting for a market: outstanding
// borrowed atoms and shares, the curve that prices them, and the unix
// timestamp accrual was last run to.
type BorrowState struct {
	TotalBorrowedAtoms uint64
	TotalBorrowShares  uint64
	InterestRateCurve  interestrate.Curve
	LastUpdateUnixTs   int64
}

// Market is a single isolated lending pair: one supply vault, one
// collateral vault, a borrow state, and the config governing both.
type Market struct {
	Config     Config
	Supply     vault.SupplyVault
	Collateral vault.CollateralVault
	Borrow     BorrowState
}

// Utilisation returns total_borrowed_atoms / total_deposited_atoms, zero if
// the vault has no deposits.
func (m *Market) Utilisation() (fixedpoint.UFixedPoint, error) {
	if m.Supply.TotalDepositedAtoms == 0 {
		return fixedpoint.UZero(), nil
	}
	return fixedpoint.UFromRatio(m.Borrow.TotalBorrowedAtoms, m.Supply.TotalDepositedAtoms, fixedpoint.RoundDown)
}

// FreeLiquidityAtoms returns the atoms available for withdrawal or borrow
// before the vault runs dry.
func (m *Market) FreeLiquidityAtoms() uint64 {
	if m.Borrow.TotalBorrowedAtoms >= m.Supply.TotalDepositedAtoms {
		return 0
	}
	return m.Supply.TotalDepositedAtoms - m.Borrow.TotalBorrowedAtoms
}
