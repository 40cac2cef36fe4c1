package market

import (
	"github.com/autara-finance/lending-core/fixedpoint"
	"github.com/autara-finance/lending-core/lendingerr"
	"github.com/autara-finance/lending-core/position"
)

// DebtAtoms computes a borrow position's current debt, rounding up so the
// protocol never under-counts what a borrower owes.
func (m *Market) DebtAtoms(p *position.BorrowPosition) (uint64, error) {
	if p.BorrowShares == 0 || m.Borrow.TotalBorrowShares == 0 {
		return 0, nil
	}
	debt, err := fixedpoint.UFromU64(p.BorrowShares).Mul(fixedpoint.UFromU64(m.Borrow.TotalBorrowedAtoms), fixedpoint.RoundUp)
	if err != nil {
		return 0, err
	}
	debt, err = debt.Div(fixedpoint.UFromU64(m.Borrow.TotalBorrowShares), fixedpoint.RoundUp)
	if err != nil {
		return 0, err
	}
	return debt.AsU64RoundedUp()
}

// HealthQuotes carries the normalised oracle prices a health check needs,
// one per side of the isolated pair. SupplyPrice must already be adjusted
// for the decimals difference between the two mints before it reaches
// IsHealthy; NewHealthQuotes performs that adjustment.
type HealthQuotes struct {
	SupplyPrice     fixedpoint.IFixedPoint
	CollateralPrice fixedpoint.IFixedPoint
}

// NewHealthQuotes builds HealthQuotes from raw oracle prices, rescaling
// supplyPrice by 10^(supplyDecimals-collateralDecimals) so both sides of
// the health inequality compare atoms of the same implied value, per the
// market's configured mint decimals.
func NewHealthQuotes(supplyPrice, collateralPrice fixedpoint.IFixedPoint, supplyDecimals, collateralDecimals uint8) (HealthQuotes, error) {
	adjusted, err := supplyPrice.ScalePow10(int(supplyDecimals) - int(collateralDecimals))
	if err != nil {
		return HealthQuotes{}, err
	}
	return HealthQuotes{SupplyPrice: adjusted, CollateralPrice: collateralPrice}, nil
}

// IsHealthy reports whether a borrow position's debt value is within
// ltvBps of its collateral value:
// debt_value * 10000 <= collateral_value * ltv_bps.
// Debt value rounds up and collateral value rounds down so the comparison
// always errs in the protocol's favor.
func (m *Market) IsHealthy(p *position.BorrowPosition, quotes HealthQuotes, ltvBps uint64) (bool, error) {
	debtAtoms, err := m.DebtAtoms(p)
	if err != nil {
		return false, err
	}
	if debtAtoms == 0 {
		return true, nil
	}

	debtValue, err := fixedpoint.FromU64(debtAtoms).Mul(quotes.SupplyPrice, fixedpoint.RoundUp)
	if err != nil {
		return false, err
	}
	collateralValue, err := fixedpoint.FromU64(p.CollateralDepositedAtoms).Mul(quotes.CollateralPrice, fixedpoint.RoundDown)
	if err != nil {
		return false, err
	}

	lhs, err := debtValue.MulU64(fixedpoint.BpsDenominator, fixedpoint.RoundUp)
	if err != nil {
		return false, err
	}
	rhs, err := collateralValue.MulU64(ltvBps, fixedpoint.RoundDown)
	if err != nil {
		return false, err
	}
	return lhs.Cmp(rhs) <= 0, nil
}

// RequireHealthy errors with PositionUnhealthy unless IsHealthy returns
// true.
func (m *Market) RequireHealthy(p *position.BorrowPosition, quotes HealthQuotes, ltvBps uint64) error {
	healthy, err := m.IsHealthy(p, quotes, ltvBps)
	if err != nil {
		return err
	}
	if !healthy {
		return lendingerr.ErrPositionUnhealthy
	}
	return nil
}

// RequireUnhealthy errors with PositionHealthy unless IsHealthy returns
// false, the guard liquidate() runs before it is permitted to act.
func (m *Market) RequireUnhealthy(p *position.BorrowPosition, quotes HealthQuotes, ltvBps uint64) error {
	healthy, err := m.IsHealthy(p, quotes, ltvBps)
	if err != nil {
		return err
	}
	if healthy {
		return lendingerr.ErrPositionHealthy
	}
	return nil
}
