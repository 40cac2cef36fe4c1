// Package vault implements the supply and collateral accounting a market
// holds on behalf of its depositors. It generalises the teacher's
// native/lending/math.go ray-scaled share/liquidity conversions
// (sharesFromLiquidity, liquidityFromShares) into an explicit-rounding
// fixedpoint.UFixedPoint API, and its Engine.Supply/Withdraw/accrueInterest
// methods into the deposit/withdraw/accrue operations below.
package vault

import (
	"github.com/autara-finance/lending-core/fixedpoint"
	"github.com/autara-finance/lending-core/lendingerr"
)

// SupplyVault tracks the pooled supply-side liquidity of a market: the
// atoms on deposit, the shares outstanding against them, and fee atoms
// accrued but not yet redeemed by the curator or protocol.
type SupplyVault struct {
	TotalDepositedAtoms     uint64
	TotalShares             uint64
	PendingCuratorFeeAtoms  uint64
	PendingProtocolFeeAtoms uint64
}

// Deposit mints shares for atoms deposited, seeding the pool 1:1 on the
// first deposit.
func (v *SupplyVault) Deposit(atoms uint64) (uint64, error) {
	if atoms == 0 {
		return 0, nil
	}
	if v.TotalShares == 0 || v.TotalDepositedAtoms == 0 {
		shares := atoms
		v.TotalDepositedAtoms += atoms
		v.TotalShares += shares
		return shares, nil
	}
	scaled, err := fixedpoint.UFromU64(atoms).Mul(fixedpoint.UFromU64(v.TotalShares), fixedpoint.RoundDown)
	if err != nil {
		return 0, err
	}
	scaled, err = scaled.Div(fixedpoint.UFromU64(v.TotalDepositedAtoms), fixedpoint.RoundDown)
	if err != nil {
		return 0, err
	}
	minted, err := scaled.AsU64RoundedDown()
	if err != nil {
		return 0, err
	}
	v.TotalDepositedAtoms += atoms
	v.TotalShares += minted
	return minted, nil
}

// Withdraw burns shares for atoms withdrawn, rejecting the operation if
// doing so would push utilisation above maxUtilisationRate or exceed the
// vault's free liquidity.
func (v *SupplyVault) Withdraw(shares uint64, totalBorrowedAtoms uint64, maxUtilisationRate fixedpoint.UFixedPoint) (uint64, error) {
	if shares == 0 {
		return 0, nil
	}
	if v.TotalShares == 0 {
		return 0, lendingerr.ErrWithdrawalExceedsShares
	}
	atomsFixed, err := fixedpoint.UFromU64(shares).Mul(fixedpoint.UFromU64(v.TotalDepositedAtoms), fixedpoint.RoundDown)
	if err != nil {
		return 0, err
	}
	atomsFixed, err = atomsFixed.Div(fixedpoint.UFromU64(v.TotalShares), fixedpoint.RoundDown)
	if err != nil {
		return 0, err
	}
	atoms, err := atomsFixed.AsU64RoundedDown()
	if err != nil {
		return 0, err
	}

	if atoms > v.TotalDepositedAtoms-totalBorrowedAtoms {
		return 0, lendingerr.ErrInsufficientLiquidity
	}

	newDeposited := v.TotalDepositedAtoms - atoms
	if err := checkUtilisation(totalBorrowedAtoms, newDeposited, maxUtilisationRate); err != nil {
		return 0, err
	}

	v.TotalDepositedAtoms = newDeposited
	v.TotalShares -= shares
	return atoms, nil
}

// SharesForAtoms returns the minimum number of shares that redeem at least
// atoms, rounding up so the vault never pays out more than it owes.
func (v *SupplyVault) SharesForAtoms(atoms uint64) (uint64, error) {
	if atoms == 0 {
		return 0, nil
	}
	if v.TotalShares == 0 || v.TotalDepositedAtoms == 0 {
		return atoms, nil
	}
	scaled, err := fixedpoint.UFromU64(atoms).Mul(fixedpoint.UFromU64(v.TotalShares), fixedpoint.RoundUp)
	if err != nil {
		return 0, err
	}
	scaled, err = scaled.Div(fixedpoint.UFromU64(v.TotalDepositedAtoms), fixedpoint.RoundUp)
	if err != nil {
		return 0, err
	}
	return scaled.AsU64RoundedUp()
}

// AtomsForShares converts shares to the atoms they currently redeem for,
// rounding per the supplied mode.
func (v *SupplyVault) AtomsForShares(shares uint64, rounding fixedpoint.Rounding) (uint64, error) {
	if shares == 0 || v.TotalShares == 0 {
		return 0, nil
	}
	scaled, err := fixedpoint.UFromU64(shares).Mul(fixedpoint.UFromU64(v.TotalDepositedAtoms), rounding)
	if err != nil {
		return 0, err
	}
	scaled, err = scaled.Div(fixedpoint.UFromU64(v.TotalShares), rounding)
	if err != nil {
		return 0, err
	}
	if rounding == fixedpoint.RoundUp {
		return scaled.AsU64RoundedUp()
	}
	return scaled.AsU64RoundedDown()
}

// Accrue splits interestAtoms into a protocol cut, a curator cut, and the
// remainder credited to suppliers. The two fee cuts are tracked separately
// and excluded from share pricing until redeemed; only the supplier
// remainder increases TotalDepositedAtoms and thus share price.
func (v *SupplyVault) Accrue(interestAtoms uint64, curatorBps, protocolBps uint64) error {
	if interestAtoms == 0 {
		return nil
	}
	if err := fixedpoint.ValidateBps(curatorBps); err != nil {
		return err
	}
	if err := fixedpoint.ValidateBps(protocolBps); err != nil {
		return err
	}

	curatorFee, err := bpsShare(interestAtoms, curatorBps)
	if err != nil {
		return err
	}
	protocolFee, err := bpsShare(interestAtoms, protocolBps)
	if err != nil {
		return err
	}
	if curatorFee+protocolFee > interestAtoms {
		return lendingerr.New(lendingerr.CodeInvalidFeeConfig, "curator+protocol fee bps exceed total interest")
	}

	supplierPortion := interestAtoms - curatorFee - protocolFee
	v.PendingCuratorFeeAtoms += curatorFee
	v.PendingProtocolFeeAtoms += protocolFee
	v.TotalDepositedAtoms += supplierPortion
	return nil
}

// RedeemCuratorFees zeroes and returns the pending curator fee, decrementing
// TotalDepositedAtoms since it was held outside the share pool.
func (v *SupplyVault) RedeemCuratorFees() (uint64, error) {
	atoms := v.PendingCuratorFeeAtoms
	v.PendingCuratorFeeAtoms = 0
	v.TotalDepositedAtoms -= atoms
	return atoms, nil
}

// RedeemProtocolFees zeroes and returns the pending protocol fee,
// decrementing TotalDepositedAtoms since it was held outside the share
// pool.
func (v *SupplyVault) RedeemProtocolFees() (uint64, error) {
	atoms := v.PendingProtocolFeeAtoms
	v.PendingProtocolFeeAtoms = 0
	v.TotalDepositedAtoms -= atoms
	return atoms, nil
}

// Donate increases TotalDepositedAtoms without minting shares, uniformly
// appreciating every outstanding supply share. Reverts if the vault has no
// shares to appreciate: donating into an empty vault would silently vanish
// the atoms with nobody to credit them to.
func (v *SupplyVault) Donate(atoms uint64) error {
	if v.TotalShares == 0 {
		return lendingerr.ErrDonateToEmptyVault
	}
	v.TotalDepositedAtoms += atoms
	return nil
}

func bpsShare(amount, bps uint64) (uint64, error) {
	fraction, err := fixedpoint.BpsToFixedPoint(bps)
	if err != nil {
		return 0, err
	}
	scaled, err := fixedpoint.UFromU64(amount).Mul(fraction, fixedpoint.RoundDown)
	if err != nil {
		return 0, err
	}
	return scaled.AsU64RoundedDown()
}

func checkUtilisation(totalBorrowedAtoms, totalDepositedAtoms uint64, maxUtilisationRate fixedpoint.UFixedPoint) error {
	if totalDepositedAtoms == 0 {
		if totalBorrowedAtoms == 0 {
			return nil
		}
		return lendingerr.ErrUtilisationAboveMax
	}
	utilisation, err := fixedpoint.UFromRatio(totalBorrowedAtoms, totalDepositedAtoms, fixedpoint.RoundUp)
	if err != nil {
		return err
	}
	if utilisation.Cmp(maxUtilisationRate) > 0 {
		return lendingerr.ErrUtilisationAboveMax
	}
	return nil
}

// CheckUtilisation exposes the utilisation-cap check for callers (the
// market wrapper) that mutate TotalBorrowedAtoms directly, e.g. on borrow.
func CheckUtilisation(totalBorrowedAtoms, totalDepositedAtoms uint64, maxUtilisationRate fixedpoint.UFixedPoint) error {
	return checkUtilisation(totalBorrowedAtoms, totalDepositedAtoms, maxUtilisationRate)
}
