package vault

import "github.com/autara-finance/lending-core/lendingerr"

// CollateralVault tracks the pooled collateral atoms pledged against a
// market's borrow side. Unlike SupplyVault there is no share price: a
// collateral atom is always worth exactly one collateral atom back.
type CollateralVault struct {
	TotalDepositedAtoms uint64
}

// Deposit increases the vault's tracked total.
func (v *CollateralVault) Deposit(atoms uint64) {
	v.TotalDepositedAtoms += atoms
}

// Withdraw decreases the vault's tracked total, rejecting a withdrawal
// larger than what is on deposit.
func (v *CollateralVault) Withdraw(atoms uint64) error {
	if atoms > v.TotalDepositedAtoms {
		return lendingerr.ErrWithdrawalExceedsDeposited
	}
	v.TotalDepositedAtoms -= atoms
	return nil
}
