package position

import (
	"github.com/autara-finance/lending-core/autarapubkey"
	"github.com/autara-finance/lending-core/lendingerr"
)

// BorrowPosition is a borrower's collateral and debt against a market.
type BorrowPosition struct {
	Market                   autarapubkey.Pubkey
	Authority                autarapubkey.Pubkey
	CollateralDepositedAtoms uint64
	BorrowShares             uint64
}

// DepositCollateral increases the position's pledged collateral. There is
// no health check on deposit: adding collateral can only improve a
// position's LTV.
func (p *BorrowPosition) DepositCollateral(atoms uint64) {
	p.CollateralDepositedAtoms += atoms
}

// WithdrawCollateral decreases the position's pledged collateral, erroring
// if atoms exceeds what is on deposit. The caller is responsible for
// running the post-withdrawal health check; this method only enforces the
// bookkeeping invariant.
func (p *BorrowPosition) WithdrawCollateral(atoms uint64) error {
	if atoms > p.CollateralDepositedAtoms {
		return lendingerr.ErrWithdrawalExceedsDeposited
	}
	p.CollateralDepositedAtoms -= atoms
	return nil
}

// CreditBorrowShares increases the position's borrow share balance, e.g.
// after drawing down a borrow.
func (p *BorrowPosition) CreditBorrowShares(shares uint64) {
	p.BorrowShares += shares
}

// DebitBorrowShares decreases the position's borrow share balance, erroring
// if it holds fewer shares than requested.
func (p *BorrowPosition) DebitBorrowShares(shares uint64) error {
	if shares > p.BorrowShares {
		return lendingerr.New(lendingerr.CodeMathOverflow, "cannot burn %d borrow shares, position holds %d", shares, p.BorrowShares)
	}
	p.BorrowShares -= shares
	return nil
}

// IsClosed reports whether the position carries neither collateral nor
// debt, the terminal state after a full liquidation or repayment.
func (p *BorrowPosition) IsClosed() bool {
	return p.CollateralDepositedAtoms == 0 && p.BorrowShares == 0
}
