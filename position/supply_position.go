// Package position holds the per-authority account state pledged against a
// market: the lender's share balance and the borrower's debt and
// collateral. It generalises the teacher's combined native/lending.UserAccount
// (which mixed supply shares, collateral, and debt in one struct) into the
// two account kinds the persisted layout requires, kept separate so a
// SupplyPosition and a BorrowPosition can be independently sized and
// PDA-addressed.
package position

import (
	"github.com/autara-finance/lending-core/autarapubkey"
	"github.com/autara-finance/lending-core/lendingerr"
)

// SupplyPosition is a lender's claim on a market's supply vault.
type SupplyPosition struct {
	Market    autarapubkey.Pubkey
	Authority autarapubkey.Pubkey
	Shares    uint64
}

// CreditShares increases the position's share balance, e.g. after a
// deposit.
func (p *SupplyPosition) CreditShares(shares uint64) {
	p.Shares += shares
}

// DebitShares decreases the position's share balance, erroring if the
// position does not hold enough shares.
func (p *SupplyPosition) DebitShares(shares uint64) error {
	if shares > p.Shares {
		return lendingerr.ErrWithdrawalExceedsShares
	}
	p.Shares -= shares
	return nil
}
