package market

import (
	"github.com/autara-finance/lending-core/autarapubkey"
	"github.com/autara-finance/lending-core/event"
	"github.com/autara-finance/lending-core/fixedpoint"
	"github.com/autara-finance/lending-core/interestrate"
	"github.com/autara-finance/lending-core/lendingerr"
	"github.com/autara-finance/lending-core/position"
	"github.com/autara-finance/lending-core/vault"
)

// Wrapper binds a mutable Market to a pair of already-validated oracle
// quotes and a current timestamp, and is the single entry point for every
// economic operation. It generalises the teacher's native/lending.Engine,
// whose methods (Supply, Withdraw, Borrow, Repay, Liquidate) take a
// pointer-receiver *Market plus a clock, into the spec's
// oracle-reading-and-clock-bound MarketWrapper.
type Wrapper struct {
	Market          *Market
	SupplyQuote     fixedpoint.IFixedPoint
	CollateralQuote fixedpoint.IFixedPoint
	Now             int64
}

// New constructs a Wrapper over market, pairing it with the two
// already-validated oracle quotes (quote-per-base, produced by
// oracle.Adapter.Quote) and the current unix timestamp.
func New(m *Market, supplyQuote, collateralQuote fixedpoint.IFixedPoint, now int64) *Wrapper {
	return &Wrapper{Market: m, SupplyQuote: supplyQuote, CollateralQuote: collateralQuote, Now: now}
}

func (w *Wrapper) healthQuotes() (HealthQuotes, error) {
	return NewHealthQuotes(w.SupplyQuote, w.CollateralQuote, w.Market.Config.SupplyMint.Decimals, w.Market.Config.CollateralMint.Decimals)
}

// SyncClock accrues interest from Market.Borrow.LastUpdateUnixTs up to now.
// Every other Wrapper method calls this first so its view of shares-to-atoms
// is current.
func (w *Wrapper) SyncClock() error {
	m := w.Market
	if w.Now < m.Borrow.LastUpdateUnixTs {
		return lendingerr.ErrClockWentBackwards
	}
	elapsed := uint64(w.Now - m.Borrow.LastUpdateUnixTs)
	if elapsed == 0 || m.Borrow.TotalBorrowedAtoms == 0 {
		m.Borrow.LastUpdateUnixTs = w.Now
		return nil
	}

	utilisation, err := m.Utilisation()
	if err != nil {
		return err
	}
	rate, err := m.Borrow.InterestRateCurve.BorrowRatePerSecond(interestrate.Params{
		UtilisationRate: utilisation,
		ElapsedSeconds:  elapsed,
	})
	if err != nil {
		return err
	}

	interestFixed, err := rate.MulU64(m.Borrow.TotalBorrowedAtoms, fixedpoint.RoundUp)
	if err != nil {
		return err
	}
	interestFixed, err = interestFixed.MulU64(elapsed, fixedpoint.RoundUp)
	if err != nil {
		return err
	}
	interestAtoms, err := interestFixed.AsU64RoundedUp()
	if err != nil {
		return err
	}

	m.Borrow.TotalBorrowedAtoms += interestAtoms
	if err := m.Supply.Accrue(interestAtoms, m.Config.LendingMarketFeeInBps, m.Config.ProtocolFeeShareInBps); err != nil {
		return err
	}
	m.Borrow.LastUpdateUnixTs = w.Now
	return nil
}

func (w *Wrapper) snapshot() event.VaultSnapshot {
	m := w.Market
	return event.VaultSnapshot{
		TotalDepositedAtoms: m.Supply.TotalDepositedAtoms,
		TotalShares:         m.Supply.TotalShares,
		TotalBorrowedAtoms:  m.Borrow.TotalBorrowedAtoms,
		TotalBorrowShares:   m.Borrow.TotalBorrowShares,
	}
}

func (w *Wrapper) base(marketKey autarapubkey.Pubkey, positionKey, authority autarapubkey.Pubkey) event.Base {
	return event.NewBase(marketKey, positionKey, authority, w.snapshot())
}

// Lend deposits atoms into the supply vault on behalf of p, minting shares.
func (w *Wrapper) Lend(marketKey autarapubkey.Pubkey, p *position.SupplyPosition, atoms uint64) (event.Supply, error) {
	if err := w.SyncClock(); err != nil {
		return event.Supply{}, err
	}
	m := w.Market
	if m.Supply.TotalDepositedAtoms+atoms > m.Config.MaxSupplyAtoms {
		return event.Supply{}, lendingerr.ErrMaxSupplyExceeded
	}
	minted, err := m.Supply.Deposit(atoms)
	if err != nil {
		return event.Supply{}, err
	}
	p.CreditShares(minted)
	base := w.base(marketKey, p.Market, p.Authority)
	return event.NewSupplyEvent(base, m.Config.SupplyMint.Mint, atoms, minted), nil
}

// Withdraw burns shares from p and returns the redeemed atoms.
func (w *Wrapper) Withdraw(marketKey autarapubkey.Pubkey, p *position.SupplyPosition, shares uint64) (event.Withdraw, error) {
	if err := w.SyncClock(); err != nil {
		return event.Withdraw{}, err
	}
	m := w.Market
	if err := p.DebitShares(shares); err != nil {
		return event.Withdraw{}, err
	}
	atoms, err := m.Supply.Withdraw(shares, m.Borrow.TotalBorrowedAtoms, m.Config.MaxUtilisationRate)
	if err != nil {
		return event.Withdraw{}, err
	}
	base := w.base(marketKey, p.Market, p.Authority)
	return event.NewWithdrawEvent(base, m.Config.SupplyMint.Mint, atoms, shares), nil
}

// DepositCollateral credits atoms of collateral to p. No health check is
// required: adding collateral can only improve a position's LTV.
func (w *Wrapper) DepositCollateral(marketKey autarapubkey.Pubkey, p *position.BorrowPosition, atoms uint64) (event.DepositCollateral, error) {
	if err := w.SyncClock(); err != nil {
		return event.DepositCollateral{}, err
	}
	p.DepositCollateral(atoms)
	w.Market.Collateral.Deposit(atoms)
	base := w.base(marketKey, p.Market, p.Authority)
	return event.NewDepositCollateralEvent(base, w.Market.Config.CollateralMint.Mint, atoms), nil
}

// WithdrawCollateral debits atoms of collateral from p, requiring the
// position remain healthy at max_ltv_bps afterward.
func (w *Wrapper) WithdrawCollateral(marketKey autarapubkey.Pubkey, p *position.BorrowPosition, atoms uint64) (event.WithdrawCollateral, error) {
	if err := w.SyncClock(); err != nil {
		return event.WithdrawCollateral{}, err
	}
	if atoms > p.CollateralDepositedAtoms {
		return event.WithdrawCollateral{}, lendingerr.ErrWithdrawalExceedsDeposited
	}
	quotes, err := w.healthQuotes()
	if err != nil {
		return event.WithdrawCollateral{}, err
	}
	// Check the post-withdrawal health against a projected copy before
	// mutating anything: a health-check failure must never leave the
	// position or vault partially withdrawn.
	projected := *p
	projected.CollateralDepositedAtoms -= atoms
	if err := w.Market.RequireHealthy(&projected, quotes, w.Market.Config.Ltv.MaxLtvBps); err != nil {
		return event.WithdrawCollateral{}, err
	}

	if err := p.WithdrawCollateral(atoms); err != nil {
		return event.WithdrawCollateral{}, err
	}
	if err := w.Market.Collateral.Withdraw(atoms); err != nil {
		return event.WithdrawCollateral{}, err
	}
	base := w.base(marketKey, p.Market, p.Authority)
	return event.NewWithdrawCollateralEvent(base, w.Market.Config.CollateralMint.Mint, atoms), nil
}

// Borrow draws atoms of supply against p's collateral, requiring the
// resulting position be healthy at max_ltv_bps and utilisation stay within
// the configured cap.
func (w *Wrapper) Borrow(marketKey autarapubkey.Pubkey, p *position.BorrowPosition, atoms uint64) (event.Borrow, error) {
	if err := w.SyncClock(); err != nil {
		return event.Borrow{}, err
	}
	m := w.Market
	if atoms > m.FreeLiquidityAtoms() {
		return event.Borrow{}, lendingerr.ErrInsufficientLiquidity
	}
	newBorrowed := m.Borrow.TotalBorrowedAtoms + atoms
	if err := vault.CheckUtilisation(newBorrowed, m.Supply.TotalDepositedAtoms, m.Config.MaxUtilisationRate); err != nil {
		return event.Borrow{}, err
	}

	minted, err := sharesForDebtAtoms(m.Borrow.TotalBorrowedAtoms, m.Borrow.TotalBorrowShares, atoms)
	if err != nil {
		return event.Borrow{}, err
	}

	quotes, err := w.healthQuotes()
	if err != nil {
		return event.Borrow{}, err
	}
	// Check the post-borrow health against projected copies before
	// mutating anything: a health-check failure must never leave debt
	// drawn down against an unhealthy position.
	projectedMarket := *m
	projectedMarket.Borrow.TotalBorrowedAtoms = newBorrowed
	projectedMarket.Borrow.TotalBorrowShares = m.Borrow.TotalBorrowShares + minted
	projectedPosition := *p
	projectedPosition.CreditBorrowShares(minted)
	if err := projectedMarket.RequireHealthy(&projectedPosition, quotes, m.Config.Ltv.MaxLtvBps); err != nil {
		return event.Borrow{}, err
	}

	m.Borrow.TotalBorrowedAtoms = newBorrowed
	m.Borrow.TotalBorrowShares += minted
	p.CreditBorrowShares(minted)

	base := w.base(marketKey, p.Market, p.Authority)
	return event.NewBorrowEvent(base, m.Config.SupplyMint.Mint, atoms, minted), nil
}

// Repay burns borrow shares from p such that total_borrowed_atoms decreases
// by atoms. Burning the last share also zeros total_borrowed_atoms
// (dust sweep), so no path leaves shares outstanding against zero debt.
func (w *Wrapper) Repay(marketKey autarapubkey.Pubkey, p *position.BorrowPosition, atoms uint64) (event.Repay, error) {
	if err := w.SyncClock(); err != nil {
		return event.Repay{}, err
	}
	m := w.Market
	burned, err := sharesForRepayAtoms(m.Borrow.TotalBorrowedAtoms, m.Borrow.TotalBorrowShares, atoms)
	if err != nil {
		return event.Repay{}, err
	}
	if err := p.DebitBorrowShares(burned); err != nil {
		return event.Repay{}, err
	}
	w.debitMarketDebt(burned, atoms)

	base := w.base(marketKey, p.Market, p.Authority)
	return event.NewRepayEvent(base, m.Config.SupplyMint.Mint, atoms, burned), nil
}

// RepayAll burns every borrow share p holds, returning the exact atoms owed
// for the matching token transfer.
func (w *Wrapper) RepayAll(marketKey autarapubkey.Pubkey, p *position.BorrowPosition) (event.Repay, error) {
	if err := w.SyncClock(); err != nil {
		return event.Repay{}, err
	}
	m := w.Market
	atoms, err := debtAtomsForShares(m.Borrow.TotalBorrowedAtoms, m.Borrow.TotalBorrowShares, p.BorrowShares)
	if err != nil {
		return event.Repay{}, err
	}
	burned := p.BorrowShares
	if err := p.DebitBorrowShares(burned); err != nil {
		return event.Repay{}, err
	}
	w.debitMarketDebt(burned, atoms)

	base := w.base(marketKey, p.Market, p.Authority)
	return event.NewRepayEvent(base, m.Config.SupplyMint.Mint, atoms, burned), nil
}

// BorrowDeposit draws borrowAtoms of supply against p, then credits
// depositAtoms of collateral, running callback (if non-nil) between the
// two. The health check runs immediately after the borrow and before
// callback, against p's collateral as it stands *before* depositAtoms
// lands — callback must not be able to spend freshly borrowed funds on the
// strength of a deposit that has not actually happened yet. Nothing is
// mutated until the health check and callback both succeed, so a failing
// callback leaves market and position state untouched.
func (w *Wrapper) BorrowDeposit(marketKey autarapubkey.Pubkey, p *position.BorrowPosition, borrowAtoms, depositAtoms uint64, callback func() error) (event.BorrowAndDeposit, error) {
	if err := w.SyncClock(); err != nil {
		return event.BorrowAndDeposit{}, err
	}
	m := w.Market
	if borrowAtoms > m.FreeLiquidityAtoms() {
		return event.BorrowAndDeposit{}, lendingerr.ErrInsufficientLiquidity
	}
	newBorrowed := m.Borrow.TotalBorrowedAtoms + borrowAtoms
	if err := vault.CheckUtilisation(newBorrowed, m.Supply.TotalDepositedAtoms, m.Config.MaxUtilisationRate); err != nil {
		return event.BorrowAndDeposit{}, err
	}

	minted, err := sharesForDebtAtoms(m.Borrow.TotalBorrowedAtoms, m.Borrow.TotalBorrowShares, borrowAtoms)
	if err != nil {
		return event.BorrowAndDeposit{}, err
	}

	quotes, err := w.healthQuotes()
	if err != nil {
		return event.BorrowAndDeposit{}, err
	}
	projectedPosition := *p
	projectedPosition.CreditBorrowShares(minted)
	projectedMarket := *m
	projectedMarket.Borrow.TotalBorrowedAtoms = newBorrowed
	projectedMarket.Borrow.TotalBorrowShares = m.Borrow.TotalBorrowShares + minted
	if err := projectedMarket.RequireHealthy(&projectedPosition, quotes, m.Config.Ltv.MaxLtvBps); err != nil {
		return event.BorrowAndDeposit{}, err
	}

	if callback != nil {
		if err := callback(); err != nil {
			return event.BorrowAndDeposit{}, err
		}
	}

	m.Borrow.TotalBorrowedAtoms = newBorrowed
	m.Borrow.TotalBorrowShares += minted
	p.CreditBorrowShares(minted)
	p.DepositCollateral(depositAtoms)
	m.Collateral.Deposit(depositAtoms)

	base := w.base(marketKey, p.Market, p.Authority)
	return event.NewBorrowAndDepositEvent(base, m.Config.SupplyMint.Mint, m.Config.CollateralMint.Mint, borrowAtoms, minted, depositAtoms), nil
}

// WithdrawRepay debits withdrawAtoms of collateral from p, then repays
// repayAtoms of debt, running callback (if non-nil) between the two. The
// health check runs immediately after the withdrawal and before callback,
// against p's debt as it stands *before* repayAtoms lands — the symmetric
// requirement to BorrowDeposit's: callback must not be able to spend
// withdrawn collateral on the strength of a repay that has not actually
// happened yet. Nothing is mutated until the health check and callback
// both succeed.
func (w *Wrapper) WithdrawRepay(marketKey autarapubkey.Pubkey, p *position.BorrowPosition, withdrawAtoms, repayAtoms uint64, callback func() error) (event.WithdrawAndRepay, error) {
	if err := w.SyncClock(); err != nil {
		return event.WithdrawAndRepay{}, err
	}
	m := w.Market
	if withdrawAtoms > p.CollateralDepositedAtoms {
		return event.WithdrawAndRepay{}, lendingerr.ErrWithdrawalExceedsDeposited
	}
	quotes, err := w.healthQuotes()
	if err != nil {
		return event.WithdrawAndRepay{}, err
	}
	projected := *p
	projected.CollateralDepositedAtoms -= withdrawAtoms
	if err := m.RequireHealthy(&projected, quotes, m.Config.Ltv.MaxLtvBps); err != nil {
		return event.WithdrawAndRepay{}, err
	}

	burned, err := sharesForRepayAtoms(m.Borrow.TotalBorrowedAtoms, m.Borrow.TotalBorrowShares, repayAtoms)
	if err != nil {
		return event.WithdrawAndRepay{}, err
	}
	// Validate the repay leg against a projected copy too, before running
	// the callback: a callback failure must never leave the position with
	// collateral withdrawn but no corresponding debt reduction applied.
	projectedRepay := *p
	if err := projectedRepay.DebitBorrowShares(burned); err != nil {
		return event.WithdrawAndRepay{}, err
	}

	if callback != nil {
		if err := callback(); err != nil {
			return event.WithdrawAndRepay{}, err
		}
	}

	if err := p.WithdrawCollateral(withdrawAtoms); err != nil {
		return event.WithdrawAndRepay{}, err
	}
	if err := m.Collateral.Withdraw(withdrawAtoms); err != nil {
		return event.WithdrawAndRepay{}, err
	}
	if err := p.DebitBorrowShares(burned); err != nil {
		return event.WithdrawAndRepay{}, err
	}
	w.debitMarketDebt(burned, repayAtoms)

	base := w.base(marketKey, p.Market, p.Authority)
	return event.NewWithdrawAndRepayEvent(base, m.Config.SupplyMint.Mint, m.Config.CollateralMint.Mint, withdrawAtoms, repayAtoms, burned), nil
}

// debitMarketDebt decreases total_borrow_shares by burned and
// total_borrowed_atoms by atoms, enforcing the dust-sweep rule: burning the
// last outstanding share also zeros total_borrowed_atoms regardless of
// rounding remainder.
func (w *Wrapper) debitMarketDebt(burned, atoms uint64) {
	m := w.Market
	m.Borrow.TotalBorrowShares -= burned
	if m.Borrow.TotalBorrowShares == 0 {
		m.Borrow.TotalBorrowedAtoms = 0
		return
	}
	m.Borrow.TotalBorrowedAtoms -= atoms
}

// Liquidate repays up to repayAtoms of p's debt on behalf of liquidator,
// seizing collateral at the oracle price ratio plus the configured bonus.
// Only callable when p's current LTV is at or above liquidation_ltv_bps.
// After liquidation p must either hold no collateral (any remaining debt is
// left for socialize_loss) or be healthy again at liquidation_ltv_bps; a
// partial liquidation that leaves neither true is rejected before any state
// is mutated.
func (w *Wrapper) Liquidate(marketKey autarapubkey.Pubkey, p *position.BorrowPosition, liquidator autarapubkey.Pubkey, repayAtoms uint64) (event.Liquidate, error) {
	if err := w.SyncClock(); err != nil {
		return event.Liquidate{}, err
	}
	m := w.Market
	quotes, err := w.healthQuotes()
	if err != nil {
		return event.Liquidate{}, err
	}
	if err := m.RequireUnhealthy(p, quotes, m.Config.Ltv.LiquidationLtvBps); err != nil {
		return event.Liquidate{}, err
	}

	debtAtoms, err := m.DebtAtoms(p)
	if err != nil {
		return event.Liquidate{}, err
	}
	if repayAtoms > debtAtoms {
		repayAtoms = debtAtoms
	}

	seized, err := seizedCollateralAtoms(repayAtoms, quotes.SupplyPrice, quotes.CollateralPrice, m.Config.Ltv.LiquidationBonusBps)
	if err != nil {
		return event.Liquidate{}, err
	}
	if seized > p.CollateralDepositedAtoms {
		// Collateral can't cover what repayAtoms would otherwise entitle the
		// liquidator to: cap seized at what remains and scale repayAtoms
		// down to match, so the liquidator is never owed collateral the
		// position doesn't have. Any debt this leaves unpaid is left for
		// socialize_loss.
		seized = p.CollateralDepositedAtoms
		repayAtoms, err = repayAtomsForSeizedCollateral(seized, quotes.SupplyPrice, quotes.CollateralPrice, m.Config.Ltv.LiquidationBonusBps)
		if err != nil {
			return event.Liquidate{}, err
		}
	}

	burned, err := sharesForRepayAtoms(m.Borrow.TotalBorrowedAtoms, m.Borrow.TotalBorrowShares, repayAtoms)
	if err != nil {
		return event.Liquidate{}, err
	}

	// Validate the post-liquidation invariant (closed, or healthy at
	// liquidation_ltv_bps) against projected copies before mutating
	// anything: a failure here must never leave a partially-liquidated
	// position on the books.
	projectedPosition := *p
	if err := projectedPosition.DebitBorrowShares(burned); err != nil {
		return event.Liquidate{}, err
	}
	if err := projectedPosition.WithdrawCollateral(seized); err != nil {
		return event.Liquidate{}, err
	}
	// A position left with zero collateral is a valid outcome even with
	// debt remaining: it is exactly the state socialize_loss exists to
	// clean up, so it does not need to pass the health check below.
	if projectedPosition.CollateralDepositedAtoms > 0 {
		projectedMarket := *m
		projectedMarket.Borrow.TotalBorrowShares -= burned
		if projectedMarket.Borrow.TotalBorrowShares == 0 {
			projectedMarket.Borrow.TotalBorrowedAtoms = 0
		} else {
			projectedMarket.Borrow.TotalBorrowedAtoms -= repayAtoms
		}
		if err := projectedMarket.RequireHealthy(&projectedPosition, quotes, m.Config.Ltv.LiquidationLtvBps); err != nil {
			return event.Liquidate{}, err
		}
	}

	if err := p.DebitBorrowShares(burned); err != nil {
		return event.Liquidate{}, err
	}
	w.debitMarketDebt(burned, repayAtoms)
	if err := p.WithdrawCollateral(seized); err != nil {
		return event.Liquidate{}, err
	}
	if err := m.Collateral.Withdraw(seized); err != nil {
		return event.Liquidate{}, err
	}

	base := w.base(marketKey, p.Market, p.Authority)
	return event.NewLiquidateEvent(base, liquidator, repayAtoms, seized), nil
}

// SocializeLoss writes off p's remaining debt against the supply vault.
// Only callable when p's collateral is fully exhausted but debt remains.
func (w *Wrapper) SocializeLoss(marketKey autarapubkey.Pubkey, p *position.BorrowPosition) (event.SocializeLoss, error) {
	if err := w.SyncClock(); err != nil {
		return event.SocializeLoss{}, err
	}
	if p.CollateralDepositedAtoms > 0 {
		return event.SocializeLoss{}, lendingerr.ErrCollateralRemaining
	}
	m := w.Market
	debtAtoms, err := m.DebtAtoms(p)
	if err != nil {
		return event.SocializeLoss{}, err
	}
	if debtAtoms == 0 {
		return event.SocializeLoss{}, lendingerr.ErrNoDebtToSocialize
	}

	burned := p.BorrowShares
	if err := p.DebitBorrowShares(burned); err != nil {
		return event.SocializeLoss{}, err
	}
	m.Borrow.TotalBorrowShares -= burned
	m.Borrow.TotalBorrowedAtoms = 0
	if debtAtoms > m.Supply.TotalDepositedAtoms {
		debtAtoms = m.Supply.TotalDepositedAtoms
	}
	m.Supply.TotalDepositedAtoms -= debtAtoms

	base := w.base(marketKey, p.Market, p.Authority)
	return event.NewSocializeLossEvent(base, debtAtoms), nil
}

// DonateSupplyAtoms increases the supply vault without minting shares,
// uniformly appreciating every outstanding supply share.
func (w *Wrapper) DonateSupplyAtoms(marketKey autarapubkey.Pubkey, donor autarapubkey.Pubkey, atoms uint64) (event.DonateSupply, error) {
	if err := w.SyncClock(); err != nil {
		return event.DonateSupply{}, err
	}
	if err := w.Market.Supply.Donate(atoms); err != nil {
		return event.DonateSupply{}, err
	}
	base := w.base(marketKey, autarapubkey.Zero, donor)
	return event.NewDonateSupplyEvent(base, donor, atoms), nil
}

// RedeemCuratorFees pays out the curator's accrued interest share.
func (w *Wrapper) RedeemCuratorFees(marketKey autarapubkey.Pubkey, recipient autarapubkey.Pubkey) (event.RedeemFees, error) {
	if err := w.SyncClock(); err != nil {
		return event.RedeemFees{}, err
	}
	atoms, err := w.Market.Supply.RedeemCuratorFees()
	if err != nil {
		return event.RedeemFees{}, err
	}
	base := w.base(marketKey, autarapubkey.Zero, recipient)
	return event.NewRedeemCuratorFeesEvent(base, recipient, atoms), nil
}

// RedeemProtocolFees pays out the protocol's accrued interest share.
func (w *Wrapper) RedeemProtocolFees(marketKey autarapubkey.Pubkey, recipient autarapubkey.Pubkey) (event.RedeemFees, error) {
	if err := w.SyncClock(); err != nil {
		return event.RedeemFees{}, err
	}
	atoms, err := w.Market.Supply.RedeemProtocolFees()
	if err != nil {
		return event.RedeemFees{}, err
	}
	base := w.base(marketKey, autarapubkey.Zero, recipient)
	return event.NewRedeemProtocolFeesEvent(base, recipient, atoms), nil
}

// sharesForDebtAtoms returns the borrow shares minted for atoms drawn down,
// rounding up so the protocol never under-counts what a borrower owes.
func sharesForDebtAtoms(totalBorrowedAtoms, totalBorrowShares, atoms uint64) (uint64, error) {
	if totalBorrowShares == 0 || totalBorrowedAtoms == 0 {
		return atoms, nil
	}
	scaled, err := fixedpoint.UFromU64(atoms).Mul(fixedpoint.UFromU64(totalBorrowShares), fixedpoint.RoundUp)
	if err != nil {
		return 0, err
	}
	scaled, err = scaled.Div(fixedpoint.UFromU64(totalBorrowedAtoms), fixedpoint.RoundUp)
	if err != nil {
		return 0, err
	}
	return scaled.AsU64RoundedUp()
}

// sharesForRepayAtoms returns the borrow shares burned to reduce debt by
// atoms, rounding down so any rounding dust is paid by the borrower rather
// than forgiven.
func sharesForRepayAtoms(totalBorrowedAtoms, totalBorrowShares, atoms uint64) (uint64, error) {
	if totalBorrowShares == 0 || totalBorrowedAtoms == 0 {
		return 0, nil
	}
	scaled, err := fixedpoint.UFromU64(atoms).Mul(fixedpoint.UFromU64(totalBorrowShares), fixedpoint.RoundDown)
	if err != nil {
		return 0, err
	}
	scaled, err = scaled.Div(fixedpoint.UFromU64(totalBorrowedAtoms), fixedpoint.RoundDown)
	if err != nil {
		return 0, err
	}
	burned, err := scaled.AsU64RoundedDown()
	if err != nil {
		return 0, err
	}
	if burned > totalBorrowShares {
		burned = totalBorrowShares
	}
	return burned, nil
}

// debtAtomsForShares converts a raw borrow-share balance to its current
// atom value, rounding up, used by repay_all to return the exact payoff
// amount.
func debtAtomsForShares(totalBorrowedAtoms, totalBorrowShares, shares uint64) (uint64, error) {
	if shares == 0 || totalBorrowShares == 0 {
		return 0, nil
	}
	scaled, err := fixedpoint.UFromU64(shares).Mul(fixedpoint.UFromU64(totalBorrowedAtoms), fixedpoint.RoundUp)
	if err != nil {
		return 0, err
	}
	scaled, err = scaled.Div(fixedpoint.UFromU64(totalBorrowShares), fixedpoint.RoundUp)
	if err != nil {
		return 0, err
	}
	return scaled.AsU64RoundedUp()
}

// seizedCollateralAtoms computes repayAtoms * (supplyPrice/collateralPrice)
// * (1 + liquidationBonusBps/10000), rounded down so a liquidator never
// seizes more than the bonus entitles.
func seizedCollateralAtoms(repayAtoms uint64, supplyPrice, collateralPrice fixedpoint.IFixedPoint, liquidationBonusBps uint64) (uint64, error) {
	value, err := fixedpoint.FromU64(repayAtoms).Mul(supplyPrice, fixedpoint.RoundDown)
	if err != nil {
		return 0, err
	}
	value, err = value.Div(collateralPrice, fixedpoint.RoundDown)
	if err != nil {
		return 0, err
	}
	bonusFraction, err := fixedpoint.BpsToFixedPoint(liquidationBonusBps)
	if err != nil {
		return 0, err
	}
	bonusMultiplier, err := fixedpoint.One().Add(signedFromUnsigned(bonusFraction))
	if err != nil {
		return 0, err
	}
	value, err = value.Mul(bonusMultiplier, fixedpoint.RoundDown)
	if err != nil {
		return 0, err
	}
	return value.AsU64RoundedDown()
}

// repayAtomsForSeizedCollateral inverts seizedCollateralAtoms: given a
// collateral amount already capped at what the position holds, it returns
// the repay atoms that amount of collateral actually pays for, rounded
// down so the liquidator is never credited more debt reduction than the
// seized collateral is worth.
func repayAtomsForSeizedCollateral(seizedAtoms uint64, supplyPrice, collateralPrice fixedpoint.IFixedPoint, liquidationBonusBps uint64) (uint64, error) {
	value, err := fixedpoint.FromU64(seizedAtoms).Mul(collateralPrice, fixedpoint.RoundDown)
	if err != nil {
		return 0, err
	}
	bonusFraction, err := fixedpoint.BpsToFixedPoint(liquidationBonusBps)
	if err != nil {
		return 0, err
	}
	bonusMultiplier, err := fixedpoint.One().Add(signedFromUnsigned(bonusFraction))
	if err != nil {
		return 0, err
	}
	denom, err := supplyPrice.Mul(bonusMultiplier, fixedpoint.RoundUp)
	if err != nil {
		return 0, err
	}
	value, err = value.Div(denom, fixedpoint.RoundDown)
	if err != nil {
		return 0, err
	}
	return value.AsU64RoundedDown()
}

func signedFromUnsigned(u fixedpoint.UFixedPoint) fixedpoint.IFixedPoint {
	v, err := fixedpoint.TryLit(u.String())
	if err != nil {
		// bps-derived fractions are always in [0, 1], well within range.
		panic(err)
	}
	return v
}
