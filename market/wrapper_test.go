package market

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autara-finance/lending-core/autarapubkey"
	"github.com/autara-finance/lending-core/fixedpoint"
	"github.com/autara-finance/lending-core/interestrate"
	"github.com/autara-finance/lending-core/lendingerr"
	"github.com/autara-finance/lending-core/position"
)

func pk(b byte) autarapubkey.Pubkey {
	var raw [32]byte
	for i := range raw {
		raw[i] = b
	}
	return autarapubkey.MustNew(raw[:])
}

func newTestMarket(maxUtilisation fixedpoint.UFixedPoint, ratePerSecond fixedpoint.IFixedPoint) *Market {
	return &Market{
		Config: Config{
			Curator:        pk(1),
			SupplyMint:     MintInfo{Mint: pk(2), Decimals: 6},
			CollateralMint: MintInfo{Mint: pk(3), Decimals: 6},
			Ltv: LtvConfig{
				MaxLtvBps:           8000,
				LiquidationLtvBps:   9000,
				LiquidationBonusBps: 500,
			},
			MaxUtilisationRate:    maxUtilisation,
			MaxSupplyAtoms:        1 << 40,
			LendingMarketFeeInBps: 0,
			ProtocolFeeShareInBps: 0,
		},
		Borrow: BorrowState{
			InterestRateCurve: interestrate.NewFixed(ratePerSecond),
			LastUpdateUnixTs:  1_000,
		},
	}
}

var parity = fixedpoint.One()

// TestWrapperSupplyWithdrawRoundTrip mirrors a lend/accrue/withdraw
// round-trip: a lender deposits, a borrower accrues interest against it
// over one second, repays in full, and the lender withdraws back out to a
// fully drained vault.
func TestWrapperSupplyWithdrawRoundTrip(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Lit("0.0001"))
	lender := &position.SupplyPosition{Market: pk(10), Authority: pk(11)}
	borrower := &position.BorrowPosition{Market: pk(10), Authority: pk(12)}

	w := New(m, parity, parity, 1_000)
	_, err := w.Lend(pk(10), lender, 1_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), lender.Shares)

	_, err = w.DepositCollateral(pk(10), borrower, 2_000_000)
	require.NoError(t, err)
	_, err = w.Borrow(pk(10), borrower, 500_000)
	require.NoError(t, err)
	require.Equal(t, uint64(500_000), borrower.BorrowShares)

	w2 := New(m, parity, parity, 1_001)
	require.NoError(t, w2.SyncClock())
	require.Equal(t, uint64(500_050), m.Borrow.TotalBorrowedAtoms)
	require.Equal(t, uint64(1_000_050), m.Supply.TotalDepositedAtoms)

	w3 := New(m, parity, parity, 1_001)
	repayEvt, err := w3.Repay(pk(10), borrower, 500_050)
	require.NoError(t, err)
	require.Equal(t, uint64(500_050), repayEvt.AtomsRepaid)
	require.Equal(t, uint64(0), m.Borrow.TotalBorrowedAtoms)
	require.Equal(t, uint64(0), m.Borrow.TotalBorrowShares)
	require.False(t, borrower.IsClosed()) // collateral still deposited

	_, err = w3.WithdrawCollateral(pk(10), borrower, 2_000_000)
	require.NoError(t, err)
	require.True(t, borrower.IsClosed())

	withdrawEvt, err := w3.Withdraw(pk(10), lender, 1_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_050), withdrawEvt.AtomsReturned)
	require.Equal(t, uint64(0), m.Supply.TotalShares)
	require.Equal(t, uint64(0), m.Supply.TotalDepositedAtoms)
}

// TestWrapperWithdrawCollateralBlockedByLTV mirrors a borrower pinned right
// at max_ltv_bps: withdrawing any collateral tips the position unhealthy,
// but repaying a sliver of debt first restores enough room.
func TestWrapperWithdrawCollateralBlockedByLTV(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Zero())
	m.Supply.TotalDepositedAtoms = 1_000
	m.Supply.TotalShares = 1_000
	m.Borrow.TotalBorrowedAtoms = 80
	m.Borrow.TotalBorrowShares = 80
	m.Collateral.TotalDepositedAtoms = 100
	borrower := &position.BorrowPosition{Market: pk(20), Authority: pk(21), CollateralDepositedAtoms: 100, BorrowShares: 80}

	w := New(m, parity, parity, 1_000)
	_, err := w.WithdrawCollateral(pk(20), borrower, 1)
	require.ErrorIs(t, err, lendingerr.ErrPositionUnhealthy)
	require.Equal(t, uint64(100), borrower.CollateralDepositedAtoms)

	_, err = w.Repay(pk(20), borrower, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(79), m.Borrow.TotalBorrowedAtoms)

	_, err = w.WithdrawCollateral(pk(20), borrower, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(99), borrower.CollateralDepositedAtoms)
}

// TestWrapperBorrowRejectsUtilisationAboveMax mirrors a market pinned at
// 90% utilisation: a further borrow that would push it over the cap is
// rejected, and so is a lender withdraw that would do the same.
func TestWrapperBorrowRejectsUtilisationAboveMax(t *testing.T) {
	m := newTestMarket(fixedpoint.Lit("0.9"), fixedpoint.Zero())
	m.Supply.TotalDepositedAtoms = 1_000
	m.Supply.TotalShares = 1_000
	m.Borrow.TotalBorrowedAtoms = 900
	m.Borrow.TotalBorrowShares = 900
	m.Collateral.TotalDepositedAtoms = 10_000
	borrower := &position.BorrowPosition{Market: pk(30), Authority: pk(31), CollateralDepositedAtoms: 10_000, BorrowShares: 900}
	lender := &position.SupplyPosition{Market: pk(30), Authority: pk(32), Shares: 1_000}

	w := New(m, parity, parity, 1_000)
	_, err := w.Borrow(pk(30), borrower, 1)
	require.ErrorIs(t, err, lendingerr.ErrUtilisationAboveMax)

	_, err = w.Withdraw(pk(30), lender, 1)
	require.ErrorIs(t, err, lendingerr.ErrUtilisationAboveMax)
}

// TestWrapperLiquidateClosesDebtWithBonus mirrors an unhealthy position
// being fully liquidated: the liquidator pays off all debt and receives
// collateral scaled by the liquidation bonus, left unclosed only because
// the borrower still holds leftover collateral.
func TestWrapperLiquidateClosesDebtWithBonus(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Zero())
	m.Supply.TotalDepositedAtoms = 1_000
	m.Supply.TotalShares = 1_000
	m.Borrow.TotalBorrowedAtoms = 95
	m.Borrow.TotalBorrowShares = 95
	m.Collateral.TotalDepositedAtoms = 100
	borrower := &position.BorrowPosition{Market: pk(40), Authority: pk(41), CollateralDepositedAtoms: 100, BorrowShares: 95}

	w := New(m, parity, parity, 1_000)
	evt, err := w.Liquidate(pk(40), borrower, pk(42), 95)
	require.NoError(t, err)
	require.Equal(t, uint64(95), evt.RepayAtoms)
	require.Equal(t, uint64(99), evt.SeizedCollateral) // 95 * 1.05 = 99.75, rounded down
	require.Equal(t, uint64(0), borrower.BorrowShares)
	require.Equal(t, uint64(1), borrower.CollateralDepositedAtoms)
	require.Equal(t, uint64(0), m.Borrow.TotalBorrowedAtoms)
	require.Equal(t, uint64(0), m.Borrow.TotalBorrowShares)
}

// TestWrapperLiquidateCapsAtCollateralThenSocializesLoss mirrors a
// collateral-price crash: the liquidator can only seize what's left, so
// the debt reduction is scaled down to match, and the remainder is
// socialized once the position's collateral is exhausted.
func TestWrapperLiquidateCapsAtCollateralThenSocializesLoss(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Zero())
	m.Supply.TotalDepositedAtoms = 1_000
	m.Supply.TotalShares = 1_000
	m.Borrow.TotalBorrowedAtoms = 100
	m.Borrow.TotalBorrowShares = 100
	m.Collateral.TotalDepositedAtoms = 100
	borrower := &position.BorrowPosition{Market: pk(50), Authority: pk(51), CollateralDepositedAtoms: 100, BorrowShares: 100}

	crashedCollateralPrice := fixedpoint.Lit("0.4")
	w := New(m, parity, crashedCollateralPrice, 1_000)
	evt, err := w.Liquidate(pk(50), borrower, pk(52), 100)
	require.NoError(t, err)
	require.Equal(t, uint64(100), evt.SeizedCollateral)
	require.Less(t, evt.RepayAtoms, uint64(100))
	require.Equal(t, uint64(0), borrower.CollateralDepositedAtoms)
	require.Greater(t, borrower.BorrowShares, uint64(0))

	socEvt, err := w.SocializeLoss(pk(50), borrower)
	require.NoError(t, err)
	require.True(t, socEvt.DebtSocialized > 0)
	require.Equal(t, uint64(0), m.Borrow.TotalBorrowedAtoms)
	require.Equal(t, uint64(0), m.Borrow.TotalBorrowShares)
	require.True(t, borrower.IsClosed())
	require.Equal(t, uint64(1_000)-socEvt.DebtSocialized, m.Supply.TotalDepositedAtoms)
}

func TestWrapperLiquidateRejectsHealthyPosition(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Zero())
	m.Supply.TotalDepositedAtoms = 1_000
	m.Supply.TotalShares = 1_000
	m.Borrow.TotalBorrowedAtoms = 10
	m.Borrow.TotalBorrowShares = 10
	m.Collateral.TotalDepositedAtoms = 100
	borrower := &position.BorrowPosition{Market: pk(60), Authority: pk(61), CollateralDepositedAtoms: 100, BorrowShares: 10}

	w := New(m, parity, parity, 1_000)
	_, err := w.Liquidate(pk(60), borrower, pk(62), 10)
	require.ErrorIs(t, err, lendingerr.ErrPositionHealthy)
}

func TestWrapperSocializeLossRejectsRemainingCollateral(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Zero())
	m.Borrow.TotalBorrowedAtoms = 10
	m.Borrow.TotalBorrowShares = 10
	borrower := &position.BorrowPosition{Market: pk(70), Authority: pk(71), CollateralDepositedAtoms: 1, BorrowShares: 10}

	w := New(m, parity, parity, 1_000)
	_, err := w.SocializeLoss(pk(70), borrower)
	require.ErrorIs(t, err, lendingerr.ErrCollateralRemaining)
}

func TestWrapperDonateSupplyAppreciatesShares(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Zero())
	m.Supply.TotalDepositedAtoms = 1_000
	m.Supply.TotalShares = 1_000

	w := New(m, parity, parity, 1_000)
	_, err := w.DonateSupplyAtoms(pk(80), pk(81), 100)
	require.NoError(t, err)
	require.Equal(t, uint64(1_100), m.Supply.TotalDepositedAtoms)
	require.Equal(t, uint64(1_000), m.Supply.TotalShares)
}

func TestWrapperDonateSupplyRejectsEmptyVault(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Zero())
	w := New(m, parity, parity, 1_000)
	_, err := w.DonateSupplyAtoms(pk(90), pk(91), 100)
	require.ErrorIs(t, err, lendingerr.ErrDonateToEmptyVault)
}

func TestWrapperRedeemFees(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Zero())
	require.NoError(t, m.Supply.Accrue(1_000, 2_000, 1_000)) // 20% curator, 10% protocol

	w := New(m, parity, parity, 1_000)
	curatorEvt, err := w.RedeemCuratorFees(pk(100), pk(101))
	require.NoError(t, err)
	require.Equal(t, uint64(200), curatorEvt.AtomsRedeemed)

	protocolEvt, err := w.RedeemProtocolFees(pk(100), pk(102))
	require.NoError(t, err)
	require.Equal(t, uint64(100), protocolEvt.AtomsRedeemed)

	require.Equal(t, uint64(0), m.Supply.PendingCuratorFeeAtoms)
	require.Equal(t, uint64(0), m.Supply.PendingProtocolFeeAtoms)
}

// TestWrapperBorrowAccruesInterestOverOneYear mirrors a fixed ~10% APY
// market at 50% utilisation: one lender, one borrower, a single clock
// advance of a full year. SyncClock accrues rate * borrowed * elapsed in a
// single step, so total_borrowed_atoms should land within a tight tolerance
// of the simple-interest figure, and the supply share price should have risen by roughly
// half that (the borrower's full rate, diluted by 50% utilisation).
func TestWrapperBorrowAccruesInterestOverOneYear(t *testing.T) {
	const secondsPerYear = 365 * 24 * 60 * 60
	ratePerSecond := fixedpoint.Lit("0.0000000031709791983764585") // ~10% APY, simple

	m := newTestMarket(fixedpoint.UOne(), ratePerSecond)
	lender := &position.SupplyPosition{Market: pk(40), Authority: pk(41)}
	borrower := &position.BorrowPosition{Market: pk(40), Authority: pk(42)}

	w := New(m, parity, parity, 1_000)
	_, err := w.Lend(pk(40), lender, 1_000_000)
	require.NoError(t, err)
	_, err = w.DepositCollateral(pk(40), borrower, 2_000_000)
	require.NoError(t, err)
	_, err = w.Borrow(pk(40), borrower, 500_000)
	require.NoError(t, err)

	w2 := New(m, parity, parity, 1_000+secondsPerYear)
	require.NoError(t, w2.SyncClock())

	require.InDelta(t, 550_000, float64(m.Borrow.TotalBorrowedAtoms), 1_000)

	lenderAtoms, err := m.Supply.AtomsForShares(lender.Shares, fixedpoint.RoundDown)
	require.NoError(t, err)
	require.InDelta(t, 1_025_000, float64(lenderAtoms), 1_000)
}

func TestWrapperSyncClockRejectsClockWentBackwards(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Zero())
	m.Borrow.LastUpdateUnixTs = 1_000
	w := New(m, parity, parity, 999)
	require.ErrorIs(t, w.SyncClock(), lendingerr.ErrClockWentBackwards)
}

func TestWrapperSyncClockIsIdempotent(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Lit("0.0001"))
	m.Supply.TotalDepositedAtoms = 1_000_000
	m.Supply.TotalShares = 1_000_000
	m.Borrow.TotalBorrowedAtoms = 500_000
	m.Borrow.TotalBorrowShares = 500_000

	w := New(m, parity, parity, 1_001)
	require.NoError(t, w.SyncClock())
	borrowedAfterFirst := m.Borrow.TotalBorrowedAtoms

	w2 := New(m, parity, parity, 1_001)
	require.NoError(t, w2.SyncClock())
	require.Equal(t, borrowedAfterFirst, m.Borrow.TotalBorrowedAtoms)
}

// TestWrapperBorrowDepositChecksHealthBeforeNewCollateralLands verifies
// the ordering spec.md §9(b) requires: a borrow that would be unhealthy
// against the position's existing collateral is rejected even though the
// same call's deposit would have covered it.
func TestWrapperBorrowDepositChecksHealthBeforeNewCollateralLands(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Zero())
	m.Supply.TotalDepositedAtoms = 1_000_000
	m.Supply.TotalShares = 1_000_000
	borrower := &position.BorrowPosition{Market: pk(50), Authority: pk(51), CollateralDepositedAtoms: 100}

	w := New(m, parity, parity, 1_000)
	_, err := w.BorrowDeposit(pk(50), borrower, 8_000, 100_000, nil)
	require.ErrorIs(t, err, lendingerr.ErrPositionUnhealthy)
	require.Equal(t, uint64(100), borrower.CollateralDepositedAtoms)
	require.Equal(t, uint64(0), borrower.BorrowShares)
	require.Equal(t, uint64(0), m.Borrow.TotalBorrowedAtoms)
}

// TestWrapperBorrowDepositCommitsBothLegsOnSuccess mirrors a healthy
// combined borrow-and-deposit: the borrow is checked against collateral
// already on deposit, the callback runs, and both legs land atomically.
func TestWrapperBorrowDepositCommitsBothLegsOnSuccess(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Zero())
	m.Supply.TotalDepositedAtoms = 1_000_000
	m.Supply.TotalShares = 1_000_000
	m.Collateral.TotalDepositedAtoms = 10_000
	borrower := &position.BorrowPosition{Market: pk(52), Authority: pk(53), CollateralDepositedAtoms: 10_000}

	w := New(m, parity, parity, 1_000)
	callbackRan := false
	evt, err := w.BorrowDeposit(pk(52), borrower, 5_000, 2_000, func() error {
		callbackRan = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, callbackRan)
	require.Equal(t, uint64(5_000), evt.AtomsBorrowed)
	require.Equal(t, uint64(2_000), evt.AtomsDeposited)
	require.Equal(t, uint64(5_000), m.Borrow.TotalBorrowedAtoms)
	require.Equal(t, uint64(12_000), borrower.CollateralDepositedAtoms)
	require.Equal(t, uint64(12_000), m.Collateral.TotalDepositedAtoms)
}

// TestWrapperBorrowDepositCallbackFailureMutatesNothing mirrors a
// callback that reverts the whole combined instruction: neither the
// borrow nor the deposit should be visible afterward.
func TestWrapperBorrowDepositCallbackFailureMutatesNothing(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Zero())
	m.Supply.TotalDepositedAtoms = 1_000_000
	m.Supply.TotalShares = 1_000_000
	m.Collateral.TotalDepositedAtoms = 10_000
	borrower := &position.BorrowPosition{Market: pk(54), Authority: pk(55), CollateralDepositedAtoms: 10_000}

	w := New(m, parity, parity, 1_000)
	callbackErr := errors.New("callback reverted")
	_, err := w.BorrowDeposit(pk(54), borrower, 5_000, 2_000, func() error {
		return callbackErr
	})
	require.ErrorIs(t, err, callbackErr)
	require.Equal(t, uint64(0), m.Borrow.TotalBorrowedAtoms)
	require.Equal(t, uint64(10_000), borrower.CollateralDepositedAtoms)
	require.Equal(t, uint64(10_000), m.Collateral.TotalDepositedAtoms)
}

// TestWrapperWithdrawRepayChecksHealthBeforeRepayLands verifies the
// symmetric ordering for WithdrawRepay: a withdrawal that would be
// unhealthy against the position's existing debt is rejected even though
// the same call's repay would have covered it.
func TestWrapperWithdrawRepayChecksHealthBeforeRepayLands(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Zero())
	m.Supply.TotalDepositedAtoms = 1_000
	m.Supply.TotalShares = 1_000
	m.Borrow.TotalBorrowedAtoms = 80
	m.Borrow.TotalBorrowShares = 80
	m.Collateral.TotalDepositedAtoms = 100
	borrower := &position.BorrowPosition{Market: pk(56), Authority: pk(57), CollateralDepositedAtoms: 100, BorrowShares: 80}

	w := New(m, parity, parity, 1_000)
	_, err := w.WithdrawRepay(pk(56), borrower, 50, 80, nil)
	require.ErrorIs(t, err, lendingerr.ErrPositionUnhealthy)
	require.Equal(t, uint64(100), borrower.CollateralDepositedAtoms)
	require.Equal(t, uint64(80), borrower.BorrowShares)
	require.Equal(t, uint64(80), m.Borrow.TotalBorrowedAtoms)
}

// TestWrapperWithdrawRepayCommitsBothLegsOnSuccess mirrors a healthy
// combined withdraw-and-repay: the withdrawal leaves enough collateral to
// stay healthy against the *existing* debt (checked before the repay
// lands), and the repay afterward pays the debt down further.
func TestWrapperWithdrawRepayCommitsBothLegsOnSuccess(t *testing.T) {
	m := newTestMarket(fixedpoint.UOne(), fixedpoint.Zero())
	m.Supply.TotalDepositedAtoms = 1_000
	m.Supply.TotalShares = 1_000
	m.Borrow.TotalBorrowedAtoms = 80
	m.Borrow.TotalBorrowShares = 80
	m.Collateral.TotalDepositedAtoms = 200
	borrower := &position.BorrowPosition{Market: pk(58), Authority: pk(59), CollateralDepositedAtoms: 200, BorrowShares: 80}

	w := New(m, parity, parity, 1_000)
	evt, err := w.WithdrawRepay(pk(58), borrower, 100, 80, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(100), evt.AtomsWithdrawn)
	require.Equal(t, uint64(80), evt.AtomsRepaid)
	require.Equal(t, uint64(100), borrower.CollateralDepositedAtoms)
	require.Equal(t, uint64(0), borrower.BorrowShares)
	require.Equal(t, uint64(0), m.Borrow.TotalBorrowedAtoms)
	require.Equal(t, uint64(100), m.Collateral.TotalDepositedAtoms)
}
