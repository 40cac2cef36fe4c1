package position

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autara-finance/lending-core/lendingerr"
)

func TestSupplyPositionCreditDebit(t *testing.T) {
	p := &SupplyPosition{}
	p.CreditShares(100)
	require.Equal(t, uint64(100), p.Shares)

	require.NoError(t, p.DebitShares(40))
	require.Equal(t, uint64(60), p.Shares)

	err := p.DebitShares(1_000)
	require.ErrorIs(t, err, lendingerr.ErrWithdrawalExceedsShares)
}

func TestBorrowPositionCollateralFlow(t *testing.T) {
	p := &BorrowPosition{}
	p.DepositCollateral(500)
	require.Equal(t, uint64(500), p.CollateralDepositedAtoms)

	require.NoError(t, p.WithdrawCollateral(200))
	require.Equal(t, uint64(300), p.CollateralDepositedAtoms)

	err := p.WithdrawCollateral(1_000)
	require.ErrorIs(t, err, lendingerr.ErrWithdrawalExceedsDeposited)
}

func TestBorrowPositionShareFlow(t *testing.T) {
	p := &BorrowPosition{}
	p.CreditBorrowShares(100)
	require.NoError(t, p.DebitBorrowShares(100))
	require.True(t, p.IsClosed())

	err := p.DebitBorrowShares(1)
	require.Error(t, err)
}
