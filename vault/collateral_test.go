package vault

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autara-finance/lending-core/lendingerr"
)

func TestCollateralVaultDepositWithdraw(t *testing.T) {
	v := &CollateralVault{}
	v.Deposit(500)
	require.Equal(t, uint64(500), v.TotalDepositedAtoms)

	require.NoError(t, v.Withdraw(200))
	require.Equal(t, uint64(300), v.TotalDepositedAtoms)
}

func TestCollateralVaultWithdrawRejectsExcess(t *testing.T) {
	v := &CollateralVault{TotalDepositedAtoms: 100}
	err := v.Withdraw(200)
	require.ErrorIs(t, err, lendingerr.ErrWithdrawalExceedsDeposited)
}
