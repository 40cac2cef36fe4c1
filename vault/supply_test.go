package vault

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autara-finance/lending-core/fixedpoint"
	"github.com/autara-finance/lending-core/lendingerr"
)

func TestSupplyVaultSeedDeposit(t *testing.T) {
	v := &SupplyVault{}
	shares, err := v.Deposit(1_000)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), shares)
	require.Equal(t, uint64(1_000), v.TotalDepositedAtoms)
}

func TestSupplyVaultProportionalDeposit(t *testing.T) {
	v := &SupplyVault{TotalDepositedAtoms: 1_000, TotalShares: 1_000}
	shares, err := v.Deposit(500)
	require.NoError(t, err)
	require.Equal(t, uint64(500), shares)
}

func TestSupplyVaultWithdrawRejectsInsufficientLiquidity(t *testing.T) {
	v := &SupplyVault{TotalDepositedAtoms: 1_000, TotalShares: 1_000}
	maxUtil := fixedpoint.ULit("1.0")
	_, err := v.Withdraw(1_000, 500, maxUtil)
	require.ErrorIs(t, err, lendingerr.ErrInsufficientLiquidity)
}

func TestSupplyVaultWithdrawRejectsUtilisationCap(t *testing.T) {
	v := &SupplyVault{TotalDepositedAtoms: 1_000, TotalShares: 1_000}
	maxUtil := fixedpoint.ULit("0.9")
	_, err := v.Withdraw(50, 900, maxUtil)
	require.ErrorIs(t, err, lendingerr.ErrUtilisationAboveMax)
}

func TestSupplyVaultWithdrawHappyPath(t *testing.T) {
	v := &SupplyVault{TotalDepositedAtoms: 1_000, TotalShares: 1_000}
	maxUtil := fixedpoint.ULit("1.0")
	atoms, err := v.Withdraw(250, 0, maxUtil)
	require.NoError(t, err)
	require.Equal(t, uint64(250), atoms)
	require.Equal(t, uint64(750), v.TotalDepositedAtoms)
	require.Equal(t, uint64(750), v.TotalShares)
}

func TestSupplyVaultAccrueSplitsFees(t *testing.T) {
	v := &SupplyVault{TotalDepositedAtoms: 1_000, TotalShares: 1_000}
	err := v.Accrue(1_000, 1_000, 500) // 10% curator, 5% protocol
	require.NoError(t, err)
	require.Equal(t, uint64(100), v.PendingCuratorFeeAtoms)
	require.Equal(t, uint64(50), v.PendingProtocolFeeAtoms)
	require.Equal(t, uint64(1_850), v.TotalDepositedAtoms)
}

func TestSupplyVaultRedeemFees(t *testing.T) {
	v := &SupplyVault{TotalDepositedAtoms: 1_100, TotalShares: 1_000, PendingCuratorFeeAtoms: 100}
	atoms, err := v.RedeemCuratorFees()
	require.NoError(t, err)
	require.Equal(t, uint64(100), atoms)
	require.Equal(t, uint64(1_000), v.TotalDepositedAtoms)
	require.Equal(t, uint64(0), v.PendingCuratorFeeAtoms)
}

func TestSupplyVaultDonateAppreciatesShares(t *testing.T) {
	v := &SupplyVault{TotalDepositedAtoms: 1_000, TotalShares: 1_000}
	require.NoError(t, v.Donate(100))
	require.Equal(t, uint64(1_100), v.TotalDepositedAtoms)

	atoms, err := v.AtomsForShares(1_000, fixedpoint.RoundDown)
	require.NoError(t, err)
	require.Equal(t, uint64(1_100), atoms)
}

func TestSupplyVaultDonateToEmptyVaultReverts(t *testing.T) {
	v := &SupplyVault{}
	err := v.Donate(100)
	require.ErrorIs(t, err, lendingerr.ErrDonateToEmptyVault)
}

func TestSupplyVaultSharesForAtomsRoundsUp(t *testing.T) {
	v := &SupplyVault{TotalDepositedAtoms: 3, TotalShares: 1}
	shares, err := v.SharesForAtoms(1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), shares)
}
