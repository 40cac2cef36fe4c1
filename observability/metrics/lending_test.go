package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLendingIsASingleton(t *testing.T) {
	if Lending() != Lending() {
		t.Fatal("expected Lending() to return the same registry instance")
	}
}

func TestObserveSupplyLabelsByOutcome(t *testing.T) {
	m := Lending()
	before := testutil.ToFloat64(m.supplies.WithLabelValues("market-a", "ok"))
	m.ObserveSupply("market-a", nil)
	after := testutil.ToFloat64(m.supplies.WithLabelValues("market-a", "ok"))
	if after != before+1 {
		t.Fatalf("expected supplies counter to increment by 1, got %v -> %v", before, after)
	}

	errBefore := testutil.ToFloat64(m.supplies.WithLabelValues("market-a", "boom"))
	m.ObserveSupply("market-a", errors.New("boom"))
	errAfter := testutil.ToFloat64(m.supplies.WithLabelValues("market-a", "boom"))
	if errAfter != errBefore+1 {
		t.Fatalf("expected error-labeled supplies counter to increment by 1, got %v -> %v", errBefore, errAfter)
	}
}

func TestIncBadDebtSocializedAccumulates(t *testing.T) {
	m := Lending()
	before := testutil.ToFloat64(m.badDebt.WithLabelValues("market-b"))
	m.IncBadDebtSocialized("market-b", 500)
	m.IncBadDebtSocialized("market-b", 250)
	after := testutil.ToFloat64(m.badDebt.WithLabelValues("market-b"))
	if after != before+750 {
		t.Fatalf("expected bad debt counter to accumulate 750, got %v -> %v", before, after)
	}
}

func TestGaugesReflectLatestSet(t *testing.T) {
	m := Lending()
	m.SetSupplySharePrice("market-c", 1.02)
	if got := testutil.ToFloat64(m.sharePrice.WithLabelValues("market-c")); got != 1.02 {
		t.Fatalf("expected share price gauge 1.02, got %v", got)
	}
	m.SetSupplySharePrice("market-c", 1.05)
	if got := testutil.ToFloat64(m.sharePrice.WithLabelValues("market-c")); got != 1.05 {
		t.Fatalf("expected share price gauge to overwrite to 1.05, got %v", got)
	}
}

func TestNilReceiverMethodsAreNoOps(t *testing.T) {
	var m *LendingMetrics
	m.ObserveSupply("market-d", nil)
	m.ObserveWithdrawal("market-d", nil)
	m.ObserveBorrow("market-d", nil)
	m.ObserveRepayment("market-d", nil)
	m.ObserveLiquidation("market-d", nil)
	m.ObserveDonation("market-d", nil)
	m.IncBadDebtSocialized("market-d", 1)
	m.IncAccrualTick("market-d")
	m.SetSupplySharePrice("market-d", 1)
	m.SetUtilisationRate("market-d", 1)
	m.SetBorrowRatePerSecond("market-d", 1)
	m.SetTotalBorrowedAtoms("market-d", 1)
	m.IncOracleReject("market-d", "stale")
}
