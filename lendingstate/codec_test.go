package lendingstate

import (
	"testing"

	"github.com/autara-finance/lending-core/autarapubkey"
	"github.com/autara-finance/lending-core/fixedpoint"
	"github.com/autara-finance/lending-core/globalconfig"
	"github.com/autara-finance/lending-core/interestrate"
	"github.com/autara-finance/lending-core/market"
	"github.com/autara-finance/lending-core/position"
	"github.com/autara-finance/lending-core/vault"
)

func pk(b byte) autarapubkey.Pubkey {
	var raw [32]byte
	for i := range raw {
		raw[i] = b
	}
	return autarapubkey.MustNew(raw[:])
}

func sampleMarket(t *testing.T, curve interestrate.Curve) *market.Market {
	t.Helper()
	return &market.Market{
		Config: market.Config{
			Curator:        pk(1),
			SupplyMint:     market.MintInfo{Mint: pk(2), Decimals: 6},
			CollateralMint: market.MintInfo{Mint: pk(3), Decimals: 9},
			Ltv: market.LtvConfig{
				MaxLtvBps:           8000,
				LiquidationLtvBps:   9000,
				LiquidationBonusBps: 500,
			},
			MaxUtilisationRate:    fixedpoint.UOne(),
			MaxSupplyAtoms:        1 << 40,
			LendingMarketFeeInBps: 1000,
			ProtocolFeeShareInBps: 2000,
			IndexByte:             7,
			Bump:                  254,
		},
		Supply: vault.SupplyVault{
			TotalDepositedAtoms:     1_000_000,
			TotalShares:             1_000_000,
			PendingCuratorFeeAtoms:  100,
			PendingProtocolFeeAtoms: 50,
		},
		Collateral: vault.CollateralVault{TotalDepositedAtoms: 750_000},
		Borrow: market.BorrowState{
			TotalBorrowedAtoms: 500_000,
			TotalBorrowShares:  500_000,
			InterestRateCurve:  curve,
			LastUpdateUnixTs:   1_700_000_000,
		},
	}
}

func TestMarketRoundTripFixedCurve(t *testing.T) {
	m := sampleMarket(t, interestrate.NewFixed(fixedpoint.Lit("0.0001")))
	raw, err := EncodeMarket(m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeMarket(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Config.Curator != m.Config.Curator {
		t.Fatalf("curator mismatch")
	}
	if got.Borrow.TotalBorrowedAtoms != m.Borrow.TotalBorrowedAtoms {
		t.Fatalf("total borrowed mismatch")
	}
	if got.Borrow.InterestRateCurve.Kind != interestrate.KindFixed {
		t.Fatalf("expected fixed curve kind, got %v", got.Borrow.InterestRateCurve.Kind)
	}
	if got.Borrow.InterestRateCurve.Fixed.RatePerSecond.Cmp(m.Borrow.InterestRateCurve.Fixed.RatePerSecond) != 0 {
		t.Fatalf("fixed rate mismatch")
	}
}

func TestMarketRoundTripPolylineCurve(t *testing.T) {
	curve, err := interestrate.NewPolyline([]interestrate.ControlPoint{
		{UtilisationBps: 0, RatePerSecond: fixedpoint.Lit("0.00001")},
		{UtilisationBps: 8000, RatePerSecond: fixedpoint.Lit("0.0002")},
		{UtilisationBps: 10000, RatePerSecond: fixedpoint.Lit("0.001")},
	})
	if err != nil {
		t.Fatalf("build polyline: %v", err)
	}
	m := sampleMarket(t, curve)
	raw, err := EncodeMarket(m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeMarket(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Borrow.InterestRateCurve.Kind != interestrate.KindPolyline {
		t.Fatalf("expected polyline kind")
	}
	if len(got.Borrow.InterestRateCurve.Polyline.Points) != 3 {
		t.Fatalf("expected 3 control points, got %d", len(got.Borrow.InterestRateCurve.Polyline.Points))
	}
	for i, p := range got.Borrow.InterestRateCurve.Polyline.Points {
		want := curve.Polyline.Points[i]
		if p.UtilisationBps != want.UtilisationBps || p.RatePerSecond.Cmp(want.RatePerSecond) != 0 {
			t.Fatalf("control point %d mismatch: got %+v want %+v", i, p, want)
		}
	}
}

func TestMarketRoundTripAdaptiveCurve(t *testing.T) {
	curve, err := interestrate.NewAdaptive(interestrate.AdaptiveConfig{
		InitialRatePerSecond: fixedpoint.Lit("0.0001"),
		TargetUtilisation:    fixedpoint.ULit("0.8"),
		AdjustmentSpeed:      fixedpoint.Lit("0.00005"),
		MinRatePerSecond:     fixedpoint.Zero(),
		MaxRatePerSecond:     fixedpoint.Lit("0.01"),
	})
	if err != nil {
		t.Fatalf("build adaptive: %v", err)
	}
	m := sampleMarket(t, curve)
	raw, err := EncodeMarket(m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeMarket(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Borrow.InterestRateCurve.Kind != interestrate.KindAdaptive {
		t.Fatalf("expected adaptive kind")
	}
	if got.Borrow.InterestRateCurve.Adaptive.CurrentRatePerSecond.Cmp(curve.Adaptive.CurrentRatePerSecond) != 0 {
		t.Fatalf("current rate mismatch")
	}
	if got.Borrow.InterestRateCurve.Adaptive.TargetUtilisation.Cmp(curve.Adaptive.TargetUtilisation) != 0 {
		t.Fatalf("target utilisation mismatch")
	}
}

func TestSupplyPositionRoundTrip(t *testing.T) {
	p := &position.SupplyPosition{Market: pk(4), Authority: pk(5), Shares: 123456}
	got := DecodeSupplyPosition(EncodeSupplyPosition(p))
	if *got != *p {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, p)
	}
}

func TestBorrowPositionRoundTrip(t *testing.T) {
	p := &position.BorrowPosition{Market: pk(6), Authority: pk(7), CollateralDepositedAtoms: 999, BorrowShares: 42}
	got := DecodeBorrowPosition(EncodeBorrowPosition(p))
	if *got != *p {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, p)
	}
}

func TestGlobalConfigRoundTrip(t *testing.T) {
	g := &globalconfig.GlobalConfig{Admin: pk(8), NominatedAdmin: pk(9), FeeReceiver: pk(10), ProtocolFeeShareInBps: 2500, Bump: 11}
	got := DecodeGlobalConfig(EncodeGlobalConfig(g))
	if *got != *g {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, g)
	}
}

func TestAccountSizesAreDistinct(t *testing.T) {
	sizes := []int{MarketSize, SupplyPositionSize, BorrowPositionSize, GlobalConfigSize}
	seen := map[int]bool{}
	for _, s := range sizes {
		if seen[s] {
			t.Fatalf("duplicate account size %d", s)
		}
		seen[s] = true
	}
}
