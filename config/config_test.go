package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/autara-finance/lending-core/autarapubkey"
	"github.com/autara-finance/lending-core/interestrate"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "market.toml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func pk(b byte) string {
	var raw [32]byte
	for i := range raw {
		raw[i] = b
	}
	return autarapubkey.MustNew(raw[:]).String()
}

func TestLoadMarketConfigFixedCurve(t *testing.T) {
	path := writeConfig(t, `
Curator = "`+pk(1)+`"
MaxUtilisationRate = "1.0"
MaxSupplyAtoms = 1000000000
LendingMarketFeeInBps = 1000
ProtocolFeeShareInBps = 2000
IndexByte = 0

[SupplyMint]
Mint = "`+pk(2)+`"
Decimals = 6

[CollateralMint]
Mint = "`+pk(3)+`"
Decimals = 9

[Ltv]
MaxLtvBps = 8000
LiquidationLtvBps = 9000
LiquidationBonusBps = 500

[InterestRateCurve]
Kind = "fixed"
RatePerSecond = "0.0001"
`)
	file, err := LoadMarketConfig(path)
	if err != nil {
		t.Fatalf("load market config: %v", err)
	}
	cfg, err := file.ToMarketConfig()
	if err != nil {
		t.Fatalf("to market config: %v", err)
	}
	if cfg.Ltv.MaxLtvBps != 8000 || cfg.Ltv.LiquidationLtvBps != 9000 {
		t.Fatalf("unexpected ltv config: %+v", cfg.Ltv)
	}

	curve, err := file.InterestRateCurve.ToCurve()
	if err != nil {
		t.Fatalf("to curve: %v", err)
	}
	if curve.Kind != interestrate.KindFixed {
		t.Fatalf("expected fixed curve, got %v", curve.Kind)
	}
}

func TestLoadMarketConfigPolylineCurve(t *testing.T) {
	path := writeConfig(t, `
Curator = "`+pk(1)+`"
MaxUtilisationRate = "0.95"
MaxSupplyAtoms = 1000000000
LendingMarketFeeInBps = 1000
ProtocolFeeShareInBps = 2000
IndexByte = 1

[SupplyMint]
Mint = "`+pk(2)+`"
Decimals = 6

[CollateralMint]
Mint = "`+pk(3)+`"
Decimals = 9

[Ltv]
MaxLtvBps = 8000
LiquidationLtvBps = 9000
LiquidationBonusBps = 500

[InterestRateCurve]
Kind = "polyline"

[[InterestRateCurve.Points]]
UtilisationBps = 0
RatePerSecond = "0.00001"

[[InterestRateCurve.Points]]
UtilisationBps = 8000
RatePerSecond = "0.0002"

[[InterestRateCurve.Points]]
UtilisationBps = 10000
RatePerSecond = "0.001"
`)
	file, err := LoadMarketConfig(path)
	if err != nil {
		t.Fatalf("load market config: %v", err)
	}
	curve, err := file.InterestRateCurve.ToCurve()
	if err != nil {
		t.Fatalf("to curve: %v", err)
	}
	if curve.Kind != interestrate.KindPolyline {
		t.Fatalf("expected polyline curve, got %v", curve.Kind)
	}
	if len(curve.Polyline.Points) != 3 {
		t.Fatalf("expected 3 control points, got %d", len(curve.Polyline.Points))
	}
}

func TestLoadMarketConfigRejectsInvalidLtvOrdering(t *testing.T) {
	path := writeConfig(t, `
Curator = "`+pk(1)+`"
MaxUtilisationRate = "1.0"
MaxSupplyAtoms = 1000000000
LendingMarketFeeInBps = 1000
ProtocolFeeShareInBps = 2000
IndexByte = 0

[SupplyMint]
Mint = "`+pk(2)+`"
Decimals = 6

[CollateralMint]
Mint = "`+pk(3)+`"
Decimals = 9

[Ltv]
MaxLtvBps = 9500
LiquidationLtvBps = 9000
LiquidationBonusBps = 500

[InterestRateCurve]
Kind = "fixed"
RatePerSecond = "0.0001"
`)
	file, err := LoadMarketConfig(path)
	if err != nil {
		t.Fatalf("load market config: %v", err)
	}
	if _, err := file.ToMarketConfig(); err == nil {
		t.Fatal("expected validation error for MaxLtvBps >= LiquidationLtvBps")
	}
}

func TestLoadGlobalConfigRoundTrip(t *testing.T) {
	path := writeConfig(t, `
Admin = "`+pk(4)+`"
FeeReceiver = "`+pk(5)+`"
ProtocolFeeShareInBps = 2500
`)
	file, err := LoadGlobalConfig(path)
	if err != nil {
		t.Fatalf("load global config: %v", err)
	}
	cfg, err := file.ToGlobalConfig()
	if err != nil {
		t.Fatalf("to global config: %v", err)
	}
	if !cfg.IsInitialized() {
		t.Fatal("expected initialized global config")
	}
	if cfg.ProtocolFeeShareInBps != 2500 {
		t.Fatalf("unexpected protocol fee share: %d", cfg.ProtocolFeeShareInBps)
	}
}

func TestLoadGlobalConfigRejectsZeroAdmin(t *testing.T) {
	path := writeConfig(t, `
Admin = "`+autarapubkey.Zero.String()+`"
FeeReceiver = "`+pk(5)+`"
ProtocolFeeShareInBps = 2500
`)
	file, err := LoadGlobalConfig(path)
	if err != nil {
		t.Fatalf("load global config: %v", err)
	}
	if _, err := file.ToGlobalConfig(); err == nil {
		t.Fatal("expected error for zero admin")
	}
}

func TestSaveMarketConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "market.toml")
	original := &MarketConfigFile{
		Curator:               pk(1),
		SupplyMint:            MintFile{Mint: pk(2), Decimals: 6},
		CollateralMint:        MintFile{Mint: pk(3), Decimals: 9},
		Ltv:                   LtvConfigFile{MaxLtvBps: 8000, LiquidationLtvBps: 9000, LiquidationBonusBps: 500},
		MaxUtilisationRate:    "1.0",
		MaxSupplyAtoms:        1_000_000,
		LendingMarketFeeInBps: 1000,
		ProtocolFeeShareInBps: 2000,
		InterestRateCurve:     CurveFile{Kind: "fixed", RatePerSecond: "0.0001"},
	}
	if err := SaveMarketConfig(path, original); err != nil {
		t.Fatalf("save market config: %v", err)
	}
	loaded, err := LoadMarketConfig(path)
	if err != nil {
		t.Fatalf("load market config: %v", err)
	}
	if loaded.Curator != original.Curator || loaded.MaxSupplyAtoms != original.MaxSupplyAtoms {
		t.Fatalf("round trip mismatch: got %+v want %+v", loaded, original)
	}
}
