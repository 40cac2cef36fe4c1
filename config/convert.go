package config

import (
	"fmt"

	"github.com/autara-finance/lending-core/autarapubkey"
	"github.com/autara-finance/lending-core/fixedpoint"
	"github.com/autara-finance/lending-core/globalconfig"
	"github.com/autara-finance/lending-core/interestrate"
	"github.com/autara-finance/lending-core/market"
)

func parseMint(m MintFile) (market.MintInfo, error) {
	mint, err := autarapubkey.Parse(m.Mint)
	if err != nil {
		return market.MintInfo{}, fmt.Errorf("config: mint: %w", err)
	}
	return market.MintInfo{Mint: mint, Decimals: m.Decimals}, nil
}

// ToCurve builds the interestrate.Curve the file describes, dispatching on
// Kind the same way interestrate.Curve itself dispatches on its tag.
func (c CurveFile) ToCurve() (interestrate.Curve, error) {
	switch c.Kind {
	case "fixed":
		rate, err := fixedpoint.TryLit(c.RatePerSecond)
		if err != nil {
			return interestrate.Curve{}, fmt.Errorf("config: fixed curve: %w", err)
		}
		return interestrate.NewFixed(rate), nil
	case "polyline":
		points := make([]interestrate.ControlPoint, 0, len(c.Points))
		for i, p := range c.Points {
			rate, err := fixedpoint.TryLit(p.RatePerSecond)
			if err != nil {
				return interestrate.Curve{}, fmt.Errorf("config: polyline control point %d: %w", i, err)
			}
			points = append(points, interestrate.ControlPoint{
				UtilisationBps: p.UtilisationBps,
				RatePerSecond:  rate,
			})
		}
		curve, err := interestrate.NewPolyline(points)
		if err != nil {
			return interestrate.Curve{}, fmt.Errorf("config: polyline curve: %w", err)
		}
		return curve, nil
	case "adaptive":
		initial, err := fixedpoint.TryLit(c.InitialRatePerSecond)
		if err != nil {
			return interestrate.Curve{}, fmt.Errorf("config: adaptive curve: initial rate: %w", err)
		}
		target, err := fixedpoint.UTryLit(c.TargetUtilisation)
		if err != nil {
			return interestrate.Curve{}, fmt.Errorf("config: adaptive curve: target utilisation: %w", err)
		}
		speed, err := fixedpoint.TryLit(c.AdjustmentSpeed)
		if err != nil {
			return interestrate.Curve{}, fmt.Errorf("config: adaptive curve: adjustment speed: %w", err)
		}
		min, err := fixedpoint.TryLit(c.MinRatePerSecond)
		if err != nil {
			return interestrate.Curve{}, fmt.Errorf("config: adaptive curve: min rate: %w", err)
		}
		max, err := fixedpoint.TryLit(c.MaxRatePerSecond)
		if err != nil {
			return interestrate.Curve{}, fmt.Errorf("config: adaptive curve: max rate: %w", err)
		}
		curve, err := interestrate.NewAdaptive(interestrate.AdaptiveConfig{
			InitialRatePerSecond: initial,
			TargetUtilisation:    target,
			AdjustmentSpeed:      speed,
			MinRatePerSecond:     min,
			MaxRatePerSecond:     max,
		})
		if err != nil {
			return interestrate.Curve{}, fmt.Errorf("config: adaptive curve: %w", err)
		}
		return curve, nil
	default:
		return interestrate.Curve{}, fmt.Errorf("config: unknown interest rate curve kind %q", c.Kind)
	}
}

// ToMarketConfig builds and validates the market.Config the file
// describes. The returned config never carries an interest rate curve —
// that lives on market.BorrowState, built separately via
// InterestRateCurve.ToCurve() — so a caller assembling a fresh market
// combines both before constructing the market.
func (m MarketConfigFile) ToMarketConfig() (market.Config, error) {
	curator, err := autarapubkey.Parse(m.Curator)
	if err != nil {
		return market.Config{}, fmt.Errorf("config: curator: %w", err)
	}
	supplyMint, err := parseMint(m.SupplyMint)
	if err != nil {
		return market.Config{}, fmt.Errorf("config: supply mint: %w", err)
	}
	collateralMint, err := parseMint(m.CollateralMint)
	if err != nil {
		return market.Config{}, fmt.Errorf("config: collateral mint: %w", err)
	}
	maxUtilisation, err := fixedpoint.UTryLit(m.MaxUtilisationRate)
	if err != nil {
		return market.Config{}, fmt.Errorf("config: max utilisation rate: %w", err)
	}

	cfg := market.Config{
		Curator:        curator,
		SupplyMint:     supplyMint,
		CollateralMint: collateralMint,
		Ltv: market.LtvConfig{
			MaxLtvBps:           m.Ltv.MaxLtvBps,
			LiquidationLtvBps:   m.Ltv.LiquidationLtvBps,
			LiquidationBonusBps: m.Ltv.LiquidationBonusBps,
		},
		MaxUtilisationRate:    maxUtilisation,
		MaxSupplyAtoms:        m.MaxSupplyAtoms,
		LendingMarketFeeInBps: m.LendingMarketFeeInBps,
		ProtocolFeeShareInBps: m.ProtocolFeeShareInBps,
		IndexByte:             m.IndexByte,
	}
	if err := cfg.Validate(); err != nil {
		return market.Config{}, fmt.Errorf("config: invalid market config: %w", err)
	}
	return cfg, nil
}

// ToGlobalConfig builds the protocol-wide globalconfig.GlobalConfig
// singleton the file describes, bump defaulting to 0 since the config
// file predates any on-chain address derivation.
func (g GlobalConfigFile) ToGlobalConfig() (globalconfig.GlobalConfig, error) {
	admin, err := autarapubkey.Parse(g.Admin)
	if err != nil {
		return globalconfig.GlobalConfig{}, fmt.Errorf("config: admin: %w", err)
	}
	feeReceiver, err := autarapubkey.Parse(g.FeeReceiver)
	if err != nil {
		return globalconfig.GlobalConfig{}, fmt.Errorf("config: fee receiver: %w", err)
	}
	cfg, err := globalconfig.Initialize(admin, feeReceiver, g.ProtocolFeeShareInBps, 0)
	if err != nil {
		return globalconfig.GlobalConfig{}, fmt.Errorf("config: invalid global config: %w", err)
	}
	return cfg, nil
}
