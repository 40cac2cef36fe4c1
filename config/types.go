package config

// MintFile is the TOML-facing form of market.MintInfo.
type MintFile struct {
	Mint     string `toml:"Mint"`
	Decimals uint8  `toml:"Decimals"`
}

// LtvConfigFile is the TOML-facing form of market.LtvConfig.
type LtvConfigFile struct {
	MaxLtvBps           uint64 `toml:"MaxLtvBps"`
	LiquidationLtvBps   uint64 `toml:"LiquidationLtvBps"`
	LiquidationBonusBps uint64 `toml:"LiquidationBonusBps"`
}

// ControlPointFile is the TOML-facing form of interestrate.ControlPoint.
// RatePerSecond is a decimal literal (e.g. "0.0001") rather than a float so
// it round-trips through fixedpoint.TryLit exactly.
type ControlPointFile struct {
	UtilisationBps uint64 `toml:"UtilisationBps"`
	RatePerSecond  string `toml:"RatePerSecond"`
}

// CurveFile is the TOML-facing tagged union of interestrate.Curve variants.
// Kind selects which of the remaining fields is meaningful; unused fields
// are left at their zero value, the same "struct carries all variants"
// shape interestrate.Curve itself uses for the lack of Go sum types.
type CurveFile struct {
	// Kind is one of "fixed", "polyline", "adaptive".
	Kind string `toml:"Kind"`

	// Fixed
	RatePerSecond string `toml:"RatePerSecond"`

	// Polyline
	Points []ControlPointFile `toml:"Points"`

	// Adaptive
	InitialRatePerSecond string `toml:"InitialRatePerSecond"`
	TargetUtilisation    string `toml:"TargetUtilisation"`
	AdjustmentSpeed      string `toml:"AdjustmentSpeed"`
	MinRatePerSecond     string `toml:"MinRatePerSecond"`
	MaxRatePerSecond     string `toml:"MaxRatePerSecond"`
}

// MarketConfigFile is the on-disk TOML document a single isolated market is
// configured from, mirroring native/lending.Config's toml-tagged shape
// generalised to the split supply/collateral account model.
type MarketConfigFile struct {
	Curator               string        `toml:"Curator"`
	SupplyMint            MintFile      `toml:"SupplyMint"`
	CollateralMint        MintFile      `toml:"CollateralMint"`
	Ltv                   LtvConfigFile `toml:"Ltv"`
	MaxUtilisationRate    string        `toml:"MaxUtilisationRate"`
	MaxSupplyAtoms        uint64        `toml:"MaxSupplyAtoms"`
	LendingMarketFeeInBps uint64        `toml:"LendingMarketFeeInBps"`
	ProtocolFeeShareInBps uint64        `toml:"ProtocolFeeShareInBps"`
	IndexByte             uint8         `toml:"IndexByte"`
	InterestRateCurve     CurveFile     `toml:"InterestRateCurve"`
}

// GlobalConfigFile is the on-disk TOML document the protocol-wide
// globalconfig.GlobalConfig singleton is seeded from.
type GlobalConfigFile struct {
	Admin                 string `toml:"Admin"`
	FeeReceiver           string `toml:"FeeReceiver"`
	ProtocolFeeShareInBps uint64 `toml:"ProtocolFeeShareInBps"`
}
