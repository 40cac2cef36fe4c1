// Command autarad is a thin, read-only inspector for a single isolated
// lending market: it decodes a persisted Market account and an optional
// global config file and prints their current state. It has no write
// path and no subcommands — a caller migrating from the original
// program's richer CLI gets exactly the "print market state" verb this
// market core needs, the way services/lending's env-configured main
// never grew beyond the single daemon it runs.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/autara-finance/lending-core/config"
	"github.com/autara-finance/lending-core/lendingstate"
	"github.com/autara-finance/lending-core/market"
	"github.com/autara-finance/lending-core/observability/logging"
)

func main() {
	cfg := loadConfigFromEnv()
	logger := newLogger(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err, "config", cfg.Sanitized())
		os.Exit(1)
	}

	m, err := readMarket(cfg.MarketAccountPath)
	if err != nil {
		logger.Error("read market account", "path", cfg.MarketAccountPath, "error", err)
		os.Exit(1)
	}

	utilisation, err := m.Utilisation()
	if err != nil {
		logger.Error("compute utilisation", "error", err)
		os.Exit(1)
	}

	fmt.Printf("curator:                 %s\n", m.Config.Curator)
	fmt.Printf("supply mint:             %s (decimals %d)\n", m.Config.SupplyMint.Mint, m.Config.SupplyMint.Decimals)
	fmt.Printf("collateral mint:         %s (decimals %d)\n", m.Config.CollateralMint.Mint, m.Config.CollateralMint.Decimals)
	fmt.Printf("max ltv bps:             %d\n", m.Config.Ltv.MaxLtvBps)
	fmt.Printf("liquidation ltv bps:     %d\n", m.Config.Ltv.LiquidationLtvBps)
	fmt.Printf("total deposited atoms:   %d\n", m.Supply.TotalDepositedAtoms)
	fmt.Printf("total supply shares:     %d\n", m.Supply.TotalShares)
	fmt.Printf("total collateral atoms:  %d\n", m.Collateral.TotalDepositedAtoms)
	fmt.Printf("total borrowed atoms:    %d\n", m.Borrow.TotalBorrowedAtoms)
	fmt.Printf("total borrow shares:     %d\n", m.Borrow.TotalBorrowShares)
	fmt.Printf("utilisation rate:        %s\n", utilisation)
	fmt.Printf("free liquidity atoms:    %d\n", m.FreeLiquidityAtoms())
	fmt.Printf("interest rate curve:     %s\n", m.Borrow.InterestRateCurve.Kind)

	if cfg.GlobalConfigPath != "" {
		globalFile, err := config.LoadGlobalConfig(cfg.GlobalConfigPath)
		if err != nil {
			logger.Error("read global config", "path", cfg.GlobalConfigPath, "error", err)
			os.Exit(1)
		}
		global, err := globalFile.ToGlobalConfig()
		if err != nil {
			logger.Error("parse global config", "path", cfg.GlobalConfigPath, "error", err)
			os.Exit(1)
		}
		fmt.Printf("global admin:            %s\n", global.Admin)
		fmt.Printf("global fee receiver:     %s\n", global.FeeReceiver)
		fmt.Printf("global protocol fee bps: %d\n", global.ProtocolFeeShareInBps)
	}
}

func newLogger(format string) *slog.Logger {
	return logging.Setup("autarad", "", format)
}

func readMarket(path string) (*market.Market, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open market account: %w", err)
	}
	if len(raw) != lendingstate.MarketSize {
		return nil, fmt.Errorf("market account is %d bytes, expected %d", len(raw), lendingstate.MarketSize)
	}
	var bytes lendingstate.MarketBytes
	copy(bytes[:], raw)
	return lendingstate.DecodeMarket(bytes)
}
