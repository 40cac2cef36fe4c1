package rpc

import (
	"context"
	"log/slog"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/autara-finance/lending-core/autarapubkey"
	"github.com/autara-finance/lending-core/rpc/lendingpb"
)

// GRPCServer implements lendingpb.LendingSnapshotServer over a
// MarketStore, the gRPC analogue of Handlers for callers that want a
// typed client instead of raw JSON over HTTP.
type GRPCServer struct {
	lendingpb.UnimplementedLendingSnapshotServer

	store  MarketStore
	logger *slog.Logger
}

// NewGRPCServer constructs the snapshot service over store.
func NewGRPCServer(store MarketStore, logger *slog.Logger) *GRPCServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &GRPCServer{store: store, logger: logger}
}

func (s *GRPCServer) GetAllMarkets(ctx context.Context, _ *lendingpb.GetAllMarketsRequest) (*lendingpb.GetAllMarketsResponse, error) {
	records := s.store.Markets()
	out := make([]lendingpb.MarketSnapshot, 0, len(records))
	for _, rec := range records {
		out = append(out, toMarketSnapshot(rec))
	}
	return &lendingpb.GetAllMarketsResponse{Markets: out}, nil
}

func (s *GRPCServer) GetUserPositions(ctx context.Context, req *lendingpb.GetUserPositionsRequest) (*lendingpb.GetUserPositionsResponse, error) {
	authority, err := parseAuthority(req.GetAuthority())
	if err != nil {
		return nil, err
	}
	supply, borrow := s.positionSnapshots(authority)
	return &lendingpb.GetUserPositionsResponse{SupplyPositions: supply, BorrowPositions: borrow}, nil
}

func (s *GRPCServer) GetUserBalances(ctx context.Context, req *lendingpb.GetUserBalancesRequest) (*lendingpb.GetUserBalancesResponse, error) {
	authority, err := parseAuthority(req.GetAuthority())
	if err != nil {
		return nil, err
	}
	supply, borrow := s.positionSnapshots(authority)
	return &lendingpb.GetUserBalancesResponse{SupplyPositions: supply, BorrowPositions: borrow}, nil
}

func (s *GRPCServer) positionSnapshots(authority autarapubkey.Pubkey) ([]lendingpb.SupplyPositionSnapshot, []lendingpb.BorrowPositionSnapshot) {
	supplyRecords := s.store.SupplyPositionsByAuthority(authority)
	supply := make([]lendingpb.SupplyPositionSnapshot, 0, len(supplyRecords))
	for _, rec := range supplyRecords {
		supply = append(supply, lendingpb.SupplyPositionSnapshot{
			Address:      rec.Address.String(),
			Market:       rec.Position.Market.String(),
			Authority:    rec.Position.Authority.String(),
			SupplyShares: rec.Position.Shares,
		})
	}

	borrowRecords := s.store.BorrowPositionsByAuthority(authority)
	borrow := make([]lendingpb.BorrowPositionSnapshot, 0, len(borrowRecords))
	for _, rec := range borrowRecords {
		borrow = append(borrow, lendingpb.BorrowPositionSnapshot{
			Address:         rec.Address.String(),
			Market:          rec.Position.Market.String(),
			Authority:       rec.Position.Authority.String(),
			CollateralAtoms: rec.Position.CollateralDepositedAtoms,
			BorrowShares:    rec.Position.BorrowShares,
		})
	}
	return supply, borrow
}

func toMarketSnapshot(rec MarketRecord) lendingpb.MarketSnapshot {
	m := rec.Market
	return lendingpb.MarketSnapshot{
		Address:              rec.Address.String(),
		Curator:              m.Config.Curator.String(),
		SupplyMint:           m.Config.SupplyMint.Mint.String(),
		CollateralMint:       m.Config.CollateralMint.Mint.String(),
		MaxLtvBps:            m.Config.Ltv.MaxLtvBps,
		LiquidationLtvBps:    m.Config.Ltv.LiquidationLtvBps,
		TotalDepositedAtoms:  m.Supply.TotalDepositedAtoms,
		TotalSupplyShares:    m.Supply.TotalShares,
		TotalCollateralAtoms: m.Collateral.TotalDepositedAtoms,
		TotalBorrowedAtoms:   m.Borrow.TotalBorrowedAtoms,
		TotalBorrowShares:    m.Borrow.TotalBorrowShares,
		FreeLiquidityAtoms:   m.FreeLiquidityAtoms(),
		CurveKind:            m.Borrow.InterestRateCurve.Kind.String(),
	}
}

func parseAuthority(raw string) (autarapubkey.Pubkey, error) {
	pk, err := autarapubkey.Parse(strings.TrimSpace(raw))
	if err != nil {
		return autarapubkey.Pubkey{}, status.Error(codes.InvalidArgument, err.Error())
	}
	return pk, nil
}
