// Package lendingpb defines the minimal gRPC snapshot service used to
// query market, supply position, and borrow position state. There is no
// protoc-generated .pb.go here: the wire messages are plain Go structs
// carried over gRPC's custom-codec extension point (codec.go) instead of
// real protobuf encoding, the way a hand-maintained service can still sit
// on top of google.golang.org/grpc without a protobuf compiler in the
// build. See DESIGN.md for why google.golang.org/protobuf itself is not
// used here.
package lendingpb

// MarketSnapshot is the wire shape of a single market's current state.
type MarketSnapshot struct {
	Address              string `json:"address"`
	Curator              string `json:"curator"`
	SupplyMint           string `json:"supplyMint"`
	CollateralMint       string `json:"collateralMint"`
	MaxLtvBps            uint64 `json:"maxLtvBps"`
	LiquidationLtvBps    uint64 `json:"liquidationLtvBps"`
	TotalDepositedAtoms  uint64 `json:"totalDepositedAtoms"`
	TotalSupplyShares    uint64 `json:"totalSupplyShares"`
	TotalCollateralAtoms uint64 `json:"totalCollateralAtoms"`
	TotalBorrowedAtoms   uint64 `json:"totalBorrowedAtoms"`
	TotalBorrowShares    uint64 `json:"totalBorrowShares"`
	FreeLiquidityAtoms   uint64 `json:"freeLiquidityAtoms"`
	CurveKind            string `json:"curveKind"`
}

// SupplyPositionSnapshot is the wire shape of a single supply position.
type SupplyPositionSnapshot struct {
	Address      string `json:"address"`
	Market       string `json:"market"`
	Authority    string `json:"authority"`
	SupplyShares uint64 `json:"supplyShares"`
}

// BorrowPositionSnapshot is the wire shape of a single borrow position.
type BorrowPositionSnapshot struct {
	Address         string `json:"address"`
	Market          string `json:"market"`
	Authority       string `json:"authority"`
	CollateralAtoms uint64 `json:"collateralAtoms"`
	BorrowShares    uint64 `json:"borrowShares"`
}

// GetAllMarketsRequest takes no arguments; every known market is returned.
type GetAllMarketsRequest struct{}

// GetAllMarketsResponse carries every known market.
type GetAllMarketsResponse struct {
	Markets []MarketSnapshot `json:"markets"`
}

// GetUserPositionsRequest selects an authority's positions.
type GetUserPositionsRequest struct {
	Authority string `json:"authority"`
}

// GetAuthority returns req.Authority, or "" for a nil request, the same
// nil-safe getter idiom protoc-gen-go produces for every message field.
func (req *GetUserPositionsRequest) GetAuthority() string {
	if req == nil {
		return ""
	}
	return req.Authority
}

// GetUserPositionsResponse carries an authority's supply and borrow
// positions across every market it participates in.
type GetUserPositionsResponse struct {
	SupplyPositions []SupplyPositionSnapshot `json:"supplyPositions"`
	BorrowPositions []BorrowPositionSnapshot `json:"borrowPositions"`
}

// GetUserBalancesRequest selects an authority's aggregate balances.
type GetUserBalancesRequest struct {
	Authority string `json:"authority"`
}

// GetAuthority returns req.Authority, or "" for a nil request.
func (req *GetUserBalancesRequest) GetAuthority() string {
	if req == nil {
		return ""
	}
	return req.Authority
}

// GetUserBalancesResponse mirrors GetUserPositionsResponse: balances are
// derived directly from the positions, with no separate aggregation
// state to query.
type GetUserBalancesResponse struct {
	SupplyPositions []SupplyPositionSnapshot `json:"supplyPositions"`
	BorrowPositions []BorrowPositionSnapshot `json:"borrowPositions"`
}
