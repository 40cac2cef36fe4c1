package rpc

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/autara-finance/lending-core/autarapubkey"
)

// Handlers mounts the read-only market query surface onto a chi router,
// the way gateway/routes/lending.go mounts its proxy handlers, but
// serving an in-memory MarketStore directly rather than forwarding to a
// remote gRPC backend.
type Handlers struct {
	store MarketStore
}

// NewHandlers constructs the HTTP surface over store.
func NewHandlers(store MarketStore) *Handlers {
	return &Handlers{store: store}
}

// Mount registers every route under r.
func (h *Handlers) Mount(r chi.Router) {
	r.Get("/markets", h.getAllMarkets)
	r.Get("/markets/{address}", h.getMarket)
	r.Get("/positions/supply/{authority}", h.getUserSupplyPositions)
	r.Get("/positions/borrow/{authority}", h.getUserBorrowPositions)
	r.Get("/balances/{authority}", h.getUserBalances)
}

// marketView is the JSON shape served for a single market. It is a
// deliberately flattened projection of market.Market, not a verbatim
// re-encoding, since the account layout's internal byte packing is not a
// contract the HTTP surface owes its callers.
type marketView struct {
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

func (h *Handlers) getAllMarkets(w http.ResponseWriter, r *http.Request) {
	records := h.store.Markets()
	views := make([]marketView, 0, len(records))
	for _, rec := range records {
		views = append(views, toMarketView(rec))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) getMarket(w http.ResponseWriter, r *http.Request) {
	addr, err := parsePubkeyParam(r, "address")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, ok := h.store.Market(addr)
	if !ok {
		writeError(w, http.StatusNotFound, "market not found")
		return
	}
	writeJSON(w, http.StatusOK, toMarketView(rec))
}

type supplyPositionView struct {
	Address      string `json:"address"`
	Market       string `json:"market"`
	Authority    string `json:"authority"`
	SupplyShares uint64 `json:"supplyShares"`
}

type borrowPositionView struct {
	Address         string `json:"address"`
	Market          string `json:"market"`
	Authority       string `json:"authority"`
	CollateralAtoms uint64 `json:"collateralAtoms"`
	BorrowShares    uint64 `json:"borrowShares"`
}

func (h *Handlers) getUserSupplyPositions(w http.ResponseWriter, r *http.Request) {
	authority, err := parsePubkeyParam(r, "authority")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	records := h.store.SupplyPositionsByAuthority(authority)
	views := make([]supplyPositionView, 0, len(records))
	for _, rec := range records {
		views = append(views, supplyPositionView{
			Address:      rec.Address.String(),
			Market:       rec.Position.Market.String(),
			Authority:    rec.Position.Authority.String(),
			SupplyShares: rec.Position.Shares,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) getUserBorrowPositions(w http.ResponseWriter, r *http.Request) {
	authority, err := parsePubkeyParam(r, "authority")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	records := h.store.BorrowPositionsByAuthority(authority)
	views := make([]borrowPositionView, 0, len(records))
	for _, rec := range records {
		views = append(views, borrowPositionView{
			Address:         rec.Address.String(),
			Market:          rec.Position.Market.String(),
			Authority:       rec.Position.Authority.String(),
			CollateralAtoms: rec.Position.CollateralDepositedAtoms,
			BorrowShares:    rec.Position.BorrowShares,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

// balancesView aggregates a single authority's supply and borrow positions
// across every market it participates in, the combined read GetUserBalances
// exposes so a caller does not need to join the two position endpoints
// itself.
type balancesView struct {
	SupplyPositions []supplyPositionView `json:"supplyPositions"`
	BorrowPositions []borrowPositionView `json:"borrowPositions"`
}

func (h *Handlers) getUserBalances(w http.ResponseWriter, r *http.Request) {
	authority, err := parsePubkeyParam(r, "authority")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	supplyRecords := h.store.SupplyPositionsByAuthority(authority)
	supplyViews := make([]supplyPositionView, 0, len(supplyRecords))
	for _, rec := range supplyRecords {
		supplyViews = append(supplyViews, supplyPositionView{
			Address:      rec.Address.String(),
			Market:       rec.Position.Market.String(),
			Authority:    rec.Position.Authority.String(),
			SupplyShares: rec.Position.Shares,
		})
	}

	borrowRecords := h.store.BorrowPositionsByAuthority(authority)
	borrowViews := make([]borrowPositionView, 0, len(borrowRecords))
	for _, rec := range borrowRecords {
		borrowViews = append(borrowViews, borrowPositionView{
			Address:         rec.Address.String(),
			Market:          rec.Position.Market.String(),
			Authority:       rec.Position.Authority.String(),
			CollateralAtoms: rec.Position.CollateralDepositedAtoms,
			BorrowShares:    rec.Position.BorrowShares,
		})
	}

	writeJSON(w, http.StatusOK, balancesView{SupplyPositions: supplyViews, BorrowPositions: borrowViews})
}

func toMarketView(rec MarketRecord) marketView {
	m := rec.Market
	return marketView{
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

func parsePubkeyParam(r *http.Request, name string) (autarapubkey.Pubkey, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	return autarapubkey.Parse(raw)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
