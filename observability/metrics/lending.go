// Package metrics exposes the lending core's Prometheus instrumentation,
// mirroring the teacher's observability.ModuleMetrics singleton shape
// (sync.Once-guarded registry, prometheus.MustRegister at construction,
// a no-op receiver on a nil pointer so instrumentation is optional at
// every call site) generalised from per-RPC-module request counters to
// per-market lending activity.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// LendingMetrics is the process-wide registry of lending activity
// counters and gauges, labeled by market address and, where meaningful,
// outcome ("ok" or the error's Error() text).
type LendingMetrics struct {
	supplies      *prometheus.CounterVec
	withdrawals   *prometheus.CounterVec
	borrows       *prometheus.CounterVec
	repayments    *prometheus.CounterVec
	liquidations  *prometheus.CounterVec
	donations     *prometheus.CounterVec
	badDebt       *prometheus.CounterVec
	accrualTicks  *prometheus.CounterVec
	sharePrice    *prometheus.GaugeVec
	utilisation   *prometheus.GaugeVec
	borrowRate    *prometheus.GaugeVec
	totalBorrowed *prometheus.GaugeVec
	oracleReject  *prometheus.CounterVec
}

var (
	lendingOnce     sync.Once
	lendingRegistry *LendingMetrics
)

// Lending returns the lazily-initialised lending metrics registry.
func Lending() *LendingMetrics {
	lendingOnce.Do(func() {
		lendingRegistry = &LendingMetrics{
			supplies: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "autara",
				Subsystem: "lending",
				Name:      "supplies_total",
				Help:      "Count of supply deposits by market and outcome.",
			}, []string{"market", "outcome"}),
			withdrawals: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "autara",
				Subsystem: "lending",
				Name:      "withdrawals_total",
				Help:      "Count of supply withdrawals by market and outcome.",
			}, []string{"market", "outcome"}),
			borrows: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "autara",
				Subsystem: "lending",
				Name:      "borrows_total",
				Help:      "Count of borrow draws by market and outcome.",
			}, []string{"market", "outcome"}),
			repayments: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "autara",
				Subsystem: "lending",
				Name:      "repayments_total",
				Help:      "Count of debt repayments by market and outcome.",
			}, []string{"market", "outcome"}),
			liquidations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "autara",
				Subsystem: "lending",
				Name:      "liquidations_total",
				Help:      "Count of liquidations by market and outcome.",
			}, []string{"market", "outcome"}),
			donations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "autara",
				Subsystem: "lending",
				Name:      "donations_total",
				Help:      "Count of supply-vault donations by market and outcome.",
			}, []string{"market", "outcome"}),
			badDebt: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "autara",
				Subsystem: "lending",
				Name:      "bad_debt_socialized_atoms_total",
				Help:      "Cumulative supply-side atoms written off via bad debt socialization, by market.",
			}, []string{"market"}),
			accrualTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "autara",
				Subsystem: "lending",
				Name:      "accrual_ticks_total",
				Help:      "Count of interest accrual advances by market.",
			}, []string{"market"}),
			sharePrice: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "autara",
				Subsystem: "lending",
				Name:      "supply_share_price",
				Help:      "Current supply vault atoms-per-share, by market.",
			}, []string{"market"}),
			utilisation: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "autara",
				Subsystem: "lending",
				Name:      "utilisation_rate",
				Help:      "Current total_borrowed / total_deposited ratio, by market.",
			}, []string{"market"}),
			borrowRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "autara",
				Subsystem: "lending",
				Name:      "borrow_rate_per_second",
				Help:      "Current borrow interest rate per second, by market.",
			}, []string{"market"}),
			totalBorrowed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "autara",
				Subsystem: "lending",
				Name:      "total_borrowed_atoms",
				Help:      "Current total borrowed atoms outstanding, by market.",
			}, []string{"market"}),
			oracleReject: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "autara",
				Subsystem: "lending",
				Name:      "oracle_reject_total",
				Help:      "Count of oracle readings rejected by reason, by market.",
			}, []string{"market", "reason"}),
		}
		prometheus.MustRegister(
			lendingRegistry.supplies,
			lendingRegistry.withdrawals,
			lendingRegistry.borrows,
			lendingRegistry.repayments,
			lendingRegistry.liquidations,
			lendingRegistry.donations,
			lendingRegistry.badDebt,
			lendingRegistry.accrualTicks,
			lendingRegistry.sharePrice,
			lendingRegistry.utilisation,
			lendingRegistry.borrowRate,
			lendingRegistry.totalBorrowed,
			lendingRegistry.oracleReject,
		)
	})
	return lendingRegistry
}

// outcomeLabel renders a nil error as "ok", otherwise its Error() text.
func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}

func (m *LendingMetrics) ObserveSupply(market string, err error) {
	if m == nil {
		return
	}
	m.supplies.WithLabelValues(market, outcomeLabel(err)).Inc()
}

func (m *LendingMetrics) ObserveWithdrawal(market string, err error) {
	if m == nil {
		return
	}
	m.withdrawals.WithLabelValues(market, outcomeLabel(err)).Inc()
}

func (m *LendingMetrics) ObserveBorrow(market string, err error) {
	if m == nil {
		return
	}
	m.borrows.WithLabelValues(market, outcomeLabel(err)).Inc()
}

func (m *LendingMetrics) ObserveRepayment(market string, err error) {
	if m == nil {
		return
	}
	m.repayments.WithLabelValues(market, outcomeLabel(err)).Inc()
}

func (m *LendingMetrics) ObserveLiquidation(market string, err error) {
	if m == nil {
		return
	}
	m.liquidations.WithLabelValues(market, outcomeLabel(err)).Inc()
}

func (m *LendingMetrics) ObserveDonation(market string, err error) {
	if m == nil {
		return
	}
	m.donations.WithLabelValues(market, outcomeLabel(err)).Inc()
}

// IncBadDebtSocialized records atoms written off a market's supply side
// during a socialize-loss event.
func (m *LendingMetrics) IncBadDebtSocialized(market string, atoms uint64) {
	if m == nil {
		return
	}
	m.badDebt.WithLabelValues(market).Add(float64(atoms))
}

func (m *LendingMetrics) IncAccrualTick(market string) {
	if m == nil {
		return
	}
	m.accrualTicks.WithLabelValues(market).Inc()
}

func (m *LendingMetrics) SetSupplySharePrice(market string, atomsPerShare float64) {
	if m == nil {
		return
	}
	m.sharePrice.WithLabelValues(market).Set(atomsPerShare)
}

func (m *LendingMetrics) SetUtilisationRate(market string, rate float64) {
	if m == nil {
		return
	}
	m.utilisation.WithLabelValues(market).Set(rate)
}

func (m *LendingMetrics) SetBorrowRatePerSecond(market string, rate float64) {
	if m == nil {
		return
	}
	m.borrowRate.WithLabelValues(market).Set(rate)
}

func (m *LendingMetrics) SetTotalBorrowedAtoms(market string, atoms uint64) {
	if m == nil {
		return
	}
	m.totalBorrowed.WithLabelValues(market).Set(float64(atoms))
}

// IncOracleReject records a rejected oracle reading, reason mirroring the
// lendingerr code that the oracle adapter returned.
func (m *LendingMetrics) IncOracleReject(market, reason string) {
	if m == nil {
		return
	}
	m.oracleReject.WithLabelValues(market, reason).Inc()
}
