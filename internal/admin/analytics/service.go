package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"aozone.vn/shop-admin/internal/admin/catalog"
	"aozone.vn/shop-admin/internal/admin/customers"
	"aozone.vn/shop-admin/internal/admin/orders"
)

// Service exposes the derived sales metrics shown on the dashboard.
type Service interface {
	// BestSellers ranks products by cumulative units sold.
	BestSellers(ctx context.Context, token string) ([]BestSeller, error)
	// TopSpenders ranks customers by spend on delivered orders.
	TopSpenders(ctx context.Context, token string) ([]TopSpender, error)
	// Revenue sums delivered-order totals in the inclusive [from, to]
	// day window. Zero bounds select the default month-to-date window.
	Revenue(ctx context.Context, token string, from, to time.Time) (RevenueReport, error)
	// Overview returns the dashboard summary.
	Overview(ctx context.Context, token string) (Overview, error)
}

// RevenueReport carries a revenue total together with the window it covers.
type RevenueReport struct {
	From    time.Time       `json:"from"`
	To      time.Time       `json:"to"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Overview aggregates the dashboard's stat cards.
type Overview struct {
	TotalOrders        int             `json:"totalOrders"`
	Revenue            decimal.Decimal `json:"revenue"`
	UnitsSoldToday     int             `json:"unitsSoldToday"`
	StatusDistribution []StatusCount   `json:"statusDistribution"`
}

// Snapshotter is the read side of the order store.
type Snapshotter interface {
	Snapshot() []orders.Order
}

// Aggregator implements Service over the order store and the read-only
// product/customer reference services. Every metric is recomputed from
// scratch on each call; nothing is cached or incrementally maintained.
type Aggregator struct {
	store     Snapshotter
	catalog   catalog.Service
	customers customers.Service
	logger    *zap.SugaredLogger
	now       func() time.Time
}

// NewAggregator wires an Aggregator. The clock is injectable for tests.
func NewAggregator(store Snapshotter, cat catalog.Service, cust customers.Service, logger *zap.SugaredLogger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Aggregator{
		store:     store,
		catalog:   cat,
		customers: cust,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the aggregator's clock. Intended for tests.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// BestSellers implements Service. A failed product fetch degrades to an
// empty ranking: the dashboard renders without the card's data and the
// operator retries by reloading.
func (a *Aggregator) BestSellers(ctx context.Context, token string) ([]BestSeller, error) {
	products, err := a.catalog.List(ctx, token)
	if err != nil {
		a.logger.Errorw("product reference load failed", "error", err)
		products = nil
	}
	return BestSellers(products, DefaultTopN), nil
}

// TopSpenders implements Service, with the same fail-soft behavior for the
// customer reference set.
func (a *Aggregator) TopSpenders(ctx context.Context, token string) ([]TopSpender, error) {
	accounts, err := a.customers.List(ctx, token)
	if err != nil {
		a.logger.Errorw("customer reference load failed", "error", err)
		accounts = nil
	}
	return TopSpenders(a.store.Snapshot(), accounts, DefaultTopN), nil
}

// Revenue implements Service. An explicit window is widened to whole days;
// the default month-to-date window runs through now exactly.
func (a *Aggregator) Revenue(_ context.Context, _ string, from, to time.Time) (RevenueReport, error) {
	if from.IsZero() || to.IsZero() {
		now := a.now()
		from, to = DefaultRevenueRange(now)
		return RevenueReport{
			From:    from,
			To:      to,
			Revenue: MonthToDateRevenue(a.store.Snapshot(), now),
		}, nil
	}
	return RevenueReport{
		From:    from,
		To:      to,
		Revenue: RevenueBetween(a.store.Snapshot(), from, to),
	}, nil
}

// Overview implements Service.
func (a *Aggregator) Overview(_ context.Context, _ string) (Overview, error) {
	history := a.store.Snapshot()
	now := a.now()

	return Overview{
		TotalOrders:        len(history),
		Revenue:            MonthToDateRevenue(history, now),
		UnitsSoldToday:     UnitsSoldToday(history, now),
		StatusDistribution: StatusDistribution(history),
	}, nil
}
