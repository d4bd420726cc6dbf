package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"aozone.vn/shop-admin/internal/admin/analytics"
	"aozone.vn/shop-admin/internal/admin/catalog"
	"aozone.vn/shop-admin/internal/admin/customers"
	"aozone.vn/shop-admin/internal/admin/orders"
)

func delivered(id, customerID string, total int64, createdAt time.Time) orders.Order {
	return orders.Order{
		ID:         id,
		Customer:   orders.Customer{ID: customerID},
		FinalTotal: decimal.NewFromInt(total),
		Status:     orders.StatusDelivered,
		CreatedAt:  createdAt,
	}
}

func TestBestSellersRanksBySoldDescending(t *testing.T) {
	t.Parallel()

	products := []catalog.Product{
		{ID: "X", Name: "X", Sold: 10},
		{ID: "Y", Name: "Y", Sold: 40},
		{ID: "Z", Name: "Z", Sold: 25},
	}

	got := analytics.BestSellers(products, 5)
	require.Equal(t, []string{"Y", "Z", "X"}, bestSellerIDs(got))
	require.Equal(t, 40, got[0].Sales)
}

func TestBestSellersStableTies(t *testing.T) {
	t.Parallel()

	products := []catalog.Product{
		{ID: "X", Name: "X", Sold: 50},
		{ID: "Y", Name: "Y", Sold: 30},
		{ID: "Z", Name: "Z", Sold: 30},
	}

	got := analytics.BestSellers(products, 5)
	// Y precedes Z on ties because it comes first in the reference set.
	require.Equal(t, []string{"X", "Y", "Z"}, bestSellerIDs(got))
}

func TestBestSellersTruncatesToN(t *testing.T) {
	t.Parallel()

	products := make([]catalog.Product, 0, 8)
	for i := 0; i < 8; i++ {
		products = append(products, catalog.Product{ID: string(rune('a' + i)), Sold: i})
	}

	got := analytics.BestSellers(products, 5)
	require.Len(t, got, 5)
	require.Equal(t, 7, got[0].Sales)
}

func TestTopSpendersCountsDeliveredOnly(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	history := []orders.Order{
		delivered("1", "U1", 100, base),
		delivered("2", "U1", 200, base),
		delivered("3", "U2", 50, base),
		{ID: "4", Customer: orders.Customer{ID: "U1"}, FinalTotal: decimal.NewFromInt(999), Status: orders.StatusCancelled, CreatedAt: base},
		{ID: "5", Customer: orders.Customer{ID: "U3"}, FinalTotal: decimal.NewFromInt(500), Status: orders.StatusWaiting, CreatedAt: base},
	}
	accounts := []customers.Customer{
		{ID: "U1", Name: "Một"},
		{ID: "U2", Name: "Hai"},
		{ID: "U3", Name: "Ba"},
	}

	got := analytics.TopSpenders(history, accounts, 5)
	require.Len(t, got, 2)

	require.Equal(t, "U1", got[0].CustomerID)
	require.Equal(t, "300", got[0].TotalSpent.String())
	require.Equal(t, 2, got[0].OrderCount)

	require.Equal(t, "U2", got[1].CustomerID)
	require.Equal(t, "50", got[1].TotalSpent.String())
	require.Equal(t, 1, got[1].OrderCount)
}

func TestTopSpendersExcludesCustomersWithoutSpend(t *testing.T) {
	t.Parallel()

	accounts := []customers.Customer{{ID: "U1", Name: "Một"}}
	got := analytics.TopSpenders(nil, accounts, 5)
	require.Empty(t, got)
}

func TestTopSpendersSkipsUnresolvedCustomerRefs(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	history := []orders.Order{
		delivered("1", "", 100, base),
		delivered("2", "U1", 200, base),
	}
	accounts := []customers.Customer{{ID: "U1", Name: "Một"}}

	got := analytics.TopSpenders(history, accounts, 5)
	require.Len(t, got, 1)
	require.Equal(t, "200", got[0].TotalSpent.String())
}

func TestTopSpendersStableTiesKeepReferenceOrder(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	history := []orders.Order{
		delivered("1", "U2", 100, base),
		delivered("2", "U1", 100, base),
	}
	accounts := []customers.Customer{
		{ID: "U1", Name: "Một"},
		{ID: "U2", Name: "Hai"},
	}

	got := analytics.TopSpenders(history, accounts, 5)
	require.Equal(t, "U1", got[0].CustomerID)
	require.Equal(t, "U2", got[1].CustomerID)
}

func TestRevenueBetweenInclusiveDayWindow(t *testing.T) {
	t.Parallel()

	loc := time.UTC
	history := []orders.Order{
		delivered("1", "U1", 100, time.Date(2025, 6, 1, 0, 0, 0, 0, loc)),
		delivered("2", "U1", 200, time.Date(2025, 6, 15, 23, 59, 0, 0, loc)),
		delivered("3", "U1", 400, time.Date(2025, 6, 16, 0, 0, 0, 0, loc)),
		delivered("4", "U1", 800, time.Date(2025, 5, 31, 23, 59, 59, 0, loc)),
	}

	from := time.Date(2025, 6, 1, 10, 30, 0, 0, loc)
	to := time.Date(2025, 6, 15, 8, 0, 0, 0, loc)

	// The bounds widen to whole days: order 2 at 23:59 on the last day is
	// in, order 3 on the next day and order 4 before the first day are out.
	require.Equal(t, "300", analytics.RevenueBetween(history, from, to).String())
}

func TestRevenueBetweenIgnoresNonDelivered(t *testing.T) {
	t.Parallel()

	loc := time.UTC
	at := time.Date(2025, 6, 10, 12, 0, 0, 0, loc)
	history := []orders.Order{
		delivered("1", "U1", 100, at),
		{ID: "2", FinalTotal: decimal.NewFromInt(999), Status: orders.StatusShipped, CreatedAt: at},
		{ID: "3", FinalTotal: decimal.NewFromInt(999), Status: orders.StatusCancelled, CreatedAt: at},
	}

	got := analytics.RevenueBetween(history, at, at)
	require.Equal(t, "100", got.String())
}

func TestMonthToDateRevenueStopsAtNow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)
	history := []orders.Order{
		delivered("1", "U1", 100, time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)),
		delivered("2", "U1", 200, now),
		// Later today: outside the window.
		delivered("3", "U1", 400, time.Date(2025, 6, 18, 16, 0, 0, 0, time.UTC)),
		// Previous month.
		delivered("4", "U1", 800, time.Date(2025, 5, 31, 23, 0, 0, 0, time.UTC)),
	}

	require.Equal(t, "300", analytics.MonthToDateRevenue(history, now).String())
}

func TestDefaultRevenueRangeIsMonthToDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 18, 15, 4, 5, 0, time.UTC)
	from, to := analytics.DefaultRevenueRange(now)
	require.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), from)
	require.Equal(t, now, to)
}

func TestUnitsSoldToday(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)

	today := delivered("1", "U1", 100, time.Date(2025, 6, 18, 1, 0, 0, 0, time.UTC))
	today.Items = []orders.Item{{Quantity: 2}, {Quantity: 3}}

	yesterday := delivered("2", "U1", 100, time.Date(2025, 6, 17, 23, 0, 0, 0, time.UTC))
	yesterday.Items = []orders.Item{{Quantity: 7}}

	pending := orders.Order{ID: "3", Status: orders.StatusWaiting, CreatedAt: now, Items: []orders.Item{{Quantity: 5}}}

	got := analytics.UnitsSoldToday([]orders.Order{today, yesterday, pending}, now)
	require.Equal(t, 5, got)
}

func TestStatusDistributionCoversAllStatuses(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	history := []orders.Order{
		{ID: "1", Status: orders.StatusWaiting, CreatedAt: base},
		{ID: "2", Status: orders.StatusWaiting, CreatedAt: base},
		{ID: "3", Status: orders.StatusDelivered, CreatedAt: base},
	}

	got := analytics.StatusDistribution(history)
	require.Len(t, got, 6)

	byStatus := map[orders.Status]analytics.StatusCount{}
	for _, c := range got {
		byStatus[c.Status] = c
	}
	require.Equal(t, 2, byStatus[orders.StatusWaiting].Count)
	require.Equal(t, 1, byStatus[orders.StatusDelivered].Count)
	require.Equal(t, 0, byStatus[orders.StatusCancelled].Count)
	require.Equal(t, "Chờ xác nhận", byStatus[orders.StatusWaiting].Label)
}

func bestSellerIDs(list []analytics.BestSeller) []string {
	ids := make([]string, 0, len(list))
	for _, b := range list {
		ids = append(ids, b.ProductID)
	}
	return ids
}
