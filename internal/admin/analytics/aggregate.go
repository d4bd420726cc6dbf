package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"aozone.vn/shop-admin/internal/admin/catalog"
	"aozone.vn/shop-admin/internal/admin/customers"
	"aozone.vn/shop-admin/internal/admin/orders"
)

// DefaultTopN is the ranking size used by the dashboard.
const DefaultTopN = 5

// BestSeller is a product ranked by cumulative units sold.
type BestSeller struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Sales     int    `json:"sales"`
}

// TopSpender is a customer ranked by cumulative spend on delivered orders.
type TopSpender struct {
	CustomerID string          `json:"customerId"`
	Name       string          `json:"name"`
	Avatar     string          `json:"avatar,omitempty"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
	OrderCount int             `json:"orderCount"`
}

// StatusCount is one bucket of the status distribution.
type StatusCount struct {
	Status orders.Status `json:"status"`
	Label  string        `json:"label"`
	Count  int           `json:"count"`
}

// BestSellers projects the product reference set onto a ranking of the n
// most sold products. The sort is stable: products with equal sales keep
// their input order.
func BestSellers(products []catalog.Product, n int) []BestSeller {
	ranked := make([]BestSeller, 0, len(products))
	for _, p := range products {
		ranked = append(ranked, BestSeller{ProductID: p.ID, Name: p.Name, Sales: p.Sold})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Sales > ranked[j].Sales
	})
	return top(ranked, n)
}

// TopSpenders folds all delivered orders into per-customer spend and order
// counts, joins the result onto the customer reference set and returns the n
// biggest spenders. Customers without a delivered order are excluded even
// when present in the reference set. Ties keep reference-set order.
func TopSpenders(history []orders.Order, accounts []customers.Customer, n int) []TopSpender {
	type accum struct {
		total decimal.Decimal
		count int
	}
	spend := make(map[string]accum, len(accounts))
	for _, o := range history {
		if o.Status != orders.StatusDelivered {
			continue
		}
		id := o.Customer.CustomerID()
		if id == "" {
			continue
		}
		a := spend[id]
		a.total = a.total.Add(o.FinalTotal)
		a.count++
		spend[id] = a
	}

	ranked := make([]TopSpender, 0, len(accounts))
	for _, c := range accounts {
		a := spend[c.ID]
		if a.count == 0 || a.total.IsZero() {
			continue
		}
		ranked = append(ranked, TopSpender{
			CustomerID: c.ID,
			Name:       c.Name,
			Avatar:     c.Avatar,
			TotalSpent: a.total,
			OrderCount: a.count,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalSpent.GreaterThan(ranked[j].TotalSpent)
	})
	return top(ranked, n)
}

// RevenueBetween sums the final totals of delivered orders created within
// the inclusive day-level window [from, to]. The bounds are widened to
// start-of-day and end-of-day in from's location, so an order at 23:59 on
// the last day still counts.
func RevenueBetween(history []orders.Order, from, to time.Time) decimal.Decimal {
	start := startOfDay(from)
	end := startOfDay(to).AddDate(0, 0, 1)

	total := decimal.Zero
	for _, o := range history {
		if o.Status != orders.StatusDelivered {
			continue
		}
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}
		total = total.Add(o.FinalTotal)
	}
	return total
}

// DefaultRevenueRange returns the window used when the operator picks no
// explicit range: the start of the current calendar month through now.
func DefaultRevenueRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, now
}

// MonthToDateRevenue sums delivered-order totals from the start of the
// current calendar month through now. Unlike RevenueBetween the upper bound
// is not widened to end of day, so records future-dated later today do not
// count.
func MonthToDateRevenue(history []orders.Order, now time.Time) decimal.Decimal {
	start, _ := DefaultRevenueRange(now)

	total := decimal.Zero
	for _, o := range history {
		if o.Status != orders.StatusDelivered {
			continue
		}
		if o.CreatedAt.Before(start) || o.CreatedAt.After(now) {
			continue
		}
		total = total.Add(o.FinalTotal)
	}
	return total
}

// UnitsSoldToday sums the item quantities of delivered orders created during
// the current calendar day.
func UnitsSoldToday(history []orders.Order, now time.Time) int {
	start := startOfDay(now)
	end := start.AddDate(0, 0, 1)

	units := 0
	for _, o := range history {
		if o.Status != orders.StatusDelivered {
			continue
		}
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}
		for _, item := range o.Items {
			units += item.Quantity
		}
	}
	return units
}

// StatusDistribution counts orders per canonical status, in workflow order.
func StatusDistribution(history []orders.Order) []StatusCount {
	counts := map[orders.Status]int{}
	for _, o := range history {
		counts[o.Status]++
	}

	all := []orders.Status{
		orders.StatusWaiting,
		orders.StatusConfirmed,
		orders.StatusShipped,
		orders.StatusDelivered,
		orders.StatusCancelled,
		orders.StatusReturned,
	}
	result := make([]StatusCount, 0, len(all))
	for _, st := range all {
		result = append(result, StatusCount{Status: st, Label: orders.StatusLabel(st), Count: counts[st]})
	}
	return result
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func top[T any](ranked []T, n int) []T {
	if n <= 0 {
		n = DefaultTopN
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
