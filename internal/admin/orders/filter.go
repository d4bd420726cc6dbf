package orders

import "strings"

// Filter narrows an order list for display. Both predicates compose with
// logical AND; zero values disable the corresponding predicate.
type Filter struct {
	// Keyword is matched case-insensitively as a substring of the order
	// code, the customer display name and every item name.
	Keyword string
	// Status requires exact equality when non-empty.
	Status Status
}

// IsZero reports whether the filter passes every order through.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Keyword) == "" && f.Status == ""
}

// ApplyFilter returns the orders matching the filter. The input is never
// mutated and applying the same filter twice yields the same result.
func ApplyFilter(list []Order, f Filter) []Order {
	keyword := strings.ToLower(strings.TrimSpace(f.Keyword))

	result := make([]Order, 0, len(list))
	for _, o := range list {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if keyword != "" && !matchesKeyword(o, keyword) {
			continue
		}
		result = append(result, o)
	}
	return result
}

func matchesKeyword(o Order, keyword string) bool {
	if strings.Contains(strings.ToLower(o.OrderCode), keyword) {
		return true
	}
	if strings.Contains(strings.ToLower(o.Customer.DisplayName()), keyword) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.Name), keyword) {
			return true
		}
	}
	return false
}
