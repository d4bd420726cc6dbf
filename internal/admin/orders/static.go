package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StaticService provides deterministic order data suitable for local
// development and tests. UpdateStatus is applied to the in-memory records so
// a following List reflects the change, mimicking the backend.
type StaticService struct {
	// ListErr and UpdateErr, when set, are returned by the corresponding
	// call to exercise failure paths.
	ListErr   error
	UpdateErr error

	orders []Order
}

// NewStaticService returns a StaticService populated with representative
// orders across the whole lifecycle.
func NewStaticService() *StaticService {
	now := time.Now()
	vnd := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

	orders := []Order{
		{
			ID:        "OD01",
			OrderCode: "OD01",
			Customer:  Customer{ID: "user-01", Name: "Đặng Tuấn Ngọc", Email: "ngocdt@example.com", Embedded: true},
			Items: []Item{
				{ProductID: "sp-101", Name: "Áo thể thao Nike", Size: "L", Color: "Đen", UnitPrice: vnd(120000), Quantity: 1},
			},
			ShippingAddress: "1 Cầu Cốc, NTL, Hà Nội",
			PaymentMethod:   "COD",
			ShippingFee:     vnd(20000),
			FinalTotal:      vnd(140000),
			Status:          StatusWaiting,
			CreatedAt:       now.Add(-2 * time.Hour),
		},
		{
			ID:        "OD02",
			OrderCode: "OD02",
			Customer:  Customer{ID: "user-02", Name: "Trần Xuân Ánh", Email: "anhtx@example.com", Embedded: true},
			Items: []Item{
				{ProductID: "sp-205", Name: "Áo Polo Lacoste nam", Size: "M", Color: "Trắng", UnitPrice: vnd(1200000), Quantity: 2},
			},
			ShippingAddress: "45 Nguyễn Huệ, Q.3, TP.HCM",
			PaymentMethod:   "Chuyển khoản",
			ShippingFee:     vnd(0),
			FinalTotal:      vnd(2400000),
			Status:          StatusConfirmed,
			CreatedAt:       now.Add(-8 * time.Hour),
		},
		{
			ID:        "OD03",
			OrderCode: "OD03",
			// Bare identifier: the backend did not populate the customer.
			Customer: Customer{ID: "user-03"},
			Items: []Item{
				{ProductID: "sp-330", Name: "Áo khoác thể thao Puma", Size: "XL", Color: "Xám", UnitPrice: vnd(850000), Quantity: 1},
			},
			ShippingAddress: "12 Trần Hưng Đạo, Q.5, TP.HCM",
			PaymentMethod:   "COD",
			ShippingFee:     vnd(30000),
			FinalTotal:      vnd(880000),
			Status:          StatusShipped,
			CreatedAt:       now.Add(-30 * time.Hour),
		},
		{
			ID:        "OD05",
			OrderCode: "OD05",
			Customer:  Customer{ID: "user-04", Name: "Phạm Thị D", Email: "dpt@example.com", Embedded: true},
			Items: []Item{
				{ProductID: "sp-410", Name: "Áo sơ mi Uniqlo", Size: "S", Color: "Xanh", UnitPrice: vnd(180000), Quantity: 1},
			},
			ShippingAddress: "88 Lý Thường Kiệt, Q.10, TP.HCM",
			PaymentMethod:   "COD",
			ShippingFee:     vnd(25000),
			FinalTotal:      vnd(205000),
			Status:          StatusCancelled,
			CreatedAt:       now.Add(-3 * 24 * time.Hour),
		},
		{
			ID:        "ORD005",
			OrderCode: "ORD005",
			Customer:  Customer{ID: "user-05", Name: "Lê Văn Hưu", Email: "huulv@example.com", Embedded: true},
			Items: []Item{
				{ProductID: "sp-520", Name: "Áo len H&M cổ tròn", Size: "M", Color: "Be", UnitPrice: vnd(425000), Quantity: 2},
			},
			ShippingAddress: "12 Trần Hưng Đạo, Q.6, TP.HCM",
			PaymentMethod:   "Chuyển khoản",
			Voucher:         &Voucher{Code: "HE2024", DiscountAmount: vnd(50000)},
			ShippingFee:     vnd(20000),
			FinalTotal:      vnd(820000),
			Status:          StatusDelivered,
			CreatedAt:       now.Add(-5 * 24 * time.Hour),
		},
		{
			ID:        "ORD006",
			OrderCode: "ORD006",
			Customer:  Customer{ID: "user-02", Name: "Trần Xuân Ánh", Email: "anhtx@example.com", Embedded: true},
			Items: []Item{
				{ProductID: "sp-101", Name: "Áo thể thao Nike", Size: "M", Color: "Đỏ", UnitPrice: vnd(120000), Quantity: 3},
			},
			ShippingAddress: "45 Nguyễn Huệ, Q.3, TP.HCM",
			PaymentMethod:   "COD",
			ShippingFee:     vnd(20000),
			FinalTotal:      vnd(380000),
			Status:          StatusDelivered,
			CreatedAt:       now.Add(-26 * time.Hour),
		},
	}

	return &StaticService{orders: orders}
}

// List implements Service.
func (s *StaticService) List(_ context.Context, _ string) ([]Order, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return append([]Order(nil), s.orders...), nil
}

// UpdateStatus implements Service.
func (s *StaticService) UpdateStatus(_ context.Context, _ string, orderID string, status Status) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			return nil
		}
	}
	return ErrOrderNotFound
}
