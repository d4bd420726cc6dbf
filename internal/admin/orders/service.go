package orders

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Service exposes the storefront backend's order endpoints to the console.
type Service interface {
	// List returns the raw order history. The result may contain duplicate
	// ids and legacy status values; callers are expected to run it through
	// a Store for normalisation.
	List(ctx context.Context, token string) ([]Order, error)

	// UpdateStatus asks the backend to move an order to the given status.
	UpdateStatus(ctx context.Context, token, orderID string, status Status) error
}

// Status represents the canonical lifecycle state of an order.
type Status string

const (
	// StatusWaiting indicates the order is awaiting operator confirmation.
	StatusWaiting Status = "waiting"
	// StatusConfirmed indicates an operator accepted the order.
	StatusConfirmed Status = "confirmed"
	// StatusShipped indicates the order was handed to the carrier.
	StatusShipped Status = "shipped"
	// StatusDelivered indicates the order reached the customer.
	StatusDelivered Status = "delivered"
	// StatusCancelled indicates the order was cancelled before shipping.
	StatusCancelled Status = "cancelled"
	// StatusReturned indicates a delivered order came back. The state is
	// modeled for forward compatibility; no operator action triggers it.
	StatusReturned Status = "returned"
)

// legacyStatusPending is an alias of waiting still emitted by older backend
// records. It is collapsed to the canonical value at ingestion.
const legacyStatusPending = "pending"

// NormalizeStatus maps a raw backend status value onto the canonical enum.
// Unknown values pass through unchanged so they stay visible to operators.
func NormalizeStatus(raw string) Status {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == legacyStatusPending {
		return StatusWaiting
	}
	return Status(value)
}

// transitions is the allowed-edge set of the fulfillment workflow. Cancelled
// is reachable from waiting and confirmed only; shipped→delivered is applied
// when the backend relays a delivery confirmation, and delivered→returned is
// modeled without an operator trigger.
var transitions = map[Status][]Status{
	StatusWaiting:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {StatusReturned},
	StatusCancelled: {},
	StatusReturned:  {},
}

// operatorActions lists the transitions surfaced as buttons in the console.
// It is a subset of the edge set: delivery confirmations and returns arrive
// externally.
var operatorActions = map[Status][]Status{
	StatusWaiting:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped},
}

// CanTransition reports whether the edge from→to exists in the workflow.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OperatorActions returns the target statuses an operator may pick for an
// order in the given state. The slice is a copy and safe to mutate.
func OperatorActions(from Status) []Status {
	return append([]Status(nil), operatorActions[from]...)
}

// statusLabels maps canonical statuses onto the storefront's display labels.
var statusLabels = map[Status]string{
	StatusWaiting:   "Chờ xác nhận",
	StatusConfirmed: "Đã xác nhận",
	StatusShipped:   "Đang giao",
	StatusDelivered: "Đã giao",
	StatusCancelled: "Đã hủy",
	StatusReturned:  "Đã trả hàng",
}

// StatusLabel returns the display label for a status, falling back to the
// raw value for unknown states.
func StatusLabel(status Status) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

// StatusTone returns the badge tone used by the presentation layer.
func StatusTone(status Status) string {
	switch status {
	case StatusWaiting:
		return "warning"
	case StatusConfirmed, StatusShipped:
		return "info"
	case StatusDelivered:
		return "success"
	case StatusCancelled, StatusReturned:
		return "muted"
	default:
		return "info"
	}
}

var (
	// ErrOrderNotFound is returned when an order id is absent from the store.
	ErrOrderNotFound = errors.New("order not found")
	// ErrMissingOrderID is returned when an operation is invoked without an id.
	ErrMissingOrderID = errors.New("order id is required")
	// ErrInvalidTransition is returned when a requested status change is not permitted.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrTransitionInFlight is returned when a transition for the same order is still pending.
	ErrTransitionInFlight = errors.New("status transition already in flight")
)

// StatusTransitionError describes a rejected status change.
type StatusTransitionError struct {
	From Status
	To   Status
}

// Error implements the error interface.
func (e *StatusTransitionError) Error() string {
	return "order status transition from " + string(e.From) + " to " + string(e.To) + ": not permitted"
}

// Unwrap lets callers match the sentinel with errors.Is.
func (e *StatusTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Customer identifies the buyer of an order. Backend records carry either an
// embedded customer document or a bare identifier string; the union is
// resolved once, during JSON decoding, so downstream code never branches on
// the wire shape.
type Customer struct {
	ID    string
	Name  string
	Email string
	// Embedded records whether the backend sent a full document.
	Embedded bool
}

// CustomerID returns the resolved customer identifier.
func (c Customer) CustomerID() string {
	return c.ID
}

// DisplayName returns the best name available for table rows.
func (c Customer) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// UnmarshalJSON accepts both wire shapes: "cust-1" and
// {"_id":"cust-1","name":"...","email":"..."}.
func (c *Customer) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*c = Customer{ID: id}
		return nil
	}

	var doc struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	resolved := doc.MongoID
	if resolved == "" {
		resolved = doc.ID
	}
	*c = Customer{ID: resolved, Name: doc.Name, Email: doc.Email, Embedded: true}
	return nil
}

// MarshalJSON always emits the embedded shape so consumers of the console's
// own API see one consistent contract.
func (c Customer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID    string `json:"id"`
		Name  string `json:"name,omitempty"`
		Email string `json:"email,omitempty"`
	}{ID: c.ID, Name: c.Name, Email: c.Email})
}

// Item is a single order line.
type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// Voucher records a discount applied at checkout.
type Voucher struct {
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
}

// Order is the central entity of the console. All fields except Status are
// immutable here; they were computed by the checkout flow that created the
// order.
type Order struct {
	ID              string          `json:"id"`
	OrderCode       string          `json:"orderCode,omitempty"`
	Customer        Customer        `json:"customer"`
	Items           []Item          `json:"items"`
	ShippingAddress string          `json:"shippingAddress,omitempty"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	ShippingFee     decimal.Decimal `json:"shippingFee"`
	Voucher         *Voucher        `json:"voucher,omitempty"`
	FinalTotal      decimal.Decimal `json:"finalTotal"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// StatusLabel returns the display label for the order's current status.
func (o Order) StatusLabel() string {
	return StatusLabel(o.Status)
}

// AuditLogger records audit trail entries for order status changes.
type AuditLogger interface {
	Record(ctx context.Context, entry AuditLogEntry) error
}

// AuditLogEntry describes a completed status transition.
type AuditLogEntry struct {
	ID         string
	OrderID    string
	OrderCode  string
	From       Status
	To         Status
	ActorID    string
	ActorEmail string
	OccurredAt time.Time
}
