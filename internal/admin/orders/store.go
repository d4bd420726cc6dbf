package orders

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store holds the console's working snapshot of the order history. Load
// replaces the snapshot wholesale; Transition mutates a single order's
// status in place. Readers always receive copies.
//
// The mutex serialises snapshot access: unlike the browser console this
// replaces, store methods are called from concurrent HTTP handler
// goroutines.
type Store struct {
	svc    Service
	audit  AuditLogger
	logger *zap.SugaredLogger

	mu       sync.Mutex
	orders   []Order
	inflight map[string]bool
}

// NewStore constructs a Store over the given order source. The audit logger
// may be nil when no trail is wanted.
func NewStore(svc Service, audit AuditLogger, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{
		svc:      svc,
		audit:    audit,
		logger:   logger,
		inflight: make(map[string]bool),
	}
}

// Load fetches the order history, collapses duplicate ids (first occurrence
// wins), sorts by creation time descending and replaces the cached snapshot.
// On a remote error the previous snapshot is kept and the error returned for
// the caller to surface.
func (s *Store) Load(ctx context.Context, token string) ([]Order, error) {
	raw, err := s.svc.List(ctx, token)
	if err != nil {
		s.logger.Errorw("order load failed", "error", err)
		return s.Snapshot(), err
	}

	cleaned := Normalize(raw)

	s.mu.Lock()
	s.orders = cleaned
	s.mu.Unlock()

	s.logger.Infow("order snapshot replaced", "raw", len(raw), "kept", len(cleaned))
	return append([]Order(nil), cleaned...), nil
}

// Normalize deduplicates by id (first occurrence wins, later duplicates are
// dropped silently) and sorts most recent first. Records with equal
// timestamps keep their relative input order. The input slice is not
// modified.
func Normalize(raw []Order) []Order {
	seen := make(map[string]bool, len(raw))
	cleaned := make([]Order, 0, len(raw))
	for _, o := range raw {
		if o.ID == "" || seen[o.ID] {
			continue
		}
		seen[o.ID] = true
		cleaned = append(cleaned, o)
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].CreatedAt.After(cleaned[j].CreatedAt)
	})
	return cleaned
}

// Snapshot returns a copy of the current order list.
func (s *Store) Snapshot() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Order(nil), s.orders...)
}

// Len reports the number of orders currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// Get returns the order with the given id.
func (s *Store) Get(orderID string) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(orderID); i >= 0 {
		return s.orders[i], true
	}
	return Order{}, false
}

// Actor identifies the operator performing a transition, for the audit trail.
type Actor struct {
	ID    string
	Email string
}

// Transition validates and executes a status change for a single order.
// The in-memory record is updated optimistically before the remote call and
// restored if the call fails, so the snapshot never diverges from what the
// backend acknowledged. At most one transition per order may be in flight;
// transitions on different orders proceed independently.
func (s *Store) Transition(ctx context.Context, token, orderID string, target Status, actor Actor) (Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return Order{}, ErrMissingOrderID
	}

	s.mu.Lock()
	idx := s.indexOf(orderID)
	if idx < 0 {
		s.mu.Unlock()
		return Order{}, ErrOrderNotFound
	}
	prev := s.orders[idx].Status
	if !CanTransition(prev, target) {
		s.mu.Unlock()
		return Order{}, &StatusTransitionError{From: prev, To: target}
	}
	if s.inflight[orderID] {
		s.mu.Unlock()
		return Order{}, ErrTransitionInFlight
	}
	s.inflight[orderID] = true
	s.orders[idx].Status = target
	s.mu.Unlock()

	err := s.svc.UpdateStatus(ctx, token, orderID, target)

	s.mu.Lock()
	delete(s.inflight, orderID)
	idx = s.indexOf(orderID)
	if err != nil {
		if idx >= 0 && s.orders[idx].Status == target {
			s.orders[idx].Status = prev
		}
		s.mu.Unlock()
		s.logger.Errorw("status update rejected by backend",
			"order", orderID, "from", prev, "to", target, "error", err)
		return Order{}, err
	}
	var updated Order
	if idx >= 0 {
		updated = s.orders[idx]
	}
	s.mu.Unlock()

	s.recordAudit(ctx, updated, prev, target, actor)
	s.logger.Infow("order status updated", "order", orderID, "from", prev, "to", target)
	return updated, nil
}

func (s *Store) recordAudit(ctx context.Context, order Order, from, to Status, actor Actor) {
	if s.audit == nil {
		return
	}
	entry := AuditLogEntry{
		OrderID:    order.ID,
		OrderCode:  order.OrderCode,
		From:       from,
		To:         to,
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		OccurredAt: time.Now(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warnw("audit record failed", "order", order.ID, "error", err)
	}
}

// indexOf must be called with the mutex held.
func (s *Store) indexOf(orderID string) int {
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			return i
		}
	}
	return -1
}
