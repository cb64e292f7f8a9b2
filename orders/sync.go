package orders

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/claudiojas/rockbandpay-table-client/client"
	"github.com/claudiojas/rockbandpay-table-client/models"
	"github.com/claudiojas/rockbandpay-table-client/push"
	"github.com/claudiojas/rockbandpay-table-client/utils"
)

// ErrNotCancellable means the order already left PENDING; the kitchen has it.
var ErrNotCancellable = errors.New("only pending orders can be cancelled")

// API is the slice of the REST client the synchronizer needs.
type API interface {
	GetSessionOrders(ctx context.Context, sessionID string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (models.Order, error)
}

// Synchronizer keeps one de-duplicated, newest-first view of the session's
// orders. Three sources feed it: the initial fetch, optimistic inserts from
// the cart, and push events. Arrival order between them is not guaranteed, so
// every incoming order goes through the same id-keyed replace-then-sort merge.
type Synchronizer struct {
	api       API
	sessionID string

	mu     sync.Mutex
	orders []models.Order

	// OnChange, when set, receives a snapshot after every merge. Called
	// outside the lock.
	OnChange func([]models.Order)
}

func New(api API, sessionID string) *Synchronizer {
	return &Synchronizer{api: api, sessionID: sessionID}
}

// Refresh fetches the authoritative order list and merges it in. A session
// with no orders yet answers 404; that is a normal empty state, not an error.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	fetched, err := s.api.GetSessionOrders(ctx, s.sessionID)
	if err != nil {
		if client.IsNotFound(err) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	for _, o := range fetched {
		s.applyLocked(o)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	return nil
}

// Apply merges one order in, replacing any entry with the same id.
func (s *Synchronizer) Apply(o models.Order) {
	s.mu.Lock()
	s.applyLocked(o)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

// HandleEvent dispatches a push event: a new order is applied directly, a
// status change triggers a re-fetch (its payload carries no order), anything
// else is dropped.
func (s *Synchronizer) HandleEvent(ctx context.Context, ev push.Event) {
	switch ev := ev.(type) {
	case push.NewOrder:
		s.Apply(ev.Order)
	case push.StatusChanged:
		if err := s.Refresh(ctx); err != nil {
			utils.ErrorLogger.Printf("orders: refresh after status update failed: %v", err)
		}
	case push.Unknown:
		utils.InfoLogger.Printf("orders: ignoring push event %q", ev.Type)
	}
}

// Orders returns a copy of the current list, newest first.
func (s *Synchronizer) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Cancel asks the server to cancel a PENDING order. Local state is left
// untouched; the resulting change arrives through the push channel.
func (s *Synchronizer) Cancel(ctx context.Context, orderID string) error {
	s.mu.Lock()
	status, found := "", false
	for _, o := range s.orders {
		if o.ID == orderID {
			status, found = o.Status, true
			break
		}
	}
	s.mu.Unlock()

	if !found || status != models.OrderPending {
		return ErrNotCancellable
	}
	_, err := s.api.UpdateOrderStatus(ctx, orderID, models.OrderCancelled)
	return err
}

func (s *Synchronizer) applyLocked(o models.Order) {
	for i := range s.orders {
		if s.orders[i].ID == o.ID {
			s.orders[i] = o
			s.sortLocked()
			return
		}
	}
	s.orders = append(s.orders, o)
	s.sortLocked()
}

func (s *Synchronizer) sortLocked() {
	sort.SliceStable(s.orders, func(i, j int) bool {
		return s.orders[i].CreatedAt.After(s.orders[j].CreatedAt)
	})
}

func (s *Synchronizer) snapshotLocked() []models.Order {
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *Synchronizer) notify(snapshot []models.Order) {
	if s.OnChange != nil {
		s.OnChange(snapshot)
	}
}
