package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/claudiojas/rockbandpay-table-client/client"
	"github.com/claudiojas/rockbandpay-table-client/models"
	"github.com/claudiojas/rockbandpay-table-client/utils"
)

// ErrSessionInit means every fallback was exhausted and no session could be
// obtained. This is the page-level fatal case; everything before it is not.
var ErrSessionInit = errors.New("could not initialize a session for this table")

// API is the slice of the REST client the resolver needs.
type API interface {
	GetSession(ctx context.Context, sessionID string) (models.Session, error)
	GetActiveSession(ctx context.Context, tableID string) (models.Session, error)
	CreateSession(ctx context.Context, tableID string) (models.Session, error)
}

// Resolver produces exactly one ACTIVE session for a table, trying in order:
// the cached id, the table's active session, then creation of a new one.
//
// Concurrent Resolve calls are serialized so that a doubled startup run
// issues at most one create; the loser of a create race against another
// client gets a 409 and adopts the session that won.
type Resolver struct {
	api   API
	store Store
	mu    sync.Mutex
}

func NewResolver(api API, store Store) *Resolver {
	return &Resolver{api: api, store: store}
}

func (r *Resolver) Resolve(ctx context.Context, tableID string) (models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return models.Session{}, err
	}

	// 1. Validate the cached id before trusting it. Any failure here just
	// means the cache is stale.
	if cached, err := r.store.Load(); err == nil && cached != "" {
		s, err := r.api.GetSession(ctx, cached)
		if err == nil && s.TableID == tableID && s.Status == models.SessionActive {
			return s, nil
		}
		if err := ctx.Err(); err != nil {
			return models.Session{}, err
		}
		utils.InfoLogger.Printf("cached session %s is stale, discarding", cached)
		if err := r.store.Clear(); err != nil {
			utils.ErrorLogger.Printf("failed to clear stale session id: %v", err)
		}
	}

	// 2. Another device at this table may already have an active session.
	s, err := r.api.GetActiveSession(ctx, tableID)
	if err == nil {
		return r.adopt(ctx, s)
	}
	if err := ctx.Err(); err != nil {
		return models.Session{}, err
	}
	if !client.IsNotFound(err) {
		utils.InfoLogger.Printf("active session lookup for table %s failed, will create one: %v", tableID, err)
	}

	// 3. No usable session anywhere: create one.
	created, err := r.api.CreateSession(ctx, tableID)
	if err == nil {
		return r.adopt(ctx, created)
	}
	if client.IsConflict(err) {
		// Lost the create race; the now-existing active session is ours too.
		s, qerr := r.api.GetActiveSession(ctx, tableID)
		if qerr == nil {
			return r.adopt(ctx, s)
		}
		err = qerr
	}
	return models.Session{}, fmt.Errorf("%w: %v", ErrSessionInit, err)
}

// adopt persists the resolved id, unless this run was superseded in the
// meantime; a stale run must never write shared state.
func (r *Resolver) adopt(ctx context.Context, s models.Session) (models.Session, error) {
	if err := ctx.Err(); err != nil {
		return models.Session{}, err
	}
	if err := r.store.Save(s.ID); err != nil {
		utils.ErrorLogger.Printf("failed to persist session id %s: %v", s.ID, err)
	}
	return s, nil
}
