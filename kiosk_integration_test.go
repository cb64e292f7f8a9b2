package main

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/claudiojas/rockbandpay-table-client/cart"
	"github.com/claudiojas/rockbandpay-table-client/client"
	"github.com/claudiojas/rockbandpay-table-client/devserver"
	"github.com/claudiojas/rockbandpay-table-client/menu"
	"github.com/claudiojas/rockbandpay-table-client/models"
	"github.com/claudiojas/rockbandpay-table-client/orders"
	"github.com/claudiojas/rockbandpay-table-client/push"
	"github.com/claudiojas/rockbandpay-table-client/session"
	"github.com/claudiojas/rockbandpay-table-client/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndOrderingFlow walks the whole diner flow against the dev server:
// 1. resolve a session for the table (none exists, so one is created)
// 2. load the menu, fill the cart, place the order
// 3. receive the NEW_ORDER push and de-duplicate it against the optimistic copy
// 4. the kitchen moves the order along; the status update push triggers a
//    re-fetch that converges the local list
// 5. a reload of the same table reuses the persisted session
func TestEndToEndOrderingFlow(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	hub := devserver.NewHub()
	srv := httptest.NewServer(devserver.SetupRouter(db, hub))
	defer srv.Close()

	api := client.New(srv.URL)
	wsBase := "ws" + strings.TrimPrefix(srv.URL, "http")

	store, err := session.OpenFileStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)

	ctx := context.Background()

	// 1. Session resolution for a fresh table ends in exactly one session.
	sess, err := session.NewResolver(api, store).Resolve(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, "T1", sess.TableID)
	assert.Equal(t, models.SessionActive, sess.Status)

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, sess.ID, persisted)

	// a competing create for the same table must lose with a conflict
	_, err = api.CreateSession(ctx, "T1")
	require.Error(t, err)
	assert.True(t, client.IsConflict(err))

	// 2. Menu and cart.
	catalog, err := menu.Load(ctx, api)
	require.NoError(t, err)
	require.Len(t, catalog.Categories, 1)
	require.Len(t, catalog.Products, 2)

	sync := orders.New(api, sess.ID)
	require.NoError(t, sync.Refresh(ctx), "a session with no orders is a normal empty state")
	assert.Empty(t, sync.Orders())

	channel := push.OpenWith(wsBase+"/ws/session/"+sess.ID, func(ev push.Event) {
		sync.HandleEvent(ctx, ev)
	}, push.Options{RetryDelay: 200 * time.Millisecond})
	defer channel.Close()
	time.Sleep(300 * time.Millisecond) // let the socket subscribe before ordering

	chopp := productByName(t, catalog, "Chopp Pilsen 500ml")
	batata := productByName(t, catalog, "Batata Frita")

	basket := cart.New()
	basket.Add(chopp, 2)
	basket.Add(batata, 1)
	require.InDelta(t, 52.00, basket.Total(), 1e-9)

	// 3. Place the order; the optimistic copy and the push must converge on
	// one entry.
	placed, err := basket.Submit(ctx, api, sess.ID)
	require.NoError(t, err)
	assert.Zero(t, basket.Len())
	assert.InDelta(t, 52.00, placed.TotalAmount, 1e-9)

	sync.Apply(placed)

	require.Eventually(t, func() bool {
		list := sync.Orders()
		return len(list) == 1 && len(list[0].OrderItems) == 2
	}, 3*time.Second, 50*time.Millisecond, "optimistic insert and NEW_ORDER push must de-duplicate")

	// 4. Kitchen starts preparing; the client should converge via the
	// status-update push and re-fetch.
	_, err = api.UpdateOrderStatus(ctx, placed.ID, models.OrderPreparing)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		list := sync.Orders()
		return len(list) == 1 && list[0].Status == models.OrderPreparing
	}, 3*time.Second, 50*time.Millisecond)

	// cancel is no longer possible once preparing
	require.ErrorIs(t, sync.Cancel(ctx, placed.ID), orders.ErrNotCancellable)

	// 5. A reload resolves to the same session via the cache.
	again, err := session.NewResolver(api, store).Resolve(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, again.ID)
}

func TestStaleCachedSessionFromAnotherTable(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	srv := httptest.NewServer(devserver.SetupRouter(db, devserver.NewHub()))
	defer srv.Close()

	api := client.New(srv.URL)
	store, err := session.OpenFileStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)

	ctx := context.Background()

	// the kiosk previously served table T1...
	first, err := session.NewResolver(api, store).Resolve(ctx, "T1")
	require.NoError(t, err)

	// ...and is now relaunched at table T2 with the old id still cached
	second, err := session.NewResolver(api, store).Resolve(ctx, "T2")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "T2", second.TableID)

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, second.ID, persisted)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := devserver.OpenDB(dsn)
	require.NoError(t, err)
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	now := time.Now()
	cat := models.Category{ID: uuid.NewString(), Name: "Bar", CreatedAt: now}
	require.NoError(t, db.Create(&cat).Error)
	products := []models.Product{
		{ID: uuid.NewString(), CategoryID: cat.ID, Name: "Chopp Pilsen 500ml", Price: 12.00, Stock: 100, CreatedAt: now},
		{ID: uuid.NewString(), CategoryID: cat.ID, Name: "Batata Frita", Price: 28.00, Stock: 40, CreatedAt: now},
	}
	require.NoError(t, db.Create(&products).Error)
}

func productByName(t *testing.T, catalog menu.Catalog, name string) models.Product {
	t.Helper()
	for _, p := range catalog.Products {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("product %q not in catalog", name)
	return models.Product{}
}
