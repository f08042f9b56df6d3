package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palteria/palteria_api/internal/models"
	"github.com/palteria/palteria_api/internal/storage"
)

func newTestOrderRepo(t *testing.T) (*OrderRepository, storage.KV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	repo := NewOrderRepository(storage.New(kv))
	repo.now = func() time.Time {
		return time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
	}
	return repo, kv
}

func testOrder(id string, createdAt string, status models.OrderStatus) models.Order {
	return models.Order{
		ID:        id,
		CreatedAt: createdAt,
		Status:    status,
		Customer: models.Customer{
			Phone:    "1122334455",
			Business: "Verdulería Sol",
			Address:  "Av. Siempreviva 742",
			Locality: "Lanús",
		},
		Items:          []models.OrderItem{},
		TotalCrates:    1,
		TotalEstimated: 25000,
	}
}

func TestOrderRepo_CreateAndReadBack(t *testing.T) {
	repo, _ := newTestOrderRepo(t)

	require.NoError(t, repo.Create(testOrder("o1", "2026-08-29T10:00:00Z", models.StatusPending)))

	orders := repo.TodayOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
}

func TestOrderRepo_SelfMigratesLegacyRecords(t *testing.T) {
	repo, kv := newTestOrderRepo(t)

	legacy := []map[string]any{
		{
			"id":              "P-1",
			"clienteTelefono": "1122334455",
			"direccion":       "X",
			"localidad":       "Y",
			"creadoISO":       "2026-08-29T10:00:00Z",
			"estado":          "pendiente",
		},
	}
	require.NoError(t, repo.store.Write(keyOrders, legacy))

	orders := repo.TodayOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, models.StatusPending, orders[0].Status)
	assert.Equal(t, "1122334455", orders[0].Customer.Phone)

	// The collection is rewritten canonically on first read.
	raw, ok, err := kv.Get(keyOrders)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"customer"`)
	assert.NotContains(t, string(raw), "clienteTelefono")

	// Normalizing the rewritten collection changes nothing further.
	assert.Equal(t, orders, repo.TodayOrders())
	rewritten, _, err := kv.Get(keyOrders)
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(rewritten))
}

func TestOrderRepo_DropsUnrecognizableRecordsOnMigration(t *testing.T) {
	repo, _ := newTestOrderRepo(t)

	mixed := []map[string]any{
		{"id": "P-1", "clienteTelefono": "111", "creadoISO": "2026-08-29T10:00:00Z", "estado": "pendiente"},
		{"foo": "bar"},
	}
	require.NoError(t, repo.store.Write(keyOrders, mixed))

	orders := repo.TodayOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, "P-1", orders[0].ID)
}

func TestOrderRepo_TodayOrdersMostRecentFirst(t *testing.T) {
	repo, _ := newTestOrderRepo(t)

	require.NoError(t, repo.Create(testOrder("early", "2026-08-29T08:00:00Z", models.StatusPending)))
	require.NoError(t, repo.Create(testOrder("late", "2026-08-29T12:00:00Z", models.StatusPending)))
	require.NoError(t, repo.Create(testOrder("yesterday", "2026-08-28T23:00:00Z", models.StatusPending)))

	orders := repo.TodayOrders()
	require.Len(t, orders, 2)
	assert.Equal(t, "late", orders[0].ID)
	assert.Equal(t, "early", orders[1].ID)
}

func TestOrderRepo_TodayDispatchPriorityThenOldestFirst(t *testing.T) {
	repo, _ := newTestOrderRepo(t)

	require.NoError(t, repo.Create(testOrder("delivered", "2026-08-29T07:00:00Z", models.StatusDelivered)))
	require.NoError(t, repo.Create(testOrder("pending-late", "2026-08-29T11:00:00Z", models.StatusPending)))
	require.NoError(t, repo.Create(testOrder("en-route", "2026-08-29T09:00:00Z", models.StatusEnRoute)))
	require.NoError(t, repo.Create(testOrder("pending-early", "2026-08-29T08:00:00Z", models.StatusPending)))
	require.NoError(t, repo.Create(testOrder("weird", "2026-08-29T06:00:00Z", models.OrderStatus("en_revision"))))
	require.NoError(t, repo.Create(testOrder("cancelled", "2026-08-29T10:00:00Z", models.StatusCancelled)))

	got := []string{}
	for _, o := range repo.TodayDispatch("", "") {
		got = append(got, o.ID)
	}
	assert.Equal(t, []string{"pending-early", "pending-late", "en-route", "delivered", "cancelled", "weird"}, got)
}

func TestOrderRepo_StatusFilter(t *testing.T) {
	repo, _ := newTestOrderRepo(t)

	require.NoError(t, repo.Create(testOrder("p1", "2026-08-29T08:00:00Z", models.StatusPending)))
	require.NoError(t, repo.Create(testOrder("d1", "2026-08-29T09:00:00Z", models.StatusDelivered)))

	orders := repo.TodayDispatch(models.StatusDelivered, "")
	require.Len(t, orders, 1)
	assert.Equal(t, "d1", orders[0].ID)
}

func TestOrderRepo_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	repo, _ := newTestOrderRepo(t)

	a := testOrder("o1", "2026-08-29T08:00:00Z", models.StatusPending)
	a.Customer.Business = "Verdulería Don Pepe"
	b := testOrder("o2", "2026-08-29T09:00:00Z", models.StatusPending)
	b.Customer.Business = "Mercadito La Plaza"
	b.Customer.Locality = "Avellaneda"
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))

	byBusiness := repo.TodayDispatch("", "don pepe")
	require.Len(t, byBusiness, 1)
	assert.Equal(t, "o1", byBusiness[0].ID)

	byLocality := repo.TodayDispatch("", "AVELLANEDA")
	require.Len(t, byLocality, 1)
	assert.Equal(t, "o2", byLocality[0].ID)

	byID := repo.TodayDispatch("", "o2")
	require.Len(t, byID, 1)

	assert.Empty(t, repo.TodayDispatch("", "palta"))
}

func TestOrderRepo_SetStatus(t *testing.T) {
	repo, _ := newTestOrderRepo(t)

	require.NoError(t, repo.Create(testOrder("o1", "2026-08-29T08:00:00Z", models.StatusPending)))
	require.NoError(t, repo.SetStatus("o1", models.StatusEnRoute))

	orders := repo.TodayOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, models.StatusEnRoute, orders[0].Status)
}

func TestOrderRepo_SetStatusUnknownIDIsNoOp(t *testing.T) {
	repo, kv := newTestOrderRepo(t)

	require.NoError(t, repo.Create(testOrder("o1", "2026-08-29T08:00:00Z", models.StatusPending)))
	before, _, err := kv.Get(keyOrders)
	require.NoError(t, err)

	require.NoError(t, repo.SetStatus("ghost", models.StatusDelivered))

	after, _, err := kv.Get(keyOrders)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestOrderRepo_Delete(t *testing.T) {
	repo, _ := newTestOrderRepo(t)

	require.NoError(t, repo.Create(testOrder("o1", "2026-08-29T08:00:00Z", models.StatusPending)))
	require.NoError(t, repo.Create(testOrder("o2", "2026-08-29T09:00:00Z", models.StatusPending)))

	require.NoError(t, repo.Delete("o1"))
	orders := repo.TodayOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, "o2", orders[0].ID)

	// Unknown id is a no-op.
	require.NoError(t, repo.Delete("ghost"))
	assert.Len(t, repo.TodayOrders(), 1)
}

func TestOrderRepo_MigrationSurvivesMixedShapes(t *testing.T) {
	repo, kv := newTestOrderRepo(t)

	require.NoError(t, repo.Create(testOrder("canonical", "2026-08-29T08:00:00Z", models.StatusPending)))

	// Splice a legacy record in next to the canonical one.
	raw, _, err := kv.Get(keyOrders)
	require.NoError(t, err)
	spliced := strings.TrimSuffix(string(raw), "]") +
		`,{"id":"legacy","clienteTelefono":"999","creadoISO":"2026-08-29T09:00:00Z","estado":"entregado"}]`
	require.NoError(t, kv.Set(keyOrders, []byte(spliced)))

	orders := repo.TodayOrders()
	require.Len(t, orders, 2)
	assert.Equal(t, "legacy", orders[0].ID)
	assert.Equal(t, models.StatusDelivered, orders[0].Status)

	migrated, _, err := kv.Get(keyOrders)
	require.NoError(t, err)
	assert.NotContains(t, string(migrated), "creadoISO")
}
