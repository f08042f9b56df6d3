package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palteria/palteria_api/internal/models"
	"github.com/palteria/palteria_api/internal/storage"
)

func newTestCustomerRepo(t *testing.T) *CustomerRepository {
	t.Helper()
	return NewCustomerRepository(storage.New(storage.NewMemoryKV()))
}

func TestCustomerRepo_UpsertAndFindByPhone(t *testing.T) {
	repo := newTestCustomerRepo(t)

	require.NoError(t, repo.Upsert(models.CustomerProfile{
		Phone:    "11 2233-4455",
		Business: "Verdulería Sol",
		Address:  "Av. Siempreviva 742",
		Locality: "Lanús",
	}))

	// Lookup works with or without formatting characters.
	profile, ok := repo.FindByPhone("(11) 2233-4455")
	require.True(t, ok)
	assert.Equal(t, "1122334455", profile.ID)
	assert.Equal(t, "1122334455", profile.Phone)
	assert.Equal(t, "Verdulería Sol", profile.Business)

	_, ok = repo.FindByPhone("9988776655")
	assert.False(t, ok)

	_, ok = repo.FindByPhone("sin digitos")
	assert.False(t, ok)
}

func TestCustomerRepo_UpsertReplacesExistingProfile(t *testing.T) {
	repo := newTestCustomerRepo(t)

	require.NoError(t, repo.Upsert(models.CustomerProfile{Phone: "1122334455", Business: "Antiguo"}))
	require.NoError(t, repo.Upsert(models.CustomerProfile{Phone: "1122334455", Business: "Nuevo"}))

	profile, ok := repo.FindByPhone("1122334455")
	require.True(t, ok)
	assert.Equal(t, "Nuevo", profile.Business)
}

func TestCustomerRepo_UpsertIgnoresEmptyPhone(t *testing.T) {
	repo := newTestCustomerRepo(t)
	require.NoError(t, repo.Upsert(models.CustomerProfile{Phone: "sin digitos"}))
	_, ok := repo.FindByPhone("sin digitos")
	assert.False(t, ok)
}

func TestCustomerRepo_LastPhone(t *testing.T) {
	repo := newTestCustomerRepo(t)

	assert.Empty(t, repo.LastPhone())

	require.NoError(t, repo.SetLastPhone("11 2233-4455"))
	assert.Equal(t, "1122334455", repo.LastPhone())
}

func TestPrefsRepo_HeroSeen(t *testing.T) {
	repo := NewPrefsRepository(storage.New(storage.NewMemoryKV()))

	assert.False(t, repo.HeroSeen())
	require.NoError(t, repo.MarkHeroSeen())
	assert.True(t, repo.HeroSeen())
}
