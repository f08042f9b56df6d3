package repository

import (
	"github.com/palteria/palteria_api/internal/models"
	"github.com/palteria/palteria_api/internal/storage"
	"github.com/palteria/palteria_api/internal/utils"
)

const (
	keyCustomers = "palteria_clientes"
	keyLastPhone = "palteria_last_phone"
)

// CustomerRepository caches delivery details of repeat customers for
// checkout autofill. Identity is the phone number reduced to digits.
type CustomerRepository struct {
	store *storage.Store
}

// NewCustomerRepository creates a CustomerRepository over the given store.
func NewCustomerRepository(store *storage.Store) *CustomerRepository {
	return &CustomerRepository{store: store}
}

func (r *CustomerRepository) readAll() []models.CustomerProfile {
	profiles := []models.CustomerProfile{}
	r.store.Read(keyCustomers, &profiles)
	return profiles
}

// FindByPhone looks up a profile by phone; the input may contain formatting
// characters, matching is on normalized digits.
func (r *CustomerRepository) FindByPhone(phone string) (models.CustomerProfile, bool) {
	id := utils.NormalizeDigits(phone)
	if id == "" {
		return models.CustomerProfile{}, false
	}
	for _, p := range r.readAll() {
		if p.ID == id {
			return p, true
		}
	}
	return models.CustomerProfile{}, false
}

// Upsert stores the profile keyed by its normalized phone digits, replacing
// any previous entry. Profiles are never deleted.
func (r *CustomerRepository) Upsert(profile models.CustomerProfile) error {
	profile.ID = utils.NormalizeDigits(profile.Phone)
	if profile.ID == "" {
		return nil
	}
	profile.Phone = profile.ID

	all := r.readAll()
	replaced := false
	for i, p := range all {
		if p.ID == profile.ID {
			all[i] = profile
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, profile)
	}
	return r.store.Write(keyCustomers, all)
}

// LastPhone returns the phone used on the most recent checkout, if any.
func (r *CustomerRepository) LastPhone() string {
	var phone string
	r.store.Read(keyLastPhone, &phone)
	return phone
}

// SetLastPhone records the phone used at checkout for next-visit prefill.
func (r *CustomerRepository) SetLastPhone(phone string) error {
	return r.store.Write(keyLastPhone, utils.NormalizeDigits(phone))
}
