package repository

import "github.com/palteria/palteria_api/internal/storage"

const keyHeroSeen = "palteria_hero_visto"

// PrefsRepository holds small scalar storefront flags.
type PrefsRepository struct {
	store *storage.Store
}

// NewPrefsRepository creates a PrefsRepository over the given store.
func NewPrefsRepository(store *storage.Store) *PrefsRepository {
	return &PrefsRepository{store: store}
}

// HeroSeen reports whether the big hero banner was already shown.
func (r *PrefsRepository) HeroSeen() bool {
	var seen bool
	r.store.Read(keyHeroSeen, &seen)
	return seen
}

// MarkHeroSeen persists that the hero banner was shown.
func (r *PrefsRepository) MarkHeroSeen() error {
	return r.store.Write(keyHeroSeen, true)
}
