package registry

import (
	"sort"
	"sync"

	marketv1 "github.com/Goutam245/Crypto-DashBoard/internal/domain/market/v1"
	"github.com/Goutam245/Crypto-DashBoard/pkg/errors"
)

// Registry is the canonical set of registered instruments.
// Instruments are immutable once registered.
type Registry struct {
	mu          sync.RWMutex
	instruments map[string]marketv1.Instrument
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		instruments: make(map[string]marketv1.Instrument),
	}
}

// Register adds an instrument. Registering the same id twice is an error.
func (r *Registry) Register(instrument marketv1.Instrument) error {
	if err := instrument.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.instruments[instrument.ID]; exists {
		return errors.NewErrorDetails(
			"instrument "+instrument.ID+" is already registered",
			errors.ErrDuplicateInstrument,
			"id",
		)
	}

	r.instruments[instrument.ID] = instrument
	return nil
}

// Get returns the instrument for the given id.
func (r *Registry) Get(id string) (marketv1.Instrument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instrument, exists := r.instruments[id]
	if !exists {
		return marketv1.Instrument{}, errors.NewUnknownInstrument(id)
	}
	return instrument, nil
}

// Has reports whether the id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.instruments[id]
	return exists
}

// List returns all registered instruments sorted by id.
func (r *Registry) List() []marketv1.Instrument {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]marketv1.Instrument, 0, len(r.instruments))
	for _, instrument := range r.instruments {
		list = append(list, instrument)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}
