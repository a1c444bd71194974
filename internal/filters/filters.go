package filters

import (
	"sync"

	"github.com/traveltrucks/traveltrucks/internal/domain"
)

// State owns the applied criteria. Mutations are synchronous and visible to
// the next read.
type State struct {
	mu       sync.RWMutex
	criteria domain.Criteria
	version  uint64
}

// New returns a State holding the default criteria.
func New() *State {
	return &State{criteria: domain.DefaultCriteria()}
}

// Applied returns a copy of the applied criteria.
func (s *State) Applied() domain.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria.Clone()
}

// Version increases on every mutation.
func (s *State) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns the criteria and version read under one lock.
func (s *State) Snapshot() (domain.Criteria, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria.Clone(), s.version
}

// ApplyFilters merges p over the applied criteria. A nil patch is a no-op.
// Unknown equipment flags are ignored.
func (s *State) ApplyFilters(p *Patch) {
	if p == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Location != nil {
		s.criteria.Location = *p.Location
	}
	if p.VehicleType != nil {
		s.criteria.VehicleType = *p.VehicleType
	}
	if p.Transmission != nil {
		s.criteria.Transmission = *p.Transmission
	}
	for flag, on := range p.Equipment {
		if domain.IsValidEquipment(flag) {
			s.criteria.Equipment[flag] = on
		}
	}
	s.version++
}

// ResetFilters restores the default criteria.
func (s *State) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = domain.DefaultCriteria()
	s.version++
}

// ToggleEquipment flips one equipment flag. Unknown flags are ignored.
func (s *State) ToggleEquipment(flag string) {
	if !domain.IsValidEquipment(flag) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Equipment[flag] = !s.criteria.Equipment[flag]
	s.version++
}

// SetLocation replaces the location needle.
func (s *State) SetLocation(location string) {
	s.ApplyFilters(&Patch{Location: &location})
}

// SetVehicleType replaces the vehicle type; empty clears it.
func (s *State) SetVehicleType(form string) {
	s.ApplyFilters(&Patch{VehicleType: &form})
}

// SetTransmission replaces the transmission; empty clears it.
func (s *State) SetTransmission(transmission string) {
	s.ApplyFilters(&Patch{Transmission: &transmission})
}
