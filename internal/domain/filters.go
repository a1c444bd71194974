package domain

import (
	"strings"
)

// DefaultPageSize is how many listings the catalog shows per "load more" step.
const DefaultPageSize = 4

// Criteria holds the applied filter criteria for the catalog.
// Empty strings and false equipment flags impose no constraint.
type Criteria struct {
	Location     string          `json:"location"`
	VehicleType  string          `json:"vehicleType"`
	Transmission string          `json:"transmission"`
	Equipment    map[string]bool `json:"equipment"`
}

// DefaultCriteria returns empty criteria with every equipment flag false.
func DefaultCriteria() Criteria {
	equipment := make(map[string]bool, len(EquipmentFlags))
	for _, f := range EquipmentFlags {
		equipment[f] = false
	}
	return Criteria{Equipment: equipment}
}

// Clone returns a deep copy of the criteria.
func (c Criteria) Clone() Criteria {
	out := c
	out.Equipment = make(map[string]bool, len(c.Equipment))
	for k, v := range c.Equipment {
		out.Equipment[k] = v
	}
	return out
}

// ActiveEquipment returns the equipment flags set to true, in display order.
func (c Criteria) ActiveEquipment() []string {
	var active []string
	for _, f := range EquipmentFlags {
		if c.Equipment[f] {
			active = append(active, f)
		}
	}
	return active
}

// IsEmpty returns true if the criteria impose no constraint at all.
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Location) == "" &&
		c.VehicleType == "" &&
		c.Transmission == "" &&
		len(c.ActiveEquipment()) == 0
}

// matcher is the compiled form of Criteria, built once per evaluation.
type matcher struct {
	location     string
	vehicleType  string
	transmission string
	equipment    []string
}

func compile(c Criteria) matcher {
	return matcher{
		location:     strings.ToLower(strings.TrimSpace(c.Location)),
		vehicleType:  strings.ToLower(c.VehicleType),
		transmission: strings.ToLower(c.Transmission),
		equipment:    c.ActiveEquipment(),
	}
}

func (m matcher) match(l Listing) bool {
	if m.location != "" && !strings.Contains(strings.ToLower(l.Location), m.location) {
		return false
	}
	if m.vehicleType != "" && strings.ToLower(l.Form) != m.vehicleType {
		return false
	}
	if m.transmission != "" && strings.ToLower(l.Transmission) != m.transmission {
		return false
	}
	for _, flag := range m.equipment {
		if !l.HasEquipment(flag) {
			return false
		}
	}
	return true
}

// Matches reports whether a single listing passes every active predicate.
func (c Criteria) Matches(l Listing) bool {
	return compile(c).match(l)
}

// VisibleListings returns the listings that pass every active predicate of
// the criteria, preserving their relative order. The input is never modified.
func VisibleListings(items []Listing, c Criteria) []Listing {
	result := make([]Listing, 0, len(items))
	if c.IsEmpty() {
		return append(result, items...)
	}

	m := compile(c)
	for _, l := range items {
		if m.match(l) {
			result = append(result, l)
		}
	}
	return result
}

// FavoriteListings returns the listings whose id is in ids, in catalog order.
func FavoriteListings(items []Listing, ids []string) []Listing {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	result := make([]Listing, 0, len(ids))
	for _, l := range items {
		if _, ok := set[string(l.ID)]; ok {
			result = append(result, l)
		}
	}
	return result
}

// Page returns the first pages*pageSize listings.
func Page(items []Listing, pages, pageSize int) []Listing {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pages <= 0 {
		pages = 1
	}
	// compare in pages so huge page counts cannot overflow
	full := len(items) / pageSize
	if len(items)%pageSize != 0 {
		full++
	}
	if pages >= full {
		return items
	}
	return items[:pages*pageSize]
}

// HasMore reports whether paging has hidden listings left.
func HasMore(items []Listing, pages, pageSize int) bool {
	return len(Page(items, pages, pageSize)) < len(items)
}
