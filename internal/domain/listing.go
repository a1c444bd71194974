// Package domain provides the domain layer for the camper catalog.
// It contains the listing value objects, filter criteria and the pure
// filter evaluator.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Equipment flag names as they appear in the remote catalog.
const (
	EquipmentAC           = "AC"
	EquipmentKitchen      = "kitchen"
	EquipmentTV           = "TV"
	EquipmentBathroom     = "bathroom"
	EquipmentRadio        = "radio"
	EquipmentRefrigerator = "refrigerator"
	EquipmentMicrowave    = "microwave"
	EquipmentGas          = "gas"
	EquipmentWater        = "water"
)

// EquipmentFlags lists every equipment flag in display order.
var EquipmentFlags = []string{
	EquipmentAC,
	EquipmentKitchen,
	EquipmentTV,
	EquipmentBathroom,
	EquipmentRadio,
	EquipmentRefrigerator,
	EquipmentMicrowave,
	EquipmentGas,
	EquipmentWater,
}

// Vehicle forms known to the catalog.
const (
	FormPanelTruck      = "panelTruck"
	FormFullyIntegrated = "fullyIntegrated"
	FormAlcove          = "alcove"
)

// VehicleForms lists the forms offered by the filter panel.
var VehicleForms = []string{FormPanelTruck, FormFullyIntegrated, FormAlcove}

// TransmissionAutomatic is the only transmission the filter panel offers.
const TransmissionAutomatic = "automatic"

// ID is a listing identifier. The remote source may encode it as a JSON
// string or a JSON number; both decode to the same string form.
type ID string

// UnmarshalJSON accepts both string and numeric identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode listing id: %w", err)
		}
		*id = ID(NormalizeID(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode listing id: %w", err)
	}
	*id = ID(NormalizeID(n))
	return nil
}

// String returns the string form of the identifier.
func (id ID) String() string {
	return string(id)
}

// NormalizeID coerces an identifier of any supported type to its string
// form, so numeric and string ids compare equal.
func NormalizeID(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case ID:
		return strings.TrimSpace(string(typed))
	case json.Number:
		if i, err := typed.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		if f, err := typed.Float64(); err == nil {
			return NormalizeID(f)
		}
		return typed.String()
	case int:
		return strconv.Itoa(typed)
	case int32:
		return strconv.FormatInt(int64(typed), 10)
	case int64:
		return strconv.FormatInt(typed, 10)
	case uint:
		return strconv.FormatUint(uint64(typed), 10)
	case uint32:
		return strconv.FormatUint(uint64(typed), 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	case float32:
		return NormalizeID(float64(typed))
	case float64:
		if typed == math.Trunc(typed) && math.Abs(typed) < 1e15 {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}

// GalleryImage is a thumbnail/original image pair.
type GalleryImage struct {
	Thumb    string `json:"thumb"`
	Original string `json:"original"`
}

// URL returns the original image, falling back to the thumbnail.
func (g GalleryImage) URL() string {
	if g.Original != "" {
		return g.Original
	}
	return g.Thumb
}

// Review is a single customer review of a listing.
type Review struct {
	ReviewerName   string  `json:"reviewer_name"`
	ReviewerRating float64 `json:"reviewer_rating"`
	Comment        string  `json:"comment"`
}

// Listing is an immutable snapshot of a camper as returned by the remote
// catalog. Missing fields decode to their zero value.
type Listing struct {
	ID           ID      `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	Location     string  `json:"location"`
	Description  string  `json:"description"`
	Form         string  `json:"form"`
	Length       string  `json:"length"`
	Width        string  `json:"width"`
	Height       string  `json:"height"`
	Tank         string  `json:"tank"`
	Consumption  string  `json:"consumption"`
	Transmission string  `json:"transmission"`
	Engine       string  `json:"engine"`

	AC           bool `json:"AC"`
	Bathroom     bool `json:"bathroom"`
	Kitchen      bool `json:"kitchen"`
	TV           bool `json:"TV"`
	Radio        bool `json:"radio"`
	Refrigerator bool `json:"refrigerator"`
	Microwave    bool `json:"microwave"`
	Gas          bool `json:"gas"`
	Water        bool `json:"water"`

	Gallery []GalleryImage `json:"gallery"`
	Reviews []Review       `json:"reviews"`
}

// HasEquipment reports whether the listing has the named equipment flag set.
// Unknown flag names are never present.
func (l Listing) HasEquipment(flag string) bool {
	switch flag {
	case EquipmentAC:
		return l.AC
	case EquipmentKitchen:
		return l.Kitchen
	case EquipmentTV:
		return l.TV
	case EquipmentBathroom:
		return l.Bathroom
	case EquipmentRadio:
		return l.Radio
	case EquipmentRefrigerator:
		return l.Refrigerator
	case EquipmentMicrowave:
		return l.Microwave
	case EquipmentGas:
		return l.Gas
	case EquipmentWater:
		return l.Water
	default:
		return false
	}
}

// Thumbnail returns the first gallery thumbnail, or the original when no
// thumbnail is present.
func (l Listing) Thumbnail() string {
	if len(l.Gallery) == 0 {
		return ""
	}
	if l.Gallery[0].Thumb != "" {
		return l.Gallery[0].Thumb
	}
	return l.Gallery[0].Original
}

// IsValidEquipment reports whether flag is a known equipment flag.
func IsValidEquipment(flag string) bool {
	for _, f := range EquipmentFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// LookupEquipment resolves a flag name case-insensitively to its canonical
// spelling.
func LookupEquipment(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, f := range EquipmentFlags {
		if strings.EqualFold(f, name) {
			return f, true
		}
	}
	return "", false
}

// ListResponse is the shape returned by the catalog list endpoint.
type ListResponse struct {
	Total int       `json:"total"`
	Items []Listing `json:"items"`
}
