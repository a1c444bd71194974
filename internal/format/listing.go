package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/traveltrucks/traveltrucks/internal/domain"
)

// FormatPrice renders v with two decimals and a comma separator.
// Non-finite values render as "0,00".
func FormatPrice(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0,00"
	}
	return strings.Replace(strconv.FormatFloat(v, 'f', 2, 64), ".", ",", 1)
}

// PriceLabel is the euro price shown on cards and detail pages.
func PriceLabel(v float64) string {
	return "€" + FormatPrice(v)
}

// RatingSummary renders "4.4 (3 Reviews)".
func RatingSummary(l domain.Listing) string {
	return fmt.Sprintf("%.1f (%d Reviews)", l.Rating, len(l.Reviews))
}

// CardTags are the short tags shown on a catalog card.
func CardTags(l domain.Listing) []string {
	tags := []string{}
	if l.Transmission != "" {
		tags = append(tags, capitalize(l.Transmission))
	}
	if l.Engine != "" {
		tags = append(tags, l.Engine)
	}
	if l.Kitchen {
		tags = append(tags, "Kitchen")
	}
	if l.AC {
		tags = append(tags, "AC")
	}
	return tags
}

// FeatureTags lists transmission, engine and every equipment flag the
// listing has, in display order.
func FeatureTags(l domain.Listing) []string {
	tags := []string{}
	if l.Transmission != "" {
		tags = append(tags, capitalize(l.Transmission))
	}
	if l.Engine != "" {
		tags = append(tags, capitalize(l.Engine))
	}
	for _, flag := range featureOrder {
		if !l.HasEquipment(flag) {
			continue
		}
		switch flag {
		case domain.EquipmentAC, domain.EquipmentTV:
			tags = append(tags, flag)
		default:
			tags = append(tags, capitalize(flag))
		}
	}
	return tags
}

var featureOrder = []string{
	domain.EquipmentAC,
	domain.EquipmentBathroom,
	domain.EquipmentKitchen,
	domain.EquipmentTV,
	domain.EquipmentRadio,
	domain.EquipmentRefrigerator,
	domain.EquipmentMicrowave,
	domain.EquipmentGas,
	domain.EquipmentWater,
}

// Detail is one labelled vehicle dimension.
type Detail struct {
	Label string
	Value string
}

// Details returns the non-empty vehicle details in display order.
func Details(l domain.Listing) []Detail {
	pairs := []Detail{
		{"Form", l.Form},
		{"Length", l.Length},
		{"Width", l.Width},
		{"Height", l.Height},
		{"Tank", l.Tank},
		{"Consumption", l.Consumption},
	}
	out := pairs[:0]
	for _, p := range pairs {
		if p.Value != "" {
			out = append(out, p)
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
