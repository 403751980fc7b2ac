// Package material suggests molding materials for a set of required
// properties
package material

import (
	"fmt"
	"sort"
	"strings"
)

// Property is a material characteristic a part may require
type Property string

const (
	ImpactStrength     Property = "impact-strength"
	Stiffness          Property = "stiffness"
	HeatResistance     Property = "heat-resistance"
	AbrasionResistance Property = "abrasion-resistance"
	UVResistance       Property = "uv-resistance"
	MoistureResistance Property = "moisture-resistance"
	ChemicalResistance Property = "chemical-resistance"
	HighSurfaceQuality Property = "high-surface-quality"
	Texturable         Property = "texturable"
	Recyclable         Property = "recyclable"
	RecycledGrade      Property = "recycled-grade"
	BioBased           Property = "bio-based"
)

// Category groups properties for display
type Category struct {
	Name       string
	Properties []Property
}

// Categories lists every known property
var Categories = []Category{
	{"Mechanical / functional", []Property{ImpactStrength, Stiffness, HeatResistance, AbrasionResistance}},
	{"Environmental resistance", []Property{UVResistance, MoistureResistance, ChemicalResistance}},
	{"Appearance / surface", []Property{HighSurfaceQuality, Texturable}},
	{"Sustainability", []Property{Recyclable, RecycledGrade, BioBased}},
}

// Material is one entry of the database
type Material struct {
	Name       string
	Properties []Property
}

// Has reports whether the material offers p
func (m Material) Has(p Property) bool {
	for _, q := range m.Properties {
		if q == p {
			return true
		}
	}
	return false
}

// Database is the built-in material list, in preference order
var Database = []Material{
	{"PA6-GF30", []Property{ImpactStrength, Stiffness, HeatResistance, MoistureResistance, Recyclable}},
	{"PC", []Property{ImpactStrength, HighSurfaceQuality, UVResistance, RecycledGrade}},
	{"ABS", []Property{Texturable, ImpactStrength, Recyclable}},
	{"PLA", []Property{BioBased, Recyclable, Texturable}},
	{"PP", []Property{MoistureResistance, RecycledGrade, Recyclable}},
}

// Suggestion is a material with the number of requested properties it has
type Suggestion struct {
	Material Material
	Score    int
}

// Suggest ranks the database by how many of the required properties each
// material offers. Materials offering none are left out; equal scores keep
// database order.
func Suggest(required []Property) []Suggestion {
	wanted := make(map[Property]bool, len(required))
	for _, p := range required {
		wanted[p] = true
	}

	var out []Suggestion
	for _, m := range Database {
		score := 0
		for p := range wanted {
			if m.Has(p) {
				score++
			}
		}
		if score > 0 {
			out = append(out, Suggestion{Material: m, Score: score})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// ParseProperty parses a property name
func ParseProperty(s string) (Property, error) {
	name := Property(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range Categories {
		for _, p := range c.Properties {
			if p == name {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("unknown material property %q", s)
}
