package parting

import "github.com/philipparndt/gomold/pkg/mesh"

// CosmeticScorer rates how much visible surface a parting line through the
// candidate plane would mark, in [0,1]. Higher is better.
type CosmeticScorer interface {
	Cosmetic(m *mesh.TriangleMesh, axis Axis) float64
}

// NeutralCosmetic is the placeholder scorer; it rates every plane 0
type NeutralCosmetic struct{}

func (NeutralCosmetic) Cosmetic(*mesh.TriangleMesh, Axis) float64 {
	return 0
}
