package parting

// AxisMetrics holds the raw metrics of one candidate plane
type AxisMetrics struct {
	Axis            Axis    `json:"axis"`
	DraftCompliance float64 `json:"draft_compliance"`
	UndercutRatio   float64 `json:"undercut_ratio"`
	Complexity      float64 `json:"complexity"`
	Cosmetic        float64 `json:"cosmetic"`
	Symmetric       bool    `json:"symmetric"`
}

// SelectionResult is the outcome of one parting plane analysis
type SelectionResult struct {
	// SymmetricAxes lists the mirror-symmetric candidates in XY, XZ, YZ order
	SymmetricAxes []Axis `json:"symmetric_axes"`
	BestAxis      Axis   `json:"best_axis"`
	// RawBest is the lowest scoring axis before the symmetry preference
	RawBest Axis `json:"raw_best"`
	// UndercutFaces are the faces of the mesh facing against the pull
	// direction of BestAxis, ascending
	UndercutFaces []int          `json:"undercut_faces"`
	Metrics       [3]AxisMetrics `json:"metrics"`
	Scores        [3]float64     `json:"scores"`
	Weights       Weights        `json:"weights"`
}

// UndercutCount returns the number of undercut faces for the chosen plane
func (r SelectionResult) UndercutCount() int {
	return len(r.UndercutFaces)
}

// IsSymmetric reports whether the part is mirror-symmetric across a
func (r SelectionResult) IsSymmetric(a Axis) bool {
	for _, s := range r.SymmetricAxes {
		if s == a {
			return true
		}
	}
	return false
}

// SymmetryPreferred reports whether the symmetry tie-break changed the
// choice
func (r SelectionResult) SymmetryPreferred() bool {
	return r.BestAxis != r.RawBest
}
