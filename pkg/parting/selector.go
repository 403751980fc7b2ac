package parting

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// SymmetryPreferenceEpsilon is the score margin within which a symmetric
// plane is preferred over the lowest scoring one
const SymmetryPreferenceEpsilon = 0.01

// Weights scale the individual metrics in the plane score
type Weights struct {
	Draft      float64 `json:"draft"`
	Undercut   float64 `json:"undercut"`
	Complexity float64 `json:"complexity"`
	Cosmetic   float64 `json:"cosmetic"`
}

// DefaultWeights returns the standard weighting
func DefaultWeights() Weights {
	return Weights{
		Draft:      3.0,
		Undercut:   4.0,
		Complexity: 2.0,
		Cosmetic:   1.0,
	}
}

// Validate checks that every weight is a non-negative number
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"draft":      w.Draft,
		"undercut":   w.Undercut,
		"complexity": w.Complexity,
		"cosmetic":   w.Cosmetic,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("weight %s must be a non-negative number, got %v", name, v)
		}
	}
	return nil
}

// Options configure a Selector
type Options struct {
	Weights           Weights
	DraftToleranceDeg float64
	SymmetryTolerance float64
	// Section measures parting line length. nil rates every plane's
	// complexity 0.
	Section  SectionLength
	Cosmetic CosmeticScorer
	Logger   zerolog.Logger
}

// DefaultOptions returns the standard configuration with real
// cross-sections and the neutral cosmetic scorer
func DefaultOptions() Options {
	return Options{
		Weights:           DefaultWeights(),
		DraftToleranceDeg: DefaultDraftToleranceDeg,
		SymmetryTolerance: DefaultSymmetryTolerance,
		Section:           PlanarSection{},
		Cosmetic:          NeutralCosmetic{},
		Logger:            zerolog.Nop(),
	}
}

// Validate checks the numeric options
func (o Options) Validate() error {
	if err := o.Weights.Validate(); err != nil {
		return err
	}
	if math.IsNaN(o.DraftToleranceDeg) || o.DraftToleranceDeg < 0 || o.DraftToleranceDeg > 90 {
		return fmt.Errorf("draft tolerance must be within [0, 90] degrees, got %v", o.DraftToleranceDeg)
	}
	if math.IsNaN(o.SymmetryTolerance) || o.SymmetryTolerance < 0 {
		return fmt.Errorf("symmetry tolerance must be non-negative, got %v", o.SymmetryTolerance)
	}
	return nil
}

// Selector chooses the parting plane of a mesh
type Selector struct {
	opts       Options
	complexity ComplexityEvaluator
}

// NewSelector validates opts and creates a selector
func NewSelector(opts Options) (*Selector, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid selector options: %w", err)
	}
	if opts.Cosmetic == nil {
		opts.Cosmetic = NeutralCosmetic{}
	}

	return &Selector{
		opts: opts,
		complexity: ComplexityEvaluator{
			Section: opts.Section,
			Logger:  opts.Logger,
		},
	}, nil
}

// Options returns the configuration of the selector
func (s *Selector) Options() Options {
	return s.opts
}

// SelectPlane returns the best parting plane of m
func (s *Selector) SelectPlane(ctx context.Context, m *mesh.TriangleMesh) (Axis, error) {
	result, err := s.Analyze(ctx, m)
	if err != nil {
		return 0, err
	}
	return result.BestAxis, nil
}

// Analyze evaluates every candidate plane and returns the full result
func (s *Selector) Analyze(ctx context.Context, m *mesh.TriangleMesh) (SelectionResult, error) {
	metrics, normals, err := s.evaluate(ctx, m)
	if err != nil {
		return SelectionResult{}, err
	}

	best, rawBest, scores := ChooseAxis(metrics, s.opts.Weights)

	symmetric := make([]Axis, 0, len(Axes))
	for _, a := range Axes {
		if metrics[a].Symmetric {
			symmetric = append(symmetric, a)
		}
	}

	result := SelectionResult{
		SymmetricAxes: symmetric,
		BestAxis:      best,
		RawBest:       rawBest,
		UndercutFaces: UndercutFaces(normals, best),
		Metrics:       metrics,
		Scores:        scores,
		Weights:       s.opts.Weights,
	}

	s.opts.Logger.Debug().
		Stringer("best", best).
		Stringer("raw_best", rawBest).
		Floats64("scores", scores[:]).
		Int("undercut_faces", len(result.UndercutFaces)).
		Msg("parting plane selected")

	return result, nil
}

func (s *Selector) evaluate(ctx context.Context, m *mesh.TriangleMesh) ([3]AxisMetrics, mesh.NormalSet, error) {
	var metrics [3]AxisMetrics
	if m == nil || m.FaceCount() == 0 {
		return metrics, mesh.NormalSet{}, fmt.Errorf("nothing to analyze: %w", mesh.ErrInvalidMesh)
	}

	normals := mesh.ComputeNormals(m)
	if normals.Degenerate() > 0 {
		s.opts.Logger.Debug().Int("faces", normals.Degenerate()).Msg("mesh has degenerate faces")
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, a := range Axes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Each goroutine writes only its own slot.
			metrics[a] = s.evaluateAxis(m, normals, a)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return metrics, normals, fmt.Errorf("axis evaluation cancelled: %w", err)
	}
	return metrics, normals, nil
}

func (s *Selector) evaluateAxis(m *mesh.TriangleMesh, normals mesh.NormalSet, axis Axis) AxisMetrics {
	draft, err := DraftCompliance(normals, axis, s.opts.DraftToleranceDeg)
	if err != nil {
		s.opts.Logger.Debug().Stringer("axis", axis).Err(err).Msg("draft compliance unavailable")
		draft = 0
	}

	return AxisMetrics{
		Axis:            axis,
		DraftCompliance: draft,
		UndercutRatio:   UndercutRatio(normals, axis),
		Complexity:      s.complexity.Complexity(m, axis),
		Cosmetic:        clampUnit(s.opts.Cosmetic.Cosmetic(m, axis)),
		Symmetric:       IsSymmetric(m, axis, s.opts.SymmetryTolerance),
	}
}

// Score computes the weighted score of every candidate; lower is better.
// Complexity is normalized by the largest complexity of the three.
func Score(metrics [3]AxisMetrics, w Weights) [3]float64 {
	maxComplexity := 0.0
	for _, m := range metrics {
		maxComplexity = math.Max(maxComplexity, m.Complexity)
	}
	divisor := maxComplexity
	if divisor <= 0 {
		divisor = 1.0
	}

	var scores [3]float64
	for i, m := range metrics {
		scores[i] = w.Draft*(1-m.DraftCompliance) +
			w.Undercut*m.UndercutRatio +
			w.Complexity*(m.Complexity/divisor) -
			w.Cosmetic*m.Cosmetic
	}
	return scores
}

// ChooseAxis scores the candidates and picks the best one. rawBest is the
// lowest score, earliest axis on ties. best is the first symmetric axis
// scoring within SymmetryPreferenceEpsilon of rawBest, or rawBest if there
// is none.
func ChooseAxis(metrics [3]AxisMetrics, w Weights) (best, rawBest Axis, scores [3]float64) {
	scores = Score(metrics, w)

	rawBest = XY
	for _, a := range Axes {
		if scores[a] < scores[rawBest] {
			rawBest = a
		}
	}

	for _, a := range Axes {
		if metrics[a].Symmetric && math.Abs(scores[a]-scores[rawBest]) <= SymmetryPreferenceEpsilon {
			return a, rawBest, scores
		}
	}
	return rawBest, rawBest, scores
}

// IsInvalidMesh reports whether err was caused by an unusable mesh
func IsInvalidMesh(err error) bool {
	return errors.Is(err, mesh.ErrInvalidMesh)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
