package cooling

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Ridge is the regularization strength of the fitted model
const Ridge = 0.1

// Input describes a mold for the cooling power estimate
type Input struct {
	Cavities        int
	Volume          float64 // mm³
	SurfaceArea     float64 // mm²
	AspectRatio     float64
	ChannelDiameter float64 // mm
	ChannelDistance float64 // mm
}

func (in Input) features() []float64 {
	return []float64{
		float64(in.Cavities),
		in.Volume,
		in.SurfaceArea,
		in.AspectRatio,
		in.ChannelDiameter,
		in.ChannelDistance,
	}
}

// Validate checks that every input is usable
func (in Input) Validate() error {
	if in.Cavities < 1 {
		return fmt.Errorf("cavities must be at least 1, got %d", in.Cavities)
	}
	for i, v := range in.features() {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("feature %d must be a positive number, got %v", i, v)
		}
	}
	return nil
}

// Sample is one reference measurement
type Sample struct {
	Input Input
	Power float64 // kW
}

// ReferenceData are the measurements the default estimator is fitted on
var ReferenceData = []Sample{
	{Input{Cavities: 1, Volume: 10000, SurfaceArea: 2500, AspectRatio: 1.2, ChannelDiameter: 6, ChannelDistance: 8}, 3.0},
	{Input{Cavities: 2, Volume: 18000, SurfaceArea: 3800, AspectRatio: 1.1, ChannelDiameter: 8, ChannelDistance: 6}, 5.2},
	{Input{Cavities: 4, Volume: 25000, SurfaceArea: 4800, AspectRatio: 1.4, ChannelDiameter: 10, ChannelDistance: 5}, 7.8},
	{Input{Cavities: 1, Volume: 12000, SurfaceArea: 2600, AspectRatio: 1.3, ChannelDiameter: 6, ChannelDistance: 7}, 3.3},
	{Input{Cavities: 3, Volume: 21000, SurfaceArea: 4000, AspectRatio: 1.2, ChannelDiameter: 9, ChannelDistance: 4}, 6.1},
}

// Estimator predicts cooling power with a ridge regression on
// standardized features
type Estimator struct {
	mean      []float64
	std       []float64
	intercept float64
	weights   *mat.VecDense
	logger    zerolog.Logger
}

// Fit trains an estimator on the given samples
func Fit(samples []Sample, ridge float64, logger zerolog.Logger) (*Estimator, error) {
	if len(samples) < 2 {
		return nil, errors.New("at least two samples are required")
	}
	d := len(samples[0].Input.features())
	n := len(samples)

	e := &Estimator{
		mean:   make([]float64, d),
		std:    make([]float64, d),
		logger: logger,
	}

	column := make([]float64, n)
	for j := 0; j < d; j++ {
		for i, s := range samples {
			column[i] = s.Input.features()[j]
		}
		e.mean[j], e.std[j] = stat.MeanStdDev(column, nil)
		if e.std[j] == 0 {
			e.std[j] = 1
		}
	}

	targets := make([]float64, n)
	for i, s := range samples {
		targets[i] = s.Power
	}
	e.intercept = stat.Mean(targets, nil)

	x := mat.NewDense(n, d, nil)
	y := mat.NewVecDense(n, nil)
	for i, s := range samples {
		x.SetRow(i, e.standardize(s.Input))
		y.SetVec(i, s.Power-e.intercept)
	}

	// (XᵀX + λI) w = Xᵀy
	var gram mat.Dense
	gram.Mul(x.T(), x)
	for j := 0; j < d; j++ {
		gram.Set(j, j, gram.At(j, j)+ridge)
	}
	var rhs mat.VecDense
	rhs.MulVec(x.T(), y)

	e.weights = mat.NewVecDense(d, nil)
	if err := e.weights.SolveVec(&gram, &rhs); err != nil {
		return nil, fmt.Errorf("failed to fit cooling model: %w", err)
	}
	return e, nil
}

// Default returns the estimator fitted on ReferenceData
func Default(logger zerolog.Logger) (*Estimator, error) {
	return Fit(ReferenceData, Ridge, logger)
}

func (e *Estimator) standardize(in Input) []float64 {
	f := in.features()
	for j := range f {
		f[j] = (f[j] - e.mean[j]) / e.std[j]
	}
	return f
}

// Estimate returns the predicted cooling power in kW, rounded to two
// decimals and never negative
func (e *Estimator) Estimate(in Input) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, fmt.Errorf("invalid cooling input: %w", err)
	}

	power := e.intercept + mat.Dot(mat.NewVecDense(len(e.mean), e.standardize(in)), e.weights)
	power = math.Max(0, power)
	return math.Round(power*100) / 100, nil
}

// Predict is Estimate for display purposes: failures are logged and
// reported as 0 kW
func (e *Estimator) Predict(in Input) float64 {
	power, err := e.Estimate(in)
	if err != nil {
		e.logger.Warn().Err(err).Msg("cooling power estimate failed")
		return 0
	}
	return power
}
