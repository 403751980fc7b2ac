package mesh

import "errors"

var (
	// ErrInvalidMesh is returned for meshes without faces, with face indices
	// outside the vertex range or with non-finite coordinates.
	ErrInvalidMesh = errors.New("invalid mesh")

	// ErrGeometryDegenerate is returned when a metric is undefined for the
	// given geometry (no faces to measure, a zero-extent bounding box).
	ErrGeometryDegenerate = errors.New("degenerate geometry")

	// ErrCapabilityUnavailable is returned by optional analysis capabilities
	// that are not available in the current configuration.
	ErrCapabilityUnavailable = errors.New("capability unavailable")
)
