package optimization

import (
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/openslam/posegraph/num"
	"github.com/openslam/posegraph/spatialmath"
)

// LandmarkObservation is a single landmark detection: the rigid transform
// between the landmark and the tracking frame at the observation time, with
// its uncertainty model. Immutable once captured.
type LandmarkObservation struct {
	LandmarkToTracking spatialmath.Rigid
	Time               time.Time
	TranslationWeight  float64
	RotationWeight     float64
	// InverseCovariance is the 6x6 symmetric positive semi-definite
	// information matrix of the measurement, translation first.
	InverseCovariance *mat.SymDense
	// ObservedFromTracking is true when the transform was measured from the
	// tracking frame, false when it was measured from the landmark frame.
	ObservedFromTracking bool
}

// Validate checks the observation's uncertainty model. Evaluation itself
// performs no checks.
func (o *LandmarkObservation) Validate() error {
	var errs error
	if o.TranslationWeight < 0 {
		errs = multierr.Combine(errs, errors.New("translation weight must be non-negative"))
	}
	if o.RotationWeight < 0 {
		errs = multierr.Combine(errs, errors.New("rotation weight must be non-negative"))
	}
	if o.InverseCovariance == nil {
		errs = multierr.Combine(errs, errors.New("inverse covariance must be set"))
	} else if n := o.InverseCovariance.SymmetricDim(); n != 6 {
		errs = multierr.Combine(errs, errors.Errorf("inverse covariance must be 6x6, got %dx%d", n, n))
	}
	return errs
}

// LandmarkCost2D measures the weighted error between a landmark observation
// and the landmark pose predicted by interpolating the trajectory between
// the two nodes bracketing the observation time. Node poses are 2D (x, y,
// yaw) embedded in 3D by their gravity alignments. Everything derived from
// the observation and the node timestamps is captured at construction; after
// that the cost is a pure evaluator, safe for concurrent use.
type LandmarkCost2D struct {
	landmarkToTracking   spatialmath.Rigid
	translationWeight    float64
	rotationWeight       float64
	interpolation        float64
	interpolatedGravity  quat.Number
	observedFromTracking bool
	sqrtInformation      [6][6]float64
}

// NewLandmarkCost2D binds a cost to one (observation, prev node, next node)
// triple. The nodes must be consecutive and the observation time should lie
// between their timestamps; an observation outside that interval is
// extrapolated, with a warning logged here rather than on the hot path.
func NewLandmarkCost2D(obs LandmarkObservation, prev, next NodeSpec2D, logger golog.Logger) (*LandmarkCost2D, error) {
	if err := obs.Validate(); err != nil {
		return nil, err
	}
	t, err := interpolationParameter(obs.Time, prev.Time, next.Time, logger)
	if err != nil {
		return nil, err
	}
	return &LandmarkCost2D{
		landmarkToTracking:   obs.LandmarkToTracking,
		translationWeight:    obs.TranslationWeight,
		rotationWeight:       obs.RotationWeight,
		interpolation:        t,
		interpolatedGravity:  spatialmath.Slerp(prev.GravityAlignment, next.GravityAlignment, t),
		observedFromTracking: obs.ObservedFromTracking,
		sqrtInformation:      sqrtInformation(obs.InverseCovariance, logger),
	}, nil
}

// EvaluateLandmarkCost2D computes the 6-vector residual for the given
// parameter blocks: previous node pose (x, y, yaw), next node pose (x, y,
// yaw), landmark rotation (w, x, y, z), landmark translation (x, y, z).
func EvaluateLandmarkCost2D[T num.Number[T]](
	c *LandmarkCost2D,
	prevPose, nextPose, landmarkRotation, landmarkTranslation []T,
) [6]T {
	rotation, translation := interpolateNodes2D(prevPose, nextPose, c.interpolation, c.interpolatedGravity)
	return landmarkError(
		c.landmarkToTracking, c.observedFromTracking,
		rotation, translation,
		quatFromBlock(landmarkRotation), vec3FromBlock(landmarkTranslation),
		c.translationWeight, c.rotationWeight, &c.sqrtInformation,
	)
}

// LandmarkCost2DFunc adapts the cost to the solver-facing residual function
// shape, with parameter blocks in the EvaluateLandmarkCost2D order.
func LandmarkCost2DFunc[T num.Number[T]](c *LandmarkCost2D) num.Func[T] {
	return func(params [][]T) []T {
		e := EvaluateLandmarkCost2D(c, params[0], params[1], params[2], params[3])
		return e[:]
	}
}

// LandmarkCost3D is LandmarkCost2D for trajectories with full 3D node poses.
// Node rotations are optimization variables, so the interpolation slerps
// them generically instead of decomposing against a gravity alignment.
type LandmarkCost3D struct {
	landmarkToTracking   spatialmath.Rigid
	translationWeight    float64
	rotationWeight       float64
	interpolation        float64
	observedFromTracking bool
	sqrtInformation      [6][6]float64
}

// NewLandmarkCost3D binds a cost to one (observation, prev node, next node)
// triple with 3D nodes.
func NewLandmarkCost3D(obs LandmarkObservation, prev, next NodeSpec3D, logger golog.Logger) (*LandmarkCost3D, error) {
	if err := obs.Validate(); err != nil {
		return nil, err
	}
	t, err := interpolationParameter(obs.Time, prev.Time, next.Time, logger)
	if err != nil {
		return nil, err
	}
	return &LandmarkCost3D{
		landmarkToTracking:   obs.LandmarkToTracking,
		translationWeight:    obs.TranslationWeight,
		rotationWeight:       obs.RotationWeight,
		interpolation:        t,
		observedFromTracking: obs.ObservedFromTracking,
		sqrtInformation:      sqrtInformation(obs.InverseCovariance, logger),
	}, nil
}

// EvaluateLandmarkCost3D computes the 6-vector residual for the given
// parameter blocks: previous node rotation (w, x, y, z), previous node
// translation, next node rotation, next node translation, landmark rotation,
// landmark translation.
func EvaluateLandmarkCost3D[T num.Number[T]](
	c *LandmarkCost3D,
	prevRotation, prevTranslation, nextRotation, nextTranslation, landmarkRotation, landmarkTranslation []T,
) [6]T {
	rotation, translation := interpolateNodes3D(prevRotation, prevTranslation, nextRotation, nextTranslation, c.interpolation)
	return landmarkError(
		c.landmarkToTracking, c.observedFromTracking,
		rotation, translation,
		quatFromBlock(landmarkRotation), vec3FromBlock(landmarkTranslation),
		c.translationWeight, c.rotationWeight, &c.sqrtInformation,
	)
}

// LandmarkCost3DFunc adapts the cost to the solver-facing residual function
// shape, with parameter blocks in the EvaluateLandmarkCost3D order.
func LandmarkCost3DFunc[T num.Number[T]](c *LandmarkCost3D) num.Func[T] {
	return func(params [][]T) []T {
		e := EvaluateLandmarkCost3D(c, params[0], params[1], params[2], params[3], params[4], params[5])
		return e[:]
	}
}

// landmarkError runs the shared tail of both landmark costs: unscaled error
// in the direction given by observedFromTracking, translation error rotated
// into the world frame by the interpolated orientation, then weight and
// square-root-information scaling.
func landmarkError[T num.Number[T]](
	measured spatialmath.Rigid, observedFromTracking bool,
	interpolatedRotation spatialmath.Quaternion[T], interpolatedTranslation spatialmath.Vec3[T],
	landmarkRotation spatialmath.Quaternion[T], landmarkTranslation spatialmath.Vec3[T],
	translationWeight, rotationWeight float64, sqrtInfo *[6][6]float64,
) [6]T {
	var e [6]T
	if observedFromTracking {
		e = computeUnscaledError(measured, interpolatedRotation, interpolatedTranslation, landmarkRotation, landmarkTranslation)
	} else {
		e = computeUnscaledError(measured, landmarkRotation, landmarkTranslation, interpolatedRotation, interpolatedTranslation)
	}
	e = rotateErrorToWorld(e, interpolatedRotation)
	return scaleError(e, translationWeight, rotationWeight, sqrtInfo)
}

// interpolationParameter computes the dimensionless position of obsTime
// within [prevTime, nextTime]. A degenerate interval is an error; a
// parameter outside [0,1] is permitted but logged.
func interpolationParameter(obsTime, prevTime, nextTime time.Time, logger golog.Logger) (float64, error) {
	interval := nextTime.Sub(prevTime)
	if interval <= 0 {
		return 0, errors.Errorf("node interval must be positive, got %v", interval)
	}
	t := obsTime.Sub(prevTime).Seconds() / interval.Seconds()
	if t < 0 || t > 1 {
		logger.Warnf("observation at interpolation parameter %f outside [0,1]; pose will be extrapolated", t)
	}
	return t, nil
}
