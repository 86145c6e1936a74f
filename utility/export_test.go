package utility

import "github.com/katalvlaran/zonechoice/timeperiod"

// EstimationLogsums exposes the lane-blocked kernel to property tests.
func EstimationLogsums(p *Params, e *timeperiod.Estimation, dst []float64) {
	estimationLogsums(p, e, dst, 0, len(dst))
}

// EstimationLogsumsScalar exposes the scalar reference kernel.
func EstimationLogsumsScalar(p *Params, e *timeperiod.Estimation, dst []float64) {
	estimationLogsumsScalar(p, e, dst, 0, len(dst))
}
