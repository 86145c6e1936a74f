package utility

import (
	"math"

	"github.com/katalvlaran/zonechoice/timeperiod"
)

// lanes is the block width of the estimation kernel. Each block loads the
// cached attributes into fixed-size arrays so the compiler can keep the inner
// loops branch-free and bounds-check free.
const lanes = 8

// estimationLogsums writes exp(auto) + exp(transit) for cells [lo, hi) of
// the cached period attributes into dst. Transit utility is selected to -Inf
// where walk <= 0 and the whole logsum to 0 where no auto path exists, so
// 0·Inf never occurs.
func estimationLogsums(p *Params, e *timeperiod.Estimation, dst []float64, lo, hi int) {
	negInf := math.Inf(-1)
	var autoU, transitU [lanes]float64
	k := lo
	for ; k+lanes <= hi; k += lanes {
		aivtt := (*[lanes]float64)(e.AutoIVTT[k : k+lanes])
		acost := (*[lanes]float64)(e.AutoCost[k : k+lanes])
		tivtt := (*[lanes]float64)(e.TransitIVTT[k : k+lanes])
		twalk := (*[lanes]float64)(e.TransitWalk[k : k+lanes])
		twait := (*[lanes]float64)(e.TransitWait[k : k+lanes])
		tboard := (*[lanes]float64)(e.TransitBoarding[k : k+lanes])
		tfare := (*[lanes]float64)(e.TransitFare[k : k+lanes])
		path := (*[lanes]bool)(e.AutoPath[k : k+lanes])
		out := (*[lanes]float64)(dst[k : k+lanes])

		for l := 0; l < lanes; l++ {
			autoU[l] = aivtt[l]*p.AutoTime + acost[l]*p.Cost
		}
		for l := 0; l < lanes; l++ {
			u := p.TransitConstant +
				tivtt[l]*p.TransitTime +
				twalk[l]*p.TransitWalk +
				twait[l]*p.TransitWait +
				tboard[l]*p.TransitBoarding +
				tfare[l]*p.Cost
			transitU[l] = negInf
			if twalk[l] > 0 {
				transitU[l] = u
			}
		}
		for l := 0; l < lanes; l++ {
			v := math.Exp(autoU[l]) + math.Exp(transitU[l])
			out[l] = 0
			if path[l] {
				out[l] = v
			}
		}
	}
	// remainder
	estimationLogsumsScalar(p, e, dst, k, hi)
}

// estimationLogsumsScalar is the reference twin of estimationLogsums.
func estimationLogsumsScalar(p *Params, e *timeperiod.Estimation, dst []float64, lo, hi int) {
	for k := lo; k < hi; k++ {
		if !e.AutoPath[k] {
			dst[k] = 0
			continue
		}
		autoU := e.AutoIVTT[k]*p.AutoTime + e.AutoCost[k]*p.Cost
		transit := 0.0
		if e.TransitWalk[k] > 0 {
			transit = math.Exp(p.TransitConstant +
				e.TransitIVTT[k]*p.TransitTime +
				e.TransitWalk[k]*p.TransitWalk +
				e.TransitWait[k]*p.TransitWait +
				e.TransitBoarding[k]*p.TransitBoarding +
				e.TransitFare[k]*p.Cost)
		}
		dst[k] = math.Exp(autoU) + transit
	}
}
