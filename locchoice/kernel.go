package locchoice

// lanes is the block width of the masked accumulation kernel.
const lanes = 8

// odMultipliers fills space[i] with the OD-constant multiplier of each
// destination. When both anchors share the cube index pIndex, destinations
// in that same district additionally take expSamePD.
func odMultipliers(space []float64, row []int32, flatPD []int, exps []float64, pIndex, nIndex int, expSamePD float64) {
	if nIndex == pIndex {
		for i, pd := range flatPD {
			od := 1.0
			if idx := row[pd]; idx >= 0 {
				od = exps[idx]
				if pd == pIndex {
					od *= expSamePD
				}
			} else if pd == pIndex {
				od = expSamePD
			}
			space[i] = od
		}
		return
	}
	for i, pd := range flatPD {
		od := 1.0
		if idx := row[pd]; idx >= 0 {
			od = exps[idx]
		}
		space[i] = od
	}
}

// maskedProduct replaces space[i] with to[i]·from[i]·space[i] where the
// detour rowT[i]+colT[i] fits in available, 0 elsewhere, and returns the
// sum. Blocks of lanes keep per-lane partial totals combined at the end.
func maskedProduct(space, rowT, colT, to, from []float64, available float64) float64 {
	n := len(space)
	var acc [lanes]float64
	i := 0
	for ; i+lanes <= n; i += lanes {
		s := (*[lanes]float64)(space[i : i+lanes])
		rt := (*[lanes]float64)(rowT[i : i+lanes])
		ct := (*[lanes]float64)(colT[i : i+lanes])
		t := (*[lanes]float64)(to[i : i+lanes])
		f := (*[lanes]float64)(from[i : i+lanes])
		for l := 0; l < lanes; l++ {
			v := t[l] * f[l] * s[l]
			if !(rt[l]+ct[l] <= available) {
				v = 0
			}
			s[l] = v
			acc[l] += v
		}
	}
	total := 0.0
	for ; i < n; i++ {
		v := 0.0
		if rowT[i]+colT[i] <= available {
			v = to[i] * from[i] * space[i]
		}
		space[i] = v
		total += v
	}
	for l := 0; l < lanes; l++ {
		total += acc[l]
	}
	return total
}

// probabilitiesScalar is the fused single-pass reference of odMultipliers +
// maskedProduct.
func probabilitiesScalar(space, rowT, colT, to, from []float64, row []int32, flatPD []int, exps []float64,
	pIndex, nIndex int, expSamePD, available float64) float64 {
	total := 0.0
	for i, pd := range flatPD {
		if !(rowT[i]+colT[i] <= available) {
			space[i] = 0
			continue
		}
		od := 1.0
		idx := row[pd]
		switch {
		case idx >= 0 && nIndex == pIndex && pd == pIndex:
			od = exps[idx] * expSamePD
		case idx >= 0:
			od = exps[idx]
		case nIndex == pIndex && pd == pIndex:
			od = expSamePD
		}
		v := to[i] * from[i] * od
		space[i] = v
		total += v
	}
	return total
}
