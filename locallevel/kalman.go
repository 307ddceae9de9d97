package locallevel

// filterResult holds the output of one Kalman filter pass over a
// regression-adjusted series.
type filterResult struct {
	preds      []float64 // one-step-ahead state predictions a_{t|t-1}
	predVars   []float64 // one-step-ahead predictive variances F_t
	innov      []float64 // innovations v_t
	finalLevel float64   // filtered level after the last observation
	finalVar   float64   // filtered level variance after the last observation
}

// diffuseScale inflates the initial state variance so the first observation
// dominates the prior.
const diffuseScale = 1e7

// runFilter runs the Kalman filter for the local-level-with-drift model
//
//	level[t] = level[t-1] + drift + eta[t],  eta ~ N(0, levelVar)
//	z[t]     = level[t] + eps[t],            eps ~ N(0, obsVar)
//
// over z. The state is initialized diffusely at z[0]; the entry for t=0 in
// the returned slices reproduces the observation with variance obsVar, and
// likelihood contributions should use t >= 1 only.
func runFilter(z []float64, drift, levelVar, obsVar float64) filterResult {
	n := len(z)
	res := filterResult{
		preds:    make([]float64, n),
		predVars: make([]float64, n),
		innov:    make([]float64, n),
	}
	if n == 0 {
		return res
	}

	initVar := diffuseScale
	if obsVar > 0 {
		initVar = diffuseScale * obsVar
	}

	a := z[0]
	p := initVar

	res.preds[0] = z[0]
	res.predVars[0] = obsVar
	res.innov[0] = 0

	for t := 1; t < n; t++ {
		aPred := a + drift
		pPred := p + levelVar
		f := pPred + obsVar
		v := z[t] - aPred

		res.preds[t] = aPred
		res.predVars[t] = f
		res.innov[t] = v

		if f > 0 {
			k := pPred / f
			a = aPred + k*v
			p = pPred * (1 - k)
		} else {
			a = aPred
			p = pPred
		}
	}

	res.finalLevel = a
	res.finalVar = p
	return res
}
