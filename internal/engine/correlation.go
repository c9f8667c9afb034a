package engine

import "math"

// Correlation returns the Pearson coefficient between rating and
// log(voters+1) over the view. The result is NaN when it is undefined: fewer
// than two rows, or either series has zero variance.
func Correlation(v View) float64 {
	n := v.Len()
	if n < 2 {
		return math.NaN()
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	var sx, sy float64
	constX, constY := true, true
	for i := 0; i < n; i++ {
		m := v.At(i)
		xs[i] = m.Rating
		ys[i] = math.Log1p(float64(m.Voters))
		sx += xs[i]
		sy += ys[i]
		constX = constX && xs[i] == xs[0]
		constY = constY && ys[i] == ys[0]
	}
	// the centred sums below need not round to zero for a constant series
	if constX || constY {
		return math.NaN()
	}
	mx, my := sx/float64(n), sy/float64(n)

	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN()
	}
	r := sxy / math.Sqrt(sxx*syy)
	// rounding can push |r| a hair past 1
	return math.Max(-1, math.Min(1, r))
}

// IsUndefined reports whether a statistic carries the undefined sentinel.
func IsUndefined(x float64) bool {
	return math.IsNaN(x)
}
