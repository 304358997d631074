package alert

import "math"

// minSigma floors the volatility estimate so early samples cannot make
// every move look extreme.
const minSigma = 0.0005

// welfordState is an online mean/variance accumulator over tick returns,
// used to grade how unusual a move is relative to the instrument's own
// history.
type welfordState struct {
	count int64
	mean  float64
	m2    float64
}

func (w *welfordState) update(value float64) {
	w.count++
	delta := value - w.mean
	w.mean += delta / float64(w.count)
	delta2 := value - w.mean
	w.m2 += delta * delta2
}

func (w *welfordState) sigma() float64 {
	if w.count < 2 {
		return minSigma
	}
	variance := w.m2 / float64(w.count-1)
	return math.Max(math.Sqrt(variance), minSigma)
}
