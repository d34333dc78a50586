package performance

import "time"

// RollingAverage averages the last N durations. Not safe for concurrent
// use; the render loop owns it.
type RollingAverage struct {
	samples []time.Duration
	sum     time.Duration
	index   int
	filled  bool
}

// NewRollingAverage creates a tracker over windowSize samples.
func NewRollingAverage(windowSize int) *RollingAverage {
	if windowSize < 1 {
		windowSize = 1
	}
	return &RollingAverage{samples: make([]time.Duration, windowSize)}
}

// Add records a sample, evicting the oldest once the window is full.
func (r *RollingAverage) Add(d time.Duration) {
	if r.filled {
		r.sum -= r.samples[r.index]
	}
	r.samples[r.index] = d
	r.sum += d

	r.index++
	if r.index == len(r.samples) {
		r.index = 0
		r.filled = true
	}
}

// Count returns the number of samples in the window.
func (r *RollingAverage) Count() int {
	if r.filled {
		return len(r.samples)
	}
	return r.index
}

// Average returns the mean of the window, or 0 with no samples.
func (r *RollingAverage) Average() time.Duration {
	n := r.Count()
	if n == 0 {
		return 0
	}
	return r.sum / time.Duration(n)
}

// Max returns the largest sample in the window.
func (r *RollingAverage) Max() time.Duration {
	var m time.Duration
	for i := 0; i < r.Count(); i++ {
		if r.samples[i] > m {
			m = r.samples[i]
		}
	}
	return m
}

// Reset clears all samples.
func (r *RollingAverage) Reset() {
	for i := range r.samples {
		r.samples[i] = 0
	}
	r.sum = 0
	r.index = 0
	r.filled = false
}
