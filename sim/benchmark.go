package sim

import (
	"time"

	"github.com/fumin/qmps/mps"
	"gonum.org/v1/gonum/stat"
)

// Benchmark applies depth alternating 1-qubit Hadamard / 2-qubit
// identity gates to an n-qubit product state under a fixed generous
// truncation, and returns the wall-clock elapsed time.
func Benchmark(n, depth int) time.Duration {
	trunc := mps.Truncation{MaxBond: 64, Cutoff: 1e-8}
	psi := mps.New(n)

	var ident [4][4]complex128
	for i := 0; i < 4; i++ {
		ident[i][i] = 1
	}

	start := time.Now()
	for t := 0; t < depth; t++ {
		psi.Apply1Q(t%n, mps.Hadamard())
		if t+1 < n {
			psi.Apply2Q(t%(n-1), ident, trunc)
		}
	}
	return time.Since(start)
}

// BenchmarkRepeated runs Benchmark trials times and returns the mean and
// standard deviation of the elapsed time in milliseconds, smoothing out
// scheduler jitter in a single measurement.
func BenchmarkRepeated(n, depth, trials int) (meanMs, stdMs float64) {
	samples := make([]float64, trials)
	for i := range samples {
		samples[i] = Benchmark(n, depth).Seconds() * 1000
	}
	mean, std := stat.MeanStdDev(samples, nil)
	return mean, std
}
