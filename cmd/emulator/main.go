// Command emulator runs a small Bell-pair demo, then dispatches to one
// of the VQE sweep modes (analytic, shot-based, or noisy) depending on
// the -mode flag.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/fumin/qmps/mps"
	"github.com/fumin/qmps/rng"
	"github.com/fumin/qmps/sim"
)

var (
	mode         = flag.String("mode", "", "VQE mode: analytic | shots | noisy (empty runs the legacy demo sweep)")
	shots        = flag.Int("shots", 50, "number of shots for shot-based VQE")
	trajectories = flag.Int("trajectories", 5, "number of trajectories for noisy VQE")
	p            = flag.Float64("p", 0.01, "depolarizing noise probability")
	thetaSteps   = flag.Int("theta-steps", 200, "number of theta steps in the VQE sweep")
	seed         = flag.String("seed", "default-seed", "RNG seed for full reproducibility")
	benchmark    = flag.Bool("benchmark", false, "also run the MPS benchmark")
	benchTrials  = flag.Int("benchmark-trials", 1, "repeat the benchmark this many times and report mean/stddev (requires -benchmark)")
	out          = flag.String("out", "", "optional CSV path for the VQE sweep output")
)

// runBenchmark runs either a single timed benchmark or, when benchTrials
// is greater than 1, BenchmarkRepeated's mean/stddev across trials.
func runBenchmark() {
	if *benchTrials > 1 {
		meanMs, stdMs := sim.BenchmarkRepeated(40, 80, *benchTrials)
		log.Printf("benchmark: mean=%.3fms stddev=%.3fms over %d trials", meanMs, stdMs, *benchTrials)
		return
	}
	sim.Benchmark(40, 80)
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	if err := mainWithErr(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func mainWithErr() error {
	runDemo()

	switch *mode {
	case "":
		runBenchmark()
		rows := sim.VQESweep(200)
		if err := writeRows(rows); err != nil {
			return errors.Wrap(err, "")
		}
		sim.VQEShotsSweep(60, 50, *seed)
		ctx := context.Background()
		if _, err := sim.NoisyVQESweep(ctx, 40, 5, 50, 0.01, *seed); err != nil {
			return errors.Wrap(err, "")
		}
		return nil
	case "analytic":
		rows := sim.VQESweep(*thetaSteps)
		if *benchmark {
			runBenchmark()
		}
		return writeRows(rows)
	case "shots":
		rows := sim.VQEShotsSweep(*thetaSteps, *shots, *seed)
		if *benchmark {
			runBenchmark()
		}
		return writeRows(rows)
	case "noisy":
		ctx := context.Background()
		h := mps.Ising(2, 0, 1)
		lastTheta := 2 * math.Pi
		mean, stdDev, err := sim.NoisyVQETrajectoryStats(ctx, lastTheta, h, *trajectories, *shots, *p, *seed, *thetaSteps)
		if err != nil {
			return errors.Wrap(err, "")
		}
		log.Printf("noisy VQE trajectory spread at theta=%.3f: mean=%.4f stddev=%.4f over %d trajectories", lastTheta, mean, stdDev, *trajectories)

		rows, err := sim.NoisyVQESweep(ctx, *thetaSteps, *trajectories, *shots, *p, *seed)
		if err != nil {
			return errors.Wrap(err, "")
		}
		if *benchmark {
			runBenchmark()
		}
		return writeRows(rows)
	default:
		return errors.Errorf("-mode must be one of analytic, shots, noisy (or empty), got %q", *mode)
	}
}

// runDemo builds a Bell pair with a fixed seed, prints its observables
// and energy, then measures it. It is the legacy behavior every mode
// runs before dispatching.
func runDemo() {
	trunc := mps.Truncation{MaxBond: 64, Cutoff: 1e-8}
	r := rng.New([]byte(*seed))
	psi := mps.New(2)

	psi.Apply1Q(0, mps.Hadamard())
	psi.ApplyCNOT(0, trunc)

	fmt.Printf("Z0 = %.3f\n", mps.ExpectZ(psi, 0))
	fmt.Printf("Z1 = %.3f\n", mps.ExpectZ(psi, 1))
	fmt.Printf("Z0Z1 = %.3f\n", mps.ExpectZZ(psi, 0, 1))

	h := mps.Ising(2, 0, 1)
	fmt.Printf("Energy = %.3f\n", mps.Energy(psi, h))

	m0 := psi.MeasureZ(0, r)
	m1 := psi.MeasureZ(1, r)
	fmt.Printf("Bell measurement: %d, %d\n", m0, m1)
}

func writeRows(rows []sim.VQERow) error {
	if *out == "" {
		for _, row := range rows {
			log.Printf("theta=%f energy=%f", row.Theta, row.Energy)
		}
		return nil
	}

	f, err := os.Create(*out)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer f.Close()
	fmt.Fprintf(f, "theta,energy\n")
	for _, row := range rows {
		fmt.Fprintf(f, "%f,%f\n", row.Theta, row.Energy)
	}
	return nil
}
