package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/fumin/qmps/mps"
	"github.com/fumin/qmps/rng"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// VQERow is one (theta, energy) sample from a sweep.
type VQERow struct {
	Theta, Energy float64
}

func twoQubitIsing() mps.Hamiltonian {
	return mps.Hamiltonian{ZFields: []float64{0, 0}, ZZCouplings: []float64{1}}
}

func vqeState(theta float64) *mps.MPS {
	psi := mps.New(2)
	psi.Apply1Q(0, mps.Rx(theta))
	return psi
}

// VQESweep sweeps theta across steps+1 evenly spaced points in [0, 2*pi]
// and returns the exact (analytic) energy of H = Z0Z1 at each point.
func VQESweep(steps int) []VQERow {
	h := twoQubitIsing()
	rows := make([]VQERow, 0, steps+1)
	for i := 0; i <= steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		psi := vqeState(theta)
		rows = append(rows, VQERow{Theta: theta, Energy: mps.Energy(psi, h)})
	}
	return rows
}

// VQEShotsSweep is VQESweep's shot-based counterpart: each theta step
// draws its own RNG seeded from "<seed>-vqe-shots-<i>".
func VQEShotsSweep(steps, shots int, seed string) []VQERow {
	h := twoQubitIsing()
	rows := make([]VQERow, 0, steps+1)
	for i := 0; i <= steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		psi := vqeState(theta)

		seedStr := fmt.Sprintf("%s-vqe-shots-%d", seed, i)
		r := rng.New([]byte(seedStr))
		e := mps.EstimateEnergyShots(psi, h, r, shots)
		rows = append(rows, VQERow{Theta: theta, Energy: e})
	}
	return rows
}

// noisyVQEEnergy averages the shot-estimated energy of trajectories
// independent trajectories, each with its own cloned state, its own
// depolarizing kick, and its own RNG seeded from
// "<seed>-theta-<step>-traj-<t>" — independent seeds guarantee
// independent streams, so trajectories can run concurrently.
func noisyVQEEnergy(ctx context.Context, theta float64, h mps.Hamiltonian, trajectories, shots int, p float64, seed string, step int) (float64, error) {
	energies := make([]float64, trajectories)

	g, _ := errgroup.WithContext(ctx)
	for t := 0; t < trajectories; t++ {
		t := t
		g.Go(func() error {
			seedStr := fmt.Sprintf("%s-theta-%d-traj-%d", seed, step, t)
			r := rng.New([]byte(seedStr))
			psi := vqeState(theta)
			psi.Depolarize1Q(0, p, r)

			energies[t] = mps.EstimateEnergyShots(psi, h, r, shots)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	return stat.Mean(energies, nil), nil
}

// NoisyVQETrajectoryStats runs the same trajectory fan-out as
// noisyVQEEnergy but also reports the spread across trajectories, a
// diagnostic for how much a given shot/noise budget actually averages
// out.
func NoisyVQETrajectoryStats(ctx context.Context, theta float64, h mps.Hamiltonian, trajectories, shots int, p float64, seed string, step int) (mean, stdDev float64, err error) {
	energies := make([]float64, trajectories)

	g, _ := errgroup.WithContext(ctx)
	for t := 0; t < trajectories; t++ {
		t := t
		g.Go(func() error {
			seedStr := fmt.Sprintf("%s-theta-%d-traj-%d", seed, step, t)
			r := rng.New([]byte(seedStr))
			psi := vqeState(theta)
			psi.Depolarize1Q(0, p, r)

			energies[t] = mps.EstimateEnergyShots(psi, h, r, shots)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	mean, stdDev = stat.MeanStdDev(energies, nil)
	return mean, stdDev, nil
}

// NoisyVQESweep is VQESweep's noisy, trajectory-averaged counterpart.
func NoisyVQESweep(ctx context.Context, steps, trajectories, shots int, p float64, seed string) ([]VQERow, error) {
	h := twoQubitIsing()
	rows := make([]VQERow, 0, steps+1)
	for i := 0; i <= steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		e, err := noisyVQEEnergy(ctx, theta, h, trajectories, shots, p, seed, i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, VQERow{Theta: theta, Energy: e})
	}
	return rows, nil
}

// NoisyVQEEnergyAt exposes noisyVQEEnergy's trajectory average for a
// single theta/step pair, so that one point of the noisy sweep can be
// evaluated (and checked for reproducibility) on its own.
func NoisyVQEEnergyAt(ctx context.Context, theta float64, h mps.Hamiltonian, trajectories, shots int, p float64, seed string, step int) (float64, error) {
	return noisyVQEEnergy(ctx, theta, h, trajectories, shots, p, seed, step)
}
