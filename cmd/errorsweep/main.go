// Command errorsweep compares the energy of a brickwork circuit
// truncated at several bond dimensions against a high-bond-dimension
// reference run, for either a diagonal Ising Hamiltonian or a
// nearest-neighbor Heisenberg Hamiltonian.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/fumin/qmps/mps"
	"github.com/fumin/qmps/sim"
	"github.com/fumin/qmps/store"
)

var (
	n            = flag.Int("n", 40, "number of qubits")
	depth        = flag.Int("depth", 50, "circuit depth")
	chiTestFlag  = flag.String("chi-test", "8,16,32", "comma-separated list of test bond dimensions")
	chiRef       = flag.Int("chi-ref", 128, "reference bond dimension")
	chiRefCheck  = flag.Int("chi-ref-check", 0, "optional check bond dimension for reference convergence (0 disables)")
	hKind        = flag.String("h", "heisenberg", "Hamiltonian: ising | heisenberg")
	heisenbergJx = flag.Float64("heisenberg-jx", 1.0, "Heisenberg coupling Jx (only used with -h heisenberg)")
	heisenbergJy = flag.Float64("heisenberg-jy", 1.0, "Heisenberg coupling Jy (only used with -h heisenberg)")
	heisenbergJz = flag.Float64("heisenberg-jz", 1.0, "Heisenberg coupling Jz (only used with -h heisenberg)")
	sanity       = flag.Bool("sanity", false, "run the Bell-state Heisenberg sanity check and exit")
	cutoff       = flag.Float64("cutoff", 1e-8, "SVD cutoff")
	seed         = flag.String("seed", "err-40", "RNG seed")
	out          = flag.String("out", "error_sweep.csv", "output CSV path")
	dbPath       = flag.String("db", "", "optional SQLite path to persist rows alongside the CSV")
)

const refTol = 1e-6

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	if err := mainWithErr(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func mainWithErr() error {
	if *sanity {
		e, err := runSanity()
		if err != nil {
			return errors.Wrap(err, "")
		}
		log.Printf("Sanity OK: E = %v", e)
		return nil
	}

	chiTest, err := parseIntList(*chiTestFlag)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if len(chiTest) == 0 {
		return errors.Errorf("chi-test must contain at least one integer value")
	}
	if *chiRefCheck > 0 && *chiRefCheck <= *chiRef {
		return errors.Errorf("chi-ref-check (%d) must be > chi-ref (%d)", *chiRefCheck, *chiRef)
	}

	hm, err := buildHMode()
	if err != nil {
		return errors.Wrap(err, "")
	}

	if *chiRefCheck > 0 {
		rows := sim.ErrorSweep(*n, *depth, []int{*chiRefCheck}, *chiRef, *cutoff, *seed, hm)
		if diff := math.Abs(rows[0].ErrorEnergy); diff > refTol {
			log.Printf("WARNING: reference not converged: |E(%d) - E(%d)| = %.3e", *chiRef, *chiRefCheck, diff)
		}
	}

	rows := sim.ErrorSweep(*n, *depth, chiTest, *chiRef, *cutoff, *seed, hm)
	for _, row := range rows {
		log.Printf("chi=%d E=%v |dE|=%.3e", row.Chi, row.Energy, row.ErrorEnergy)
	}

	f, err := os.Create(*out)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer f.Close()
	fmt.Fprintf(f, "chi,energy,error_energy\n")
	for _, row := range rows {
		fmt.Fprintf(f, "%d,%f,%f\n", row.Chi, row.Energy, row.ErrorEnergy)
	}

	if *dbPath != "" {
		d, err := store.Open(*dbPath)
		if err != nil {
			return errors.Wrap(err, "")
		}
		defer d.Close()
		if err := d.SaveErrorSweep(*seed, rows); err != nil {
			return errors.Wrap(err, "")
		}
	}
	return nil
}

func buildHMode() (sim.HMode, error) {
	switch *hKind {
	case "ising":
		return sim.IsingMode(mps.Ising(*n, 0, 1)), nil
	case "heisenberg":
		bonds := *n - 1
		if bonds < 0 {
			bonds = 0
		}
		jx := make([]float64, bonds)
		jy := make([]float64, bonds)
		jz := make([]float64, bonds)
		for i := range jx {
			jx[i], jy[i], jz[i] = *heisenbergJx, *heisenbergJy, *heisenbergJz
		}
		return sim.HeisenbergMode(mps.Heisenberg{Jx: jx, Jy: jy, Jz: jz}), nil
	default:
		return sim.HMode{}, errors.Errorf("-h must be 'ising' or 'heisenberg', got %q", *hKind)
	}
}

func runSanity() (float64, error) {
	if err := sim.BellHeisenbergSanity(*heisenbergJx, *heisenbergJy, *heisenbergJz); err != nil {
		return 0, errors.Wrap(err, "")
	}
	h := mps.Heisenberg{Jx: []float64{*heisenbergJx}, Jy: []float64{*heisenbergJy}, Jz: []float64{*heisenbergJz}}
	psi := mps.New(2)
	psi.Apply1Q(0, mps.Hadamard())
	psi.ApplyCNOT(0, mps.Truncation{MaxBond: 8, Cutoff: 1e-12})
	return mps.EnergyHeisenberg(psi, h), nil
}

func parseIntList(s string) ([]int, error) {
	var out []int
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, errors.Wrap(err, tok)
		}
		out = append(out, v)
	}
	return out, nil
}
