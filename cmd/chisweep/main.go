// Command chisweep runs a 1D brickwork random circuit at several bond
// dimensions and reports how the maximum bond dimension chi_max grows
// with circuit depth.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/fumin/qmps/sim"
	"github.com/fumin/qmps/store"
)

var (
	n         = flag.Int("n", 64, "number of qubits")
	depthMax  = flag.Int("depth-max", 200, "maximum circuit depth")
	depthStep = flag.Int("depth-step", 5, "depth step between measurements")
	maxBond   = flag.String("max-bond", "16,32,64", "comma-separated list of max bond dimensions")
	cutoff    = flag.Float64("cutoff", 1e-8, "SVD cutoff")
	seed      = flag.String("seed", "chi-sweep", "base RNG seed, shared across max_bond sweeps")
	out       = flag.String("out", "chi_sweep.csv", "output CSV path")
	dbPath    = flag.String("db", "", "optional SQLite path to persist rows alongside the CSV")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	if err := mainWithErr(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func mainWithErr() error {
	if *depthStep <= 0 {
		return errors.Errorf("depth-step must be > 0, got %d", *depthStep)
	}
	maxBonds, err := parseIntList(*maxBond)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if len(maxBonds) == 0 {
		return errors.Errorf("max-bond must contain at least one integer value")
	}

	rows := sim.ChiSweep(*n, *depthMax, *depthStep, maxBonds, *cutoff, *seed)
	for _, row := range rows {
		log.Printf("max_bond=%d depth=%d chi_max=%d layer_ms=%.3f", row.MaxBond, row.Depth, row.ChiMax, row.LayerMs)
	}

	f, err := os.Create(*out)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer f.Close()
	fmt.Fprintf(f, "max_bond,depth,chi_max,layer_ms\n")
	for _, row := range rows {
		fmt.Fprintf(f, "%d,%d,%d,%f\n", row.MaxBond, row.Depth, row.ChiMax, row.LayerMs)
	}

	if *dbPath != "" {
		d, err := store.Open(*dbPath)
		if err != nil {
			return errors.Wrap(err, "")
		}
		defer d.Close()
		if err := d.SaveChiSweep(*seed, rows); err != nil {
			return errors.Wrap(err, "")
		}
	}

	return nil
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
