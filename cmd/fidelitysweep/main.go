// Command fidelitysweep compares a brickwork circuit truncated at
// several bond dimensions against a high-bond-dimension reference run
// of the same random circuit, reporting the fidelity lost to
// truncation.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/fumin/qmps/sim"
	"github.com/fumin/qmps/store"
)

var (
	n           = flag.Int("n", 24, "number of qubits (recommended <= 30)")
	depth       = flag.Int("depth", 30, "circuit depth")
	depthSweep  = flag.Bool("depth-sweep", false, "sweep depth from depth-start..depth-end and report a depth x chi surface")
	depthStep   = flag.Int("depth-step", 1, "depth step for -depth-sweep")
	depthStart  = flag.Int("depth-start", 1, "start depth for -depth-sweep (inclusive)")
	depthEnd    = flag.Int("depth-end", 0, "end depth for -depth-sweep (inclusive); 0 means use -depth")
	chiTestFlag = flag.String("chi-test", "4,8,16,32", "comma-separated list of test bond dimensions")
	chiRef      = flag.Int("chi-ref", 64, "reference bond dimension")
	cutoff      = flag.Float64("cutoff", 1e-8, "SVD cutoff")
	seed        = flag.String("seed", "fid-24", "RNG seed")
	out         = flag.String("out", "fidelity_sweep.csv", "output CSV path")
	dbPath      = flag.String("db", "", "optional SQLite path to persist rows alongside the CSV")
)

const selfCheckTol = 1e-8

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
	end := *depthEnd
	if end == 0 {
		end = *depth
	}
	if *depthSweep {
		if *depthStart < 1 {
			return errors.Errorf("depth-start must be >= 1, got %d", *depthStart)
		}
		if end < *depthStart {
			return errors.Errorf("depth-end must be >= depth-start (%d < %d)", end, *depthStart)
		}
	}
	if *n > 30 {
		log.Printf("WARNING: fidelity sweep is intended for n <= 30 (got n=%d)", *n)
	}

	chiTest, err := parseIntList(*chiTestFlag)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if len(chiTest) == 0 {
		return errors.Errorf("chi-test must contain at least one integer value")
	}
	maxTest := 0
	for _, c := range chiTest {
		if c > maxTest {
			maxTest = c
		}
	}
	if *chiRef <= maxTest {
		log.Printf("WARNING: chi-ref (%d) should be > max chi-test (%d)", *chiRef, maxTest)
	}

	if *depthSweep {
		return runDepthSweep(chiTest, end)
	}
	return runFixedDepth(chiTest)
}

func runFixedDepth(chiTest []int) error {
	rows := sim.FidelitySweep(*n, *depth, chiTest, *chiRef, *cutoff, *seed)
	for _, row := range rows {
		if err := selfCheck(row.Chi, row.OneMinusFidelity); err != nil {
			return errors.Wrap(err, "")
		}
		log.Printf("chi=%d 1-fidelity=%.3e", row.Chi, row.OneMinusFidelity)
	}

	f, err := os.Create(*out)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer f.Close()
	fmt.Fprintf(f, "chi,fidelity,one_minus_fidelity\n")
	for _, row := range rows {
		fmt.Fprintf(f, "%d,%f,%f\n", row.Chi, row.Fidelity, row.OneMinusFidelity)
	}

	if *dbPath != "" {
		d, err := store.Open(*dbPath)
		if err != nil {
			return errors.Wrap(err, "")
		}
		defer d.Close()
		if err := d.SaveFidelitySweep(*seed, rows); err != nil {
			return errors.Wrap(err, "")
		}
	}
	return nil
}

func runDepthSweep(chiTest []int, end int) error {
	depthOut := depthOutputPath(*out)
	log.Printf("depth-sweep output: %s", depthOut)

	rows := sim.FidelityDepthSweep(*n, *depthStart, end, *depthStep, chiTest, *chiRef, *cutoff, *seed)
	for _, row := range rows {
		if err := selfCheck(row.Chi, row.OneMinusFidelity); err != nil {
			return errors.Wrap(err, "")
		}
	}

	f, err := os.Create(depthOut)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer f.Close()
	fmt.Fprintf(f, "depth,chi,fidelity,one_minus_fidelity\n")
	for _, row := range rows {
		fmt.Fprintf(f, "%d,%d,%f,%f\n", row.Depth, row.Chi, row.Fidelity, row.OneMinusFidelity)
	}

	if *dbPath != "" {
		d, err := store.Open(*dbPath)
		if err != nil {
			return errors.Wrap(err, "")
		}
		defer d.Close()
		if err := d.SaveDepthFidelitySweep(*seed, rows); err != nil {
			return errors.Wrap(err, "")
		}
	}
	return nil
}

func selfCheck(chi int, oneMinus float64) error {
	if chi != *chiRef {
		return nil
	}
	if math.Abs(oneMinus) > selfCheckTol {
		return errors.Errorf("self-fidelity check failed for chi_ref=%d (1-fidelity=%.3e)", *chiRef, oneMinus)
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

func depthOutputPath(out string) string {
	dir := filepath.Dir(out)
	ext := filepath.Ext(out)
	stem := strings.TrimSuffix(filepath.Base(out), ext)
	if ext == "" {
		ext = ".csv"
	}
	name := stem + "_depth" + ext
	if dir == "." {
		return name
	}
	return filepath.Join(dir, name)
}
