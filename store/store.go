// Package store persists sweep results to a SQLite database, so that the
// rows of a chi/fidelity/error/VQE sweep can be reloaded or replotted
// without rerunning the simulation. Rows are saved whole after a sweep;
// nothing here resumes an interrupted sweep from stored rows.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/fumin/qmps/sim"
)

const (
	tableChi           = "chi_sweep"
	tableFidelity      = "fidelity_sweep"
	tableDepthFidelity = "depth_fidelity_sweep"
	tableError         = "error_sweep"
	tableVQE           = "vqe_sweep"
)

// DB is a SQLite-backed store of sweep rows, keyed by an arbitrary run
// label so that multiple sweeps can share one file.
type DB struct {
	Path string
	db   *sql.DB
}

// Open creates (or reopens) the sweep database at dbPath, creating all
// tables if they do not yet exist.
func Open(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", fmt.Sprintf("file:%s", dbPath))
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if err := prepareTables(sqlDB); err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "")
	}
	return &DB{Path: dbPath, db: sqlDB}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func prepareTables(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			run TEXT, max_bond INTEGER, depth INTEGER, chi_max INTEGER, layer_ms REAL,
			PRIMARY KEY (run, max_bond, depth)
		) STRICT`, tableChi),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			run TEXT, chi INTEGER, fidelity REAL, one_minus_fidelity REAL,
			PRIMARY KEY (run, chi)
		) STRICT`, tableFidelity),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			run TEXT, depth INTEGER, chi INTEGER, fidelity REAL, one_minus_fidelity REAL,
			PRIMARY KEY (run, depth, chi)
		) STRICT`, tableDepthFidelity),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			run TEXT, chi INTEGER, energy REAL, error_energy REAL,
			PRIMARY KEY (run, chi)
		) STRICT`, tableError),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			run TEXT, step INTEGER, theta REAL, energy REAL,
			PRIMARY KEY (run, step)
		) STRICT`, tableVQE),
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, stmt)
		}
	}
	return nil
}

// SaveChiSweep replaces all rows for run in the chi-sweep table.
func (d *DB) SaveChiSweep(run string, rows []sim.ChiRow) error {
	ctx, cancel := context.WithTimeout(context.Background(), 48*time.Hour)
	defer cancel()

	if err := deleteRun(ctx, d.db, tableChi, run); err != nil {
		return errors.Wrap(err, "")
	}
	sqlStr := fmt.Sprintf(`INSERT OR REPLACE INTO %s (run, max_bond, depth, chi_max, layer_ms) VALUES (?, ?, ?, ?, ?)`, tableChi)
	for _, row := range rows {
		if _, err := d.db.ExecContext(ctx, sqlStr, run, row.MaxBond, row.Depth, row.ChiMax, row.LayerMs); err != nil {
			return errors.Wrap(err, fmt.Sprintf("%#v", row))
		}
	}
	return nil
}

// LoadChiSweep returns the rows saved for run, ordered by max bond then
// depth.
func (d *DB) LoadChiSweep(run string) ([]sim.ChiRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 48*time.Hour)
	defer cancel()

	sqlStr := fmt.Sprintf(`SELECT max_bond, depth, chi_max, layer_ms FROM %s WHERE run=? ORDER BY max_bond, depth`, tableChi)
	rowsSQL, err := d.db.QueryContext(ctx, sqlStr, run)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer rowsSQL.Close()

	var rows []sim.ChiRow
	for rowsSQL.Next() {
		var r sim.ChiRow
		if err := rowsSQL.Scan(&r.MaxBond, &r.Depth, &r.ChiMax, &r.LayerMs); err != nil {
			return nil, errors.Wrap(err, "")
		}
		rows = append(rows, r)
	}
	if err := rowsSQL.Err(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return rows, nil
}

// SaveFidelitySweep replaces all rows for run in the fidelity-sweep table.
func (d *DB) SaveFidelitySweep(run string, rows []sim.FidelityRow) error {
	ctx, cancel := context.WithTimeout(context.Background(), 48*time.Hour)
	defer cancel()

	if err := deleteRun(ctx, d.db, tableFidelity, run); err != nil {
		return errors.Wrap(err, "")
	}
	sqlStr := fmt.Sprintf(`INSERT OR REPLACE INTO %s (run, chi, fidelity, one_minus_fidelity) VALUES (?, ?, ?, ?)`, tableFidelity)
	for _, row := range rows {
		if _, err := d.db.ExecContext(ctx, sqlStr, run, row.Chi, row.Fidelity, row.OneMinusFidelity); err != nil {
			return errors.Wrap(err, fmt.Sprintf("%#v", row))
		}
	}
	return nil
}

// LoadFidelitySweep returns the rows saved for run, ordered by chi.
func (d *DB) LoadFidelitySweep(run string) ([]sim.FidelityRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 48*time.Hour)
	defer cancel()

	sqlStr := fmt.Sprintf(`SELECT chi, fidelity, one_minus_fidelity FROM %s WHERE run=? ORDER BY chi`, tableFidelity)
	rowsSQL, err := d.db.QueryContext(ctx, sqlStr, run)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer rowsSQL.Close()

	var rows []sim.FidelityRow
	for rowsSQL.Next() {
		var r sim.FidelityRow
		if err := rowsSQL.Scan(&r.Chi, &r.Fidelity, &r.OneMinusFidelity); err != nil {
			return nil, errors.Wrap(err, "")
		}
		rows = append(rows, r)
	}
	if err := rowsSQL.Err(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return rows, nil
}

// SaveDepthFidelitySweep replaces all rows for run in the
// depth-fidelity-sweep table.
func (d *DB) SaveDepthFidelitySweep(run string, rows []sim.DepthFidelityRow) error {
	ctx, cancel := context.WithTimeout(context.Background(), 48*time.Hour)
	defer cancel()

	if err := deleteRun(ctx, d.db, tableDepthFidelity, run); err != nil {
		return errors.Wrap(err, "")
	}
	sqlStr := fmt.Sprintf(`INSERT OR REPLACE INTO %s (run, depth, chi, fidelity, one_minus_fidelity) VALUES (?, ?, ?, ?, ?)`, tableDepthFidelity)
	for _, row := range rows {
		if _, err := d.db.ExecContext(ctx, sqlStr, run, row.Depth, row.Chi, row.Fidelity, row.OneMinusFidelity); err != nil {
			return errors.Wrap(err, fmt.Sprintf("%#v", row))
		}
	}
	return nil
}

// LoadDepthFidelitySweep returns the rows saved for run, ordered by
// depth then chi.
func (d *DB) LoadDepthFidelitySweep(run string) ([]sim.DepthFidelityRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 48*time.Hour)
	defer cancel()

	sqlStr := fmt.Sprintf(`SELECT depth, chi, fidelity, one_minus_fidelity FROM %s WHERE run=? ORDER BY depth, chi`, tableDepthFidelity)
	rowsSQL, err := d.db.QueryContext(ctx, sqlStr, run)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer rowsSQL.Close()

	var rows []sim.DepthFidelityRow
	for rowsSQL.Next() {
		var r sim.DepthFidelityRow
		if err := rowsSQL.Scan(&r.Depth, &r.Chi, &r.Fidelity, &r.OneMinusFidelity); err != nil {
			return nil, errors.Wrap(err, "")
		}
		rows = append(rows, r)
	}
	if err := rowsSQL.Err(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return rows, nil
}

// SaveErrorSweep replaces all rows for run in the error-sweep table.
func (d *DB) SaveErrorSweep(run string, rows []sim.ErrorRow) error {
	ctx, cancel := context.WithTimeout(context.Background(), 48*time.Hour)
	defer cancel()

	if err := deleteRun(ctx, d.db, tableError, run); err != nil {
		return errors.Wrap(err, "")
	}
	sqlStr := fmt.Sprintf(`INSERT OR REPLACE INTO %s (run, chi, energy, error_energy) VALUES (?, ?, ?, ?)`, tableError)
	for _, row := range rows {
		if _, err := d.db.ExecContext(ctx, sqlStr, run, row.Chi, row.Energy, row.ErrorEnergy); err != nil {
			return errors.Wrap(err, fmt.Sprintf("%#v", row))
		}
	}
	return nil
}

// LoadErrorSweep returns the rows saved for run, ordered by chi.
func (d *DB) LoadErrorSweep(run string) ([]sim.ErrorRow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 48*time.Hour)
	defer cancel()

	sqlStr := fmt.Sprintf(`SELECT chi, energy, error_energy FROM %s WHERE run=? ORDER BY chi`, tableError)
	rowsSQL, err := d.db.QueryContext(ctx, sqlStr, run)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer rowsSQL.Close()

	var rows []sim.ErrorRow
	for rowsSQL.Next() {
		var r sim.ErrorRow
		if err := rowsSQL.Scan(&r.Chi, &r.Energy, &r.ErrorEnergy); err != nil {
			return nil, errors.Wrap(err, "")
		}
		rows = append(rows, r)
	}
	if err := rowsSQL.Err(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return rows, nil
}

// SaveVQESweep replaces all rows for run in the VQE-sweep table. Step is
// the row's position in the sweep, so that angle sweeps and gradient
// descent trajectories share one schema.
func (d *DB) SaveVQESweep(run string, rows []sim.VQERow) error {
	ctx, cancel := context.WithTimeout(context.Background(), 48*time.Hour)
	defer cancel()

	if err := deleteRun(ctx, d.db, tableVQE, run); err != nil {
		return errors.Wrap(err, "")
	}
	sqlStr := fmt.Sprintf(`INSERT OR REPLACE INTO %s (run, step, theta, energy) VALUES (?, ?, ?, ?)`, tableVQE)
	for i, row := range rows {
		if _, err := d.db.ExecContext(ctx, sqlStr, run, i, row.Theta, row.Energy); err != nil {
			return errors.Wrap(err, fmt.Sprintf("%#v", row))
		}
	}
	return nil
}

// LoadVQESweep returns the rows saved for run, ordered by step.
func (d *DB) LoadVQESweep(run string) ([]sim.VQERow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 48*time.Hour)
	defer cancel()

	sqlStr := fmt.Sprintf(`SELECT theta, energy FROM %s WHERE run=? ORDER BY step`, tableVQE)
	rowsSQL, err := d.db.QueryContext(ctx, sqlStr, run)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer rowsSQL.Close()

	var rows []sim.VQERow
	for rowsSQL.Next() {
		var r sim.VQERow
		if err := rowsSQL.Scan(&r.Theta, &r.Energy); err != nil {
			return nil, errors.Wrap(err, "")
		}
		rows = append(rows, r)
	}
	if err := rowsSQL.Err(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return rows, nil
}

func deleteRun(ctx context.Context, db *sql.DB, table, run string) error {
	sqlStr := fmt.Sprintf(`DELETE FROM %s WHERE run=?`, table)
	if _, err := db.ExecContext(ctx, sqlStr, run); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}
