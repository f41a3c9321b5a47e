package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/prism/geom"
	"github.com/banshee-data/prism/scatter"
)

// ErrDimsMismatch is returned when stored points are read back as vectors of
// a different dimension.
var ErrDimsMismatch = errors.New("sqlite: stored run has a different dimension")

// PackRun is one persisted PackedPoints result.
type PackRun struct {
	RunID               string      `json:"run_id"`
	Dims                int         `json:"dims"`
	Radius              float64     `json:"radius"`
	Cutoff              float64     `json:"cutoff"`
	Density             float64     `json:"density"`
	Seed                *int64      `json:"seed,omitempty"`
	Iters               int         `json:"iters"`
	MaxPenetration      float64     `json:"max_penetration"`
	BoundaryPenetration float64     `json:"boundary_penetration"`
	Converged           bool        `json:"converged"`
	Points              [][]float64 `json:"points"`
	Notes               string      `json:"notes,omitempty"`
	CreatedAt           int64       `json:"created_at"`
}

// NewPackRun captures a packing result and the settings that produced it.
func NewPackRun[V geom.Vector](res *scatter.Packed[V], s scatter.PackedSettings, seed *int64) *PackRun {
	pts := make([][]float64, len(res.Points))
	for i, p := range res.Points {
		c := make([]float64, len(p))
		for k := range len(p) {
			c[k] = p[k]
		}
		pts[i] = c
	}
	return &PackRun{
		Dims:                geom.Dims[V](),
		Radius:              s.Particle.Radius,
		Cutoff:              s.Cutoff,
		Density:             s.Density,
		Seed:                seed,
		Iters:               res.Iters,
		MaxPenetration:      res.MaxPenetration,
		BoundaryPenetration: res.BoundaryPenetration,
		Converged:           res.Converged,
		Points:              pts,
	}
}

// PointsAs converts the stored points back to vectors.
func PointsAs[V geom.Vector](run *PackRun) ([]V, error) {
	dims := geom.Dims[V]()
	if run.Dims != dims {
		return nil, fmt.Errorf("%w: run %s has %d, want %d", ErrDimsMismatch, run.RunID, run.Dims, dims)
	}
	out := make([]V, len(run.Points))
	for i, p := range run.Points {
		if len(p) != dims {
			return nil, fmt.Errorf("%w: point %d of run %s has %d components", ErrDimsMismatch, i, run.RunID, len(p))
		}
		for k := range dims {
			out[i][k] = p[k]
		}
	}
	return out, nil
}

// PackRunStore provides persistence for packing runs.
type PackRunStore struct {
	db *sql.DB
}

// NewPackRunStore creates a new PackRunStore.
func NewPackRunStore(db *sql.DB) *PackRunStore {
	return &PackRunStore{db: db}
}

// Insert stores run. If run.RunID is empty, a new UUID is generated; if
// run.CreatedAt is zero, the current time is used.
func (s *PackRunStore) Insert(run *PackRun) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}
	if run.Points == nil {
		run.Points = [][]float64{}
	}
	points, err := json.Marshal(run.Points)
	if err != nil {
		return fmt.Errorf("marshal points: %w", err)
	}

	query := `
		INSERT INTO pack_runs (
			run_id, dims, radius, cutoff, density, seed,
			iters, max_penetration, boundary_penetration, converged,
			point_count, points_json, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.Exec(query,
		run.RunID,
		run.Dims,
		run.Radius,
		run.Cutoff,
		run.Density,
		nullInt64(run.Seed),
		run.Iters,
		run.MaxPenetration,
		run.BoundaryPenetration,
		run.Converged,
		len(run.Points),
		string(points),
		nullString(run.Notes),
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pack run: %w", err)
	}
	return nil
}

const selectRun = `
	SELECT run_id, dims, radius, cutoff, density, seed,
	       iters, max_penetration, boundary_penetration, converged,
	       points_json, notes, created_at
	FROM pack_runs
`

// Get returns the run with the given ID, or sql.ErrNoRows.
func (s *PackRunStore) Get(runID string) (*PackRun, error) {
	row := s.db.QueryRow(selectRun+"WHERE run_id = ?", runID)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get pack run: %w", err)
	}
	return run, nil
}

// ListByDims returns runs of the given dimension, oldest first.
func (s *PackRunStore) ListByDims(dims int) ([]*PackRun, error) {
	rows, err := s.db.Query(selectRun+"WHERE dims = ? ORDER BY created_at, run_id", dims)
	if err != nil {
		return nil, fmt.Errorf("list pack runs: %w", err)
	}
	defer rows.Close()

	var runs []*PackRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pack run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Delete removes a run by ID.
func (s *PackRunStore) Delete(runID string) error {
	result, err := s.db.Exec("DELETE FROM pack_runs WHERE run_id = ?", runID)
	if err != nil {
		return fmt.Errorf("delete pack run: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete pack run rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*PackRun, error) {
	r := &PackRun{}
	var seed sql.NullInt64
	var notes sql.NullString
	var points string
	err := sc.Scan(
		&r.RunID, &r.Dims, &r.Radius, &r.Cutoff, &r.Density, &seed,
		&r.Iters, &r.MaxPenetration, &r.BoundaryPenetration, &r.Converged,
		&points, &notes, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if seed.Valid {
		r.Seed = &seed.Int64
	}
	if notes.Valid {
		r.Notes = notes.String
	}
	if err := json.Unmarshal([]byte(points), &r.Points); err != nil {
		return nil, fmt.Errorf("unmarshal points of run %s: %w", r.RunID, err)
	}
	return r, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
