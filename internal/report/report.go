package report

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"plagiarism_checker/internal/plagiarism"
)

// Run describes one checker invocation for the report database.
type Run struct {
	Mode   string // "untrusted" or "trusted"
	Metric string
	N      int
	Cutoff int
}

// WriteJSON encodes the result rows as an indented JSON array.
func WriteJSON(w io.Writer, results []plagiarism.PlagiarismResult) error {
	if results == nil {
		results = []plagiarism.PlagiarismResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

// Persist writes a run and its result rows to the sqlite report file at
// dbPath, returning the generated run id. Match detail (fragments and
// locations) is stored as a JSON column so a row stays self-contained.
func Persist(dbPath string, run Run, results []plagiarism.PlagiarismResult) (string, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.NewString()
	if _, err := tx.Exec(
		`INSERT INTO runs(id, mode, metric, n, cutoff) VALUES(?,?,?,?,?)`,
		runID, run.Mode, run.Metric, run.N, run.Cutoff,
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, r := range results {
		detail, err := json.Marshal(struct {
			Fragments []plagiarism.FragmentPair `json:"matching_fragments"`
			Locations []plagiarism.LocationPair `json:"matching_fragments_locations"`
		}{r.MatchingFragments, r.MatchingFragmentsLocations})
		if err != nil {
			return "", fmt.Errorf("marshal detail: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO matches(run_id, owner_id1, owner_id2, trusted_owner1, equal_fragments, fragment_count, detail)
             VALUES(?,?,?,?,?,?,?)`,
			runID,
			string(r.Owner1),
			string(r.Owner2),
			r.TrustedOwner1,
			r.EqualFragments,
			len(r.MatchingFragments),
			string(detail),
		); err != nil {
			return "", fmt.Errorf("insert match: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit tx: %w", err)
	}
	return runID, nil
}

// CountMatches returns how many match rows a run produced.
func CountMatches(dbPath, runID string) (int, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	return countMatchesConn(conn, runID)
}

func countMatchesConn(conn *sql.DB, runID string) (int, error) {
	row := conn.QueryRow(`SELECT COUNT(*) FROM matches WHERE run_id = ?`, runID)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}
