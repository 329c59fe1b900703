// Package lahman loads and indexes the Lahman Baseball Database CSV
// tables into an immutable, read-only record store.
package lahman

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/ntbapp/ntb-server/internal/errors"
)

// Standard file names within the data directory. The column names and
// types of these tables are an external contract fixed by the Lahman
// database format.
const (
	peopleFile      = "People.csv"
	battingFile     = "Batting.csv"
	pitchingFile    = "Pitching.csv"
	awardsFile      = "AwardsPlayers.csv"
	awardsShareFile = "AwardsSharePlayers.csv"
	allStarFile     = "AllstarFull.csv"
	appearancesFile = "Appearances.csv"
)

// table is one parsed CSV file with a header index. Rows keep the raw
// string cells; typed access goes through the col helpers so that a
// malformed cell surfaces as a DATA_LOAD error naming the file and line.
type table struct {
	name   string
	header map[string]int
	rows   [][]string
}

// readTable parses a CSV file and verifies the required columns exist.
func readTable(path, name string, required ...string) (*table, error) {
	f, err := os.Open(path) //#nosec G304 -- data directory comes from configuration
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeDataLoad, "open %s", name)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = false
	// Lahman exports occasionally carry ragged trailing columns.
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeDataLoad, "parse %s", name)
	}
	if len(records) == 0 {
		return nil, errors.DataLoadf("%s: empty file", name)
	}

	header := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		header[col] = i
	}
	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, errors.DataLoadf("%s: missing required column %q", name, col)
		}
	}

	return &table{name: name, header: header, rows: records[1:]}, nil
}

// str returns the raw cell for a column, or "" when the column is absent
// or the row is short.
func (t *table) str(row []string, col string) string {
	i, ok := t.header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// intCol returns an integer cell. An empty cell is 0 (the Lahman tables
// leave pre-modern stats blank); a non-empty cell that fails to parse is
// a data load error rather than a silent zero.
func (t *table) intCol(row []string, col string, line int) (int, error) {
	raw := t.str(row, col)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		// Some exports carry float-formatted integers (e.g. "1987.0").
		if f, ferr := strconv.ParseFloat(raw, 64); ferr == nil {
			return int(f), nil
		}
		return 0, errors.DataLoadf("%s line %d: column %q: unparseable value %q", t.name, line, col, raw)
	}
	return v, nil
}

// floatCol returns a float cell, 0 when empty.
func (t *table) floatCol(row []string, col string, line int) (float64, error) {
	raw := t.str(row, col)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.DataLoadf("%s line %d: column %q: unparseable value %q", t.name, line, col, raw)
	}
	return v, nil
}
