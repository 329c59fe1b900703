package lahman

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ntbapp/ntb-server/internal/domain"
	"github.com/ntbapp/ntb-server/internal/errors"
)

// Store is the read-only record store over the Lahman tables. It is
// built once by Load and never mutated afterwards, so it is safe to
// share across concurrent game sessions without locking.
type Store struct {
	players  map[string]domain.PlayerRecord
	batting  map[string][]domain.BattingSeason
	pitching map[string][]domain.PitchingSeason
	awards   map[string][]domain.AwardRecord
	allStar  map[playerYear]struct{}
	appear   map[playerYear][]appearance

	hasAwards      bool
	hasAwardShares bool
	hasAllStar     bool
	hasAppearances bool
}

// playerYear keys the All-Star and Appearances indexes.
type playerYear struct {
	playerID string
	year     int
}

// Load reads the CSV tables from dir and builds the store. People,
// Batting, and Pitching are required; the award, All-Star, and
// appearance tables are optional and their absence only disables the
// corresponding annotations. Tables are parsed concurrently since the
// load is the one blocking step at process start.
func Load(dir string, log *slog.Logger) (*Store, error) {
	s := &Store{
		players:  make(map[string]domain.PlayerRecord),
		batting:  make(map[string][]domain.BattingSeason),
		pitching: make(map[string][]domain.PitchingSeason),
		awards:   make(map[string][]domain.AwardRecord),
		allStar:  make(map[playerYear]struct{}),
		appear:   make(map[playerYear][]appearance),
	}

	if _, err := os.Stat(filepath.Join(dir, peopleFile)); err != nil {
		return nil, errors.DataLoadf("required file not found: %s (is the data directory %q the folder containing %s?)", peopleFile, dir, peopleFile)
	}

	var shares []shareRecord
	var awardRows []awardRow

	var g errgroup.Group
	g.Go(func() error { return s.loadPeople(filepath.Join(dir, peopleFile), log) })
	g.Go(func() error { return s.loadBatting(filepath.Join(dir, battingFile), log) })
	g.Go(func() error { return s.loadPitching(filepath.Join(dir, pitchingFile), log) })
	g.Go(func() error {
		var err error
		awardRows, err = loadAwardRows(filepath.Join(dir, awardsFile), log)
		s.hasAwards = awardRows != nil
		return err
	})
	g.Go(func() error {
		var err error
		shares, err = loadAwardShares(filepath.Join(dir, awardsShareFile), log)
		s.hasAwardShares = shares != nil
		return err
	})
	g.Go(func() error { return s.loadAllStar(filepath.Join(dir, allStarFile), log) })
	g.Go(func() error { return s.loadAppearances(filepath.Join(dir, appearancesFile), log) })

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.buildAwards(awardRows, shares)
	s.sortSeasons()

	log.Info("Record store loaded",
		"players", len(s.players),
		"batters", len(s.batting),
		"pitchers", len(s.pitching),
	)

	return s, nil
}

// Player returns the biographical record for a player ID.
func (s *Store) Player(id string) (domain.PlayerRecord, error) {
	p, ok := s.players[id]
	if !ok {
		return domain.PlayerRecord{}, errors.NotFoundf("player %q not found", id)
	}
	return p, nil
}

// BattingSeasons returns the batting lines for a player, ascending by
// year with source stint order preserved within a year. The returned
// slice is a copy and safe for the caller to modify.
func (s *Store) BattingSeasons(id string) []domain.BattingSeason {
	return slices.Clone(s.batting[id])
}

// PitchingSeasons returns the pitching lines for a player, ascending by
// year with source stint order preserved within a year.
func (s *Store) PitchingSeasons(id string) []domain.PitchingSeason {
	return slices.Clone(s.pitching[id])
}

// Awards returns the award records for a player, vote ranks included,
// sorted by year then kind.
func (s *Store) Awards(id string) []domain.AwardRecord {
	return slices.Clone(s.awards[id])
}

// IsAllStar reports whether the player was selected to the All-Star
// game in the given year.
func (s *Store) IsAllStar(id string, year int) bool {
	_, ok := s.allStar[playerYear{id, year}]
	return ok
}

// MissingAnnotationTables lists the optional tables that were absent at
// load time. A non-empty result means award, All-Star, or position
// annotations are disabled for every table; required data is unaffected.
func (s *Store) MissingAnnotationTables() []string {
	var missing []string
	if !s.hasAwards {
		missing = append(missing, awardsFile)
	}
	if !s.hasAwardShares {
		missing = append(missing, awardsShareFile)
	}
	if !s.hasAllStar {
		missing = append(missing, allStarFile)
	}
	if !s.hasAppearances {
		missing = append(missing, appearancesFile)
	}
	return missing
}

// BatterIDs returns the IDs of all players with at least one batting
// line, sorted for deterministic iteration.
func (s *Store) BatterIDs() []string {
	return sortedKeys(s.batting)
}

// PitcherIDs returns the IDs of all players with at least one pitching
// line, sorted for deterministic iteration.
func (s *Store) PitcherIDs() []string {
	return sortedKeys(s.pitching)
}

func sortedKeys[V any](m map[string][]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// loadPeople parses People.csv into PlayerRecords. Rows without both
// name halves are dropped, matching how the pool treats unnamed players.
func (s *Store) loadPeople(path string, log *slog.Logger) error {
	t, err := readTable(path, peopleFile, "playerID", "nameFirst", "nameLast")
	if err != nil {
		return err
	}

	for i, row := range t.rows {
		id := t.str(row, "playerID")
		if id == "" {
			continue
		}
		birth, err := t.intCol(row, "birthYear", i+2)
		if err != nil {
			return err
		}
		s.players[id] = domain.PlayerRecord{
			ID:        id,
			FirstName: t.str(row, "nameFirst"),
			LastName:  t.str(row, "nameLast"),
			BirthYear: birth,
		}
	}

	log.Debug("Loaded people", "rows", len(t.rows))
	return nil
}

// battingCols maps the Batting.csv schema onto BattingSeason fields.
var battingCols = []struct {
	col string
	get func(*domain.BattingSeason) *int
}{
	{"G", func(b *domain.BattingSeason) *int { return &b.G }},
	{"AB", func(b *domain.BattingSeason) *int { return &b.AB }},
	{"R", func(b *domain.BattingSeason) *int { return &b.R }},
	{"H", func(b *domain.BattingSeason) *int { return &b.H }},
	{"2B", func(b *domain.BattingSeason) *int { return &b.Dbl }},
	{"3B", func(b *domain.BattingSeason) *int { return &b.Trp }},
	{"HR", func(b *domain.BattingSeason) *int { return &b.HR }},
	{"RBI", func(b *domain.BattingSeason) *int { return &b.RBI }},
	{"SB", func(b *domain.BattingSeason) *int { return &b.SB }},
	{"CS", func(b *domain.BattingSeason) *int { return &b.CS }},
	{"BB", func(b *domain.BattingSeason) *int { return &b.BB }},
	{"SO", func(b *domain.BattingSeason) *int { return &b.SO }},
	{"IBB", func(b *domain.BattingSeason) *int { return &b.IBB }},
	{"HBP", func(b *domain.BattingSeason) *int { return &b.HBP }},
	{"SF", func(b *domain.BattingSeason) *int { return &b.SF }},
}

func (s *Store) loadBatting(path string, log *slog.Logger) error {
	t, err := readTable(path, battingFile, "playerID", "yearID", "teamID", "AB", "H", "HR")
	if err != nil {
		return err
	}

	for i, row := range t.rows {
		line := i + 2
		id := t.str(row, "playerID")
		if id == "" {
			continue
		}
		year, err := t.intCol(row, "yearID", line)
		if err != nil {
			return err
		}
		stint, err := t.intCol(row, "stint", line)
		if err != nil {
			return err
		}
		season := domain.BattingSeason{
			PlayerID: id,
			Year:     year,
			Stint:    stint,
			Team:     t.str(row, "teamID"),
			League:   t.str(row, "lgID"),
		}
		for _, c := range battingCols {
			v, err := t.intCol(row, c.col, line)
			if err != nil {
				return err
			}
			*c.get(&season) = v
		}
		s.batting[id] = append(s.batting[id], season)
	}

	log.Debug("Loaded batting", "rows", len(t.rows))
	return nil
}

// pitchingCols maps the Pitching.csv schema onto PitchingSeason fields.
var pitchingCols = []struct {
	col string
	get func(*domain.PitchingSeason) *int
}{
	{"W", func(p *domain.PitchingSeason) *int { return &p.W }},
	{"L", func(p *domain.PitchingSeason) *int { return &p.L }},
	{"G", func(p *domain.PitchingSeason) *int { return &p.G }},
	{"GS", func(p *domain.PitchingSeason) *int { return &p.GS }},
	{"CG", func(p *domain.PitchingSeason) *int { return &p.CG }},
	{"SHO", func(p *domain.PitchingSeason) *int { return &p.SHO }},
	{"SV", func(p *domain.PitchingSeason) *int { return &p.SV }},
	{"IPouts", func(p *domain.PitchingSeason) *int { return &p.IPOuts }},
	{"H", func(p *domain.PitchingSeason) *int { return &p.H }},
	{"ER", func(p *domain.PitchingSeason) *int { return &p.ER }},
	{"HR", func(p *domain.PitchingSeason) *int { return &p.HR }},
	{"BB", func(p *domain.PitchingSeason) *int { return &p.BB }},
	{"SO", func(p *domain.PitchingSeason) *int { return &p.SO }},
}

func (s *Store) loadPitching(path string, log *slog.Logger) error {
	t, err := readTable(path, pitchingFile, "playerID", "yearID", "teamID", "IPouts", "ER", "SO")
	if err != nil {
		return err
	}

	for i, row := range t.rows {
		line := i + 2
		id := t.str(row, "playerID")
		if id == "" {
			continue
		}
		year, err := t.intCol(row, "yearID", line)
		if err != nil {
			return err
		}
		stint, err := t.intCol(row, "stint", line)
		if err != nil {
			return err
		}
		season := domain.PitchingSeason{
			PlayerID: id,
			Year:     year,
			Stint:    stint,
			Team:     t.str(row, "teamID"),
			League:   t.str(row, "lgID"),
		}
		for _, c := range pitchingCols {
			v, err := t.intCol(row, c.col, line)
			if err != nil {
				return err
			}
			*c.get(&season) = v
		}
		s.pitching[id] = append(s.pitching[id], season)
	}

	log.Debug("Loaded pitching", "rows", len(t.rows))
	return nil
}

func (s *Store) loadAllStar(path string, log *slog.Logger) error {
	if _, err := os.Stat(path); err != nil {
		log.Warn("All-Star table not found, selections will not be annotated", "file", allStarFile)
		return nil
	}
	t, err := readTable(path, allStarFile, "playerID", "yearID")
	if err != nil {
		return err
	}

	for i, row := range t.rows {
		id := t.str(row, "playerID")
		if id == "" {
			continue
		}
		year, err := t.intCol(row, "yearID", i+2)
		if err != nil {
			return err
		}
		s.allStar[playerYear{id, year}] = struct{}{}
	}

	s.hasAllStar = true
	log.Debug("Loaded all-star selections", "rows", len(t.rows))
	return nil
}

// sortSeasons orders every player's lines by year, preserving the stint
// order given in the source within a year.
func (s *Store) sortSeasons() {
	for _, seasons := range s.batting {
		sort.SliceStable(seasons, func(i, j int) bool {
			if seasons[i].Year != seasons[j].Year {
				return seasons[i].Year < seasons[j].Year
			}
			return seasons[i].Stint < seasons[j].Stint
		})
	}
	for _, seasons := range s.pitching {
		sort.SliceStable(seasons, func(i, j int) bool {
			if seasons[i].Year != seasons[j].Year {
				return seasons[i].Year < seasons[j].Year
			}
			return seasons[i].Stint < seasons[j].Stint
		})
	}
}
