package domain

import "strings"

type GeoState struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Abbreviation string `db:"abbreviation" json:"abbreviation"`
}

// GeoStates is the in-memory state index loaded once at startup. The table is
// tiny and immutable, so lookups never touch the database.
type GeoStates struct {
	byAbbrev map[string]GeoState
	byID     map[int64]GeoState
}

func NewGeoStates(states []GeoState) *GeoStates {
	idx := &GeoStates{
		byAbbrev: make(map[string]GeoState, len(states)),
		byID:     make(map[int64]GeoState, len(states)),
	}
	for _, s := range states {
		idx.byAbbrev[strings.ToUpper(s.Abbreviation)] = s
		idx.byID[s.ID] = s
	}
	return idx
}

// ByAbbreviation resolves a two letter state code, case-insensitively.
func (g *GeoStates) ByAbbreviation(abbrev string) (GeoState, bool) {
	s, ok := g.byAbbrev[strings.ToUpper(abbrev)]
	return s, ok
}

func (g *GeoStates) ByID(id int64) (GeoState, bool) {
	s, ok := g.byID[id]
	return s, ok
}
