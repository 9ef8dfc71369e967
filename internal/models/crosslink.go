package models

import "sort"

// Terminal identifies which end of the molecule a crosslink attaches to.
type Terminal string

const (
	TerminalN Terminal = "N"
	TerminalC Terminal = "C"
)

// CrosslinkTypeNone is the sentinel "no crosslink" type. A terminal set to
// NONE requires no position selection.
const CrosslinkTypeNone = "NONE"

// CrosslinkRecord is one row of the server's crosslink reference table.
// Terminal carries the raw "RES-terminal" value, e.g. "LYS-N".
type CrosslinkRecord struct {
	Species  string `json:"species"`
	Terminal string `json:"RES-terminal"`
	Type     string `json:"type"`
	Position string `json:"position"`
}

// CrosslinkTable is the read-only reference data fetched once per wizard
// run. It answers which crosslink types and positions are permissible for a
// given (species, terminal) pair.
type CrosslinkTable struct {
	species []string
	records []CrosslinkRecord
}

// NewCrosslinkTable builds a table from the crosslinks-data response.
func NewCrosslinkTable(species []string, records []CrosslinkRecord) *CrosslinkTable {
	sorted := make([]string, len(species))
	copy(sorted, species)
	sort.Strings(sorted)
	return &CrosslinkTable{species: sorted, records: records}
}

// Species returns the selectable species, sorted.
func (t *CrosslinkTable) Species() []string {
	return t.species
}

// HasSpecies reports whether the table contains any rows for species.
func (t *CrosslinkTable) HasSpecies(species string) bool {
	for _, s := range t.species {
		if s == species {
			return true
		}
	}
	return false
}

// Types returns the crosslink types available for a species at the given
// terminal, with NONE always first.
func (t *CrosslinkTable) Types(species string, terminal Terminal) []string {
	seen := map[string]bool{}
	types := []string{CrosslinkTypeNone}
	for _, rec := range t.records {
		if rec.Species != species || rec.Terminal != terminalKey(terminal) {
			continue
		}
		if rec.Type == CrosslinkTypeNone || seen[rec.Type] {
			continue
		}
		seen[rec.Type] = true
		types = append(types, rec.Type)
	}
	return types
}

// Positions returns the permissible positions for (species, terminal, type).
// An empty slice means the combination is not in the reference table.
func (t *CrosslinkTable) Positions(species string, terminal Terminal, crosslinkType string) []string {
	var positions []string
	for _, rec := range t.records {
		if rec.Species == species && rec.Terminal == terminalKey(terminal) && rec.Type == crosslinkType {
			positions = append(positions, rec.Position)
		}
	}
	return positions
}

// HasPosition reports whether position is valid for (species, terminal, type).
func (t *CrosslinkTable) HasPosition(species string, terminal Terminal, crosslinkType, position string) bool {
	for _, p := range t.Positions(species, terminal, crosslinkType) {
		if p == position {
			return true
		}
	}
	return false
}

// terminalKey maps a Terminal to the raw RES-terminal value in the table.
// Crosslinks attach at lysine residues, so rows are keyed LYS-N / LYS-C.
func terminalKey(terminal Terminal) string {
	return "LYS-" + string(terminal)
}
