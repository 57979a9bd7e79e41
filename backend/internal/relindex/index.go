package relindex

import (
	"sort"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/utils"
)

// Entry holds the four relationship sets of one carrier, each sorted ascending.
// Empty sets are empty slices, never nil.
type Entry struct {
	BrokersTo         []string `json:"brokers_to"`
	BrokersThrough    []string `json:"brokers_through"`
	BrokerEntityOf    []string `json:"broker_entity_of"`
	RelationshipOwner []string `json:"relationship_owner"`
}

// Values returns the set for field f.
func (e Entry) Values(f Field) []string {
	switch f {
	case FieldBrokersTo:
		return e.BrokersTo
	case FieldBrokersThrough:
		return e.BrokersThrough
	case FieldBrokerEntityOf:
		return e.BrokerEntityOf
	case FieldRelationshipOwner:
		return e.RelationshipOwner
	}
	return nil
}

// BrokerCount is the number of brokers linked either way.
func (e Entry) BrokerCount() int {
	return len(e.BrokersTo) + len(e.BrokersThrough)
}

// CarrierIndex maps a normalized carrier name to its entry.
type CarrierIndex map[string]Entry

// GlobalSets holds every distinct value of each relationship field across the dataset.
type GlobalSets struct {
	BrokersTo         []string `json:"brokers_to"`
	BrokersThrough    []string `json:"brokers_through"`
	BrokerEntityOf    []string `json:"broker_entity_of"`
	RelationshipOwner []string `json:"relationship_owner"`
}

// Values returns the global set for field f.
func (g GlobalSets) Values(f Field) []string {
	return Entry(g).Values(f)
}

// RowStats counts input rows.
type RowStats struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"` // fully blank rows
}

// Index is the immutable result of BuildIndex.
type Index struct {
	Carriers CarrierIndex `json:"carriers"`
	Globals  GlobalSets   `json:"globals"`
	Rows     RowStats     `json:"rows"`
}

// Names returns all carrier names in ascending order.
func (ix *Index) Names() []string {
	names := make([]string, 0, len(ix.Carriers))
	for n := range ix.Carriers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the entry for carrier name.
func (ix *Index) Lookup(name string) (Entry, bool) {
	e, ok := ix.Carriers[name]
	return e, ok
}

// setGroup is the mutable form of Entry used while scanning rows.
type setGroup [4]utils.StringSet

func newSetGroup() *setGroup {
	var g setGroup
	for i := range g {
		g[i] = utils.StringSet{}
	}
	return &g
}

func (g *setGroup) add(tokens [4][]string) {
	for i, t := range tokens {
		g[i].Add(t...)
	}
}

func (g *setGroup) entry() Entry {
	return Entry{
		BrokersTo:         g[0].Sorted(),
		BrokersThrough:    g[1].Sorted(),
		BrokerEntityOf:    g[2].Sorted(),
		RelationshipOwner: g[3].Sorted(),
	}
}

// MissingTokens are whole-cell spellings of a missing value, the same set
// pandas reads as NA by default. They are treated like an empty cell.
var MissingTokens = utils.NewStringSet(
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
)

// cellValue trims cell and maps missing-value tokens to "".
func cellValue(cell string) string {
	v := utils.WhitespaceTrimmer(cell)
	if MissingTokens.Has(v) {
		return ""
	}
	return v
}

// scalarToken trims a non-delimited cell into at most one token.
func scalarToken(cell string) []string {
	if v := cellValue(cell); v != "" {
		return []string{v}
	}
	return nil
}

// normalize turns a raw record into its carrier key and the four token lists.
// Missing tokens only count when they fill the whole cell, so "X, NA" keeps "NA".
func normalize(r Record) (string, [4][]string) {
	carrier := cellValue(r.Carrier)
	if carrier == "" {
		carrier = UnnamedCarrier
	}
	return carrier, [4][]string{
		utils.SplitTokens(cellValue(r.BrokersTo), TokenSeparator),
		utils.SplitTokens(cellValue(r.BrokersThrough), TokenSeparator),
		scalarToken(r.BrokerEntityOf),
		scalarToken(r.RelationshipOwner),
	}
}

func blank(carrier string, tokens [4][]string) bool {
	if carrier != UnnamedCarrier {
		return false
	}
	for _, t := range tokens {
		if len(t) > 0 {
			return false
		}
	}
	return true
}

// BuildIndex validates tbl against Schema and folds its rows into per-carrier
// relationship sets plus dataset-wide sets. It performs no I/O and is deterministic.
func BuildIndex(tbl types.TableData) (*Index, error) {
	records, err := Bind(tbl)
	if err != nil {
		return nil, err
	}
	return IndexRecords(records), nil
}

// IndexRecords folds already bound records into an Index.
func IndexRecords(records []Record) *Index {
	carriers := map[string]*setGroup{}
	globals := newSetGroup()
	var stats RowStats

	for _, r := range records {
		stats.Processed++
		carrier, tokens := normalize(r)
		if blank(carrier, tokens) {
			stats.Skipped++
			continue
		}
		g, ok := carriers[carrier]
		if !ok {
			g = newSetGroup()
			carriers[carrier] = g
		}
		g.add(tokens)
		globals.add(tokens)
	}

	ix := &Index{
		Carriers: make(CarrierIndex, len(carriers)),
		Globals:  GlobalSets(globals.entry()),
		Rows:     stats,
	}
	for name, g := range carriers {
		ix.Carriers[name] = g.entry()
	}
	return ix
}
