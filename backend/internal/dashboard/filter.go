package dashboard

import (
	"errors"
	"strings"
	"time"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/utils"
)

// --- match types ---
type MatchMethod string

const (
	MatchExact           MatchMethod = "exact"
	MatchCaseInsensitive MatchMethod = "case_insensitive"
)

// errNoDataset is returned by every query when no index is loaded.
var errNoDataset = errors.New("dataset required")

// --- request/response types for filtering ---

// Selection holds the values picked in each relationship filter widget.
// A carrier passes a non-empty selection when any of its values is selected.
type Selection struct {
	BrokersTo         []string `json:"brokers_to,omitempty"`
	BrokersThrough    []string `json:"brokers_through,omitempty"`
	BrokerEntityOf    []string `json:"broker_entity_of,omitempty"`
	RelationshipOwner []string `json:"relationship_owner,omitempty"`
}

// Values returns the selected values for field f.
func (s Selection) Values(f relindex.Field) []string {
	switch f {
	case relindex.FieldBrokersTo:
		return s.BrokersTo
	case relindex.FieldBrokersThrough:
		return s.BrokersThrough
	case relindex.FieldBrokerEntityOf:
		return s.BrokerEntityOf
	case relindex.FieldRelationshipOwner:
		return s.RelationshipOwner
	}
	return nil
}

type FilterOptions struct {
	Search      string      `json:"search,omitempty"`       // substring of the carrier name
	MatchMethod MatchMethod `json:"match_method,omitempty"` // default case_insensitive
	Selection
}

type FilterRequest struct {
	Operation  string                  `json:"operation"`
	Options    FilterOptions           `json:"options"`
	Sort       SortOptions             `json:"sort"`
	Pagination types.PaginationOptions `json:"pagination,omitempty"`
}

// CarrierSummary is one line of the carrier list.
type CarrierSummary struct {
	Name              string `json:"name"`
	BrokersTo         int    `json:"brokers_to"`
	BrokersThrough    int    `json:"brokers_through"`
	BrokerEntityOf    int    `json:"broker_entity_of"`
	RelationshipOwner int    `json:"relationship_owner"`
}

func summarize(name string, e relindex.Entry) CarrierSummary {
	return CarrierSummary{
		Name:              name,
		BrokersTo:         len(e.BrokersTo),
		BrokersThrough:    len(e.BrokersThrough),
		BrokerEntityOf:    len(e.BrokerEntityOf),
		RelationshipOwner: len(e.RelationshipOwner),
	}
}

type FilterResponse struct {
	Operation string              `json:"operation"`
	Summary   types.ResultSummary `json:"summary"`
	Carriers  []CarrierSummary    `json:"carriers"`
	Names     []string            `json:"-"` // every matching name, sorted, before pagination
	Error     *string             `json:"error"`
}

// --- Core function ---

// FilterCarriers applies search and selections to the index, sorts, and paginates.
func FilterCarriers(ix *relindex.Index, req FilterRequest) (FilterResponse, error) {
	var res FilterResponse
	res.Operation = req.Operation
	start := time.Now()

	if ix == nil {
		return resWithErr(res, errNoDataset.Error()), errNoDataset
	}

	// build lookup sets once per selected field
	selected := map[relindex.Field]utils.StringSet{}
	for _, f := range relindex.RelationFields {
		if vals := req.Options.Values(f); len(vals) > 0 {
			selected[f] = utils.NewStringSet(vals...)
		}
	}

	search := strings.TrimSpace(req.Options.Search)
	caseInsensitive := req.Options.MatchMethod != MatchExact

	var processed int
	matched := make([]string, 0, len(ix.Carriers))
	for _, name := range ix.Names() {
		processed++
		if search != "" {
			var hit bool
			if caseInsensitive {
				hit = utils.ContainsFold(name, search)
			} else {
				hit = strings.Contains(name, search)
			}
			if !hit {
				continue
			}
		}
		if !passesSelection(ix.Carriers[name], selected) {
			continue
		}
		matched = append(matched, name)
	}

	sorted, err := SortCarriers(ix, matched, req.Sort)
	if err != nil {
		return resWithErr(res, err.Error()), err
	}

	from, to := req.Pagination.Bounds(len(sorted))
	page := make([]CarrierSummary, 0, to-from)
	for _, name := range sorted[from:to] {
		page = append(page, summarize(name, ix.Carriers[name]))
	}

	res.Carriers = page
	res.Names = sorted
	res.Summary = types.ResultSummary{
		Processed:  processed,
		Matched:    len(matched),
		Missing:    processed - len(matched),
		DurationMS: time.Since(start).Milliseconds(),
	}
	res.Error = nil
	return res, nil
}

func passesSelection(e relindex.Entry, selected map[relindex.Field]utils.StringSet) bool {
	for f, set := range selected {
		found := false
		for _, v := range e.Values(f) {
			if set.Has(v) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// --- helpers ---
func resWithErr(r FilterResponse, msg string) FilterResponse {
	r.Error = &msg
	return r
}
