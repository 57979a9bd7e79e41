package dashboard

import (
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
)

// Choices populate the filter widgets.
type Choices struct {
	Carriers []string `json:"carriers"`
	relindex.GlobalSets
}

// FilterChoices returns the sorted carrier names and the four global sets.
func FilterChoices(ix *relindex.Index) Choices {
	if ix == nil {
		return Choices{
			Carriers: []string{},
			GlobalSets: relindex.GlobalSets{
				BrokersTo:         []string{},
				BrokersThrough:    []string{},
				BrokerEntityOf:    []string{},
				RelationshipOwner: []string{},
			},
		}
	}
	return Choices{Carriers: ix.Names(), GlobalSets: ix.Globals}
}

// State is everything one session has picked so far. It is plain data: the
// caller owns it and passes it in on every interaction.
type State struct {
	Filter     FilterOptions           `json:"filter"`
	Sort       SortOptions             `json:"sort"`
	Pagination types.PaginationOptions `json:"pagination"`
	Selected   []string                `json:"selected,omitempty"`
	TopN       int                     `json:"top_n,omitempty"`
}

type ViewStatus string

const (
	StatusOK    ViewStatus = "ok"
	StatusEmpty ViewStatus = "empty"
)

// EmptyReason says why there is nothing to show. It is an informational state, not an error.
type EmptyReason string

const (
	EmptyNoDataset         EmptyReason = "no_dataset"
	EmptyNoMatches         EmptyReason = "no_matches"
	EmptyNoCarrierSelected EmptyReason = "no_carrier_selected"
)

var emptyMessages = map[EmptyReason]string{
	EmptyNoDataset:         "Please upload your Carrier Relationships file (CSV or Excel) to begin analysis.",
	EmptyNoMatches:         "No carriers match the current search and filters.",
	EmptyNoCarrierSelected: "Please select a carrier to view their details.",
}

// View is what the dashboard draws for one interaction.
type View struct {
	Status   ViewStatus      `json:"status"`
	Reason   EmptyReason     `json:"reason,omitempty"`
	Message  string          `json:"message,omitempty"`
	Choices  Choices         `json:"choices"`
	Carriers FilterResponse  `json:"carriers"`
	Details  []CarrierDetail `json:"details"`
	Stats    Stats           `json:"stats"`
	Graph    Graph           `json:"graph"`
	Error    *string         `json:"error"`
}

func emptyView(reason EmptyReason) View {
	return View{
		Status:  StatusEmpty,
		Reason:  reason,
		Message: emptyMessages[reason],
		Carriers: FilterResponse{
			Operation: "filter",
			Carriers:  []CarrierSummary{},
		},
		Details: []CarrierDetail{},
		Graph:   Graph{Nodes: []Node{}, Edges: []Edge{}},
	}
}

// Render computes the whole view from an index and a session state. A nil index
// renders the no-dataset state. Invalid options (e.g. an unknown sort mode) are
// reported in View.Error; Render never fails.
func Render(ix *relindex.Index, st State) View {
	if ix == nil {
		v := emptyView(EmptyNoDataset)
		v.Choices = FilterChoices(nil)
		v.Stats = ComputeStats(nil, st.TopN)
		return v
	}

	v := View{Status: StatusOK, Details: []CarrierDetail{}}
	v.Choices = FilterChoices(ix)
	v.Stats = ComputeStats(ix, st.TopN)

	filtered, err := FilterCarriers(ix, FilterRequest{
		Operation:  "filter",
		Options:    st.Filter,
		Sort:       st.Sort,
		Pagination: st.Pagination,
	})
	v.Carriers = filtered
	if err != nil {
		msg := err.Error()
		v.Error = &msg
		v.Graph = Graph{Nodes: []Node{}, Edges: []Edge{}}
		return v
	}

	if len(st.Selected) > 0 {
		details, _ := CarrierDetails(ix, DetailsRequest{Operation: "details", Carriers: st.Selected})
		v.Details = details.Details
	}

	// graph: found selections, else the current page of the filtered list
	var graphFor []string
	for _, d := range v.Details {
		if d.Found {
			graphFor = append(graphFor, d.Name)
		}
	}
	if len(graphFor) == 0 {
		for _, c := range filtered.Carriers {
			graphFor = append(graphFor, c.Name)
		}
	}
	if len(graphFor) > 0 {
		// every name comes from the index, so BuildGraph cannot fail here
		v.Graph, _ = BuildGraph(ix, graphFor)
	} else {
		v.Graph = Graph{Nodes: []Node{}, Edges: []Edge{}}
	}

	switch {
	case len(filtered.Names) == 0 && len(v.Details) == 0:
		v.Status, v.Reason = StatusEmpty, EmptyNoMatches
	case len(v.Details) == 0:
		v.Status, v.Reason = StatusEmpty, EmptyNoCarrierSelected
	}
	if v.Reason != "" {
		v.Message = emptyMessages[v.Reason]
	}
	return v
}
