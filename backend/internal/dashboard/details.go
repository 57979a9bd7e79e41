package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
)

type DetailsRequest struct {
	Operation string   `json:"operation"`
	Carriers  []string `json:"carriers"`
}

type CarrierDetail struct {
	Name  string          `json:"name"`
	Found bool            `json:"found"`
	Entry *relindex.Entry `json:"entry,omitempty"`
	Error *string         `json:"error"`
}

type DetailsResponse struct {
	Operation string              `json:"operation"`
	Summary   types.ResultSummary `json:"summary"`
	Details   []CarrierDetail     `json:"details"`
	Error     *string             `json:"error"`
}

// CarrierDetails looks up carriers by exact name and returns their relationship
// sets in request order, skipping repeats. Unknown names are reported per carrier.
func CarrierDetails(ix *relindex.Index, req DetailsRequest) (DetailsResponse, error) {
	var res DetailsResponse
	res.Operation = req.Operation
	start := time.Now()

	if ix == nil {
		msg := errNoDataset.Error()
		res.Error = &msg
		return res, errNoDataset
	}

	seen := map[string]bool{}
	details := make([]CarrierDetail, 0, len(req.Carriers))
	var processed, matched int
	for _, raw := range req.Carriers {
		name := strings.TrimSpace(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		processed++

		d := CarrierDetail{Name: name}
		if e, ok := ix.Lookup(name); ok {
			entry := e
			d.Found = true
			d.Entry = &entry
			matched++
		} else {
			msg := fmt.Sprintf("data for %q not found after processing; check the uploaded file", name)
			d.Error = &msg
		}
		details = append(details, d)
	}

	res.Details = details
	res.Summary = types.ResultSummary{
		Processed:  processed,
		Matched:    matched,
		Missing:    processed - matched,
		DurationMS: time.Since(start).Milliseconds(),
	}
	res.Error = nil
	return res, nil
}
