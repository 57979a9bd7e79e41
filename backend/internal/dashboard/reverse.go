package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/utils"
)

type RelatedLookupRequest struct {
	Operation   string           `json:"operation"`
	Value       string           `json:"value"`                  // broker, entity or owner name
	Fields      []relindex.Field `json:"fields,omitempty"`       // empty means all four
	MatchMethod MatchMethod      `json:"match_method,omitempty"` // default exact
}

// RelatedLink is one carrier linked to the looked-up value through Field.
type RelatedLink struct {
	Carrier string         `json:"carrier"`
	Field   relindex.Field `json:"field"`
	Value   string         `json:"value"`
}

type RelatedLookupResponse struct {
	Operation string              `json:"operation"`
	Summary   types.ResultSummary `json:"summary"`
	Links     []RelatedLink       `json:"links"`
	Carriers  []string            `json:"carriers"` // distinct, sorted
	Error     *string             `json:"error"`
}

// RelatedCarriers returns every carrier that lists req.Value in one of the requested
// relationship fields: the many carriers behind one broker, entity or owner.
func RelatedCarriers(ix *relindex.Index, req RelatedLookupRequest) (RelatedLookupResponse, error) {
	var res RelatedLookupResponse
	res.Operation = req.Operation
	start := time.Now()

	// Validation
	if ix == nil {
		msg := errNoDataset.Error()
		res.Error = &msg
		return res, errNoDataset
	}
	value := utils.WhitespaceTrimmer(req.Value)
	if value == "" {
		msg := "value is required"
		res.Error = &msg
		return res, errors.New(msg)
	}
	fields := relindex.RelationFields
	if len(req.Fields) > 0 {
		fields = make([]relindex.Field, 0, len(req.Fields))
		for _, f := range req.Fields {
			pf, ok := relindex.ParseField(string(f))
			if !ok {
				msg := fmt.Sprintf("unknown relationship field %q", f)
				res.Error = &msg
				return res, errors.New(msg)
			}
			fields = append(fields, pf)
		}
	}

	match := func(v string) bool {
		if req.MatchMethod == MatchCaseInsensitive {
			return strings.EqualFold(v, value)
		}
		return v == value
	}

	processed := 0
	carriers := utils.StringSet{}
	links := make([]RelatedLink, 0)
	for _, name := range ix.Names() {
		processed++
		e := ix.Carriers[name]
		for _, f := range fields {
			for _, v := range e.Values(f) {
				if match(v) {
					links = append(links, RelatedLink{Carrier: name, Field: f, Value: v})
					carriers.Add(name)
				}
			}
		}
	}

	res.Links = links
	res.Carriers = carriers.Sorted()
	res.Summary = types.ResultSummary{
		Processed:  processed,
		Matched:    len(res.Carriers),
		Missing:    processed - len(res.Carriers),
		DurationMS: time.Since(start).Milliseconds(),
	}
	return res, nil
}
