package dashboard

import (
	"fmt"
	"sort"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
)

// --- Sort modes / options ---

type SortMode string
type SortOrder string

const (
	SortAlpha       SortMode = "alphabetical"
	SortBrokerCount SortMode = "broker_count"

	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

type SortOptions struct {
	Mode  SortMode  `json:"mode,omitempty"`  // alphabetical | broker_count
	Order SortOrder `json:"order,omitempty"` // asc | desc
}

// SortCarriers returns a sorted copy of names. Empty mode means alphabetical, empty
// order means ascending. Ties on broker count fall back to ascending name.
func SortCarriers(ix *relindex.Index, names []string, opts SortOptions) ([]string, error) {
	if opts.Mode == "" {
		opts.Mode = SortAlpha
	}
	if opts.Order == "" {
		opts.Order = OrderAsc
	}
	if opts.Order != OrderAsc && opts.Order != OrderDesc {
		return nil, fmt.Errorf("unsupported sort order %q", opts.Order)
	}
	asc := opts.Order == OrderAsc

	out := append([]string(nil), names...)

	switch opts.Mode {
	case SortAlpha:
		sort.SliceStable(out, func(i, j int) bool {
			if asc {
				return out[i] < out[j]
			}
			return out[i] > out[j]
		})
	case SortBrokerCount:
		counts := make(map[string]int, len(out))
		for _, n := range out {
			e, _ := ix.Lookup(n)
			counts[n] = e.BrokerCount()
		}
		sort.SliceStable(out, func(i, j int) bool {
			a, b := counts[out[i]], counts[out[j]]
			if a == b {
				// stable tie-breaker: name ascending regardless of order
				return out[i] < out[j]
			}
			if asc {
				return a < b
			}
			return a > b
		})
	default:
		return nil, fmt.Errorf("unsupported sort mode %q", opts.Mode)
	}
	return out, nil
}
