package dashboard

import (
	"sort"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/utils"
)

// DefaultTopN is the number of ranked values returned by ComputeStats when topN <= 0.
const DefaultTopN = 10

// ValueCount is a value and the number of distinct carriers linked to it.
type ValueCount struct {
	Value    string `json:"value"`
	Carriers int    `json:"carriers"`
}

// Stats are the summary counts shown above the carrier list.
type Stats struct {
	Carriers          int               `json:"carriers"`
	BrokersTo         int               `json:"brokers_to"`
	BrokersThrough    int               `json:"brokers_through"`
	BrokerEntityOf    int               `json:"broker_entity_of"`
	RelationshipOwner int               `json:"relationship_owner"`
	DistinctBrokers   int               `json:"distinct_brokers"` // union of to and through
	Rows              relindex.RowStats `json:"rows"`
	TopBrokers        []ValueCount      `json:"top_brokers"`
	TopOwners         []ValueCount      `json:"top_owners"`
}

// ComputeStats derives counts from the global sets and ranks brokers and owners
// by how many carriers they are linked to. Ties are broken by ascending value.
func ComputeStats(ix *relindex.Index, topN int) Stats {
	if ix == nil {
		return Stats{TopBrokers: []ValueCount{}, TopOwners: []ValueCount{}}
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	brokers := utils.NewStringSet(ix.Globals.BrokersTo...)
	brokers.Add(ix.Globals.BrokersThrough...)

	brokerCarriers := map[string]utils.StringSet{}
	ownerCarriers := map[string]utils.StringSet{}
	for name, e := range ix.Carriers {
		for _, b := range e.BrokersTo {
			addLink(brokerCarriers, b, name)
		}
		for _, b := range e.BrokersThrough {
			addLink(brokerCarriers, b, name)
		}
		for _, o := range e.RelationshipOwner {
			addLink(ownerCarriers, o, name)
		}
	}

	return Stats{
		Carriers:          len(ix.Carriers),
		BrokersTo:         len(ix.Globals.BrokersTo),
		BrokersThrough:    len(ix.Globals.BrokersThrough),
		BrokerEntityOf:    len(ix.Globals.BrokerEntityOf),
		RelationshipOwner: len(ix.Globals.RelationshipOwner),
		DistinctBrokers:   len(brokers),
		Rows:              ix.Rows,
		TopBrokers:        rank(brokerCarriers, topN),
		TopOwners:         rank(ownerCarriers, topN),
	}
}

func addLink(m map[string]utils.StringSet, value, carrier string) {
	s, ok := m[value]
	if !ok {
		s = utils.StringSet{}
		m[value] = s
	}
	s.Add(carrier)
}

func rank(m map[string]utils.StringSet, topN int) []ValueCount {
	out := make([]ValueCount, 0, len(m))
	for v, s := range m {
		out = append(out, ValueCount{Value: v, Carriers: len(s)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Carriers != out[j].Carriers {
			return out[i].Carriers > out[j].Carriers
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
