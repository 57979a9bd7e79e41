package dashboard

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
)

func TestRender_NoDataset(t *testing.T) {
	v := Render(nil, State{})
	assert.Equal(t, StatusEmpty, v.Status)
	assert.Equal(t, EmptyNoDataset, v.Reason)
	assert.Equal(t, "Please upload your Carrier Relationships file (CSV or Excel) to begin analysis.", v.Message)
	assert.Nil(t, v.Error)

	// empty collections render as [] for the client
	out, err := json.Marshal(v.Choices)
	require.NoError(t, err)
	assert.JSONEq(t, `{"carriers":[],"brokers_to":[],"brokers_through":[],"broker_entity_of":[],"relationship_owner":[]}`, string(out))
	assert.NotNil(t, v.Carriers.Carriers)
	assert.NotNil(t, v.Details)
}

func TestRender_NoCarrierSelected(t *testing.T) {
	ix := sampleIndex(t)
	v := Render(ix, State{})

	assert.Equal(t, StatusEmpty, v.Status)
	assert.Equal(t, EmptyNoCarrierSelected, v.Reason)
	assert.Len(t, v.Carriers.Carriers, 4)
	assert.Equal(t, 4, v.Stats.Carriers)
	assert.NotEmpty(t, v.Graph.Nodes, "graph falls back to the listed carriers")
}

func TestRender_NoMatches(t *testing.T) {
	v := Render(sampleIndex(t), State{Filter: FilterOptions{Search: "zzz"}})
	assert.Equal(t, StatusEmpty, v.Status)
	assert.Equal(t, EmptyNoMatches, v.Reason)
	assert.Equal(t, "No carriers match the current search and filters.", v.Message)
	assert.Empty(t, v.Graph.Nodes)
}

func TestRender_Selected(t *testing.T) {
	ix := sampleIndex(t)
	v := Render(ix, State{Selected: []string{"Beacon Transport"}})

	assert.Equal(t, StatusOK, v.Status)
	assert.Empty(t, v.Reason)
	require.Len(t, v.Details, 1)
	assert.True(t, v.Details[0].Found)
	assert.Len(t, v.Graph.Nodes, 4)
	assert.Len(t, v.Graph.Edges, 3)
}

func TestRender_InvalidSort(t *testing.T) {
	v := Render(sampleIndex(t), State{Sort: SortOptions{Mode: "bogus"}})
	require.NotNil(t, v.Error)
	assert.Contains(t, *v.Error, "bogus")
}

func TestRender_DoesNotMutateIndex(t *testing.T) {
	ix := sampleIndex(t)
	before := ix.Names()
	_ = Render(ix, State{Selected: []string{"Atlas Freight"}, Sort: SortOptions{Mode: SortBrokerCount, Order: OrderDesc}})
	assert.Equal(t, before, ix.Names())
	assert.Equal(t, []string{"Blue Line Brokerage", "Crescent Brokers", "Summit Logistics"}, ix.Carriers["Atlas Freight"].BrokersTo)
}

func TestRender_HugePageLimit(t *testing.T) {
	st := State{Pagination: types.PaginationOptions{Limit: math.MaxInt, Offset: 1}}
	var v View
	require.NotPanics(t, func() { v = Render(sampleIndex(t), st) })
	assert.Len(t, v.Carriers.Carriers, 3)
}
