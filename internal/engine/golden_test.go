package engine

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"superstore-dashboard/internal/models"
)

// Full-output regression check over the sample dataset. Regenerate with:
//
//	go test ./internal/engine -run TestQuery_Golden -update
func TestQuery_GoldenUnfiltered(t *testing.T) {
	results := Query(sampleDataset(), models.FilterSelection{})

	data, err := json.MarshalIndent(results, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "query_unfiltered", append(data, '\n'))
}
