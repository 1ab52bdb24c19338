package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraphClient(t *testing.T) {
	t.Run("requires ai client", func(t *testing.T) {
		_, err := NewGraphClient(NewGraphClientParams{Store: newMemStore()})
		assert.Error(t, err)
	})

	t.Run("requires store", func(t *testing.T) {
		_, err := NewGraphClient(NewGraphClientParams{AIClient: &fakeAI{}})
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		g, err := NewGraphClient(NewGraphClientParams{AIClient: &fakeAI{}, Store: newMemStore()})
		require.NoError(t, err)
		assert.Equal(t, DefaultSubgraphLimit, g.subgraphLimit)
		assert.Equal(t, DefaultRenderOptions(), g.RenderOptions())
	})

	t.Run("overrides", func(t *testing.T) {
		opts := RenderOptions{Height: "500px", Width: "800px", BgColor: "#ffffff", FontColor: "black"}
		g, err := NewGraphClient(NewGraphClientParams{
			AIClient:      &fakeAI{},
			Store:         newMemStore(),
			SubgraphLimit: 10,
			Render:        &opts,
		})
		require.NoError(t, err)
		assert.Equal(t, 10, g.subgraphLimit)
		assert.Equal(t, opts, g.RenderOptions())
	})
}

func newTestClient(t *testing.T, aiClient *fakeAI, s *memStore) *GraphClient {
	t.Helper()
	g, err := NewGraphClient(NewGraphClientParams{AIClient: aiClient, Store: s})
	require.NoError(t, err)
	return g
}
