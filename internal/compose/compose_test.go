package compose_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"agribot-wa-relay/internal/catalog"
	"agribot-wa-relay/internal/compose"
	"agribot-wa-relay/internal/gateway"
	"agribot-wa-relay/internal/types"
)

func TestFromBackendLeadTextOnly(t *testing.T) {
	msgs := compose.FromBackend(gateway.Reply{Text: "Hello there."})
	require.Len(t, msgs, 1)
	require.Equal(t, "Hello there.", msgs[0].Text)
	require.Empty(t, msgs[0].MediaURL)
}

func TestFromBackendProductsInOrder(t *testing.T) {
	msgs := compose.FromBackend(gateway.Reply{
		Text: "Two options:",
		Products: []types.ProductSummary{
			{Title: "A", Description: "first", ImageURL: "http://x/a.png"},
			{Title: "B", Description: "second"},
		},
	})
	require.Len(t, msgs, 3)
	require.Equal(t, "Two options:", msgs[0].Text)
	require.Equal(t, "*A*\nfirst\nReply with: DETAILS A to see more.", msgs[1].Text)
	require.Equal(t, "http://x/a.png", msgs[1].MediaURL)
	require.Equal(t, "*B*\nsecond\nReply with: DETAILS B to see more.", msgs[2].Text)
	require.Empty(t, msgs[2].MediaURL)
}

func TestFromBackendKeepsEmptyLeadText(t *testing.T) {
	msgs := compose.FromBackend(gateway.Reply{
		Products: []types.ProductSummary{{Title: "A", Description: "first"}},
	})
	require.Len(t, msgs, 2)
	require.Empty(t, msgs[0].Text)
}

func testStore(t *testing.T, content string) *catalog.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return catalog.NewStore(path)
}

func TestProductDetail(t *testing.T) {
	s := testStore(t, `{"products": [{
		"title": "Tractor",
		"description": "Farm tool",
		"detailed_description": {"Power": "50HP"},
		"product_url": "http://x/tractor"
	}]}`)
	msg, err := compose.ProductDetail(s, "Tractor")
	require.NoError(t, err)
	require.Equal(t, "*Tractor*\nFarm tool\n\n*Power:* 50HP\n\nView Product: http://x/tractor", msg.Text)
	require.Empty(t, msg.MediaURL)
}

func TestProductDetailNoURL(t *testing.T) {
	s := testStore(t, `{"products": [{
		"title": "Tractor",
		"description": "Farm tool",
		"detailed_description": "Reliable and simple."
	}]}`)
	msg, err := compose.ProductDetail(s, "tractor")
	require.NoError(t, err)
	require.Equal(t, "*Tractor*\nFarm tool\n\nReliable and simple.\nView Product: No URL available", msg.Text)
}

func TestProductDetailNotFound(t *testing.T) {
	s := testStore(t, `{"products": []}`)
	msg, err := compose.ProductDetail(s, "Unknown")
	require.NoError(t, err)
	require.Equal(t, "Sorry, I couldn't find details for 'Unknown'.", msg.Text)
}

func TestProductDetailCatalogUnavailable(t *testing.T) {
	s := catalog.NewStore(filepath.Join(t.TempDir(), "missing.json"))
	msg, err := compose.ProductDetail(s, "Tractor")
	require.ErrorIs(t, err, catalog.ErrUnavailable)
	require.Equal(t, compose.CatalogTroubleMessage, msg.Text)
}
