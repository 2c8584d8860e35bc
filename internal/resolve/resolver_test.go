package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/scryprint/internal/decklist"
	"github.com/arcanaland/scryprint/internal/scryfall"
)

// fakeCatalog serves canned cards and records which lookups were used.
type fakeCatalog struct {
	byPrinting map[string]*scryfall.Card // "set/number"
	byName     map[string]*scryfall.Card
	byID       map[string]*scryfall.Card
	sets       map[string][]scryfall.Card

	nameLookups int
}

func (f *fakeCatalog) BySetAndNumber(_ context.Context, setCode, number string) (*scryfall.Card, error) {
	if card, ok := f.byPrinting[setCode+"/"+number]; ok {
		return card, nil
	}
	return nil, scryfall.ErrNotFound
}

func (f *fakeCatalog) ByName(_ context.Context, name string) (*scryfall.Card, error) {
	f.nameLookups++
	if card, ok := f.byName[name]; ok {
		return card, nil
	}
	return nil, scryfall.ErrNotFound
}

func (f *fakeCatalog) ByID(_ context.Context, id string) (*scryfall.Card, error) {
	if card, ok := f.byID[id]; ok {
		return card, nil
	}
	return nil, scryfall.ErrNotFound
}

func (f *fakeCatalog) ListSet(_ context.Context, setCode string) ([]scryfall.Card, error) {
	if cards, ok := f.sets[setCode]; ok {
		return cards, nil
	}
	return nil, scryfall.ErrNotFound
}

func uris(key string) map[string]string {
	return map[string]string{"normal": "https://img.example/" + key}
}

func TestResolveExactPrinting(t *testing.T) {
	catalog := &fakeCatalog{
		byPrinting: map[string]*scryfall.Card{
			"LTC/280": {ID: "id-1", Name: "Sol Ring", Set: "ltc", CollectorNumber: "280", Layout: "normal", ImageURIs: uris("sol")},
		},
	}
	resolver := New(catalog)

	faces, err := resolver.Resolve(context.Background(), decklist.CardRequest{
		Quantity: 1, Name: "Sol Ring", SetCode: "LTC", CollectorNumber: "280",
	})
	require.NoError(t, err)
	require.Len(t, faces, 1)
	assert.Equal(t, "id-1", faces[0].CardID)
	assert.Equal(t, 0, faces[0].FaceIndex)
	assert.Equal(t, RoleSingle, faces[0].Role)
	assert.Zero(t, catalog.nameLookups, "exact request must not fall back to name lookup")
}

func TestResolveExactMissIsNotFoundWithoutFallback(t *testing.T) {
	catalog := &fakeCatalog{
		byName: map[string]*scryfall.Card{
			"Sol Ring": {ID: "id-1", Name: "Sol Ring", Layout: "normal"},
		},
	}
	resolver := New(catalog)

	_, err := resolver.Resolve(context.Background(), decklist.CardRequest{
		Quantity: 1, Name: "Sol Ring", SetCode: "XXX", CollectorNumber: "1",
	})
	assert.ErrorIs(t, err, scryfall.ErrNotFound)
	assert.Zero(t, catalog.nameLookups)
}

func TestResolveByNameWhenNoPrintingGiven(t *testing.T) {
	catalog := &fakeCatalog{
		byName: map[string]*scryfall.Card{
			"Counterspell": {ID: "id-2", Name: "Counterspell", Set: "mh2", CollectorNumber: "267", Layout: "normal", ImageURIs: uris("cs")},
		},
	}
	resolver := New(catalog)

	faces, err := resolver.Resolve(context.Background(), decklist.CardRequest{Quantity: 4, Name: "Counterspell"})
	require.NoError(t, err)
	require.Len(t, faces, 1)
	assert.Equal(t, "id-2", faces[0].CardID)
	assert.Equal(t, 1, catalog.nameLookups)
}

func TestResolveDoubleFacedCard(t *testing.T) {
	catalog := &fakeCatalog{
		byName: map[string]*scryfall.Card{
			"Delver of Secrets": {
				ID: "id-3", Name: "Delver of Secrets // Insectile Aberration",
				Set: "isd", CollectorNumber: "51", Layout: "transform",
				CardFaces: []scryfall.CardFace{
					{Name: "Delver of Secrets", ImageURIs: uris("front")},
					{Name: "Insectile Aberration", ImageURIs: uris("back")},
				},
			},
		},
	}
	resolver := New(catalog)

	faces, err := resolver.Resolve(context.Background(), decklist.CardRequest{Quantity: 1, Name: "Delver of Secrets"})
	require.NoError(t, err)
	require.Len(t, faces, 2)
	assert.Equal(t, faces[0].CardID, faces[1].CardID)
	assert.Equal(t, 0, faces[0].FaceIndex)
	assert.Equal(t, 1, faces[1].FaceIndex)
	assert.Equal(t, RoleFace, faces[0].Role)
	assert.Equal(t, RoleFace, faces[1].Role)
	// Each face carries its own image set, not the parent record's.
	assert.Equal(t, "https://img.example/front", faces[0].ImageURIs["normal"])
	assert.Equal(t, "https://img.example/back", faces[1].ImageURIs["normal"])
}

func TestResolveMeldCard(t *testing.T) {
	parts := []scryfall.RelatedPart{
		{ID: "part-a", Component: "meld_part", Name: "Gisela, the Broken Blade"},
		{ID: "part-b", Component: "meld_part", Name: "Bruna, the Fading Light"},
		{ID: "result", Component: "meld_result", Name: "Brisela, Voice of Nightmares"},
		{ID: "combo", Component: "combo_piece", Name: "Unrelated"},
	}
	catalog := &fakeCatalog{
		byName: map[string]*scryfall.Card{
			"Gisela, the Broken Blade": {ID: "part-a", Name: "Gisela, the Broken Blade", Layout: "meld", AllParts: parts},
		},
		byID: map[string]*scryfall.Card{
			"part-a": {ID: "part-a", Name: "Gisela, the Broken Blade", Set: "emn", CollectorNumber: "28", ImageURIs: uris("a")},
			"part-b": {ID: "part-b", Name: "Bruna, the Fading Light", Set: "emn", CollectorNumber: "15", ImageURIs: uris("b")},
			"result": {ID: "result", Name: "Brisela, Voice of Nightmares", Set: "emn", CollectorNumber: "15b", ImageURIs: uris("r")},
		},
	}
	resolver := New(catalog)

	faces, err := resolver.Resolve(context.Background(), decklist.CardRequest{Quantity: 1, Name: "Gisela, the Broken Blade"})
	require.NoError(t, err)
	require.Len(t, faces, 3, "combo pieces are not meld parts")

	ids := map[string]bool{}
	for _, face := range faces {
		assert.Equal(t, RoleMeldPart, face.Role)
		ids[face.CardID] = true
	}
	assert.Len(t, ids, 3, "meld parts are distinct catalog records")

	var results int
	for _, face := range faces {
		if face.MeldResult {
			results++
			assert.Equal(t, "result", face.CardID)
		}
	}
	assert.Equal(t, 1, results)
}

func TestResolveUnhandledLayout(t *testing.T) {
	catalog := &fakeCatalog{
		byName: map[string]*scryfall.Card{
			"Weird": {ID: "id-9", Name: "Weird", Layout: "hologram"},
		},
	}
	resolver := New(catalog)

	_, err := resolver.Resolve(context.Background(), decklist.CardRequest{Quantity: 1, Name: "Weird"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unhandled card layout")
}

func TestResolveURL(t *testing.T) {
	catalog := &fakeCatalog{
		byPrinting: map[string]*scryfall.Card{
			"ltc/280": {ID: "id-1", Name: "Sol Ring", Set: "ltc", CollectorNumber: "280", Layout: "normal", ImageURIs: uris("sol")},
		},
	}
	resolver := New(catalog)

	faces, err := resolver.ResolveURL(context.Background(), "https://scryfall.com/card/ltc/280/sol-ring")
	require.NoError(t, err)
	require.Len(t, faces, 1)
	assert.Equal(t, "id-1", faces[0].CardID)
}

func TestResolveURLRejectsOtherURLs(t *testing.T) {
	resolver := New(&fakeCatalog{})
	_, err := resolver.ResolveURL(context.Background(), "https://example.com/card/ltc/280")
	require.Error(t, err)
}

func TestResolveSetKeepsCatalogOrderAndSkipsUnhandled(t *testing.T) {
	catalog := &fakeCatalog{
		sets: map[string][]scryfall.Card{
			"ltc": {
				{ID: "a", Name: "First", Layout: "normal", ImageURIs: uris("1")},
				{ID: "b", Name: "Strange", Layout: "hologram"},
				{ID: "c", Name: "Last", Layout: "normal", ImageURIs: uris("2")},
			},
		},
	}
	resolver := New(catalog)

	faces, skipped, err := resolver.ResolveSet(context.Background(), "ltc")
	require.NoError(t, err)
	require.Len(t, faces, 2)
	assert.Equal(t, "a", faces[0].CardID)
	assert.Equal(t, "c", faces[1].CardID)
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0].Error(), "Strange")
}

func TestResolveSetNotFound(t *testing.T) {
	resolver := New(&fakeCatalog{})
	_, _, err := resolver.ResolveSet(context.Background(), "zzz")
	assert.ErrorIs(t, err, scryfall.ErrNotFound)
}
