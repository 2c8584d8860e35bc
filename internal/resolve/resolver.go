// Package resolve turns card requests into the physical images to fetch,
// expanding multi-face and meld layouts into one entry per image.
package resolve

import (
	"context"
	"fmt"
	"regexp"

	"github.com/arcanaland/scryprint/internal/decklist"
	"github.com/arcanaland/scryprint/internal/scryfall"
)

// PartRole tags how a face relates to its logical card: two sides of one
// double-faced record share an identity, meld parts are independent records.
type PartRole string

const (
	RoleSingle   PartRole = "single"
	RoleFace     PartRole = "face"
	RoleMeldPart PartRole = "meld_part"
)

// Face is one physical image to fetch. A request expands to one Face per
// image in the card's layout.
type Face struct {
	CardID          string
	Name            string
	FlavorName      string
	Set             string
	CollectorNumber string
	FaceIndex       int
	Role            PartRole
	MeldResult      bool // the combined back image of a meld pair
	ImageURIs       map[string]string
}

// Catalog is the subset of the Scryfall client the resolver consumes.
type Catalog interface {
	BySetAndNumber(ctx context.Context, setCode, number string) (*scryfall.Card, error)
	ByName(ctx context.Context, name string) (*scryfall.Card, error)
	ByID(ctx context.Context, id string) (*scryfall.Card, error)
	ListSet(ctx context.Context, setCode string) ([]scryfall.Card, error)
}

// Resolver resolves card requests against a catalog. It never ranks printings
// itself: whatever the catalog returns as canonical is passed through.
type Resolver struct {
	catalog Catalog
}

func New(catalog Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Layout tags grouped by how many images one record carries. Anything not
// listed here (other than meld) is unhandled and reported as an error.
var singleImageLayouts = map[string]bool{
	"normal": true, "split": true, "flip": true, "leveler": true,
	"class": true, "case": true, "saga": true, "adventure": true,
	"mutate": true, "prototype": true, "planar": true, "scheme": true,
	"vanguard": true, "token": true, "emblem": true, "augment": true,
	"host": true,
}

var doubleImageLayouts = map[string]bool{
	"transform": true, "modal_dfc": true, "double_faced_token": true,
	"art_series": true, "reversible_card": true,
}

// Resolve looks up one request. An exact (set, number) pair uses the exact
// endpoint with no fuzzy fallback; otherwise the name is resolved fuzzily and
// the catalog picks the printing.
func (r *Resolver) Resolve(ctx context.Context, request decklist.CardRequest) ([]Face, error) {
	var (
		card *scryfall.Card
		err  error
	)
	if request.ExactPrinting() {
		card, err = r.catalog.BySetAndNumber(ctx, request.SetCode, request.CollectorNumber)
	} else {
		card, err = r.catalog.ByName(ctx, request.Name)
	}
	if err != nil {
		return nil, err
	}
	return r.Expand(ctx, card)
}

var cardURLRe = regexp.MustCompile(`scryfall\.com/card/([^/]+)/([^/?#]+)`)

// ResolveURL resolves a Scryfall web URL by extracting its set code and
// collector number, then expands the record like any other.
func (r *Resolver) ResolveURL(ctx context.Context, rawURL string) ([]Face, error) {
	m := cardURLRe.FindStringSubmatch(rawURL)
	if m == nil {
		return nil, fmt.Errorf("not a scryfall card URL: %s", rawURL)
	}
	card, err := r.catalog.BySetAndNumber(ctx, m[1], m[2])
	if err != nil {
		return nil, err
	}
	return r.Expand(ctx, card)
}

// ResolveSet expands every card of a set in catalog order. Records whose
// layout cannot be expanded are collected in skipped without aborting the
// rest of the set; a set with no cards at all is an error.
func (r *Resolver) ResolveSet(ctx context.Context, setCode string) (faces []Face, skipped []error, err error) {
	cards, err := r.catalog.ListSet(ctx, setCode)
	if err != nil {
		return nil, nil, err
	}
	for i := range cards {
		expanded, err := r.Expand(ctx, &cards[i])
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		faces = append(faces, expanded...)
	}
	return faces, skipped, nil
}

// Expand maps a resolved record to its physical images based on layout.
func (r *Resolver) Expand(ctx context.Context, card *scryfall.Card) ([]Face, error) {
	switch {
	case card.Layout == "meld":
		return r.expandMeld(ctx, card)
	case doubleImageLayouts[card.Layout]:
		return expandFaces(card)
	case singleImageLayouts[card.Layout] || card.Layout == "":
		return []Face{singleFace(card)}, nil
	default:
		return nil, fmt.Errorf("unhandled card layout %q for %s", card.Layout, card.Name)
	}
}

func singleFace(card *scryfall.Card) Face {
	return Face{
		CardID:          card.ID,
		Name:            card.Name,
		FlavorName:      card.FlavorName,
		Set:             card.Set,
		CollectorNumber: card.CollectorNumber,
		FaceIndex:       0,
		Role:            RoleSingle,
		ImageURIs:       card.ImageURIs,
	}
}

// expandFaces emits one Face per side of a double-faced record. Image URIs
// come from each face's own image set, not the parent record.
func expandFaces(card *scryfall.Card) ([]Face, error) {
	if len(card.CardFaces) == 0 {
		return nil, fmt.Errorf("layout %q without face data for %s", card.Layout, card.Name)
	}
	faces := make([]Face, 0, len(card.CardFaces))
	for i, face := range card.CardFaces {
		faces = append(faces, Face{
			CardID:          card.ID,
			Name:            face.Name,
			Set:             card.Set,
			CollectorNumber: card.CollectorNumber,
			FaceIndex:       i,
			Role:            RoleFace,
			ImageURIs:       face.ImageURIs,
		})
	}
	return faces, nil
}

// expandMeld emits one Face per meld part. Parts are distinct catalog records
// rather than faces of one record, so each is fetched by its own ID.
func (r *Resolver) expandMeld(ctx context.Context, card *scryfall.Card) ([]Face, error) {
	if len(card.AllParts) == 0 {
		return nil, fmt.Errorf("meld layout without part data for %s", card.Name)
	}
	var faces []Face
	for _, part := range card.AllParts {
		if part.Component != "meld_part" && part.Component != "meld_result" {
			continue
		}
		partCard, err := r.catalog.ByID(ctx, part.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch meld part %s: %w", part.Name, err)
		}
		face := singleFace(partCard)
		face.Role = RoleMeldPart
		face.MeldResult = part.Component == "meld_result"
		faces = append(faces, face)
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("meld card %s has no usable parts", card.Name)
	}
	return faces, nil
}
