package scryfall

// Card is the subset of a Scryfall card record this tool consumes. Responses
// are always decoded into this closed shape; the raw payload is never passed
// through.
type Card struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	FlavorName      string            `json:"flavor_name"`
	Set             string            `json:"set"`
	CollectorNumber string            `json:"collector_number"`
	Layout          string            `json:"layout"`
	ImageURIs       map[string]string `json:"image_uris"`
	CardFaces       []CardFace        `json:"card_faces"`
	AllParts        []RelatedPart     `json:"all_parts"`
}

// CardFace is one side of a double-faced card. Each face carries its own
// image set; the parent record's ImageURIs is empty for these layouts.
type CardFace struct {
	Name      string            `json:"name"`
	ImageURIs map[string]string `json:"image_uris"`
}

// RelatedPart links a card to a related catalog record. Meld parts and the
// meld result are separate records, each reachable by its own ID.
type RelatedPart struct {
	ID        string `json:"id"`
	Component string `json:"component"`
	Name      string `json:"name"`
	URI       string `json:"uri"`
}

// ImageSizes lists the size keywords Scryfall serves for every card.
var ImageSizes = []string{"small", "normal", "large", "png", "art_crop", "border_crop"}

// ValidSize reports whether s is a known image size keyword.
func ValidSize(s string) bool {
	for _, size := range ImageSizes {
		if s == size {
			return true
		}
	}
	return false
}

type apiError struct {
	Object  string `json:"object"`
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Type    string `json:"type"`
	Details string `json:"details"`
}

type listResponse struct {
	Data     []Card `json:"data"`
	HasMore  bool   `json:"has_more"`
	NextPage string `json:"next_page"`
}
