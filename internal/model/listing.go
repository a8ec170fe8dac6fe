package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"
)

// Listing is a single property offered for rent or sale.
// The id is assigned by the listing store and never supplied by clients.
type Listing struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	Area        float64   `json:"area"`
	Type        string    `json:"type"`
	Post        string    `json:"post"`
	Images      []string  `json:"images"`
	Amenities   []string  `json:"amenities"`
	Contact     Contact   `json:"contact"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt"`

	// Extra holds keys of a stored record that have no field above. They are
	// written back unchanged so older or richer documents survive a rewrite.
	Extra map[string]json.RawMessage `json:"-"`
}

// Contact is the person answering enquiries about a listing.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// PrimaryImage returns the first image URL, or "" when the listing has none.
func (l Listing) PrimaryImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

// listingFields has Listing's layout without its JSON methods.
type listingFields Listing

var knownKeys = jsonKeys(reflect.TypeOf(listingFields{}))

func jsonKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name != "" && name != "-" {
			keys[name] = struct{}{}
		}
	}
	return keys
}

func (l *Listing) UnmarshalJSON(data []byte) error {
	var f listingFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if _, ok := knownKeys[k]; ok {
			delete(raw, k)
		}
	}
	f.Extra = nil
	if len(raw) > 0 {
		f.Extra = raw
	}
	*l = Listing(f)
	return nil
}

func (l Listing) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(listingFields(l))
	if err != nil || len(l.Extra) == 0 {
		return data, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range l.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}
