package products

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PlaceholderImageURL is sent as imageUrl when the primary image is left empty.
const PlaceholderImageURL = "https://placehold.net/400x400.png"

// Product is the catalog record as the remote service returns it. Records
// can be partial; the prices are pointers so a missing price can be told
// apart from a zero one.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Unit        string   `json:"unit"`
	OriginPrice *float64 `json:"origin_price,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	IsEnabled   Flag     `json:"is_enabled"`
	ImageURL    string   `json:"imageUrl"`
	ImagesURL   []string `json:"imagesUrl"`
}

// Payload is the body of a create/update call ({"data": Payload}).
type Payload struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Unit        string   `json:"unit"`
	OriginPrice float64  `json:"origin_price"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	IsEnabled   Flag     `json:"is_enabled"`
	ImageURL    string   `json:"imageUrl"`
	ImagesURL   []string `json:"imagesUrl"`
}

// Flag is the remote 0/1 boolean. It decodes 0/1 as well as true/false and
// always encodes as 0 or 1.
type Flag bool

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "null", `""`:
		*f = false
		return nil
	case "true":
		*f = true
		return nil
	case "false":
		*f = false
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("is_enabled: unsupported value %s", b)
		}
		n = json.Number(s)
	}
	v, err := n.Float64()
	if err != nil {
		return fmt.Errorf("is_enabled: %w", err)
	}
	*f = v != 0
	return nil
}

// Pagination as reported by the remote list endpoint.
type Pagination struct {
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
	HasPre      bool   `json:"has_pre"`
	HasNext     bool   `json:"has_next"`
	Category    string `json:"category"`
}
