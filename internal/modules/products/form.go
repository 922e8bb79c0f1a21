package products

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Form is the edit shape of a product. Prices stay as the text the user
// typed until Serialize.
type Form struct {
	ID          string
	Title       string
	Category    string
	Unit        string
	OriginPrice string
	Price       string
	Description string
	Content     string
	IsEnabled   bool
	ImageURL    string
	Images      ImageList
}

// NewForm is the blank template used by the create editor.
func NewForm() Form {
	return Form{Images: SeedImages(nil)}
}

// LoadForm merges a (possibly partial) server record over the blank
// template.
func LoadForm(p Product) Form {
	f := NewForm()
	f.ID = p.ID
	f.Title = p.Title
	f.Category = p.Category
	f.Unit = p.Unit
	f.OriginPrice = FormatPrice(p.OriginPrice)
	f.Price = FormatPrice(p.Price)
	f.Description = p.Description
	f.Content = p.Content
	f.IsEnabled = bool(p.IsEnabled)
	f.ImageURL = p.ImageURL
	f.Images = SeedImages(p.ImagesURL)
	return f
}

// WithField replaces one scalar field, addressed by its server name.
func (f Form) WithField(name, value string) (Form, error) {
	switch name {
	case "id":
		f.ID = value
	case "title":
		f.Title = value
	case "category":
		f.Category = value
	case "unit":
		f.Unit = value
	case "origin_price":
		f.OriginPrice = value
	case "price":
		f.Price = value
	case "description":
		f.Description = value
	case "content":
		f.Content = value
	case "is_enabled":
		f.IsEnabled = parseCheckbox(value)
	case "imageUrl":
		f.ImageURL = value
	default:
		return f, ErrUnknownField
	}
	return f, nil
}

// Validate reports fields that would block Serialize.
func (f Form) Validate() FieldErrors {
	errs := FieldErrors{}
	if _, err := parsePrice(f.OriginPrice); err != nil {
		errs["origin_price"] = "Original price must be a number."
	}
	if _, err := parsePrice(f.Price); err != nil {
		errs["price"] = "Price must be a number."
	}
	return errs
}

// Serialize produces the server payload. Non-numeric price text is rejected
// with *InvalidFormError instead of being sent.
func (f Form) Serialize() (Payload, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return Payload{}, &InvalidFormError{Fields: errs}
	}
	origin, _ := parsePrice(f.OriginPrice)
	price, _ := parsePrice(f.Price)

	img := f.ImageURL
	if img == "" {
		img = PlaceholderImageURL
	}

	return Payload{
		ID:          f.ID,
		Title:       f.Title,
		Category:    f.Category,
		Unit:        f.Unit,
		OriginPrice: origin,
		Price:       price,
		Description: f.Description,
		Content:     f.Content,
		IsEnabled:   Flag(f.IsEnabled),
		ImageURL:    img,
		ImagesURL:   f.Images.Normalize(),
	}, nil
}

// empty text counts as 0, like a cleared number input
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// FormatPrice renders a stored price the way it was entered: no forced
// decimals, "" when the record has no price. 1200 -> "1200", 99.5 -> "99.5".
func FormatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return decimal.NewFromFloat(*p).String()
}

func parseCheckbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "on", "true", "yes":
		return true
	default:
		return false
	}
}
