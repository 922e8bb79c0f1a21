package products_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"catalogadmin.dev/app/internal/modules/products"
)

func ptr(f float64) *float64 { return &f }

func TestNewForm_IsBlankTemplate(t *testing.T) {
	f := products.NewForm()
	require.Empty(t, f.ID)
	require.Empty(t, f.Title)
	require.Empty(t, f.OriginPrice)
	require.Empty(t, f.Price)
	require.False(t, f.IsEnabled)
	require.Equal(t, 0, f.Images.Len())
}

func TestLoadForm(t *testing.T) {
	t.Run("partial record strips blank images", func(t *testing.T) {
		f := products.LoadForm(products.Product{Title: "x", ImagesURL: []string{"p", "", "q"}})
		require.Equal(t, "x", f.Title)
		require.Equal(t, []string{"p", "q"}, f.Images.Values())
		require.Empty(t, f.Category)
		require.Empty(t, f.OriginPrice)
		require.Empty(t, f.Price)
		require.False(t, f.IsEnabled)
	})

	t.Run("full record", func(t *testing.T) {
		f := products.LoadForm(products.Product{
			ID:          "p1",
			Title:       "Tea",
			Category:    "drinks",
			Unit:        "box",
			OriginPrice: ptr(120),
			Price:       ptr(99.5),
			Description: "d",
			Content:     "c",
			IsEnabled:   true,
			ImageURL:    "https://img/main.png",
			ImagesURL:   []string{"https://img/1.png"},
		})
		require.Equal(t, "p1", f.ID)
		require.Equal(t, "120", f.OriginPrice)
		require.Equal(t, "99.5", f.Price)
		require.True(t, f.IsEnabled)
		require.Equal(t, "https://img/main.png", f.ImageURL)
		require.Equal(t, []string{"https://img/1.png"}, f.Images.Values())
	})

	t.Run("zero price is kept as text", func(t *testing.T) {
		f := products.LoadForm(products.Product{Price: ptr(0)})
		require.Equal(t, "0", f.Price)
	})
}

func TestForm_WithField(t *testing.T) {
	f := products.NewForm()

	f2, err := f.WithField("title", "Green tea")
	require.NoError(t, err)
	require.Equal(t, "Green tea", f2.Title)
	require.Empty(t, f.Title, "receiver must be untouched")

	f3, err := f2.WithField("is_enabled", "on")
	require.NoError(t, err)
	require.True(t, f3.IsEnabled)
	require.Equal(t, "Green tea", f3.Title)

	f4, err := f3.WithField("is_enabled", "")
	require.NoError(t, err)
	require.False(t, f4.IsEnabled)

	f5, err := f4.WithField("imageUrl", "https://img/a.png")
	require.NoError(t, err)
	require.Equal(t, "https://img/a.png", f5.ImageURL)

	_, err = f.WithField("imagesUrl", "x")
	require.ErrorIs(t, err, products.ErrUnknownField)
	_, err = f.WithField("nope", "x")
	require.ErrorIs(t, err, products.ErrUnknownField)
}

func TestForm_Serialize(t *testing.T) {
	t.Run("placeholder for empty primary image", func(t *testing.T) {
		p, err := products.NewForm().Serialize()
		require.NoError(t, err)
		require.Equal(t, products.PlaceholderImageURL, p.ImageURL)
		require.Equal(t, 0.0, p.Price)
		require.Equal(t, 0.0, p.OriginPrice)
		require.NotNil(t, p.ImagesURL)
	})

	t.Run("coerces fields", func(t *testing.T) {
		f := products.NewForm()
		f.Title = "Tea"
		f.OriginPrice = "120"
		f.Price = " 99.90 "
		f.IsEnabled = true
		f.ImageURL = "https://img/main.png"
		f.Images = products.ImagesFromForm([]string{"https://img/1.png", " ", ""})

		p, err := f.Serialize()
		require.NoError(t, err)
		require.Equal(t, 120.0, p.OriginPrice)
		require.Equal(t, 99.9, p.Price)
		require.Equal(t, products.Flag(true), p.IsEnabled)
		require.Equal(t, "https://img/main.png", p.ImageURL)
		require.Equal(t, []string{"https://img/1.png"}, p.ImagesURL)
	})

	t.Run("non numeric prices block submission", func(t *testing.T) {
		f := products.NewForm()
		f.OriginPrice = "abc"
		f.Price = "12,5"

		_, err := f.Serialize()
		var invalid *products.InvalidFormError
		require.ErrorAs(t, err, &invalid)
		require.Contains(t, invalid.Fields, "origin_price")
		require.Contains(t, invalid.Fields, "price")
	})
}

func TestPayload_JSONShape(t *testing.T) {
	f := products.NewForm()
	f.IsEnabled = true
	p, err := f.Serialize()
	require.NoError(t, err)

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	require.Equal(t, float64(1), m["is_enabled"])
	require.Equal(t, []any{}, m["imagesUrl"])
	require.Equal(t, products.PlaceholderImageURL, m["imageUrl"])
	require.Equal(t, "", m["id"])

	f.ID = "-Nx42"
	p, err = f.Serialize()
	require.NoError(t, err)
	b, err = json.Marshal(p)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &m))
	require.Equal(t, "-Nx42", m["id"])
}

func TestFlag_UnmarshalJSON(t *testing.T) {
	cases := map[string]bool{
		`1`:     true,
		`0`:     false,
		`true`:  true,
		`false`: false,
		`"1"`:   true,
		`null`:  false,
	}
	for in, want := range cases {
		var f products.Flag
		require.NoError(t, json.Unmarshal([]byte(in), &f), in)
		require.Equal(t, want, bool(f), in)
	}

	var f products.Flag
	require.Error(t, json.Unmarshal([]byte(`"maybe"`), &f))
}

func TestFormatPrice(t *testing.T) {
	require.Equal(t, "", products.FormatPrice(nil))
	require.Equal(t, "1200", products.FormatPrice(ptr(1200)))
	require.Equal(t, "99.5", products.FormatPrice(ptr(99.5)))
	require.Equal(t, "0", products.FormatPrice(ptr(0)))
}
