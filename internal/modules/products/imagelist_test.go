package products_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"catalogadmin.dev/app/internal/modules/products"
)

func list(items ...string) products.ImageList {
	return products.ImagesFromForm(items)
}

func TestImageList_SetAt(t *testing.T) {
	cases := []struct {
		name  string
		in    []string
		index int
		value string
		want  []string
	}{
		{"typing into trailing slot grows", []string{"a", ""}, 1, "b", []string{"a", "b", ""}},
		{"typing into only slot grows", []string{""}, 0, "a", []string{"a", ""}},
		{"no grow at cap", []string{"a", "b", "c", "d", ""}, 4, "e", []string{"a", "b", "c", "d", "e"}},
		{"editing a middle slot keeps length", []string{"a", "b", ""}, 0, "x", []string{"x", "b", ""}},
		{"clearing the last slot collapses it", []string{"a", "b"}, 1, "", []string{"a"}},
		{"clearing an already blank tail collapses it", []string{"a", ""}, 1, "", []string{"a"}},
		{"clearing a middle slot with blank tail drops the tail", []string{"a", "b", ""}, 0, "", []string{"", "b"}},
		{"clearing a middle slot with filled tail keeps length", []string{"a", "b"}, 0, "", []string{"", "b"}},
		{"clearing the only slot empties the list", []string{"a"}, 0, "", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := list(tc.in...).SetAt(tc.index, tc.value)
			require.Equal(t, tc.want, got.Values())
		})
	}
}

func TestImageList_SetAtGrowsByExactlyOneBelowCap(t *testing.T) {
	for n := 1; n < products.MaxImages; n++ {
		in := make([]string, n)
		for i := range in {
			in[i] = "u"
		}
		got := list(in...).SetAt(n-1, "v")
		require.Equal(t, n+1, got.Len())
		last, _ := got.Last()
		require.Equal(t, "", last)
	}
}

func TestImageList_SetAtDoesNotMutateReceiver(t *testing.T) {
	orig := list("a", "")
	_ = orig.SetAt(1, "b")
	require.Equal(t, []string{"a", ""}, orig.Values())
}

func TestImageList_SetAtOutOfRangePanics(t *testing.T) {
	require.Panics(t, func() { list().SetAt(0, "a") })
	require.Panics(t, func() { list("a").SetAt(1, "b") })
	require.Panics(t, func() { list("a").SetAt(-1, "b") })
}

func TestImageList_Append(t *testing.T) {
	require.Equal(t, []string{""}, list().Append().Values())
	require.Equal(t, []string{"a", ""}, list("a").Append().Values())

	// blank slot already pending
	require.Equal(t, []string{"a", ""}, list("a", "").Append().Values())

	// at cap, whatever the last element holds
	full := list("a", "b", "c", "d", "e")
	require.Equal(t, full.Values(), full.Append().Values())
	fullBlank := list("a", "b", "c", "d", "")
	require.Equal(t, fullBlank.Values(), fullBlank.Append().Values())
}

func TestImageList_AppendDoesNotShareBackingArray(t *testing.T) {
	raw := make([]string, 1, 4)
	raw[0] = "a"
	base := products.ImagesFromForm(raw)

	one := base.Append()
	two := base.Append().SetAt(1, "x")

	require.Equal(t, []string{"a", ""}, one.Values())
	require.Equal(t, []string{"a", "x", ""}, two.Values())
	require.Equal(t, []string{"a"}, base.Values())
}

func TestImageList_RemoveLast(t *testing.T) {
	require.Equal(t, 0, list().RemoveLast().Len())
	require.Equal(t, []string{"a"}, list("a", "b").RemoveLast().Values())
	require.Equal(t, []string{"a"}, list("a", "").RemoveLast().Values())
}

func TestImageList_SeedAndNormalize(t *testing.T) {
	inputs := [][]string{
		nil,
		{},
		{"p", "", "q"},
		{"  ", "\t", "x"},
		{"a", "a", ""},
		{"a", "b", "c", "d", "e", "f"},
	}
	for _, xs := range inputs {
		want := []string{}
		for _, s := range xs {
			if strings.TrimSpace(s) != "" {
				want = append(want, s)
			}
		}
		seeded := products.SeedImages(xs)
		require.Equal(t, want, seeded.Values())
		require.Equal(t, want, seeded.Normalize())
		require.Equal(t, seeded.Normalize(), products.SeedImages(seeded.Normalize()).Normalize())
	}
}

func TestImageList_NormalizeNeverNil(t *testing.T) {
	require.NotNil(t, list().Normalize())
	require.NotNil(t, list("", " ").Normalize())
}

func TestImagesFromForm_KeepsStoredOverflow(t *testing.T) {
	raw := []string{"1", "2", "3", "4", "5", "6", "7"}
	got := products.ImagesFromForm(raw)
	require.Equal(t, raw, got.Values())
	require.False(t, got.CanAppend())

	// editing inside an over-cap list never grows it
	require.Equal(t, 7, got.SetAt(6, "x").Len())
	require.Equal(t, 7, got.Append().Len())
}

func TestApplyEdits(t *testing.T) {
	t.Run("typing into trailing slot", func(t *testing.T) {
		got := products.ApplyEdits(list("a", ""), []string{"a", "b"})
		require.Equal(t, []string{"a", "b", ""}, got.Values())
	})

	t.Run("unchanged post is a no-op", func(t *testing.T) {
		got := products.ApplyEdits(list("a", ""), []string{"a", ""})
		require.Equal(t, []string{"a", ""}, got.Values())
	})

	t.Run("filling the tail and clearing the middle", func(t *testing.T) {
		got := products.ApplyEdits(list("a", "b", ""), []string{"a", "", "z"})
		require.Equal(t, []string{"a", "", "z"}, got.Values())
		require.Equal(t, []string{"a", "z"}, got.Normalize())
	})

	t.Run("clearing two trailing values", func(t *testing.T) {
		got := products.ApplyEdits(list("a", "b", "c", ""), []string{"a", "", "", ""})
		require.Equal(t, []string{"a", ""}, got.Values())
		require.Equal(t, []string{"a"}, got.Normalize())
	})

	t.Run("untouched over-cap record", func(t *testing.T) {
		seven := []string{"1", "2", "3", "4", "5", "6", "7"}
		got := products.ApplyEdits(products.SeedImages(seven), seven)
		require.Equal(t, seven, got.Values())
	})

	t.Run("fewer posted values than rendered", func(t *testing.T) {
		got := products.ApplyEdits(list("a", "b", ""), []string{"x"})
		require.Equal(t, []string{"x", "b", ""}, got.Values())
	})
}
