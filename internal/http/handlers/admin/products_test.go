package admin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormFromInput(t *testing.T) {
	f, err := formFromInput(editorInput{
		Mode:        "edit",
		ID:          "p1",
		Title:       "Cap",
		OriginPrice: "20",
		IsEnabled:   "on",
		Rendered:    []string{"a", ""},
		Images:      []string{"a", "b"},
	})
	require.NoError(t, err)
	require.Equal(t, "p1", f.ID)
	require.Equal(t, "Cap", f.Title)
	require.True(t, f.IsEnabled)
	require.Equal(t, []string{"a", "b", ""}, f.Images.Values())

	v := formView(f)
	require.Len(t, v.Images, 3)
	require.Equal(t, 1, v.Images[1].Index)
	require.False(t, v.CanAddImage)
	require.True(t, v.CanRemoveImage)
}

func TestFormFromInput_ClearedSlotCollapses(t *testing.T) {
	f, err := formFromInput(editorInput{
		Rendered: []string{"a", "b", ""},
		Images:   []string{"a", "", ""},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", ""}, f.Images.Values())
}

func TestParsePage(t *testing.T) {
	require.Equal(t, 1, parsePage(""))
	require.Equal(t, 1, parsePage("-3"))
	require.Equal(t, 1, parsePage("x"))
	require.Equal(t, 4, parsePage(" 4 "))
}
