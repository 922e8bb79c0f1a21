package products

import (
	"fmt"
	"strings"
)

// MaxImages secondary image slots per product.
const MaxImages = 5

// ImageList is the ordered list of secondary image URLs edited next to the
// primary imageUrl. At most the last element may be "" (the pending slot).
//
// Every method returns a new list; the receiver's backing array is never
// written to.
type ImageList struct {
	items []string
}

// SeedImages builds the editor list from a stored record, dropping blank
// entries.
func SeedImages(urls []string) ImageList {
	return ImageList{items: filterBlank(urls)}
}

// ImagesFromForm rebuilds the list exactly as it was rendered (blank tail
// included). A stored record may already hold more than MaxImages, so
// nothing is cut here; MaxImages only limits growth.
func ImagesFromForm(raw []string) ImageList {
	return ImageList{items: clone(raw)}
}

func (l ImageList) Len() int { return len(l.items) }

func (l ImageList) At(i int) string { return l.items[i] }

// Last returns the last element and false when the list is empty.
func (l ImageList) Last() (string, bool) {
	if len(l.items) == 0 {
		return "", false
	}
	return l.items[len(l.items)-1], true
}

// Values returns a copy of the raw list, blank slots included.
func (l ImageList) Values() []string {
	return clone(l.items)
}

// CanAppend reports whether Append would add a slot.
func (l ImageList) CanAppend() bool {
	if len(l.items) >= MaxImages {
		return false
	}
	last, ok := l.Last()
	return !ok || last != ""
}

// SetAt replaces the value at i. Typing into the last slot opens a new
// blank slot below it (up to MaxImages); clearing a value collapses a
// blank tail.
func (l ImageList) SetAt(i int, v string) ImageList {
	if i < 0 || i >= len(l.items) {
		panic(fmt.Sprintf("products: ImageList.SetAt index %d out of range [0,%d)", i, len(l.items)))
	}

	out := clone(l.items)
	out[i] = v

	if v != "" && i == len(out)-1 && len(out) < MaxImages {
		out = append(out, "")
	}
	if v == "" && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return ImageList{items: out}
}

// Append opens one blank slot. No-op at the cap or when a blank slot is
// already pending.
func (l ImageList) Append() ImageList {
	if !l.CanAppend() {
		return l
	}
	out := make([]string, len(l.items), len(l.items)+1)
	copy(out, l.items)
	return ImageList{items: append(out, "")}
}

// RemoveLast drops the last slot whatever its content.
func (l ImageList) RemoveLast() ImageList {
	if len(l.items) == 0 {
		return l
	}
	return ImageList{items: clone(l.items[:len(l.items)-1])}
}

// Normalize is the server projection: blank and whitespace-only entries are
// removed. The result is never nil.
func (l ImageList) Normalize() []string {
	return filterBlank(l.items)
}

// ApplyEdits replays a whole-form post as per-input edits through SetAt.
// Filled slots are replayed first, in index order, then cleared slots from
// the highest index down. A clear only ever collapses the tail, so no typed
// value is lost to an earlier collapse.
func ApplyEdits(rendered ImageList, posted []string) ImageList {
	out := rendered
	var cleared []int
	for i, v := range posted {
		if i >= out.Len() {
			break
		}
		if out.At(i) == v {
			continue
		}
		if v == "" {
			cleared = append(cleared, i)
			continue
		}
		out = out.SetAt(i, v)
	}
	for j := len(cleared) - 1; j >= 0; j-- {
		i := cleared[j]
		if i >= out.Len() || out.At(i) == "" {
			continue
		}
		out = out.SetAt(i, "")
	}
	return out
}

func filterBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
