package products

import "strings"

// Mode is the editor session kind. Exactly one is active while the editor is
// open; ModeNone means closed.
type Mode string

const (
	ModeNone   Mode = ""
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
	ModeDelete Mode = "delete"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeCreate:
		return ModeCreate, nil
	case ModeEdit:
		return ModeEdit, nil
	case ModeDelete:
		return ModeDelete, nil
	default:
		return ModeNone, ErrInvalidMode
	}
}

// ShowsForm is false for the delete confirmation view.
func (m Mode) ShowsForm() bool {
	return m == ModeCreate || m == ModeEdit
}

func (m Mode) Title() string {
	switch m {
	case ModeCreate:
		return "New product"
	case ModeEdit:
		return "Edit product"
	case ModeDelete:
		return "Delete product"
	default:
		return ""
	}
}

// Verb is used in result messages ("Product created.").
func (m Mode) Verb() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "update"
	case ModeDelete:
		return "delete"
	default:
		return ""
	}
}
