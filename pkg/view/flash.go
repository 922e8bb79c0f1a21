package view

// FlashKind is the severity of a one-shot message carried across a redirect.
type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// AlertClass maps the kind onto a Bootstrap alert class.
func (f Flash) AlertClass() string {
	switch f.Kind {
	case FlashSuccess:
		return "alert-success"
	case FlashWarning:
		return "alert-warning"
	case FlashError:
		return "alert-danger"
	default:
		return "alert-info"
	}
}
