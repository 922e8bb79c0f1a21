package view

type AdminProductRow struct {
	ID          string
	Category    string
	Title       string
	OriginPrice string
	Price       string
	Enabled     bool
}

type Pager struct {
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

func (p Pager) PrevPage() int { return p.Page - 1 }
func (p Pager) NextPage() int { return p.Page + 1 }

type AdminProductsPage struct {
	Title     string
	Flash     *Flash
	Username  string
	Items     []AdminProductRow
	Pager     Pager
	Alert     string
	CSRFToken string
}

// AdminImageSlot is one secondary image input.
type AdminImageSlot struct {
	Index int
	URL   string
}

type AdminProductForm struct {
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
	Images      []AdminImageSlot
	// CanAddImage / CanRemoveImage drive the add/remove buttons.
	CanAddImage    bool
	CanRemoveImage bool
}

type AdminProductEditorPage struct {
	Title       string
	Flash       *Flash
	Username    string
	Mode        string
	Heading     string
	ShowForm    bool
	Form        AdminProductForm
	FieldErrors map[string]string
	Alert       string
	MaxImages   int
	CSRFToken   string
}

type LoginForm struct {
	Username string
}

type LoginPage struct {
	Title       string
	Flash       *Flash
	ReturnTo    string
	Form        LoginForm
	FieldErrors map[string]string
	Alert       string
}

type ErrorPage struct {
	Title     string
	Status    int
	Message   string
	RequestID string
	Flash     *Flash
}
