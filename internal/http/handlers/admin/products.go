package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"catalogadmin.dev/app/internal/catalogapi"
	"catalogadmin.dev/app/internal/http/middleware"
	"catalogadmin.dev/app/internal/http/render"
	"catalogadmin.dev/app/internal/http/validation"
	"catalogadmin.dev/app/internal/modules/auth"
	"catalogadmin.dev/app/internal/modules/products"
	"catalogadmin.dev/app/internal/shared/apperr"
	"catalogadmin.dev/app/pkg/view"
)

const listPath = "/admin/products"

type ProductsHandler struct {
	Products *products.Service
	Gate     Gate
	Log      *slog.Logger
}

func NewProductsHandler(svc *products.Service, gate Gate, l *slog.Logger) *ProductsHandler {
	if l == nil {
		l = slog.Default()
	}
	return &ProductsHandler{Products: svc, Gate: gate, Log: l}
}

func (h *ProductsHandler) List(c *gin.Context) {
	sess, ok := token(c)
	if !ok {
		return
	}
	page := parsePage(c.Query("page"))

	res, err := h.Products.List(c.Request.Context(), sess.Token, page)
	if err != nil {
		if h.Gate.Rejected(c, sess, err) {
			return
		}
		h.Log.LogAttrs(c.Request.Context(), slog.LevelWarn, "product_list_failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.Any("err", err),
		)
		render.Page(c, http.StatusBadGateway, "products.html", view.AdminProductsPage{
			Title:     "Products",
			Flash:     middleware.GetFlash(c),
			Username:  sess.Username,
			Pager:     view.Pager{Page: page, TotalPages: page},
			Alert:     alertText("Could not load products.", err),
			CSRFToken: middleware.GetCSRFToken(c),
		})
		return
	}

	rows := make([]view.AdminProductRow, 0, len(res.Products))
	for _, p := range res.Products {
		rows = append(rows, view.AdminProductRow{
			ID:          p.ID,
			Category:    p.Category,
			Title:       p.Title,
			OriginPrice: products.FormatPrice(p.OriginPrice),
			Price:       products.FormatPrice(p.Price),
			Enabled:     bool(p.IsEnabled),
		})
	}

	pg := res.Pagination
	if pg.CurrentPage < 1 {
		pg.CurrentPage = page
	}
	render.Page(c, http.StatusOK, "products.html", view.AdminProductsPage{
		Title:     "Products",
		Flash:     middleware.GetFlash(c),
		Username:  sess.Username,
		Items:     rows,
		CSRFToken: middleware.GetCSRFToken(c),
		Pager: view.Pager{
			Page:       pg.CurrentPage,
			TotalPages: pg.TotalPages,
			HasPrev:    pg.HasPre,
			HasNext:    pg.HasNext,
		},
	})
}

func (h *ProductsHandler) New(c *gin.Context) {
	h.open(c, products.ModeCreate, "")
}

func (h *ProductsHandler) Edit(c *gin.Context) {
	h.open(c, products.ModeEdit, c.Param("id"))
}

func (h *ProductsHandler) ConfirmDelete(c *gin.Context) {
	h.open(c, products.ModeDelete, c.Param("id"))
}

func (h *ProductsHandler) open(c *gin.Context, mode products.Mode, id string) {
	sess, ok := token(c)
	if !ok {
		return
	}

	ed, err := h.Products.OpenEditor(c.Request.Context(), sess.Token, mode, id)
	if err != nil {
		switch {
		case h.Gate.Rejected(c, sess, err):
		case errors.Is(err, catalogapi.ErrNotFound):
			c.Error(apperr.NotFoundErr("Product not found."))
		case errors.Is(err, products.ErrMissingID):
			c.Error(apperr.InvalidErr("Product id is required.", nil))
		default:
			c.Error(apperr.UpstreamErr("Could not load the product.", err))
		}
		return
	}

	h.renderEditor(c, http.StatusOK, sess.Username, ed.Mode, ed.Form, nil, "")
}

type editorInput struct {
	Mode        string   `form:"mode" binding:"required,oneof=create edit"`
	Action      string   `form:"action" binding:"omitempty,oneof=refresh add_image remove_image save cancel"`
	ID          string   `form:"id"`
	Title       string   `form:"title"`
	Category    string   `form:"category"`
	Unit        string   `form:"unit"`
	OriginPrice string   `form:"origin_price"`
	Price       string   `form:"price"`
	Description string   `form:"description"`
	Content     string   `form:"content"`
	IsEnabled   string   `form:"is_enabled"`
	ImageURL    string   `form:"imageUrl"`
	Images      []string `form:"imagesUrl" binding:"max=64"`
	Rendered    []string `form:"rendered_images" binding:"max=64"`
}

// EditorPost handles every button of the editor form. Image slots are
// replayed against what was rendered, so a post behaves like the
// per-keystroke edits of an interactive editor.
func (h *ProductsHandler) EditorPost(c *gin.Context) {
	sess, ok := token(c)
	if !ok {
		return
	}

	var in editorInput
	if err := c.ShouldBind(&in); err != nil {
		c.Error(apperr.InvalidErr("The editor request is invalid.", validation.FromBindError(err, &in)))
		return
	}
	if in.Action == "cancel" {
		c.Redirect(http.StatusFound, listPath)
		return
	}

	mode, err := products.ParseMode(in.Mode)
	if err != nil {
		c.Error(apperr.InvalidErr("Unknown editor mode.", nil))
		return
	}
	f, err := formFromInput(in)
	if err != nil {
		c.Error(apperr.Wrap(err))
		return
	}

	switch in.Action {
	case "add_image":
		f.Images = f.Images.Append()
	case "remove_image":
		f.Images = f.Images.RemoveLast()
	case "save":
		h.save(c, sess, mode, f)
		return
	}
	h.renderEditor(c, http.StatusOK, sess.Username, mode, f, nil, "")
}

func (h *ProductsHandler) save(c *gin.Context, sess auth.Session, mode products.Mode, f products.Form) {
	err := h.Products.Save(c.Request.Context(), sess.Token, mode, f)
	if err == nil {
		msg := "Product created."
		if mode == products.ModeEdit {
			msg = "Product updated."
		}
		render.RedirectWithFlash(c, h.Gate.Flash, listPath, view.FlashSuccess, msg)
		return
	}

	var invalid *products.InvalidFormError
	switch {
	case errors.As(err, &invalid):
		h.renderEditor(c, http.StatusBadRequest, sess.Username, mode, f, invalid.Fields, "")
	case h.Gate.Rejected(c, sess, err):
	case errors.Is(err, products.ErrMissingID):
		c.Error(apperr.InvalidErr("Product id is required.", nil))
	default:
		h.renderEditor(c, http.StatusBadGateway, sess.Username, mode, f, nil,
			alertText("Failed to "+mode.Verb()+" product.", err))
	}
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	sess, ok := token(c)
	if !ok {
		return
	}

	err := h.Products.Delete(c.Request.Context(), sess.Token, c.Param("id"))
	switch {
	case err == nil:
		render.RedirectWithFlash(c, h.Gate.Flash, listPath, view.FlashSuccess, "Product deleted.")
	case h.Gate.Rejected(c, sess, err):
	default:
		render.RedirectWithFlash(c, h.Gate.Flash, listPath, view.FlashError, alertText("Failed to delete product.", err))
	}
}

// renderEditor draws the editor; alert carries a failed save's message.
func (h *ProductsHandler) renderEditor(c *gin.Context, status int, username string, mode products.Mode, f products.Form, fieldErrs products.FieldErrors, alert string) {
	render.Page(c, status, "editor.html", view.AdminProductEditorPage{
		Title:       mode.Title(),
		Flash:       middleware.GetFlash(c),
		Alert:       alert,
		Username:    username,
		Mode:        string(mode),
		Heading:     mode.Title(),
		ShowForm:    mode.ShowsForm(),
		Form:        formView(f),
		FieldErrors: fieldErrs,
		MaxImages:   products.MaxImages,
		CSRFToken:   middleware.GetCSRFToken(c),
	})
}

func formFromInput(in editorInput) (products.Form, error) {
	f := products.NewForm()
	fields := []struct{ name, value string }{
		{"id", in.ID},
		{"title", in.Title},
		{"category", in.Category},
		{"unit", in.Unit},
		{"origin_price", in.OriginPrice},
		{"price", in.Price},
		{"description", in.Description},
		{"content", in.Content},
		{"is_enabled", in.IsEnabled},
		{"imageUrl", in.ImageURL},
	}
	for _, fv := range fields {
		var err error
		if f, err = f.WithField(fv.name, fv.value); err != nil {
			return products.Form{}, err
		}
	}
	f.Images = products.ApplyEdits(products.ImagesFromForm(in.Rendered), in.Images)
	return f, nil
}

func formView(f products.Form) view.AdminProductForm {
	slots := make([]view.AdminImageSlot, 0, f.Images.Len())
	for i, u := range f.Images.Values() {
		slots = append(slots, view.AdminImageSlot{Index: i, URL: u})
	}
	return view.AdminProductForm{
		ID:             f.ID,
		Title:          f.Title,
		Category:       f.Category,
		Unit:           f.Unit,
		OriginPrice:    f.OriginPrice,
		Price:          f.Price,
		Description:    f.Description,
		Content:        f.Content,
		IsEnabled:      f.IsEnabled,
		ImageURL:       f.ImageURL,
		Images:         slots,
		CanAddImage:    f.Images.CanAppend(),
		CanRemoveImage: f.Images.Len() > 0,
	}
}

// alertText appends the catalog service's own message when there is one.
func alertText(prefix string, err error) string {
	if msg := strings.TrimSpace(catalogapi.Message(err)); msg != "" {
		return prefix + " " + msg
	}
	return prefix
}

func parsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
