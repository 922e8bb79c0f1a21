package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogadmin.dev/app/internal/modules/products"
	"catalogadmin.dev/app/internal/shared/apperr"
)

type imagesRequest struct {
	Images []string `json:"images" binding:"max=64"`
	Op     string   `json:"op" binding:"required,oneof=set append remove_last"`
	Index  *int     `json:"index"`
	Value  string   `json:"value"`
}

type imagesResponse struct {
	Images    []string `json:"images"`
	CanAppend bool     `json:"canAppend"`
	CanRemove bool     `json:"canRemove"`
}

// Images applies one image-list operation for the editor script.
func Images(c *gin.Context) {
	var in imagesRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(apperr.InvalidErr("Invalid image operation.", nil))
		return
	}

	list := products.ImagesFromForm(in.Images)
	switch in.Op {
	case "set":
		if in.Index == nil || *in.Index < 0 || *in.Index >= list.Len() {
			c.Error(apperr.InvalidErr("Image index out of range.", map[string]string{"index": "Out of range."}))
			return
		}
		list = list.SetAt(*in.Index, in.Value)
	case "append":
		list = list.Append()
	case "remove_last":
		list = list.RemoveLast()
	}

	c.JSON(http.StatusOK, imagesResponse{
		Images:    list.Values(),
		CanAppend: list.CanAppend(),
		CanRemove: list.Len() > 0,
	})
}

type payloadRequest struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Unit        string   `json:"unit"`
	OriginPrice string   `json:"origin_price"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	IsEnabled   bool     `json:"is_enabled"`
	ImageURL    string   `json:"imageUrl"`
	ImagesURL   []string `json:"imagesUrl" binding:"max=64"`
}

// Payload previews what a save would send: {"data": payload}, or 400 with
// the fields that block it.
func Payload(c *gin.Context) {
	var in payloadRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(apperr.InvalidErr("Invalid product form.", nil))
		return
	}

	f := products.NewForm()
	f.ID = in.ID
	f.Title = in.Title
	f.Category = in.Category
	f.Unit = in.Unit
	f.OriginPrice = in.OriginPrice
	f.Price = in.Price
	f.Description = in.Description
	f.Content = in.Content
	f.IsEnabled = in.IsEnabled
	f.ImageURL = in.ImageURL
	f.Images = products.ImagesFromForm(in.ImagesURL)

	p, err := f.Serialize()
	if err != nil {
		var inv *products.InvalidFormError
		if errors.As(err, &inv) {
			c.Error(apperr.InvalidErr("Invalid product form.", inv.Fields))
			return
		}
		c.Error(apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}
