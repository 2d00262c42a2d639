package controller

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/model"
)

const flashCookieName = "storefront_flash"

// Controller handles general HTTP requests.
type Controller struct{}

// New creates a new Controller.
func New() *Controller {
	return &Controller{}
}

// Healthz handles the HTTP GET request for the liveness endpoint.
func (con *Controller) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// productView is the template-facing representation of a product. ImageURL
// resolves the stored asset reference into something a browser can load:
// hosted references are absolute URLs already, local references are served
// under /uploads.
type productView struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Ingredients string
	Category    string
	Allergens   string
}

func toView(product *model.Product) productView {
	view := productView{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Ingredients: product.Ingredients,
		Category:    product.Category,
		Allergens:   product.Allergens,
	}
	switch {
	case product.Image == "":
	case strings.HasPrefix(product.Image, "http://"), strings.HasPrefix(product.Image, "https://"):
		view.ImageURL = product.Image
	default:
		view.ImageURL = "/uploads/" + product.Image
	}
	return view
}

func toViews(products []*model.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, product := range products {
		views = append(views, toView(product))
	}
	return views
}

// setFlash stores a one-shot notice shown on the next rendered page.
func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookieName, url.QueryEscape(message), 60, "/", "", false, true)
}

// takeFlash returns the pending notice, if any, and clears it.
func takeFlash(c *gin.Context) string {
	value, err := c.Cookie(flashCookieName)
	if err != nil {
		return ""
	}
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)
	message, err := url.QueryUnescape(value)
	if err != nil {
		return ""
	}
	return message
}

// renderNotFound renders the 404 page with the right status code.
func renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{})
}
