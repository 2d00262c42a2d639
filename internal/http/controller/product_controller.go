package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/repository"
	"storefront-backend/internal/service"
)

// ProductController handles the public storefront pages.
type ProductController struct {
	productService *service.ProductService
}

// NewProductController creates a new ProductController with the given product service.
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// Home handles GET / and shows the top products.
func (pc *ProductController) Home(c *gin.Context) {
	products, err := pc.productService.Home(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "could not load products")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Products": toViews(products),
	})
}

// ListProductsRequest represents the query parameters for the catalog listing.
type ListProductsRequest struct {
	Category string `form:"category"`
	Search   string `form:"search"`
}

// List handles GET /products with optional category and search filters.
func (pc *ProductController) List(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid query")
		return
	}

	products, categories, err := pc.productService.Catalog(c.Request.Context(), req.Category, req.Search)
	if err != nil {
		c.String(http.StatusInternalServerError, "could not load products")
		return
	}

	c.HTML(http.StatusOK, "products.html", gin.H{
		"Products":         toViews(products),
		"Categories":       categories,
		"SelectedCategory": req.Category,
		"Search":           req.Search,
	})
}

// Detail handles GET /products/:id. An unknown or malformed id yields an
// explicit 404 page, never an empty one.
func (pc *ProductController) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderNotFound(c)
		return
	}

	product, err := pc.productService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderNotFound(c)
			return
		}
		c.String(http.StatusInternalServerError, "could not load product")
		return
	}

	c.HTML(http.StatusOK, "product.html", gin.H{
		"Product": toView(product),
	})
}

// Contact handles GET /contact.
func (pc *ProductController) Contact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{})
}
