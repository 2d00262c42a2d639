package controller

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/config"
	"storefront-backend/internal/repository"
	"storefront-backend/internal/service"
)

// AdminController handles the password-gated admin panel. Every route it
// serves sits behind the RequireAuth middleware.
type AdminController struct {
	productService *service.ProductService
	media          config.Media
}

// NewAdminController creates a new AdminController.
func NewAdminController(productService *service.ProductService, media config.Media) *AdminController {
	return &AdminController{
		productService: productService,
		media:          media,
	}
}

// Dashboard handles GET /admin: all products plus the category set.
func (ac *AdminController) Dashboard(c *gin.Context) {
	products, categories, err := ac.productService.Catalog(c.Request.Context(), "", "")
	if err != nil {
		c.String(http.StatusInternalServerError, "could not load products")
		return
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Products":   toViews(products),
		"Categories": categories,
		"Flash":      takeFlash(c),
	})
}

// EditProducts handles GET /admin/edit-products.
func (ac *AdminController) EditProducts(c *gin.Context) {
	products, categories, err := ac.productService.Catalog(c.Request.Context(), "", "")
	if err != nil {
		c.String(http.StatusInternalServerError, "could not load products")
		return
	}

	c.HTML(http.StatusOK, "edit_products.html", gin.H{
		"Products":   toViews(products),
		"Categories": categories,
		"Flash":      takeFlash(c),
	})
}

// EditProductForm handles GET /admin/edit-product/:id, 404 when missing.
func (ac *AdminController) EditProductForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderNotFound(c)
		return
	}

	product, err := ac.productService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			renderNotFound(c)
			return
		}
		c.String(http.StatusInternalServerError, "could not load product")
		return
	}

	categories, err := ac.productService.Categories(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "could not load categories")
		return
	}

	c.HTML(http.StatusOK, "edit.html", gin.H{
		"Product":    toView(product),
		"Categories": categories,
		"Flash":      takeFlash(c),
	})
}

// AddProduct handles POST /admin/add-product. Validation failures and
// write failures both come back to the dashboard as a notice; nothing is
// committed partially.
func (ac *AdminController) AddProduct(c *gin.Context) {
	form, err := ac.parseProductForm(c)
	if err != nil {
		setFlash(c, userMessage(err))
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}

	_, err = ac.productService.Create(c.Request.Context(), service.CreateRequest{
		Name:        form.name,
		Description: form.description,
		Price:       form.price,
		Ingredients: form.ingredients,
		Category:    form.category,
		Allergens:   form.allergens,
		Image:       form.upload,
	})
	if err != nil {
		if !errors.Is(err, service.ErrValidation) {
			slog.Error("failed to create product", slog.Any("err", err))
		}
		setFlash(c, userMessage(err))
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}

	setFlash(c, "Product added.")
	c.Redirect(http.StatusSeeOther, "/admin")
}

// updateProductJSON is the legacy JSON body for updates. It cannot omit
// fields, so the image reference is always carried explicitly.
type updateProductJSON struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Ingredients string  `json:"ingredients"`
	Category    string  `json:"category"`
	Allergens   string  `json:"allergens"`
}

// UpdateProduct handles POST /admin/update-product/:id. The body is either
// a multipart form (image part optional, replaces only when present) or a
// JSON object. Both are folded into one service.UpdateRequest. The
// response is a small JSON acknowledgement carrying the resulting image
// reference when it changed.
func (ac *AdminController) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "product not found"})
		return
	}

	var req service.UpdateRequest
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var body updateProductJSON
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
			return
		}
		req = service.UpdateRequest{
			ID:           id,
			Name:         body.Name,
			Description:  body.Description,
			Price:        body.Price,
			Ingredients:  body.Ingredients,
			Category:     body.Category,
			Allergens:    body.Allergens,
			ImageRef:     body.Image,
			ReplaceImage: true,
		}
	} else {
		form, err := ac.parseProductForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": userMessage(err)})
			return
		}
		req = service.UpdateRequest{
			ID:          id,
			Name:        form.name,
			Description: form.description,
			Price:       form.price,
			Ingredients: form.ingredients,
			Category:    form.category,
			Allergens:   form.allergens,
			Image:       form.upload,
		}
	}

	result, err := ac.productService.Update(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": userMessage(err)})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "product not found"})
		default:
			slog.Error("failed to update product", slog.Any("err", err), slog.Int64("product_id", id))
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "could not update product"})
		}
		return
	}

	response := gin.H{"ok": true}
	if result.ImageChanged {
		response["image"] = result.ImageRef
	}
	c.JSON(http.StatusOK, response)
}

// productForm holds the parsed multipart fields shared by add and update.
type productForm struct {
	name        string
	description string
	price       float64
	ingredients string
	category    string
	allergens   string
	upload      *service.Upload
}

func (ac *AdminController) parseProductForm(c *gin.Context) (*productForm, error) {
	price, err := service.ParsePrice(strings.TrimSpace(c.PostForm("price")))
	if err != nil {
		return nil, err
	}

	form := &productForm{
		name:        strings.TrimSpace(c.PostForm("name")),
		description: strings.TrimSpace(c.PostForm("description")),
		price:       price,
		ingredients: strings.TrimSpace(c.PostForm("ingredients")),
		category:    strings.TrimSpace(c.PostForm("category")),
		allergens:   strings.TrimSpace(c.PostForm("allergens")),
	}

	header, err := c.FormFile("image")
	switch {
	case err == nil:
		if header.Size > ac.media.MaxUploadBytes() {
			return nil, fmt.Errorf("%w: image exceeds the %d MiB limit", service.ErrValidation, ac.media.MaxUploadMB)
		}
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file: %w", err)
		}
		form.upload = &service.Upload{Filename: header.Filename, Data: data}
	case errors.Is(err, http.ErrMissingFile):
		// the image part is optional
	default:
		return nil, fmt.Errorf("%w: could not read the uploaded image", service.ErrValidation)
	}

	return form, nil
}

// userMessage maps an error to the notice shown to the operator. Internal
// faults get a generic message; validation errors carry their own.
func userMessage(err error) string {
	if errors.Is(err, service.ErrValidation) {
		return err.Error()
	}
	return "could not save product"
}
