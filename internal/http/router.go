package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/config"
	"storefront-backend/internal/http/controller"
	"storefront-backend/internal/http/middleware"
	"storefront-backend/web"
)

// InitRouter wires the storefront and admin routes onto the given engine.
// uploadDir is the local media directory; it is only served when the
// local backend is active, S3 references are absolute URLs already.
func InitRouter(
	conf *config.Config,
	server *gin.Engine,
	uploadDir string,
	ctr *controller.Controller,
	productCtr *controller.ProductController,
	adminCtr *controller.AdminController,
	authCtr *controller.AuthController,
) (*gin.Engine, error) {
	templates, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	server.SetHTMLTemplate(templates)

	// Apply recovery middleware globally to prevent panics from crashing the server
	server.Use(middleware.Recovery())

	server.GET("/healthz", ctr.Healthz)
	staticFS := http.FS(web.Static)
	server.StaticFileFS("/robots.txt", "static/robots.txt", staticFS)
	server.StaticFileFS("/sitemap.xml", "static/sitemap.xml", staticFS)
	if conf.Media.Backend == config.MediaBackendLocal {
		server.Static("/uploads", uploadDir)
	}

	// Storefront endpoints
	server.GET("/", productCtr.Home)
	server.GET("/products", productCtr.List)
	server.GET("/products/:id", productCtr.Detail)
	server.GET("/contact", productCtr.Contact)

	// Auth endpoints
	server.GET("/login", authCtr.LoginForm)
	server.POST("/login", authCtr.Login)
	server.GET("/logout", authCtr.Logout)

	// Admin endpoints, all behind the session guard
	admin := server.Group("/admin")
	admin.Use(middleware.RequireAuth(conf))
	{
		admin.GET("", adminCtr.Dashboard)
		admin.GET("/edit-products", adminCtr.EditProducts)
		admin.GET("/edit-product/:id", adminCtr.EditProductForm)

		writes := admin.Group("")
		writes.Use(middleware.MaxBodySize(conf.Media.MaxUploadBytes() + 1<<20))
		{
			writes.POST("/add-product", adminCtr.AddProduct)
			writes.POST("/update-product/:id", adminCtr.UpdateProduct)
		}
	}

	server.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "404.html", nil)
	})

	return server, nil
}
