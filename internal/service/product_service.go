package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"storefront-backend/internal/metrics"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
	"storefront-backend/internal/sqs"
	"storefront-backend/internal/storage"
)

// homeProductCount is how many products the homepage shows.
const homeProductCount = 3

// ErrValidation marks a user-visible validation failure: the request is
// rejected before any write happens.
var ErrValidation = errors.New("validation failed")

// Upload carries an image file received with a create or update request.
type Upload struct {
	Filename string
	Data     []byte
}

// CreateRequest holds the fields of an add-product submission.
type CreateRequest struct {
	Name        string
	Description string
	Price       float64
	Ingredients string
	Category    string
	Allergens   string
	Image       *Upload
}

// UpdateRequest holds the fields of an update-product submission. Both the
// multipart and the JSON path build this one type, so the business logic
// does not fork. Image is a freshly uploaded file (replaces the stored
// reference); ReplaceImage with an empty Image means ImageRef itself is
// written as supplied (the JSON path, which always carries the reference
// explicitly).
type UpdateRequest struct {
	ID           int64
	Name         string
	Description  string
	Price        float64
	Ingredients  string
	Category     string
	Allergens    string
	Image        *Upload
	ImageRef     string
	ReplaceImage bool
}

// UpdateResult reports the outcome of an update: the resulting asset
// reference and whether it changed.
type UpdateResult struct {
	ImageRef     string
	ImageChanged bool
}

// ProductService orchestrates the product repository, the media store and
// the optional event publisher.
type ProductService struct {
	repo      repository.ProductRepository
	store     storage.Store
	publisher *sqs.Publisher
}

// NewProductService creates a ProductService. The publisher may be nil,
// which disables event publishing.
func NewProductService(repo repository.ProductRepository, store storage.Store, publisher *sqs.Publisher) *ProductService {
	return &ProductService{
		repo:      repo,
		store:     store,
		publisher: publisher,
	}
}

// ParsePrice converts a submitted price field into a non-negative float.
// Missing, malformed and negative values are all validation failures.
func ParsePrice(raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: price is required", ErrValidation)
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: price must be a number", ErrValidation)
	}
	if price < 0 {
		return 0, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return price, nil
}

func validateFields(name string, price float64) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return nil
}

// Home returns the products shown on the homepage: at most three, in
// backend-default order.
func (ps *ProductService) Home(ctx context.Context) ([]*model.Product, error) {
	return ps.repo.List(ctx, repository.Filter{Limit: homeProductCount})
}

// Catalog returns the filtered product listing together with the full
// distinct-category set used to build the filter UI.
func (ps *ProductService) Catalog(ctx context.Context, category, search string) ([]*model.Product, []string, error) {
	products, err := ps.repo.List(ctx, repository.Filter{Category: category, Search: search})
	if err != nil {
		return nil, nil, err
	}
	categories, err := ps.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	return products, categories, nil
}

// Categories returns the distinct category values currently in use.
func (ps *ProductService) Categories(ctx context.Context) ([]string, error) {
	return ps.repo.DistinctCategories(ctx)
}

// Get returns a single product or repository.ErrNotFound.
func (ps *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	return ps.repo.FindByID(ctx, id)
}

// Create validates the request, stores the uploaded image if one was
// supplied and inserts the row. When the insert fails after a successful
// upload the stored asset is removed again, so no orphaned media remains.
func (ps *ProductService) Create(ctx context.Context, req CreateRequest) (*model.Product, error) {
	if err := validateFields(req.Name, req.Price); err != nil {
		return nil, err
	}

	imageRef, uploaded, err := ps.saveUpload(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       imageRef,
		Ingredients: req.Ingredients,
		Category:    req.Category,
		Allergens:   req.Allergens,
	}

	if err := ps.repo.Create(ctx, product); err != nil {
		if uploaded {
			ps.rollbackUpload(ctx, imageRef)
		}
		return nil, err
	}

	metrics.ProductsCreated.Inc()
	ps.publish(ctx, "created", product)

	return product, nil
}

// Update validates the request, optionally stores a new image and
// overwrites the row. The image column is only written when the request
// carries a new upload or an explicit reference; a failed write after a
// fresh upload removes the uploaded asset again.
func (ps *ProductService) Update(ctx context.Context, req UpdateRequest) (UpdateResult, error) {
	if err := validateFields(req.Name, req.Price); err != nil {
		return UpdateResult{}, err
	}

	imageRef := req.ImageRef
	replaceImage := req.ReplaceImage

	newRef, uploaded, err := ps.saveUpload(ctx, req.Image)
	if err != nil {
		return UpdateResult{}, err
	}
	if uploaded {
		imageRef = newRef
		replaceImage = true
	}

	product := &model.Product{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       imageRef,
		Ingredients: req.Ingredients,
		Category:    req.Category,
		Allergens:   req.Allergens,
	}

	if err := ps.repo.Update(ctx, product, replaceImage); err != nil {
		if uploaded {
			ps.rollbackUpload(ctx, imageRef)
		}
		return UpdateResult{}, err
	}

	metrics.ProductsUpdated.Inc()
	ps.publish(ctx, "updated", product)

	return UpdateResult{ImageRef: imageRef, ImageChanged: replaceImage}, nil
}

// saveUpload stores the image when one was supplied. The bool reports
// whether an asset was actually written.
func (ps *ProductService) saveUpload(ctx context.Context, upload *Upload) (string, bool, error) {
	if upload == nil {
		return "", false, nil
	}
	ref, err := ps.store.Save(ctx, upload.Filename, upload.Data)
	if err != nil {
		if errors.Is(err, storage.ErrDisallowedType) || errors.Is(err, storage.ErrMissingFile) {
			return "", false, fmt.Errorf("%w: %s", ErrValidation, err)
		}
		return "", false, err
	}
	metrics.ImagesStored.Inc()
	return ref, true, nil
}

// rollbackUpload removes an asset stored for a write that did not commit.
func (ps *ProductService) rollbackUpload(ctx context.Context, imageRef string) {
	if err := ps.store.Remove(ctx, imageRef); err != nil {
		slog.Error("failed to remove uploaded asset after failed write",
			slog.Any("err", err), slog.String("image", imageRef))
		return
	}
	metrics.ImagesRolledBack.Inc()
}

func (ps *ProductService) publish(ctx context.Context, action string, product *model.Product) {
	if ps.publisher == nil {
		return
	}
	msg := sqs.ProductMessage{
		Action:    action,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Category:  product.Category,
	}
	if err := ps.publisher.PublishProductMessage(ctx, msg); err != nil {
		// Log error but don't fail the request
		slog.Error("Failed to send SQS message", slog.Any("err", err),
			slog.String("action", action), slog.Int64("product_id", product.ID))
	}
}
