package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"freshfarm/internal/domain/entity"
	domainerrors "freshfarm/internal/domain/errors"
	"freshfarm/internal/domain/repository"
	"freshfarm/internal/domain/service"
	"freshfarm/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager repository.TransactionManager
	files     service.FileStore
	logger    *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	txManager repository.TransactionManager,
	files service.FileStore,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		txManager: txManager,
		files:     files,
		logger:    logger,
	}
}

// CreateProduct posts a new listing for the farmer.
func (srv *catalogService) CreateProduct(ctx context.Context, farmerID uuid.UUID, input usecase.CreateProductInput) (*entity.Product, error) {
	srv.logger.Info("Creating product", "farmerID", farmerID, "name", input.Name)

	status, available := entity.ResolveAvailability(entity.ProductStatus(input.Status), input.Available)
	if input.Status != "" && !entity.ProductStatus(input.Status).IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown product status")
	}

	product := &entity.Product{
		ID:          uuid.New(),
		FarmerID:    farmerID,
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Price:       input.Price,
		Unit:        input.Unit,
		Quantity:    input.Quantity,
		Status:      status,
		Available:   available,
		PostedAt:    time.Now(),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := srv.requireFarmer(ctx, repoFactory, farmerID); err != nil {
			return err
		}

		if err := repoFactory.ProductRepo().Create(ctx, product); err != nil {
			return errors.Wrap(err, "failed to create product")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	return product, nil
}

// UpdateProduct applies the listing changes present in the input.
func (srv *catalogService) UpdateProduct(ctx context.Context, farmerID, productID uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	srv.logger.Info("Updating product", "farmerID", farmerID, "productID", productID)

	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		found, err := srv.findOwnedProduct(ctx, productRepo, farmerID, productID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			found.Name = *input.Name
		}
		if input.Category != nil {
			found.Category = *input.Category
		}
		if input.Description != nil {
			found.Description = *input.Description
		}
		if input.Price != nil {
			found.Price = *input.Price
		}
		if input.Unit != nil {
			found.Unit = *input.Unit
		}
		if input.Quantity != nil {
			found.Quantity = *input.Quantity
		}
		if input.Status != nil {
			if !entity.ProductStatus(*input.Status).IsValid() {
				return errors.Wrap(domainerrors.ErrValidationFailed, "unknown product status")
			}
			found.Status, found.Available = entity.ResolveAvailability(entity.ProductStatus(*input.Status), input.Available)
		} else if input.Available != nil {
			found.Available = *input.Available
		}

		if err := productRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update product")
		}
		product = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// DeleteProduct removes a listing with everything referencing it: its
// reviews, then cart lines (recomputing affected cart totals), then the
// product itself, in one transaction.
func (srv *catalogService) DeleteProduct(ctx context.Context, farmerID, productID uuid.UUID) error {
	srv.logger.Info("Deleting product", "farmerID", farmerID, "productID", productID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()
		cartRepo := repoFactory.CartRepo()

		if _, err := srv.findOwnedProduct(ctx, productRepo, farmerID, productID); err != nil {
			return err
		}

		if err := repoFactory.ReviewRepo().DeleteByProductID(ctx, productID); err != nil {
			return errors.Wrap(err, "failed to delete product reviews")
		}

		cartIDs, err := cartRepo.RemoveItemsByProductID(ctx, productID)
		if err != nil {
			return errors.Wrap(err, "failed to remove cart items")
		}
		for _, cartID := range cartIDs {
			cart, err := cartRepo.FindByID(ctx, cartID)
			if err != nil {
				return errors.Wrap(err, "failed to reload cart")
			}
			cart.RecalculateTotal()
			if err := cartRepo.UpdateTotal(ctx, cartID, cart.TotalAmount); err != nil {
				return errors.Wrap(err, "failed to update cart total")
			}
		}

		if err := productRepo.Delete(ctx, productID); err != nil {
			return errors.Wrap(err, "failed to delete product")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

// UploadProductImage stores the image in the file store and records its
// URL on the listing.
func (srv *catalogService) UploadProductImage(ctx context.Context, farmerID, productID uuid.UUID, contentType string, content io.Reader) (*entity.Product, error) {
	srv.logger.Info("Uploading product image", "farmerID", farmerID, "productID", productID)

	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		found, err := srv.findOwnedProduct(ctx, productRepo, farmerID, productID)
		if err != nil {
			return err
		}

		key := fmt.Sprintf("products/%s/%s", productID, uuid.NewString())
		url, err := srv.files.Save(ctx, key, contentType, content)
		if err != nil {
			return errors.Wrap(err, "failed to store image")
		}

		found.ImageURL = url
		if err := productRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update product")
		}
		product = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to upload product image")
	}

	return product, nil
}

// GetProduct retrieves a single listing.
func (srv *catalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}
		product = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get product")
	}

	return product, nil
}

// ListProducts returns catalog listings matching the filters.
func (srv *catalogService) ListProducts(ctx context.Context, input usecase.ListProductsInput) ([]*entity.Product, error) {
	filter := repository.ProductFilter{
		Keyword:       input.Keyword,
		Category:      input.Category,
		Status:        entity.ProductStatus(input.Status),
		MinPrice:      input.MinPrice,
		MaxPrice:      input.MaxPrice,
		Location:      input.Location,
		AvailableOnly: input.AvailableOnly,
	}

	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().List(ctx, filter)
		if err != nil {
			return errors.Wrap(err, "failed to list products")
		}
		products = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// ListFarmerProducts returns every listing posted by the farmer.
func (srv *catalogService) ListFarmerProducts(ctx context.Context, farmerID uuid.UUID) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().FindByFarmerID(ctx, farmerID)
		if err != nil {
			return errors.Wrap(err, "failed to list farmer products")
		}
		products = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list farmer products")
	}

	return products, nil
}

// requireFarmer verifies the actor exists and holds the FARMER role.
func (srv *catalogService) requireFarmer(ctx context.Context, repoFactory repository.RepositoryFactory, userID uuid.UUID) error {
	user, err := repoFactory.UserRepo().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
		}

		return errors.Wrap(err, "failed to find user")
	}
	if user.Role != entity.RoleFarmer {
		return errors.Wrap(domainerrors.ErrOnlyFarmers, "actor is not a farmer")
	}

	return nil
}

// findOwnedProduct loads a product and verifies the farmer owns it.
func (srv *catalogService) findOwnedProduct(ctx context.Context, productRepo repository.ProductRepository, farmerID, productID uuid.UUID) (*entity.Product, error) {
	product, err := productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to find product")
	}
	if product.FarmerID != farmerID {
		return nil, errors.Wrap(domainerrors.ErrNotProductOwner, "product owned by another farmer")
	}

	return product, nil
}
