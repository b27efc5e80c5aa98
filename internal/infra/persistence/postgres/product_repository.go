package postgres

import (
	"context"

	"freshfarm/internal/domain/entity"
	domainerrors "freshfarm/internal/domain/errors"
	"freshfarm/internal/domain/repository"
	"freshfarm/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the domain's ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create persists a new product listing.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown farmer reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID

	return nil
}

// FindByID retrieves a product by ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindByFarmerID returns all products posted by the given farmer, newest first.
func (repo *productRepository) FindByFarmerID(ctx context.Context, farmerID uuid.UUID) ([]*entity.Product, error) {
	var models []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("posted_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list farmer products")
	}

	return toProductDomainList(models), nil
}

// List returns products matching the filter, newest first.
func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{}).Order("posted_at DESC")

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Keyword != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Location != "" {
		query = query.
			Joins("JOIN farmer_profiles ON farmer_profiles.user_id = products.farmer_id").
			Where("farmer_profiles.location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.AvailableOnly {
		query = query.Where("available = ?", true)
	}

	var models []*model.ProductModel
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return toProductDomainList(models), nil
}

// Update persists changes to a product listing.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Save(productM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update product")
	}

	return nil
}

// DecrementStock atomically reduces stock, only when enough remains.
// The guard lives in the WHERE clause so concurrent orders cannot
// oversell: the row is only updated if quantity >= the requested amount.
func (repo *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to decrement stock")
	}

	return result.RowsAffected > 0, nil
}

// IncrementStock restores stock, for example when an order is cancelled.
func (repo *productRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to increment stock")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product listing.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:          data.ID,
		FarmerID:    data.FarmerID,
		Name:        data.Name,
		Category:    data.Category,
		Description: data.Description,
		Price:       data.Price,
		Unit:        data.Unit,
		Quantity:    data.Quantity,
		ImageURL:    data.ImageURL,
		Status:      entity.ProductStatus(data.Status),
		Available:   data.Available,
		PostedAt:    data.PostedAt,
	}
}

func toProductDomainList(models []*model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(models))
	for _, productM := range models {
		products = append(products, toProductDomain(productM))
	}

	return products
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:          data.ID,
		FarmerID:    data.FarmerID,
		Name:        data.Name,
		Category:    data.Category,
		Description: data.Description,
		Price:       data.Price,
		Unit:        data.Unit,
		Quantity:    data.Quantity,
		ImageURL:    data.ImageURL,
		Status:      string(data.Status),
		Available:   data.Available,
		PostedAt:    data.PostedAt,
	}
}
