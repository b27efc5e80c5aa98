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

// userRepository implements the domain's UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create persists a new user entity together with its role profile.
// GORM's Create with associations inserts into users and the matching
// profile table in one pass.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("username or email already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid foreign key reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Propagate generated values back to the entity.
	user.ID = userM.ID
	user.RegisteredAt = userM.RegisteredAt

	return nil
}

// FindByID retrieves a single user by their unique ID, preloading the role profile.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByUsername retrieves a single user by username, preloading the role profile.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.findOne(ctx, "username = ?", username)
}

// FindByEmail retrieves a single user by email, preloading the role profile.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "email = ?", email)
}

func (repo *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("FarmerProfile").
		Preload("BuyerProfile").
		Preload("AdminProfile").
		Where(query, arg).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return toUserDomain(&userM), nil
}

// ExistsByUsername reports whether a user with the given username exists.
func (repo *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return repo.exists(ctx, "username = ?", username)
}

// ExistsByEmail reports whether a user with the given email exists.
func (repo *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return repo.exists(ctx, "email = ?", email)
}

func (repo *userRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where(query, arg).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to count users")
	}

	return count > 0, nil
}

// Update persists changes to the user row and its role profile.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	err := repo.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(userM).Error
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("username or email already registered")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	return nil
}

// SetActive flips the account's active flag.
func (repo *userRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("active", active)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set user active flag")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// List returns all users ordered by username, optionally filtered by role.
func (repo *userRepository) List(ctx context.Context, role *entity.Role) ([]*entity.User, error) {
	query := repo.db.WithContext(ctx).
		Preload("FarmerProfile").
		Preload("BuyerProfile").
		Preload("AdminProfile").
		Order("username")
	if role != nil {
		query = query.Where("role = ?", string(*role))
	}

	var models []*model.UserModel
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(models))
	for _, userM := range models {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// Delete removes the user row together with its role profile.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.FarmerProfileModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.BuyerProfileModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.AdminProfileModel{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&model.UserModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrUserNotFound
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return err
		}

		return errors.Wrap(err, "failed to delete user")
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	user := &entity.User{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Phone:        data.Phone,
		Address:      data.Address,
		Role:         entity.Role(data.Role),
		Active:       data.Active,
		RegisteredAt: data.RegisteredAt,
	}

	if data.FarmerProfile != nil {
		user.FarmerProfile = &entity.FarmerProfile{
			UserID:      data.FarmerProfile.UserID,
			FarmName:    data.FarmerProfile.FarmName,
			Location:    data.FarmerProfile.Location,
			Description: data.FarmerProfile.Description,
			Rating:      data.FarmerProfile.Rating,
		}
	}
	if data.BuyerProfile != nil {
		user.BuyerProfile = &entity.BuyerProfile{
			UserID:           data.BuyerProfile.UserID,
			DeliveryAddress:  data.BuyerProfile.DeliveryAddress,
			PreferredPayment: data.BuyerProfile.PreferredPayment,
		}
	}
	if data.AdminProfile != nil {
		user.AdminProfile = &entity.AdminProfile{
			UserID:    data.AdminProfile.UserID,
			AdminRole: data.AdminProfile.AdminRole,
		}
	}

	return user
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	userM := &model.UserModel{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Phone:        data.Phone,
		Address:      data.Address,
		Role:         string(data.Role),
		Active:       data.Active,
		RegisteredAt: data.RegisteredAt,
	}

	if data.FarmerProfile != nil {
		userM.FarmerProfile = &model.FarmerProfileModel{
			UserID:      data.ID,
			FarmName:    data.FarmerProfile.FarmName,
			Location:    data.FarmerProfile.Location,
			Description: data.FarmerProfile.Description,
			Rating:      data.FarmerProfile.Rating,
		}
	}
	if data.BuyerProfile != nil {
		userM.BuyerProfile = &model.BuyerProfileModel{
			UserID:           data.ID,
			DeliveryAddress:  data.BuyerProfile.DeliveryAddress,
			PreferredPayment: data.BuyerProfile.PreferredPayment,
		}
	}
	if data.AdminProfile != nil {
		userM.AdminProfile = &model.AdminProfileModel{
			UserID:    data.ID,
			AdminRole: data.AdminProfile.AdminRole,
		}
	}

	return userM
}
