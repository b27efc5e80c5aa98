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

// transactionRepository implements the domain's TransactionRepository interface using GORM.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository is the constructor for transactionRepository.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create persists a new ledger record.
func (repo *transactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	txnM := fromTransactionDomain(txn)

	if err := repo.db.WithContext(ctx).Create(txnM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("order already has a ledger record")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create transaction")
	}

	txn.ID = txnM.ID
	txn.CreatedAt = txnM.CreatedAt

	return nil
}

// FindByID retrieves a ledger record by ID.
func (repo *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByOrderID retrieves the ledger record linked to an order.
func (repo *transactionRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Transaction, error) {
	return repo.findOne(ctx, "order_id = ?", orderID)
}

func (repo *transactionRepository) findOne(ctx context.Context, query string, arg any) (*entity.Transaction, error) {
	var txnM model.TransactionModel
	err := repo.db.WithContext(ctx).Where(query, arg).First(&txnM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTransactionNotFound
		}

		return nil, errors.Wrap(err, "failed to find transaction")
	}

	return toTransactionDomain(&txnM), nil
}

// List returns all ledger records, newest first.
func (repo *transactionRepository) List(ctx context.Context) ([]*entity.Transaction, error) {
	var models []*model.TransactionModel
	err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	txns := make([]*entity.Transaction, 0, len(models))
	for _, txnM := range models {
		txns = append(txns, toTransactionDomain(txnM))
	}

	return txns, nil
}

// DeleteByOrderID removes the ledger record linked to an order.
func (repo *transactionRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.TransactionModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete transaction by order")
	}

	return nil
}

// --- Mapper Functions ---

func toTransactionDomain(data *model.TransactionModel) *entity.Transaction {
	if data == nil {
		return nil
	}

	return &entity.Transaction{
		ID:            data.ID,
		OrderID:       data.OrderID,
		Amount:        data.Amount,
		PaymentMethod: data.PaymentMethod,
		Status:        data.Status,
		CreatedAt:     data.CreatedAt,
	}
}

func fromTransactionDomain(data *entity.Transaction) *model.TransactionModel {
	if data == nil {
		return nil
	}

	return &model.TransactionModel{
		ID:            data.ID,
		OrderID:       data.OrderID,
		Amount:        data.Amount,
		PaymentMethod: data.PaymentMethod,
		Status:        data.Status,
		CreatedAt:     data.CreatedAt,
	}
}
