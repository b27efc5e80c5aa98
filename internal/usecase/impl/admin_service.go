package impl

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"freshfarm/internal/domain/entity"
	domainerrors "freshfarm/internal/domain/errors"
	"freshfarm/internal/domain/repository"
	"freshfarm/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// reportTopN caps the top-products and top-farmers lists in reports.
const reportTopN = 5

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.AdminUsecase {
	return &adminService{
		txManager: txManager,
		logger:    logger,
	}
}

// ListUsers returns all accounts, optionally filtered by role.
func (srv *adminService) ListUsers(ctx context.Context, adminID uuid.UUID, role *entity.Role) ([]*entity.User, error) {
	var users []*entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := requireAdmin(ctx, repoFactory, adminID); err != nil {
			return err
		}

		found, err := repoFactory.UserRepo().List(ctx, role)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}
		users = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// DeactivateUser marks an account inactive, blocking further logins.
func (srv *adminService) DeactivateUser(ctx context.Context, adminID, targetID uuid.UUID) error {
	srv.logger.Info("Deactivating user", "adminID", adminID, "targetID", targetID)

	return srv.setActive(ctx, adminID, targetID, false)
}

// ReactivateUser marks an account active again.
func (srv *adminService) ReactivateUser(ctx context.Context, adminID, targetID uuid.UUID) error {
	srv.logger.Info("Reactivating user", "adminID", adminID, "targetID", targetID)

	return srv.setActive(ctx, adminID, targetID, true)
}

func (srv *adminService) setActive(ctx context.Context, adminID, targetID uuid.UUID, active bool) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := requireAdmin(ctx, repoFactory, adminID); err != nil {
			return err
		}

		userRepo := repoFactory.UserRepo()

		if _, err := userRepo.FindByID(ctx, targetID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "target user not found")
			}

			return errors.Wrap(err, "failed to find target user")
		}

		if err := userRepo.SetActive(ctx, targetID, active); err != nil {
			return errors.Wrap(err, "failed to set active flag")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to change account state")
	}

	return nil
}

// ListAllTransactions returns every payment-ledger record, newest first.
func (srv *adminService) ListAllTransactions(ctx context.Context, adminID uuid.UUID) ([]*entity.Transaction, error) {
	var txns []*entity.Transaction

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := requireAdmin(ctx, repoFactory, adminID); err != nil {
			return err
		}

		found, err := repoFactory.TransactionRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list transactions")
		}
		txns = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	return txns, nil
}

// GenerateReport summarises marketplace activity over the period. The
// report is computed from committed data only and mutates nothing.
func (srv *adminService) GenerateReport(ctx context.Context, adminID uuid.UUID, period usecase.ReportPeriod) (*usecase.PlatformReport, error) {
	srv.logger.Info("Generating report", "adminID", adminID, "period", period)

	if !period.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown report period")
	}

	since := reportWindowStart(period, time.Now())
	report := &usecase.PlatformReport{
		Period:            period,
		OrdersByStatus:    make(map[entity.OrderStatus]int),
		RevenueByCategory: make(map[string]float64),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := requireAdmin(ctx, repoFactory, adminID); err != nil {
			return err
		}

		users, err := repoFactory.UserRepo().List(ctx, nil)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}
		report.UserCount = len(users)

		farmNames := make(map[uuid.UUID]string)
		for _, user := range users {
			if user.FarmerProfile != nil {
				farmNames[user.ID] = user.FarmerProfile.FarmName
			}
		}

		products, err := repoFactory.ProductRepo().List(ctx, repository.ProductFilter{})
		if err != nil {
			return errors.Wrap(err, "failed to list products")
		}
		report.ProductCount = len(products)

		productIndex := make(map[uuid.UUID]*entity.Product, len(products))
		for _, product := range products {
			productIndex[product.ID] = product
		}

		orders, err := repoFactory.OrderRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}

		quantityByProduct := make(map[uuid.UUID]int)
		revenueByFarmer := make(map[uuid.UUID]float64)

		for _, order := range orders {
			if order.OrderDate.Before(since) {
				continue
			}

			report.OrderCount++
			report.OrdersByStatus[order.Status]++

			if order.Status == entity.OrderCancelled {
				continue
			}
			report.TotalRevenue += order.TotalAmount

			for _, item := range order.Items {
				quantityByProduct[item.ProductID] += item.Quantity

				product, ok := productIndex[item.ProductID]
				if !ok {
					// Product deleted since the order was placed.
					continue
				}
				report.RevenueByCategory[product.Category] += item.Subtotal
				revenueByFarmer[product.FarmerID] += item.Subtotal
			}
		}

		for productID, quantity := range quantityByProduct {
			name := ""
			if product, ok := productIndex[productID]; ok {
				name = product.Name
			}
			report.TopProducts = append(report.TopProducts, usecase.ReportProductLine{
				ProductID: productID,
				Name:      name,
				Quantity:  quantity,
			})
		}
		sort.Slice(report.TopProducts, func(i, j int) bool {
			return report.TopProducts[i].Quantity > report.TopProducts[j].Quantity
		})
		if len(report.TopProducts) > reportTopN {
			report.TopProducts = report.TopProducts[:reportTopN]
		}

		for farmerID, revenue := range revenueByFarmer {
			report.TopFarmers = append(report.TopFarmers, usecase.ReportFarmerLine{
				FarmerID: farmerID,
				FarmName: farmNames[farmerID],
				Revenue:  revenue,
			})
		}
		sort.Slice(report.TopFarmers, func(i, j int) bool {
			return report.TopFarmers[i].Revenue > report.TopFarmers[j].Revenue
		})
		if len(report.TopFarmers) > reportTopN {
			report.TopFarmers = report.TopFarmers[:reportTopN]
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate report")
	}

	return report, nil
}

// reportWindowStart returns the inclusive lower bound of a report period.
func reportWindowStart(period usecase.ReportPeriod, now time.Time) time.Time {
	switch period {
	case usecase.ReportDaily:
		return now.AddDate(0, 0, -1)
	case usecase.ReportWeekly:
		return now.AddDate(0, 0, -7)
	case usecase.ReportMonthly:
		return now.AddDate(0, -1, 0)
	default:
		return now
	}
}

// requireAdmin verifies the actor exists and holds the ADMIN role.
func requireAdmin(ctx context.Context, repoFactory repository.RepositoryFactory, userID uuid.UUID) error {
	user, err := repoFactory.UserRepo().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
		}

		return errors.Wrap(err, "failed to find user")
	}
	if user.Role != entity.RoleAdmin {
		return errors.Wrap(domainerrors.ErrOnlyAdmins, "actor is not an admin")
	}

	return nil
}
