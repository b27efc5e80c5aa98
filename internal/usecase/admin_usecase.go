package usecase

import (
	"context"

	"github.com/google/uuid"

	"freshfarm/internal/domain/entity"
)

// ReportPeriod selects the time window of a platform report.
type ReportPeriod string

// Supported report periods.
const (
	ReportDaily   ReportPeriod = "DAILY"
	ReportWeekly  ReportPeriod = "WEEKLY"
	ReportMonthly ReportPeriod = "MONTHLY"
)

// IsValid reports whether p is a known report period.
func (p ReportPeriod) IsValid() bool {
	switch p {
	case ReportDaily, ReportWeekly, ReportMonthly:
		return true
	}
	return false
}

// ReportProductLine is one product entry in a platform report.
type ReportProductLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
}

// ReportFarmerLine is one farmer entry in a platform report.
type ReportFarmerLine struct {
	FarmerID uuid.UUID `json:"farmer_id"`
	FarmName string    `json:"farm_name"`
	Revenue  float64   `json:"revenue"`
}

// PlatformReport summarises marketplace activity over a period.
type PlatformReport struct {
	Period            ReportPeriod               `json:"period"`
	TotalRevenue      float64                    `json:"total_revenue"`
	OrderCount        int                        `json:"order_count"`
	UserCount         int                        `json:"user_count"`
	ProductCount      int                        `json:"product_count"`
	OrdersByStatus    map[entity.OrderStatus]int `json:"orders_by_status"`
	RevenueByCategory map[string]float64         `json:"revenue_by_category"`
	TopProducts       []ReportProductLine        `json:"top_products"`
	TopFarmers        []ReportFarmerLine         `json:"top_farmers"`
}

// AdminUsecase defines the interface for platform administration.
// Every method requires an admin actor.
type AdminUsecase interface {
	ListUsers(ctx context.Context, adminID uuid.UUID, role *entity.Role) ([]*entity.User, error)

	// DeactivateUser marks an account inactive, blocking further logins.
	DeactivateUser(ctx context.Context, adminID, targetID uuid.UUID) error

	// ReactivateUser marks an account active again.
	ReactivateUser(ctx context.Context, adminID, targetID uuid.UUID) error

	ListAllTransactions(ctx context.Context, adminID uuid.UUID) ([]*entity.Transaction, error)

	// GenerateReport summarises activity for the given period. Read-only.
	GenerateReport(ctx context.Context, adminID uuid.UUID, period ReportPeriod) (*PlatformReport, error)
}
