// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"freshfarm/internal/domain/entity"

	"github.com/google/uuid"
)

// userView is the public shape of a user account. The credential hash
// never leaves the service.
type userView struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	RegisteredAt time.Time `json:"registered_at"`

	FarmerProfile *farmerProfileView `json:"farmer_profile,omitempty"`
	BuyerProfile  *buyerProfileView  `json:"buyer_profile,omitempty"`
	AdminProfile  *adminProfileView  `json:"admin_profile,omitempty"`
}

type farmerProfileView struct {
	FarmName    string  `json:"farm_name"`
	Location    string  `json:"location,omitempty"`
	Description string  `json:"description,omitempty"`
	Rating      float64 `json:"rating"`
}

type buyerProfileView struct {
	DeliveryAddress  string `json:"delivery_address,omitempty"`
	PreferredPayment string `json:"preferred_payment,omitempty"`
}

type adminProfileView struct {
	AdminRole string `json:"admin_role,omitempty"`
}

func toUserView(user *entity.User) *userView {
	if user == nil {
		return nil
	}

	view := &userView{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Phone:        user.Phone,
		Address:      user.Address,
		Role:         user.Role.String(),
		Active:       user.Active,
		RegisteredAt: user.RegisteredAt,
	}

	if user.FarmerProfile != nil {
		view.FarmerProfile = &farmerProfileView{
			FarmName:    user.FarmerProfile.FarmName,
			Location:    user.FarmerProfile.Location,
			Description: user.FarmerProfile.Description,
			Rating:      user.FarmerProfile.Rating,
		}
	}
	if user.BuyerProfile != nil {
		view.BuyerProfile = &buyerProfileView{
			DeliveryAddress:  user.BuyerProfile.DeliveryAddress,
			PreferredPayment: user.BuyerProfile.PreferredPayment,
		}
	}
	if user.AdminProfile != nil {
		view.AdminProfile = &adminProfileView{
			AdminRole: user.AdminProfile.AdminRole,
		}
	}

	return view
}

func toUserViewList(users []*entity.User) []*userView {
	views := make([]*userView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}

	return views
}
