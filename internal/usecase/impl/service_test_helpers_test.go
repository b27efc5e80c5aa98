package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"freshfarm/internal/domain/entity"
	"freshfarm/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeHasher is a transparent stand-in for the bcrypt hasher.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokens issues predictable token strings.
type fakeTokens struct{}

func (fakeTokens) GenerateToken(userID uuid.UUID, role entity.Role) (string, error) {
	return "token:" + userID.String() + ":" + string(role), nil
}

func (fakeTokens) ValidateToken(tokenString string) (*service.Claims, error) {
	return nil, errors.New("not implemented")
}

// fakeEvents records published order events.
type fakeEvents struct {
	published []*service.OrderEvent
}

func (f *fakeEvents) PublishOrderEvent(_ context.Context, event *service.OrderEvent) error {
	f.published = append(f.published, event)

	return nil
}

func (f *fakeEvents) Close() error { return nil }

// fakeQRCodes renders deterministic QR payloads.
type fakeQRCodes struct{}

func (fakeQRCodes) GeneratePickupQR(orderID uuid.UUID) ([]byte, error) {
	return []byte("qr:" + orderID.String()), nil
}

func (fakeQRCodes) ParsePickupQR(qrData string) (uuid.UUID, error) {
	return uuid.Parse(qrData[len("qr:"):])
}

// fakeFiles stores nothing and returns an in-memory URL.
type fakeFiles struct {
	saved map[string]string
}

func (f *fakeFiles) Save(_ context.Context, key, contentType string, content io.Reader) (string, error) {
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	f.saved[key] = contentType

	return "mem://" + key, nil
}

func (f *fakeFiles) Delete(_ context.Context, key string) error {
	delete(f.saved, key)

	return nil
}

func (f *fakeFiles) Close() error { return nil }

// --- seed helpers ---

func seedBuyer(store *memStore) *entity.User {
	buyer := &entity.User{
		ID:           uuid.New(),
		Username:     "buyer-" + uuid.NewString()[:8],
		Email:        uuid.NewString()[:8] + "@example.com",
		PasswordHash: "hashed:secret",
		Role:         entity.RoleBuyer,
		Active:       true,
		RegisteredAt: time.Now(),
		BuyerProfile: &entity.BuyerProfile{
			DeliveryAddress:  "12 Orchard Lane",
			PreferredPayment: "CARD",
		},
	}
	buyer.BuyerProfile.UserID = buyer.ID
	store.users[buyer.ID] = buyer

	return buyer
}

func seedBuyerWithCart(store *memStore) (*entity.User, *entity.Cart) {
	buyer := seedBuyer(store)
	cart := &entity.Cart{
		ID:        uuid.New(),
		BuyerID:   buyer.ID,
		CreatedAt: time.Now(),
	}
	store.carts[cart.ID] = cart

	return buyer, cart
}

func seedFarmer(store *memStore) *entity.User {
	farmer := &entity.User{
		ID:           uuid.New(),
		Username:     "farmer-" + uuid.NewString()[:8],
		Email:        uuid.NewString()[:8] + "@example.com",
		PasswordHash: "hashed:secret",
		Role:         entity.RoleFarmer,
		Active:       true,
		RegisteredAt: time.Now(),
		FarmerProfile: &entity.FarmerProfile{
			FarmName: "Green Acres",
			Location: "Valley Road",
		},
	}
	farmer.FarmerProfile.UserID = farmer.ID
	store.users[farmer.ID] = farmer

	return farmer
}

func seedAdmin(store *memStore) *entity.User {
	admin := &entity.User{
		ID:           uuid.New(),
		Username:     "admin-" + uuid.NewString()[:8],
		Email:        uuid.NewString()[:8] + "@example.com",
		PasswordHash: "hashed:secret",
		Role:         entity.RoleAdmin,
		Active:       true,
		RegisteredAt: time.Now(),
		AdminProfile: &entity.AdminProfile{AdminRole: "SUPPORT"},
	}
	admin.AdminProfile.UserID = admin.ID
	store.users[admin.ID] = admin

	return admin
}

func seedProduct(store *memStore, farmerID uuid.UUID, price float64, quantity int) *entity.Product {
	product := &entity.Product{
		ID:        uuid.New(),
		FarmerID:  farmerID,
		Name:      "Tomatoes " + uuid.NewString()[:8],
		Category:  "Vegetables",
		Price:     price,
		Unit:      "kg",
		Quantity:  quantity,
		Status:    entity.ProductInStock,
		Available: true,
		PostedAt:  time.Now(),
	}
	store.products[product.ID] = product

	return product
}
