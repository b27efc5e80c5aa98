package impl

import (
	"context"
	"sort"
	"strings"
	"time"

	"freshfarm/internal/domain/entity"
	"freshfarm/internal/domain/repository"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the persistence layer. The
// transaction manager snapshots it before running a unit of work and
// restores the snapshot on error, so rollback behaviour is observable in
// tests exactly like with a real database.
type memStore struct {
	users     map[uuid.UUID]*entity.User
	products  map[uuid.UUID]*entity.Product
	carts     map[uuid.UUID]*entity.Cart
	cartItems map[uuid.UUID]*entity.CartItem
	orders    map[uuid.UUID]*entity.Order
	txns      map[uuid.UUID]*entity.Transaction
	reviews   map[uuid.UUID]*entity.Review
	messages  map[uuid.UUID]*entity.Message
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[uuid.UUID]*entity.User),
		products:  make(map[uuid.UUID]*entity.Product),
		carts:     make(map[uuid.UUID]*entity.Cart),
		cartItems: make(map[uuid.UUID]*entity.CartItem),
		orders:    make(map[uuid.UUID]*entity.Order),
		txns:      make(map[uuid.UUID]*entity.Transaction),
		reviews:   make(map[uuid.UUID]*entity.Review),
		messages:  make(map[uuid.UUID]*entity.Message),
	}
}

func (s *memStore) snapshot() *memStore {
	clone := newMemStore()
	for id, u := range s.users {
		clone.users[id] = cloneUser(u)
	}
	for id, p := range s.products {
		clone.products[id] = cloneProduct(p)
	}
	for id, c := range s.carts {
		clone.carts[id] = cloneCart(c)
	}
	for id, i := range s.cartItems {
		clone.cartItems[id] = cloneCartItem(i)
	}
	for id, o := range s.orders {
		clone.orders[id] = cloneOrder(o)
	}
	for id, t := range s.txns {
		clone.txns[id] = cloneTransaction(t)
	}
	for id, r := range s.reviews {
		clone.reviews[id] = cloneReview(r)
	}
	for id, m := range s.messages {
		clone.messages[id] = cloneMessage(m)
	}

	return clone
}

func (s *memStore) restore(from *memStore) {
	s.users = from.users
	s.products = from.products
	s.carts = from.carts
	s.cartItems = from.cartItems
	s.orders = from.orders
	s.txns = from.txns
	s.reviews = from.reviews
	s.messages = from.messages
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	if u.FarmerProfile != nil {
		fp := *u.FarmerProfile
		c.FarmerProfile = &fp
	}
	if u.BuyerProfile != nil {
		bp := *u.BuyerProfile
		c.BuyerProfile = &bp
	}
	if u.AdminProfile != nil {
		ap := *u.AdminProfile
		c.AdminProfile = &ap
	}

	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p

	return &c
}

func cloneCart(cart *entity.Cart) *entity.Cart {
	c := *cart
	c.Items = nil

	return &c
}

func cloneCartItem(i *entity.CartItem) *entity.CartItem {
	c := *i

	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	if o.DeliveryDate != nil {
		d := *o.DeliveryDate
		c.DeliveryDate = &d
	}
	c.Items = make([]*entity.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		i := *item
		c.Items = append(c.Items, &i)
	}

	return &c
}

func cloneTransaction(t *entity.Transaction) *entity.Transaction {
	c := *t

	return &c
}

func cloneReview(r *entity.Review) *entity.Review {
	c := *r
	if r.ModeratedByID != nil {
		m := *r.ModeratedByID
		c.ModeratedByID = &m
	}

	return &c
}

func cloneMessage(m *entity.Message) *entity.Message {
	c := *m

	return &c
}

// memTxManager implements repository.TransactionManager over a memStore.
type memTxManager struct {
	store *memStore
}

func newMemTxManager(store *memStore) *memTxManager {
	return &memTxManager{store: store}
}

func (m *memTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	snap := m.store.snapshot()
	if err := fn(&memFactory{store: m.store}); err != nil {
		m.store.restore(snap)

		return err
	}

	return nil
}

// memFactory implements repository.RepositoryFactory over a memStore.
type memFactory struct {
	store *memStore
}

func (f *memFactory) UserRepo() repository.UserRepository               { return &memUserRepo{f.store} }
func (f *memFactory) ProductRepo() repository.ProductRepository         { return &memProductRepo{f.store} }
func (f *memFactory) CartRepo() repository.CartRepository               { return &memCartRepo{f.store} }
func (f *memFactory) OrderRepo() repository.OrderRepository             { return &memOrderRepo{f.store} }
func (f *memFactory) TransactionRepo() repository.TransactionRepository { return &memTxnRepo{f.store} }
func (f *memFactory) ReviewRepo() repository.ReviewRepository           { return &memReviewRepo{f.store} }
func (f *memFactory) MessageRepo() repository.MessageRepository         { return &memMessageRepo{f.store} }

// --- users ---

type memUserRepo struct{ store *memStore }

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.users[user.ID] = cloneUser(user)

	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, user := range r.store.users {
		if user.Username == username {
			return true, nil
		}
	}

	return false, nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range r.store.users {
		if user.Email == email {
			return true, nil
		}
	}

	return false, nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.store.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	r.store.users[user.ID] = cloneUser(user)

	return nil
}

func (r *memUserRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	user, ok := r.store.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Active = active

	return nil
}

func (r *memUserRepo) List(_ context.Context, role *entity.Role) ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range r.store.users {
		if role != nil && user.Role != *role {
			continue
		}
		users = append(users, cloneUser(user))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })

	return users, nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.store.users, id)

	return nil
}

// --- products ---

type memProductRepo struct{ store *memStore }

func (r *memProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.store.products[product.ID] = cloneProduct(product)

	return nil
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := r.store.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return cloneProduct(product), nil
}

func (r *memProductRepo) FindByFarmerID(_ context.Context, farmerID uuid.UUID) ([]*entity.Product, error) {
	var products []*entity.Product
	for _, product := range r.store.products {
		if product.FarmerID == farmerID {
			products = append(products, cloneProduct(product))
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })

	return products, nil
}

func (r *memProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var products []*entity.Product
	for _, product := range r.store.products {
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if filter.Status != "" && product.Status != filter.Status {
			continue
		}
		if filter.Keyword != "" && !strings.Contains(strings.ToLower(product.Name), strings.ToLower(filter.Keyword)) {
			continue
		}
		if filter.MinPrice != nil && product.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && product.Price > *filter.MaxPrice {
			continue
		}
		if filter.AvailableOnly && !product.Available {
			continue
		}
		products = append(products, cloneProduct(product))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })

	return products, nil
}

func (r *memProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.store.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	r.store.products[product.ID] = cloneProduct(product)

	return nil
}

func (r *memProductRepo) DecrementStock(_ context.Context, id uuid.UUID, quantity int) (bool, error) {
	product, ok := r.store.products[id]
	if !ok {
		return false, repository.ErrProductNotFound
	}
	if product.Quantity < quantity {
		return false, nil
	}
	product.Quantity -= quantity

	return true, nil
}

func (r *memProductRepo) IncrementStock(_ context.Context, id uuid.UUID, quantity int) error {
	product, ok := r.store.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	product.Quantity += quantity

	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.store.products, id)

	return nil
}

// --- carts ---

type memCartRepo struct{ store *memStore }

func (r *memCartRepo) Create(_ context.Context, cart *entity.Cart) error {
	r.store.carts[cart.ID] = cloneCart(cart)

	return nil
}

func (r *memCartRepo) assemble(cart *entity.Cart) *entity.Cart {
	out := cloneCart(cart)
	for _, item := range r.store.cartItems {
		if item.CartID == cart.ID {
			out.Items = append(out.Items, cloneCartItem(item))
		}
	}
	sort.Slice(out.Items, func(i, j int) bool {
		return out.Items[i].ID.String() < out.Items[j].ID.String()
	})

	return out
}

func (r *memCartRepo) FindByBuyerID(_ context.Context, buyerID uuid.UUID) (*entity.Cart, error) {
	for _, cart := range r.store.carts {
		if cart.BuyerID == buyerID {
			return r.assemble(cart), nil
		}
	}

	return nil, repository.ErrCartNotFound
}

func (r *memCartRepo) FindByID(_ context.Context, cartID uuid.UUID) (*entity.Cart, error) {
	cart, ok := r.store.carts[cartID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}

	return r.assemble(cart), nil
}

func (r *memCartRepo) AddItem(_ context.Context, item *entity.CartItem) error {
	r.store.cartItems[item.ID] = cloneCartItem(item)

	return nil
}

func (r *memCartRepo) UpdateItem(_ context.Context, item *entity.CartItem) error {
	if _, ok := r.store.cartItems[item.ID]; !ok {
		return repository.ErrCartItemNotFound
	}
	r.store.cartItems[item.ID] = cloneCartItem(item)

	return nil
}

func (r *memCartRepo) RemoveItem(_ context.Context, itemID uuid.UUID) error {
	if _, ok := r.store.cartItems[itemID]; !ok {
		return repository.ErrCartItemNotFound
	}
	delete(r.store.cartItems, itemID)

	return nil
}

func (r *memCartRepo) RemoveItemsByProductID(_ context.Context, productID uuid.UUID) ([]uuid.UUID, error) {
	var cartIDs []uuid.UUID
	seen := make(map[uuid.UUID]struct{})
	for id, item := range r.store.cartItems {
		if item.ProductID != productID {
			continue
		}
		if _, ok := seen[item.CartID]; !ok {
			seen[item.CartID] = struct{}{}
			cartIDs = append(cartIDs, item.CartID)
		}
		delete(r.store.cartItems, id)
	}

	return cartIDs, nil
}

func (r *memCartRepo) ClearItems(_ context.Context, cartID uuid.UUID) error {
	for id, item := range r.store.cartItems {
		if item.CartID == cartID {
			delete(r.store.cartItems, id)
		}
	}

	return nil
}

func (r *memCartRepo) UpdateTotal(_ context.Context, cartID uuid.UUID, total float64) error {
	cart, ok := r.store.carts[cartID]
	if !ok {
		return repository.ErrCartNotFound
	}
	cart.TotalAmount = total

	return nil
}

func (r *memCartRepo) Delete(_ context.Context, cartID uuid.UUID) error {
	if _, ok := r.store.carts[cartID]; !ok {
		return repository.ErrCartNotFound
	}
	delete(r.store.carts, cartID)

	return nil
}

// --- orders ---

type memOrderRepo struct{ store *memStore }

func (r *memOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.store.orders[order.ID] = cloneOrder(order)

	return nil
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := r.store.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return cloneOrder(order), nil
}

func (r *memOrderRepo) ListByBuyerID(_ context.Context, buyerID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order
	for _, order := range r.store.orders {
		if order.BuyerID == buyerID {
			orders = append(orders, cloneOrder(order))
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderDate.After(orders[j].OrderDate) })

	return orders, nil
}

func (r *memOrderRepo) ListByFarmerID(_ context.Context, farmerID uuid.UUID) ([]*entity.Order, error) {
	owned := make(map[uuid.UUID]struct{})
	for _, product := range r.store.products {
		if product.FarmerID == farmerID {
			owned[product.ID] = struct{}{}
		}
	}

	var orders []*entity.Order
	for _, order := range r.store.orders {
		if order.ContainsProductOf(owned) {
			orders = append(orders, cloneOrder(order))
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderDate.After(orders[j].OrderDate) })

	return orders, nil
}

func (r *memOrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	var orders []*entity.Order
	for _, order := range r.store.orders {
		orders = append(orders, cloneOrder(order))
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderDate.After(orders[j].OrderDate) })

	return orders, nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.OrderStatus, deliveryDate *time.Time) error {
	order, ok := r.store.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.Status = status
	if deliveryDate != nil {
		d := *deliveryDate
		order.DeliveryDate = &d
	}

	return nil
}

func (r *memOrderRepo) Update(_ context.Context, order *entity.Order) error {
	if _, ok := r.store.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	r.store.orders[order.ID] = cloneOrder(order)

	return nil
}

func (r *memOrderRepo) DeleteItems(_ context.Context, orderID uuid.UUID) error {
	order, ok := r.store.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.Items = nil

	return nil
}

func (r *memOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(r.store.orders, id)

	return nil
}

// --- transactions ---

type memTxnRepo struct{ store *memStore }

func (r *memTxnRepo) Create(_ context.Context, txn *entity.Transaction) error {
	r.store.txns[txn.ID] = cloneTransaction(txn)

	return nil
}

func (r *memTxnRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, ok := r.store.txns[id]
	if !ok {
		return nil, repository.ErrTransactionNotFound
	}

	return cloneTransaction(txn), nil
}

func (r *memTxnRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*entity.Transaction, error) {
	for _, txn := range r.store.txns {
		if txn.OrderID == orderID {
			return cloneTransaction(txn), nil
		}
	}

	return nil, repository.ErrTransactionNotFound
}

func (r *memTxnRepo) List(_ context.Context) ([]*entity.Transaction, error) {
	var txns []*entity.Transaction
	for _, txn := range r.store.txns {
		txns = append(txns, cloneTransaction(txn))
	}
	sort.Slice(txns, func(i, j int) bool { return txns[i].CreatedAt.After(txns[j].CreatedAt) })

	return txns, nil
}

func (r *memTxnRepo) DeleteByOrderID(_ context.Context, orderID uuid.UUID) error {
	for id, txn := range r.store.txns {
		if txn.OrderID == orderID {
			delete(r.store.txns, id)
		}
	}

	return nil
}

// --- reviews ---

type memReviewRepo struct{ store *memStore }

func (r *memReviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.store.reviews[review.ID] = cloneReview(review)

	return nil
}

func (r *memReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	review, ok := r.store.reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}

	return cloneReview(review), nil
}

func (r *memReviewRepo) ListByProductID(_ context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	var reviews []*entity.Review
	for _, review := range r.store.reviews {
		if review.ProductID == productID {
			reviews = append(reviews, cloneReview(review))
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })

	return reviews, nil
}

func (r *memReviewRepo) ListByBuyerID(_ context.Context, buyerID uuid.UUID) ([]*entity.Review, error) {
	var reviews []*entity.Review
	for _, review := range r.store.reviews {
		if review.BuyerID == buyerID {
			reviews = append(reviews, cloneReview(review))
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })

	return reviews, nil
}

func (r *memReviewRepo) AverageRatingByProductID(_ context.Context, productID uuid.UUID) (float64, error) {
	var (
		sum   float64
		count int
	)
	for _, review := range r.store.reviews {
		if review.ProductID == productID {
			sum += float64(review.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}

	return sum / float64(count), nil
}

func (r *memReviewRepo) Update(_ context.Context, review *entity.Review) error {
	if _, ok := r.store.reviews[review.ID]; !ok {
		return repository.ErrReviewNotFound
	}
	r.store.reviews[review.ID] = cloneReview(review)

	return nil
}

func (r *memReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.reviews[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(r.store.reviews, id)

	return nil
}

func (r *memReviewRepo) DeleteByProductID(_ context.Context, productID uuid.UUID) error {
	for id, review := range r.store.reviews {
		if review.ProductID == productID {
			delete(r.store.reviews, id)
		}
	}

	return nil
}

func (r *memReviewRepo) DeleteByBuyerID(_ context.Context, buyerID uuid.UUID) error {
	for id, review := range r.store.reviews {
		if review.BuyerID == buyerID {
			delete(r.store.reviews, id)
		}
	}

	return nil
}

// --- messages ---

type memMessageRepo struct{ store *memStore }

func (r *memMessageRepo) Create(_ context.Context, message *entity.Message) error {
	r.store.messages[message.ID] = cloneMessage(message)

	return nil
}

func (r *memMessageRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Message, error) {
	message, ok := r.store.messages[id]
	if !ok {
		return nil, repository.ErrMessageNotFound
	}

	return cloneMessage(message), nil
}

func (r *memMessageRepo) ListConversation(_ context.Context, userA, userB uuid.UUID) ([]*entity.Message, error) {
	var messages []*entity.Message
	for _, message := range r.store.messages {
		between := (message.SenderID == userA && message.RecipientID == userB) ||
			(message.SenderID == userB && message.RecipientID == userA)
		if between {
			messages = append(messages, cloneMessage(message))
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].SentAt.Before(messages[j].SentAt) })

	return messages, nil
}

func (r *memMessageRepo) ListByRecipientID(_ context.Context, recipientID uuid.UUID) ([]*entity.Message, error) {
	var messages []*entity.Message
	for _, message := range r.store.messages {
		if message.RecipientID == recipientID {
			messages = append(messages, cloneMessage(message))
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].SentAt.After(messages[j].SentAt) })

	return messages, nil
}

func (r *memMessageRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	message, ok := r.store.messages[id]
	if !ok {
		return repository.ErrMessageNotFound
	}
	message.Read = true

	return nil
}

func (r *memMessageRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	for id, message := range r.store.messages {
		if message.SenderID == userID || message.RecipientID == userID {
			delete(r.store.messages, id)
		}
	}

	return nil
}
