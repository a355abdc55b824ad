package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

type fakeOrderRepo struct {
	orders    map[string]*domain.Order
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *fakeOrderRepo) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := *order
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.orders[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeOrderRepo) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID '%s' not found", id)
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID '%s' not found", id)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID '%s' not found", id)
	}
	order.PaymentStatus = status
	order.UpdatedAt = time.Now()
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) ListOrdersByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	var result []domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (r *fakeOrderRepo) ListOrdersByMerchantID(ctx context.Context, merchantID string, limit, offset int) ([]domain.Order, error) {
	var result []domain.Order
	for _, order := range r.orders {
		if order.MerchantID == merchantID {
			result = append(result, *order)
		}
	}
	return result, nil
}

type fakeMerchantRepo struct {
	bySlug  map[string]*domain.Merchant
	byOwner map[int64]*domain.Merchant
}

func newFakeMerchantRepo() *fakeMerchantRepo {
	return &fakeMerchantRepo{
		bySlug:  make(map[string]*domain.Merchant),
		byOwner: make(map[int64]*domain.Merchant),
	}
}

func (r *fakeMerchantRepo) add(m *domain.Merchant) {
	r.bySlug[m.Slug] = m
	if m.OwnerID > 0 {
		r.byOwner[m.OwnerID] = m
	}
}

// CreateMerchant persists the entity as handed over; like the real
// repository, it never assigns an id on the caller's behalf.
func (r *fakeMerchantRepo) CreateMerchant(ctx context.Context, merchant *domain.Merchant) (*domain.Merchant, error) {
	if _, exists := r.bySlug[merchant.Slug]; exists {
		return nil, errors.New("merchant with this slug already exists")
	}
	stored := *merchant
	r.add(&stored)
	return &stored, nil
}

func (r *fakeMerchantRepo) GetMerchantByID(ctx context.Context, id string) (*domain.Merchant, error) {
	for _, m := range r.bySlug {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("merchant with ID '%s' not found", id)
}

func (r *fakeMerchantRepo) GetMerchantBySlug(ctx context.Context, slug string) (*domain.Merchant, error) {
	m, ok := r.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("merchant with slug '%s' not found", slug)
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMerchantRepo) GetMerchantByOwnerID(ctx context.Context, ownerID int64) (*domain.Merchant, error) {
	m, ok := r.byOwner[ownerID]
	if !ok {
		return nil, fmt.Errorf("merchant for owner %d not found", ownerID)
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMerchantRepo) UpdateMerchant(ctx context.Context, id string, updates map[string]interface{}) (*domain.Merchant, error) {
	for _, m := range r.bySlug {
		if m.ID == id {
			if v, ok := updates["description"].(string); ok {
				m.Description = v
			}
			if v, ok := updates["city"].(string); ok {
				m.City = v
			}
			if v, ok := updates["accepts_delivery"].(bool); ok {
				m.AcceptsDelivery = v
			}
			copied := *m
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("merchant with ID '%s' not found", id)
}

func (r *fakeMerchantRepo) ListMerchants(ctx context.Context) ([]domain.Merchant, error) {
	result := []domain.Merchant{}
	for _, m := range r.bySlug {
		result = append(result, *m)
	}
	return result, nil
}

type fakeProductRepo struct {
	products map[string]*domain.Product
	nextID   int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*domain.Product), nextID: 1}
}

// CreateProduct keeps the id the caller minted; tests that seed the repo
// directly may leave it empty and get a generated one.
func (r *fakeProductRepo) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	stored := *product
	if stored.ID == "" {
		stored.ID = fmt.Sprintf("p-%d", r.nextID)
		r.nextID++
	}
	r.products[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeProductRepo) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID '%s' not found", id)
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) UpdateProduct(ctx context.Context, id string, updates map[string]interface{}) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID '%s' not found", id)
	}
	if v, ok := updates["name"].(string); ok {
		product.Name = v
	}
	if v, ok := updates["price"].(int64); ok {
		product.Price = v
	}
	if v, ok := updates["available"].(bool); ok {
		product.Available = v
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) DeleteProduct(ctx context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID '%s' not found", id)
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) ListProductsByMerchantID(ctx context.Context, merchantID string) ([]domain.Product, error) {
	result := []domain.Product{}
	for _, p := range r.products {
		if p.MerchantID == merchantID {
			result = append(result, *p)
		}
	}
	return result, nil
}

type fakeAddressRepo struct {
	addresses map[int64]*domain.Address
	nextID    int64
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addresses: make(map[int64]*domain.Address), nextID: 1}
}

func (r *fakeAddressRepo) CreateAddress(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	stored := *address
	stored.ID = r.nextID
	r.nextID++
	r.addresses[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeAddressRepo) GetAddressByID(ctx context.Context, id int64) (*domain.Address, error) {
	address, ok := r.addresses[id]
	if !ok {
		return nil, fmt.Errorf("address with ID %d not found", id)
	}
	copied := *address
	return &copied, nil
}

func (r *fakeAddressRepo) ListAddressesByUserID(ctx context.Context, userID int64) ([]domain.Address, error) {
	result := []domain.Address{}
	for _, a := range r.addresses {
		if a.UserID == userID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeAddressRepo) UpdateAddress(ctx context.Context, id int64, updates map[string]interface{}) (*domain.Address, error) {
	address, ok := r.addresses[id]
	if !ok {
		return nil, fmt.Errorf("address with ID %d not found", id)
	}
	if v, ok := updates["street"].(string); ok {
		address.Street = v
	}
	copied := *address
	return &copied, nil
}

func (r *fakeAddressRepo) DeleteAddress(ctx context.Context, id int64) error {
	if _, ok := r.addresses[id]; !ok {
		return fmt.Errorf("address with ID %d not found", id)
	}
	delete(r.addresses, id)
	return nil
}

func (r *fakeAddressRepo) SetPrimaryAddress(ctx context.Context, userID, addressID int64) error {
	for _, a := range r.addresses {
		if a.UserID == userID {
			a.IsPrimary = a.ID == addressID
		}
	}
	return nil
}

type fakeFavoriteRepo struct {
	// favorites[userID] is the set of favorited merchant IDs.
	favorites map[int64]map[string]bool
	merchants *fakeMerchantRepo
}

func newFakeFavoriteRepo(merchants *fakeMerchantRepo) *fakeFavoriteRepo {
	return &fakeFavoriteRepo{
		favorites: make(map[int64]map[string]bool),
		merchants: merchants,
	}
}

func (r *fakeFavoriteRepo) AddFavorite(ctx context.Context, userID int64, merchantID string) error {
	if r.favorites[userID] == nil {
		r.favorites[userID] = make(map[string]bool)
	}
	r.favorites[userID][merchantID] = true
	return nil
}

func (r *fakeFavoriteRepo) RemoveFavorite(ctx context.Context, userID int64, merchantID string) error {
	delete(r.favorites[userID], merchantID)
	return nil
}

func (r *fakeFavoriteRepo) ListFavoriteMerchants(ctx context.Context, userID int64) ([]domain.Merchant, error) {
	result := []domain.Merchant{}
	for id := range r.favorites[userID] {
		m, err := r.merchants.GetMerchantByID(ctx, id)
		if err != nil {
			continue
		}
		result = append(result, *m)
	}
	return result, nil
}

func (r *fakeFavoriteRepo) IsFavorite(ctx context.Context, userID int64, merchantID string) (bool, error) {
	return r.favorites[userID][merchantID], nil
}

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[int64]*domain.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[int64]*domain.User),
		nextID:  1,
	}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, errors.New("user with this email already exists")
	}
	stored := *user
	stored.ID = r.nextID
	r.nextID++
	r.byEmail[stored.Email] = &stored
	r.byID[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user with email '%s' not found", email)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %d not found", id)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, id int64, updates map[string]interface{}) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %d not found", id)
	}
	if v, ok := updates["name"].(string); ok {
		user.Name = v
	}
	if v, ok := updates["phone"].(string); ok {
		user.Phone = v
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) SetMitra(ctx context.Context, id int64, isMitra bool) error {
	user, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("user with ID %d not found", id)
	}
	user.IsMitra = isMitra
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *fakeSessionRepo) CreateSession(ctx context.Context, session *domain.Session) error {
	r.sessions[session.Token] = session
	return nil
}

func (r *fakeSessionRepo) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	session, ok := r.sessions[token]
	if !ok {
		return nil, errors.New("invalid session token")
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, errors.New("session expired")
	}
	return session, nil
}

func (r *fakeSessionRepo) DeleteSession(ctx context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}
