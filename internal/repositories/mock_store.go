package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"bistro/internal/models"

	"github.com/google/uuid"
)

// MockStore is an in-memory store backing the Mock*Repository types. A
// single lock covers every collection so payment finalization is atomic.
type MockStore struct {
	mu       sync.RWMutex
	users    []models.User
	menu     []models.MenuItem
	reviews  []models.Review
	carts    []models.CartItem
	payments []models.Payment
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{}
}

// SeedReviews replaces the stored reviews; the service itself never writes them.
func (s *MockStore) SeedReviews(reviews []models.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reviews = make([]models.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		s.reviews = append(s.reviews, r)
	}
}

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct{ s *MockStore }

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository(s *MockStore) *MockUserRepository {
	return &MockUserRepository{s: s}
}

// GetAll returns every stored user.
func (r *MockUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return append(make([]models.User, 0, len(r.s.users)), r.s.users...), nil
}

// GetByEmail returns the user stored for email.
func (r *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
}

// Create stores a copy of the user, assigning an ID when empty.
func (r *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with email %s: %w", user.Email, ErrDuplicate)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.s.users = append(r.s.users, *user)
	return nil
}

// Delete removes the user with id.
func (r *MockUserRepository) Delete(ctx context.Context, id string) (int64, error) {
	if err := checkUUID(id); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, u := range r.s.users {
		if u.ID == id {
			r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// SetRole assigns role to the user with id.
func (r *MockUserRepository) SetRole(ctx context.Context, id string, role string) (models.UpdateResult, error) {
	if err := checkUUID(id); err != nil {
		return models.UpdateResult{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.users {
		if r.s.users[i].ID != id {
			continue
		}
		if r.s.users[i].Role == role {
			return models.UpdateResult{MatchedCount: 1}, nil
		}
		r.s.users[i].Role = role
		return models.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	return models.UpdateResult{}, nil
}

// Count returns the number of stored users.
func (r *MockUserRepository) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.s.users)), nil
}

// MockMenuRepository is an in-memory implementation of MenuRepository.
type MockMenuRepository struct{ s *MockStore }

// NewMockMenuRepository creates a new instance of MockMenuRepository.
func NewMockMenuRepository(s *MockStore) *MockMenuRepository {
	return &MockMenuRepository{s: s}
}

// GetAll returns every stored menu item.
func (r *MockMenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return append(make([]models.MenuItem, 0, len(r.s.menu)), r.s.menu...), nil
}

// GetByID returns the menu item with id.
func (r *MockMenuRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if item, ok := r.s.menuItem(id); ok {
		return &item, nil
	}
	return nil, fmt.Errorf("menu item with ID %s: %w", id, ErrNotFound)
}

// Create stores a copy of the menu item, assigning an ID when empty.
func (r *MockMenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.s.menu = append(r.s.menu, *item)
	return nil
}

// Update replaces the stored menu item with the same ID.
func (r *MockMenuRepository) Update(ctx context.Context, item *models.MenuItem) (models.UpdateResult, error) {
	if err := checkUUID(item.ID); err != nil {
		return models.UpdateResult{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.menu {
		if r.s.menu[i].ID != item.ID {
			continue
		}
		if r.s.menu[i] == *item {
			return models.UpdateResult{MatchedCount: 1}, nil
		}
		r.s.menu[i] = *item
		return models.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	return models.UpdateResult{}, nil
}

// Delete removes the menu item with id.
func (r *MockMenuRepository) Delete(ctx context.Context, id string) (int64, error) {
	if err := checkUUID(id); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, m := range r.s.menu {
		if m.ID == id {
			r.s.menu = append(r.s.menu[:i], r.s.menu[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// Count returns the number of stored menu items.
func (r *MockMenuRepository) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.s.menu)), nil
}

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct{ s *MockStore }

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository(s *MockStore) *MockReviewRepository {
	return &MockReviewRepository{s: s}
}

// GetAll returns every stored review.
func (r *MockReviewRepository) GetAll(ctx context.Context) ([]models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return append(make([]models.Review, 0, len(r.s.reviews)), r.s.reviews...), nil
}

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct{ s *MockStore }

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository(s *MockStore) *MockCartRepository {
	return &MockCartRepository{s: s}
}

// GetByEmail returns the cart entries stored for email.
func (r *MockCartRepository) GetByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]models.CartItem, 0)
	for _, c := range r.s.carts {
		if c.Email == email {
			items = append(items, c)
		}
	}
	return items, nil
}

// Create stores a copy of the cart entry, assigning an ID when empty.
func (r *MockCartRepository) Create(ctx context.Context, item *models.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.s.carts = append(r.s.carts, *item)
	return nil
}

// Delete removes the cart entry with id.
func (r *MockCartRepository) Delete(ctx context.Context, id string) (int64, error) {
	if err := checkUUID(id); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, c := range r.s.carts {
		if c.ID == id {
			r.s.carts = append(r.s.carts[:i], r.s.carts[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// MockPaymentRepository is an in-memory implementation of PaymentRepository.
type MockPaymentRepository struct{ s *MockStore }

// NewMockPaymentRepository creates a new instance of MockPaymentRepository.
func NewMockPaymentRepository(s *MockStore) *MockPaymentRepository {
	return &MockPaymentRepository{s: s}
}

// GetByEmail returns the payments made by email.
func (r *MockPaymentRepository) GetByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	payments := make([]models.Payment, 0)
	for _, p := range r.s.payments {
		if p.Email == email {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

// CreateAndClearCart stores the payment and removes its cart entries under one lock.
func (r *MockPaymentRepository) CreateAndClearCart(ctx context.Context, payment *models.Payment) (int64, error) {
	if err := checkUUIDs(payment.CartIDs); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	r.s.payments = append(r.s.payments, *payment)

	remove := make(map[string]struct{}, len(payment.CartIDs))
	for _, id := range payment.CartIDs {
		remove[id] = struct{}{}
	}
	kept := r.s.carts[:0]
	var deleted int64
	for _, c := range r.s.carts {
		if _, ok := remove[c.ID]; ok {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	r.s.carts = kept
	return deleted, nil
}

// Count returns the number of stored payments.
func (r *MockPaymentRepository) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.s.payments)), nil
}

// TotalRevenue sums price over all payments.
func (r *MockPaymentRepository) TotalRevenue(ctx context.Context) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var total float64
	for _, p := range r.s.payments {
		total += p.Price
	}
	return total, nil
}

// OrderStats groups the menu items listed on payments by category.
func (r *MockPaymentRepository) OrderStats(ctx context.Context) ([]models.CategoryStat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byCategory := make(map[string]*models.CategoryStat)
	for _, p := range r.s.payments {
		for _, id := range p.MenuItemIDs {
			item, ok := r.s.menuItem(id)
			if !ok {
				continue
			}
			stat, ok := byCategory[item.Category]
			if !ok {
				stat = &models.CategoryStat{Category: item.Category}
				byCategory[item.Category] = stat
			}
			stat.Quantity++
			stat.Revenue += item.Price
		}
	}
	stats := make([]models.CategoryStat, 0, len(byCategory))
	for _, stat := range byCategory {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Category < stats[j].Category })
	return stats, nil
}

// menuItem must be called with s.mu held.
func (s *MockStore) menuItem(id string) (models.MenuItem, bool) {
	for _, m := range s.menu {
		if m.ID == id {
			return m, true
		}
	}
	return models.MenuItem{}, false
}
