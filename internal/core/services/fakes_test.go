package services

import (
	"context"
	"strings"
	"sync"

	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/models"
	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/repositories"
	"github.com/anietieasuquo/vending-machine/internal/core/domain"
)

// fakeStore is an in-memory datastore backing the fake repositories. It
// mirrors the persistence layer's contracts: lookups return (nil, nil) on
// absence, updates compare-and-swap on Version, and the transaction
// manager restores a snapshot when the callback fails.
type fakeStore struct {
	mu        sync.Mutex
	users     map[uint]*models.User
	products  map[uint]*models.Product
	purchases map[uint]*models.Purchase
	roles     map[uint]*models.Role
	machines  map[uint]*models.Machine
	nextID    uint

	// Optional hooks for simulating concurrent writers and storage
	// failures mid-transaction.
	beforeUserUpdate     func(s *fakeStore)
	beforeProductUpdate  func(s *fakeStore)
	beforePurchaseUpdate func(s *fakeStore)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[uint]*models.User),
		products:  make(map[uint]*models.Product),
		purchases: make(map[uint]*models.Purchase),
		roles:     make(map[uint]*models.Role),
		machines:  make(map[uint]*models.Machine),
	}
}

func (s *fakeStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) addUser(u models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	}
	if u.Version == 0 {
		u.Version = 1
	}
	s.users[u.ID] = &u
	copied := u
	return &copied
}

func (s *fakeStore) addProduct(p models.Product) *models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	if p.Version == 0 {
		p.Version = 1
	}
	s.products[p.ID] = &p
	copied := p
	return &copied
}

func (s *fakeStore) addRole(r models.Role) *models.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.id()
	}
	s.roles[r.ID] = &r
	copied := r
	return &copied
}

func (s *fakeStore) addMachine(m models.Machine) *models.Machine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == 0 {
		m.ID = s.id()
	}
	s.machines[m.ID] = &m
	copied := m
	return &copied
}

func (s *fakeStore) userByID(id uint) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	copied := *u
	return &copied
}

func (s *fakeStore) productByID(id uint) *models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	copied := *p
	return &copied
}

func (s *fakeStore) purchaseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.purchases)
}

// snapshot deep-copies the transactional tables so a failed transaction
// can roll back to them.
func (s *fakeStore) snapshot() (map[uint]*models.User, map[uint]*models.Product, map[uint]*models.Purchase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make(map[uint]*models.User, len(s.users))
	for id, u := range s.users {
		copied := *u
		users[id] = &copied
	}
	products := make(map[uint]*models.Product, len(s.products))
	for id, p := range s.products {
		copied := *p
		products[id] = &copied
	}
	purchases := make(map[uint]*models.Purchase, len(s.purchases))
	for id, p := range s.purchases {
		copied := *p
		purchases[id] = &copied
	}
	return users, products, purchases
}

func (s *fakeStore) restore(users map[uint]*models.User, products map[uint]*models.Product, purchases map[uint]*models.Purchase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
	s.products = products
	s.purchases = purchases
}

// fakeUserRepository implements repositories.UserRepository over fakeStore.
type fakeUserRepository struct {
	store *fakeStore
}

func (r *fakeUserRepository) Create(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Username == user.Username {
			return domain.Duplicate("user already exists")
		}
	}
	user.ID = r.store.id()
	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return r.store.userByID(id), nil
}

func (r *fakeUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	users := make([]*models.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}

func (r *fakeUserRepository) Update(ctx context.Context, user *models.User) error {
	if hook := r.store.beforeUserUpdate; hook != nil {
		r.store.beforeUserUpdate = nil
		hook(r.store)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.users[user.ID]
	if !ok || stored.Version != user.Version {
		return domain.Conflict("user was modified concurrently")
	}
	user.Version++
	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepository) Delete(ctx context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.users, id)
	return nil
}

// fakeProductRepository implements repositories.ProductRepository.
type fakeProductRepository struct {
	store *fakeStore
}

func (r *fakeProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	product.ID = r.store.id()
	copied := *product
	r.store.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	return r.store.productByID(id), nil
}

func (r *fakeProductRepository) FindBySellerAndName(ctx context.Context, sellerID uint, name string) (*models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.SellerID == sellerID && p.ProductName == name {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepository) FindAll(ctx context.Context) ([]*models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	products := make([]*models.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		copied := *p
		products = append(products, &copied)
	}
	return products, nil
}

func (r *fakeProductRepository) Update(ctx context.Context, product *models.Product) error {
	if hook := r.store.beforeProductUpdate; hook != nil {
		r.store.beforeProductUpdate = nil
		hook(r.store)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.products[product.ID]
	if !ok || stored.Version != product.Version {
		return domain.Conflict("product was modified concurrently")
	}
	product.Version++
	copied := *product
	r.store.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepository) Delete(ctx context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.products, id)
	return nil
}

// fakePurchaseRepository implements repositories.PurchaseRepository.
type fakePurchaseRepository struct {
	store *fakeStore
}

func (r *fakePurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	purchase.ID = r.store.id()
	copied := *purchase
	r.store.purchases[purchase.ID] = &copied
	return nil
}

func (r *fakePurchaseRepository) FindByID(ctx context.Context, id uint) (*models.Purchase, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.purchases[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *fakePurchaseRepository) FindAll(ctx context.Context, filter *repositories.PurchaseFilter) ([]*models.Purchase, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	purchases := make([]*models.Purchase, 0, len(r.store.purchases))
	for _, p := range r.store.purchases {
		if filter != nil {
			if filter.ProductID != nil && p.ProductID != *filter.ProductID {
				continue
			}
			if filter.BuyerID != nil && p.BuyerID != *filter.BuyerID {
				continue
			}
			if filter.Status != nil && !strings.EqualFold(p.Status, *filter.Status) {
				continue
			}
		}
		copied := *p
		purchases = append(purchases, &copied)
	}
	return purchases, nil
}

func (r *fakePurchaseRepository) Update(ctx context.Context, purchase *models.Purchase) error {
	if hook := r.store.beforePurchaseUpdate; hook != nil {
		r.store.beforePurchaseUpdate = nil
		hook(r.store)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.purchases[purchase.ID]
	if !ok || stored.Version != purchase.Version {
		return domain.Conflict("purchase was modified concurrently")
	}
	purchase.Version++
	copied := *purchase
	r.store.purchases[purchase.ID] = &copied
	return nil
}

// fakeRoleRepository implements repositories.RoleRepository.
type fakeRoleRepository struct {
	store *fakeStore
}

func (r *fakeRoleRepository) Create(ctx context.Context, role *models.Role) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	role.ID = r.store.id()
	copied := *role
	r.store.roles[role.ID] = &copied
	return nil
}

func (r *fakeRoleRepository) FindByID(ctx context.Context, id uint) (*models.Role, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	role, ok := r.store.roles[id]
	if !ok {
		return nil, nil
	}
	copied := *role
	return &copied, nil
}

func (r *fakeRoleRepository) FindByName(ctx context.Context, name string) (*models.Role, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, role := range r.store.roles {
		if strings.EqualFold(role.Name, name) {
			copied := *role
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRoleRepository) FindAll(ctx context.Context) ([]*models.Role, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	roles := make([]*models.Role, 0, len(r.store.roles))
	for _, role := range r.store.roles {
		copied := *role
		roles = append(roles, &copied)
	}
	return roles, nil
}

// fakeMachineRepository implements repositories.MachineRepository.
type fakeMachineRepository struct {
	store *fakeStore
}

func (r *fakeMachineRepository) Create(ctx context.Context, machine *models.Machine) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	machine.ID = r.store.id()
	copied := *machine
	r.store.machines[machine.ID] = &copied
	return nil
}

func (r *fakeMachineRepository) FindByName(ctx context.Context, name string) (*models.Machine, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.machines {
		if m.Name == name {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

// fakeTxRepositories hands out repositories bound to the same store; the
// fake transaction manager provides atomicity around them.
type fakeTxRepositories struct {
	store *fakeStore
}

func (t *fakeTxRepositories) Users() repositories.UserRepository {
	return &fakeUserRepository{store: t.store}
}

func (t *fakeTxRepositories) Products() repositories.ProductRepository {
	return &fakeProductRepository{store: t.store}
}

func (t *fakeTxRepositories) Purchases() repositories.PurchaseRepository {
	return &fakePurchaseRepository{store: t.store}
}

// fakeTransactionManager snapshots the store before running the callback
// and restores the snapshot when the callback errors, mimicking rollback.
type fakeTransactionManager struct {
	store *fakeStore
}

func (m *fakeTransactionManager) RunInTransaction(ctx context.Context, fn func(tx repositories.TxRepositories) error) error {
	users, products, purchases := m.store.snapshot()
	if err := fn(&fakeTxRepositories{store: m.store}); err != nil {
		m.store.restore(users, products, purchases)
		return err
	}
	return nil
}
