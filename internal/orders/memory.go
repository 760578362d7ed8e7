package orders

import (
	"context"
	"sync"

	"github.com/ariefcatur/go-shop-backend/internal/auth"
	"github.com/ariefcatur/go-shop-backend/internal/catalog"
)

// MemoryStore is a map-backed Store for tests and local runs. It also
// implements the catalog and auth store contracts so one instance can back
// the whole stack. Transactions hold the store mutex end to end, which gives
// the same serialization guarantee the row locks give in Postgres, and a
// snapshot is restored on error for all-or-nothing semantics.
type MemoryStore struct {
	mu       sync.Mutex
	products map[string]*catalog.Product
	orders   map[string]*Order
	users    map[string]*auth.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: map[string]*catalog.Product{},
		orders:   map[string]*Order{},
		users:    map[string]*auth.User{},
	}
}

func (m *MemoryStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapProducts := make(map[string]*catalog.Product, len(m.products))
	for id, p := range m.products {
		cp := *p
		snapProducts[id] = &cp
	}
	snapOrders := make(map[string]*Order, len(m.orders))
	for id, o := range m.orders {
		snapOrders[id] = copyOrder(o)
	}

	if err := fn(&memTx{store: m}); err != nil {
		m.products = snapProducts
		m.orders = snapOrders
		return err
	}
	return nil
}

type memTx struct{ store *MemoryStore }

func (t *memTx) ProductForUpdate(ctx context.Context, id string) (*catalog.Product, error) {
	p, ok := t.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (t *memTx) SaveProduct(ctx context.Context, p *catalog.Product) error {
	cp := *p
	t.store.products[p.ID] = &cp
	return nil
}

func (t *memTx) InsertOrder(ctx context.Context, o *Order) error {
	t.store.orders[o.ID] = copyOrder(o)
	return nil
}

func (m *MemoryStore) OrderByID(ctx context.Context, id string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (m *MemoryStore) ProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryStore) UserByID(ctx context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// catalog.Store

func (m *MemoryStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) InsertProduct(ctx context.Context, p *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *MemoryStore) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]catalog.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

// auth.UserStore

func (m *MemoryStore) UserByUsername(ctx context.Context, username string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) InsertUser(ctx context.Context, u *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func copyOrder(o *Order) *Order {
	cp := *o
	cp.Items = append([]OrderItem(nil), o.Items...)
	return &cp
}
