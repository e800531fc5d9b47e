package repository

import (
	"context"
	"maps"
	"sort"
	"sync"

	"product-app/internal/data/entity"

	"github.com/google/uuid"
)

// MemoryStore keeps every record in process memory. Records are copied on the
// way in and out so callers never share state with the store.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]entity.User
	authTokens map[uuid.UUID]entity.AuthToken
	products   map[uuid.UUID]entity.Product
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[uuid.UUID]entity.User),
		authTokens: make(map[uuid.UUID]entity.AuthToken),
		products:   make(map[uuid.UUID]entity.Product),
	}
}

func (s *MemoryStore) Users() UserRepository           { return memoryUsers{s} }
func (s *MemoryStore) AuthTokens() AuthTokenRepository { return memoryAuthTokens{s} }
func (s *MemoryStore) Products() ProductRepository     { return memoryProducts{s} }

type memoryUsers struct{ s *MemoryStore }

func (m memoryUsers) CreateIfAbsent(_ context.Context, user *entity.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.users[user.ID]; ok {
		return ErrAlreadyExists
	}
	for _, u := range m.s.users {
		if u.Username == user.Username {
			return ErrAlreadyExists
		}
	}
	m.s.users[user.ID] = *user
	return nil
}

func (m memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	u, ok := m.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m memoryUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return m.find(func(u entity.User) bool { return u.Username == username }), nil
}

func (m memoryUsers) FindByPhoneNumber(_ context.Context, phoneNumber string) (*entity.User, error) {
	return m.find(func(u entity.User) bool { return u.PhoneNumber == phoneNumber }), nil
}

func (m memoryUsers) find(match func(entity.User) bool) *entity.User {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	for _, u := range m.s.users {
		if match(u) {
			found := u
			return &found
		}
	}
	return nil
}

type memoryAuthTokens struct{ s *MemoryStore }

func (m memoryAuthTokens) Create(_ context.Context, token *entity.AuthToken) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.authTokens[token.ID]; ok {
		return ErrAlreadyExists
	}
	m.s.authTokens[token.ID] = *token
	return nil
}

type memoryProducts struct{ s *MemoryStore }

func (m memoryProducts) CreateIfAbsent(_ context.Context, product *entity.Product) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.products[product.ID]; ok {
		return ErrAlreadyExists
	}
	m.s.products[product.ID] = copyProduct(*product)
	return nil
}

func (m memoryProducts) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	p, ok := m.s.products[id]
	if !ok {
		return nil, nil
	}
	found := copyProduct(p)
	return &found, nil
}

func (m memoryProducts) FindAll(_ context.Context) ([]*entity.Product, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	products := make([]*entity.Product, 0, len(m.s.products))
	for _, p := range m.s.products {
		found := copyProduct(p)
		products = append(products, &found)
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedOn.Before(products[j].CreatedOn)
	})
	return products, nil
}

func (m memoryProducts) UpdateImageURL(_ context.Context, id uuid.UUID, imageURL string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	p, ok := m.s.products[id]
	if !ok {
		return ErrNotFound
	}
	p.ImageURL = &imageURL
	m.s.products[id] = p
	return nil
}

func copyProduct(p entity.Product) entity.Product {
	p.Attributes = maps.Clone(p.Attributes)
	if p.ImageURL != nil {
		url := *p.ImageURL
		p.ImageURL = &url
	}
	return p
}
