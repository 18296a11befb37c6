package mocks

import (
	"context"
	"sync"

	"cinema-pos/internal/sale"

	"github.com/google/uuid"
)

// InMemoryCartRepo keeps carts in a map. Stored carts are deep copies so a
// caller mutating its cart without saving does not leak into the store.
// A non-nil SaveErr makes every Save fail.
type InMemoryCartRepo struct {
	mu      sync.Mutex
	carts   map[uuid.UUID]sale.Cart
	Saves   int
	SaveErr error
}

func NewInMemoryCartRepo() *InMemoryCartRepo {
	return &InMemoryCartRepo{carts: make(map[uuid.UUID]sale.Cart)}
}

func (r *InMemoryCartRepo) Save(_ context.Context, cart *sale.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.carts[cart.ID] = cloneCart(cart)
	r.Saves++
	return nil
}

func (r *InMemoryCartRepo) FindByID(_ context.Context, id uuid.UUID) (*sale.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[id]
	if !ok {
		return nil, nil
	}
	clone := cloneCart(&cart)
	return &clone, nil
}

func (r *InMemoryCartRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, id)
	return nil
}

func cloneCart(cart *sale.Cart) sale.Cart {
	clone := *cart
	clone.Tickets = append([]sale.TicketLine{}, cart.Tickets...)
	clone.Snacks = append([]sale.SnackLine{}, cart.Snacks...)
	clone.Stock = make(map[uuid.UUID]int, len(cart.Stock))
	for id, stock := range cart.Stock {
		clone.Stock[id] = stock
	}
	return clone
}
