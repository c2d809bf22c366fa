package store

import (
	"context"
	"errors"
	"sync"

	"github.com/mytheresa/storefront/models"
)

// ErrCartClosed is returned by operations on a closed cart store.
var ErrCartClosed = errors.New("cart closed")

// cartCommand computes the next cart from the current one. On error the cart is kept.
type cartCommand struct {
	apply func(models.Cart) (models.Cart, error)
	reply chan cartResult
}

type cartResult struct {
	cart models.Cart
	err  error
}

// CartStore owns one cart. A single goroutine applies every command in arrival order,
// so the cart never has more than one writer and needs no lock.
type CartStore struct {
	commands  chan cartCommand
	quit      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

func NewCartStore() *CartStore {
	s := &CartStore{
		commands: make(chan cartCommand),
		quit:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *CartStore) loop() {
	defer close(s.stopped)
	cart := models.NewCart()
	for {
		select {
		case cmd := <-s.commands:
			next, err := cmd.apply(cart)
			if err == nil {
				cart = next
			}
			cmd.reply <- cartResult{cart: cart, err: err}
		case <-s.quit:
			return
		}
	}
}

// do hands fn to the owner goroutine and waits for the resulting cart.
func (s *CartStore) do(ctx context.Context, fn func(models.Cart) (models.Cart, error)) (models.Cart, error) {
	reply := make(chan cartResult, 1)
	select {
	case s.commands <- cartCommand{apply: fn, reply: reply}:
	case <-s.stopped:
		return models.Cart{}, ErrCartClosed
	case <-ctx.Done():
		return models.Cart{}, ctx.Err()
	}

	select {
	case res := <-reply:
		return res.cart, res.err
	case <-ctx.Done():
		return models.Cart{}, ctx.Err()
	}
}

// Add puts one more unit of p in the cart and returns the updated cart.
func (s *CartStore) Add(ctx context.Context, p models.Product) (models.Cart, error) {
	return s.do(ctx, func(c models.Cart) (models.Cart, error) {
		return c.AddOrIncrement(p), nil
	})
}

// SetQuantity overwrites the quantity of line index and stores the result.
func (s *CartStore) SetQuantity(ctx context.Context, index, quantity int) (models.Cart, error) {
	return s.do(ctx, func(c models.Cart) (models.Cart, error) {
		return c.SetQuantity(index, quantity)
	})
}

// Cart returns the current cart.
func (s *CartStore) Cart(ctx context.Context) (models.Cart, error) {
	return s.do(ctx, func(c models.Cart) (models.Cart, error) {
		return c, nil
	})
}

// Close stops the owner goroutine. The cart is discarded.
func (s *CartStore) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.stopped
}
