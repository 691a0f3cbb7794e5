package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
)

// CartService owns the cart lines and persists them after every mutation.
//
// Validation failures are returned to the caller and kept as the store
// error. Persistence failures are never returned from a mutation: the
// in-memory change stands and the failure is exposed through LastError.
type CartService struct {
	mu          sync.Mutex
	repo        repository.CartRepository
	logger      *slog.Logger
	now         func() time.Time
	cart        *domain.Cart
	lastErr     error
	initialized bool
}

// NewCartService creates a cart store over repo. Call Load before use to
// rehydrate persisted lines.
func NewCartService(repo repository.CartRepository, logger *slog.Logger, opts ...Option) *CartService {
	cfg := newSettings(opts)
	return &CartService{
		repo:   repo,
		logger: logger,
		now:    cfg.now,
		cart:   &domain.Cart{Items: []domain.CartItem{}},
	}
}

// Load rehydrates the cart. A stored value that is not an array is dropped
// in favour of an empty cart. Any other failure leaves the cart empty and
// is returned as well as recorded.
func (s *CartService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.repo.Load(ctx)
	s.initialized = true
	switch {
	case err == nil:
		s.cart = cart
		s.lastErr = nil
	case errors.Is(err, domain.ErrMalformedState):
		s.logger.WarnContext(ctx, "discarding malformed cart", slog.String("error", err.Error()))
		s.cart = &domain.Cart{Items: []domain.CartItem{}}
		s.lastErr = nil
	default:
		s.logger.ErrorContext(ctx, "failed to load cart", slog.String("error", err.Error()))
		s.cart = &domain.Cart{Items: []domain.CartItem{}}
		s.lastErr = domain.PersistenceFailure(domain.MsgCartLoadFailed, err)
	}
	recordOperation(storeCart, "load", s.lastErr)

	if s.cart.Items == nil {
		s.cart.Items = []domain.CartItem{}
	}
	return s.lastErr
}

// AddToCart adds quantity units of p. A new line may hold at most
// domain.MaxQuantity units; adding to an existing line that would pass the
// limit is rejected and the line is left unchanged.
func (s *CartService) AddToCart(ctx context.Context, p domain.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		return s.reject("add", domain.InvalidQuantity())
	}

	now := s.now()
	idx := s.cart.FindItemIndex(p.ID, p.CategoryID)
	if idx < 0 {
		if quantity > domain.MaxQuantity {
			return s.reject("add", domain.QuantityExceeded(domain.MaxQuantity))
		}
		s.cart.Items = append(s.cart.Items, domain.NewCartItem(p, quantity, now))
	} else {
		item := &s.cart.Items[idx]
		if item.Quantity+quantity > domain.MaxQuantity {
			return s.reject("add", domain.QuantityExceeded(domain.MaxQuantity))
		}
		item.Quantity += quantity
		item.UpdatedAt = now
	}

	s.commit(ctx, "add")
	return nil
}

// UpdateQuantity replaces the quantity of a line. A missing line is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, id, categoryID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		return s.reject("update", domain.InvalidQuantity())
	}
	if quantity > domain.MaxQuantity {
		return s.reject("update", domain.QuantityExceeded(domain.MaxQuantity))
	}

	idx := s.cart.FindItemIndex(id, categoryID)
	if idx < 0 {
		s.lastErr = nil
		recordNoop(storeCart, "update")
		return nil
	}
	s.cart.Items[idx].Quantity = quantity
	s.cart.Items[idx].UpdatedAt = s.now()

	s.commit(ctx, "update")
	return nil
}

// RemoveFromCart deletes a line. A missing line is a no-op.
func (s *CartService) RemoveFromCart(ctx context.Context, id, categoryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.cart.FindItemIndex(id, categoryID)
	if idx < 0 {
		s.lastErr = nil
		recordNoop(storeCart, "remove")
		return
	}
	s.cart.Items = append(s.cart.Items[:idx], s.cart.Items[idx+1:]...)

	s.commit(ctx, "remove")
}

// ClearCart empties the cart.
func (s *CartService) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Items = []domain.CartItem{}
	s.commit(ctx, "clear")
}

// MergeCarts folds incoming lines into the cart. Lines without an id or a
// category are skipped. Matching lines are summed and bounded to
// [1, domain.MaxQuantity]; a non-positive incoming quantity adds nothing. New
// lines are appended with their quantity bounded to [1, domain.MaxQuantity].
func (s *CartService) MergeCarts(ctx context.Context, incoming []domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, in := range incoming {
		if in.ID == "" || in.CategoryID == "" {
			s.logger.DebugContext(ctx, "skipping cart line without identity",
				slog.String("id", in.ID),
				slog.String("category_id", in.CategoryID),
			)
			continue
		}

		idx := s.cart.FindItemIndex(in.ID, in.CategoryID)
		if idx >= 0 {
			item := &s.cart.Items[idx]
			item.Quantity = domain.ClampQuantity(item.Quantity + max(in.Quantity, 0))
			item.UpdatedAt = now
			continue
		}

		in.Quantity = domain.ClampQuantity(in.Quantity)
		if in.AddedAt.IsZero() {
			in.AddedAt = now
		}
		in.UpdatedAt = now
		s.cart.Items = append(s.cart.Items, in)
	}

	s.commit(ctx, "merge")
}

// Items returns a copy of the cart lines in insertion order.
func (s *CartService) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// IsInCart reports whether a line with the key exists.
func (s *CartService) IsInCart(id, categoryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.FindItemIndex(id, categoryID) >= 0
}

// GetCartItem returns the line with the key.
func (s *CartService) GetCartItem(id, categoryID string) (domain.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.cart.FindItemIndex(id, categoryID)
	if idx < 0 {
		return domain.CartItem{}, false
	}
	return s.cart.Items[idx], true
}

// GetCartCount returns the number of units across all lines.
func (s *CartService) GetCartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// GetCartTotal returns the sum of unit price times quantity.
func (s *CartService) GetCartTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalAmount()
}

// GetCartSummary returns count, total and formatted total.
func (s *CartService) GetCartSummary() domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Summary()
}

// LastError returns the error recorded by the most recent operation, if any.
func (s *CartService) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Initialized reports whether Load has completed.
func (s *CartService) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

func (s *CartService) reject(operation string, err error) error {
	s.lastErr = err
	recordOperation(storeCart, operation, err)
	return err
}

// commit persists the whole cart. Callers hold s.mu.
func (s *CartService) commit(ctx context.Context, operation string) {
	s.lastErr = nil
	if err := s.repo.Save(ctx, s.cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to save cart",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		s.lastErr = domain.PersistenceFailure(domain.MsgCartSaveFailed, err)
	}
	recordOperation(storeCart, operation, s.lastErr)
}
