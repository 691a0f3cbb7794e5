package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
)

// WishlistService owns the saved products. Persistence failures are logged
// and kept as LastError; they never fail a mutation.
type WishlistService struct {
	mu       sync.Mutex
	repo     repository.WishlistRepository
	logger   *slog.Logger
	wishlist *domain.Wishlist
	loading  bool
	lastErr  error
}

// NewWishlistService creates a wishlist store over repo. The store reports
// Loading until Load has run.
func NewWishlistService(repo repository.WishlistRepository, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		repo:     repo,
		logger:   logger,
		wishlist: &domain.Wishlist{Items: []domain.WishlistItem{}},
		loading:  true,
	}
}

// Load rehydrates the wishlist. A stored value that cannot be read as an
// array of saved products is removed from storage.
func (s *WishlistService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	wl, err := s.repo.Load(ctx)
	switch {
	case err == nil:
		s.wishlist = wl
		s.lastErr = nil
	case errors.Is(err, domain.ErrMalformedState), errors.Is(err, domain.ErrUndecodable):
		s.logger.WarnContext(ctx, "removing unreadable wishlist", slog.String("error", err.Error()))
		s.wishlist = &domain.Wishlist{Items: []domain.WishlistItem{}}
		s.lastErr = nil
		if clearErr := s.repo.Clear(ctx); clearErr != nil {
			s.logger.ErrorContext(ctx, "failed to remove wishlist", slog.String("error", clearErr.Error()))
			s.lastErr = domain.PersistenceFailure(domain.MsgWishlistLoad, clearErr)
		}
	default:
		s.logger.ErrorContext(ctx, "failed to load wishlist", slog.String("error", err.Error()))
		s.wishlist = &domain.Wishlist{Items: []domain.WishlistItem{}}
		s.lastErr = domain.PersistenceFailure(domain.MsgWishlistLoad, err)
	}
	recordOperation(storeWishlist, "load", s.lastErr)

	if s.wishlist.Items == nil {
		s.wishlist.Items = []domain.WishlistItem{}
	}
	return s.lastErr
}

// AddToWishlist saves a snapshot of p. It reports whether the product was
// added; a product without an id or one already saved is not.
func (s *WishlistService) AddToWishlist(ctx context.Context, p domain.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		s.logger.WarnContext(ctx, "cannot add product without id to wishlist")
		recordNoop(storeWishlist, "add")
		return false
	}
	if s.wishlist.Contains(p.ID, p.CategoryID) {
		recordNoop(storeWishlist, "add")
		return false
	}

	s.wishlist.Items = append(s.wishlist.Items, domain.NewWishlistItem(p))
	s.commit(ctx, "add")
	return true
}

// RemoveFromWishlist deletes a saved product. A blank category matches
// entries saved without one.
func (s *WishlistService) RemoveFromWishlist(ctx context.Context, id, categoryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.wishlist.IndexOf(id, categoryID)
	if idx < 0 {
		recordNoop(storeWishlist, "remove")
		return
	}
	s.wishlist.Items = append(s.wishlist.Items[:idx], s.wishlist.Items[idx+1:]...)
	s.commit(ctx, "remove")
}

// ClearWishlist removes every saved product.
func (s *WishlistService) ClearWishlist(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wishlist.Items = []domain.WishlistItem{}
	s.commit(ctx, "clear")
}

// IsInWishlist reports membership by key.
func (s *WishlistService) IsInWishlist(id, categoryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Contains(id, categoryID)
}

// GetItem returns the saved product with the key.
func (s *WishlistService) GetItem(id, categoryID string) (domain.WishlistItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.wishlist.IndexOf(id, categoryID)
	if idx < 0 {
		return domain.WishlistItem{}, false
	}
	return s.wishlist.Items[idx], true
}

// Items returns a copy of the saved products in insertion order.
func (s *WishlistService) Items() []domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Clone()
}

// Count returns the number of saved products.
func (s *WishlistService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.wishlist.Items)
}

// Loading reports whether Load has not yet completed.
func (s *WishlistService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the last persistence failure, if any.
func (s *WishlistService) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *WishlistService) commit(ctx context.Context, operation string) {
	s.lastErr = nil
	if err := s.repo.Save(ctx, s.wishlist); err != nil {
		s.logger.ErrorContext(ctx, "failed to save wishlist",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		s.lastErr = domain.PersistenceFailure(domain.MsgWishlistSave, err)
	}
	recordOperation(storeWishlist, operation, s.lastErr)
}
