package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/locale"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// LanguageService holds the active language and its translations.
type LanguageService struct {
	mu       sync.Mutex
	repo     repository.PreferenceRepository
	logger   *slog.Logger
	fallback string
	dict     *locale.Dictionary
	lastErr  error
}

// NewLanguageService creates a language store. fallback is used when no
// preference is stored and must be a supported code.
func NewLanguageService(repo repository.PreferenceRepository, logger *slog.Logger, fallback string) (*LanguageService, error) {
	code, ok := locale.Match(fallback)
	if !ok {
		return nil, fmt.Errorf("unsupported default language %q", fallback)
	}
	dict, err := locale.Load(code)
	if err != nil {
		return nil, err
	}
	return &LanguageService{repo: repo, logger: logger, fallback: code, dict: dict}, nil
}

// Load activates the stored language, or the fallback when nothing usable
// is stored, and writes the active code back to storage.
func (s *LanguageService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.repo.Language(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read language preference", slog.String("error", err.Error()))
		s.lastErr = domain.PersistenceFailure(domain.MsgLanguageLoadError, err)
		recordOperation(storePreference, "load", s.lastErr)
		return s.lastErr
	}

	code := s.fallback
	if stored != "" {
		if matched, ok := locale.Match(stored); ok {
			code = matched
		} else {
			s.logger.WarnContext(ctx, "ignoring unsupported stored language", slog.String("language", stored))
		}
	}

	if err := s.activate(code); err != nil {
		return err
	}
	if stored != code {
		s.persist(ctx, "load")
		return s.lastErr
	}
	s.lastErr = nil
	recordOperation(storePreference, "load", nil)
	return nil
}

// ChangeLanguage switches to tag. Regional variants resolve to the base
// language; switching to the active language does nothing.
func (s *LanguageService) ChangeLanguage(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := locale.Match(tag)
	if !ok {
		err := apperrors.InvalidInput(fmt.Sprintf("unsupported language %q", tag))
		recordOperation(storePreference, "change", err)
		return err
	}
	if code == s.dict.Language() {
		recordNoop(storePreference, "change")
		return nil
	}
	if err := s.activate(code); err != nil {
		return err
	}
	s.persist(ctx, "change")
	return nil
}

// Language returns the active two-letter code.
func (s *LanguageService) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.Language()
}

// Translations returns the dictionary of the active language.
func (s *LanguageService) Translations() *locale.Dictionary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict
}

// LastError returns the last persistence failure, if any.
func (s *LanguageService) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *LanguageService) activate(code string) error {
	dict, err := locale.Load(code)
	if err != nil {
		return apperrors.Internal(err)
	}
	s.dict = dict
	return nil
}

func (s *LanguageService) persist(ctx context.Context, operation string) {
	s.lastErr = nil
	if err := s.repo.SetLanguage(ctx, s.dict.Language()); err != nil {
		s.logger.ErrorContext(ctx, "failed to save language preference",
			slog.String("language", s.dict.Language()),
			slog.String("error", err.Error()),
		)
		s.lastErr = domain.PersistenceFailure(domain.MsgLanguageSaveError, err)
	}
	recordOperation(storePreference, operation, s.lastErr)
}
