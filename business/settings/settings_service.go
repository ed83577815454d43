package settings

import (
	"context"
	"errors"
	"strings"
	"time"

	"shirtshop/domain"
	"shirtshop/pkg/logger"
)

const (
	minExpireMinutes = 1
	maxExpireMinutes = 1440
)

// SettingsRepository contract interface
type SettingsRepository interface {
	Find(ctx context.Context, id string) (domain.PaymentSettings, error)
	Save(ctx context.Context, settings *domain.PaymentSettings) error
}

// Defaults seed the singleton record on first read, usually from environment
// configuration.
type Defaults struct {
	Target        string
	ExpireMinutes int
}

type Service struct {
	repo     SettingsRepository
	defaults Defaults
}

func NewService(repo SettingsRepository, defaults Defaults) *Service {
	if defaults.ExpireMinutes <= 0 {
		defaults.ExpireMinutes = 30
	}
	return &Service{
		repo:     repo,
		defaults: defaults,
	}
}

// GetOrInit returns the payment settings, creating the record from the
// configured defaults when it does not exist yet.
func (s *Service) GetOrInit(ctx context.Context) (domain.PaymentSettings, error) {
	settings, err := s.repo.Find(ctx, domain.PaymentSettingsID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.PaymentSettings{}, err
	}

	settings = domain.PaymentSettings{
		ID:            domain.PaymentSettingsID,
		Target:        s.defaults.Target,
		ExpireMinutes: s.defaults.ExpireMinutes,
		Enabled:       true,
		UpdatedAt:     time.Now(),
	}
	if err := s.repo.Save(ctx, &settings); err != nil {
		return domain.PaymentSettings{}, err
	}

	logger.Info("payment settings initialized from defaults",
		"expire_minutes", settings.ExpireMinutes)
	return settings, nil
}

// Update replaces the settings after validating them. Orders already created
// keep the target and expiry they were issued with.
func (s *Service) Update(ctx context.Context, target string, expireMinutes int, enabled bool) (domain.PaymentSettings, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return domain.PaymentSettings{}, domain.Validationf("promptpay target is required")
	}
	if err := validateTarget(target); err != nil {
		return domain.PaymentSettings{}, err
	}
	if expireMinutes < minExpireMinutes || expireMinutes > maxExpireMinutes {
		return domain.PaymentSettings{}, domain.Validationf(
			"expire minutes must be between %d and %d", minExpireMinutes, maxExpireMinutes)
	}

	settings, err := s.GetOrInit(ctx)
	if err != nil {
		return domain.PaymentSettings{}, err
	}

	settings.Target = target
	settings.ExpireMinutes = expireMinutes
	settings.Enabled = enabled
	settings.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, &settings); err != nil {
		return domain.PaymentSettings{}, err
	}

	logger.Info("payment settings updated",
		"expire_minutes", expireMinutes, "enabled", enabled)
	return settings, nil
}

// validateTarget accepts the PromptPay target shapes: a Thai mobile number
// (10 digits, leading 0), a national id (13 digits) or an e-wallet id
// (15 digits). Separators are ignored.
func validateTarget(target string) error {
	digits := make([]rune, 0, len(target))
	for _, r := range target {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, r)
		case r == '-' || r == ' ' || r == '+':
		default:
			return domain.Validationf("promptpay target must be numeric: %q", target)
		}
	}

	switch len(digits) {
	case 10:
		if digits[0] != '0' {
			return domain.Validationf("thai mobile number must start with 0")
		}
	case 13, 15:
	default:
		return domain.Validationf("promptpay target must be 10, 13 or 15 digits, got %d", len(digits))
	}
	return nil
}
