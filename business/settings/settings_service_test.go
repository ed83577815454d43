package settings

import (
	"context"
	"errors"
	"testing"

	"shirtshop/domain"
)

type fakeSettingsRepo struct {
	stored *domain.PaymentSettings
	saves  int
}

func (r *fakeSettingsRepo) Find(_ context.Context, id string) (domain.PaymentSettings, error) {
	if r.stored == nil || r.stored.ID != id {
		return domain.PaymentSettings{}, domain.NotFoundf("settings not found: %s", id)
	}
	return *r.stored, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, s *domain.PaymentSettings) error {
	cp := *s
	r.stored = &cp
	r.saves++
	return nil
}

func newService(repo *fakeSettingsRepo) *Service {
	return NewService(repo, Defaults{Target: "0812345678", ExpireMinutes: 30})
}

func TestGetOrInitSeedsDefaults(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := newService(repo)

	settings, err := svc.GetOrInit(context.Background())
	if err != nil {
		t.Fatalf("GetOrInit: %v", err)
	}
	if settings.ID != domain.PaymentSettingsID {
		t.Errorf("id = %s, want %s", settings.ID, domain.PaymentSettingsID)
	}
	if settings.Target != "0812345678" || settings.ExpireMinutes != 30 || !settings.Enabled {
		t.Errorf("seeded settings = %+v", settings)
	}

	// Second read must hit the stored record, not save again.
	if _, err := svc.GetOrInit(context.Background()); err != nil {
		t.Fatalf("second GetOrInit: %v", err)
	}
	if repo.saves != 1 {
		t.Errorf("saves = %d, want 1", repo.saves)
	}
}

func TestUpdateValidatesAndPersists(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := newService(repo)

	updated, err := svc.Update(context.Background(), "089-999-8877", 60, false)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Target != "089-999-8877" || updated.ExpireMinutes != 60 || updated.Enabled {
		t.Errorf("updated settings = %+v", updated)
	}
	if repo.stored == nil || repo.stored.ExpireMinutes != 60 {
		t.Errorf("settings not persisted: %+v", repo.stored)
	}
}

func TestUpdateRejections(t *testing.T) {
	svc := newService(&fakeSettingsRepo{})

	cases := []struct {
		name   string
		target string
		mins   int
	}{
		{"blank target", "   ", 30},
		{"letters in target", "call-me", 30},
		{"nine digits", "081234567", 30},
		{"mobile without leading zero", "8123456789", 30},
		{"twelve digits", "123456789012", 30},
		{"expiry too small", "0812345678", 0},
		{"expiry too large", "0812345678", 1441},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Update(context.Background(), tc.target, tc.mins, true); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("want ErrValidation, got %v", err)
			}
		})
	}
}

func TestUpdateAcceptsNationalIDAndEWallet(t *testing.T) {
	svc := newService(&fakeSettingsRepo{})

	for _, target := range []string{"1234567890123", "004999000288505"} {
		if _, err := svc.Update(context.Background(), target, 30, true); err != nil {
			t.Errorf("Update(%q): %v", target, err)
		}
	}
}
