package orders

import (
	"testing"

	"shirtshop/domain"
)

func TestTransitionTable(t *testing.T) {
	allowed := map[[2]domain.OrderStatus]bool{
		{domain.StatusPendingPayment, domain.StatusSlipUploaded}: true,
		{domain.StatusPendingPayment, domain.StatusExpired}:      true,
		{domain.StatusPendingPayment, domain.StatusCanceled}:     true,
		{domain.StatusSlipUploaded, domain.StatusPaid}:           true,
		{domain.StatusSlipUploaded, domain.StatusRejected}:       true,
		{domain.StatusSlipUploaded, domain.StatusCanceled}:       true,
	}

	all := []domain.OrderStatus{
		domain.StatusPendingPayment,
		domain.StatusSlipUploaded,
		domain.StatusPaid,
		domain.StatusRejected,
		domain.StatusExpired,
		domain.StatusCanceled,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]domain.OrderStatus{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminalStates(t *testing.T) {
	terminal := []domain.OrderStatus{
		domain.StatusPaid, domain.StatusRejected, domain.StatusExpired, domain.StatusCanceled,
	}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s must be terminal", s)
		}
		for _, to := range []domain.OrderStatus{
			domain.StatusPendingPayment, domain.StatusSlipUploaded, domain.StatusPaid,
			domain.StatusRejected, domain.StatusExpired, domain.StatusCanceled,
		} {
			if CanTransition(s, to) {
				t.Errorf("terminal state %s must not transition to %s", s, to)
			}
		}
	}

	for _, s := range []domain.OrderStatus{domain.StatusPendingPayment, domain.StatusSlipUploaded} {
		if s.IsTerminal() {
			t.Errorf("%s must not be terminal", s)
		}
	}
}
