package orders

import "shirtshop/domain"

// validNext is the full transition table. Anything absent here is an invalid
// transition and must be rejected, never silently ignored: it is what keeps
// stock from being sold or credited twice.
var validNext = map[domain.OrderStatus]map[domain.OrderStatus]bool{
	domain.StatusPendingPayment: {
		domain.StatusSlipUploaded: true,
		domain.StatusExpired:      true,
		domain.StatusCanceled:     true,
	},
	domain.StatusSlipUploaded: {
		domain.StatusPaid:     true,
		domain.StatusRejected: true,
		domain.StatusCanceled: true,
	},
	domain.StatusPaid:     {},
	domain.StatusRejected: {},
	domain.StatusExpired:  {},
	domain.StatusCanceled: {},
}

func CanTransition(from, to domain.OrderStatus) bool {
	return validNext[from][to]
}
