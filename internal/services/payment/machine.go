package payment

import "linkpay/internal/models"

// Actor classes for transition authorization. The customer class is never
// derived from claims; it applies only to the bearer-of-public-id proof
// submission path.
const (
	ActorCustomer   = "customer"
	ActorMerchant   = "merchant"
	ActorSuperAdmin = "super_admin"
)

type transitionKey struct {
	From string
	To   string
}

// transitionTable is the only authority on status changes. Anything not
// listed here (or covered by the super-admin failure override) is rejected
// without mutation.
var transitionTable = map[transitionKey][]string{
	{models.PaymentStatusPending, models.PaymentStatusPendingVerification}:   {ActorCustomer},
	{models.PaymentStatusPendingVerification, models.PaymentStatusCompleted}: {ActorMerchant, ActorSuperAdmin},
	{models.PaymentStatusPendingVerification, models.PaymentStatusFailed}:    {ActorMerchant, ActorSuperAdmin},
	{models.PaymentStatusCompleted, models.PaymentStatusRefunded}:            {ActorMerchant, ActorSuperAdmin},
}

// CanTransition reports whether actor may move a payment from one status to
// another. Super-admins may additionally force any payment into failed as an
// administrative override.
func CanTransition(from, to, actor string) bool {
	if actor == ActorSuperAdmin && to == models.PaymentStatusFailed && from != models.PaymentStatusFailed {
		return true
	}
	actors, ok := transitionTable[transitionKey{From: from, To: to}]
	if !ok {
		return false
	}
	for _, a := range actors {
		if a == actor {
			return true
		}
	}
	return false
}

// Reachable reports whether any valid transition by actor ends in the given
// status. It backs idempotent retries: a request naming a target the payment
// already sits in succeeds as a no-op when the pair exists for that actor.
func Reachable(to, actor string) bool {
	if actor == ActorSuperAdmin && to == models.PaymentStatusFailed {
		return true
	}
	for key, actors := range transitionTable {
		if key.To != to {
			continue
		}
		for _, a := range actors {
			if a == actor {
				return true
			}
		}
	}
	return false
}

// Predecessors returns the statuses from which actor may reach to.
func Predecessors(to, actor string) []string {
	var from []string
	if actor == ActorSuperAdmin && to == models.PaymentStatusFailed {
		for _, s := range allStatuses {
			if s != models.PaymentStatusFailed {
				from = append(from, s)
			}
		}
		return from
	}
	for key, actors := range transitionTable {
		if key.To != to {
			continue
		}
		for _, a := range actors {
			if a == actor {
				from = append(from, key.From)
				break
			}
		}
	}
	return from
}

var allStatuses = []string{
	models.PaymentStatusPending,
	models.PaymentStatusPendingVerification,
	models.PaymentStatusCompleted,
	models.PaymentStatusFailed,
	models.PaymentStatusRefunded,
}

// ValidStatus reports whether s is a known payment status.
func ValidStatus(s string) bool {
	for _, known := range allStatuses {
		if s == known {
			return true
		}
	}
	return false
}
