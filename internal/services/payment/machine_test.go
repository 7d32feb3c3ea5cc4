package payment

import (
	"testing"

	"linkpay/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name  string
		from  string
		to    string
		actor string
		want  bool
	}{
		{"customer submits proof", models.PaymentStatusPending, models.PaymentStatusPendingVerification, ActorCustomer, true},
		{"customer cannot approve", models.PaymentStatusPendingVerification, models.PaymentStatusCompleted, ActorCustomer, false},
		{"merchant approves", models.PaymentStatusPendingVerification, models.PaymentStatusCompleted, ActorMerchant, true},
		{"merchant rejects", models.PaymentStatusPendingVerification, models.PaymentStatusFailed, ActorMerchant, true},
		{"merchant refunds completed", models.PaymentStatusCompleted, models.PaymentStatusRefunded, ActorMerchant, true},
		{"merchant cannot refund failed", models.PaymentStatusFailed, models.PaymentStatusRefunded, ActorMerchant, false},
		{"merchant cannot skip verification", models.PaymentStatusPending, models.PaymentStatusCompleted, ActorMerchant, false},
		{"merchant cannot submit proof", models.PaymentStatusPending, models.PaymentStatusPendingVerification, ActorMerchant, false},
		{"super admin approves", models.PaymentStatusPendingVerification, models.PaymentStatusCompleted, ActorSuperAdmin, true},
		{"super admin force-fails pending", models.PaymentStatusPending, models.PaymentStatusFailed, ActorSuperAdmin, true},
		{"super admin force-fails completed", models.PaymentStatusCompleted, models.PaymentStatusFailed, ActorSuperAdmin, true},
		{"super admin cannot fail failed", models.PaymentStatusFailed, models.PaymentStatusFailed, ActorSuperAdmin, false},
		{"super admin cannot refund failed", models.PaymentStatusFailed, models.PaymentStatusRefunded, ActorSuperAdmin, false},
		{"unknown pair rejected", models.PaymentStatusRefunded, models.PaymentStatusCompleted, ActorSuperAdmin, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to, tc.actor))
		})
	}
}

func TestReachable(t *testing.T) {
	assert.True(t, Reachable(models.PaymentStatusPendingVerification, ActorCustomer))
	assert.False(t, Reachable(models.PaymentStatusPendingVerification, ActorMerchant))
	assert.True(t, Reachable(models.PaymentStatusCompleted, ActorMerchant))
	assert.True(t, Reachable(models.PaymentStatusFailed, ActorSuperAdmin))
	assert.True(t, Reachable(models.PaymentStatusRefunded, ActorMerchant))
	assert.False(t, Reachable(models.PaymentStatusPending, ActorMerchant))
	assert.False(t, Reachable(models.PaymentStatusPending, ActorCustomer))
}

func TestPredecessors(t *testing.T) {
	assert.ElementsMatch(t, []string{models.PaymentStatusCompleted}, Predecessors(models.PaymentStatusRefunded, ActorMerchant))

	// The override lets a super-admin fail anything not already failed.
	assert.ElementsMatch(t, []string{
		models.PaymentStatusPending,
		models.PaymentStatusPendingVerification,
		models.PaymentStatusCompleted,
		models.PaymentStatusRefunded,
	}, Predecessors(models.PaymentStatusFailed, ActorSuperAdmin))

	assert.Empty(t, Predecessors(models.PaymentStatusPending, ActorMerchant))
}

func TestValidStatus(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("approved"))
	assert.False(t, ValidStatus(""))
}
