// Package payment owns the payment record and its verification state
// machine. Every status change passes through the transition table in
// machine.go and commits via compare-and-swap; side effects (notifications,
// events, metrics) run after the commit and never roll it back.
package payment

import (
	"context"
	"fmt"

	"linkpay/internal/models"
	"linkpay/internal/services/event"
	"linkpay/internal/services/scope"
	"linkpay/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateInput is a customer's checkout submission.
type CreateInput struct {
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CountryCode   string  `json:"country"`
	Amount        float64 `json:"amount"`
	MethodID      uint    `json:"method_id"`
}

type Service interface {
	// CreateFromCheckout records a pending payment for a checkout link
	// submission. The method must be eligible for the selected country and
	// the amount must satisfy the link's pricing mode.
	CreateFromCheckout(ctx context.Context, link *models.CheckoutLink, in CreateInput) (*models.Payment, error)
	// SubmitProof is the customer's single permitted transition,
	// pending -> pending_verification, authorized by bearing the public id.
	SubmitProof(ctx context.Context, publicID, proofURL string) (*models.Payment, error)
	// Transition moves a payment to target on behalf of an authenticated
	// actor, enforcing the transition table and idempotent retries.
	Transition(ctx context.Context, claims *models.UserClaims, id uint, target, notes string) (*models.Payment, error)
	Get(ctx context.Context, claims *models.UserClaims, id uint) (*models.Payment, error)
	GetByPublicID(ctx context.Context, publicID string) (*models.Payment, error)
	List(ctx context.Context, claims *models.UserClaims, limit, offset int) ([]models.Payment, int64, error)
}

type service struct {
	repo     Repository
	resolver CheckoutResolver
	notifier Notifier
	events   event.Publisher
	metrics  MetricsCollector
	logger   *zap.Logger
}

func NewService(
	repo Repository,
	resolver CheckoutResolver,
	notifier Notifier,
	events event.Publisher,
	metrics MetricsCollector,
	logger *zap.Logger,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}
	if notifier == nil {
		panic("notifier is required")
	}
	if events == nil {
		events = event.NoopPublisher{}
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:     repo,
		resolver: resolver,
		notifier: notifier,
		events:   events,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *service) CreateFromCheckout(ctx context.Context, link *models.CheckoutLink, in CreateInput) (*models.Payment, error) {
	v := validation.New()
	v.CheckoutSubmission(in.CustomerEmail, amountFor(link, in.Amount))
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrSubmissionInvalid, v.Error())
	}

	res, err := s.resolver.Resolve(ctx, link, in.CountryCode)
	if err != nil {
		return nil, err
	}

	var chosen *models.PaymentMethod
	for i := range res.Methods {
		if res.Methods[i].ID == in.MethodID {
			chosen = &res.Methods[i]
			break
		}
	}
	if chosen == nil {
		return nil, ErrMethodNotEligible
	}

	amount := amountFor(link, in.Amount)
	if !link.AmountAllowed(amount) {
		return nil, ErrAmountOutOfRange
	}

	linkID := link.ID
	p := &models.Payment{
		PublicID:       uuid.NewString(),
		OwnerID:        link.OwnerID,
		CheckoutLinkID: &linkID,
		MethodID:       chosen.ID,
		MethodName:     chosen.Name,
		CustomerName:   in.CustomerName,
		CustomerEmail:  in.CustomerEmail,
		CountryCode:    in.CountryCode,
		Amount:         amount,
		CurrencyCode:   res.CurrencyCode,
		Status:         models.PaymentStatusPending,
	}
	if err := s.repo.Create(p); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.logger.Info("payment created",
		zap.String("payment", p.PublicID),
		zap.Uint("merchant", p.OwnerID),
		zap.Float64("amount", p.Amount),
		zap.String("currency", p.CurrencyCode),
	)
	return p, nil
}

func (s *service) SubmitProof(ctx context.Context, publicID, proofURL string) (*models.Payment, error) {
	if proofURL == "" {
		return nil, ErrProofRequired
	}

	p, err := s.repo.GetByPublicID(publicID)
	if err != nil {
		return nil, ErrPaymentNotFound
	}

	// Retrying a proof submission that already landed is a success, not an
	// error, and must not fan out twice.
	if p.Status == models.PaymentStatusPendingVerification {
		return p, nil
	}
	if !CanTransition(p.Status, models.PaymentStatusPendingVerification, ActorCustomer) {
		return nil, ErrInvalidTransition
	}

	return s.commit(ctx, p, models.PaymentStatusPendingVerification, map[string]interface{}{
		"proof_url": proofURL,
	})
}

func (s *service) Transition(ctx context.Context, claims *models.UserClaims, id uint, target, notes string) (*models.Payment, error) {
	if !ValidStatus(target) {
		return nil, ErrInvalidTransition
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrPaymentNotFound
	}
	if !scope.For(claims).CanAccess(p.OwnerID) {
		return nil, scope.ErrForbidden
	}

	actor := ActorMerchant
	if claims.IsSuperAdmin() {
		actor = ActorSuperAdmin
	}

	// Idempotent retry: the payment already sits in the requested target.
	if p.Status == target && Reachable(target, actor) {
		return p, nil
	}
	if !CanTransition(p.Status, target, actor) {
		return nil, ErrInvalidTransition
	}

	patch := map[string]interface{}{}
	if notes != "" {
		patch["review_notes"] = notes
	}
	return s.commit(ctx, p, target, patch)
}

func (s *service) Get(_ context.Context, claims *models.UserClaims, id uint) (*models.Payment, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrPaymentNotFound
	}
	if !scope.For(claims).CanAccess(p.OwnerID) {
		return nil, scope.ErrForbidden
	}
	return p, nil
}

func (s *service) GetByPublicID(_ context.Context, publicID string) (*models.Payment, error) {
	p, err := s.repo.GetByPublicID(publicID)
	if err != nil {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

func (s *service) List(_ context.Context, claims *models.UserClaims, limit, offset int) ([]models.Payment, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.List(scope.For(claims), limit, offset)
}

// commit applies the compare-and-swap and, on success, runs the best-effort
// side effects. A lost race re-reads the row: landing in the target anyway
// is an idempotent success, anything else is an invalid transition.
func (s *service) commit(ctx context.Context, p *models.Payment, target string, patch map[string]interface{}) (*models.Payment, error) {
	from := p.Status

	ok, err := s.repo.TransitionStatus(ctx, p.ID, from, target, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to transition payment: %w", err)
	}
	if !ok {
		current, err := s.repo.GetByID(p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to re-read payment: %w", err)
		}
		if current.Status == target {
			return current, nil
		}
		s.metrics.RecordTransition(from, target, "conflict")
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.GetByID(p.ID)
	if err != nil {
		// The transition committed; hand back the in-memory view.
		updated = p
		updated.Status = target
	}

	s.afterTransition(ctx, updated, from, target)
	return updated, nil
}

// afterTransition runs the best-effort fan-out. The status change is the
// source of truth and is already committed; a failure here is logged and
// surfaced to the operator, nothing more.
func (s *service) afterTransition(ctx context.Context, p *models.Payment, from, to string) {
	s.metrics.RecordTransition(from, to, "committed")

	s.logger.Info("payment state transition",
		zap.String("payment", p.PublicID),
		zap.String("from_status", from),
		zap.String("to_status", to),
	)

	if err := s.notifier.PaymentTransitioned(ctx, p, from, to); err != nil {
		s.logger.Error("notification fan-out failed",
			zap.String("payment", p.PublicID),
			zap.Error(err),
		)
	}

	if err := s.events.PublishStateChange(ctx, event.StateChange{
		PaymentID:     p.PublicID,
		MerchantID:    p.OwnerID,
		State:         to,
		PreviousState: from,
	}); err != nil {
		s.logger.Warn("state change publish failed",
			zap.String("payment", p.PublicID),
			zap.Error(err),
		)
	}
}

// amountFor picks the effective charge amount: fixed links always charge
// their configured amount, flexible links charge what the customer entered.
func amountFor(link *models.CheckoutLink, submitted float64) float64 {
	if link.PricingMode == models.PricingFlexible {
		return submitted
	}
	return link.Amount
}
