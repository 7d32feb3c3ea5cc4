package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"linkpay/internal/models"
	"linkpay/internal/services/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Create(n *models.Notification) error {
	return m.Called(n).Error(0)
}

func (m *mockStore) ListForUser(userID uint, limit, offset int) ([]models.Notification, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *mockStore) MarkRead(id, userID uint) (bool, error) {
	args := m.Called(id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) CountUnread(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) ListSuperAdmins() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

// captureMailer hands each message to the test through a channel so the
// asynchronous send can be awaited.
type captureMailer struct {
	sent chan email.Message
	err  error
}

func newCaptureMailer() *captureMailer {
	return &captureMailer{sent: make(chan email.Message, 4)}
}

func (m *captureMailer) Send(_ context.Context, msg email.Message) error {
	m.sent <- msg
	return m.err
}

func (m *captureMailer) await(t *testing.T) email.Message {
	t.Helper()
	select {
	case msg := <-m.sent:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no email dispatched")
		return email.Message{}
	}
}

func testPayment() *models.Payment {
	return &models.Payment{
		ID:            11,
		PublicID:      "pub-11",
		OwnerID:       1,
		CustomerEmail: "buyer@example.com",
		Amount:        50,
		CurrencyCode:  "USD",
	}
}

func TestProofSubmittedNotifiesMerchantAndCustomer(t *testing.T) {
	store := new(mockStore)
	directory := new(mockDirectory)
	mailer := newCaptureMailer()
	svc := NewService(store, directory, mailer, nil)

	store.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == 1 && n.Type == models.NotificationTypeProofSubmitted
	})).Return(nil)

	err := svc.PaymentTransitioned(context.Background(), testPayment(),
		models.PaymentStatusPending, models.PaymentStatusPendingVerification)

	assert.NoError(t, err)
	msg := mailer.await(t)
	assert.Equal(t, []string{"buyer@example.com"}, msg.Recipients)
	store.AssertExpectations(t)
}

func TestCompletedCreatesAuditRowPerSuperAdmin(t *testing.T) {
	store := new(mockStore)
	directory := new(mockDirectory)
	mailer := newCaptureMailer()
	svc := NewService(store, directory, mailer, nil)

	directory.On("ListSuperAdmins").Return([]models.User{
		{Model: gorm.Model{ID: 90}, Role: models.RoleSuperAdmin},
		{Model: gorm.Model{ID: 91}, Role: models.RoleSuperAdmin},
	}, nil)
	store.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == 90 && n.Type == models.NotificationTypePaymentAudit
	})).Return(nil).Once()
	store.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == 91 && n.Type == models.NotificationTypePaymentAudit
	})).Return(nil).Once()

	err := svc.PaymentTransitioned(context.Background(), testPayment(),
		models.PaymentStatusPendingVerification, models.PaymentStatusCompleted)

	assert.NoError(t, err)
	mailer.await(t)
	store.AssertExpectations(t)
}

func TestAuditRowFailuresAggregated(t *testing.T) {
	store := new(mockStore)
	directory := new(mockDirectory)
	svc := NewService(store, directory, newCaptureMailer(), nil)

	directory.On("ListSuperAdmins").Return([]models.User{
		{Model: gorm.Model{ID: 90}},
		{Model: gorm.Model{ID: 91}},
	}, nil)
	store.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == 90
	})).Return(errors.New("insert failed")).Once()
	store.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == 91
	})).Return(nil).Once()

	err := svc.PaymentTransitioned(context.Background(), testPayment(),
		models.PaymentStatusPendingVerification, models.PaymentStatusFailed)

	// One failed row surfaces; the other admin was still notified.
	assert.Error(t, err)
	store.AssertExpectations(t)
}

func TestRefundedEmailsCustomerOnly(t *testing.T) {
	store := new(mockStore)
	mailer := newCaptureMailer()
	svc := NewService(store, new(mockDirectory), mailer, nil)

	err := svc.PaymentTransitioned(context.Background(), testPayment(),
		models.PaymentStatusCompleted, models.PaymentStatusRefunded)

	assert.NoError(t, err)
	msg := mailer.await(t)
	assert.Contains(t, msg.Subject, "refunded")
	store.AssertNotCalled(t, "Create", mock.Anything)
}

func TestMailerFailureDoesNotSurface(t *testing.T) {
	mailer := newCaptureMailer()
	mailer.err = errors.New("smtp unreachable")
	svc := NewService(new(mockStore), new(mockDirectory), mailer, nil)

	err := svc.PaymentTransitioned(context.Background(), testPayment(),
		models.PaymentStatusCompleted, models.PaymentStatusRefunded)

	assert.NoError(t, err)
	mailer.await(t)
}

func TestMarkRead(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store, new(mockDirectory), newCaptureMailer(), nil)
	claims := &models.UserClaims{UserID: 1, Role: models.RoleSubscriber}

	store.On("MarkRead", uint(5), uint(1)).Return(true, nil)
	assert.NoError(t, svc.MarkRead(context.Background(), claims, 5))

	store.On("MarkRead", uint(6), uint(1)).Return(false, nil)
	assert.ErrorIs(t, svc.MarkRead(context.Background(), claims, 6), ErrNotificationNotFound)
}
