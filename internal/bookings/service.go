package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/ostaapp/osta-backend/internal/accounts"
	"github.com/ostaapp/osta-backend/internal/notifications"
	"github.com/ostaapp/osta-backend/internal/settings"
	"github.com/ostaapp/osta-backend/internal/settlement"
	"github.com/ostaapp/osta-backend/internal/verification"
	"github.com/ostaapp/osta-backend/internal/wallet"
	"github.com/ostaapp/osta-backend/pkg/db/models"
	"github.com/ostaapp/osta-backend/pkg/enums"
	pkgerrors "github.com/ostaapp/osta-backend/pkg/errors"
	"github.com/ostaapp/osta-backend/pkg/logger"
	"github.com/ostaapp/osta-backend/pkg/metrics"
	"github.com/ostaapp/osta-backend/pkg/outbox"
	"github.com/ostaapp/osta-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service is the booking lifecycle engine: it owns every job status change
// and the settlement each change triggers.
type Service interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Job, error)
	SubmitQuote(ctx context.Context, input SubmitQuoteInput) (*models.Job, error)
	Transition(ctx context.Context, input TransitionInput) (*models.Job, error)
	ResolveDispute(ctx context.Context, input ResolveDisputeInput) (*models.Job, error)
	Get(ctx context.Context, jobID uuid.UUID, actor Actor) (*models.Job, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
	SweepArrivedTimeouts(ctx context.Context) (int, error)
}

// Config carries the platform accounts and timing knobs the engine needs.
type Config struct {
	EscrowAccountID   uuid.UUID
	RevenueAccountID  uuid.UUID
	ArrivalWaitWindow time.Duration
}

// Deps wires the collaborating services.
type Deps struct {
	Repo         Repository
	Tx           txRunner
	Wallet       wallet.Settler
	Settings     settings.Service
	Accounts     accounts.Service
	Verification verification.Service
	Notifier     notifications.Notifier
	Events       *outbox.Service
	Metrics      *metrics.BookingMetrics
	Logger       *logger.Logger
}

type service struct {
	repo         Repository
	tx           txRunner
	wallet       wallet.Settler
	settings     settings.Service
	accounts     accounts.Service
	verification verification.Service
	notifier     notifications.Notifier
	events       *outbox.Service
	metrics      *metrics.BookingMetrics
	logg         *logger.Logger
	cfg          Config
	locks        *jobLocks
	now          func() time.Time
}

// NewService validates dependencies and returns the booking engine.
func NewService(deps Deps, cfg Config) (Service, error) {
	switch {
	case deps.Repo == nil:
		return nil, fmt.Errorf("bookings repository required")
	case deps.Tx == nil:
		return nil, fmt.Errorf("transaction runner required")
	case deps.Wallet == nil:
		return nil, fmt.Errorf("wallet settler required")
	case deps.Settings == nil:
		return nil, fmt.Errorf("settings service required")
	case deps.Accounts == nil:
		return nil, fmt.Errorf("accounts service required")
	case deps.Verification == nil:
		return nil, fmt.Errorf("verification service required")
	}
	if cfg.EscrowAccountID == uuid.Nil || cfg.RevenueAccountID == uuid.Nil {
		return nil, fmt.Errorf("platform escrow and revenue accounts required")
	}
	if cfg.ArrivalWaitWindow <= 0 {
		cfg.ArrivalWaitWindow = 600 * time.Second
	}
	return &service{
		repo:         deps.Repo,
		tx:           deps.Tx,
		wallet:       deps.Wallet,
		settings:     deps.Settings,
		accounts:     deps.Accounts,
		verification: deps.Verification,
		notifier:     deps.Notifier,
		events:       deps.Events,
		metrics:      deps.Metrics,
		logg:         deps.Logger,
		cfg:          cfg,
		locks:        newJobLocks(),
		now:          time.Now,
	}, nil
}

func (s *service) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Job, error) {
	if input.CustomerID == uuid.Nil || input.ProviderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer and provider ids required")
	}
	if input.ServiceType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service type required")
	}
	if input.InitialPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "initial price must not be negative")
	}

	if _, err := s.accounts.RequireRole(ctx, input.CustomerID, enums.UserRoleCustomer); err != nil {
		return nil, err
	}
	if _, err := s.accounts.RequireRole(ctx, input.ProviderID, enums.UserRoleProvider); err != nil {
		return nil, err
	}
	// The gate runs before any row is written.
	if err := s.verification.CheckEligible(ctx, input.ProviderID); err != nil {
		return nil, err
	}

	price := input.InitialPrice
	if price.IsZero() {
		profile, err := s.accounts.ProviderProfile(ctx, input.ProviderID)
		if err != nil {
			return nil, err
		}
		price = profile.HourlyRate
	}

	job := &models.Job{
		CustomerID:  input.CustomerID,
		ProviderID:  input.ProviderID,
		ServiceType: input.ServiceType,
		Description: input.Description,
		Status:      enums.JobStatusInterviewing,
		Price:       price,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, job); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create job")
		}
		if err := s.emit(ctx, tx, job, enums.EventBookingCreated, Actor{UserID: input.CustomerID, Role: enums.UserRoleCustomer}, nil); err != nil {
			return err
		}
		return s.notify(ctx, tx, job.ProviderID, job.ID, enums.NotificationTypeBookingCreated,
			"New booking request", fmt.Sprintf("A customer requested %s", job.ServiceType))
	})
	if err != nil {
		return nil, err
	}

	s.logInfo(ctx, job.ID, "booking created")
	return job, nil
}

func (s *service) SubmitQuote(ctx context.Context, input SubmitQuoteInput) (*models.Job, error) {
	if input.JobID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job id required")
	}
	items, price, err := buildQuoteItems(input.Items)
	if err != nil {
		return nil, err
	}

	release := s.locks.Acquire(input.JobID)
	defer release()

	job, err := s.loadJob(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if input.Actor.Role != enums.UserRoleProvider || job.ProviderID != input.Actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the booked provider may quote")
	}
	switch job.Status {
	case enums.JobStatusPending, enums.JobStatusInterviewing, enums.JobStatusEstimateProvided:
	default:
		s.metrics.IncRejection(job.Status.String(), enums.JobStatusEstimateProvided.String())
		return nil, invalidTransition(job.Status, enums.JobStatusEstimateProvided)
	}

	from := job.Status
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ok, err := repo.UpdateStatusCAS(ctx, job.ID, from, enums.JobStatusEstimateProvided, map[string]any{
			"price": price,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update job status")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "job changed concurrently")
		}
		if err := repo.ReplaceQuoteItems(ctx, job.ID, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store quote items")
		}
		if err := s.emit(ctx, tx, job, enums.EventQuoteSubmitted, input.Actor, map[string]any{
			"price": price.String(),
			"items": len(items),
		}); err != nil {
			return err
		}
		return s.notify(ctx, tx, job.CustomerID, job.ID, enums.NotificationTypeQuoteSubmitted,
			"Estimate received", fmt.Sprintf("Your provider quoted %s", price.String()))
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncTransition(from.String(), enums.JobStatusEstimateProvided.String())
	s.logInfo(ctx, job.ID, "quote submitted")
	return s.loadJob(ctx, input.JobID)
}

func (s *service) Transition(ctx context.Context, input TransitionInput) (*models.Job, error) {
	if input.JobID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job id required")
	}
	if !input.To.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid job status %q", input.To))
	}
	if input.To == enums.JobStatusEstimateProvided {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimates are submitted through the quote operation")
	}

	release := s.locks.Acquire(input.JobID)
	defer release()

	job, err := s.loadJob(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeParticipant(job, input.Actor); err != nil {
		return nil, err
	}
	if !transitionAllowed(job.Status, input.To, input.Actor.Role) {
		s.metrics.IncRejection(job.Status.String(), input.To.String())
		return nil, invalidTransition(job.Status, input.To)
	}
	if input.To == enums.JobStatusCancelled && input.Actor.Role == enums.UserRoleProvider {
		if err := s.checkWaitWindowElapsed(job); err != nil {
			s.metrics.IncRejection(job.Status.String(), input.To.String())
			return nil, err
		}
	}

	if err := s.applyTransition(ctx, job, input); err != nil {
		return nil, err
	}

	s.metrics.IncTransition(job.Status.String(), input.To.String())
	s.logInfo(ctx, job.ID, fmt.Sprintf("booking moved to %s", input.To))
	return s.loadJob(ctx, input.JobID)
}

// applyTransition runs the status CAS and all settlement side effects in one
// transaction. A failure anywhere rolls everything back.
func (s *service) applyTransition(ctx context.Context, job *models.Job, input TransitionInput) error {
	from := job.Status
	now := s.now().UTC()

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		updates := map[string]any{}
		eventType := enums.EventBookingStateChanged

		switch input.To {
		case enums.JobStatusDepositPaid:
			if !job.Price.IsPositive() {
				return pkgerrors.New(pkgerrors.CodeValidation, "job has no agreed price")
			}
			updates["deposit_paid_at"] = now
		case enums.JobStatusArrived:
			updates["arrived_at"] = now
		case enums.JobStatusInProgress:
			updates["started_at"] = now
		case enums.JobStatusCompleted:
			updates["completed_at"] = now
			eventType = enums.EventBookingSettled
		case enums.JobStatusCancelled:
			updates["cancelled_at"] = now
			updates["cancelled_by"] = input.Actor.Role
		case enums.JobStatusDisputed:
			updates["disputed_at"] = now
			eventType = enums.EventBookingDisputed
		}

		var penalty decimal.Decimal
		if input.To == enums.JobStatusCancelled {
			penalty = settlement.CancellationPenalty(job.Price, input.Actor.Role, from)
			if penalty.IsPositive() {
				updates["penalty_applied"] = penalty
			}
		}

		ok, err := s.repo.WithTx(tx).UpdateStatusCAS(ctx, job.ID, from, input.To, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update job status")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "job changed concurrently").
				WithDetails(map[string]any{"expected": from})
		}

		switch input.To {
		case enums.JobStatusDepositPaid:
			if err := s.holdEscrow(ctx, tx, job); err != nil {
				return err
			}
		case enums.JobStatusCompleted:
			if err := s.settleCompletion(ctx, tx, job); err != nil {
				return err
			}
		case enums.JobStatusCancelled:
			if err := s.settleCancellation(ctx, tx, job, penalty); err != nil {
				return err
			}
		}

		if err := s.emit(ctx, tx, job, eventType, input.Actor, map[string]any{
			"from": from,
			"to":   input.To,
		}); err != nil {
			return err
		}
		return s.notifyCounterparty(ctx, tx, job, input.Actor, input.To)
	})
}

// holdEscrow moves the full agreed price from the customer wallet into the
// platform escrow account.
func (s *service) holdEscrow(ctx context.Context, tx *gorm.DB, job *models.Job) error {
	return s.wallet.TransferTx(ctx, tx, wallet.TransferInput{
		FromID: job.CustomerID,
		ToID:   s.cfg.EscrowAccountID,
		Amount: job.Price,
		Type:   enums.WalletEntryTypeEscrowHold,
		JobID:  &job.ID,
	})
}

// settleCompletion releases escrow: commission-adjusted payout to the
// provider, commission to platform revenue. The rate is read inside the
// transaction so the value effective at completion time governs.
func (s *service) settleCompletion(ctx context.Context, tx *gorm.DB, job *models.Job) error {
	percent, err := s.settings.CommissionPercentTx(ctx, tx)
	if err != nil {
		return err
	}
	payout, commission, err := settlement.CompletionPayout(job.Price, percent)
	if err != nil {
		return err
	}

	if payout.IsPositive() {
		if err := s.wallet.TransferTx(ctx, tx, wallet.TransferInput{
			FromID: s.cfg.EscrowAccountID,
			ToID:   job.ProviderID,
			Amount: payout,
			Type:   enums.WalletEntryTypeCompletionPayout,
			JobID:  &job.ID,
		}); err != nil {
			return err
		}
	}
	if commission.IsPositive() {
		if err := s.wallet.TransferTx(ctx, tx, wallet.TransferInput{
			FromID: s.cfg.EscrowAccountID,
			ToID:   s.cfg.RevenueAccountID,
			Amount: commission,
			Type:   enums.WalletEntryTypePlatformCommission,
			JobID:  &job.ID,
		}); err != nil {
			return err
		}
	}
	if err := s.accounts.RecordCompletedJobTx(ctx, tx, job.ProviderID); err != nil {
		return err
	}

	s.metrics.ObserveSettlement("completion_payout", payout.InexactFloat64())
	s.metrics.ObserveSettlement("platform_commission", commission.InexactFloat64())
	return nil
}

// settleCancellation splits held escrow between the provider penalty and the
// customer refund. Cancellations before the deposit carry no funds.
func (s *service) settleCancellation(ctx context.Context, tx *gorm.DB, job *models.Job, penalty decimal.Decimal) error {
	if job.DepositPaidAt == nil {
		return nil
	}

	if penalty.IsPositive() {
		if err := s.wallet.TransferTx(ctx, tx, wallet.TransferInput{
			FromID: s.cfg.EscrowAccountID,
			ToID:   job.ProviderID,
			Amount: penalty,
			Type:   enums.WalletEntryTypeCancellationFee,
			JobID:  &job.ID,
		}); err != nil {
			return err
		}
		s.metrics.ObserveSettlement("cancellation_fee", penalty.InexactFloat64())
	}

	refund := job.Price.Sub(penalty)
	if refund.IsPositive() {
		if err := s.wallet.TransferTx(ctx, tx, wallet.TransferInput{
			FromID: s.cfg.EscrowAccountID,
			ToID:   job.CustomerID,
			Amount: refund,
			Type:   enums.WalletEntryTypeEscrowRefund,
			JobID:  &job.ID,
		}); err != nil {
			return err
		}
		s.metrics.ObserveSettlement("escrow_refund", refund.InexactFloat64())
	}
	return nil
}

func (s *service) ResolveDispute(ctx context.Context, input ResolveDisputeInput) (*models.Job, error) {
	if input.JobID == uuid.Nil || input.AdminUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job and admin ids required")
	}
	if input.Outcome != DisputeOutcomeComplete && input.Outcome != DisputeOutcomeRefund {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid dispute outcome %q", input.Outcome))
	}

	release := s.locks.Acquire(input.JobID)
	defer release()

	job, err := s.loadJob(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != enums.JobStatusDisputed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "job is not disputed").
			WithDetails(map[string]any{"status": job.Status})
	}

	now := s.now().UTC()
	target := enums.JobStatusCompleted
	updates := map[string]any{"completed_at": now}
	if input.Outcome == DisputeOutcomeRefund {
		target = enums.JobStatusCancelled
		updates = map[string]any{
			"cancelled_at": now,
			"cancelled_by": enums.UserRoleAdmin,
		}
	}

	actor := Actor{UserID: input.AdminUserID, Role: enums.UserRoleAdmin}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ok, err := s.repo.WithTx(tx).UpdateStatusCAS(ctx, job.ID, enums.JobStatusDisputed, target, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update job status")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "job changed concurrently")
		}

		escrowHeld := job.DepositPaidAt != nil
		if input.Outcome == DisputeOutcomeComplete && escrowHeld {
			if err := s.settleCompletion(ctx, tx, job); err != nil {
				return err
			}
		}
		if input.Outcome == DisputeOutcomeRefund && escrowHeld {
			if err := s.wallet.TransferTx(ctx, tx, wallet.TransferInput{
				FromID: s.cfg.EscrowAccountID,
				ToID:   job.CustomerID,
				Amount: job.Price,
				Type:   enums.WalletEntryTypeEscrowRefund,
				JobID:  &job.ID,
			}); err != nil {
				return err
			}
			s.metrics.ObserveSettlement("escrow_refund", job.Price.InexactFloat64())
		}

		if err := s.emit(ctx, tx, job, enums.EventBookingDisputeResolved, actor, map[string]any{
			"outcome": input.Outcome,
		}); err != nil {
			return err
		}
		message := fmt.Sprintf("Dispute resolved: %s", input.Outcome)
		if err := s.notify(ctx, tx, job.CustomerID, job.ID, enums.NotificationTypeDisputeResolved, "Dispute resolved", message); err != nil {
			return err
		}
		return s.notify(ctx, tx, job.ProviderID, job.ID, enums.NotificationTypeDisputeResolved, "Dispute resolved", message)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncTransition(enums.JobStatusDisputed.String(), target.String())
	s.logInfo(ctx, job.ID, fmt.Sprintf("dispute resolved as %s", input.Outcome))
	return s.loadJob(ctx, input.JobID)
}

func (s *service) Get(ctx context.Context, jobID uuid.UUID, actor Actor) (*models.Job, error) {
	if jobID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job id required")
	}
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if actor.Role != enums.UserRoleAdmin && job.CustomerID != actor.UserID && job.ProviderID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a participant of this booking")
	}
	return job, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	params := ListParams{
		Status: input.Status,
		Limit:  pagination.LimitWithBuffer(input.Limit),
	}
	switch input.Actor.Role {
	case enums.UserRoleCustomer:
		params.CustomerID = &input.Actor.UserID
	case enums.UserRoleProvider:
		params.ProviderID = &input.Actor.UserID
	case enums.UserRoleAdmin:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unknown actor role")
	}
	if input.Cursor != "" {
		cursor, err := pagination.ParseCursor(input.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		params.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Bookings: rows, Cursor: cursor}, nil
}

// SweepArrivedTimeouts applies the provider no-show cancellation to every
// ARRIVED job whose wait window has elapsed. Individual failures do not stop
// the sweep.
func (s *service) SweepArrivedTimeouts(ctx context.Context) (int, error) {
	cutoff := s.now().UTC().Add(-s.cfg.ArrivalWaitWindow)
	jobs, err := s.repo.ListArrivedBefore(ctx, cutoff)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list timed-out arrivals")
	}

	var swept int
	var errs error
	for _, job := range jobs {
		_, err := s.Transition(ctx, TransitionInput{
			JobID: job.ID,
			To:    enums.JobStatusCancelled,
			Actor: Actor{UserID: job.ProviderID, Role: enums.UserRoleProvider},
		})
		if err != nil {
			// Lost races are expected when the customer acts first.
			if pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
				continue
			}
			errs = multierr.Append(errs, fmt.Errorf("job %s: %w", job.ID, err))
			continue
		}
		swept++
	}
	return swept, errs
}

func (s *service) loadJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	job, err := s.repo.Find(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	return job, nil
}

func (s *service) authorizeParticipant(job *models.Job, actor Actor) error {
	switch actor.Role {
	case enums.UserRoleCustomer:
		if job.CustomerID != actor.UserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "not the booking customer")
		}
	case enums.UserRoleProvider:
		if job.ProviderID != actor.UserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "not the booking provider")
		}
	default:
		return pkgerrors.New(pkgerrors.CodeForbidden, "role may not drive booking transitions")
	}
	return nil
}

// checkWaitWindowElapsed gates the provider no-show cancellation on the wait
// window opened at arrival.
func (s *service) checkWaitWindowElapsed(job *models.Job) error {
	if job.Status != enums.JobStatusArrived || job.ArrivedAt == nil {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "no arrival recorded")
	}
	eligibleAt := job.ArrivedAt.Add(s.cfg.ArrivalWaitWindow)
	if s.now().Before(eligibleAt) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "wait window has not elapsed").
			WithDetails(map[string]any{"eligible_at": eligibleAt})
	}
	return nil
}

func (s *service) emit(ctx context.Context, tx *gorm.DB, job *models.Job, eventType enums.OutboxEventType, actor Actor, data map[string]any) error {
	if s.events == nil {
		return nil
	}
	if data == nil {
		data = map[string]any{}
	}
	data["jobId"] = job.ID
	data["customerId"] = job.CustomerID
	data["providerId"] = job.ProviderID
	event := outbox.DomainEvent{
		EventType:     eventType,
		AggregateType: enums.AggregateJob,
		AggregateID:   job.ID,
		Actor:         &outbox.ActorRef{UserID: actor.UserID, Role: actor.Role},
		Data:          data,
		Version:       1,
	}
	if err := s.events.Emit(ctx, tx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit booking event")
	}
	return nil
}

func (s *service) notify(ctx context.Context, tx *gorm.DB, userID uuid.UUID, jobID uuid.UUID, kind enums.NotificationType, title, message string) error {
	if s.notifier == nil {
		return nil
	}
	return s.notifier.NotifyTx(ctx, tx, notifications.CreateInput{
		UserID:  userID,
		JobID:   &jobID,
		Type:    kind,
		Title:   title,
		Message: message,
	})
}

// notifyCounterparty records a feed entry for the party who did not act.
func (s *service) notifyCounterparty(ctx context.Context, tx *gorm.DB, job *models.Job, actor Actor, to enums.JobStatus) error {
	target := job.CustomerID
	if actor.Role == enums.UserRoleCustomer {
		target = job.ProviderID
	}

	kind := enums.NotificationTypeStatusChanged
	title := "Booking update"
	switch to {
	case enums.JobStatusCompleted:
		kind = enums.NotificationTypePaymentSettled
		title = "Booking completed"
	case enums.JobStatusDisputed:
		kind = enums.NotificationTypeDisputeOpened
		title = "Dispute opened"
	}
	return s.notify(ctx, tx, target, job.ID, kind, title,
		fmt.Sprintf("Booking status is now %s", to))
}

func (s *service) logInfo(ctx context.Context, jobID uuid.UUID, msg string) {
	if s.logg == nil {
		return
	}
	logCtx := s.logg.WithJobID(ctx, jobID.String())
	s.logg.Info(logCtx, msg)
}

// buildQuoteItems validates estimate lines and returns them with the repriced
// total.
func buildQuoteItems(inputs []QuoteItemInput) ([]models.QuoteItem, decimal.Decimal, error) {
	if len(inputs) == 0 {
		return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "quote requires at least one item")
	}
	items := make([]models.QuoteItem, 0, len(inputs))
	total := decimal.Zero
	for i, item := range inputs {
		if item.Label == "" {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quote item %d: label required", i))
		}
		if !item.Amount.IsPositive() {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quote item %d: amount must be positive", i))
		}
		if !item.Type.IsValid() {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quote item %d: invalid type %q", i, item.Type))
		}
		items = append(items, models.QuoteItem{
			Position: i,
			Label:    item.Label,
			Amount:   item.Amount,
			Type:     item.Type,
		})
		total = total.Add(item.Amount)
	}
	return items, total, nil
}
