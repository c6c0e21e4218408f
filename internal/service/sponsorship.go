package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clubsphere/clubsphere-api/internal/domain"
	"github.com/clubsphere/clubsphere-api/internal/repository"
)

var (
	ErrSponsorshipNotFound   = repository.ErrSponsorshipNotFound
	ErrNotSponsor            = errors.New("only sponsors can create sponsorships")
	ErrSponsorProfileMissing = errors.New("sponsor profile missing")
	ErrInvalidAmount         = domain.ErrInvalidAmount
	ErrTierAmountMismatch    = domain.ErrTierAmountMismatch
	ErrSandboxDisabled       = errors.New("sandbox auto-complete disabled on this environment")
	ErrInvalidTargetStatus   = errors.New("target status must be COMPLETED or FAILED")
	ErrPaymentProvider       = errors.New("payment provider unavailable")
)

type SponsorshipRepository interface {
	Create(ctx context.Context, sponsorship domain.Sponsorship) (domain.Sponsorship, error)
	GetByID(ctx context.Context, id uint) (domain.Sponsorship, error)
	UpdateStatus(ctx context.Context, id uint, expected, next domain.SponsorshipStatus) (bool, error)
	SetCheckoutRef(ctx context.Context, id uint, ref string) error
	CreatePayment(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	GetPaymentBySponsorshipID(ctx context.Context, sponsorshipID uint) (domain.Payment, error)
}

type SponsorshipEventRepository interface {
	GetByID(ctx context.Context, id uint) (domain.Event, error)
}

type SponsorshipUserRepository interface {
	FindSponsorProfileByUserID(ctx context.Context, userID uint) (domain.SponsorProfile, error)
}

// CheckoutOpener opens a hosted checkout session with the payment processor.
type CheckoutOpener interface {
	OpenCheckout(ctx context.Context, amount float64, currency string, metadata map[string]string) (domain.Checkout, error)
}

// Policy is the environment capability surface of the sponsorship service,
// injected at construction so business logic never reads ambient process
// state.
type Policy struct {
	AllowSandboxAutoComplete bool
}

type CreateSponsorshipInput struct {
	EventID      uint
	Amount       float64
	Tier         string
	Sandbox      bool
	AutoComplete bool
}

// SponsorshipService owns the sponsorship lifecycle: it validates and
// persists PENDING pledges, opens checkout sessions, and applies the
// terminal PENDING -> COMPLETED/FAILED transition exactly once per record.
type SponsorshipService struct {
	repo      SponsorshipRepository
	eventRepo SponsorshipEventRepository
	userRepo  SponsorshipUserRepository
	checkout  CheckoutOpener
	policy    Policy
}

func NewSponsorshipService(
	repo SponsorshipRepository,
	eventRepo SponsorshipEventRepository,
	userRepo SponsorshipUserRepository,
	checkout CheckoutOpener,
	policy Policy,
) *SponsorshipService {
	return &SponsorshipService{
		repo:      repo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		checkout:  checkout,
		policy:    policy,
	}
}

// CreateSponsorship validates the pledge and persists it with status
// PENDING. Retried creation calls are safe but not deduplicated: each
// submission is treated as a distinct pledge attempt, and an abandoned
// PENDING row is inert.
func (s *SponsorshipService) CreateSponsorship(ctx context.Context, actor domain.User, input CreateSponsorshipInput) (domain.Sponsorship, error) {
	if actor.Role != domain.RoleSponsor {
		return domain.Sponsorship{}, ErrNotSponsor
	}

	profile, err := s.userRepo.FindSponsorProfileByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrSponsorProfileNotFound) {
			return domain.Sponsorship{}, ErrSponsorProfileMissing
		}

		return domain.Sponsorship{}, fmt.Errorf("s.userRepo.FindSponsorProfileByUserID -> %w", err)
	}

	if err = domain.ValidateAmount(input.Amount, ""); err != nil {
		return domain.Sponsorship{}, err
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Sponsorship{}, ErrEventNotFound
		}

		return domain.Sponsorship{}, fmt.Errorf("s.eventRepo.GetByID -> %w", err)
	}

	if err = domain.ValidateAmount(input.Amount, input.Tier); err != nil {
		return domain.Sponsorship{}, err
	}

	// Gate the simulated path before any write so a disabled environment
	// leaves no record behind.
	simulate := input.Sandbox && input.AutoComplete
	if simulate && !s.policy.AllowSandboxAutoComplete {
		return domain.Sponsorship{}, ErrSandboxDisabled
	}

	sponsorship, err := s.repo.Create(ctx, domain.Sponsorship{
		EventID:          event.ID,
		SponsorProfileID: profile.ID,
		UserID:           actor.ID,
		Amount:           input.Amount,
		Tier:             input.Tier,
		Status:           domain.SponsorshipPending,
	})
	if err != nil {
		return domain.Sponsorship{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if simulate {
		completed, err := s.CompleteSponsorship(ctx, sponsorship.ID, domain.SponsorshipCompleted, domain.PaymentDetails{
			Method:      domain.PaymentMethodSandbox,
			Amount:      sponsorship.Amount,
			ProviderRef: "sandbox-" + uuid.NewString(),
		})
		if err != nil {
			return domain.Sponsorship{}, fmt.Errorf("s.CompleteSponsorship -> %w", err)
		}

		return completed, nil
	}

	if input.Sandbox {
		// Sandbox without auto-complete: the client drives a simulated
		// checkout itself and reports back through the status endpoint.
		return sponsorship, nil
	}

	checkout, err := s.checkout.OpenCheckout(ctx, sponsorship.Amount, "usd", map[string]string{
		"sponsorship_id": strconv.FormatUint(uint64(sponsorship.ID), 10),
		"event_id":       strconv.FormatUint(uint64(sponsorship.EventID), 10),
		"tier":           sponsorship.Tier,
	})
	if err != nil {
		// The PENDING row stays behind; it is inert and the client may retry.
		zap.L().Error("failed to open checkout session",
			zap.Uint("sponsorship_id", sponsorship.ID),
			zap.Error(err))

		return domain.Sponsorship{}, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	if err = s.repo.SetCheckoutRef(ctx, sponsorship.ID, checkout.ProviderRef); err != nil {
		return domain.Sponsorship{}, fmt.Errorf("s.repo.SetCheckoutRef -> %w", err)
	}

	sponsorship.CheckoutRef = checkout.ProviderRef
	sponsorship.CheckoutURL = checkout.URL

	return sponsorship, nil
}

// CompleteSponsorship applies the terminal transition for one completion
// signal. It is idempotent: a sponsorship already in a terminal state is
// returned unchanged, and concurrent signals for the same id resolve to
// exactly one applied transition (CAS on the status column). The Payment
// created on COMPLETED always carries the sponsorship's persisted amount,
// never the amount reported by the signal.
func (s *SponsorshipService) CompleteSponsorship(ctx context.Context, id uint, target domain.SponsorshipStatus, details domain.PaymentDetails) (domain.Sponsorship, error) {
	if !target.IsTerminal() {
		return domain.Sponsorship{}, ErrInvalidTargetStatus
	}

	sponsorship, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSponsorshipNotFound) {
			return domain.Sponsorship{}, ErrSponsorshipNotFound
		}

		return domain.Sponsorship{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	if sponsorship.Status.IsTerminal() {
		// Duplicate completion signal: report the stored outcome unchanged.
		return s.withPayment(ctx, sponsorship)
	}

	swapped, err := s.repo.UpdateStatus(ctx, id, domain.SponsorshipPending, target)
	if err != nil {
		return domain.Sponsorship{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}
	if !swapped {
		// A concurrent signal won the transition; return whatever it decided.
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return domain.Sponsorship{}, fmt.Errorf("s.repo.GetByID -> %w", err)
		}

		return s.withPayment(ctx, current)
	}

	sponsorship.Status = target

	if target == domain.SponsorshipCompleted {
		payment, err := s.recordPayment(ctx, sponsorship, details)
		if err != nil {
			// The status is already COMPLETED; the next read repairs the
			// missing Payment rather than dropping it.
			return sponsorship, err
		}
		sponsorship.Payment = &payment
	}

	return sponsorship, nil
}

// GetSponsorship reads one sponsorship and performs reconciliation-on-read:
// a COMPLETED record with no Payment row gets its Payment re-created from
// the persisted amount.
func (s *SponsorshipService) GetSponsorship(ctx context.Context, id uint) (domain.Sponsorship, error) {
	sponsorship, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSponsorshipNotFound) {
			return domain.Sponsorship{}, ErrSponsorshipNotFound
		}

		return domain.Sponsorship{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return s.withPayment(ctx, sponsorship)
}

// recordPayment creates the single Payment backing a completed sponsorship.
// The unique sponsorship_id index absorbs duplicate-signal races; a
// transient insert failure is retried once before surfacing.
func (s *SponsorshipService) recordPayment(ctx context.Context, sponsorship domain.Sponsorship, details domain.PaymentDetails) (domain.Payment, error) {
	method := details.Method
	if method == "" {
		method = domain.PaymentMethodCard
	}

	payment := domain.Payment{
		SponsorshipID: sponsorship.ID,
		Method:        method,
		Amount:        sponsorship.Amount,
		ProviderRef:   details.ProviderRef,
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		created, err := s.repo.CreatePayment(ctx, payment)
		if err == nil {
			return created, nil
		}
		if errors.Is(err, repository.ErrPaymentExists) {
			return s.repo.GetPaymentBySponsorshipID(ctx, sponsorship.ID)
		}
		lastErr = err
	}

	zap.L().Error("payment creation failed after completion",
		zap.Uint("sponsorship_id", sponsorship.ID),
		zap.Error(lastErr))

	return domain.Payment{}, fmt.Errorf("s.repo.CreatePayment -> %w", lastErr)
}

// withPayment attaches the Payment to a terminal sponsorship, repairing a
// COMPLETED record whose Payment never landed.
func (s *SponsorshipService) withPayment(ctx context.Context, sponsorship domain.Sponsorship) (domain.Sponsorship, error) {
	if sponsorship.Status != domain.SponsorshipCompleted || sponsorship.Payment != nil {
		return sponsorship, nil
	}

	payment, err := s.repo.GetPaymentBySponsorshipID(ctx, sponsorship.ID)
	if err == nil {
		sponsorship.Payment = &payment

		return sponsorship, nil
	}
	if !errors.Is(err, repository.ErrPaymentNotFound) {
		return sponsorship, fmt.Errorf("s.repo.GetPaymentBySponsorshipID -> %w", err)
	}

	repaired, err := s.recordPayment(ctx, sponsorship, domain.PaymentDetails{Method: domain.PaymentMethodCard})
	if err != nil {
		return sponsorship, err
	}
	sponsorship.Payment = &repaired

	return sponsorship, nil
}
