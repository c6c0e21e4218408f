package repository

import (
	"context"
	"fmt"

	"github.com/clubsphere/clubsphere-api/internal/domain"
	"github.com/clubsphere/clubsphere-api/internal/repository/dao"
)

var (
	ErrSponsorshipNotFound = dao.ErrSponsorshipNotFound
	ErrPaymentNotFound     = dao.ErrPaymentNotFound
	ErrPaymentExists       = dao.ErrPaymentExists
)

type SponsorshipDAO interface {
	Insert(ctx context.Context, sponsorship dao.Sponsorship) (dao.Sponsorship, error)
	FindByID(ctx context.Context, id uint) (dao.Sponsorship, error)
	UpdateStatus(ctx context.Context, id uint, expected, next string) (bool, error)
	SetCheckoutRef(ctx context.Context, id uint, ref string) error
	InsertPayment(ctx context.Context, payment dao.Payment) (dao.Payment, error)
	FindPaymentBySponsorshipID(ctx context.Context, sponsorshipID uint) (dao.Payment, error)
}

type SponsorshipRepository struct {
	dao SponsorshipDAO
}

func NewSponsorshipRepository(dao SponsorshipDAO) *SponsorshipRepository {
	return &SponsorshipRepository{
		dao: dao,
	}
}

func (r *SponsorshipRepository) Create(ctx context.Context, sponsorship domain.Sponsorship) (domain.Sponsorship, error) {
	created, err := r.dao.Insert(ctx, sponsorshipDomainToDao(sponsorship))
	if err != nil {
		return domain.Sponsorship{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return sponsorshipDaoToDomain(created), nil
}

func (r *SponsorshipRepository) GetByID(ctx context.Context, id uint) (domain.Sponsorship, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Sponsorship{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return sponsorshipDaoToDomain(found), nil
}

// UpdateStatus applies the CAS transition; false means the row was no
// longer in the expected status when the update ran.
func (r *SponsorshipRepository) UpdateStatus(ctx context.Context, id uint, expected, next domain.SponsorshipStatus) (bool, error) {
	swapped, err := r.dao.UpdateStatus(ctx, id, string(expected), string(next))
	if err != nil {
		return false, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return swapped, nil
}

func (r *SponsorshipRepository) SetCheckoutRef(ctx context.Context, id uint, ref string) error {
	if err := r.dao.SetCheckoutRef(ctx, id, ref); err != nil {
		return fmt.Errorf("r.dao.SetCheckoutRef -> %w", err)
	}

	return nil
}

func (r *SponsorshipRepository) CreatePayment(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	created, err := r.dao.InsertPayment(ctx, paymentDomainToDao(payment))
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.InsertPayment -> %w", err)
	}

	return paymentDaoToDomain(created), nil
}

func (r *SponsorshipRepository) GetPaymentBySponsorshipID(ctx context.Context, sponsorshipID uint) (domain.Payment, error) {
	found, err := r.dao.FindPaymentBySponsorshipID(ctx, sponsorshipID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.FindPaymentBySponsorshipID -> %w", err)
	}

	return paymentDaoToDomain(found), nil
}

func sponsorshipDomainToDao(s domain.Sponsorship) dao.Sponsorship {
	return dao.Sponsorship{
		ID:               s.ID,
		EventID:          s.EventID,
		SponsorProfileID: s.SponsorProfileID,
		UserID:           s.UserID,
		Amount:           s.Amount,
		Tier:             s.Tier,
		Status:           string(s.Status),
		CheckoutRef:      s.CheckoutRef,
	}
}

func sponsorshipDaoToDomain(s dao.Sponsorship) domain.Sponsorship {
	sponsorship := domain.Sponsorship{
		ID:               s.ID,
		EventID:          s.EventID,
		SponsorProfileID: s.SponsorProfileID,
		UserID:           s.UserID,
		Amount:           s.Amount,
		Tier:             s.Tier,
		Status:           domain.SponsorshipStatus(s.Status),
		CheckoutRef:      s.CheckoutRef,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}

	if s.Payment != nil {
		payment := paymentDaoToDomain(*s.Payment)
		sponsorship.Payment = &payment
	}

	return sponsorship
}

func paymentDomainToDao(p domain.Payment) dao.Payment {
	return dao.Payment{
		ID:            p.ID,
		SponsorshipID: p.SponsorshipID,
		Method:        string(p.Method),
		Amount:        p.Amount,
		ProviderRef:   p.ProviderRef,
	}
}

func paymentDaoToDomain(p dao.Payment) domain.Payment {
	return domain.Payment{
		ID:            p.ID,
		SponsorshipID: p.SponsorshipID,
		Method:        domain.PaymentMethod(p.Method),
		Amount:        p.Amount,
		ProviderRef:   p.ProviderRef,
		CreatedAt:     p.CreatedAt,
	}
}
