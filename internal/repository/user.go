package repository

import (
	"context"
	"fmt"

	"github.com/clubsphere/clubsphere-api/internal/domain"
	"github.com/clubsphere/clubsphere-api/internal/repository/dao"
)

var (
	ErrUserEmailExists        = dao.ErrUserEmailExists
	ErrUserNotFound           = dao.ErrUserNotFound
	ErrSponsorProfileNotFound = dao.ErrSponsorProfileNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	UpsertSponsorProfile(ctx context.Context, profile dao.SponsorProfile) (dao.SponsorProfile, error)
	FindSponsorProfileByUserID(ctx context.Context, userID uint) (dao.SponsorProfile, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:    user.Email,
		Password: user.Password,
		Name:     user.Name,
		Role:     user.Role,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) UpsertSponsorProfile(ctx context.Context, profile domain.SponsorProfile) (domain.SponsorProfile, error) {
	upserted, err := r.dao.UpsertSponsorProfile(ctx, r.profileDomainToDao(profile))
	if err != nil {
		return domain.SponsorProfile{}, fmt.Errorf("r.dao.UpsertSponsorProfile -> %w", err)
	}

	return r.profileDaoToDomain(upserted), nil
}

func (r *UserRepository) FindSponsorProfileByUserID(ctx context.Context, userID uint) (domain.SponsorProfile, error) {
	found, err := r.dao.FindSponsorProfileByUserID(ctx, userID)
	if err != nil {
		return domain.SponsorProfile{}, fmt.Errorf("r.dao.FindSponsorProfileByUserID -> %w", err)
	}

	return r.profileDaoToDomain(found), nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:            u.ID,
		Email:         u.Email,
		Password:      u.Password,
		Name:          u.Name,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (r *UserRepository) profileDomainToDao(p domain.SponsorProfile) dao.SponsorProfile {
	return dao.SponsorProfile{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Website:     p.Website,
		Logo:        p.Logo,
	}
}

func (r *UserRepository) profileDaoToDomain(p dao.SponsorProfile) domain.SponsorProfile {
	return domain.SponsorProfile{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Website:     p.Website,
		Logo:        p.Logo,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
