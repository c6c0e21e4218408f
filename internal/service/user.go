package service

import (
	"context"
	"fmt"

	"github.com/clubsphere/clubsphere-api/internal/domain"
	"github.com/clubsphere/clubsphere-api/internal/repository"
)

var (
	ErrUserNotFound           = repository.ErrUserNotFound
	ErrSponsorProfileNotFound = repository.ErrSponsorProfileNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	UpsertSponsorProfile(ctx context.Context, profile domain.SponsorProfile) (domain.SponsorProfile, error)
	FindSponsorProfileByUserID(ctx context.Context, userID uint) (domain.SponsorProfile, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetSponsorProfile(ctx context.Context, userID uint) (domain.SponsorProfile, error) {
	profile, err := s.repo.FindSponsorProfileByUserID(ctx, userID)
	if err != nil {
		return domain.SponsorProfile{}, fmt.Errorf("s.repo.FindSponsorProfileByUserID -> %w", err)
	}

	return profile, nil
}

func (s *UserService) UpsertSponsorProfile(ctx context.Context, profile domain.SponsorProfile) (domain.SponsorProfile, error) {
	upserted, err := s.repo.UpsertSponsorProfile(ctx, profile)
	if err != nil {
		return domain.SponsorProfile{}, fmt.Errorf("s.repo.UpsertSponsorProfile -> %w", err)
	}

	return upserted, nil
}
