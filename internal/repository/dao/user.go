package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserEmailExists        = errors.New("user already exists")
	ErrUserNotFound           = errors.New("user not found")
	ErrSponsorProfileNotFound = errors.New("sponsor profile not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Name          string `gorm:"not null"`
	Role          string `gorm:"not null"` // "member", "organizer", or "sponsor"
	EmailVerified bool   `gorm:"default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SponsorProfile struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`

	Name        string
	Description string
	Website     string
	Logo        string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_users_email"`) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// UpsertSponsorProfile inserts the profile or, when one already exists for
// the user, overwrites its editable columns.
func (d *UserDAO) UpsertSponsorProfile(ctx context.Context, profile SponsorProfile) (SponsorProfile, error) {
	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "website", "logo", "updated_at"}),
		}).
		Create(&profile)
	if result.Error != nil {
		return SponsorProfile{}, result.Error
	}

	return d.FindSponsorProfileByUserID(ctx, profile.UserID)
}

func (d *UserDAO) FindSponsorProfileByUserID(ctx context.Context, userID uint) (SponsorProfile, error) {
	var profile SponsorProfile

	result := d.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SponsorProfile{}, ErrSponsorProfileNotFound
		}

		return SponsorProfile{}, result.Error
	}

	return profile, nil
}
