package app

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"petcare/internal/domain"
	"petcare/internal/validation"
)

// ProfileService reads and edits the account holder's profile.
type ProfileService struct {
	users    domain.UserRepository
	validate *validator.Validate
}

// NewProfileService creates a ProfileService backed by the given repository.
func NewProfileService(users domain.UserRepository, v *validator.Validate) *ProfileService {
	return &ProfileService{users: users, validate: v}
}

// Get returns the profile of userID.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// Update applies the form to the profile. A new phone number is stored
// unconfirmed.
func (s *ProfileService) Update(ctx context.Context, userID int64, form domain.ProfileForm) (*domain.User, error) {
	form.FullName = validation.Sanitize(form.FullName)
	form.Email = normalizeEmail(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	if err := validateForm(s.validate, form); err != nil {
		return nil, err
	}

	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if form.Email != u.Email {
		other, err := s.users.GetByEmail(ctx, form.Email)
		switch {
		case err == nil && other.ID != userID:
			return nil, ErrEmailTaken
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}

	phone := validation.Digits(form.Phone)
	updated := *u
	updated.FullName = form.FullName
	updated.Email = form.Email
	if phone != u.Phone {
		updated.Phone = phone
		updated.PhoneConfirmed = false
	}

	if err := s.users.UpdateProfile(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
