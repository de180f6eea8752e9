package app

import (
	"context"
	"errors"
	"testing"

	"petcare/internal/domain"
	"petcare/internal/validation"
)

func TestProfileService_Update(t *testing.T) {
	current := &domain.User{
		ID:             1,
		Email:          "maria@example.com",
		FullName:       "Maria Silva",
		CPF:            "52998224725",
		Phone:          "11987654321",
		PhoneConfirmed: true,
	}

	tests := []struct {
		name          string
		form          domain.ProfileForm
		otherEmailID  int64
		wantErr       error
		wantConfirmed bool
	}{
		{
			name:          "same phone keeps confirmation",
			form:          domain.ProfileForm{FullName: "Maria S.", Email: "maria@example.com", Phone: "(11) 98765-4321"},
			wantConfirmed: true,
		},
		{
			name:          "new phone resets confirmation",
			form:          domain.ProfileForm{FullName: "Maria Silva", Email: "maria@example.com", Phone: "(21) 91234-5678"},
			wantConfirmed: false,
		},
		{
			name:         "email owned by someone else",
			form:         domain.ProfileForm{FullName: "Maria Silva", Email: "joao@example.com"},
			otherEmailID: 2,
			wantErr:      ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved *domain.User
			users := &mockUserRepo{
				getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
					u := *current
					return &u, nil
				},
				getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
					if tt.otherEmailID != 0 {
						return &domain.User{ID: tt.otherEmailID, Email: email}, nil
					}
					return nil, domain.ErrNotFound
				},
				updateProfileFn: func(ctx context.Context, u *domain.User) error {
					saved = u
					return nil
				},
			}

			_, err := NewProfileService(users, validation.New()).Update(context.Background(), 1, tt.form)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if saved.PhoneConfirmed != tt.wantConfirmed {
				t.Errorf("expected phoneConfirmed=%v, got %v", tt.wantConfirmed, saved.PhoneConfirmed)
			}
			if saved.CPF != current.CPF {
				t.Error("CPF must not change")
			}
		})
	}
}

func TestProfileService_Get_NotFound(t *testing.T) {
	_, err := NewProfileService(&mockUserRepo{}, validation.New()).Get(context.Background(), 9)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
