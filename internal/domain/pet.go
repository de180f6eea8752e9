package domain

import (
	"context"
	"time"
)

// Species accepted for a pet.
const (
	SpeciesDog = "cachorro"
	SpeciesCat = "gato"
)

// Pet is an animal owned by a user.
type Pet struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     string    `json:"breed,omitempty"`
	BirthDate *Date     `json:"birthDate,omitempty"`
	WeightKg  *float64  `json:"weightKg,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PetRepository is the port for pet persistence. All methods are scoped to
// userID.
type PetRepository interface {
	CreatePet(ctx context.Context, p *Pet) (int64, error)
	UpdatePet(ctx context.Context, p *Pet) error
	DeletePet(ctx context.Context, userID, id int64) error
	GetPet(ctx context.Context, userID, id int64) (*Pet, error)
	// ListPets returns the user's pets newest first; limit <= 0 means all.
	ListPets(ctx context.Context, userID int64, limit int) ([]Pet, error)
	CountPets(ctx context.Context, userID int64) (int, error)
}
