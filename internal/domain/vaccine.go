package domain

import (
	"context"
	"time"
)

// Vaccine is a dose applied to a pet, with an optional next dose.
type Vaccine struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	PetID           int64     `json:"petId"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	ApplicationDate Date      `json:"applicationDate"`
	NextDoseDate    *Date     `json:"nextDoseDate,omitempty"`
	Veterinarian    string    `json:"veterinarian,omitempty"`
	BatchNumber     string    `json:"batchNumber,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// VaccineWithPet is a vaccine joined with the name and species of its pet.
type VaccineWithPet struct {
	Vaccine
	PetName    string `json:"petName"`
	PetSpecies string `json:"petSpecies"`
}

// VaccineRepository is the port for vaccine persistence. Per-user methods are
// scoped to userID.
type VaccineRepository interface {
	CreateVaccine(ctx context.Context, v *Vaccine) (int64, error)
	UpdateVaccine(ctx context.Context, v *Vaccine) error
	DeleteVaccine(ctx context.Context, userID, id int64) error
	GetVaccine(ctx context.Context, userID, id int64) (*VaccineWithPet, error)
	// ListVaccines returns the user's vaccines, most recent application first.
	ListVaccines(ctx context.Context, userID int64) ([]VaccineWithPet, error)
	// ListNextDoseDates returns the next-dose date (nil when unset) of every
	// vaccine the user owns.
	ListNextDoseDates(ctx context.Context, userID int64) ([]*Date, error)
	// ListDueBy returns the user's vaccines with a next dose on or before
	// until, ordered by next dose ascending.
	ListDueBy(ctx context.Context, userID int64, until Date) ([]VaccineWithPet, error)
	// ListAllDueBefore returns vaccines of every user with a next dose
	// strictly before the given date. Only background jobs use it.
	ListAllDueBefore(ctx context.Context, before Date) ([]VaccineWithPet, error)
}
