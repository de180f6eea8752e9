package app

import (
	"context"

	"github.com/go-playground/validator/v10"

	"petcare/internal/domain"
	"petcare/internal/validation"
)

// PetService encapsulates pet record use cases.
type PetService struct {
	repo     domain.PetRepository
	validate *validator.Validate
	cal      Calendar
}

// NewPetService creates a PetService backed by the given repository.
func NewPetService(repo domain.PetRepository, v *validator.Validate, cal Calendar) *PetService {
	return &PetService{repo: repo, validate: v, cal: cal}
}

// Create validates and stores a new pet for userID.
func (s *PetService) Create(ctx context.Context, userID int64, form domain.PetForm) (*domain.Pet, error) {
	p, err := s.fromForm(userID, form)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = s.cal.Now().UTC()
	id, err := s.repo.CreatePet(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

// Update replaces the editable fields of pet id.
func (s *PetService) Update(ctx context.Context, userID, id int64, form domain.PetForm) (*domain.Pet, error) {
	existing, err := s.repo.GetPet(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	p, err := s.fromForm(userID, form)
	if err != nil {
		return nil, err
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if err := s.repo.UpdatePet(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes pet id along with its vaccines.
func (s *PetService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.DeletePet(ctx, userID, id)
}

// Get returns a single pet.
func (s *PetService) Get(ctx context.Context, userID, id int64) (*domain.Pet, error) {
	return s.repo.GetPet(ctx, userID, id)
}

// List returns every pet of userID, newest first.
func (s *PetService) List(ctx context.Context, userID int64) ([]domain.Pet, error) {
	return s.repo.ListPets(ctx, userID, 0)
}

// Recent returns up to limit of the newest pets.
func (s *PetService) Recent(ctx context.Context, userID int64, limit int) ([]domain.Pet, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.repo.ListPets(ctx, userID, limit)
}

// Count returns how many pets userID has.
func (s *PetService) Count(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountPets(ctx, userID)
}

func (s *PetService) fromForm(userID int64, form domain.PetForm) (*domain.Pet, error) {
	form.Name = validation.Sanitize(form.Name)
	form.Breed = validation.Sanitize(form.Breed)
	if err := validateForm(s.validate, form); err != nil {
		return nil, err
	}

	p := &domain.Pet{
		UserID:   userID,
		Name:     form.Name,
		Species:  form.Species,
		Breed:    form.Breed,
		WeightKg: form.WeightKg,
	}
	if form.BirthDate != "" {
		d, err := domain.ParseDate(form.BirthDate)
		if err != nil {
			return nil, fieldError("birthDate", "Data inválida (esperado AAAA-MM-DD)")
		}
		if d.After(s.cal.Today()) {
			return nil, fieldError("birthDate", "Data de nascimento não pode estar no futuro")
		}
		p.BirthDate = &d
	}
	return p, nil
}
