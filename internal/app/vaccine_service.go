package app

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"petcare/internal/domain"
	"petcare/internal/validation"
)

// VaccineView is a vaccine as shown in lists: joined with its pet and tagged
// with the urgency of its next dose.
type VaccineView struct {
	domain.VaccineWithPet
	Status      domain.DueStatus `json:"status"`
	StatusLabel string           `json:"statusLabel"`
}

// VaccineService encapsulates vaccination record use cases.
type VaccineService struct {
	repo     domain.VaccineRepository
	pets     domain.PetRepository
	validate *validator.Validate
	cal      Calendar
}

// NewVaccineService creates a VaccineService backed by the given repositories.
func NewVaccineService(repo domain.VaccineRepository, pets domain.PetRepository, v *validator.Validate, cal Calendar) *VaccineService {
	return &VaccineService{repo: repo, pets: pets, validate: v, cal: cal}
}

// Create validates and stores a vaccine for one of userID's pets.
func (s *VaccineService) Create(ctx context.Context, userID int64, form domain.VaccineForm) (*VaccineView, error) {
	v, err := s.fromForm(ctx, userID, form)
	if err != nil {
		return nil, err
	}
	v.CreatedAt = s.cal.Now().UTC()
	id, err := s.repo.CreateVaccine(ctx, v)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

// Update replaces the editable fields of vaccine id.
func (s *VaccineService) Update(ctx context.Context, userID, id int64, form domain.VaccineForm) (*VaccineView, error) {
	existing, err := s.repo.GetVaccine(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	v, err := s.fromForm(ctx, userID, form)
	if err != nil {
		return nil, err
	}
	v.ID = existing.ID
	v.CreatedAt = existing.CreatedAt
	if err := s.repo.UpdateVaccine(ctx, v); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

// Delete removes vaccine id.
func (s *VaccineService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteVaccine(ctx, userID, id)
}

// Get returns a single vaccine with its status.
func (s *VaccineService) Get(ctx context.Context, userID, id int64) (*VaccineView, error) {
	v, err := s.repo.GetVaccine(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	view := annotate(*v, s.cal.Today())
	return &view, nil
}

// List returns every vaccine of userID with its four-state status.
func (s *VaccineService) List(ctx context.Context, userID int64) ([]VaccineView, error) {
	items, err := s.repo.ListVaccines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return annotateAll(items, s.cal.Today()), nil
}

// Upcoming returns vaccines whose next dose falls on or before today+30,
// overdue ones included, soonest first.
func (s *VaccineService) Upcoming(ctx context.Context, userID int64) ([]VaccineView, error) {
	today := s.cal.Today()
	items, err := s.repo.ListDueBy(ctx, userID, today.AddDays(domain.UpcomingWindowDays))
	if err != nil {
		return nil, err
	}
	return annotateAll(items, today), nil
}

// Stats counts the user's vaccines with the aggregate two-threshold rule.
func (s *VaccineService) Stats(ctx context.Context, userID int64) (domain.VaccineStats, error) {
	dates, err := s.repo.ListNextDoseDates(ctx, userID)
	if err != nil {
		return domain.VaccineStats{}, err
	}
	return domain.CountVaccineStats(dates, s.cal.Today()), nil
}

func (s *VaccineService) fromForm(ctx context.Context, userID int64, form domain.VaccineForm) (*domain.Vaccine, error) {
	form.Name = validation.Sanitize(form.Name)
	form.Description = validation.Sanitize(form.Description)
	form.Veterinarian = validation.Sanitize(form.Veterinarian)
	form.BatchNumber = validation.Sanitize(form.BatchNumber)
	if err := validateForm(s.validate, form); err != nil {
		return nil, err
	}

	applied, err := domain.ParseDate(form.ApplicationDate)
	if err != nil {
		return nil, fieldError("applicationDate", "Data inválida (esperado AAAA-MM-DD)")
	}
	v := &domain.Vaccine{
		UserID:          userID,
		PetID:           form.PetID,
		Name:            form.Name,
		Description:     form.Description,
		ApplicationDate: applied,
		Veterinarian:    form.Veterinarian,
		BatchNumber:     form.BatchNumber,
	}
	if form.NextDoseDate != "" {
		next, err := domain.ParseDate(form.NextDoseDate)
		if err != nil {
			return nil, fieldError("nextDoseDate", "Data inválida (esperado AAAA-MM-DD)")
		}
		if next.Before(applied) {
			return nil, fieldError("nextDoseDate", "Próxima dose não pode ser anterior à aplicação")
		}
		v.NextDoseDate = &next
	}

	if _, err := s.pets.GetPet(ctx, userID, form.PetID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fieldError("petId", "Pet não encontrado")
		}
		return nil, err
	}
	return v, nil
}

func annotate(v domain.VaccineWithPet, today domain.Date) VaccineView {
	st := domain.ClassifyDueDate(v.NextDoseDate, today)
	return VaccineView{VaccineWithPet: v, Status: st, StatusLabel: st.Label()}
}

func annotateAll(items []domain.VaccineWithPet, today domain.Date) []VaccineView {
	out := make([]VaccineView, 0, len(items))
	for _, v := range items {
		out = append(out, annotate(v, today))
	}
	return out
}
