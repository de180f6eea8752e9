package app

import (
	"context"

	"petcare/internal/domain"
)

// recentPetsLimit is how many pets the dashboard shows.
const recentPetsLimit = 5

// DashboardService assembles the home screen summary.
type DashboardService struct {
	pets          *PetService
	vaccines      *VaccineService
	notifications domain.NotificationRepository
}

// NewDashboardService creates a DashboardService from the services it reads.
func NewDashboardService(pets *PetService, vaccines *VaccineService, notifications domain.NotificationRepository) *DashboardService {
	return &DashboardService{pets: pets, vaccines: vaccines, notifications: notifications}
}

// Summary is the payload of the dashboard.
type Summary struct {
	PetCount    int                 `json:"petCount"`
	Stats       domain.VaccineStats `json:"stats"`
	UnreadCount int                 `json:"unreadCount"`
	RecentPets  []domain.Pet        `json:"recentPets"`
	Upcoming    []VaccineView       `json:"upcoming"`
}

// GetSummary returns pet and vaccine counts, the newest pets and the
// vaccines due within the upcoming window.
func (s *DashboardService) GetSummary(ctx context.Context, userID int64) (*Summary, error) {
	count, err := s.pets.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.vaccines.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.pets.Recent(ctx, userID, recentPetsLimit)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.vaccines.Upcoming(ctx, userID)
	if err != nil {
		return nil, err
	}

	if recent == nil {
		recent = []domain.Pet{}
	}
	return &Summary{
		PetCount:    count,
		Stats:       stats,
		UnreadCount: unread,
		RecentPets:  recent,
		Upcoming:    upcoming,
	}, nil
}
