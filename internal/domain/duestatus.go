package domain

// Thresholds, in days from today, used when judging a next-dose date.
const (
	UrgentWindowDays   = 7
	UpcomingWindowDays = 30
)

// DueStatus is the per-item urgency badge of a vaccine's next dose.
type DueStatus string

const (
	DueNone     DueStatus = "none"
	DueOverdue  DueStatus = "overdue"
	DueUrgent   DueStatus = "urgent"
	DueUpcoming DueStatus = "upcoming"
	DueUpToDate DueStatus = "up_to_date"
)

// Label returns the badge text shown next to a vaccine.
func (s DueStatus) Label() string {
	switch s {
	case DueOverdue:
		return "Atrasada"
	case DueUrgent:
		return "Urgente"
	case DueUpcoming:
		return "Próxima"
	case DueUpToDate:
		return "Em dia"
	default:
		return ""
	}
}

// ClassifyDueDate places next relative to today for list and detail views:
// overdue before today, urgent within 7 days, upcoming within 30 days, up to
// date beyond that. A nil date means nothing is scheduled.
func ClassifyDueDate(next *Date, today Date) DueStatus {
	if next == nil || next.IsZero() {
		return DueNone
	}
	switch {
	case next.Before(today):
		return DueOverdue
	case next.Before(today.AddDays(UrgentWindowDays)):
		return DueUrgent
	case next.Before(today.AddDays(UpcomingWindowDays)):
		return DueUpcoming
	default:
		return DueUpToDate
	}
}

// DueBucket is the coarse classification used by aggregate counters.
type DueBucket string

const (
	BucketOverdue  DueBucket = "overdue"
	BucketUpcoming DueBucket = "upcoming"
	BucketUpToDate DueBucket = "up_to_date"
)

// ClassifyAggregate is the two-threshold variant used by stat cards: it has
// no urgent band, so anything before today+30 that is not overdue counts as
// upcoming. Missing dates count as up to date.
func ClassifyAggregate(next *Date, today Date) DueBucket {
	if next == nil || next.IsZero() {
		return BucketUpToDate
	}
	switch {
	case next.Before(today):
		return BucketOverdue
	case next.Before(today.AddDays(UpcomingWindowDays)):
		return BucketUpcoming
	default:
		return BucketUpToDate
	}
}

// VaccineStats are the counters shown on the dashboard and vaccine pages.
type VaccineStats struct {
	Total    int `json:"total"`
	UpToDate int `json:"upToDate"`
	Upcoming int `json:"upcoming"`
	Overdue  int `json:"overdue"`
}

// CountVaccineStats tallies next-dose dates with ClassifyAggregate.
func CountVaccineStats(next []*Date, today Date) VaccineStats {
	st := VaccineStats{Total: len(next)}
	for _, d := range next {
		switch ClassifyAggregate(d, today) {
		case BucketOverdue:
			st.Overdue++
		case BucketUpcoming:
			st.Upcoming++
		default:
			st.UpToDate++
		}
	}
	return st
}
