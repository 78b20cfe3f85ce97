package insights

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"agendly/internal/domain"
	"agendly/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// Service produces return-visit suggestions: clients whose latest completed
// appointment for a service has aged into that service's suggestion window.
type Service struct {
	rules        store.FrequencyRuleRepository
	appointments store.AppointmentRepository
	services     store.ServiceRepository
	loc          *time.Location
	now          func() time.Time
}

func NewService(rules store.FrequencyRuleRepository, appointments store.AppointmentRepository, services store.ServiceRepository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		rules:        rules,
		appointments: appointments,
		services:     services,
		loc:          loc,
		now:          time.Now,
	}
}

type RuleInput struct {
	ServiceID                 uuid.UUID
	IdealReturnDays           int
	AnticipationToleranceDays int
}

// UpsertRule creates or replaces the frequency rule for a service.
func (s *Service) UpsertRule(ctx context.Context, shopID uuid.UUID, in RuleInput) (domain.FrequencyRule, error) {
	if shopID == uuid.Nil {
		return domain.FrequencyRule{}, validationError("shop_id is required")
	}
	if in.ServiceID == uuid.Nil {
		return domain.FrequencyRule{}, validationError("service_id is required")
	}
	if in.IdealReturnDays <= 0 {
		return domain.FrequencyRule{}, validationError("ideal_return_days must be positive")
	}
	if in.AnticipationToleranceDays < 0 {
		return domain.FrequencyRule{}, validationError("anticipation_tolerance_days must not be negative")
	}
	if _, err := s.services.Get(ctx, shopID, in.ServiceID); err != nil {
		return domain.FrequencyRule{}, err
	}
	return s.rules.Upsert(ctx, domain.FrequencyRule{
		ShopID:                    shopID,
		ServiceID:                 in.ServiceID,
		IdealReturnDays:           in.IdealReturnDays,
		AnticipationToleranceDays: in.AnticipationToleranceDays,
	})
}

func (s *Service) ListRules(ctx context.Context, shopID uuid.UUID) ([]domain.FrequencyRule, error) {
	if shopID == uuid.Nil {
		return nil, validationError("shop_id is required")
	}
	return s.rules.List(ctx, shopID)
}

// Suggestion asks a client back for a service: the last completed visit is
// DaysSinceVisit days old, and the ideal return is DaysUntilIdeal days away.
type Suggestion struct {
	ClientID       uuid.UUID `json:"client_id"`
	ClientName     string    `json:"client_name"`
	ServiceID      uuid.UUID `json:"service_id"`
	ServiceName    string    `json:"service_name"`
	LastVisit      time.Time `json:"last_visit"`
	DaysSinceVisit int       `json:"days_since_visit"`
	DaysUntilIdeal int       `json:"days_until_ideal"`
}

// ReturnSuggestions lists the (client, service) pairs whose last completed
// visit falls inside the service's suggestion window: at least
// ideal-tolerance days ago but no more than ideal days ago.
func (s *Service) ReturnSuggestions(ctx context.Context, shopID uuid.UUID) ([]Suggestion, error) {
	if shopID == uuid.Nil {
		return nil, validationError("shop_id is required")
	}

	rules, err := s.rules.List(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, nil
	}
	byService := make(map[uuid.UUID]domain.FrequencyRule, len(rules))
	for _, r := range rules {
		byService[r.ServiceID] = r
	}

	visits, err := s.appointments.LatestCompletedVisits(ctx, shopID)
	if err != nil {
		return nil, err
	}

	today := s.now().In(s.loc)
	out := make([]Suggestion, 0, len(visits))
	for _, v := range visits {
		rule, ok := byService[v.ServiceID]
		if !ok {
			continue
		}
		days := daysBetween(v.CompletedAt.In(s.loc), today)
		if days < rule.IdealReturnDays-rule.AnticipationToleranceDays || days > rule.IdealReturnDays {
			continue
		}
		out = append(out, Suggestion{
			ClientID:       v.ClientID,
			ClientName:     v.ClientName,
			ServiceID:      v.ServiceID,
			ServiceName:    v.ServiceName,
			LastVisit:      v.CompletedAt,
			DaysSinceVisit: days,
			DaysUntilIdeal: rule.IdealReturnDays - days,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DaysUntilIdeal < out[j].DaysUntilIdeal })
	return out, nil
}

// daysBetween counts calendar days from one local date to another. The
// dates are rebuilt in UTC so the count is exact across DST shifts, where a
// local day is not 24 hours long.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
