package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"agendly/internal/domain"
	"agendly/internal/schedule"
	"agendly/internal/store"
)

// Repos bundles the stores the booking service depends on.
type Repos struct {
	Shops         store.ShopRepository
	Professionals store.ProfessionalRepository
	Services      store.ServiceRepository
	Clients       store.ClientRepository
	Appointments  store.AppointmentRepository
}

// Service implements the booking use-cases: creating and moving
// appointments, driving their status lifecycle, and answering availability
// queries. All wall-clock decisions use the explicitly configured working
// window and location.
type Service struct {
	repos  Repos
	window schedule.WorkingWindow
	loc    *time.Location
}

func NewService(repos Repos, window schedule.WorkingWindow, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if !window.Valid() {
		window = schedule.DefaultWindow
	}
	return &Service{repos: repos, window: window, loc: loc}
}

type BookInput struct {
	ShopID         uuid.UUID
	ClientID       uuid.UUID
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID
	StartTime      time.Time

	// EndTime is normally zero and derived from the service duration. A
	// caller that already carries an explicit end (imports, repairs) may
	// supply one and it is kept as-is.
	EndTime time.Time
}

// Book creates an appointment in pending status. The end instant is derived
// from the service duration, the price is snapshotted from the service, and
// the conflict scan plus the insert run under the professional's calendar
// lock.
func (s *Service) Book(ctx context.Context, in BookInput) (domain.Appointment, error) {
	if in.ShopID == uuid.Nil {
		return domain.Appointment{}, validationError("shop_id is required")
	}
	if in.ClientID == uuid.Nil {
		return domain.Appointment{}, validationError("client_id is required")
	}
	if in.ServiceID == uuid.Nil {
		return domain.Appointment{}, validationError("service_id is required")
	}
	if in.ProfessionalID == uuid.Nil {
		return domain.Appointment{}, validationError("professional_id is required")
	}
	if in.StartTime.IsZero() {
		return domain.Appointment{}, validationError("start_time is required")
	}

	svc, err := s.repos.Services.Get(ctx, in.ShopID, in.ServiceID)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("service lookup: %w", err)
	}
	pro, err := s.repos.Professionals.Get(ctx, in.ShopID, in.ProfessionalID)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("professional lookup: %w", err)
	}
	if !pro.Active {
		return domain.Appointment{}, validationError("professional is not active")
	}
	qualified, err := s.repos.Services.IsQualified(ctx, svc.ID, pro.ID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if !qualified {
		return domain.Appointment{}, validationError("professional is not qualified for this service")
	}
	if _, err := s.repos.Clients.Get(ctx, in.ShopID, in.ClientID); err != nil {
		return domain.Appointment{}, fmt.Errorf("client lookup: %w", err)
	}

	start := in.StartTime.UTC()
	end := in.EndTime.UTC()
	if in.EndTime.IsZero() {
		end = schedule.EndOf(start, svc.DurationMinutes)
	}
	if !end.After(start) {
		return domain.Appointment{}, validationError("end_time must be after start_time")
	}

	appt := domain.Appointment{
		ShopID:            in.ShopID,
		ClientID:          in.ClientID,
		ServiceID:         svc.ID,
		ProfessionalID:    pro.ID,
		StartTime:         start,
		EndTime:           end,
		Status:            domain.AppointmentPending,
		InitialPriceCents: svc.PriceCents,
	}

	var out domain.Appointment
	err = s.repos.Appointments.InProfessionalTransaction(ctx, pro.ID, func(ctx context.Context, tx store.BookingTx) error {
		if err := s.ensureFree(ctx, tx, pro, schedule.Interval{Start: start, End: end}, uuid.Nil); err != nil {
			return err
		}
		created, err := tx.CreateAppointment(ctx, appt)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return domain.Appointment{}, s.mapConflict(err, pro, start, end)
	}
	return out, nil
}

type RescheduleInput struct {
	ShopID        uuid.UUID
	AppointmentID uuid.UUID
	StartTime     time.Time

	// ServiceID optionally switches the appointment to another service; the
	// end instant is re-derived from the new duration. The initial price is
	// never re-derived.
	ServiceID uuid.UUID
}

// Reschedule moves an occupying appointment to a new start. The appointment
// is excluded from its own conflict scan, so moving within or adjacent to
// its current slot works.
func (s *Service) Reschedule(ctx context.Context, in RescheduleInput) (domain.Appointment, error) {
	if in.ShopID == uuid.Nil {
		return domain.Appointment{}, validationError("shop_id is required")
	}
	if in.AppointmentID == uuid.Nil {
		return domain.Appointment{}, validationError("appointment_id is required")
	}
	if in.StartTime.IsZero() {
		return domain.Appointment{}, validationError("start_time is required")
	}

	existing, err := s.repos.Appointments.Get(ctx, in.ShopID, in.AppointmentID)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("appointment lookup: %w", err)
	}

	serviceID := existing.ServiceID
	if in.ServiceID != uuid.Nil {
		serviceID = in.ServiceID
	}
	svc, err := s.repos.Services.Get(ctx, in.ShopID, serviceID)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("service lookup: %w", err)
	}
	pro, err := s.repos.Professionals.Get(ctx, in.ShopID, existing.ProfessionalID)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("professional lookup: %w", err)
	}

	start := in.StartTime.UTC()
	end := schedule.EndOf(start, svc.DurationMinutes)

	var out domain.Appointment
	err = s.repos.Appointments.InProfessionalTransaction(ctx, pro.ID, func(ctx context.Context, tx store.BookingTx) error {
		current, err := tx.GetAppointment(ctx, in.ShopID, in.AppointmentID)
		if err != nil {
			return err
		}
		if !current.Status.Occupying() {
			return validationError("only pending or confirmed appointments can be rescheduled")
		}
		if err := s.ensureFree(ctx, tx, pro, schedule.Interval{Start: start, End: end}, current.ID); err != nil {
			return err
		}
		current.ServiceID = svc.ID
		current.StartTime = start
		current.EndTime = end
		updated, err := tx.UpdateAppointment(ctx, current)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return domain.Appointment{}, s.mapConflict(err, pro, start, end)
	}
	return out, nil
}

// ChangeStatus applies a lifecycle transition. Transitions come from an
// explicit managing action, never from the engine itself; the only status
// the engine writes is pending at creation.
func (s *Service) ChangeStatus(ctx context.Context, shopID, appointmentID uuid.UUID, next domain.AppointmentStatus) (domain.Appointment, error) {
	if shopID == uuid.Nil {
		return domain.Appointment{}, validationError("shop_id is required")
	}
	if appointmentID == uuid.Nil {
		return domain.Appointment{}, validationError("appointment_id is required")
	}
	if !next.Valid() {
		return domain.Appointment{}, validationError(fmt.Sprintf("unknown status %q", next))
	}

	existing, err := s.repos.Appointments.Get(ctx, shopID, appointmentID)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("appointment lookup: %w", err)
	}

	// Status changes alter occupancy (a cancellation frees the slot), so
	// they are serialized with bookings for the same professional.
	var out domain.Appointment
	err = s.repos.Appointments.InProfessionalTransaction(ctx, existing.ProfessionalID, func(ctx context.Context, tx store.BookingTx) error {
		current, err := tx.GetAppointment(ctx, shopID, appointmentID)
		if err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(next) {
			return validationError(fmt.Sprintf("cannot change status from %s to %s", current.Status, next))
		}
		current.Status = next
		updated, err := tx.UpdateAppointment(ctx, current)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

// Shop returns the tenant's own record, including the public booking slug.
func (s *Service) Shop(ctx context.Context, shopID uuid.UUID) (domain.Shop, error) {
	if shopID == uuid.Nil {
		return domain.Shop{}, validationError("shop_id is required")
	}
	return s.repos.Shops.GetByID(ctx, shopID)
}

// Get returns one appointment of the shop.
func (s *Service) Get(ctx context.Context, shopID, appointmentID uuid.UUID) (domain.Appointment, error) {
	if shopID == uuid.Nil {
		return domain.Appointment{}, validationError("shop_id is required")
	}
	if appointmentID == uuid.Nil {
		return domain.Appointment{}, validationError("appointment_id is required")
	}
	return s.repos.Appointments.Get(ctx, shopID, appointmentID)
}

// List returns the shop's appointments intersecting the window, ordered by
// start time.
func (s *Service) List(ctx context.Context, shopID uuid.UUID, windowStart, windowEnd time.Time) ([]domain.Appointment, error) {
	if shopID == uuid.Nil {
		return nil, validationError("shop_id is required")
	}
	start := windowStart.UTC()
	end := windowEnd.UTC()
	if end.Equal(start) || end.Before(start) {
		return nil, validationError("window_end must be after window_start")
	}
	return s.repos.Appointments.List(ctx, shopID, start, end)
}

type AvailabilityInput struct {
	ShopID         uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID

	// Date selects the calendar day in the configured location.
	Date time.Time
}

// Availability returns the free slot start times for the professional,
// service and date, walking the working window against the professional's
// occupying appointments on that day.
func (s *Service) Availability(ctx context.Context, in AvailabilityInput) ([]time.Time, error) {
	if in.ShopID == uuid.Nil {
		return nil, validationError("shop_id is required")
	}
	if in.ProfessionalID == uuid.Nil {
		return nil, validationError("professional_id is required")
	}
	if in.ServiceID == uuid.Nil {
		return nil, validationError("service_id is required")
	}
	if in.Date.IsZero() {
		return nil, validationError("date is required")
	}

	svc, err := s.repos.Services.Get(ctx, in.ShopID, in.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("service lookup: %w", err)
	}
	pro, err := s.repos.Professionals.Get(ctx, in.ShopID, in.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("professional lookup: %w", err)
	}
	if !pro.Active {
		return nil, validationError("professional is not active")
	}
	qualified, err := s.repos.Services.IsQualified(ctx, svc.ID, pro.ID)
	if err != nil {
		return nil, err
	}
	if !qualified {
		return nil, validationError("professional is not qualified for this service")
	}

	day := in.Date.In(s.loc)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	occupying, err := s.repos.Appointments.ListOccupying(ctx, pro.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	busy := make([]schedule.Interval, 0, len(occupying))
	for i := range occupying {
		busy = append(busy, occupying[i].Interval())
	}

	duration := time.Duration(svc.DurationMinutes) * time.Minute
	return schedule.AvailableSlots(day, s.window, duration, busy, s.loc), nil
}

type PublicBookInput struct {
	Slug           string
	ClientName     string
	ClientPhone    string
	ClientEmail    string
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID
	StartTime      time.Time
}

// PublicBook books through a shop's public scheduling link: the client is
// found or created by phone, then the normal booking path applies.
func (s *Service) PublicBook(ctx context.Context, in PublicBookInput) (domain.Appointment, error) {
	shop, err := s.shopBySlug(ctx, in.Slug)
	if err != nil {
		return domain.Appointment{}, err
	}

	name := strings.TrimSpace(in.ClientName)
	phone := strings.TrimSpace(in.ClientPhone)
	if name == "" {
		return domain.Appointment{}, validationError("client_name is required")
	}
	if phone == "" {
		return domain.Appointment{}, validationError("client_phone is required")
	}

	client, err := s.repos.Clients.GetOrCreateByPhone(ctx, domain.Client{
		ShopID: shop.ID,
		Name:   name,
		Phone:  phone,
		Email:  strings.TrimSpace(in.ClientEmail),
	})
	if err != nil {
		return domain.Appointment{}, err
	}

	return s.Book(ctx, BookInput{
		ShopID:         shop.ID,
		ClientID:       client.ID,
		ServiceID:      in.ServiceID,
		ProfessionalID: in.ProfessionalID,
		StartTime:      in.StartTime,
	})
}

// ServiceOffering is a service together with the active professionals
// qualified to perform it.
type ServiceOffering struct {
	Service       domain.Service
	Professionals []domain.Professional
}

// ShopProfile is what the public booking page shows for a shop.
type ShopProfile struct {
	Shop     domain.Shop
	Services []ServiceOffering
}

// PublicProfile returns the shop's bookable catalog for its public page.
func (s *Service) PublicProfile(ctx context.Context, slug string) (ShopProfile, error) {
	shop, err := s.shopBySlug(ctx, slug)
	if err != nil {
		return ShopProfile{}, err
	}

	services, err := s.repos.Services.List(ctx, shop.ID)
	if err != nil {
		return ShopProfile{}, err
	}

	profile := ShopProfile{Shop: shop, Services: make([]ServiceOffering, 0, len(services))}
	for _, svc := range services {
		qualified, err := s.repos.Services.QualifiedProfessionals(ctx, svc.ID)
		if err != nil {
			return ShopProfile{}, err
		}
		active := make([]domain.Professional, 0, len(qualified))
		for _, p := range qualified {
			if p.Active {
				active = append(active, p)
			}
		}
		profile.Services = append(profile.Services, ServiceOffering{Service: svc, Professionals: active})
	}
	return profile, nil
}

// PublicAvailability answers an availability query addressed by the shop's
// public scheduling link.
func (s *Service) PublicAvailability(ctx context.Context, slug string, professionalID, serviceID uuid.UUID, date time.Time) ([]time.Time, error) {
	shop, err := s.shopBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.Availability(ctx, AvailabilityInput{
		ShopID:         shop.ID,
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	})
}

func (s *Service) shopBySlug(ctx context.Context, slug string) (domain.Shop, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Shop{}, validationError("shop slug is required")
	}
	shop, err := s.repos.Shops.GetBySlug(ctx, slug)
	if err != nil {
		return domain.Shop{}, err
	}
	// Inactive shops are invisible through the public link.
	if !shop.Active {
		return domain.Shop{}, store.ErrNotFound
	}
	return shop, nil
}

func (s *Service) ensureFree(ctx context.Context, tx store.BookingTx, pro domain.Professional, candidate schedule.Interval, excludeID uuid.UUID) error {
	occupying, err := tx.ListOccupying(ctx, pro.ID, candidate.Start, candidate.End)
	if err != nil {
		return err
	}
	busy := make([]schedule.Busy, 0, len(occupying))
	for i := range occupying {
		busy = append(busy, occupying[i].Busy())
	}
	if _, ok := schedule.FirstConflict(candidate, busy, excludeID); ok {
		return &ConflictError{
			ProfessionalID:   pro.ID,
			ProfessionalName: pro.Name,
			Start:            candidate.Start,
			End:              candidate.End,
		}
	}
	return nil
}

// mapConflict turns the storage backstop's sentinel into the same typed
// error the scan produces, so callers see one conflict shape either way.
func (s *Service) mapConflict(err error, pro domain.Professional, start, end time.Time) error {
	if errors.Is(err, store.ErrConflict) {
		return &ConflictError{
			ProfessionalID:   pro.ID,
			ProfessionalName: pro.Name,
			Start:            start,
			End:              end,
		}
	}
	return err
}
