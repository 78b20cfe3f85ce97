package http

import (
	"time"

	"github.com/google/uuid"

	"agendly/internal/domain"
	"agendly/internal/service/booking"
)

type appointmentResponse struct {
	ID                uuid.UUID `json:"id"`
	ShopID            uuid.UUID `json:"shop_id"`
	ClientID          uuid.UUID `json:"client_id"`
	ServiceID         uuid.UUID `json:"service_id"`
	ProfessionalID    uuid.UUID `json:"professional_id"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	Status            string    `json:"status"`
	InitialPriceCents int64     `json:"initial_price_cents"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toAppointmentResponse(a domain.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:                a.ID,
		ShopID:            a.ShopID,
		ClientID:          a.ClientID,
		ServiceID:         a.ServiceID,
		ProfessionalID:    a.ProfessionalID,
		StartTime:         a.StartTime,
		EndTime:           a.EndTime,
		Status:            string(a.Status),
		InitialPriceCents: a.InitialPriceCents,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func toAppointmentResponses(apps []domain.Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toAppointmentResponse(a))
	}
	return out
}

type professionalResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone"`
	Active bool      `json:"active"`
}

func toProfessionalResponse(p domain.Professional) professionalResponse {
	return professionalResponse{ID: p.ID, Name: p.Name, Phone: p.Phone, Active: p.Active}
}

func toProfessionalResponses(pros []domain.Professional) []professionalResponse {
	out := make([]professionalResponse, 0, len(pros))
	for _, p := range pros {
		out = append(out, toProfessionalResponse(p))
	}
	return out
}

type serviceResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      int64     `json:"price_cents"`
}

func toServiceResponse(s domain.Service) serviceResponse {
	return serviceResponse{ID: s.ID, Name: s.Name, DurationMinutes: s.DurationMinutes, PriceCents: s.PriceCents}
}

type clientResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
	Email string    `json:"email"`
}

func toClientResponse(c domain.Client) clientResponse {
	return clientResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email}
}

type ruleResponse struct {
	ID                        uuid.UUID `json:"id"`
	ServiceID                 uuid.UUID `json:"service_id"`
	IdealReturnDays           int       `json:"ideal_return_days"`
	AnticipationToleranceDays int       `json:"anticipation_tolerance_days"`
}

func toRuleResponse(r domain.FrequencyRule) ruleResponse {
	return ruleResponse{
		ID:                        r.ID,
		ServiceID:                 r.ServiceID,
		IdealReturnDays:           r.IdealReturnDays,
		AnticipationToleranceDays: r.AnticipationToleranceDays,
	}
}

type offeringResponse struct {
	Service       serviceResponse        `json:"service"`
	Professionals []professionalResponse `json:"professionals"`
}

type profileResponse struct {
	Name     string             `json:"name"`
	Slug     string             `json:"slug"`
	Services []offeringResponse `json:"services"`
}

func toProfileResponse(p booking.ShopProfile) profileResponse {
	out := profileResponse{
		Name:     p.Shop.Name,
		Slug:     p.Shop.BookingSlug,
		Services: make([]offeringResponse, 0, len(p.Services)),
	}
	for _, off := range p.Services {
		out.Services = append(out.Services, offeringResponse{
			Service:       toServiceResponse(off.Service),
			Professionals: toProfessionalResponses(off.Professionals),
		})
	}
	return out
}

// formatSlots renders slot start instants as wall-clock HH:MM labels in the
// shop's configured location.
func formatSlots(slots []time.Time, loc *time.Location) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.In(loc).Format("15:04"))
	}
	return out
}
