package catalog

import (
	"context"
	"errors"
	"strings"

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

// Service manages a shop's catalog: professionals, services and clients.
// It owns entity-level validation; tenant scoping is enforced by passing the
// shop id into every call.
type Service struct {
	professionals store.ProfessionalRepository
	services      store.ServiceRepository
	clients       store.ClientRepository
}

func NewService(professionals store.ProfessionalRepository, services store.ServiceRepository, clients store.ClientRepository) *Service {
	return &Service{professionals: professionals, services: services, clients: clients}
}

type ProfessionalInput struct {
	Name   string
	Phone  string
	Active bool
}

func (s *Service) CreateProfessional(ctx context.Context, shopID uuid.UUID, in ProfessionalInput) (domain.Professional, error) {
	if shopID == uuid.Nil {
		return domain.Professional{}, validationError("shop_id is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Professional{}, validationError("name is required")
	}
	return s.professionals.Create(ctx, domain.Professional{
		ShopID: shopID,
		Name:   name,
		Phone:  strings.TrimSpace(in.Phone),
		Active: in.Active,
	})
}

func (s *Service) UpdateProfessional(ctx context.Context, shopID, professionalID uuid.UUID, in ProfessionalInput) (domain.Professional, error) {
	if shopID == uuid.Nil {
		return domain.Professional{}, validationError("shop_id is required")
	}
	if professionalID == uuid.Nil {
		return domain.Professional{}, validationError("professional_id is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Professional{}, validationError("name is required")
	}
	existing, err := s.professionals.Get(ctx, shopID, professionalID)
	if err != nil {
		return domain.Professional{}, err
	}
	existing.Name = name
	existing.Phone = strings.TrimSpace(in.Phone)
	existing.Active = in.Active
	return s.professionals.Update(ctx, existing)
}

func (s *Service) GetProfessional(ctx context.Context, shopID, professionalID uuid.UUID) (domain.Professional, error) {
	return s.professionals.Get(ctx, shopID, professionalID)
}

func (s *Service) ListProfessionals(ctx context.Context, shopID uuid.UUID) ([]domain.Professional, error) {
	if shopID == uuid.Nil {
		return nil, validationError("shop_id is required")
	}
	return s.professionals.List(ctx, shopID)
}

type ServiceInput struct {
	Name            string
	DurationMinutes int
	PriceCents      int64
	ProfessionalIDs []uuid.UUID
}

func (s *Service) validateServiceInput(in ServiceInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", validationError("name is required")
	}
	if in.DurationMinutes < domain.MinServiceDurationMinutes {
		return "", validationError("duration_minutes must be at least 5")
	}
	if in.PriceCents < 0 {
		return "", validationError("price_cents must not be negative")
	}
	return name, nil
}

func (s *Service) CreateService(ctx context.Context, shopID uuid.UUID, in ServiceInput) (domain.Service, error) {
	if shopID == uuid.Nil {
		return domain.Service{}, validationError("shop_id is required")
	}
	name, err := s.validateServiceInput(in)
	if err != nil {
		return domain.Service{}, err
	}
	created, err := s.services.Create(ctx, domain.Service{
		ShopID:          shopID,
		Name:            name,
		DurationMinutes: in.DurationMinutes,
		PriceCents:      in.PriceCents,
	})
	if err != nil {
		return domain.Service{}, err
	}
	if len(in.ProfessionalIDs) > 0 {
		if err := s.services.SetQualifiedProfessionals(ctx, shopID, created.ID, in.ProfessionalIDs); err != nil {
			return domain.Service{}, err
		}
	}
	return created, nil
}

func (s *Service) UpdateService(ctx context.Context, shopID, serviceID uuid.UUID, in ServiceInput) (domain.Service, error) {
	if shopID == uuid.Nil {
		return domain.Service{}, validationError("shop_id is required")
	}
	if serviceID == uuid.Nil {
		return domain.Service{}, validationError("service_id is required")
	}
	name, err := s.validateServiceInput(in)
	if err != nil {
		return domain.Service{}, err
	}
	existing, err := s.services.Get(ctx, shopID, serviceID)
	if err != nil {
		return domain.Service{}, err
	}
	existing.Name = name
	existing.DurationMinutes = in.DurationMinutes
	existing.PriceCents = in.PriceCents
	updated, err := s.services.Update(ctx, existing)
	if err != nil {
		return domain.Service{}, err
	}
	if in.ProfessionalIDs != nil {
		if err := s.services.SetQualifiedProfessionals(ctx, shopID, serviceID, in.ProfessionalIDs); err != nil {
			return domain.Service{}, err
		}
	}
	return updated, nil
}

func (s *Service) GetService(ctx context.Context, shopID, serviceID uuid.UUID) (domain.Service, error) {
	return s.services.Get(ctx, shopID, serviceID)
}

func (s *Service) ListServices(ctx context.Context, shopID uuid.UUID) ([]domain.Service, error) {
	if shopID == uuid.Nil {
		return nil, validationError("shop_id is required")
	}
	return s.services.List(ctx, shopID)
}

func (s *Service) QualifiedProfessionals(ctx context.Context, shopID, serviceID uuid.UUID) ([]domain.Professional, error) {
	if _, err := s.services.Get(ctx, shopID, serviceID); err != nil {
		return nil, err
	}
	return s.services.QualifiedProfessionals(ctx, serviceID)
}

type ClientInput struct {
	Name  string
	Phone string
	Email string
}

func (s *Service) CreateClient(ctx context.Context, shopID uuid.UUID, in ClientInput) (domain.Client, error) {
	if shopID == uuid.Nil {
		return domain.Client{}, validationError("shop_id is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Client{}, validationError("name is required")
	}
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return domain.Client{}, validationError("phone is required")
	}
	created, err := s.clients.Create(ctx, domain.Client{
		ShopID: shopID,
		Name:   name,
		Phone:  phone,
		Email:  strings.TrimSpace(in.Email),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return domain.Client{}, validationError("a client with this phone already exists")
		}
		return domain.Client{}, err
	}
	return created, nil
}

func (s *Service) GetClient(ctx context.Context, shopID, clientID uuid.UUID) (domain.Client, error) {
	return s.clients.Get(ctx, shopID, clientID)
}

func (s *Service) ListClients(ctx context.Context, shopID uuid.UUID) ([]domain.Client, error) {
	if shopID == uuid.Nil {
		return nil, validationError("shop_id is required")
	}
	return s.clients.List(ctx, shopID)
}
