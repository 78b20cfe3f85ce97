package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"agendly/internal/domain"
	"agendly/internal/store"
)

type fakeProfessionals struct {
	createFn func(ctx context.Context, p domain.Professional) (domain.Professional, error)
	updateFn func(ctx context.Context, p domain.Professional) (domain.Professional, error)
	getFn    func(ctx context.Context, shopID, professionalID uuid.UUID) (domain.Professional, error)
	listFn   func(ctx context.Context, shopID uuid.UUID) ([]domain.Professional, error)
}

func (f *fakeProfessionals) Create(ctx context.Context, p domain.Professional) (domain.Professional, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, p)
}

func (f *fakeProfessionals) Update(ctx context.Context, p domain.Professional) (domain.Professional, error) {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, p)
}

func (f *fakeProfessionals) Get(ctx context.Context, shopID, professionalID uuid.UUID) (domain.Professional, error) {
	if f.getFn == nil {
		panic("Get not configured")
	}
	return f.getFn(ctx, shopID, professionalID)
}

func (f *fakeProfessionals) List(ctx context.Context, shopID uuid.UUID) ([]domain.Professional, error) {
	if f.listFn == nil {
		panic("List not configured")
	}
	return f.listFn(ctx, shopID)
}

type fakeServices struct {
	createFn       func(ctx context.Context, s domain.Service) (domain.Service, error)
	updateFn       func(ctx context.Context, s domain.Service) (domain.Service, error)
	getFn          func(ctx context.Context, shopID, serviceID uuid.UUID) (domain.Service, error)
	setQualifiedFn func(ctx context.Context, shopID, serviceID uuid.UUID, professionalIDs []uuid.UUID) error
}

func (f *fakeServices) Create(ctx context.Context, s domain.Service) (domain.Service, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, s)
}

func (f *fakeServices) Update(ctx context.Context, s domain.Service) (domain.Service, error) {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, s)
}

func (f *fakeServices) Get(ctx context.Context, shopID, serviceID uuid.UUID) (domain.Service, error) {
	if f.getFn == nil {
		panic("Get not configured")
	}
	return f.getFn(ctx, shopID, serviceID)
}

func (f *fakeServices) List(ctx context.Context, shopID uuid.UUID) ([]domain.Service, error) {
	panic("List not configured")
}

func (f *fakeServices) SetQualifiedProfessionals(ctx context.Context, shopID, serviceID uuid.UUID, professionalIDs []uuid.UUID) error {
	if f.setQualifiedFn == nil {
		panic("SetQualifiedProfessionals not configured")
	}
	return f.setQualifiedFn(ctx, shopID, serviceID, professionalIDs)
}

func (f *fakeServices) QualifiedProfessionals(ctx context.Context, serviceID uuid.UUID) ([]domain.Professional, error) {
	panic("QualifiedProfessionals not configured")
}

func (f *fakeServices) IsQualified(ctx context.Context, serviceID, professionalID uuid.UUID) (bool, error) {
	panic("IsQualified not configured")
}

type fakeClients struct {
	createFn func(ctx context.Context, c domain.Client) (domain.Client, error)
}

func (f *fakeClients) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, c)
}

func (f *fakeClients) Get(ctx context.Context, shopID, clientID uuid.UUID) (domain.Client, error) {
	panic("Get not configured")
}

func (f *fakeClients) List(ctx context.Context, shopID uuid.UUID) ([]domain.Client, error) {
	panic("List not configured")
}

func (f *fakeClients) GetOrCreateByPhone(ctx context.Context, c domain.Client) (domain.Client, error) {
	panic("GetOrCreateByPhone not configured")
}

func newTestService(pros *fakeProfessionals, services *fakeServices, clients *fakeClients) *Service {
	if pros == nil {
		pros = &fakeProfessionals{}
	}
	if services == nil {
		services = &fakeServices{}
	}
	if clients == nil {
		clients = &fakeClients{}
	}
	return NewService(pros, services, clients)
}

func TestCreateProfessionalRequiresName(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.CreateProfessional(context.Background(), uuid.New(), ProfessionalInput{Name: "   "})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestCreateProfessionalTrimsName(t *testing.T) {
	pros := &fakeProfessionals{
		createFn: func(ctx context.Context, p domain.Professional) (domain.Professional, error) {
			p.ID = uuid.New()
			return p, nil
		},
	}
	svc := newTestService(pros, nil, nil)

	created, err := svc.CreateProfessional(context.Background(), uuid.New(), ProfessionalInput{Name: "  Marcos  ", Active: true})
	if err != nil {
		t.Fatalf("CreateProfessional: %v", err)
	}
	if created.Name != "Marcos" {
		t.Fatalf("name = %q, want trimmed", created.Name)
	}
}

func TestCreateServiceRejectsShortDuration(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.CreateService(context.Background(), uuid.New(), ServiceInput{Name: "Trim", DurationMinutes: 4})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestCreateServiceRejectsNegativePrice(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.CreateService(context.Background(), uuid.New(), ServiceInput{Name: "Trim", DurationMinutes: 30, PriceCents: -1})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestCreateServiceSetsQualifiedProfessionals(t *testing.T) {
	shopID := uuid.New()
	proID := uuid.New()
	var gotIDs []uuid.UUID
	services := &fakeServices{
		createFn: func(ctx context.Context, s domain.Service) (domain.Service, error) {
			s.ID = uuid.New()
			return s, nil
		},
		setQualifiedFn: func(ctx context.Context, gotShop, serviceID uuid.UUID, professionalIDs []uuid.UUID) error {
			if gotShop != shopID {
				t.Fatalf("shop = %s, want %s", gotShop, shopID)
			}
			gotIDs = professionalIDs
			return nil
		},
	}
	svc := newTestService(nil, services, nil)

	_, err := svc.CreateService(context.Background(), shopID, ServiceInput{
		Name:            "Haircut",
		DurationMinutes: 30,
		PriceCents:      5000,
		ProfessionalIDs: []uuid.UUID{proID},
	})
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}
	if len(gotIDs) != 1 || gotIDs[0] != proID {
		t.Fatalf("qualified ids = %v, want [%s]", gotIDs, proID)
	}
}

func TestUpdateServiceKeepsQualifiedSetWhenOmitted(t *testing.T) {
	shopID := uuid.New()
	serviceID := uuid.New()
	services := &fakeServices{
		getFn: func(ctx context.Context, gotShop, gotService uuid.UUID) (domain.Service, error) {
			return domain.Service{ID: serviceID, ShopID: shopID, Name: "Haircut", DurationMinutes: 30}, nil
		},
		updateFn: func(ctx context.Context, s domain.Service) (domain.Service, error) {
			return s, nil
		},
		setQualifiedFn: func(ctx context.Context, gotShop, gotService uuid.UUID, professionalIDs []uuid.UUID) error {
			t.Fatal("qualified set must not change when professional_ids is omitted")
			return nil
		},
	}
	svc := newTestService(nil, services, nil)

	updated, err := svc.UpdateService(context.Background(), shopID, serviceID, ServiceInput{
		Name:            "Haircut deluxe",
		DurationMinutes: 45,
		PriceCents:      8000,
	})
	if err != nil {
		t.Fatalf("UpdateService: %v", err)
	}
	if updated.DurationMinutes != 45 {
		t.Fatalf("duration = %d, want 45", updated.DurationMinutes)
	}
}

func TestCreateClientDuplicatePhone(t *testing.T) {
	clients := &fakeClients{
		createFn: func(ctx context.Context, c domain.Client) (domain.Client, error) {
			return domain.Client{}, store.ErrDuplicate
		},
	}
	svc := newTestService(nil, nil, clients)

	_, err := svc.CreateClient(context.Background(), uuid.New(), ClientInput{Name: "Paula", Phone: "+5511999990000"})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestCreateClientRequiresPhone(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.CreateClient(context.Background(), uuid.New(), ClientInput{Name: "Paula"})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}
