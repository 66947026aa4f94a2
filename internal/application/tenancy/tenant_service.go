// Package tenancy hosts tenant account management: registration of the
// municipality with its master user and penalty rate configuration.
package tenancy

import (
	"context"
	"errors"

	auditapp "github.com/camposanto/backend/internal/application/audit"
	"github.com/camposanto/backend/internal/application/ports"
	"github.com/camposanto/backend/internal/domain/audit"
	"github.com/camposanto/backend/internal/domain/shared"
	"github.com/camposanto/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TenantService manages tenant accounts.
type TenantService struct {
	uow      ports.UnitOfWork
	recorder *auditapp.Recorder
	log      *zap.Logger
}

// NewTenantService creates a TenantService.
func NewTenantService(uow ports.UnitOfWork, recorder *auditapp.Recorder, log *zap.Logger) *TenantService {
	return &TenantService{uow: uow, recorder: recorder, log: log}
}

// RegisterTenantInput carries a municipality registration.
type RegisterTenantInput struct {
	Name       string `json:"name"`
	LegalName  string `json:"legal_name"`
	Document   string `json:"document"`
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

// RegisterTenant creates the tenant together with its master user.
func (s *TenantService) RegisterTenant(ctx context.Context, in RegisterTenantInput) (*tenancy.Tenant, error) {
	var tenant *tenancy.Tenant
	err := s.uow.Execute(ctx, func(st ports.Stores) error {
		existing, err := st.Users.FindByEmail(ctx, in.OwnerEmail)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if existing != nil {
			return shared.NewValidationError("owner_email", "a user with this email already exists")
		}

		tenant, err = tenancy.NewTenant(in.Name, in.LegalName, in.Document, uuid.New())
		if err != nil {
			return err
		}
		owner, err := tenancy.NewUser(tenant.ID, in.OwnerName, in.OwnerEmail, true)
		if err != nil {
			return err
		}
		tenant.OwnerUserID = owner.ID
		if err := st.Tenants.Save(ctx, tenant); err != nil {
			return err
		}
		if err := st.Users.Save(ctx, owner); err != nil {
			return err
		}

		op := shared.NewOperationContext(tenant.ID)
		return s.recorder.Record(ctx, st, op, audit.ActionAdd, "Tenant",
			tenant.ID.String(), tenant.Name, tenant)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("tenant registered", zap.String("name", tenant.Name))
	return tenant, nil
}

// PenaltyRatesInput carries the late-payment parameters.
type PenaltyRatesInput struct {
	FinePercent      decimal.Decimal `json:"fine_percent"`
	InterestPercent  decimal.Decimal `json:"interest_percent"`
	DailyPenaltyRate decimal.Decimal `json:"daily_penalty_rate"`
}

// ConfigurePenaltyRates replaces the tenant's late-payment parameters.
func (s *TenantService) ConfigurePenaltyRates(ctx context.Context, op shared.OperationContext, in PenaltyRatesInput) (*tenancy.Tenant, error) {
	var tenant *tenancy.Tenant
	err := s.uow.Execute(ctx, func(st ports.Stores) error {
		var err error
		tenant, err = st.Tenants.FindByID(ctx, op.TenantID)
		if err != nil {
			return err
		}
		rates := tenancy.PenaltyRates{
			FinePercent:      in.FinePercent,
			InterestPercent:  in.InterestPercent,
			DailyPenaltyRate: in.DailyPenaltyRate,
		}
		if err := tenant.ConfigurePenaltyRates(rates); err != nil {
			return err
		}
		if err := st.Tenants.Save(ctx, tenant); err != nil {
			return err
		}
		return s.recorder.Record(ctx, st, op, audit.ActionChange, "Tenant",
			tenant.ID.String(), tenant.Name, tenant)
	})
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// Get returns the tenant account.
func (s *TenantService) Get(ctx context.Context, op shared.OperationContext) (*tenancy.Tenant, error) {
	return s.uow.Stores().Tenants.FindByID(ctx, op.TenantID)
}
