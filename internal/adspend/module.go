// Package adspend is the ad-spend ledger bounded context.
package adspend

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"leadops_backend/internal/adspend/handler"
	"leadops_backend/internal/adspend/provider"
	"leadops_backend/internal/adspend/repository"
	"leadops_backend/internal/adspend/service"
	"leadops_backend/internal/directory/domain"
	apphttp "leadops_backend/internal/http"
	"leadops_backend/platform/logger"
	"leadops_backend/platform/validator"
)

// Module is the ad-spend bounded context module implementing http.Module.
type Module struct {
	handler    *handler.Handler
	service    *service.Service
	repository repository.Repository
}

// NewModule creates and initializes the ad-spend module. key is the 32-byte
// credentials encryption key.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger, key []byte) *Module {
	repo := repository.New(pool)
	vault := service.NewVault(repository.NewCredentials(pool), key)
	providers := []provider.Provider{
		provider.NewTikTok(vault),
		provider.NewGoogleAds(vault),
	}
	svc := service.New(repo, vault, providers, log)

	return &Module{
		handler:    handler.New(svc, val),
		service:    svc,
		repository: repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "adspend"
}

// Service returns the service layer; the scheduler pulls spend through it.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository exposes the ledger query surface to reporting modules.
func (m *Module) Repository() repository.Repository {
	return m.repository
}

// SetSpendPullScheduler enables the manual re-pull endpoint. Without it the
// endpoint answers 503.
func (m *Module) SetSpendPullScheduler(pull handler.SpendPullScheduler) {
	m.handler.SetSpendPullScheduler(pull)
}

// RegisterRoutes mounts ad-spend routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/ad-costs")

	group.GET("",
		ctx.RequireRole(domain.RoleAdmin.String(), domain.RoleSuper.String()),
		m.handler.ListCosts)

	superOnly := ctx.RequireRole(domain.RoleSuper.String())
	group.PUT("", superOnly, m.handler.SetAdCost)
	group.POST("/pull", superOnly, m.handler.PullSpend)
	group.PUT("/credentials", superOnly, m.handler.SetCredentials)
	group.DELETE("/credentials", superOnly, m.handler.ClearCredentials)
}

var _ apphttp.Module = (*Module)(nil)
