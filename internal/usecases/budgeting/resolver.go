package budgeting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-review-api/infrastructure/repository"
	"github.com/vfg2006/budget-review-api/internal/domain"
)

var (
	ErrClientIDRequired = errors.New("client ID is required")
	ErrInvalidDateRange = errors.New("data final anterior à data inicial")
)

// ConflictQuery descreve o intervalo que o editor de orçamentos pretende salvar
type ConflictQuery struct {
	ClientID        string
	Platform        domain.Platform
	StartDate       time.Time
	EndDate         time.Time
	AccountID       *string
	ExcludeBudgetID string
}

//go:generate mockgen -source=resolver.go -destination=mocks/resolver.go -package=mocks
type CustomBudgetResolver interface {
	ResolveActiveCustomBudget(ctx context.Context, clientID string, platform domain.Platform, accountID *string, onDate time.Time) (*domain.CustomBudget, error)
	HasConflict(ctx context.Context, q ConflictQuery) (bool, error)
}

type Resolver struct {
	repo repository.CustomBudgetRepository
}

func NewResolver(repo repository.CustomBudgetRepository) *Resolver {
	return &Resolver{
		repo: repo,
	}
}

// ResolveActiveCustomBudget retorna o orçamento personalizado que governa a conta na data.
// Precedência: orçamento da conta > orçamento do cliente inteiro > nenhum. Empates: o criado por último.
func (r *Resolver) ResolveActiveCustomBudget(ctx context.Context, clientID string, platform domain.Platform, accountID *string, onDate time.Time) (*domain.CustomBudget, error) {
	if clientID == "" {
		return nil, ErrClientIDRequired
	}

	candidates, err := r.repo.ListActiveOnDate(ctx, clientID, platform, onDate)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar orçamentos personalizados: %w", err)
	}

	selected := SelectCustomBudget(candidates, accountID, onDate)

	fields := logrus.Fields{
		"client_id":  clientID,
		"platform":   platform,
		"date":       onDate.Format(time.DateOnly),
		"candidates": len(candidates),
	}
	if selected != nil {
		fields["custom_budget_id"] = selected.ID
		fields["client_wide"] = selected.IsClientWide()
	}
	logrus.WithFields(fields).Debug("Orçamento personalizado resolvido")

	return selected, nil
}

// SelectCustomBudget aplica a regra de precedência sobre os candidatos
func SelectCustomBudget(candidates []*domain.CustomBudget, accountID *string, onDate time.Time) *domain.CustomBudget {
	var accountMatch, clientWide *domain.CustomBudget

	for _, cb := range candidates {
		if cb == nil || !cb.IsActive || !cb.Covers(onDate) {
			continue
		}

		if cb.IsClientWide() {
			if newer(cb, clientWide) {
				clientWide = cb
			}
			continue
		}

		if accountID != nil && *cb.AccountID == *accountID && newer(cb, accountMatch) {
			accountMatch = cb
		}
	}

	if accountMatch != nil {
		return accountMatch
	}
	return clientWide
}

// newer mantém o primeiro em caso de empate, preservando a ordem do repositório
func newer(candidate, current *domain.CustomBudget) bool {
	return current == nil || candidate.CreatedAt.After(current.CreatedAt)
}

// HasConflict indica se outro orçamento ativo do mesmo escopo cruza o intervalo.
// É apenas um aviso para o editor: sobreposições continuam permitidas.
func (r *Resolver) HasConflict(ctx context.Context, q ConflictQuery) (bool, error) {
	if q.ClientID == "" {
		return false, ErrClientIDRequired
	}
	if domain.CalendarDay(q.EndDate).Before(domain.CalendarDay(q.StartDate)) {
		return false, ErrInvalidDateRange
	}

	overlapping, err := r.repo.ListActiveOverlapping(ctx, q.ClientID, q.Platform, q.StartDate, q.EndDate, q.ExcludeBudgetID)
	if err != nil {
		return false, fmt.Errorf("erro ao buscar orçamentos sobrepostos: %w", err)
	}

	for _, cb := range overlapping {
		if cb.ID == q.ExcludeBudgetID {
			continue
		}
		if sameScope(cb, q.AccountID) {
			return true, nil
		}
	}

	return false, nil
}

// sameScope: um orçamento de conta conflita com a mesma conta ou com orçamentos do cliente inteiro;
// um orçamento do cliente inteiro conflita com qualquer outro
func sameScope(cb *domain.CustomBudget, accountID *string) bool {
	if accountID == nil || *accountID == "" {
		return true
	}
	return cb.IsClientWide() || *cb.AccountID == *accountID
}
