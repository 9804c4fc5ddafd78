// Package operating manages the tour operating configuration: holiday mode
// and the allow-list of flight departure times. Both gate reservation
// creation and slot listings.
package operating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	operatingRepo "github.com/daiki-lova/Privateskytour-sub000/internal/infra/storage/operatinghours"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/types"
)

// UpdateConfigRequest changes the operating configuration. Nil fields keep
// the current value.
type UpdateConfigRequest struct {
	Actor       string    `json:"actor"`
	HolidayMode *bool     `json:"holidayMode,omitempty"`
	FlightTimes *[]string `json:"flightTimes,omitempty"`
}

// ConfigResponse is the external view of the operating configuration.
type ConfigResponse struct {
	HolidayMode bool     `json:"holidayMode"`
	FlightTimes []string `json:"flightTimes"`
	UpdatedBy   string   `json:"updatedBy"`
	UpdatedAt   string   `json:"updatedAt"`
}

// Service reads and updates the operating configuration.
type Service struct {
	configRepo   ConfigRepository
	auditRepo    AuditRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates the operating configuration service.
func NewService(
	configRepo ConfigRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		configRepo:   configRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Get returns the current operating configuration.
func (s *Service) Get(ctx context.Context) (*ConfigResponse, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, operatingRepo.ErrConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return fromDomainConfig(cfg), nil
}

// GetDomain returns the raw domain configuration for use by other services.
func (s *Service) GetDomain(ctx context.Context) (*domain.OperatingConfig, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, operatingRepo.ErrConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: GetDomain - repository error: %v", ErrInternal, err)
	}
	return cfg, nil
}

// Update applies the requested changes and records them in the audit log.
func (s *Service) Update(ctx context.Context, req *UpdateConfigRequest) (*ConfigResponse, error) {
	s.logger.Info("Update: operating configuration change by actor=%s", req.Actor)

	if req.HolidayMode == nil && req.FlightTimes == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	var parsedTimes []types.TimeString
	if req.FlightTimes != nil {
		var err error
		parsedTimes, err = parseFlightTimes(*req.FlightTimes)
		if err != nil {
			return nil, err
		}
	}

	var response *ConfigResponse

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		cfg, err := s.configRepo.Get(txCtx)
		if err != nil {
			if errors.Is(err, operatingRepo.ErrConfigNotFound) {
				return ErrConfigNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		before := snapshotConfig(cfg)

		if req.HolidayMode != nil {
			cfg.HolidayMode = *req.HolidayMode
		}
		if req.FlightTimes != nil {
			cfg.FlightTimes = parsedTimes
		}
		cfg.UpdatedBy = req.Actor
		cfg.UpdatedAt = s.timeProvider.Now()

		if err := s.configRepo.Update(txCtx, cfg); err != nil {
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		entry := &domain.AuditLogEntry{
			Category:    "operating",
			Status:      domain.AuditSuccess,
			Action:      "operating.update",
			Message:     fmt.Sprintf("operating configuration updated (holidayMode=%t, flightTimes=%d)", cfg.HolidayMode, len(cfg.FlightTimes)),
			TargetTable: "operating_config",
			TargetID:    cfg.ID,
			Actor:       req.Actor,
			Before:      before,
			After:       snapshotConfig(cfg),
		}
		if err := s.auditRepo.Append(txCtx, entry); err != nil {
			return fmt.Errorf("%w: Update - audit append: %v", ErrInternal, err)
		}

		response = fromDomainConfig(cfg)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: operating configuration updated by actor=%s", req.Actor)
	return response, nil
}

// parseFlightTimes validates the allow-list, deduplicates and sorts it.
func parseFlightTimes(raw []string) ([]types.TimeString, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: flight time allow-list cannot be empty", ErrInvalidInput)
	}

	seen := make(map[types.TimeString]struct{}, len(raw))
	parsed := make([]types.TimeString, 0, len(raw))
	for _, v := range raw {
		ts, err := types.NewTimeStringFromString(v)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid flight time %q", ErrInvalidInput, v)
		}
		if _, ok := seen[ts]; ok {
			continue
		}
		seen[ts] = struct{}{}
		parsed = append(parsed, ts)
	}

	sort.Slice(parsed, func(i, j int) bool {
		return parsed[i] < parsed[j]
	})
	return parsed, nil
}

func fromDomainConfig(cfg *domain.OperatingConfig) *ConfigResponse {
	times := make([]string, 0, len(cfg.FlightTimes))
	for _, t := range cfg.FlightTimes {
		times = append(times, t.String())
	}
	return &ConfigResponse{
		HolidayMode: cfg.HolidayMode,
		FlightTimes: times,
		UpdatedBy:   cfg.UpdatedBy,
		UpdatedAt:   cfg.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func snapshotConfig(cfg *domain.OperatingConfig) *string {
	times := make([]string, 0, len(cfg.FlightTimes))
	for _, t := range cfg.FlightTimes {
		times = append(times, t.String())
	}
	raw, err := json.Marshal(map[string]interface{}{
		"holidayMode": cfg.HolidayMode,
		"flightTimes": times,
	})
	if err != nil {
		return nil
	}
	s := string(raw)
	return &s
}
