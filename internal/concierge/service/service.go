package service

import (
	"context"
	"sort"
	"venuely/internal/concierge/core"
	"venuely/internal/concierge/flows"
	"venuely/pkg/client"
	"venuely/pkg/logger"
	"venuely/pkg/sealer"
)

// ConciergeService runs guest-facing flows that orchestrate the venues and
// reservations services.
type ConciergeService struct {
	engine *core.Engine
	client *client.Client
	sealer *sealer.Sealer
	log    *logger.Logger
}

func NewConciergeService(c *client.Client, s *sealer.Sealer, log *logger.Logger) *ConciergeService {
	return &ConciergeService{
		engine: core.NewEngine(flows.Registry()...),
		client: c,
		sealer: s,
		log:    log,
	}
}

func (s *ConciergeService) ExecuteFlow(ctx context.Context, flowName string, input map[string]any) (map[string]any, error) {
	fc := core.NewFlowContext(ctx, input, s.client, s.sealer, s.log)
	if err := s.engine.Run(flowName, fc); err != nil {
		return nil, err
	}
	return fc.Output, nil
}

func (s *ConciergeService) AvailableFlows() []string {
	names := s.engine.Names()
	sort.Strings(names)
	return names
}
