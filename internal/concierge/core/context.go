package core

import (
	"context"
	"fmt"
	"time"
	"venuely/pkg/client"
	"venuely/pkg/logger"
	"venuely/pkg/sealer"
)

// FlowContext is the shared state a flow's steps read and write. Input is
// the caller's payload, Process holds intermediate values between steps,
// Output is what the caller gets back.
type FlowContext struct {
	Ctx     context.Context
	Input   map[string]any
	Process map[string]any
	Output  map[string]any
	Client  *client.Client
	Sealer  *sealer.Sealer
	Log     *logger.Logger
}

func NewFlowContext(ctx context.Context, input map[string]any, c *client.Client, s *sealer.Sealer, log *logger.Logger) *FlowContext {
	return &FlowContext{
		Ctx:     ctx,
		Input:   input,
		Process: make(map[string]any),
		Output:  make(map[string]any),
		Client:  c,
		Sealer:  s,
		Log:     log,
	}
}

func MissingParamErr(paramName string) error {
	return fmt.Errorf("required param [%v] is missing", paramName)
}

func (fc *FlowContext) ExtractString(key string) (string, error) {
	raw, ok := fc.Input[key]
	if !ok {
		return "", MissingParamErr(key)
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", MissingParamErr(key)
	}
	return s, nil
}

func (fc *FlowContext) OptionalString(key string) string {
	if raw, ok := fc.Input[key]; ok {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}

func (fc *FlowContext) ExtractTime(key string) (time.Time, error) {
	s, err := fc.ExtractString(key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("param [%v] is not a valid RFC3339 timestamp: %v", key, s)
	}
	return t, nil
}

func (fc *FlowContext) OptionalTime(key string) (time.Time, bool, error) {
	if _, ok := fc.Input[key]; !ok {
		return time.Time{}, false, nil
	}
	t, err := fc.ExtractTime(key)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// OptionalInt tolerates JSON numbers arriving as float64.
func (fc *FlowContext) OptionalInt(key string, fallback int) int {
	raw, ok := fc.Input[key]
	if !ok {
		return fallback
	}
	switch n := raw.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return fallback
}
