package core

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"
	"venuely/pkg/logger"
)

func testContext(input map[string]any) *FlowContext {
	return NewFlowContext(context.Background(), input, nil, nil, logger.New(logger.Config{Output: io.Discard}))
}

func TestEngineRunsStepsInOrder(t *testing.T) {
	var order []string

	flow := NewFlow("two_steps",
		&Step{Name: "first", Execute: func(fc *FlowContext) error {
			order = append(order, "first")
			fc.Process["value"] = 1
			return nil
		}},
		&Step{Name: "second", Execute: func(fc *FlowContext) error {
			order = append(order, "second")
			fc.Output["value"] = fc.Process["value"]
			return nil
		}},
	)
	engine := NewEngine(flow)

	fc := testContext(nil)
	if err := engine.Run("two_steps", fc); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("unexpected step order: %v", order)
	}
	if fc.Output["value"] != 1 {
		t.Errorf("process state did not reach second step: %v", fc.Output)
	}
}

func TestEngineFailsFast(t *testing.T) {
	secondRan := false

	flow := NewFlow("failing",
		&Step{Name: "boom", Execute: func(fc *FlowContext) error {
			return errors.New("upstream unavailable")
		}},
		&Step{Name: "never", Execute: func(fc *FlowContext) error {
			secondRan = true
			return nil
		}},
	)
	engine := NewEngine(flow)

	err := engine.Run("failing", testContext(nil))
	if err == nil {
		t.Fatal("expected step error")
	}
	if secondRan {
		t.Error("steps after a failure must not run")
	}
}

func TestEngineUnknownFlow(t *testing.T) {
	engine := NewEngine()
	if err := engine.Run("missing", testContext(nil)); err == nil {
		t.Fatal("expected error for unknown flow")
	}
}

func TestExtractString(t *testing.T) {
	fc := testContext(map[string]any{"name": "Court 1", "empty": "", "num": 7})

	if got, err := fc.ExtractString("name"); err != nil || got != "Court 1" {
		t.Errorf("ExtractString(name) = %q, %v", got, err)
	}
	if _, err := fc.ExtractString("missing"); err == nil {
		t.Error("expected error for missing key")
	}
	if _, err := fc.ExtractString("empty"); err == nil {
		t.Error("expected error for empty value")
	}
	if _, err := fc.ExtractString("num"); err == nil {
		t.Error("expected error for non-string value")
	}
}

func TestExtractTime(t *testing.T) {
	fc := testContext(map[string]any{
		"good": "2026-03-02T10:00:00Z",
		"bad":  "yesterday",
	})

	got, err := fc.ExtractTime("good")
	if err != nil {
		t.Fatalf("ExtractTime returned error: %v", err)
	}
	want := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ExtractTime = %v, want %v", got, want)
	}

	if _, err := fc.ExtractTime("bad"); err == nil {
		t.Error("expected error for unparseable time")
	}

	if _, present, err := fc.OptionalTime("absent"); err != nil || present {
		t.Errorf("OptionalTime(absent) = present=%v err=%v", present, err)
	}
}

func TestOptionalInt(t *testing.T) {
	// JSON numbers decode as float64
	fc := testContext(map[string]any{"limit": float64(50), "label": "x"})

	if got := fc.OptionalInt("limit", 20); got != 50 {
		t.Errorf("OptionalInt(limit) = %d", got)
	}
	if got := fc.OptionalInt("missing", 20); got != 20 {
		t.Errorf("OptionalInt(missing) = %d, want fallback", got)
	}
	if got := fc.OptionalInt("label", 20); got != 20 {
		t.Errorf("OptionalInt(label) = %d, want fallback for wrong type", got)
	}
}
