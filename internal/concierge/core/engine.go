package core

import "fmt"

// Step is one named unit of work in a flow. Steps communicate through the
// FlowContext only.
type Step struct {
	Name    string
	Execute func(fc *FlowContext) error
}

type Flow struct {
	name  string
	steps []*Step
}

func NewFlow(name string, steps ...*Step) *Flow {
	return &Flow{name: name, steps: steps}
}

func (f *Flow) Name() string   { return f.name }
func (f *Flow) Steps() []*Step { return f.steps }

// Engine runs registered flows step by step, failing fast on the first step
// error.
type Engine struct {
	flows map[string]*Flow
}

func NewEngine(flows ...*Flow) *Engine {
	e := &Engine{flows: make(map[string]*Flow)}
	for _, f := range flows {
		e.flows[f.Name()] = f
	}
	return e
}

func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.flows))
	for name := range e.flows {
		names = append(names, name)
	}
	return names
}

func (e *Engine) Run(flowName string, fc *FlowContext) error {
	flow, ok := e.flows[flowName]
	if !ok {
		return fmt.Errorf("unknown flow: %v", flowName)
	}

	for _, step := range flow.Steps() {
		fc.Log.Debug("Executing flow step",
			"flow", flowName,
			"step", step.Name,
		)
		if err := step.Execute(fc); err != nil {
			return fmt.Errorf("step [%v] failed: %w", step.Name, err)
		}
	}

	return nil
}
