// Package config provides YAML scenario parsing for the unicycle CLI.
//
// This package enables driving a store from a declarative file, as an
// alternative to the programmatic SDK approach. A scenario describes a
// counter store: its initial value, the subscription strategy to observe it
// with, and a script of actions to dispatch.
//
// Example scenario:
//
//	name: warmup
//	initial: 10
//	strategy: every
//	actions:
//	  - op: increment
//	  - op: add
//	    amount: 5
//	  - op: decrement
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Op identifies a scripted counter operation.
type Op string

const (
	// OpIncrement adds one to the counter.
	OpIncrement Op = "increment"

	// OpDecrement subtracts one from the counter.
	OpDecrement Op = "decrement"

	// OpAdd adds a signed amount to the counter.
	OpAdd Op = "add"
)

// Scenario is the root structure of a scenario file.
//
// It maps directly to the YAML file structure. Use [Load] or [Parse] to
// create a Scenario from YAML.
type Scenario struct {
	// Name is the scenario name used in log output. Defaults to "scenario".
	Name string `yaml:"name"`

	// Initial is the counter's starting value. When omitted, the store's
	// own default (zero) is used.
	Initial *int `yaml:"initial"`

	// Strategy selects how the replay observes the store: "latest" or
	// "every". Defaults to "latest".
	Strategy string `yaml:"strategy"`

	// Actions is the script of operations to dispatch, in order.
	Actions []Step `yaml:"actions"`
}

// Step is a single scripted action.
type Step struct {
	// Op is the operation to dispatch: increment, decrement, or add.
	Op Op `yaml:"op"`

	// Amount is the signed amount for the add operation. Ignored otherwise.
	Amount int `yaml:"amount"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML scenario data.
//
// Defaults are applied for Name ("scenario") and Strategy ("latest");
// all fields are validated.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if sc.Name == "" {
		sc.Name = "scenario"
	}
	if sc.Strategy == "" {
		sc.Strategy = "latest"
	}

	if err := sc.validate(); err != nil {
		return nil, err
	}

	return &sc, nil
}

// validate checks the scenario's fields.
func (s *Scenario) validate() error {
	if s.Strategy != "latest" && s.Strategy != "every" {
		return fmt.Errorf("strategy must be %q or %q, got %q", "latest", "every", s.Strategy)
	}

	if len(s.Actions) == 0 {
		return fmt.Errorf("at least one action is required")
	}

	for i, step := range s.Actions {
		switch step.Op {
		case OpIncrement, OpDecrement:
			if step.Amount != 0 {
				return fmt.Errorf("actions[%d]: amount is only valid for op %q", i, OpAdd)
			}
		case OpAdd:
			if step.Amount == 0 {
				return fmt.Errorf("actions[%d]: op %q requires a non-zero amount", i, OpAdd)
			}
		case "":
			return fmt.Errorf("actions[%d]: op is required", i)
		default:
			return fmt.Errorf("actions[%d]: unknown op %q", i, step.Op)
		}
	}

	return nil
}
