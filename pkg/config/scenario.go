package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fireflyopt/queuenet-optimizer/pkg/core"
	"github.com/fireflyopt/queuenet-optimizer/pkg/objective"
	"github.com/fireflyopt/queuenet-optimizer/pkg/swarm"
)

// Limits on the scenario inputs accepted from configuration files. They
// bound the solver's work to tractable sizes.
const (
	MaxStations    = 20
	MinCustomers   = 1
	MaxCustomers   = 200
	MinServiceRate = 0.1
	MaxServiceRate = 100.0
	MinServers     = 1
	MaxServers     = 50
)

// ObjectiveSelection names the objective kind and carries its parameters.
type ObjectiveSelection struct {
	Kind   string           `yaml:"kind" json:"kind"`
	Params objective.Params `yaml:"params" json:"params"`
}

// Scenario is a complete optimization problem description: the network, the
// objective, the search bounds and the search parameters.
type Scenario struct {
	Network   core.NetworkConfig `yaml:"network" json:"network"`
	Objective ObjectiveSelection `yaml:"objective" json:"objective"`
	Bounds    swarm.Bounds       `yaml:"serverBounds" json:"serverBounds"`
	Firefly   swarm.Params       `yaml:"firefly" json:"firefly"`
}

// Default returns the reference scenario: a three-tier network with twenty
// circulating customers, optimizing mean response time.
func Default() *Scenario {
	return &Scenario{
		Network: core.NetworkConfig{
			Customers: 20,
			Stations: []core.Station{
				{Name: "web", ServiceRate: 5, Servers: 2},
				{Name: "app", ServiceRate: 3, Servers: 2},
				{Name: "db", ServiceRate: 4, Servers: 2},
			},
		},
		Objective: ObjectiveSelection{Kind: objective.KindMeanResponseTime},
		Bounds:    swarm.Bounds{Min: 1, Max: 10},
		Firefly:   swarm.DefaultParams(),
	}
}

// Load reads a scenario from a YAML file, fills defaults for omitted
// sections and validates the result.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scenario document.
func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ApplyDefaults fills omitted sections with the reference scenario's values.
// Provided sections are kept as-is.
func (s *Scenario) ApplyDefaults() {
	def := Default()
	if s.Network.Customers == 0 && len(s.Network.Stations) == 0 {
		s.Network = def.Network
	}
	if s.Objective.Kind == "" {
		s.Objective.Kind = def.Objective.Kind
	}
	if s.Bounds == (swarm.Bounds{}) {
		s.Bounds = def.Bounds
	}
	if s.Firefly.NFireflies == 0 {
		s.Firefly.NFireflies = def.Firefly.NFireflies
	}
	if s.Firefly.MaxIterations == 0 {
		s.Firefly.MaxIterations = def.Firefly.MaxIterations
	}
	if s.Firefly.Alpha == 0 {
		s.Firefly.Alpha = def.Firefly.Alpha
	}
	if s.Firefly.Beta0 == 0 {
		s.Firefly.Beta0 = def.Firefly.Beta0
	}
	if s.Firefly.Gamma == 0 {
		s.Firefly.Gamma = def.Firefly.Gamma
	}
}

// Validate checks the scenario against the accepted limits. Network and
// search parameter invariants are checked again, with sharper messages, by
// their own constructors.
func (s *Scenario) Validate() error {
	if s.Network.Customers < MinCustomers || s.Network.Customers > MaxCustomers {
		return fmt.Errorf("customers must be between %d and %d, got %d",
			MinCustomers, MaxCustomers, s.Network.Customers)
	}
	if len(s.Network.Stations) == 0 {
		return fmt.Errorf("scenario must define at least one station")
	}
	if len(s.Network.Stations) > MaxStations {
		return fmt.Errorf("at most %d stations are supported, got %d",
			MaxStations, len(s.Network.Stations))
	}
	for i, st := range s.Network.Stations {
		if st.ServiceRate < MinServiceRate || st.ServiceRate > MaxServiceRate {
			return fmt.Errorf("station %d: service rate must be between %g and %g, got %g",
				i+1, MinServiceRate, MaxServiceRate, st.ServiceRate)
		}
		if st.Servers < MinServers || st.Servers > MaxServers {
			return fmt.Errorf("station %d: servers must be between %d and %d, got %d",
				i+1, MinServers, MaxServers, st.Servers)
		}
	}
	if s.Bounds.Max > MaxServers {
		return fmt.Errorf("server bound must not exceed %d, got %d", MaxServers, s.Bounds.Max)
	}
	if err := s.Bounds.Validate(); err != nil {
		return err
	}
	if err := s.Firefly.Validate(); err != nil {
		return err
	}
	if _, err := objective.Parse(s.Objective.Kind, s.Objective.Params); err != nil {
		return err
	}
	return nil
}

// BuildNetwork constructs the validated Network described by the scenario.
func (s *Scenario) BuildNetwork() (*core.Network, error) {
	return core.NewNetworkFromConfig(s.Network)
}

// BuildObjective constructs the selected objective.
func (s *Scenario) BuildObjective() (objective.Objective, error) {
	return objective.Parse(s.Objective.Kind, s.Objective.Params)
}
