package core

import "fmt"

// Station describes a single service station of a closed queueing network.
type Station struct {
	// Name identifies the station in reports. Optional; defaults to
	// "station-<index>" when empty.
	Name string `json:"name" yaml:"name"`

	// ServiceRate is the per-server service rate mu, in jobs per unit time.
	// Must be > 0.
	ServiceRate float64 `json:"serviceRate" yaml:"serviceRate"`

	// Servers is the number of identical parallel servers at the station.
	// Must be >= 1.
	Servers int `json:"servers" yaml:"servers"`

	// VisitWeight is the relative frequency of visits to this station per
	// network cycle. When every station leaves it zero, an equal weight of
	// 1/K is assigned. Otherwise all weights must be > 0.
	VisitWeight float64 `json:"visitWeight" yaml:"visitWeight"`
}

// NetworkConfig is the plain-data form of a Network, used for construction,
// serialization and reporting.
type NetworkConfig struct {
	Customers int       `json:"customers" yaml:"customers"`
	Stations  []Station `json:"stations" yaml:"stations"`
}

// Network is an immutable closed queueing network: a fixed population of
// customers circulating among a fixed sequence of stations. Use NewNetwork
// to construct one; use WithServers to derive a modified configuration.
type Network struct {
	customers int
	stations  []Station
}

// NewNetwork validates the given configuration and builds a Network.
// Invariants: customers >= 1, at least one station, every service rate > 0,
// every server count >= 1. Violations yield a ConfigurationError.
func NewNetwork(customers int, stations []Station) (*Network, error) {
	if customers < 1 {
		return nil, NewConfigurationError("customer count must be >= 1, got %d", customers)
	}
	if len(stations) == 0 {
		return nil, NewConfigurationError("network must have at least one station")
	}

	owned := make([]Station, len(stations))
	copy(owned, stations)

	allZero := true
	for _, s := range owned {
		if s.VisitWeight != 0 {
			allZero = false
			break
		}
	}

	for i := range owned {
		s := &owned[i]
		if s.Name == "" {
			s.Name = fmt.Sprintf("station-%d", i+1)
		}
		if s.ServiceRate <= 0 {
			return nil, NewConfigurationError("station %q: service rate must be > 0, got %g", s.Name, s.ServiceRate)
		}
		if s.Servers < 1 {
			return nil, NewConfigurationError("station %q: server count must be >= 1, got %d", s.Name, s.Servers)
		}
		if allZero {
			// No routing data supplied: every station is visited with
			// equal frequency per cycle.
			s.VisitWeight = 1.0 / float64(len(owned))
		} else if s.VisitWeight <= 0 {
			return nil, NewConfigurationError("station %q: visit weight must be > 0, got %g", s.Name, s.VisitWeight)
		}
	}

	return &Network{customers: customers, stations: owned}, nil
}

// NewNetworkFromConfig builds a Network from its plain-data form.
func NewNetworkFromConfig(cfg NetworkConfig) (*Network, error) {
	return NewNetwork(cfg.Customers, cfg.Stations)
}

// Customers returns the fixed customer population N.
func (n *Network) Customers() int { return n.customers }

// NumStations returns the number of stations K.
func (n *Network) NumStations() int { return len(n.stations) }

// Stations returns a copy of the station sequence.
func (n *Network) Stations() []Station {
	out := make([]Station, len(n.stations))
	copy(out, n.stations)
	return out
}

// Station returns the station at index k.
func (n *Network) Station(k int) Station { return n.stations[k] }

// ServerCounts returns the per-station server counts as a fresh slice.
func (n *Network) ServerCounts() []int {
	out := make([]int, len(n.stations))
	for i, s := range n.stations {
		out[i] = s.Servers
	}
	return out
}

// TotalServers returns the total number of servers across all stations.
func (n *Network) TotalServers() int {
	total := 0
	for _, s := range n.stations {
		total += s.Servers
	}
	return total
}

// WithServers returns a freshly constructed Network identical to n except for
// the per-station server counts. The receiver is never modified.
func (n *Network) WithServers(servers []int) (*Network, error) {
	if len(servers) != len(n.stations) {
		return nil, NewConfigurationError("server vector has %d entries, network has %d stations", len(servers), len(n.stations))
	}
	stations := make([]Station, len(n.stations))
	copy(stations, n.stations)
	for i := range stations {
		stations[i].Servers = servers[i]
	}
	return NewNetwork(n.customers, stations)
}

// Config returns the plain-data form of the network.
func (n *Network) Config() NetworkConfig {
	return NetworkConfig{Customers: n.customers, Stations: n.Stations()}
}
