package core

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNetworkValidation(t *testing.T) {
	valid := []Station{
		{Name: "cpu", ServiceRate: 5, Servers: 2},
		{Name: "disk", ServiceRate: 3, Servers: 2},
	}

	tests := []struct {
		name      string
		customers int
		stations  []Station
		wantErr   string
	}{
		{
			name:      "valid network",
			customers: 10,
			stations:  valid,
		},
		{
			name:      "zero customers",
			customers: 0,
			stations:  valid,
			wantErr:   "customer count",
		},
		{
			name:      "negative customers",
			customers: -3,
			stations:  valid,
			wantErr:   "customer count",
		},
		{
			name:      "no stations",
			customers: 5,
			stations:  nil,
			wantErr:   "at least one station",
		},
		{
			name:      "zero service rate",
			customers: 5,
			stations:  []Station{{ServiceRate: 0, Servers: 1}},
			wantErr:   "service rate",
		},
		{
			name:      "negative service rate",
			customers: 5,
			stations:  []Station{{ServiceRate: -2, Servers: 1}},
			wantErr:   "service rate",
		},
		{
			name:      "zero servers",
			customers: 5,
			stations:  []Station{{ServiceRate: 1, Servers: 0}},
			wantErr:   "server count",
		},
		{
			name:      "mixed zero and positive visit weights",
			customers: 5,
			stations: []Station{
				{ServiceRate: 1, Servers: 1, VisitWeight: 0.5},
				{ServiceRate: 1, Servers: 1, VisitWeight: 0},
			},
			wantErr: "visit weight",
		},
		{
			name:      "negative visit weight",
			customers: 5,
			stations: []Station{
				{ServiceRate: 1, Servers: 1, VisitWeight: -0.2},
				{ServiceRate: 1, Servers: 1, VisitWeight: 0.8},
			},
			wantErr: "visit weight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewNetwork(tt.customers, tt.stations)
			if tt.wantErr != "" {
				require.Error(t, err)
				var cfgErr *ConfigurationError
				assert.True(t, errors.As(err, &cfgErr))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.customers, n.Customers())
			assert.Equal(t, len(tt.stations), n.NumStations())
		})
	}
}

func TestNewNetworkDefaultVisitWeights(t *testing.T) {
	n, err := NewNetwork(20, []Station{
		{ServiceRate: 5, Servers: 2},
		{ServiceRate: 3, Servers: 2},
		{ServiceRate: 4, Servers: 2},
	})
	require.NoError(t, err)

	for _, s := range n.Stations() {
		assert.InDelta(t, 1.0/3.0, s.VisitWeight, 1e-12)
	}
}

func TestNewNetworkDefaultNames(t *testing.T) {
	n, err := NewNetwork(1, []Station{
		{ServiceRate: 1, Servers: 1},
		{Name: "disk", ServiceRate: 1, Servers: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, "station-1", n.Station(0).Name)
	assert.Equal(t, "disk", n.Station(1).Name)
}

func TestNewNetworkCopiesInput(t *testing.T) {
	stations := []Station{{Name: "cpu", ServiceRate: 5, Servers: 2, VisitWeight: 1}}
	n, err := NewNetwork(3, stations)
	require.NoError(t, err)

	stations[0].Servers = 99
	assert.Equal(t, 2, n.Station(0).Servers)

	got := n.Stations()
	got[0].Servers = 42
	assert.Equal(t, 2, n.Station(0).Servers)
}

func TestWithServers(t *testing.T) {
	n, err := NewNetwork(20, []Station{
		{Name: "cpu", ServiceRate: 5, Servers: 2},
		{Name: "disk", ServiceRate: 3, Servers: 2},
	})
	require.NoError(t, err)

	m, err := n.WithServers([]int{4, 1})
	require.NoError(t, err)

	assert.Equal(t, []int{4, 1}, m.ServerCounts())
	assert.Equal(t, []int{2, 2}, n.ServerCounts(), "original network must be unchanged")
	assert.Equal(t, n.Customers(), m.Customers())
	assert.Equal(t, n.Station(0).ServiceRate, m.Station(0).ServiceRate)

	_, err = n.WithServers([]int{1})
	assert.Error(t, err)

	_, err = n.WithServers([]int{0, 1})
	assert.Error(t, err)
}

func TestTotalServers(t *testing.T) {
	n, err := NewNetwork(5, []Station{
		{ServiceRate: 1, Servers: 3},
		{ServiceRate: 1, Servers: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, n.TotalServers())
}

func TestResponseTimePercentile(t *testing.T) {
	m := &PerformanceMetrics{MeanResponseTime: 2.0}

	// Exponential tail: the median of an exponential is mean*ln(2).
	assert.InDelta(t, 2.0*math.Ln2, m.ResponseTimePercentile(50), 1e-12)
	assert.InDelta(t, -2.0*math.Log(0.05), m.ResponseTimePercentile(95), 1e-12)

	assert.True(t, math.IsNaN(m.ResponseTimePercentile(0)))
	assert.True(t, math.IsNaN(m.ResponseTimePercentile(100)))
	assert.True(t, math.IsNaN(m.ResponseTimePercentile(-5)))
}

func TestBottleneckStation(t *testing.T) {
	m := &PerformanceMetrics{Stations: []StationMetrics{
		{Name: "a", Utilization: 0.4},
		{Name: "b", Utilization: 0.9},
		{Name: "c", Utilization: 0.7},
	}}
	assert.Equal(t, 1, m.BottleneckStation())

	empty := &PerformanceMetrics{}
	assert.Equal(t, -1, empty.BottleneckStation())
}
