package objective

// CatalogEntry describes one objective kind for configuration surfaces.
type CatalogEntry struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Unit        string `json:"unit" yaml:"unit"`
	Goal        string `json:"goal" yaml:"goal"`
}

// Catalog lists every objective kind in a stable order.
func Catalog() []CatalogEntry {
	return []CatalogEntry{
		{
			ID:          KindMeanResponseTime,
			Name:        "Mean response time",
			Description: "Minimize the mean time a customer spends in the system per cycle (waiting plus service)",
			Unit:        "seconds",
			Goal:        "minimize",
		},
		{
			ID:          KindMeanQueueLength,
			Name:        "Mean queue length",
			Description: "Minimize the mean number of customers waiting or in service across all stations",
			Unit:        "customers",
			Goal:        "minimize",
		},
		{
			ID:          KindMaxQueueLength,
			Name:        "Maximum queue length",
			Description: "Minimize the largest per-station queue, avoiding bottlenecks",
			Unit:        "customers",
			Goal:        "minimize",
		},
		{
			ID:          KindUtilizationVariance,
			Name:        "Load balance",
			Description: "Minimize differences in server utilization across stations",
			Unit:        "dimensionless",
			Goal:        "minimize",
		},
		{
			ID:          KindThroughput,
			Name:        "System throughput",
			Description: "Maximize the number of jobs completed per unit time",
			Unit:        "jobs/s",
			Goal:        "maximize",
		},
		{
			ID:          KindResponseTimePercentile,
			Name:        "Response time percentile",
			Description: "Minimize an approximated tail percentile of the response time (exponential-tail model)",
			Unit:        "seconds",
			Goal:        "minimize",
		},
		{
			ID:          KindProfit,
			Name:        "Operating profit",
			Description: "Maximize throughput revenue minus server capacity cost and customer holding cost",
			Unit:        "currency/s",
			Goal:        "maximize",
		},
		{
			ID:          KindWeighted,
			Name:        "Weighted tradeoff",
			Description: "Maximize a fixed weighted tradeoff of response time, throughput and queue length",
			Unit:        "dimensionless",
			Goal:        "maximize",
		},
		{
			ID:          KindGenericWeighted,
			Name:        "Custom weighted criteria",
			Description: "Minimize a weighted sum over a configurable set of criteria, including server cost",
			Unit:        "dimensionless",
			Goal:        "minimize",
		},
	}
}
