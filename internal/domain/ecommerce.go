package domain

// ECommerceSnapshot is a sparse bag of store metrics; no field is
// guaranteed present. Pointer fields distinguish "absent" from zero.
type ECommerceSnapshot struct {
	TotalRevenue      *float64
	AttributedRevenue *float64
	TotalOrders       *int64
	ProductViews      *int64
	CartAdditions     *int64
	Clicks            *int64
	Impressions       *int64
	ConversionRate    *float64
	AverageOrderValue *float64
	AcquisitionCost   *float64
	ClickThroughRate  *float64
	ReturnOnAdSpend   *float64
	Campaign          *CampaignData
	TopProducts       []TopProduct
}

type CampaignData struct {
	Name  string
	Spend float64
}

type TopProduct struct {
	ProductID string
	Name      string
	Units     int64
	Revenue   float64
}

// ReportMetrics is the canonical KPI set resolved from a snapshot.
// A nil field means the metric could not be computed from the data at
// hand; it is never defaulted to zero.
type ReportMetrics struct {
	ROI                    *float64
	ConversionRate         *float64
	AverageOrderValue      *float64
	CustomerAcquisition    *float64
	ClickThroughRate       *float64
	CostPerClick           *float64
	CostPerAcquisition     *float64
	CartConversionRate     *float64
	TopProductRevenueShare *float64
}
