package engine

import (
	"math"

	"github.com/orchids/social-analytics/internal/domain"
)

// DeriveCommerceMetrics resolves the canonical KPI set from a sparse
// snapshot. Each metric tries its sources in priority order and takes
// the first whose inputs are all present with a non-zero denominator;
// otherwise the field stays nil. A missing metric is not the same
// signal as a zero one, so nothing here defaults to 0.
func DeriveCommerceMetrics(snap *domain.ECommerceSnapshot) domain.ReportMetrics {
	var metrics domain.ReportMetrics
	if snap == nil {
		return metrics
	}

	spend := campaignSpend(snap)

	// ROI: computed from attributed revenue against spend, falling
	// back to the platform-reported return on ad spend.
	if snap.AttributedRevenue != nil && spend != nil && *spend > 0 {
		metrics.ROI = ptr(round2((*snap.AttributedRevenue - *spend) / *spend * 100))
	} else if snap.ReturnOnAdSpend != nil {
		metrics.ROI = ptr(round2(*snap.ReturnOnAdSpend))
	}

	if snap.ConversionRate != nil {
		metrics.ConversionRate = ptr(round4(*snap.ConversionRate))
	} else if snap.TotalOrders != nil && snap.ProductViews != nil && *snap.ProductViews > 0 {
		metrics.ConversionRate = ptr(round4(float64(*snap.TotalOrders) / float64(*snap.ProductViews)))
	}

	if snap.TotalRevenue != nil && snap.TotalOrders != nil && *snap.TotalOrders > 0 {
		metrics.AverageOrderValue = ptr(round2(*snap.TotalRevenue / float64(*snap.TotalOrders)))
	} else if snap.AverageOrderValue != nil {
		metrics.AverageOrderValue = ptr(round2(*snap.AverageOrderValue))
	}

	if snap.AcquisitionCost != nil {
		metrics.CustomerAcquisition = ptr(round2(*snap.AcquisitionCost))
	} else if spend != nil && snap.TotalOrders != nil && *snap.TotalOrders > 0 {
		metrics.CustomerAcquisition = ptr(round2(*spend / float64(*snap.TotalOrders)))
	}

	if snap.ClickThroughRate != nil {
		metrics.ClickThroughRate = ptr(round4(*snap.ClickThroughRate))
	} else if snap.Clicks != nil && snap.Impressions != nil && *snap.Impressions > 0 {
		metrics.ClickThroughRate = ptr(round4(float64(*snap.Clicks) / float64(*snap.Impressions)))
	}

	if spend != nil && snap.Clicks != nil && *snap.Clicks > 0 {
		metrics.CostPerClick = ptr(round2(*spend / float64(*snap.Clicks)))
	}

	if spend != nil && snap.TotalOrders != nil && *snap.TotalOrders > 0 {
		metrics.CostPerAcquisition = ptr(round2(*spend / float64(*snap.TotalOrders)))
	}

	if snap.TotalOrders != nil && snap.CartAdditions != nil && *snap.CartAdditions > 0 {
		metrics.CartConversionRate = ptr(round4(float64(*snap.TotalOrders) / float64(*snap.CartAdditions)))
	}

	if len(snap.TopProducts) > 0 && snap.TotalRevenue != nil && *snap.TotalRevenue > 0 {
		var topRevenue float64
		for _, p := range snap.TopProducts {
			topRevenue += p.Revenue
		}
		metrics.TopProductRevenueShare = ptr(round4(topRevenue / *snap.TotalRevenue))
	}

	return metrics
}

func campaignSpend(snap *domain.ECommerceSnapshot) *float64 {
	if snap.Campaign == nil {
		return nil
	}
	return &snap.Campaign.Spend
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func ptr(v float64) *float64 {
	return &v
}
