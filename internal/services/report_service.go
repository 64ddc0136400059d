package services

import "storefront/internal/repositories"

// ReportService exposes sales aggregates.
type ReportService struct {
	repo repositories.ReportRepository
}

// NewReportService creates a new ReportService.
func NewReportService(repo repositories.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

// ProductSales returns up to limit products ranked by invoiced revenue.
func (s *ReportService) ProductSales(limit int) ([]repositories.ProductSales, error) {
	if limit > 500 {
		limit = 500
	}
	return s.repo.ProductSales(limit)
}

// Summary returns totals across all invoices.
func (s *ReportService) Summary() (*repositories.SalesSummary, error) {
	return s.repo.Summary()
}
