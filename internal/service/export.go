package service

import (
	"context"
	"fmt"

	"github.com/natpac/travel-survey/backend/internal/domain"
)

// ExportSource pages through every trip in export order.
// *TripService satisfies it.
type ExportSource interface {
	ListForExport(ctx context.Context, p domain.PaginationParams) ([]domain.ExportRow, error)
}

// ExportService assembles the flat researcher export of all trips.
type ExportService struct {
	trips ExportSource
}

// NewExportService constructs an ExportService reading from trips.
func NewExportService(trips ExportSource) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per trip, ordered by created_at then id, so
// consecutive pages never overlap.
// Always returns a non-nil slice; an empty store yields an empty export.
func (s *ExportService) Export(ctx context.Context, p domain.PaginationParams) ([]domain.ExportRow, error) {
	rows, err := s.trips.ListForExport(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	if rows == nil {
		return []domain.ExportRow{}, nil
	}
	return rows, nil
}
