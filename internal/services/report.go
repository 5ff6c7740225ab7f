package services

//go:generate mockgen -source=report.go -destination=mock_report.go -package=services

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/sbilibin2017/gw-inventory/internal/logger"
	"github.com/sbilibin2017/gw-inventory/internal/models"
)

// ErrFeatureDisabled is returned when the requested feature is switched off for the caller.
var ErrFeatureDisabled = errors.New("feature disabled")

// FlagEvaluator decides feature flags for an identity.
type FlagEvaluator interface {
	IsEnabled(ctx context.Context, flag string, identity models.Identity) bool
}

var csvHeader = []string{"Name", "Category", "Stock", "Price", "Description"}

const emptyDescription = "No description"

// ReportService builds the dashboard and the inventory export.
type ReportService struct {
	products  ProductReader
	flags     FlagEvaluator
	threshold int
}

// NewReportService creates a new ReportService.
func NewReportService(products ProductReader, flags FlagEvaluator, threshold int) *ReportService {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return &ReportService{products: products, flags: flags, threshold: threshold}
}

// Dashboard returns the inventory counters and the UI flags for user.
func (s *ReportService) Dashboard(ctx context.Context, user models.Identified) (*models.Dashboard, error) {
	stats, err := s.products.Stats(ctx, s.threshold)
	if err != nil {
		logger.Log.Errorw("failed to load inventory stats", "error", err)
		return nil, err
	}

	flags := make(map[string]bool, 3)
	for _, flag := range []string{models.FlagNewUI, models.FlagDarkMode, models.FlagExportCSV} {
		flags[flag] = s.flags.IsEnabled(ctx, flag, user)
	}

	return &models.Dashboard{User: user, Stats: *stats, Flags: flags}, nil
}

// CanExport reports whether the CSV export is enabled for identity.
func (s *ReportService) CanExport(ctx context.Context, identity models.Identity) bool {
	return s.flags.IsEnabled(ctx, models.FlagExportCSV, identity)
}

// ExportCSV writes every product as CSV to w.
func (s *ReportService) ExportCSV(ctx context.Context, identity models.Identity, w io.Writer) error {
	if !s.CanExport(ctx, identity) {
		return ErrFeatureDisabled
	}

	products, err := s.products.List(ctx, models.ProductFilter{})
	if err != nil {
		logger.Log.Errorw("failed to list products for export", "error", err)
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range products {
		description := p.Description
		if description == "" {
			description = emptyDescription
		}
		record := []string{
			p.Name,
			p.CategoryName,
			strconv.Itoa(p.StockQuantity),
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			description,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	logger.Log.Infow("inventory exported", "rows", len(products))
	return nil
}

// ExportFilename is the attachment name of an export taken at t.
func ExportFilename(t time.Time) string {
	return "inventory_" + t.Format("20060102_150405") + ".csv"
}
