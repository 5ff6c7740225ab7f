package handlers

//go:generate mockgen -source=export.go -destination=mock_export.go -package=handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-inventory/internal/models"
	"github.com/sbilibin2017/gw-inventory/internal/services"
)

// Exporter writes the inventory export for an identity.
type Exporter interface {
	ExportCSV(ctx context.Context, identity models.Identity, w io.Writer) error
}

// CSVFile is a rendered CSV attachment.
type CSVFile struct {
	Name string
	Data []byte
}

func (o CSVFile) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+o.Name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(o.Data)
}

// NewExportCSVHandler returns an HTTP handler for the CSV inventory export.
// When the export_csv flag is off for the caller it redirects to the dashboard.
// @Summary Export inventory as CSV
// @Tags reports
// @Produce text/csv
// @Success 200 {file} file "inventory_YYYYMMDD_HHMMSS.csv"
// @Success 303 "Export disabled, redirect to dashboard"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /export/csv [get]
// @Security SessionCookie
func NewExportCSVHandler(svc Exporter, now func() time.Time) http.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return handle(func(r *http.Request) Outcome {
		identity := models.IdentityFromContext(r.Context())

		var buf bytes.Buffer
		if err := svc.ExportCSV(r.Context(), identity, &buf); err != nil {
			if errors.Is(err, services.ErrFeatureDisabled) {
				return Redirect{Location: DashboardPath}
			}
			return internalError(err, "failed to export inventory")
		}

		return CSVFile{Name: services.ExportFilename(now()), Data: buf.Bytes()}
	})
}
