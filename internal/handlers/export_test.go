package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-inventory/internal/models"
	"github.com/sbilibin2017/gw-inventory/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestExportCSVHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockExporter(ctrl)
	fixed := func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }
	handler := NewExportCSVHandler(mockSvc, fixed)
	user := models.Identified{ID: uuid.New()}

	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/export/csv", nil)
		return req.WithContext(models.WithIdentity(req.Context(), user))
	}

	t.Run("enabled", func(t *testing.T) {
		mockSvc.EXPECT().ExportCSV(gomock.Any(), user, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ models.Identity, w io.Writer) error {
				_, err := io.WriteString(w, "Name,Category,Stock,Price,Description\n")
				return err
			})

		rr := httptest.NewRecorder()
		handler(rr, newReq())

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="inventory_20240309_140507.csv"`, rr.Header().Get("Content-Disposition"))
		assert.Equal(t, "Name,Category,Stock,Price,Description\n", rr.Body.String())
	})

	t.Run("disabled", func(t *testing.T) {
		mockSvc.EXPECT().ExportCSV(gomock.Any(), user, gomock.Any()).Return(services.ErrFeatureDisabled)

		rr := httptest.NewRecorder()
		handler(rr, newReq())

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, DashboardPath, rr.Header().Get("Location"))
	})

	t.Run("failure", func(t *testing.T) {
		mockSvc.EXPECT().ExportCSV(gomock.Any(), user, gomock.Any()).Return(errors.New("db down"))

		rr := httptest.NewRecorder()
		handler(rr, newReq())

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Empty(t, rr.Header().Get("Content-Disposition"))
	})
}
