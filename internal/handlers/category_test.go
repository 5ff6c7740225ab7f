package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-inventory/internal/apperr"
	"github.com/sbilibin2017/gw-inventory/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCategoriesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockCategoryService(ctrl)
	handler := NewListCategoriesHandler(mockSvc)

	mockSvc.EXPECT().List(gomock.Any()).Return([]models.CategoryDB{{CategoryID: uuid.New(), Name: "Tools"}}, nil)
	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodGet, "/categories", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp CategoryListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, "Tools", resp.Categories[0].Name)

	mockSvc.EXPECT().List(gomock.Any()).Return(nil, errors.New("db down"))
	rr = httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodGet, "/categories", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestCreateCategoryHandler(t *testing.T) {
	tests := []struct {
		name         string
		req          CategoryRequest
		mockErr      error
		expectedCode int
	}{
		{name: "success", req: CategoryRequest{Name: "Tools", Description: "Hand tools"}, expectedCode: http.StatusCreated},
		{name: "missing name", req: CategoryRequest{}, mockErr: apperr.FieldError("name", "this field is required"), expectedCode: http.StatusBadRequest},
		{name: "store failure", req: CategoryRequest{Name: "Tools"}, mockErr: errors.New("db down"), expectedCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockCategoryService(ctrl)
			var created *models.CategoryDB
			if tt.mockErr == nil {
				created = &models.CategoryDB{CategoryID: uuid.New(), Name: tt.req.Name, Description: tt.req.Description}
			}
			mockSvc.EXPECT().Create(gomock.Any(), tt.req.Name, tt.req.Description).Return(created, tt.mockErr)

			rr := httptest.NewRecorder()
			NewCreateCategoryHandler(mockSvc)(rr, httptest.NewRequest(http.MethodPost, "/categories", jsonBody(t, tt.req)))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if created != nil {
				var resp CategoryResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, created.CategoryID, resp.ID)
			}
		})
	}
}
