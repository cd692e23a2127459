package api

import (
	"net/http"
	"testing"

	"car_rental/internal/domain"
	"car_rental/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewsResponse struct {
	Success bool                  `json:"success"`
	Reviews []domain.DriverReview `json:"reviews"`
	Cached  bool                  `json:"cached"`
}

func TestReviews_VerifyThenSubmit(t *testing.T) {
	s := newTestServer(t)
	admin := s.signup(testAdminEmail)
	customer := s.signup("customer@fleet.io")

	w := s.do(http.MethodPost, "/drivers", admin, map[string]string{"name": "Dana", "idNumber": "12345", "imageUrl": "dana.png"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/verify-driver", customer, map[string]string{"idNumber": "12345"})
	require.Equal(t, http.StatusOK, w.Code)
	var verified struct {
		Success bool          `json:"success"`
		Driver  domain.Driver `json:"driver"`
	}
	decode(t, w, &verified)
	assert.True(t, verified.Success)
	assert.Equal(t, "Dana", verified.Driver.Name)

	w = s.do(http.MethodPost, "/reviews", customer, map[string]any{
		"driverId": verified.Driver.ID, "description": "Great", "rating": 0, "carImageUrl": "car.png",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)

	w = s.do(http.MethodPost, "/reviews", customer, map[string]any{
		"driverId": verified.Driver.ID, "description": "Great", "rating": 5, "carImageUrl": "car.png",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list reviewsResponse
	decode(t, w, &list)
	assert.True(t, list.Success)
	assert.False(t, list.Cached)
	require.Len(t, list.Reviews, 1)
	assert.Equal(t, "Dana", list.Reviews[0].DriverName)
	assert.Equal(t, "dana.png", list.Reviews[0].DriverImageURL)
	assert.Equal(t, 5, list.Reviews[0].Rating)
}

func TestVerifyDriver_Failures(t *testing.T) {
	s := newTestServer(t)
	customer := s.signup("customer@fleet.io")

	w := s.do(http.MethodPost, "/verify-driver", customer, map[string]string{"idNumber": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Missing ID number"}`, w.Body.String())

	w = s.do(http.MethodPost, "/verify-driver", customer, map[string]string{"idNumber": "54321"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Driver not found"}`, w.Body.String())

	w = s.do(http.MethodPost, "/verify-driver", customer, map[string]any{"idNumber": 54321})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Driver not found"}`, w.Body.String())

	w = s.do(http.MethodPost, "/reviews", customer, map[string]any{
		"driverId": 99, "description": "Great", "rating": 4, "carImageUrl": "car.png",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyDriver_NumericIDNumber(t *testing.T) {
	s := newTestServer(t)
	admin := s.signup(testAdminEmail)
	customer := s.signup("customer@fleet.io")

	w := s.do(http.MethodPost, "/drivers", admin, map[string]string{"name": "Dana", "idNumber": "12345"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/verify-driver", customer, map[string]any{"idNumber": 12345})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"name":"Dana"`)
}

func TestListReviews_CachedUntilNextSubmission(t *testing.T) {
	s := newTestServer(t)
	admin := s.signup(testAdminEmail)

	w := s.do(http.MethodPost, "/drivers", admin, map[string]string{"name": "Dana", "idNumber": "12345"})
	require.Equal(t, http.StatusCreated, w.Code)
	var driver domain.Driver
	decode(t, w, &driver)

	var list reviewsResponse
	w = s.do(http.MethodGet, "/reviews", "", nil)
	decode(t, w, &list)
	assert.False(t, list.Cached)
	assert.Empty(t, list.Reviews)
	assert.True(t, s.mr.Exists(utils.ReviewsCacheKey))

	w = s.do(http.MethodGet, "/reviews", "", nil)
	decode(t, w, &list)
	assert.True(t, list.Cached)

	review := map[string]any{"driverId": driver.ID, "description": "Fine", "rating": "4", "carImageUrl": "car.png"}
	for range 2 {
		w = s.do(http.MethodPost, "/reviews", admin, review)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	assert.False(t, s.mr.Exists(utils.ReviewsCacheKey))

	w = s.do(http.MethodGet, "/reviews", "", nil)
	decode(t, w, &list)
	assert.False(t, list.Cached)
	assert.Len(t, list.Reviews, 2, "duplicate reviews are kept")
}
