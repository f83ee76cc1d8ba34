package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ironlog/internal/models"
	"ironlog/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogWorkflow walks the full path of the core loop: log a set, see it
// in the personal history, and read the derived progress and activity views.
func TestLogWorkflow(t *testing.T) {
	app, s, _ := newIntegrationServer(t)

	var squat models.LiftType
	require.NoError(t, s.db.Where("name = ?", "Back Squat").First(&squat).Error)

	// Bob logs a squat set
	req := authedRequest(t, s, http.MethodPost, "/api/logs", map[string]any{
		"lift_type_id": squat.ID,
		"weight":       225,
		"reps":         5,
		"unit":         "lbs",
	}, 2)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Log
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, uint(2), created.UserID)
	assert.Equal(t, float64(225), created.Weight)
	// First squat log for this user is automatically a PR
	assert.True(t, created.IsPR)

	// History shows the new entry
	req = authedRequest(t, s, http.MethodGet, "/api/logs", nil, 2)
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history []models.Log
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	require.Len(t, history, 1)
	assert.Equal(t, created.ID, history[0].ID)

	// Progress view estimates the 1RM via Epley: 225 * (1 + 5/30) = 262.5 -> 263
	target := fmt.Sprintf("/api/logs/progress?lift_type_id=%d", squat.ID)
	req = authedRequest(t, s, http.MethodGet, target, nil, 2)
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var points []stats.ProgressPoint
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&points))
	require.Len(t, points, 1)
	assert.Equal(t, float64(263), points[0].OneRepMax)

	// Activity heatmap always spans the full window
	req = authedRequest(t, s, http.MethodGet, "/api/logs/activity", nil, 2)
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buckets []stats.ActivityBucket
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&buckets))
	require.Len(t, buckets, stats.DefaultActivityWindow)
	// Today's bucket carries the new log
	assert.Equal(t, 1, buckets[len(buckets)-1].Count)
}

func TestGetProgress_RequiresLiftType(t *testing.T) {
	app, s, _ := newIntegrationServer(t)

	req := authedRequest(t, s, http.MethodGet, "/api/logs/progress", nil, 2)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateLog_OwnerOnly(t *testing.T) {
	app, s, logEntry := newIntegrationServer(t)
	target := fmt.Sprintf("/api/logs/%d", logEntry.ID)

	// Bob cannot edit Alice's log
	req := authedRequest(t, s, http.MethodPut, target, map[string]any{"weight": 135}, 2)
	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Alice can
	req = authedRequest(t, s, http.MethodPut, target, map[string]any{"weight": 235}, 1)
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Log
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, float64(235), updated.Weight)
}

func TestCreateLog_RejectsInvalidEntries(t *testing.T) {
	app, s, _ := newIntegrationServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"zero weight", map[string]any{"lift_name": "Curl", "weight": 0, "reps": 5}},
		{"zero reps", map[string]any{"lift_name": "Curl", "weight": 95, "reps": 0}},
		{"no lift", map[string]any{"weight": 95, "reps": 5}},
		{"bad unit", map[string]any{"lift_name": "Curl", "weight": 95, "reps": 5, "unit": "stone"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(t, s, http.MethodPost, "/api/logs", tt.body, 2)
			resp, err := app.Test(req)
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	// Pointing at a lift type that does not exist is a 404, not a 400
	req := authedRequest(t, s, http.MethodPost, "/api/logs", map[string]any{
		"lift_type_id": 9999, "weight": 95, "reps": 5,
	}, 2)
	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetLiftTypes_Public(t *testing.T) {
	app, _, _ := newIntegrationServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/lift-types", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var liftTypes []models.LiftType
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&liftTypes))
	require.Len(t, liftTypes, 1)
	assert.Equal(t, "Back Squat", liftTypes[0].Name)
}

func TestCreateLiftType_AdminOnly(t *testing.T) {
	app, s, _ := newIntegrationServer(t)

	// Alice (user 1) is not an admin
	req := authedRequest(t, s, http.MethodPost, "/api/admin/lift-types", map[string]any{
		"name": "Front Squat",
	}, 1)
	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	require.NoError(t, s.db.Model(&models.Profile{}).Where("id = ?", 1).Update("is_admin", true).Error)

	req = authedRequest(t, s, http.MethodPost, "/api/admin/lift-types", map[string]any{
		"name": "Front Squat", "category": "squat",
	}, 1)
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.LiftType
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Front Squat", created.Name)

	// Blank names are rejected
	req = authedRequest(t, s, http.MethodPost, "/api/admin/lift-types", map[string]any{
		"name": "   ",
	}, 1)
	resp, err = app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
