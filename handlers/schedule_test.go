package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tutorhive/models"
	"tutorhive/services/schedule"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScheduleService struct {
	declareErr error
	commitErr  error
	releaseErr error

	gotTutorID  string
	gotClassRef string
	gotPattern  models.ProposedPattern
}

func (s *stubScheduleService) DeclareAvailability(_ context.Context, tutorID string, pattern models.ProposedPattern) error {
	s.gotTutorID, s.gotPattern = tutorID, pattern
	return s.declareErr
}

func (s *stubScheduleService) CommitClassSchedule(_ context.Context, tutorID, classRef string, pattern models.ProposedPattern) error {
	s.gotTutorID, s.gotClassRef, s.gotPattern = tutorID, classRef, pattern
	return s.commitErr
}

func (s *stubScheduleService) ReleaseClassSchedule(_ context.Context, tutorID, classRef string) error {
	s.gotTutorID, s.gotClassRef = tutorID, classRef
	return s.releaseErr
}

func (s *stubScheduleService) PreviewResidualFreeTime(tutorID string, _, _ models.ProposedPattern) models.WeeklyCalendar {
	return models.WeeklyCalendar{TutorID: tutorID}
}

func (s *stubScheduleService) GetWeeklyCalendar(_ context.Context, tutorID string) (models.WeeklyCalendar, error) {
	return models.WeeklyCalendar{TutorID: tutorID}, nil
}

func newScheduleRouter(svc *stubScheduleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewScheduleHandler(svc)
	r.PUT("/api/schedules/availability/:tutorId", h.DeclareAvailabilityHandler)
	r.POST("/api/schedules/classes/:tutorId", h.CommitClassScheduleHandler)
	r.DELETE("/api/schedules/classes/:tutorId/:classRef", h.ReleaseClassScheduleHandler)
	r.POST("/api/schedules/preview", h.PreviewResidualFreeTimeHandler)
	r.GET("/api/schedules/tutor/:tutorId", h.GetWeeklyCalendarHandler)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDeclareAvailabilityHandler(t *testing.T) {
	svc := &stubScheduleService{}
	r := newScheduleRouter(svc)

	body := gin.H{"pattern": []gin.H{
		{"dayOfWeek": 2, "intervals": []gin.H{{"start": 540, "end": 1020}}},
	}}
	w := doJSON(t, r, http.MethodPut, "/api/schedules/availability/tutor-1", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tutor-1", svc.gotTutorID)
	require.Len(t, svc.gotPattern, 1)
	assert.Equal(t, 2, svc.gotPattern[0].DayOfWeek)
}

func TestDeclareAvailabilityHandlerBadPayload(t *testing.T) {
	svc := &stubScheduleService{}
	r := newScheduleRouter(svc)

	w := doJSON(t, r, http.MethodPut, "/api/schedules/availability/tutor-1", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommitClassScheduleHandlerStatusMapping(t *testing.T) {
	body := gin.H{"classRef": "class-1", "pattern": []gin.H{
		{"dayOfWeek": 2, "intervals": []gin.H{{"start": 600, "end": 660}}},
	}}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, http.StatusOK},
		{"conflict", &schedule.ConflictError{DayOfWeek: 2, Interval: models.TimeInterval{Start: 600, End: 660}}, http.StatusConflict},
		{"validation", schedule.NewValidationError("bad input"), http.StatusBadRequest},
		{"unknown tutor", &schedule.NotFoundError{Resource: "tutor", ID: "tutor-1"}, http.StatusNotFound},
		{"calendar busy", &schedule.LockBusyError{TutorID: "tutor-1"}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubScheduleService{commitErr: tt.err}
			r := newScheduleRouter(svc)

			w := doJSON(t, r, http.MethodPost, "/api/schedules/classes/tutor-1", body)
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, "class-1", svc.gotClassRef)
		})
	}
}

func TestReleaseClassScheduleHandler(t *testing.T) {
	svc := &stubScheduleService{}
	r := newScheduleRouter(svc)

	w := doJSON(t, r, http.MethodDelete, "/api/schedules/classes/tutor-1/class-9", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tutor-1", svc.gotTutorID)
	assert.Equal(t, "class-9", svc.gotClassRef)
}

func TestPreviewResidualFreeTimeHandler(t *testing.T) {
	svc := &stubScheduleService{}
	r := newScheduleRouter(svc)

	body := gin.H{
		"tutorId":  "tutor-1",
		"freeTime": []gin.H{{"dayOfWeek": 2, "intervals": []gin.H{{"start": 540, "end": 1020}}}},
		"proposed": []gin.H{{"dayOfWeek": 2, "intervals": []gin.H{{"start": 600, "end": 660}}}},
	}
	w := doJSON(t, r, http.MethodPost, "/api/schedules/preview", body)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Calendar models.WeeklyCalendar `json:"calendar"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tutor-1", resp.Calendar.TutorID)
}

func TestGetWeeklyCalendarHandler(t *testing.T) {
	svc := &stubScheduleService{}
	r := newScheduleRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/schedules/tutor/tutor-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
