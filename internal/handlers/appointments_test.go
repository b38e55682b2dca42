package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var qInsertAppointment = regexp.QuoteMeta(`INSERT INTO appointments (user_id, "date", description)`)

func TestCreateAppointment_Success(t *testing.T) {
	mock := newMockDB(t)
	h := NewAppointmentsHandler(mock)

	when := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(qInsertAppointment).
		WithArgs("42", timeArg(when), strArg("Dentist")).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	rec := httptest.NewRecorder()
	h.CreateAppointment(rec, jsonRequest(t, http.MethodPost, "/appointments",
		`{"user_id": 42, "date": "2025-03-14", "description": "Dentist"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Appointment scheduled successfully!", body["message"])
	assert.Equal(t, float64(1), body["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointment_DateTimeLayouts(t *testing.T) {
	when := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	for _, date := range []string{"2025-03-14T10:30", "2025-03-14T10:30:00", "2025-03-14 10:30:00"} {
		t.Run(date, func(t *testing.T) {
			mock := newMockDB(t)
			h := NewAppointmentsHandler(mock)

			mock.ExpectQuery(qInsertAppointment).
				WithArgs("42", timeArg(when), nilStrArg()).
				WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))

			rec := httptest.NewRecorder()
			h.CreateAppointment(rec, jsonRequest(t, http.MethodPost, "/appointments",
				map[string]any{"user_id": 42, "date": date}))

			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			assert.Equal(t, float64(3), decodeBody(t, rec)["id"])
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateAppointment_AlwaysAppends(t *testing.T) {
	mock := newMockDB(t)
	h := NewAppointmentsHandler(mock)

	when := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	for id := int64(1); id <= 2; id++ {
		mock.ExpectQuery(qInsertAppointment).
			WithArgs("user-1", timeArg(when), nilStrArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))
	}

	for want := 1; want <= 2; want++ {
		rec := httptest.NewRecorder()
		h.CreateAppointment(rec, jsonRequest(t, http.MethodPost, "/appointments",
			map[string]string{"user_id": "user-1", "date": "2025-03-14T09:30:00Z"}))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, float64(want), decodeBody(t, rec)["id"])
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointment_Validation(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing date", `{"user_id": "1", "description": "x"}`, "Missing required fields"},
		{"blank date", `{"user_id": "1", "date": "  "}`, "Missing required fields"},
		{"missing user", `{"date": "2025-03-14"}`, "Missing required fields"},
		{"null user", `{"user_id": null, "date": "2025-03-14"}`, "Missing required fields"},
		{"zero user", `{"user_id": 0, "date": "2025-03-14"}`, "Missing required fields"},
		{"blank user", `{"user_id": " ", "date": "2025-03-14"}`, "Missing required fields"},
		{"bad date", `{"user_id": "1", "date": "next tuesday"}`, "Invalid date"},
		{"bad user type", `{"user_id": true, "date": "2025-03-14"}`, "Invalid request body"},
		{"not json", `user_id=1`, "Invalid request body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := newMockDB(t)
			h := NewAppointmentsHandler(mock)

			rec := httptest.NewRecorder()
			h.CreateAppointment(rec, jsonRequest(t, http.MethodPost, "/appointments", tc.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.wantErr, decodeBody(t, rec)["error"])
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateAppointment_DatabaseError(t *testing.T) {
	mock := newMockDB(t)
	h := NewAppointmentsHandler(mock)

	mock.ExpectQuery(qInsertAppointment).WillReturnError(errors.New("disk full"))

	rec := httptest.NewRecorder()
	h.CreateAppointment(rec, jsonRequest(t, http.MethodPost, "/appointments",
		map[string]string{"user_id": "1", "date": "2025-03-14"}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "disk full")
}
