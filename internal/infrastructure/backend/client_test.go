package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainDriver "drivebuddy-admin/internal/domain/driver"
	domainInvitation "drivebuddy-admin/internal/domain/invitation"
	"drivebuddy-admin/internal/domain/session"
	"drivebuddy-admin/internal/domain/telemetry"
	appErrors "drivebuddy-admin/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func sessionCtx() context.Context {
	return session.NewContext(context.Background(), session.Session{
		AdminID:   "admin-1",
		CompanyID: "company-1",
		Token:     "admin-token",
	})
}

func TestDriverRepository_ListByCompany(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/drivers/company/company-1", r.URL.Path)
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `[
			{"id":"d1","name":"A","email":"a@x.com","phone":"555","vehicle_type":"truck","birthday":{"seconds":946684800,"nanoseconds":0}},
			{"id":"d2","company_id":"company-1","name":"B","email":"b@x.com","birthday":null}
		]`)
	}))
	defer srv.Close()

	repo := NewDriverRepository(NewClient(srv.URL, time.Second, "service-token"))
	drivers, err := repo.ListByCompany(sessionCtx(), "company-1")
	require.NoError(t, err)
	require.Len(t, drivers, 2)

	assert.Equal(t, "d1", drivers[0].ID)
	assert.Equal(t, "company-1", drivers[0].CompanyID)
	require.NotNil(t, drivers[0].Birthday)
	assert.Equal(t, 2000, drivers[0].Birthday.Year())
	assert.Nil(t, drivers[1].Birthday)
}

func TestDriverRepository_ListByCompanyNotFoundIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":"no drivers"}`)
	}))
	defer srv.Close()

	drivers, err := NewDriverRepository(NewClient(srv.URL, time.Second, "")).ListByCompany(sessionCtx(), "company-1")
	require.NoError(t, err)
	assert.Empty(t, drivers)
}

func TestDriverRepository_GetByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":"Driver not found"}`)
	}))
	defer srv.Close()

	_, err := NewDriverRepository(NewClient(srv.URL, time.Second, "")).GetByID(sessionCtx(), "missing")
	assert.ErrorIs(t, err, domainDriver.ErrDriverNotFound)
}

func TestDriverRepository_UpdateSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/drivers/d1", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "New Name", body["name"])
		assert.Equal(t, "1999-05-01T00:00:00Z", body["birthday"])

		writeJSON(w, http.StatusOK, `{"id":"d1","name":"New Name","email":"a@x.com","birthday":"1999-05-01T00:00:00Z"}`)
	}))
	defer srv.Close()

	birthday := time.Date(1999, 5, 1, 0, 0, 0, 0, time.UTC)
	d := &domainDriver.Driver{ID: "d1", CompanyID: "company-1", Name: "New Name", Email: "a@x.com", Birthday: &birthday}
	require.NoError(t, NewDriverRepository(NewClient(srv.URL, time.Second, "")).Update(sessionCtx(), d))
	assert.Equal(t, "company-1", d.CompanyID)
	assert.Equal(t, "New Name", d.Name)
}

func TestInvitationRepository_ListPreservesOrderAndParsesTimestamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invitations/", r.URL.Path)
		assert.Equal(t, "company-1", r.URL.Query().Get("company_id"))
		writeJSON(w, http.StatusOK, `[
			{"id":"i2","company_id":"company-1","recipient_email":"b@x.com","recipient_name":"B","status":"pending","invitation_code":"AB12CD","createdAt":{"_seconds":1700000000,"_nanoseconds":0}},
			{"id":"i1","company_id":"company-1","recipient_email":"a@x.com","status":"accepted","createdAt":"2023-11-01T10:00:00Z","acceptedAt":"2023-11-02T10:00:00Z"}
		]`)
	}))
	defer srv.Close()

	invs, err := NewInvitationRepository(NewClient(srv.URL, time.Second, "")).ListByCompany(sessionCtx(), "company-1")
	require.NoError(t, err)
	require.Len(t, invs, 2)
	assert.Equal(t, "i2", invs[0].ID)
	assert.Equal(t, domainInvitation.StatusPending, invs[0].Status)
	assert.Equal(t, int64(1700000000), invs[0].CreatedAt.Unix())
	assert.Nil(t, invs[0].AcceptedAt)
	require.NotNil(t, invs[1].AcceptedAt)
	assert.Equal(t, 2, invs[1].AcceptedAt.Day())
}

func TestInvitationRepository_ListNotFoundIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":"Invitation not found"}`)
	}))
	defer srv.Close()

	_, err := NewInvitationRepository(NewClient(srv.URL, time.Second, "")).ListByCompany(sessionCtx(), "company-1")
	assert.ErrorIs(t, err, domainInvitation.ErrInvitationsNotFound)
}

func TestInvitationRepository_CreatePostsPendingRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/invitations/", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "company-1", body["company_id"])
		assert.Equal(t, "ZX81AB", body["invitation_code"])
		assert.Equal(t, "B", body["recipient_name"])
		assert.Equal(t, "b@x.com", body["recipient_email"])
		assert.Equal(t, "pending", body["status"])
		assert.NotEmpty(t, body["createdAt"])
		assert.NotContains(t, body, "id")

		writeJSON(w, http.StatusCreated, `{"id":"new-id","status":"pending"}`)
	}))
	defer srv.Close()

	inv := &domainInvitation.Invitation{CompanyID: "company-1", RecipientName: "B", RecipientEmail: "b@x.com", Code: "ZX81AB"}
	require.NoError(t, NewInvitationRepository(NewClient(srv.URL, time.Second, "")).Create(sessionCtx(), inv))
	assert.Equal(t, "new-id", inv.ID)
	assert.False(t, inv.CreatedAt.IsZero())
}

func TestInvitationRepository_GetByIDScansCompany(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":"i1","status":"pending"},{"id":"i2","status":"accepted"}]`)
	}))
	defer srv.Close()

	repo := NewInvitationRepository(NewClient(srv.URL, time.Second, ""))
	inv, err := repo.GetByID(sessionCtx(), "company-1", "i2")
	require.NoError(t, err)
	assert.Equal(t, domainInvitation.StatusAccepted, inv.Status)

	_, err = repo.GetByID(sessionCtx(), "company-1", "i9")
	assert.ErrorIs(t, err, domainInvitation.ErrInvitationNotFound)
}

func TestInvitationRepository_DeleteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/invitations/i1", r.URL.Path)
		writeJSON(w, http.StatusNotFound, `{}`)
	}))
	defer srv.Close()

	err := NewInvitationRepository(NewClient(srv.URL, time.Second, "")).Delete(sessionCtx(), "i1")
	assert.ErrorIs(t, err, domainInvitation.ErrInvitationNotFound)
}

func TestClient_UpstreamErrorSurfacesBodyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error":"recipient_email is required"}`)
	}))
	defer srv.Close()

	err := NewInvitationRepository(NewClient(srv.URL, time.Second, "")).Create(sessionCtx(), &domainInvitation.Invitation{})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.CodeUpstream))

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "recipient_email is required", appErr.Message)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
}

func TestClient_UpstreamErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "<html>oops</html>")
	}))
	defer srv.Close()

	_, err := NewDriverRepository(NewClient(srv.URL, time.Second, "")).GetByID(sessionCtx(), "d1")
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.CodeUpstream, appErr.Code)
	assert.Equal(t, "Backend request failed with status 500", appErr.Message)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewDriverRepository(NewClient(url, time.Second, "")).ListByCompany(sessionCtx(), "company-1")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.CodeNetwork))
}

func TestClient_FallsBackToServiceToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer service-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"id":"i1","invitation_code":"AB12CD","status":"pending"}`)
	}))
	defer srv.Close()

	inv, err := NewInvitationRepository(NewClient(srv.URL, time.Second, "service-token")).GetByCode(context.Background(), "", "AB12CD")
	require.NoError(t, err)
	assert.Equal(t, "i1", inv.ID)
}

func TestInvitationRepository_GetByCodeScopedToCompany(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invitations/AB12CD", r.URL.Path)
		assert.Equal(t, "company-1", r.URL.Query().Get("company_id"))
		writeJSON(w, http.StatusOK, `{"id":"i1","company_id":"company-2","invitation_code":"AB12CD","status":"pending"}`)
	}))
	defer srv.Close()

	_, err := NewInvitationRepository(NewClient(srv.URL, time.Second, "")).GetByCode(sessionCtx(), "company-1", "AB12CD")
	assert.ErrorIs(t, err, domainInvitation.ErrInvitationNotFound)
}

func TestInvitationRepository_UnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/invitations/":
			writeJSON(w, http.StatusOK, `[{"id":"i1","status":"revoked"},{"id":"i2","status":"pending"}]`)
		default:
			writeJSON(w, http.StatusOK, `{"id":"i1","invitation_code":"AB12CD","status":"revoked"}`)
		}
	}))
	defer srv.Close()

	repo := NewInvitationRepository(NewClient(srv.URL, time.Second, ""))

	invs, err := repo.ListByCompany(sessionCtx(), "company-1")
	require.NoError(t, err)
	require.Len(t, invs, 1)
	assert.Equal(t, "i2", invs[0].ID)

	_, err = repo.GetByCode(sessionCtx(), "", "AB12CD")
	assert.ErrorIs(t, err, domainInvitation.ErrUnknownStatus)

	err = repo.Update(sessionCtx(), &domainInvitation.Invitation{ID: "i1", Status: "revoked"})
	assert.ErrorIs(t, err, domainInvitation.ErrUnknownStatus)
}

func TestTelemetrySource_SummaryAndAverage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "company-1", r.URL.Query().Get("companyID"))
		assert.Equal(t, "2024-02-11", r.URL.Query().Get("date"))
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/face-detection-session/week-summary/":
			writeJSON(w, http.StatusOK, `{"data":[{"userId":"d1","alertPerHour":3.9,"totalSessionHours":"12"}],"alertPerHour":3.9,"totalSessionHours":12,"maxAlertsPerUser":7}`)
		case "/face-detection-session/week-average/":
			writeJSON(w, http.StatusOK, `{"data":[{"date":"2024-02-12","alertPerHour":2}],"alertPerHour":"NaN"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	src := NewTelemetrySource(NewClient(srv.URL, time.Second, ""))
	sess := session.Session{AdminID: "admin-1", CompanyID: "company-1", Token: "admin-token"}
	date := time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC)

	summary, err := src.Summary(context.Background(), sess, telemetry.PeriodWeek, date)
	require.NoError(t, err)
	require.Len(t, summary.Data, 1)
	assert.Equal(t, 12, summary.Data[0].TotalSessionHours.Int())
	assert.Equal(t, 7, summary.MaxAlertsPerUser.Int())

	avg, err := src.Average(context.Background(), sess, telemetry.PeriodWeek, date)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-12", avg.Data[0].Date)
	assert.Equal(t, 0, avg.AlertPerHour.Int())
	assert.False(t, avg.AlertPerHour.Valid())
}
