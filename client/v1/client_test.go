package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDTRRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/interns/7/dtr", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.Equal(t, "2026-03-01", r.URL.Query().Get("from"))

		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"days": []map[string]any{
					{"date": "2026-03-02", "regularHours": 9.0, "overtimeHours": 3.0, "extendedOvertimeHours": 1.0},
				},
				"totalRegularHours":  9.0,
				"totalOvertimeHours": 3.0,
			},
		})
	}))
	defer srv.Close()

	client := NewInternHQClient(srv.URL, "test-token")

	dtr, err := client.DTR.Range(7, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	require.Len(t, dtr.Days, 1)
	assert.Equal(t, 9.0, dtr.Days[0].RegularHours)
	assert.Equal(t, 3.0, dtr.TotalOvertimeHours)
}

func TestClockInAndErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/timelogs/clock-in":
			require.Equal(t, http.MethodPost, r.Method)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"id": "log-1", "logType": "regular", "date": "2026-03-02"},
			})
		case "/api/v1/timelogs/clock-out":
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]any{"message": "no open time log to close"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewInternHQClient(srv.URL, "test-token")

	log, err := client.TimeLogs.ClockIn("web")
	require.NoError(t, err)
	assert.Equal(t, "log-1", log.ID)

	_, err = client.TimeLogs.ClockOut()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
}

func TestCertificateList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/certificates", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "cert-1", "serialNo": "IHQ-2026-0007", "totalHours": 500.0},
			},
			"pagination": map[string]any{"total": 1},
		})
	}))
	defer srv.Close()

	client := NewInternHQClient(srv.URL, "test-token")

	certs, err := client.Certificates.List()
	require.NoError(t, err)
	require.Len(t, certs, 1)
	assert.Equal(t, "IHQ-2026-0007", certs[0].SerialNo)
}
