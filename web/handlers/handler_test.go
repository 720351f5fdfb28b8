package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jayelcee/internhq/core"
	"github.com/jayelcee/internhq/infrastructure/devops"
	"github.com/jayelcee/internhq/model"
	"github.com/jayelcee/internhq/security"
	"github.com/jayelcee/internhq/store"
	"github.com/jayelcee/internhq/utils"
	"github.com/jayelcee/internhq/web/middlewares"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type testEnv struct {
	router      *gin.Engine
	store       *store.Store
	intern      *model.User
	admin       *model.User
	internToken string
	adminToken  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.TimeLog{}, &model.EditRequest{},
		&model.Certificate{}, &model.ImportBatch{}, &model.Holiday{},
	))

	dm, err := core.NewFromGorm(db)
	require.NoError(t, err)

	cfg := &devops.Config{
		JWTSecret:     base64.StdEncoding.EncodeToString(testSecret),
		TokenTTLHours: 1,
	}
	base := Handler{Dm: dm, Cfg: cfg}

	router := gin.New()
	public := router.Group("/api/v1")
	protected := router.Group("/api/v1", middlewares.Authentication(testSecret))
	admin := router.Group("/api/v1", middlewares.Authentication(testSecret), middlewares.RequireAdmin())

	RegisterAuth(public, base)
	RegisterTimeLogs(protected, admin, base)
	RegisterDTR(protected, base)
	RegisterOvertime(admin, base)
	RegisterEditRequests(protected, admin, base)
	RegisterInterns(protected, admin, base)

	st := store.New(db)
	hash, err := bcrypt.GenerateFromPassword([]byte("intern1234"), bcrypt.DefaultCost)
	require.NoError(t, err)

	intern := &model.User{
		Email: "intern@test.local", PasswordHash: string(hash),
		FirstName: "Test", LastName: "Intern",
		Role: model.RoleIntern, RequiredHours: 500, Status: model.UserActive,
	}
	require.NoError(t, st.CreateUser(intern))

	adminUser := &model.User{
		Email: "admin@test.local", PasswordHash: string(hash),
		FirstName: "Test", LastName: "Admin",
		Role: model.RoleAdmin, Status: model.UserActive,
	}
	require.NoError(t, st.CreateUser(adminUser))

	return &testEnv{
		router:      router,
		store:       st,
		intern:      intern,
		admin:       adminUser,
		internToken: mintToken(t, cfg, intern),
		adminToken:  mintToken(t, cfg, adminUser),
	}
}

func mintToken(t *testing.T, cfg *devops.Config, user *model.User) string {
	t.Helper()
	token, err := security.CreateIdentityToken(&security.Identity{
		UserID: user.ID, Name: user.FullName(), Email: user.Email, Role: user.Role,
	}, cfg.JWTSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Valid credentials", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email": "intern@test.local", "password": "intern1234",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var result LoginResponseDTO
		decodeData(t, w, &result)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, env.intern.ID, result.User.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email": "intern@test.local", "password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unknown email", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email": "ghost@test.local", "password": "intern1234",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthGates(t *testing.T) {
	env := newTestEnv(t)

	t.Run("No token", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/dtr/today", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Intern on an admin route", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/overtime", env.internToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Intern reading another record", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/interns/999/timelogs", env.internToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestClockInOutFlow(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Clock out before clock in conflicts", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/timelogs/clock-out", env.internToken, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Clock in opens a regular log", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/timelogs/clock-in", env.internToken, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		var log model.TimeLog
		decodeData(t, w, &log)
		assert.Equal(t, model.LogTypeRegular, log.LogType)
		assert.Equal(t, model.StatusNone, log.OvertimeStatus)
	})

	t.Run("Double clock in conflicts", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/timelogs/clock-in", env.internToken, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Clock out closes it", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/timelogs/clock-out", env.internToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var log model.TimeLog
		decodeData(t, w, &log)
		assert.NotNil(t, log.TimeOut)
	})

	t.Run("Today shows the closed day", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/dtr/today", env.internToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var today TodayDTO
		decodeData(t, w, &today)
		assert.False(t, today.ClockedIn)
		assert.True(t, today.HasTimedOutToday)
	})
}

func TestClockInEscalatesToOvertime(t *testing.T) {
	env := newTestEnv(t)

	// The daily requirement is already met, so the next clock-in lands in
	// the overtime bucket.
	now := utils.ManilaNow()
	in := now.Add(-10 * time.Hour)
	out := now.Add(-30 * time.Minute)
	require.NoError(t, env.store.BulkUpsertTimeLogs([]model.TimeLog{{
		ID:      "seed-regular",
		UserID:  env.intern.ID,
		Date:    utils.DTRDate(now),
		TimeIn:  &in,
		TimeOut: &out,
		LogType: model.LogTypeRegular,
		Source:  model.SourceWeb,
	}}))

	w := env.do(t, http.MethodPost, "/api/v1/timelogs/clock-in", env.internToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var log model.TimeLog
	decodeData(t, w, &log)
	assert.Equal(t, model.LogTypeOvertime, log.LogType)
	assert.Equal(t, model.StatusPending, log.OvertimeStatus)
}

func TestDTRRange(t *testing.T) {
	env := newTestEnv(t)

	day := "2026-03-02"
	in1 := time.Date(2026, 3, 2, 9, 0, 0, 0, utils.ManilaTZ)
	out1 := in1.Add(9 * time.Hour)
	in2 := out1.Add(30 * time.Second)
	out2 := in2.Add(2 * time.Hour)
	require.NoError(t, env.store.BulkUpsertTimeLogs([]model.TimeLog{
		{ID: "r1", UserID: env.intern.ID, Date: day, TimeIn: &in1, TimeOut: &out1,
			LogType: model.LogTypeRegular, Source: model.SourceWeb},
		{ID: "o1", UserID: env.intern.ID, Date: day, TimeIn: &in2, TimeOut: &out2,
			LogType: model.LogTypeOvertime, OvertimeStatus: model.StatusPending, Source: model.SourceWeb},
	}))

	w := env.do(t, http.MethodGet, "/api/v1/interns/"+itoa(env.intern.ID)+"/dtr?from=2026-03-01&to=2026-03-31", env.internToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result DTRRangeDTO
	decodeData(t, w, &result)
	require.Len(t, result.Days, 1)
	assert.Equal(t, day, result.Days[0].Date)
	// 11 chained hours against the 9/3 policy.
	assert.Equal(t, 9.0, result.TotalRegularHours)
	assert.Equal(t, 2.0, result.TotalOvertimeHours)
	assert.Equal(t, 0.0, result.TotalExtendedOvertimeHours)

	require.Len(t, result.Days[0].Sessions, 1)
	session := result.Days[0].Sessions[0]
	assert.True(t, session.IsContinuous)
	assert.Len(t, session.Logs, 2)
}

func TestOvertimeBatchDecision(t *testing.T) {
	env := newTestEnv(t)

	in1 := time.Date(2026, 3, 2, 18, 0, 0, 0, utils.ManilaTZ)
	out1 := in1.Add(2 * time.Hour)
	in2 := time.Date(2026, 3, 3, 18, 0, 0, 0, utils.ManilaTZ)
	out2 := in2.Add(time.Hour)
	require.NoError(t, env.store.BulkUpsertTimeLogs([]model.TimeLog{
		{ID: "ot-1", UserID: env.intern.ID, Date: "2026-03-02", TimeIn: &in1, TimeOut: &out1,
			LogType: model.LogTypeOvertime, OvertimeStatus: model.StatusPending, Source: model.SourceWeb},
		{ID: "ot-2", UserID: env.intern.ID, Date: "2026-03-03", TimeIn: &in2, TimeOut: &out2,
			LogType: model.LogTypeOvertime, OvertimeStatus: model.StatusPending, Source: model.SourceWeb},
	}))

	w := env.do(t, http.MethodPost, "/api/v1/overtime/decisions", env.adminToken, gin.H{
		"ids": []string{"ot-1", "ot-2", "missing"}, "action": "approve",
	})
	require.Equal(t, http.StatusMultiStatus, w.Code)

	var result store.BatchResult
	decodeData(t, w, &result)
	assert.Equal(t, []string{"ot-1", "ot-2"}, result.Succeeded)
	assert.Equal(t, []string{"missing"}, result.Failed)

	got, err := env.store.FindTimeLog("ot-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.OvertimeStatus)
}

func TestEditRequestFlow(t *testing.T) {
	env := newTestEnv(t)

	in := time.Date(2026, 3, 2, 9, 0, 0, 0, utils.ManilaTZ)
	out := in.Add(8 * time.Hour)
	require.NoError(t, env.store.BulkUpsertTimeLogs([]model.TimeLog{
		{ID: "log-1", UserID: env.intern.ID, Date: "2026-03-02", TimeIn: &in, TimeOut: &out,
			LogType: model.LogTypeRegular, Source: model.SourceWeb},
	}))

	var requestID string

	t.Run("Intern files a request", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/edit-requests", env.internToken, gin.H{
			"changes": []gin.H{{"logId": "log-1", "requestedTimeIn": "2026-03-02T08:00:00"}},
			"reason":  "forgot to clock in",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created []model.EditRequest
		decodeData(t, w, &created)
		require.Len(t, created, 1)
		assert.Equal(t, model.RequestPending, created[0].Status)
		requestID = created[0].ID
	})

	t.Run("Second pending request conflicts", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/edit-requests", env.internToken, gin.H{
			"changes": []gin.H{{"logId": "log-1", "requestedTimeOut": "2026-03-02T18:00:00"}},
			"reason":  "also left late",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Change without a time is rejected", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/edit-requests", env.internToken, gin.H{
			"changes": []gin.H{{"logId": "log-1"}},
			"reason":  "nothing to change",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Approval writes the requested time", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/edit-requests/"+requestID+"/decision", env.adminToken, gin.H{
			"action": "approve",
		})
		require.Equal(t, http.StatusOK, w.Code)

		got, err := env.store.FindTimeLog("log-1")
		require.NoError(t, err)
		require.NotNil(t, got.TimeIn)
		assert.Equal(t, 8, got.TimeIn.Hour())
	})
}

func TestEditRequestQueueSeparatesUsers(t *testing.T) {
	env := newTestEnv(t)

	other := &model.User{
		Email: "intern2@test.local", PasswordHash: "x",
		FirstName: "Other", LastName: "Intern",
		Role: model.RoleIntern, RequiredHours: 500, Status: model.UserActive,
	}
	require.NoError(t, env.store.CreateUser(other))

	in1 := time.Date(2026, 3, 2, 9, 0, 0, 0, utils.ManilaTZ)
	out1 := in1.Add(8 * time.Hour)
	in2 := time.Date(2026, 3, 3, 9, 0, 0, 0, utils.ManilaTZ)
	out2 := in2.Add(8 * time.Hour)
	require.NoError(t, env.store.BulkUpsertTimeLogs([]model.TimeLog{
		{ID: "log-a", UserID: env.intern.ID, Date: "2026-03-02", TimeIn: &in1, TimeOut: &out1,
			LogType: model.LogTypeRegular, Source: model.SourceWeb},
		{ID: "log-b", UserID: other.ID, Date: "2026-03-03", TimeIn: &in2, TimeOut: &out2,
			LogType: model.LogTypeRegular, Source: model.SourceWeb},
	}))

	reqIn1 := in1.Add(-time.Hour)
	reqIn2 := in2.Add(-time.Hour)
	_, err := env.store.CreateEditRequests([]model.EditRequest{
		{LogID: "log-a", RequestedTimeIn: &reqIn1, Reason: "forgot"},
		{LogID: "log-b", RequestedTimeIn: &reqIn2, Reason: "forgot"},
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/v1/edit-requests", env.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []RequestGroupDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	// One group per intern; a decision on one never touches the other.
	require.Len(t, envelope.Data, 2)
	for _, group := range envelope.Data {
		assert.Len(t, group.RequestIDs, 1)
		assert.False(t, group.Orphaned)
	}
	assert.NotEqual(t, envelope.Data[0].Requests[0].UserID, envelope.Data[1].Requests[0].UserID)
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
