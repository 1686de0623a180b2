package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skill-match/internal/config"
	"skill-match/internal/delivery/http/operations"
	"skill-match/internal/domain/ledger"
	"skill-match/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		App: config.AppConfig{AppName: "skill-match-test", Environment: "test", HTTPPort: "0"},
		JWT: config.JWTConfig{
			AccessSecret:  "access-secret-0123456789",
			RefreshSecret: "refresh-secret-0123456789",
			AccessTTL:     time.Minute,
			RefreshTTL:    time.Hour,
			Issuer:        "skill-match",
		},
		Engine: config.EngineConfig{
			Storage:        config.StorageMemory,
			RecommendLimit: 2,
			LifeBoost:      15,
			BadgeTable:     "Beginner:0,Contributor:100,ChampionCandidate:300,ClimateChampion:600",
			DedupeDaily:    true,
			ScoringWorkers: 2,
		},
	}
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t   *testing.T
	app *App
	ops *operations.Registry
}

func newTestServer(t *testing.T, mutate func(c *Container)) *testServer {
	t.Helper()
	c, err := NewContainer(testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	if mutate != nil {
		mutate(c)
	}

	a, err := New(c)
	require.NoError(t, err)
	ops, err := operations.Load()
	require.NoError(t, err)
	return &testServer{t: t, app: a, ops: ops}
}

func (s *testServer) do(method, path, token string, body any) envelope {
	s.t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Fiber.Test(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(s.t, json.NewDecoder(resp.Body).Decode(&env))
	require.Equal(s.t, resp.StatusCode, env.Status)
	return env
}

// expect asserts the status and validates data against the operation's
// output schema on success.
func (s *testServer) expect(env envelope, status int, op string) map[string]any {
	s.t.Helper()
	require.Equal(s.t, status, env.Status, "message=%s data=%s", env.Message, env.Data)

	var data any
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	if op != "" {
		require.NoError(s.t, s.ops.MustGet(op).ValidateOutput(data), "%s", env.Data)
	}
	m, _ := data.(map[string]any)
	return m
}

type session struct {
	userID  string
	access  string
	refresh string
}

func (s *testServer) login(email string) session {
	s.t.Helper()
	data := s.expect(s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"name": "Test User", "email": email}), http.StatusCreated, operations.Login)
	u := data["user"].(map[string]any)
	return session{
		userID:  u["id"].(string),
		access:  data["access_token"].(string),
		refresh: data["refresh_token"].(string),
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	data := s.expect(s.do(http.MethodGet, "/health", "", nil), http.StatusOK, operations.Health)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "memory", data["storage"])
	assert.Equal(t, "disabled", data["database"])
	assert.Equal(t, "disabled", data["redis"])
}

func TestLogin_CreatedThenOK(t *testing.T) {
	s := newTestServer(t, nil)
	sess := s.login("ada@example.com")

	data := s.expect(s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"name": "Ada", "email": "ADA@example.com"}), http.StatusOK, operations.Login)
	assert.Equal(t, false, data["created"])
	assert.Equal(t, sess.userID, data["user"].(map[string]any)["id"])

	env := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "ada@example.com"})
	s.expect(env, http.StatusBadRequest, "")
	assert.Contains(t, string(env.Data), "errors")

	env = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"name": "Ada", "email": "not-an-email"})
	s.expect(env, http.StatusBadRequest, "")
}

func TestRefresh(t *testing.T) {
	s := newTestServer(t, nil)
	sess := s.login("refresh@example.com")

	data := s.expect(s.do(http.MethodPost, "/api/v1/auth/refresh", sess.refresh, nil), http.StatusOK, operations.Refresh)
	assert.NotEmpty(t, data["access_token"])

	s.expect(s.do(http.MethodPost, "/api/v1/auth/refresh", sess.access, nil), http.StatusUnauthorized, "")
	s.expect(s.do(http.MethodPost, "/api/v1/auth/refresh", "", nil), http.StatusUnauthorized, "")
}

func TestUserRoutes_RequireOwnToken(t *testing.T) {
	s := newTestServer(t, nil)
	alice := s.login("alice@example.com")
	bob := s.login("bob@example.com")

	s.expect(s.do(http.MethodGet, "/api/v1/users/"+alice.userID, "", nil), http.StatusUnauthorized, "")
	s.expect(s.do(http.MethodGet, "/api/v1/users/"+alice.userID, "garbage", nil), http.StatusUnauthorized, "")
	s.expect(s.do(http.MethodGet, "/api/v1/users/"+alice.userID, bob.access, nil), http.StatusForbidden, "")
	s.expect(s.do(http.MethodGet, "/api/v1/users/not-a-uuid", alice.access, nil), http.StatusBadRequest, "")

	data := s.expect(s.do(http.MethodGet, "/api/v1/users/"+alice.userID+"?access_token="+alice.access, "", nil), http.StatusOK, operations.GetProfile)
	assert.Equal(t, "alice@example.com", data["email"])
	assert.Equal(t, "Beginner", data["badge_level"])
}

func TestProfileAndSkills(t *testing.T) {
	s := newTestServer(t, nil)
	sess := s.login("skills@example.com")
	base := "/api/v1/users/" + sess.userID

	data := s.expect(s.do(http.MethodPatch, base, sess.access, map[string]any{"career_goal": "Climate data"}), http.StatusOK, operations.UpdateProfile)
	assert.Equal(t, "Climate data", data["career_goal"])

	s.expect(s.do(http.MethodPut, base+"/skills", sess.access, map[string]any{"replace": true}), http.StatusBadRequest, "")

	env := s.do(http.MethodPut, base+"/skills", sess.access, map[string]any{"skills": []string{"python", "basket-weaving"}})
	s.expect(env, http.StatusNotFound, "")
	assert.Contains(t, string(env.Data), "basket-weaving")

	data = s.expect(s.do(http.MethodPut, base+"/skills", sess.access, map[string]any{"skills": []string{"python", "statistics", "data-analysis"}}), http.StatusOK, operations.UpdateSkills)
	assert.ElementsMatch(t, []any{"python", "statistics", "data-analysis"}, data["skills"])
}

func TestJobsAndActions(t *testing.T) {
	s := newTestServer(t, nil)
	sess := s.login("jobs@example.com")
	base := "/api/v1/users/" + sess.userID

	s.expect(s.do(http.MethodPut, base+"/skills", sess.access, map[string]any{"skills": []string{"python", "statistics", "data-analysis"}}), http.StatusOK, operations.UpdateSkills)

	env := s.do(http.MethodGet, base+"/jobs", sess.access, nil)
	s.expect(env, http.StatusOK, operations.ListJobs)
	var jobs []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &jobs))
	require.NotEmpty(t, jobs)
	assert.Equal(t, "j3", jobs[0]["id"])
	assert.Equal(t, false, jobs[0]["meets_eligibility"])

	job := s.expect(s.do(http.MethodGet, base+"/jobs/j3", sess.access, nil), http.StatusOK, operations.GetJob)
	assert.EqualValues(t, 75, job["match_percent"])
	assert.Equal(t, []any{"climate-modeling"}, job["missing_skills"])
	s.expect(s.do(http.MethodGet, base+"/jobs/j999", sess.access, nil), http.StatusNotFound, "")

	res := s.expect(s.do(http.MethodPost, base+"/actions", sess.access, map[string]any{"id": "e2"}), http.StatusCreated, operations.LogAction)
	assert.EqualValues(t, 50, res["life_points"])
	s.expect(s.do(http.MethodPost, base+"/actions", sess.access, map[string]any{"id": "e2"}), http.StatusConflict, "")
	s.expect(s.do(http.MethodPost, base+"/actions", sess.access, map[string]any{"id": "zz"}), http.StatusNotFound, "")
	s.expect(s.do(http.MethodPost, base+"/actions", sess.access, map[string]any{}), http.StatusBadRequest, "")

	job = s.expect(s.do(http.MethodGet, base+"/jobs/j3", sess.access, nil), http.StatusOK, operations.GetJob)
	assert.Equal(t, true, job["meets_eligibility"])
	assert.EqualValues(t, 90, job["rank_score"])

	done := s.expect(s.do(http.MethodPost, base+"/courses/c1/complete", sess.access, nil), http.StatusCreated, operations.CompleteCourse)
	assert.Greater(t, done["life_points"].(float64), float64(50))
	s.expect(s.do(http.MethodPost, base+"/courses/nope/complete", sess.access, nil), http.StatusNotFound, "")

	profile := s.expect(s.do(http.MethodGet, base, sess.access, nil), http.StatusOK, operations.GetProfile)
	assert.Len(t, profile["life_actions"], 2)
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	for path, op := range map[string]string{
		"/api/v1/skills":       operations.ListSkills,
		"/api/v1/courses":      operations.ListCourses,
		"/api/v1/life-actions": operations.ListLifeActions,
	} {
		s.expect(s.do(http.MethodGet, path, "", nil), http.StatusOK, op)
	}

	data := s.expect(s.do(http.MethodPost, "/api/v1/resume/parse", "", map[string]any{"text": "Python developer, solar energy installs"}), http.StatusOK, operations.ParseResume)
	assert.Equal(t, []any{"python", "solar-pv"}, data["skills"])

	s.expect(s.do(http.MethodPost, "/api/v1/resume/parse", "", map[string]any{"body": "x"}), http.StatusBadRequest, "")
}

type downLedger struct{}

var errDown = errors.New("connection refused")

func (downLedger) Append(context.Context, uuid.UUID, ledger.Action) (ledger.Entry, error) {
	return ledger.Entry{}, errDown
}

func (downLedger) Total(context.Context, uuid.UUID) (int, error) { return 0, errDown }

func (downLedger) Entries(context.Context, uuid.UUID) ([]ledger.Entry, error) { return nil, errDown }

func TestLogAction_LedgerDownIsRetryable(t *testing.T) {
	s := newTestServer(t, func(c *Container) {
		c.Actions = usecase.NewActionUsecase(
			c.Users, downLedger{}, c.Catalog, c.Badges,
			usecase.NewDailyGuard(c.Redis, nil), c.Redis, c.Events, nil,
			usecase.ActionOptions{DedupeDaily: true},
		)
		c.Courses = usecase.NewCourseUsecase(c.Actions)
	})
	sess := s.login("down@example.com")

	env := s.do(http.MethodPost, "/api/v1/users/"+sess.userID+"/actions", sess.access, map[string]any{"id": "e1"})
	data := s.expect(env, http.StatusServiceUnavailable, "")
	assert.Equal(t, true, data["retryable"])
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(":9000")
	require.NoError(t, err)
	assert.Equal(t, ":9000", addr)

	_, err = ListenAddr(" ")
	assert.Error(t, err)
}
