package api

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntbapp/ntb-server/internal/career"
	"github.com/ntbapp/ntb-server/internal/domain"
	"github.com/ntbapp/ntb-server/internal/errors"
	"github.com/ntbapp/ntb-server/internal/game"
	"github.com/ntbapp/ntb-server/internal/pool"
	"github.com/ntbapp/ntb-server/internal/ratelimit"
	"github.com/ntbapp/ntb-server/internal/render"
)

// fakeSource serves a single known batter so tests can guess the answer.
type fakeSource struct {
	players       map[string]domain.PlayerRecord
	batting       map[string][]domain.BattingSeason
	missingTables []string
}

func (f *fakeSource) Player(id string) (domain.PlayerRecord, error) {
	p, ok := f.players[id]
	if !ok {
		return domain.PlayerRecord{}, errors.NotFoundf("player %q not found", id)
	}
	return p, nil
}
func (f *fakeSource) BattingSeasons(id string) []domain.BattingSeason  { return f.batting[id] }
func (f *fakeSource) PitchingSeasons(_ string) []domain.PitchingSeason { return nil }
func (f *fakeSource) Awards(_ string) []domain.AwardRecord             { return nil }
func (f *fakeSource) IsAllStar(_ string, _ int) bool                   { return false }
func (f *fakeSource) PositionLine(_ string, _ int, _ string) string    { return "" }
func (f *fakeSource) PitcherIDs() []string                             { return nil }
func (f *fakeSource) MissingAnnotationTables() []string                { return f.missingTables }
func (f *fakeSource) BatterIDs() []string {
	out := make([]string, 0, len(f.batting))
	for k := range f.batting {
		out = append(out, k)
	}
	return out
}

func singlePlayerSource() *fakeSource {
	return &fakeSource{
		players: map[string]domain.PlayerRecord{
			"star01": {ID: "star01", FirstName: "Sam", LastName: "Slugger", BirthYear: 1980},
		},
		batting: map[string][]domain.BattingSeason{
			"star01": {{Year: 2005, Stint: 1, Team: "NYA", League: "AL", AB: 500, H: 150}},
		},
	}
}

// stateEnvelope mirrors the wire shape of enveloped state responses.
type stateEnvelope struct {
	V       int        `json:"v"`
	Success bool       `json:"success"`
	Data    game.State `json:"data"`
	Error   string     `json:"error"`
	Code    string     `json:"code"`
}

func setupTestServer(t *testing.T, guessRPS float64, guessBurst int) (*Server, humatest.TestAPI) {
	t.Helper()

	log := slog.New(slog.DiscardHandler)
	manager, err := game.NewManager(singlePlayerSource(),
		pool.Filter{Mode: domain.ModeBatting, MinYears: 1},
		career.PreferStronger, log)
	require.NoError(t, err)

	limiter := ratelimit.New(guessRPS, guessBurst)
	t.Cleanup(limiter.Stop)

	s := NewServer(manager, limiter, log)
	return s, humatest.Wrap(t, s.api)
}

func decodeState(t *testing.T, body []byte) stateEnvelope {
	t.Helper()
	var env stateEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func sessionToken(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range resp.Result().Cookies() {
		if c.Name == sessionCookie {
			return c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

func TestGetState_StartsSession(t *testing.T) {
	_, api := setupTestServer(t, 100, 100)

	resp := api.Get("/api/v1/state")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decodeState(t, resp.Body.Bytes())
	assert.Equal(t, 1, env.V)
	assert.True(t, env.Success)
	assert.Equal(t, 1, env.Data.Round)
	assert.False(t, env.Data.Revealed)
	assert.Equal(t, render.HiddenName, env.Data.PlayerName)

	assert.NotEmpty(t, sessionToken(t, resp))
}

func TestGetState_ReusesSessionFromCookie(t *testing.T) {
	s, api := setupTestServer(t, 100, 100)

	first := api.Get("/api/v1/state")
	token := sessionToken(t, first)

	again := api.Get("/api/v1/state", "Cookie: "+sessionCookie+"="+token)
	require.Equal(t, http.StatusOK, again.Code)
	// No new cookie when the token resolved.
	assert.Empty(t, again.Result().Cookies())
	assert.Equal(t, 1, s.manager.Count())
}

func TestGuessFlow(t *testing.T) {
	_, api := setupTestServer(t, 100, 100)

	resp := api.Get("/api/v1/state")
	cookie := "Cookie: " + sessionCookie + "=" + sessionToken(t, resp)

	wrong := api.Post("/api/v1/guess", cookie, map[string]any{"guess": "Nobody Special"})
	require.Equal(t, http.StatusOK, wrong.Code)
	env := decodeState(t, wrong.Body.Bytes())
	assert.False(t, env.Data.Revealed)
	require.Len(t, env.Data.Guesses, 1)
	assert.False(t, env.Data.Guesses[0].Correct)

	right := api.Post("/api/v1/guess", cookie, map[string]any{"guess": "sam slugger"})
	require.Equal(t, http.StatusOK, right.Code)
	env = decodeState(t, right.Body.Bytes())
	assert.True(t, env.Data.Revealed)
	assert.Equal(t, "Sam Slugger", env.Data.PlayerName)
	assert.Equal(t, 1, env.Data.ScoreCorrect)
	assert.Equal(t, 1, env.Data.Streak)
}

func TestHintGiveUpNext(t *testing.T) {
	_, api := setupTestServer(t, 100, 100)

	resp := api.Get("/api/v1/state")
	cookie := "Cookie: " + sessionCookie + "=" + sessionToken(t, resp)

	hint := decodeState(t, api.Post("/api/v1/hint", cookie).Body.Bytes())
	assert.Equal(t, "S. S.", hint.Data.HintText)

	gave := decodeState(t, api.Post("/api/v1/giveup", cookie).Body.Bytes())
	assert.True(t, gave.Data.Revealed)
	assert.Equal(t, 1, gave.Data.ScoreTotal)
	assert.Zero(t, gave.Data.Streak)

	next := decodeState(t, api.Post("/api/v1/next", cookie).Body.Bytes())
	assert.Equal(t, 2, next.Data.Round)
	assert.False(t, next.Data.Revealed)
	assert.Empty(t, next.Data.HintText)
}

func TestGuess_RateLimited(t *testing.T) {
	_, api := setupTestServer(t, 0.001, 1)

	resp := api.Get("/api/v1/state")
	cookie := "Cookie: " + sessionCookie + "=" + sessionToken(t, resp)

	first := api.Post("/api/v1/guess", cookie, map[string]any{"guess": "a b"})
	require.Equal(t, http.StatusOK, first.Code)

	second := api.Post("/api/v1/guess", cookie, map[string]any{"guess": "c d"})
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	env := decodeState(t, second.Body.Bytes())
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestHealthCheck(t *testing.T) {
	_, api := setupTestServer(t, 100, 100)

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var env struct {
		Success bool           `json:"success"`
		Data    HealthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "healthy", env.Data.Status)
	assert.Contains(t, env.Data.Components, "pool")
	assert.Contains(t, env.Data.Components, "sessions")
	assert.Equal(t, "1 eligible players", env.Data.Components["pool"].Message)
	assert.Equal(t, "healthy", env.Data.Components["annotations"].Status)
}

func TestHealthCheck_DegradedAnnotations(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	src := singlePlayerSource()
	src.missingTables = []string{"AwardsPlayers.csv", "AllstarFull.csv"}

	manager, err := game.NewManager(src,
		pool.Filter{Mode: domain.ModeBatting, MinYears: 1},
		career.PreferStronger, log)
	require.NoError(t, err)
	limiter := ratelimit.New(100, 100)
	t.Cleanup(limiter.Stop)
	api := humatest.Wrap(t, NewServer(manager, limiter, log).api)

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var env struct {
		Success bool           `json:"success"`
		Data    HealthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Equal(t, "degraded", env.Data.Status)
	ann := env.Data.Components["annotations"]
	assert.Equal(t, "degraded", ann.Status)
	assert.Contains(t, ann.Message, "AwardsPlayers.csv")
}

func TestIndexPage(t *testing.T) {
	s, _ := setupTestServer(t, 100, 100)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Name That Ballplayer")
	assert.Contains(t, rec.Body.String(), "/api/v1/guess")
}

func TestStatsImage(t *testing.T) {
	s, _ := setupTestServer(t, 100, 100)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats_image", nil)
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, CacheNoStore, rec.Header().Get("Cache-Control"))

	body := rec.Body.Bytes()
	require.Greater(t, len(body), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), body[:8])

	// A fresh request hands out a session cookie.
	token := sessionToken(t, rec)
	assert.NotEmpty(t, token)

	// Same session, same round: the cached image comes back.
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/stats_image", nil)
	req2.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	s.ServeHTTP(rec2, req2)
	require.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, body, rec2.Body.Bytes())
}

func TestEnvelopeTransformer(t *testing.T) {
	t.Run("success wraps data", func(t *testing.T) {
		out, err := EnvelopeTransformer(nil, "200", map[string]string{"id": "x"})
		require.NoError(t, err)
		env, ok := out.(successEnvelope)
		require.True(t, ok)
		assert.Equal(t, envelopeVersion, env.V)
		assert.True(t, env.Success)
		assert.NotNil(t, env.Data)
	})

	t.Run("api error becomes error envelope", func(t *testing.T) {
		out, err := EnvelopeTransformer(nil, "422", &APIError{
			status:  422,
			Code:    string(errors.CodeNoEligiblePlayers),
			Message: "pool is empty",
		})
		require.NoError(t, err)
		env, ok := out.(errorEnvelope)
		require.True(t, ok)
		assert.Equal(t, envelopeVersion, env.V)
		assert.False(t, env.Success)
		assert.Equal(t, "pool is empty", env.Error)
		assert.Equal(t, string(errors.CodeNoEligiblePlayers), env.Code)
	})

	t.Run("version field is v", func(t *testing.T) {
		out, err := EnvelopeTransformer(nil, "200", nil)
		require.NoError(t, err)
		raw, err := json.Marshal(out)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(raw, &fields))
		assert.Contains(t, fields, "v")
		assert.NotContains(t, fields, "version")
	})
}

func TestRegisterErrorHandler_MapsDomainErrors(t *testing.T) {
	RegisterErrorHandler()

	apiErr := huma.NewError(500, "wrapped", errors.NoEligiblePlayers("nobody qualifies"))
	require.IsType(t, &APIError{}, apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.GetStatus())

	plain := huma.NewError(http.StatusNotFound, "missing")
	assert.Equal(t, http.StatusNotFound, plain.GetStatus())
}
