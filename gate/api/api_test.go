package api

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tomo4k1/tamenchan-bootcamp/common/http"
	"github.com/tomo4k1/tamenchan-bootcamp/common/utils"
	"github.com/tomo4k1/tamenchan-bootcamp/core/infrastructure/persistence"
	"github.com/tomo4k1/tamenchan-bootcamp/core/infrastructure/realtime"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/game/engines/chinitsu"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/trainer/application/service"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/trainer/application/service/impl"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fakeHealth struct {
	healthy bool
}

func (f fakeHealth) HealthCheck(context.Context) (map[string]string, bool) {
	if f.healthy {
		return map[string]string{"redis": "ok"}, true
	}
	return map[string]string{"redis": "connection refused"}, false
}

func newTestServer(generator *chinitsu.Generator, limiter *utils.KeyedRateLimiter, health HealthChecker) *http.HttpServer {
	svc := impl.NewTrainerService(
		realtime.NewMemoryProblemRepository(),
		nil,
		persistence.NewMemoryAttemptRepository(10),
		generator,
		nil,
		impl.Options{},
	)
	server := http.NewHttpServer(http.WithMode(gin.TestMode))
	RegisterRoutes(server, NewHandler(svc, health), limiter)
	return server
}

func defaultServer() *http.HttpServer {
	return newTestServer(chinitsu.NewGenerator(&chinitsu.Options{Seed: 3}), nil, nil)
}

func call(t *testing.T, s *http.HttpServer, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s %s: %v (%s)", method, path, err, rec.Body.String())
	}
	return rec.Code, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v (%s)", err, string(env.Data))
	}
}

func TestPing(t *testing.T) {
	status, env := call(t, defaultServer(), nethttp.MethodGet, "/ping", "")
	if status != nethttp.StatusOK || env.Code != http.CodeSuccess {
		t.Fatalf("expected 200/0, got %d/%d", status, env.Code)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(nil, nil, fakeHealth{healthy: true})
	if status, _ := call(t, s, nethttp.MethodGet, "/health", ""); status != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	s = newTestServer(nil, nil, fakeHealth{healthy: false})
	if status, _ := call(t, s, nethttp.MethodGet, "/health", ""); status != nethttp.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", status)
	}
}

func TestProblemLifecycle(t *testing.T) {
	s := defaultServer()

	status, env := call(t, s, nethttp.MethodPost, "/api/v1/problems", `{"length":7,"difficulty":"easy","reveal":true}`)
	if status != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, env.Message)
	}
	var issued service.IssueProblemResp
	decodeData(t, env, &issued)
	if len(issued.Hand) != 7 || issued.Difficulty != 1 {
		t.Fatalf("expected 7 tiles at difficulty 1, got %v/%d", issued.Hand, issued.Difficulty)
	}
	if len(issued.Waits) == 0 {
		t.Fatalf("expected revealed waits")
	}

	body, _ := json.Marshal(map[string]interface{}{"waits": issued.Waits})
	status, env = call(t, s, nethttp.MethodPost, "/api/v1/problems/"+issued.ID+"/answer", string(body))
	if status != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, env.Message)
	}
	var answer service.SubmitAnswerResp
	decodeData(t, env, &answer)
	if !answer.IsCorrect || env.Message != chinitsu.MessageCorrect {
		t.Fatalf("expected correct answer, got %+v / %q", answer.Result, env.Message)
	}

	status, env = call(t, s, nethttp.MethodPost, "/api/v1/problems/"+issued.ID+"/answer", string(body))
	if status != nethttp.StatusConflict || env.Code != http.CodeConflict {
		t.Fatalf("expected 409/%d, got %d/%d", http.CodeConflict, status, env.Code)
	}

	status, env = call(t, s, nethttp.MethodGet, "/api/v1/attempts?limit=5", "")
	if status != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var page struct {
		Total int64 `json:"total"`
	}
	decodeData(t, env, &page)
	if page.Total != 1 {
		t.Fatalf("expected 1 attempt, got %d", page.Total)
	}

	status, env = call(t, s, nethttp.MethodGet, "/api/v1/stats", "")
	if status != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var stats service.StatsResp
	decodeData(t, env, &stats)
	if stats.Difficulties[0].Total != 1 {
		t.Fatalf("expected 1 easy attempt, got %+v", stats.Difficulties[0])
	}
}

func TestIssueProblemDefaultsWithEmptyBody(t *testing.T) {
	status, env := call(t, defaultServer(), nethttp.MethodPost, "/api/v1/problems", "")
	if status != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, env.Message)
	}
	var issued service.IssueProblemResp
	decodeData(t, env, &issued)
	if len(issued.Hand) != 13 || issued.Difficulty != 3 {
		t.Fatalf("expected 13 tiles at difficulty 3, got %d/%d", len(issued.Hand), issued.Difficulty)
	}
	if issued.Waits != nil {
		t.Fatalf("expected hidden waits, got %v", issued.Waits)
	}
}

func TestProblemErrors(t *testing.T) {
	s := defaultServer()
	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   int
	}{
		{"bad length", nethttp.MethodPost, "/api/v1/problems", `{"length":8}`, nethttp.StatusBadRequest, http.CodeInvalidParam},
		{"bad difficulty", nethttp.MethodPost, "/api/v1/problems", `{"difficulty":"expert"}`, nethttp.StatusBadRequest, http.CodeInvalidParam},
		{"unknown problem", nethttp.MethodPost, "/api/v1/problems/nope/answer", `{"waits":[1]}`, nethttp.StatusNotFound, http.CodeNotFound},
		{"bad waits", nethttp.MethodPost, "/api/v1/problems/nope/answer", `{"waits":[0]}`, nethttp.StatusBadRequest, http.CodeInvalidParam},
	}
	for _, tc := range cases {
		status, env := call(t, s, tc.method, tc.path, tc.body)
		if status != tc.status || env.Code != tc.code {
			t.Fatalf("%s: expected %d/%d, got %d/%d (%s)", tc.name, tc.status, tc.code, status, env.Code, env.Message)
		}
	}
}

func TestGenerationFailure(t *testing.T) {
	never := func([]int) []int { return nil }
	s := newTestServer(chinitsu.NewGenerator(&chinitsu.Options{MaxAttempts: 3, Waits: never}), nil, nil)
	status, env := call(t, s, nethttp.MethodPost, "/api/v1/problems", `{"length":13,"difficulty":3}`)
	if status != nethttp.StatusUnprocessableEntity || env.Code != http.CodeGenerationFailed {
		t.Fatalf("expected 422/%d, got %d/%d", http.CodeGenerationFailed, status, env.Code)
	}
}

func TestIssueProblemRateLimit(t *testing.T) {
	s := newTestServer(chinitsu.NewGenerator(&chinitsu.Options{Seed: 9}), utils.NewKeyedRateLimiter(1, 1), nil)
	if status, _ := call(t, s, nethttp.MethodPost, "/api/v1/problems", `{"length":7,"difficulty":1}`); status != nethttp.StatusOK {
		t.Fatalf("expected first request 200, got %d", status)
	}
	status, env := call(t, s, nethttp.MethodPost, "/api/v1/problems", `{"length":7,"difficulty":1}`)
	if status != nethttp.StatusTooManyRequests || env.Code != http.CodeTooManyRequests {
		t.Fatalf("expected 429, got %d/%d", status, env.Code)
	}
}

func TestHandRoutes(t *testing.T) {
	s := defaultServer()

	status, env := call(t, s, nethttp.MethodPost, "/api/v1/hands/waits", `{"hand":"2345688"}`)
	if status != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, env.Message)
	}
	var waits service.AnalyzeHandResp
	decodeData(t, env, &waits)
	if !slices.Equal(waits.Waits, []int{1, 4, 7}) {
		t.Fatalf("expected waits [1 4 7], got %v", waits.Waits)
	}

	status, env = call(t, s, nethttp.MethodPost, "/api/v1/hands/classify", `{"hand":[1,1,1,2,3,4,5,6,7,8,8,8,9,9]}`)
	if status != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, env.Message)
	}
	var classify service.ClassifyHandResp
	decodeData(t, env, &classify)
	if !classify.Winning {
		t.Fatalf("expected winning hand")
	}

	status, env = call(t, s, nethttp.MethodPost, "/api/v1/hands/decompose", `{"hand":"1112345678999","tile":5}`)
	if status != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, env.Message)
	}
	var decomposed service.DecomposeResp
	decodeData(t, env, &decomposed)
	if !decomposed.Winning || len(decomposed.Groups) != 5 {
		t.Fatalf("expected 5 groups, got %v", decomposed.Groups)
	}

	for _, body := range []string{`{"hand":"12a"}`, `{"hand":[1,2]}`, `{"hand":{}}`} {
		status, env = call(t, s, nethttp.MethodPost, "/api/v1/hands/waits", body)
		if status != nethttp.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d (%s)", body, status, env.Message)
		}
	}
}

func TestDifficulties(t *testing.T) {
	status, env := call(t, defaultServer(), nethttp.MethodGet, "/api/v1/difficulties", "")
	if status != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var page struct {
		List  []difficultyView `json:"list"`
		Total int64            `json:"total"`
	}
	decodeData(t, env, &page)
	if page.Total != 3 || page.List[2].Label != "上級" || page.List[2].MinWaits != 3 {
		t.Fatalf("unexpected difficulties: %+v", page.List)
	}
}
