package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kirillkom/realty-assistant/internal/catalog"
	"github.com/kirillkom/realty-assistant/internal/core/domain"
	"github.com/kirillkom/realty-assistant/internal/core/parser"
	"github.com/kirillkom/realty-assistant/internal/core/transform"
	"github.com/kirillkom/realty-assistant/internal/core/usecase"
	"github.com/kirillkom/realty-assistant/internal/infrastructure/normalizer/static"
	"github.com/kirillkom/realty-assistant/internal/render"
)

const routerCatalogYAML = `
rverbs: "(показати|знайти|додати|вийти)"
raction_words: "(нерухомість|рієлтор|запит|вийти)"
rquit_verbs: "(вийти|бувай)"
field_words:
  адреса: address
  опис: description
  ціна: price
  піб: fullname
  рейтинг: level
  дата: timestamp
get_verbs: [показати, знайти]
insert_verbs: [додати]
realty: [нерухомість]
worker: [рієлтор]
request: [запит]
stop_words: [і, в]
lemmas: {}
`

// storeFake answers canned records; Find blocks on gate when it is set,
// which lets the backpressure test hold a request in flight.
type storeFake struct {
	records []domain.Record
	gate    chan struct{}
}

func (s *storeFake) Find(ctx context.Context, _ domain.Collection, _ domain.Filter) ([]domain.Record, error) {
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.records, nil
}

func (s *storeFake) InsertOne(context.Context, domain.Collection, domain.Document) (string, error) {
	return "id-1", nil
}

func newTestHandler(t *testing.T, store *storeFake, cfg Config) http.Handler {
	t.Helper()
	cat, err := catalog.Parse([]byte(routerCatalogYAML), 0)
	if err != nil {
		t.Fatalf("catalog.Parse() error = %v", err)
	}

	normalizer := static.New(cat.StopWords(), cat.Lemmas())
	transformer := transform.NewTransformer(cat, normalizer)
	dispatcher := usecase.NewDispatchUseCase(cat, transformer, store, nil, nil)
	chat := usecase.NewChatUseCase(
		normalizer,
		parser.NewQuitDetector(cat),
		parser.NewLocator(cat),
		parser.NewClassifier(cat),
		dispatcher,
		render.NewRenderer(),
		nil,
	)
	return NewRouter(chat, nil, cfg).Handler()
}

func postQuery(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestHandler(t, &storeFake{}, Config{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("response misses X-Request-Id header")
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("body = %v", body)
	}
}

func TestQueryEndpointServesSelect(t *testing.T) {
	store := &storeFake{records: []domain.Record{{
		"address": "вулиця шевченка 12",
		"price":   "85000",
	}}}
	handler := newTestHandler(t, store, Config{})

	rec := postQuery(t, handler, `{"role":"customer","text":"показати нерухомість адреса вулиця шевченка"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/query = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Reply string `json:"reply"`
		Quit  bool   `json:"quit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Quit {
		t.Fatal("select reply must not carry the quit flag")
	}
	if !strings.Contains(resp.Reply, "Адреса: вулиця шевченка 12") {
		t.Fatalf("reply misses record:\n%s", resp.Reply)
	}
}

func TestQueryEndpointSignalsQuit(t *testing.T) {
	handler := newTestHandler(t, &storeFake{}, Config{})

	rec := postQuery(t, handler, `{"role":"customer","text":"вийти"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/query = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Reply string `json:"reply"`
		Quit  bool   `json:"quit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !resp.Quit || resp.Reply != usecase.MsgFarewell {
		t.Fatalf("quit outcome = %+v", resp)
	}
}

func TestQueryEndpointValidation(t *testing.T) {
	handler := newTestHandler(t, &storeFake{}, Config{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"unknown role", `{"role":"admin","text":"показати нерухомість"}`, http.StatusBadRequest},
		{"empty text", `{"role":"customer","text":"  "}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := postQuery(t, handler, tt.body); rec.Code != tt.want {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestQueryEndpointMapsPipelineErrors(t *testing.T) {
	handler := newTestHandler(t, &storeFake{}, Config{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"no action phrase", `{"role":"customer","text":"ремонт дизайн"}`, http.StatusBadRequest},
		{"denied insert", `{"role":"customer","text":"додати нерухомість адреса вулиця"}`, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postQuery(t, handler, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tt.want, rec.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] == "" {
				t.Fatal("error body misses the user message")
			}
		})
	}
}

func TestQueryEndpointRejectsWrongMethod(t *testing.T) {
	handler := newTestHandler(t, &storeFake{}, Config{})

	req := httptest.NewRequest(http.MethodGet, "/v1/query", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /v1/query = %d, want 405", rec.Code)
	}
}

func TestRateLimitSheds(t *testing.T) {
	handler := newTestHandler(t, &storeFake{}, Config{RateLimitRPS: 1, RateLimitBurst: 1})

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request = %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d, want 429", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatal("429 response misses Retry-After")
	}
}

func TestBackpressureBoundsInFlight(t *testing.T) {
	gate := make(chan struct{})
	store := &storeFake{records: nil, gate: gate}
	handler := newTestHandler(t, store, Config{MaxInFlight: 1, InFlightWait: 20 * time.Millisecond})

	firstDone := make(chan int, 1)
	go func() {
		rec := postQuery(t, handler, `{"role":"customer","text":"показати нерухомість адреса вулиця"}`)
		firstDone <- rec.Code
	}()

	// Give the first request time to claim the only slot.
	time.Sleep(10 * time.Millisecond)

	second := postQuery(t, handler, `{"role":"customer","text":"показати нерухомість адреса вулиця"}`)
	if second.Code != http.StatusServiceUnavailable {
		t.Fatalf("second request = %d, want 503", second.Code)
	}

	close(gate)
	select {
	case code := <-firstDone:
		if code != http.StatusOK {
			t.Fatalf("first request = %d, want 200", code)
		}
	case <-time.After(time.Second):
		t.Fatal("first request did not finish")
	}
}
