package ai_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"choconati/internal/ai"
	"choconati/internal/core"
	"choconati/internal/metrics"

	"github.com/openai/openai-go/option"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func seedSnapshot() core.Snapshot {
	return core.BuildSnapshot(core.SeedIngredients(), core.SeedRecipes())
}

// fakeResponses serves POST .../responses with the given status and output text.
func fakeResponses(t *testing.T, status int, text string, calls *int32, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/responses") {
			http.NotFound(w, r)
			return
		}
		if seen != nil {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = io.WriteString(w, `{"error":{"message":"quota exceeded","type":"insufficient_quota","code":"insufficient_quota"}}`)
			return
		}
		content := `[]`
		if text != "" {
			content = `[{"type":"output_text","text":` + mustJSON(t, text) + `,"annotations":[]}]`
		}
		_, _ = io.WriteString(w, `{"id":"resp_1","object":"response","created_at":0,"model":"gpt-4o-mini","status":"completed",`+
			`"output":[{"type":"message","id":"msg_1","role":"assistant","status":"completed","content":`+content+`}]}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func newAgent(srv *httptest.Server) *ai.Agent {
	return ai.NewAgent("sk-test", quiet, ai.Options{
		BaseURL:       srv.URL + "/v1/",
		ClientOptions: []option.RequestOption{option.WithMaxRetries(0)},
	})
}

func TestAsk_ReturnsModelText(t *testing.T) {
	var calls int32
	var body map[string]any
	srv := fakeResponses(t, http.StatusOK, "Aumente a margem do brigadeiro.", &calls, &body)

	got := newAgent(srv).Ask(context.Background(), "Como aumentar meu lucro?", seedSnapshot())
	if got != "Aumente a margem do brigadeiro." {
		t.Errorf("unexpected reply %q", got)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if body["input"] != "Como aumentar meu lucro?" {
		t.Errorf("expected user text as input, got %v", body["input"])
	}
	instructions, _ := body["instructions"].(string)
	if !strings.Contains(instructions, "Leite Condensado") || !strings.Contains(instructions, "Brigadeiro Gourmet") {
		t.Errorf("instructions do not carry the snapshot: %q", instructions)
	}
}

func TestAsk_FailureReturnsApology(t *testing.T) {
	var calls int32
	srv := fakeResponses(t, http.StatusTooManyRequests, "", &calls, nil)
	errors := metrics.AdvisorRequests.WithLabelValues(metrics.OutcomeError)
	before := testutil.ToFloat64(errors)

	got := newAgent(srv).Ask(context.Background(), "Oi", seedSnapshot())
	if got != ai.ApologyReply {
		t.Errorf("expected apology, got %q", got)
	}
	if testutil.ToFloat64(errors)-before != 1 {
		t.Error("expected error outcome to be counted")
	}
}

func TestAsk_EmptyReply(t *testing.T) {
	var calls int32
	srv := fakeResponses(t, http.StatusOK, "", &calls, nil)

	if got := newAgent(srv).Ask(context.Background(), "Oi", seedSnapshot()); got != ai.EmptyReply {
		t.Errorf("expected empty-reply text, got %q", got)
	}
}

func TestAsk_BlankInputSkipsNetwork(t *testing.T) {
	var calls int32
	srv := fakeResponses(t, http.StatusOK, "unused", &calls, nil)

	got := newAgent(srv).Ask(context.Background(), "   \n", seedSnapshot())
	if got != ai.BlankInputReply {
		t.Errorf("expected blank-input reply, got %q", got)
	}
	if calls != 0 {
		t.Errorf("expected no network call, got %d", calls)
	}
}

func TestAsk_MissingCredential(t *testing.T) {
	unconfigured := metrics.AdvisorRequests.WithLabelValues(metrics.OutcomeUnconfigured)
	before := testutil.ToFloat64(unconfigured)

	got := ai.NewAgent("", quiet, ai.Options{}).Ask(context.Background(), "Oi", seedSnapshot())
	if got != ai.ApologyReply {
		t.Errorf("expected apology, got %q", got)
	}
	if testutil.ToFloat64(unconfigured)-before != 1 {
		t.Error("expected unconfigured outcome to be counted")
	}
}

func TestInstructions_EmptyStores(t *testing.T) {
	text := ai.NewAgent("", quiet, ai.Options{Shop: "Doces da Ana"}).Instructions(core.BuildSnapshot(nil, nil))

	for _, want := range []string{`"Doces da Ana"`, "- no ingredients registered", "- no recipes registered", "Português do Brasil"} {
		if !strings.Contains(text, want) {
			t.Errorf("instructions missing %q", want)
		}
	}
}

func TestInstructions_DefaultShop(t *testing.T) {
	text := ai.NewAgent("", quiet, ai.Options{}).Instructions(seedSnapshot())
	if !strings.Contains(text, `da "ChocoNati"`) {
		t.Errorf("expected default shop name in instructions, got %q", text[:80])
	}
}
