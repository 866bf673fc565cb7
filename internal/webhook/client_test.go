package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campaigndeck/internal/node"
)

func fixedClock() time.Time {
	return time.Date(2025, 10, 7, 14, 43, 15, 0, time.UTC)
}

func TestSubmitWrapsPayloadAndDecodesResponse(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"Product":"Acme","campaign_week":[{"platform":"IG"}]}]`)
	}))
	defer server.Close()

	client := NewClient(WithClock(fixedClock))
	seq := client.NextSeq()
	resp, err := client.Submit(context.Background(), seq, server.URL, "content-calendar", map[string]any{
		"productOrService": "Coffee",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.Seq != seq {
		t.Fatalf("response seq = %d, want %d", resp.Seq, seq)
	}
	if received["type"] != "content-calendar:submit" {
		t.Fatalf("envelope type = %v", received["type"])
	}
	data, _ := received["data"].(map[string]any)
	if data["productOrService"] != "Coffee" {
		t.Fatalf("form fields must pass through: %v", data)
	}
	if data["timestamp"] != "2025-10-07T14:43:15Z" {
		t.Fatalf("timestamp = %v", data["timestamp"])
	}
	if _, ok := resp.Payload.([]any); !ok {
		t.Fatalf("payload must decode as an ordered JSON value, got %T", resp.Payload)
	}
}

func TestSubmitNonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient()
	if _, err := client.Submit(context.Background(), client.NextSeq(), server.URL, "x", nil); err == nil {
		t.Fatalf("non-OK status must surface as an error")
	}
}

func TestSubmitEmptyBodyIsSuccessWithoutPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Submit(context.Background(), client.NextSeq(), server.URL, "x", nil)
	if err != nil {
		t.Fatalf("empty body must not be an error: %v", err)
	}
	if resp.Payload != nil {
		t.Fatalf("empty body carries no payload, got %v", resp.Payload)
	}
}

func TestSubmitMissingURL(t *testing.T) {
	client := NewClient()
	if _, err := client.Submit(context.Background(), client.NextSeq(), "  ", "x", nil); err == nil {
		t.Fatalf("blank URL must error")
	}
}

func TestFeedbackAugmentsOriginalPayload(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		io.WriteString(w, `{"revised":true}`)
	}))
	defer server.Close()

	client := NewClient(WithClock(fixedClock))
	original := map[string]any{"productOrService": "Coffee", "goal": "Sales"}
	resp, err := client.Feedback(context.Background(), client.NextSeq(), server.URL, "content-calendar", original, "  more detail please  ")
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	data, _ := received["data"].(map[string]any)
	if data["type"] != "feedback" {
		t.Fatalf("feedback data type = %v", data["type"])
	}
	if data["feedback"] != "more detail please" {
		t.Fatalf("feedback text must be trimmed, got %v", data["feedback"])
	}
	if data["goal"] != "Sales" {
		t.Fatalf("original payload must be carried along: %v", data)
	}
	if original["type"] != nil {
		t.Fatalf("the caller's map must not be mutated")
	}
	obj, ok := resp.Payload.(*node.Object)
	if !ok {
		t.Fatalf("expected decoded object payload, got %T", resp.Payload)
	}
	if v, _ := obj.Get("revised"); v != true {
		t.Fatalf("unexpected payload: %v", v)
	}
}

func TestFeedbackRejectsEmptyText(t *testing.T) {
	client := NewClient()
	if _, err := client.Feedback(context.Background(), client.NextSeq(), "http://unused", "x", nil, "   "); err == nil {
		t.Fatalf("blank feedback must error before any network call")
	}
}

func TestSequenceNumbersAreMonotonic(t *testing.T) {
	client := NewClient()
	first := client.NextSeq()
	second := client.NextSeq()
	if second <= first {
		t.Fatalf("sequence must increase: %d then %d", first, second)
	}
	if client.Latest() != second {
		t.Fatalf("Latest() = %d, want %d", client.Latest(), second)
	}
}
