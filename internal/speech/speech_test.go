package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"newsbrief/internal/httpx"
)

func TestSynthesizeRejectsEmptyText(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(httpx.New(rand.NewSource(1)), "key", "voice", srv.URL)
	if _, err := c.Synthesize(context.Background(), "  \n "); !errors.Is(err, ErrNoAudio) {
		t.Errorf("Synthesize(blank): got %v, want ErrNoAudio", err)
	}
	if calls != 0 {
		t.Errorf("server was called %d times for empty input, want 0", calls)
	}
}

func TestSynthesizeSuccess(t *testing.T) {
	mp3 := []byte{0xFF, 0xFB, 0x90, 0x00}
	var gotReq request
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("xi-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(mp3)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(httpx.New(rand.NewSource(1)), "key", "voice", srv.URL)
	audio, err := c.Synthesize(context.Background(), "Good evening.")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if !bytes.Equal(audio, mp3) {
		t.Errorf("audio = %v, want %v", audio, mp3)
	}

	if gotKey != "key" {
		t.Errorf("xi-api-key = %q, want %q", gotKey, "key")
	}
	if gotReq.ModelID != synthesisModel {
		t.Errorf("model_id = %q, want %q", gotReq.ModelID, synthesisModel)
	}
	if gotReq.VoiceSettings.Stability != 0.5 || gotReq.VoiceSettings.SimilarityBoost != 0.75 {
		t.Errorf("voice_settings = %+v, want stability 0.5 similarity 0.75", gotReq.VoiceSettings)
	}
}

func TestSynthesizeEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(httpx.New(rand.NewSource(1)), "key", "voice", srv.URL)
	if _, err := c.Synthesize(context.Background(), "text"); !errors.Is(err, ErrNoAudio) {
		t.Errorf("Synthesize with empty body: got %v, want ErrNoAudio", err)
	}
}

func TestSynthesizeBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(httpx.New(rand.NewSource(1)), "key", "voice", srv.URL)
	if _, err := c.Synthesize(context.Background(), "text"); err == nil {
		t.Error("Synthesize on 429: got nil error, want non-nil")
	}
}
