package extract

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newsbrief/internal/httpx"
)

func serve(t *testing.T, page string) (*Extractor, string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	t.Cleanup(srv.Close)
	return NewExtractor(httpx.New(rand.NewSource(1))), srv.URL
}

func TestTextFromContentContainer(t *testing.T) {
	page := `<html><body>
<nav>Menu that must not appear</nav>
<section id="entry-body">
  <p>First paragraph.</p>
  <p>Second paragraph.</p>
  <script>var hidden = true;</script>
</section>
</body></html>`
	e, url := serve(t, page)

	got, err := e.Text(context.Background(), url)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	want := "First paragraph.\nSecond paragraph."
	if got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
}

func TestTextFallbackToMain(t *testing.T) {
	long := strings.Repeat("word ", 50) // well over the noise threshold
	page := fmt.Sprintf(`<html><body><main><p>%s</p></main></body></html>`, long)
	e, url := serve(t, page)

	got, err := e.Text(context.Background(), url)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if !strings.Contains(got, "word") || len(got) <= minFallbackLen {
		t.Errorf("fallback text = %q (len %d), want long main content", got, len(got))
	}
}

func TestTextEmptyContentContainer(t *testing.T) {
	page := `<html><body><section id="entry-body">   </section></body></html>`
	e, url := serve(t, page)

	if _, err := e.Text(context.Background(), url); !errors.Is(err, ErrNoText) {
		t.Errorf("Text on empty container: got %v, want ErrNoText", err)
	}
}

func TestTextFallbackThresholdCountsRunes(t *testing.T) {
	// 150 three-byte runes: 450 bytes but only 150 characters, which is
	// under the noise threshold.
	page := fmt.Sprintf(`<html><body><main><p>%s</p></main></body></html>`, strings.Repeat("あ", 150))
	e, url := serve(t, page)

	if _, err := e.Text(context.Background(), url); !errors.Is(err, ErrNoText) {
		t.Errorf("Text on short non-ASCII fallback: got %v, want ErrNoText", err)
	}
}

func TestTextShortFallbackIsNoise(t *testing.T) {
	page := `<html><body><article><p>Too short to be an article.</p></article></body></html>`
	e, url := serve(t, page)

	if _, err := e.Text(context.Background(), url); !errors.Is(err, ErrNoText) {
		t.Errorf("Text on short fallback: got %v, want ErrNoText", err)
	}
}

func TestTextEmptyPage(t *testing.T) {
	e, url := serve(t, `<html><body></body></html>`)

	if _, err := e.Text(context.Background(), url); !errors.Is(err, ErrNoText) {
		t.Errorf("Text on empty page: got %v, want ErrNoText", err)
	}
}

func TestTextFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	e := NewExtractor(httpx.New(rand.NewSource(1)))
	if _, err := e.Text(context.Background(), srv.URL); err == nil {
		t.Error("Text on 404 page: got nil error, want non-nil")
	}
}
