package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"wse/config"
)

const testPage = `<!DOCTYPE html>
<html><head>
<link rel="stylesheet" href="/css/site.css">
<link rel="preload stylesheet" href="missing.css">
<link rel="icon" href="/favicon.ico">
<style>h1 { color: #112233; }</style>
</head>
<body style="background: #ffffff">
<img src="img/hero.png">
<img src="/second.png">
<p style="font-family: Georgia">text</p>
</body></html>`

func testConfig() *config.FetchConfig {
	return &config.FetchConfig{
		UserAgent:       "wse-test/1.0",
		PageTimeout:     5 * time.Second,
		ResourceTimeout: 5 * time.Second,
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "wse-test/1.0" {
			http.Error(w, "bad agent", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(testPage))
	})
	mux.HandleFunc("/css/site.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		_, _ = w.Write([]byte(`body { font-family: Inter, sans-serif; }`))
	})
	mux.HandleFunc("/missing.css", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Page(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(testConfig(), srv.Client(), zaptest.NewLogger(t))

	page, err := c.Page(context.Background(), srv.URL+"/")
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	want := strings.Join([]string{
		"background: #ffffff;",
		"font-family: Georgia;",
		"h1 { color: #112233; }",
		"body { font-family: Inter, sans-serif; }",
		"",
	}, "\n")
	if page.StyleText != want {
		t.Errorf("StyleText =\n%q\nwant\n%q", page.StyleText, want)
	}

	if len(page.Sheets) != 2 {
		t.Fatalf("expected 2 sheet results, got %+v", page.Sheets)
	}
	if page.Sheets[0].Err != nil || page.Sheets[0].URL != srv.URL+"/css/site.css" {
		t.Errorf("unexpected first sheet %+v", page.Sheets[0])
	}
	if page.Sheets[1].Err == nil || page.Sheets[1].URL != srv.URL+"/missing.css" {
		t.Errorf("missing sheet must be reported, got %+v", page.Sheets[1])
	}

	if page.ImageURL != srv.URL+"/img/hero.png" {
		t.Errorf("ImageURL = %q", page.ImageURL)
	}
}

func TestClient_PageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(testConfig(), srv.Client(), zaptest.NewLogger(t))
	if _, err := c.Page(context.Background(), srv.URL); !errors.Is(err, ErrNoStyleText) {
		t.Errorf("expected ErrNoStyleText, got %v", err)
	}
}

func TestClient_PageTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.PageTimeout = 50 * time.Millisecond
	c := NewClient(cfg, srv.Client(), nil)
	if _, err := c.Page(context.Background(), srv.URL); !errors.Is(err, ErrNoStyleText) {
		t.Errorf("expected ErrNoStyleText on timeout, got %v", err)
	}
}

func TestClient_Image(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte{1, 2, 3})
	}))
	defer srv.Close()

	c := NewClient(testConfig(), srv.Client(), nil)
	data, err := c.Image(context.Background(), srv.URL+"/ok.png")
	if err != nil || len(data) != 3 {
		t.Errorf("Image() = %v, %v", data, err)
	}
	if _, err := c.Image(context.Background(), srv.URL+"/nope.png"); err == nil {
		t.Error("expected error for missing image")
	}
}

func TestResolve(t *testing.T) {
	base, _ := url.Parse("https://www.example.com/docs/page.html")

	tests := []struct {
		ref  string
		want string
	}{
		{ref: "style.css", want: "https://www.example.com/docs/style.css"},
		{ref: "/static/app.css", want: "https://www.example.com/static/app.css"},
		{ref: "../up.css", want: "https://www.example.com/up.css"},
		{ref: "//cdn.example.net/x.css", want: "https://cdn.example.net/x.css"},
		{ref: "http://other.org/y.css", want: "http://other.org/y.css"},
		{ref: "  hero.png ", want: "https://www.example.com/docs/hero.png"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			if got := Resolve(base, tt.ref); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestClient_ForceCharset(t *testing.T) {
	// "Привет" in windows-1251 served with wrong charset in headers
	body := []byte("<html><head><style>a{font-family:\xcf\xf0\xe8\xe2\xe5\xf2}</style></head></html>")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	tests := []struct {
		name    string
		charset string
		want    bool
	}{
		{"forced", "windows-1251", true},
		{"unknown ignored", "no-such-charset", false},
		{"detected", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.ForceCharset = tt.charset
			page, err := NewClient(cfg, srv.Client(), zaptest.NewLogger(t)).Page(context.Background(), srv.URL)
			if err != nil {
				t.Fatalf("Page() error = %v", err)
			}
			if got := strings.Contains(page.StyleText, "Привет"); got != tt.want {
				t.Errorf("decoded text %q, cyrillic found = %v, want %v", page.StyleText, got, tt.want)
			}
		})
	}
}

func TestClient_PageImports(t *testing.T) {
	files := map[string]string{
		"/": `<html><head><style>@import "/base.css"; h1{color:#111111}</style>` +
			`<link rel="stylesheet" href="/css/site.css"></head><body></body></html>`,
		"/base.css":            `body{color:#222222}`,
		"/css/site.css":        `@import url(parts/fonts.css); @import "/base.css"; a{color:#333333}`,
		"/css/parts/fonts.css": `@import "../site.css"; body{font-family:Inter}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		text, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(text))
	}))
	t.Cleanup(srv.Close)

	page, err := NewClient(testConfig(), srv.Client(), zaptest.NewLogger(t)).Page(context.Background(), srv.URL+"/")
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	want := strings.Join([]string{
		files["/base.css"],
		`@import "/base.css"; h1{color:#111111}`,
		files["/css/parts/fonts.css"],
		files["/css/site.css"],
		"",
	}, "\n")
	if page.StyleText != want {
		t.Errorf("StyleText =\n%q\nwant\n%q", page.StyleText, want)
	}

	wantSheets := []SheetResult{
		{URL: srv.URL + "/base.css", Bytes: len(files["/base.css"]), ImportedBy: srv.URL + "/"},
		{URL: srv.URL + "/css/site.css", Bytes: len(files["/css/site.css"])},
		{URL: srv.URL + "/css/parts/fonts.css", Bytes: len(files["/css/parts/fonts.css"]), ImportedBy: srv.URL + "/css/site.css"},
	}
	if len(page.Sheets) != len(wantSheets) {
		t.Fatalf("Sheets = %+v, want %+v", page.Sheets, wantSheets)
	}
	for i, want := range wantSheets {
		if page.Sheets[i] != want {
			t.Errorf("Sheets[%d] = %+v, want %+v", i, page.Sheets[i], want)
		}
	}
}
