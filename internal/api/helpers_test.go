package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"

	"legalize-docs/internal/auth"
	"legalize-docs/internal/config"
	"legalize-docs/internal/domain"
	"legalize-docs/internal/metrics"
	"legalize-docs/internal/storage"
	"legalize-docs/internal/wizard"
)

type testEnv struct {
	server   *httptest.Server
	client   *http.Client
	registry *wizard.Registry
	contacts *storage.MemoryStore
	metrics  *metrics.Metrics
}

type envOptions struct {
	checks    map[string]Pinger
	rps       float64
	burst     int
	submitter wizard.Submitter
}

func newTestEnv(opts envOptions) (*testEnv, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()

	if opts.burst == 0 {
		opts.rps, opts.burst = 1000, 1000
	}
	if opts.submitter == nil {
		opts.submitter = wizard.DelayedSubmitter{}
	}

	registry := wizard.NewRegistry(wizard.RegistryConfig{
		Logger:  logger,
		Metrics: m,
		Options: []wizard.Option{
			wizard.WithUploader(wizard.DelayedUploader{}),
			wizard.WithSubmitter(opts.submitter),
			wizard.WithObserver(m),
		},
	})

	gateway, err := auth.NewDemoGateway(auth.DemoConfig{Logger: logger})
	if err != nil {
		return nil, err
	}
	contacts := storage.NewMemoryStore()

	cfg := config.Config{MaxUploadBytes: 10 << 20}
	h, err := NewHandler(cfg, Deps{
		Registry: registry,
		Auth:     gateway,
		Sessions: auth.NewSessions([]byte("test-secret"), "legalize-docs", 0),
		Contacts: contacts,
		Metrics:  m,
		Logger:   logger,
		Checks:   opts.checks,
	})
	if err != nil {
		return nil, err
	}

	server := httptest.NewServer(NewRouter(h, NewRateLimiter(opts.rps, opts.burst)))
	jar, _ := cookiejar.New(nil)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testEnv{server: server, client: client, registry: registry, contacts: contacts, metrics: m}, nil
}

func (e *testEnv) Close() { e.server.Close() }

func (e *testEnv) get(path string) (*http.Response, string, error) {
	return e.do(http.MethodGet, path, "", nil)
}

func (e *testEnv) postForm(path string, form map[string]string) (*http.Response, string, error) {
	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}
	return e.do(http.MethodPost, path, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
}

func (e *testEnv) postJSON(path, body string) (*http.Response, string, error) {
	return e.do(http.MethodPost, path, "application/json", strings.NewReader(body))
}

func (e *testEnv) upload(method, path, filename, contentType string, content []byte) (*http.Response, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return e.do(method, path, mw.FormDataContentType(), &buf)
}

func (e *testEnv) do(method, path, contentType string, body io.Reader) (*http.Response, string, error) {
	req, err := http.NewRequestWithContext(context.Background(), method, e.server.URL+path, body)
	if err != nil {
		return nil, "", err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return resp, string(raw), nil
}

// wizardFromLocation resolves the wizard a redirect points at.
func (e *testEnv) wizardFromLocation(location string) (*wizard.Wizard, error) {
	i := strings.LastIndex(location, "/")
	if i < 0 {
		return nil, errors.New("no wizard id in " + location)
	}
	return e.registry.Get(location[i+1:])
}

var pdfContent = []byte("%PDF-1.4 test document")

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

type failingSubmitter struct{}

func (failingSubmitter) Submit(context.Context, domain.ServiceRequest) (domain.Receipt, error) {
	return domain.Receipt{}, errors.New("workflow service unavailable")
}
