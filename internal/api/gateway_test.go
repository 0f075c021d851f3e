package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, defaultAPIBind, u.Host)

	u, err = parseBaseURL("https://example.com:8443/drop?x=1#frag")
	require.NoError(t, err)
	assert.Empty(t, u.Path)
	assert.Empty(t, u.RawQuery)
	assert.Empty(t, u.Fragment)
}

func TestGateway_AttachesAuthAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}))
	t.Cleanup(server.Close)

	gw, err := NewGateway(server.URL, staticToken("tok-123"), &recordingNotifier{}, nil)
	require.NoError(t, err)

	var dest MutationResult
	require.NoError(t, gw.Send(context.Background(), "GET", &url.URL{Path: "/api/companies"}, nil, &dest))
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, defaultUserAgent, gotAgent)
}

func TestGateway_OmitsAuthHeaderWithoutToken(t *testing.T) {
	var sawAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	gw, err := NewGateway(server.URL, staticToken(""), nil, nil)
	require.NoError(t, err)
	require.NoError(t, gw.Send(context.Background(), "GET", &url.URL{Path: "/"}, nil, nil))
	assert.False(t, sawAuth, "Authorization header must be omitted when no token is present")
}

func TestGateway_KnownCodeMapsToMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"error","code":"COMPANY_NOT_FOUND"}`))
	}))
	t.Cleanup(server.Close)

	notifier := &recordingNotifier{}
	gw, err := NewGateway(server.URL, nil, notifier, nil)
	require.NoError(t, err)

	err = gw.Send(context.Background(), "DELETE", &url.URL{Path: "/api/companies/42"}, nil, nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err), "404 must surface as a not-found APIError")

	want, _ := MessageFor("COMPANY_NOT_FOUND")
	assert.Equal(t, []string{want}, notifier.all())
}

func TestGateway_UnknownCodeFallsBackToGeneric(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"status":"error","code":"SOMETHING_NEW"}`))
	}))
	t.Cleanup(server.Close)

	notifier := &recordingNotifier{}
	gw, err := NewGateway(server.URL, nil, notifier, nil)
	require.NoError(t, err)

	err = gw.Send(context.Background(), "GET", &url.URL{Path: "/x"}, nil, nil)
	require.Error(t, err)
	assert.Equal(t, []string{GenericErrorMessage}, notifier.all())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "SOMETHING_NEW", apiErr.Code)
	assert.False(t, apiErr.NotFound())
}

func TestGateway_NetworkFailureNotifiesGenerically(t *testing.T) {
	notifier := &recordingNotifier{}
	gw, err := NewGateway("127.0.0.1:1", nil, notifier, nil)
	require.NoError(t, err)

	err = gw.Send(context.Background(), "GET", &url.URL{Path: "/x"}, nil, nil)
	require.Error(t, err)
	assert.Equal(t, []string{GenericErrorMessage}, notifier.all())
}

func TestGateway_LoadingSignalBalancedAcrossConcurrentErrors(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	gw, err := NewGateway(server.URL, nil, &recordingNotifier{}, nil)
	require.NoError(t, err)
	require.False(t, gw.Busy(), "signal must be low before the first request")

	started := make(chan struct{}, 2)
	done := make(chan struct{}, 2)
	for _, path := range []string{"/ok", "/fail"} {
		go func(path string) {
			started <- struct{}{}
			_ = gw.Send(context.Background(), "GET", &url.URL{Path: path}, nil, nil)
			done <- struct{}{}
		}(path)
	}
	<-started
	<-started
	close(release)
	<-done
	<-done

	assert.False(t, gw.Busy(), "signal must drop after the last concurrent request, errors included")
	assert.Equal(t, 0, gw.InFlight())
	assert.Greater(t, gw.AverageLatency().Nanoseconds(), int64(0))
}

func TestGateway_MalformedPayloadIsRecovered(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not-json`))
	}))
	t.Cleanup(server.Close)

	notifier := &recordingNotifier{}
	gw, err := NewGateway(server.URL, nil, notifier, nil)
	require.NoError(t, err)

	var dest MutationResult
	err = gw.Send(context.Background(), "GET", &url.URL{Path: "/x"}, nil, &dest)
	require.ErrorContains(t, err, "decode response")
	assert.Equal(t, []string{GenericErrorMessage}, notifier.all())
	assert.False(t, gw.Busy())
}
