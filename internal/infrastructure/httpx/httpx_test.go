package httpx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func httpClientRT(rt http.RoundTripper) *http.Client {
	return &http.Client{Transport: rt, Timeout: 2 * time.Second}
}

func respond(r *http.Request, code int, body string) *http.Response {
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(body)), Header: make(http.Header), Request: r}
}

func TestDoJSON_OK(t *testing.T) {
	var gotAuth string
	c := &Client{Token: "secret", HTTP: httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		gotAuth = r.Header.Get("Authorization")
		return respond(r, 200, `{"ok": true}`), nil
	}))}
	var out struct {
		OK bool `json:"ok"`
	}
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, c.DoJSON(context.Background(), req, &out))
	require.True(t, out.OK)
	require.Equal(t, "Bearer secret", gotAuth)
}

func TestDoJSON_NoRetryOn500(t *testing.T) {
	var calls int
	c := &Client{HTTP: httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return respond(r, 500, "err"), nil
	}))}
	var out any
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	err := c.DoJSON(context.Background(), req, &out)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, 500, se.Code)
	require.Equal(t, 1, calls)
}

func TestDoJSON_TransportError(t *testing.T) {
	boom := errors.New("connection refused")
	c := &Client{HTTP: httpClientRT(rtFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	}))}
	var out any
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.ErrorIs(t, c.DoJSON(context.Background(), req, &out), boom)
}

func TestDoJSON_DecodeError(t *testing.T) {
	c := &Client{HTTP: httpClientRT(rtFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewBufferString("{x")), Header: make(http.Header), Request: r}, nil
	}))}
	var out map[string]any
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	err := c.DoJSON(context.Background(), req, &out)
	require.ErrorContains(t, err, "decode")
}
