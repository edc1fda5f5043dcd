package chutes

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/parlo-cli/parlo/internal/config"
)

func newTestClient(endpoint string, maxRetries int) *Client {
	client := New(config.ChutesConfig{
		APIKey:         "test-key",
		Endpoint:       endpoint,
		TimeoutSeconds: 5,
		MaxRetries:     maxRetries,
	})
	client.backoff = func(int) time.Duration { return 0 }
	return client
}

func writeAudioFixture(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestTranscribeSendsBase64AudioWithAuth(t *testing.T) {
	audio := []byte("RIFF fake wav payload")

	var gotAuth, gotContentType string
	var gotBody transcribeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"start": 0.0, "end": 1.2, "text": " Hello"},
			{"start": 1.2, "end": 2.2, "text": " world. "}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	result, err := client.Transcribe(context.Background(), writeAudioFixture(t, audio), "en")
	require.NoError(t, err)

	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, base64.StdEncoding.EncodeToString(audio), gotBody.AudioB64)
	require.Equal(t, "en", gotBody.Language)

	require.Equal(t, "Hello world.", result.Text)
	require.Len(t, result.Segments, 2)
	require.Equal(t, 1.2, result.Segments[0].End)
}

func TestTranscribeOmitsEmptyLanguage(t *testing.T) {
	var rawBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rawBody))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	_, err := client.Transcribe(context.Background(), writeAudioFixture(t, []byte("x")), "")
	require.NoError(t, err)
	require.NotContains(t, rawBody, "language")
}

func TestTranscribeRetriesServerErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "upstream busy", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"start": 0, "end": 1, "text": "ok"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	result, err := client.Transcribe(context.Background(), writeAudioFixture(t, []byte("x")), "")
	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.Equal(t, "ok", result.Text)
}

func TestTranscribeFailsAfterExhaustedRetries(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2)
	_, err := client.Transcribe(context.Background(), writeAudioFixture(t, []byte("x")), "")
	require.Error(t, err)
	require.Equal(t, 2, calls)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 2, apiErr.Attempts)
	require.Contains(t, apiErr.Error(), "500")
}

func TestTranscribeRejectsNonArrayResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text": "not an array"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	_, err := client.Transcribe(context.Background(), writeAudioFixture(t, []byte("x")), "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected response format")
}

func TestTranscribeHonorsContextBetweenRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5)
	client.backoff = func(int) time.Duration { return time.Hour }

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.Transcribe(ctx, writeAudioFixture(t, []byte("x")), "")
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}

func TestTranscribeMissingFileFailsWithoutRequest(t *testing.T) {
	client := newTestClient("http://127.0.0.1:0", 1)
	_, err := client.Transcribe(context.Background(), "/does/not/exist.wav", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "read audio")
}

func TestTestConnectionSendsEmptyAudio(t *testing.T) {
	var gotBody transcribeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	require.NoError(t, client.TestConnection(context.Background()))
	require.Empty(t, gotBody.AudioB64)
}

func TestDefaultBackoffIsCapped(t *testing.T) {
	require.Equal(t, 2*time.Second, defaultBackoff(1))
	require.Equal(t, 4*time.Second, defaultBackoff(2))
	require.Equal(t, 8*time.Second, defaultBackoff(3))
	require.Equal(t, 8*time.Second, defaultBackoff(6))
}
