package sandbox

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_Success(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/execute", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		_, _ = w.Write([]byte(`{
			"language": "python",
			"version": "3.12.0",
			"run": {"stdout": "42\n", "stderr": "", "code": 0}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Execute(context.Background(), Request{
		Language: "python",
		Code:     "print(6*7)",
		Stdin:    "unused",
	})
	require.NoError(t, err)

	assert.Equal(t, "python", result.Language)
	assert.Equal(t, "3.12.0", result.Version)
	assert.Equal(t, "42\n", result.Stdout)
	assert.Equal(t, 0, result.ExitCode)

	assert.Equal(t, "python", gotBody["language"])
	assert.Equal(t, "*", gotBody["version"], "empty version should request the latest runtime")
	files, ok := gotBody["files"].([]any)
	require.True(t, ok)
	require.Len(t, files, 1)
}

func TestExecute_NonZeroExit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"language": "go",
			"version": "1.24.0",
			"run": {"stdout": "", "stderr": "panic: boom\n", "code": 2}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Execute(context.Background(), Request{Language: "go", Code: "panic"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.ExitCode)
	assert.Contains(t, result.Stderr, "panic: boom")
}

func TestExecute_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "runtime is unknown"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Execute(context.Background(), Request{Language: "cobol", Code: "x"})
	require.Error(t, err)

	var sandboxErr *Error
	require.ErrorAs(t, err, &sandboxErr)
	assert.Equal(t, http.StatusBadRequest, sandboxErr.StatusCode)
	assert.Contains(t, sandboxErr.Message, "runtime is unknown")
}

func TestExecute_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Execute(context.Background(), Request{Language: "python", Code: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	client := NewClient("")
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}
