package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTalk(t *testing.T) {
	var gotAuth string
	var gotPayload TalkRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/talks", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(TalkResponse{ID: "tlk_new", Status: TalkStatusCreated})
	}))
	defer server.Close()

	client := NewClient(server.URL, "c2VjcmV0", 5*time.Second)

	talk, err := client.CreateTalk(context.Background(), &TalkRequest{
		Script: Script{
			Type:  "text",
			Input: "hello",
			Provider: ScriptProvider{
				Type:    "microsoft",
				VoiceID: "en-US-JennyNeural",
			},
		},
		DriverID:    "uM00QMwJ9x",
		PresenterID: "rian",
	})

	require.NoError(t, err)
	assert.Equal(t, "tlk_new", talk.ID)
	assert.Equal(t, TalkStatusCreated, talk.Status)
	assert.Equal(t, "Basic c2VjcmV0", gotAuth)
	assert.Equal(t, "hello", gotPayload.Script.Input)
	assert.Equal(t, "rian", gotPayload.PresenterID)
	assert.Empty(t, gotPayload.SourceImage)
}

func TestCreateTalkProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		io.WriteString(w, `{"kind":"InsufficientCreditsError"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", 5*time.Second)

	_, err := client.CreateTalk(context.Background(), &TalkRequest{})
	require.Error(t, err)

	var provErr *Error
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusPaymentRequired, provErr.StatusCode)
	assert.Contains(t, provErr.Body, "InsufficientCreditsError")
}

func TestGetTalk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/talks/tlk_42", r.URL.Path)
		json.NewEncoder(w).Encode(TalkResponse{
			ID:        "tlk_42",
			Status:    TalkStatusDone,
			ResultURL: "https://x/v.mp4",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", 5*time.Second)

	talk, err := client.GetTalk(context.Background(), "tlk_42")
	require.NoError(t, err)
	assert.Equal(t, TalkStatusDone, talk.Status)
	assert.Equal(t, "https://x/v.mp4", talk.ResultURL)
}

func TestGetTalkNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"kind":"NotFoundError"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", 5*time.Second)

	_, err := client.GetTalk(context.Background(), "tlk_missing")

	var provErr *Error
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusNotFound, provErr.StatusCode)
}

func TestListPresenters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/presenters", r.URL.Path)
		io.WriteString(w, `{"presenters":[{"presenter_id":"rian","name":"Rian","thumbnail_url":"https://x/rian.png"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", 5*time.Second)

	presenters, err := client.ListPresenters(context.Background())
	require.NoError(t, err)
	require.Len(t, presenters, 1)
	assert.Equal(t, "rian", presenters[0].PresenterID)
	assert.Equal(t, "Rian", presenters[0].Name)
	assert.Equal(t, "https://x/rian.png", presenters[0].ThumbnailURL)
}

func TestFetchResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// result_url est servi par un CDN: pas de header Authorization
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "video/mp4")
		io.WriteString(w, "mp4 bytes")
	}))
	defer server.Close()

	client := NewClient("https://api.d-id.com", "key", 5*time.Second)

	body, contentType, err := client.FetchResult(context.Background(), server.URL+"/v.mp4")
	require.NoError(t, err)
	defer body.Close()

	content, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "mp4 bytes", string(content))
	assert.Equal(t, "video/mp4", contentType)
}
