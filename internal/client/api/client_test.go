package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khmorad/Mood-Tracker/internal/client/models"
)

type staticToken string

func (s staticToken) Token(ctx context.Context) string { return string(s) }

func TestClient_ListEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/journal-entries", r.URL.Path)
		require.Equal(t, "u1", r.URL.Query().Get("user_id"))
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode([]models.JournalEntry{
			{ID: 1, UserID: "u1", EntryText: "hi", AIResponse: "hello", JournalDate: "2025-06-01"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok"))
	entries, err := c.ListEntries(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "hi", entries[0].EntryText)
}

func TestClient_CreateEntryReturnsServerRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var e models.JournalEntry
		require.NoError(t, json.NewDecoder(r.Body).Decode(&e))
		e.ID = 42
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(e)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	created, err := c.CreateEntry(context.Background(), models.JournalEntry{
		UserID: "u1", EntryText: "x", AIResponse: "y", JournalDate: "2025-06-01",
	})
	require.NoError(t, err)
	require.EqualValues(t, 42, created.ID)
}

func TestClient_NonOKCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Missing required fields: user_id, entry_text, journal_date"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.CreateEntry(context.Background(), models.JournalEntry{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Contains(t, apiErr.Detail, "Missing required fields")
}

func TestClient_UnauthorizedMatchesSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Login(context.Background(), "a@b.c", []byte("nope"))
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, nil)
	err := c.Ping(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_GenerateRejectsEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": ""})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Generate(context.Background(), "hello")
	require.Error(t, err)
}

func TestClient_GenerateReturnsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req["message"])
		json.NewEncoder(w).Encode(map[string]string{"message": "How does that make you feel?"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	reply, err := c.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, "How does that make you feel?", reply)
}

func TestClient_SynthesizeRequiresURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Synthesize(context.Background(), "read this")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrUnavailable))
}

func TestClient_ActivatePlan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/pricing/activate-plan", r.URL.Path)
		json.NewEncoder(w).Encode(PlanActivation{
			Message:             "Plus plan activated successfully with 7-day free trial",
			SubscriptionTier:    "Plus",
			SubscriptionExpires: "2025-06-08T00:00:00Z",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	act, err := c.ActivatePlan(context.Background(), "u1", "Plus")
	require.NoError(t, err)
	require.Equal(t, "Plus", act.SubscriptionTier)
	require.NotEmpty(t, act.SubscriptionExpires)
}
