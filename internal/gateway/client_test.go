package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"agribot-wa-relay/internal/gateway"
)

func TestQuery(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{
			"reply": "Here are two options.",
			"mentioned_products": [
				{"title": "Tractor", "description": "Farm tool", "image_link": "http://x/t.png"},
				{"title": "Harvester", "description": "Heavy machine", "link": "http://x/h.png"}
			]
		}`))
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL, 5*time.Second)
	reply, err := c.Query(context.Background(), gateway.Request{
		SessionID: "+123",
		Message:   "what should I buy?",
		FirstName: "Ada",
	})
	require.NoError(t, err)
	require.Equal(t, "Here are two options.", reply.Text)
	require.Len(t, reply.Products, 2)
	require.Equal(t, "http://x/t.png", reply.Products[0].ImageURL)
	// image_link absent, link used as fallback
	require.Equal(t, "http://x/h.png", reply.Products[1].ImageURL)

	require.Equal(t, "+123", got["session_id"])
	require.Equal(t, "what should I buy?", got["message"])
	require.Equal(t, "Ada", got["first_name"])
	_, hasLocation := got["location"]
	require.False(t, hasLocation)
	_, hasType := got["type"]
	require.False(t, hasType)
}

func TestQuerySendsLocation(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"reply": "Nearest store is 2km away.", "mentioned_products": []}`))
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL, 5*time.Second)
	reply, err := c.Query(context.Background(), gateway.Request{
		SessionID: "+123",
		Message:   "Here is my location.",
		Location:  &gateway.Location{Latitude: 6.5, Longitude: 3.3},
	})
	require.NoError(t, err)
	require.Equal(t, "Nearest store is 2km away.", reply.Text)
	require.Empty(t, reply.Products)

	loc, ok := got["location"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, 6.5, loc["latitude"])
	require.Equal(t, 3.3, loc["longitude"])
}

func TestQueryNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL, 5*time.Second)
	_, err := c.Query(context.Background(), gateway.Request{SessionID: "+123", Message: "hi"})
	require.ErrorIs(t, err, gateway.ErrUnavailable)
}

func TestQueryTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := gateway.NewClient(srv.URL, time.Second)
	_, err := c.Query(context.Background(), gateway.Request{SessionID: "+123", Message: "hi"})
	require.ErrorIs(t, err, gateway.ErrUnavailable)
}

func TestQueryMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL, 5*time.Second)
	_, err := c.Query(context.Background(), gateway.Request{SessionID: "+123", Message: "hi"})
	require.ErrorIs(t, err, gateway.ErrUnavailable)
}

func TestQueryMalformedProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reply": "ok", "mentioned_products": [{"title": "Tractor"}]}`))
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL, 5*time.Second)
	_, err := c.Query(context.Background(), gateway.Request{SessionID: "+123", Message: "hi"})
	var malformed *gateway.MalformedReplyError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "description", malformed.Field)
	require.ErrorIs(t, err, gateway.ErrUnavailable)
}
