package leads

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/supplychain-leads/pkg/logging"
)

func newClientServer(t *testing.T) (*httptest.Server, *InMemoryRepository) {
	t.Helper()
	repo := NewInMemoryRepository()
	handler := NewHandler(NewSink(repo, logging.New("error")), repo, logging.New("error"))

	mux := http.NewServeMux()
	mux.HandleFunc("/api/leads", handler.CreateWebLead)
	mux.HandleFunc("/admin/leads", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer admin-token" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}
		handler.ListLeads(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, repo
}

func TestClientSubmitAndList(t *testing.T) {
	srv, repo := newClientServer(t)
	client := NewClient(srv.URL+"/", WithAdminToken("admin-token"))
	ctx := context.Background()

	lead, err := client.Create(ctx, Record{Name: " Ada ", Email: "ada@example.com", Interest: InterestOffer})
	require.NoError(t, err)
	assert.Equal(t, "Ada", lead.Name)
	assert.NotEmpty(t, lead.ID)

	require.NoError(t, client.SubmitLead(ctx, Record{Name: "Grace", Email: "grace@example.com", Interest: InterestOther}))
	assert.Equal(t, 2, repo.Len())

	page, err := client.List(ctx, ListFilter{Interest: InterestOther, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, page.Count)
	assert.Equal(t, "grace@example.com", page.Leads[0].Email)
	assert.Equal(t, 10, page.Limit)
}

func TestClientReportsServerErrors(t *testing.T) {
	srv, _ := newClientServer(t)
	ctx := context.Background()

	err := NewClient(srv.URL).SubmitLead(ctx, Record{Name: "A", Email: "a@example.com", Interest: InterestOffer})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.Contains(t, err.Error(), ErrInvalidName.Error())

	_, err = NewClient(srv.URL).List(ctx, ListFilter{})
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
}

func TestClientTransportError(t *testing.T) {
	srv, _ := newClientServer(t)
	url := srv.URL
	srv.Close()

	err := NewClient(url).SubmitLead(context.Background(), Record{Name: "Ada", Email: "ada@example.com", Interest: InterestOffer})
	require.Error(t, err)
	assert.False(t, IsStatus(err, http.StatusBadGateway))
}

func TestClientHasNoDefaultTimeout(t *testing.T) {
	assert.Zero(t, NewClient("http://localhost").http.Timeout)

	custom := &http.Client{Timeout: time.Second}
	assert.Same(t, custom, NewClient("http://localhost", WithHTTPClient(custom)).http)
	assert.NotNil(t, NewClient("http://localhost", WithHTTPClient(nil)).http)
}

func TestClientHonoursContextCancel(t *testing.T) {
	srv, repo := newClientServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewClient(srv.URL).SubmitLead(ctx, Record{Name: "Ada", Email: "ada@example.com", Interest: InterestOffer})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, repo.Len())
}
