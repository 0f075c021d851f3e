package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	gw, err := NewGateway(server.URL, nil, nil, nil)
	require.NoError(t, err)
	return NewClient(gw)
}

func TestListQuery_Encoding(t *testing.T) {
	q := ListQuery{
		Page:        3,
		PageSize:    25,
		SearchField: "email",
		SearchText:  "acme",
		Filters:     map[string][]string{"status": {"ACTIVE", "INACTIVE"}},
	}
	v := q.values()
	assert.Equal(t, "3", v.Get("page"))
	assert.Equal(t, "25", v.Get("size"))
	assert.Equal(t, "acme", v.Get("email"), "search text travels under the selected field's own name")
	assert.Equal(t, "ACTIVE,INACTIVE", v.Get("status"), "filter selections are comma-joined into one parameter")
}

func TestListQuery_SkipsBlankSearchAndEmptyFilters(t *testing.T) {
	q := ListQuery{
		Page:        1,
		SearchField: "name",
		SearchText:  "   ",
		Filters:     map[string][]string{"status": {}},
	}
	v := q.values()
	assert.False(t, v.Has("name"))
	assert.False(t, v.Has("status"))
}

func TestClient_ListProjectsSummaries(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users", r.URL.Path)
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{
			"status": "success",
			"users": [
				{"id": "u-1", "username": "ada", "email": "ada@example.com", "status": "ACTIVE"},
				{"id": "u-2", "username": "brin", "email": "brin@example.com", "status": "INACTIVE"}
			],
			"paginator": {"total": 42, "currentPage": 2, "lastPage": 3}
		}`))
	}))

	page, err := client.List(context.Background(), KindUser, ListQuery{Page: 2, PageSize: 15})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "ada", page.Items[0].Title)
	assert.Equal(t, Paginator{Total: 42, CurrentPage: 2, LastPage: 3}, page.Paginator)
	assert.Equal(t, "2", gotQuery.Get("page"))
	assert.Equal(t, "15", gotQuery.Get("size"))
}

func TestClient_GetCompanyUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/companies/c-7", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"success","company":{"id":"c-7","name":"Acme Freight","status":"ACTIVE"}}`))
	}))

	company, err := client.GetCompany(context.Background(), "c-7")
	require.NoError(t, err)
	assert.Equal(t, "Acme Freight", company.Name)
}

func TestClient_GetRejectsBlankID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for a blank id")
	}))

	_, err := client.GetVehicle(context.Background(), "  ")
	require.ErrorContains(t, err, "vehicle id required")
}

func TestClient_UpdateSendsSparsePatch(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}))

	changed := map[string]any{"phone": "+1 555 0100"}
	require.NoError(t, client.Update(context.Background(), KindUser, "u-9", changed))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/users/u-9", gotPath)
	assert.Equal(t, map[string]any{"phone": "+1 555 0100"}, gotBody, "only modified fields go over the wire")
}

func TestClient_DeleteNotFoundIsTyped(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"error","code":"VEHICLE_NOT_FOUND"}`))
	}))

	err := client.Delete(context.Background(), KindVehicle, "v-404")
	require.Error(t, err)
	assert.True(t, IsNotFound(err), "callers branch on not-found to treat the delete as already done")
}

func TestClient_DeleteNotFoundStaysQuiet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"error","code":"COMPANY_NOT_FOUND"}`))
	}))
	t.Cleanup(server.Close)

	notifier := &recordingNotifier{}
	gw, err := NewGateway(server.URL, nil, notifier, nil)
	require.NoError(t, err)
	client := NewClient(gw)

	err = client.Delete(context.Background(), KindCompany, "c-gone")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Empty(t, notifier.all(), "an already-deleted record is not an error the user should see")
}

func TestClient_UpdateNotFoundStillNotifies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"error","code":"COMPANY_NOT_FOUND"}`))
	}))
	t.Cleanup(server.Close)

	notifier := &recordingNotifier{}
	gw, err := NewGateway(server.URL, nil, notifier, nil)
	require.NoError(t, err)
	client := NewClient(gw)

	err = client.Update(context.Background(), KindCompany, "c-gone", map[string]any{"name": "Acme"})
	require.Error(t, err)
	require.Len(t, notifier.all(), 1, "only delete tolerates not-found; an edit of a vanished record is an error")
	assert.Equal(t, "This company no longer exists.", notifier.all()[0])
}

func TestSnapshotCoversEditableFieldsOnly(t *testing.T) {
	user := User{ID: "u-1", Username: "ada", Email: "a@x", FirstName: "Ada", Status: "ACTIVE"}
	snap := user.Snapshot()
	assert.NotContains(t, snap, "id", "the id is immutable and never part of an edit payload")
	assert.Equal(t, "ada", snap["username"])
}
