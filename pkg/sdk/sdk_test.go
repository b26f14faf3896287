package sdk_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/celerix-dev/celerix-roster/internal/api"
	"github.com/celerix-dev/celerix-roster/internal/engine"
	"github.com/celerix-dev/celerix-roster/internal/service"
	"github.com/celerix-dev/celerix-roster/pkg/schema"
	"github.com/celerix-dev/celerix-roster/pkg/sdk"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startDaemon(t *testing.T, store engine.Store) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := api.NewEngine(api.EngineConfig{
		Controller: &api.Handler{
			Users:  service.NewUsers(store, service.EmptyUsersReject, nil),
			Status: service.NewStatus(store),
		},
		Router: api.NewRouter(api.MismatchNotFound),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_RoundTrip(t *testing.T) {
	srv := startDaemon(t, engine.NewMemStore(engine.DefaultUsers()))

	client, err := sdk.Connect(srv.URL)
	require.NoError(t, err)

	users, err := client.ListUsers()
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultUsers(), users)

	carol := schema.User{ID: 3, Name: "Carol", Role: "user"}
	created, err := client.AddUser(carol)
	require.NoError(t, err)
	assert.Equal(t, carol, created)

	users, err = client.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, carol, users[2])

	status, err := client.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.StatusActive, status.Status)
}

func TestClient_APIError(t *testing.T) {
	srv := startDaemon(t, engine.NewMemStore(nil))
	client := sdk.NewClient(srv.URL, srv.Client())

	_, err := client.ListUsers()
	require.Error(t, err)

	var apiErr *sdk.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "No users found", apiErr.Message)
}

func TestClient_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(api.NotFoundBody))
	}))
	defer srv.Close()

	_, err := sdk.NewClient(srv.URL, nil).GetStatus()

	var apiErr *sdk.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, api.NotFoundBody, apiErr.Message)
}

func TestConnect_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := sdk.Connect(srv.URL)
	assert.Error(t, err)
}

func TestLocal(t *testing.T) {
	store := engine.NewMemStore(engine.DefaultUsers())
	var roster sdk.RosterAPI = sdk.NewLocal(
		service.NewUsers(store, service.EmptyUsersReject, nil),
		service.NewStatus(store),
	)

	dana := schema.User{ID: 3, Name: "Dana", Role: "user"}
	created, err := roster.AddUser(dana)
	require.NoError(t, err)
	assert.Equal(t, dana, created)

	users, err := roster.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestNew_EmbeddedFallback(t *testing.T) {
	t.Setenv(sdk.AddrEnv, "")

	roster, err := sdk.New()
	require.NoError(t, err)
	assert.IsType(t, &sdk.Local{}, roster)

	users, err := roster.ListUsers()
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultUsers(), users)
}

func TestNew_Remote(t *testing.T) {
	srv := startDaemon(t, engine.NewMemStore(engine.DefaultUsers()))
	t.Setenv(sdk.AddrEnv, srv.URL)

	roster, err := sdk.New()
	require.NoError(t, err)
	assert.IsType(t, &sdk.Client{}, roster)
}
