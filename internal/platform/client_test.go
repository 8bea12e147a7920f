package platform_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/marketplace-gateway/internal/platform"
	"github.com/donaldgifford/marketplace-gateway/internal/platform/mocks"
)

func okResult(body string) platform.Result {
	return platform.Result{Status: platform.StatusOK, StatusCode: http.StatusOK, Payload: json.RawMessage(body)}
}

func TestClient_Me(t *testing.T) {
	t.Parallel()

	t.Run("parses profile", func(t *testing.T) {
		t.Parallel()

		caller := mocks.NewMockCaller(t)
		caller.EXPECT().
			Call(mock.Anything, http.MethodGet, "/users/me", url.Values(nil), nil).
			Return(okResult(`{"id":123456,"nickname":"SELLER_ONE","first_name":"Ana","site_id":"MLA","email":"ana@example.com"}`)).
			Once()

		p, err := platform.NewClient(caller).Me(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(123456), p.ID)
		assert.Equal(t, "SELLER_ONE", p.Nickname)
		assert.Equal(t, "Ana", p.FirstName)
		assert.Equal(t, "MLA", p.SiteID)
	})

	t.Run("propagates call failure", func(t *testing.T) {
		t.Parallel()

		caller := mocks.NewMockCaller(t)
		caller.EXPECT().
			Call(mock.Anything, http.MethodGet, "/users/me", mock.Anything, mock.Anything).
			Return(platform.Result{Status: platform.StatusAuthFailed, StatusCode: http.StatusUnauthorized}).
			Once()

		_, err := platform.NewClient(caller).Me(context.Background())
		require.Error(t, err)

		var callErr *platform.CallError
		require.ErrorAs(t, err, &callErr)
		assert.Equal(t, platform.StatusAuthFailed, callErr.Result.Status)
	})
}

func TestClient_SearchItemIDs(t *testing.T) {
	t.Parallel()

	t.Run("builds query and parses ids", func(t *testing.T) {
		t.Parallel()

		want := url.Values{"q": {"guitar"}, "limit": {"10"}, "offset": {"20"}}

		caller := mocks.NewMockCaller(t)
		caller.EXPECT().
			Call(mock.Anything, http.MethodGet, "/users/77/items/search", want, nil).
			Return(okResult(`{"results":["MLA1","MLA2","MLA3"],"paging":{"total":42,"offset":20,"limit":10}}`)).
			Once()

		res, err := platform.NewClient(caller).SearchItemIDs(context.Background(), platform.SearchRequest{
			UserID: 77, Query: "guitar", Limit: 10, Offset: 20,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"MLA1", "MLA2", "MLA3"}, res.IDs)
		assert.Equal(t, 42, res.Total)
	})

	t.Run("empty results", func(t *testing.T) {
		t.Parallel()

		caller := mocks.NewMockCaller(t)
		caller.EXPECT().
			Call(mock.Anything, http.MethodGet, "/users/77/items/search", url.Values{}, nil).
			Return(okResult(`{"results":[],"paging":{"total":0}}`)).
			Once()

		res, err := platform.NewClient(caller).SearchItemIDs(context.Background(), platform.SearchRequest{UserID: 77})
		require.NoError(t, err)
		assert.Empty(t, res.IDs)
		assert.Zero(t, res.Total)
	})

	t.Run("results not an array", func(t *testing.T) {
		t.Parallel()

		caller := mocks.NewMockCaller(t)
		caller.EXPECT().
			Call(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(okResult(`{"results":"nope"}`)).
			Once()

		_, err := platform.NewClient(caller).SearchItemIDs(context.Background(), platform.SearchRequest{UserID: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "results is not an array")
	})

	t.Run("upstream failure", func(t *testing.T) {
		t.Parallel()

		caller := mocks.NewMockCaller(t)
		caller.EXPECT().
			Call(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(platform.Result{Status: platform.StatusUpstreamError, StatusCode: http.StatusBadGateway}).
			Once()

		_, err := platform.NewClient(caller).SearchItemIDs(context.Background(), platform.SearchRequest{UserID: 1})

		var callErr *platform.CallError
		require.ErrorAs(t, err, &callErr)
		assert.Equal(t, "searching items", callErr.Op)
	})
}

func TestClient_ProbeItemWrite(t *testing.T) {
	t.Parallel()

	dryRun := url.Values{"dry_run": {"true"}}

	t.Run("allowed echoes current price", func(t *testing.T) {
		t.Parallel()

		caller := mocks.NewMockCaller(t)
		caller.EXPECT().
			Call(mock.Anything, http.MethodGet, "/items/MLA1", url.Values(nil), nil).
			Return(okResult(`{"id":"MLA1","price":1500.50}`)).
			Once()
		caller.EXPECT().
			Call(mock.Anything, http.MethodPut, "/items/MLA1", dryRun, mock.Anything).
			Run(func(_ context.Context, _, _ string, _ url.Values, body interface{}) {
				data, err := json.Marshal(body)
				require.NoError(t, err)
				assert.JSONEq(t, `{"price":1500.50}`, string(data))
			}).
			Return(okResult(`{"id":"MLA1"}`)).
			Once()

		check, err := platform.NewClient(caller).ProbeItemWrite(context.Background(), "MLA1")
		require.NoError(t, err)
		assert.True(t, check.Allowed)
		assert.Equal(t, "MLA1", check.ItemID)
		assert.Equal(t, "ok", check.Status)
	})

	t.Run("forbidden is a negative answer", func(t *testing.T) {
		t.Parallel()

		caller := mocks.NewMockCaller(t)
		caller.EXPECT().
			Call(mock.Anything, http.MethodGet, "/items/MLA2", mock.Anything, nil).
			Return(okResult(`{"id":"MLA2","price":10}`)).
			Once()
		caller.EXPECT().
			Call(mock.Anything, http.MethodPut, "/items/MLA2", dryRun, mock.Anything).
			Return(platform.Result{Status: platform.StatusForbidden, StatusCode: http.StatusForbidden}).
			Once()

		check, err := platform.NewClient(caller).ProbeItemWrite(context.Background(), "MLA2")
		require.NoError(t, err)
		assert.False(t, check.Allowed)
		assert.Equal(t, "forbidden", check.Status)
	})

	t.Run("item lookup fails", func(t *testing.T) {
		t.Parallel()

		caller := mocks.NewMockCaller(t)
		caller.EXPECT().
			Call(mock.Anything, http.MethodGet, "/items/MLA404", mock.Anything, nil).
			Return(platform.Result{Status: platform.StatusNotFound, StatusCode: http.StatusNotFound}).
			Once()

		_, err := platform.NewClient(caller).ProbeItemWrite(context.Background(), "MLA404")

		var callErr *platform.CallError
		require.ErrorAs(t, err, &callErr)
		assert.Equal(t, "fetching item", callErr.Op)
		assert.Equal(t, platform.StatusNotFound, callErr.Result.Status)
	})

	t.Run("probe transport error", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection reset")

		caller := mocks.NewMockCaller(t)
		caller.EXPECT().
			Call(mock.Anything, http.MethodGet, "/items/MLA3", mock.Anything, nil).
			Return(okResult(`{"id":"MLA3"}`)).
			Once()
		caller.EXPECT().
			Call(mock.Anything, http.MethodPut, "/items/MLA3", dryRun, mock.Anything).
			Return(platform.Result{Status: platform.StatusTransportError, Cause: cause}).
			Once()

		_, err := platform.NewClient(caller).ProbeItemWrite(context.Background(), "MLA3")
		require.ErrorIs(t, err, cause)
	})
}

func TestItemPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/items/MLA1", platform.ItemPath("MLA1"))
	assert.Equal(t, "/items/a%2Fb", platform.ItemPath("a/b"))
}
