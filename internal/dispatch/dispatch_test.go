package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
	"github.com/newsphere/newsphere-api/pkg/response"
)

func echo(name string) Handler {
	return func(ctx context.Context, req *Request) *Result {
		return OK(map[string]string{"op": name, "id": req.ID})
	}
}

func testResource() *Resource {
	return &Resource{
		Mount:  "/api/news",
		List:   echo("list"),
		Get:    echo("get"),
		Create: echo("create"),
		Update: echo("update"),
		Delete: echo("delete"),
		Actions: map[string]Handler{
			"stats": echo("stats"),
		},
		Toggles: map[string]Handler{
			"featured": echo("toggle-featured"),
		},
	}
}

func invoke(t *testing.T, rs *Resource, method, target string) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, target, nil)
	rs.HandlerFunc()(w, r)

	var env response.Envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestOptionsPreflight(t *testing.T) {
	w, _ := invoke(t, testResource(), http.MethodOptions, "/api/news")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
}

func TestMethodDefaults(t *testing.T) {
	cases := []struct {
		method string
		target string
		op     string
		id     string
	}{
		{http.MethodGet, "/api/news", "list", ""},
		{http.MethodGet, "/api/news/abc", "get", "abc"},
		{http.MethodGet, "/api/news?id=def", "get", "def"},
		{http.MethodPost, "/api/news", "create", ""},
		{http.MethodPut, "/api/news/abc", "update", "abc"},
		{http.MethodDelete, "/api/news/abc", "delete", "abc"},
		{http.MethodPatch, "/api/news/abc/featured", "toggle-featured", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			w, env := invoke(t, testResource(), tc.method, tc.target)
			require.Equal(t, http.StatusOK, w.Code)
			require.True(t, env.Success)
			data := env.Data.(map[string]interface{})
			assert.Equal(t, tc.op, data["op"])
			assert.Equal(t, tc.id, data["id"])
		})
	}
}

func TestActionOverridesMethodDefaults(t *testing.T) {
	w, env := invoke(t, testResource(), http.MethodGet, "/api/news?action=stats")
	require.Equal(t, http.StatusOK, w.Code)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, "stats", data["op"])
}

func TestMissingIDRejectedBeforeHandler(t *testing.T) {
	called := false
	rs := testResource()
	rs.Update = func(ctx context.Context, req *Request) *Result {
		called = true
		return OK(nil)
	}

	w, env := invoke(t, rs, http.MethodPut, "/api/news")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.False(t, called)
}

func TestUnsupportedMethodGets405(t *testing.T) {
	rs := &Resource{Mount: "/api/settings", Get: echo("get"), List: echo("list")}
	w, env := invoke(t, rs, http.MethodDelete, "/api/settings/x")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, w.Header().Get("Allow"), http.MethodGet)
	assert.NotContains(t, w.Header().Get("Allow"), http.MethodDelete)
}

func TestUnknownToggleFlag(t *testing.T) {
	w, env := invoke(t, testResource(), http.MethodPatch, "/api/news/abc/unknown")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestPanicBecomesGenericError(t *testing.T) {
	rs := testResource()
	rs.List = func(ctx context.Context, req *Request) *Result {
		panic("boom")
	}
	w, env := invoke(t, rs, http.MethodGet, "/api/news")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, appErrors.ErrInternal.Message, env.Error)
}

func TestFailureEnvelopeNeverCarriesData(t *testing.T) {
	rs := testResource()
	rs.List = func(ctx context.Context, req *Request) *Result {
		return Fail(appErrors.ErrNotFound)
	}
	w, env := invoke(t, rs, http.MethodGet, "/api/news")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
}

func TestWithAuth(t *testing.T) {
	verify := func(ctx context.Context, token string) error {
		if token != "good" {
			return appErrors.ErrUnauthorized
		}
		return nil
	}
	guarded := WithAuth(verify, echo("secret"))

	req := &Request{Header: http.Header{}}
	result := guarded(context.Background(), req)
	assert.Equal(t, http.StatusUnauthorized, result.Status)

	req.Header.Set("Authorization", "Bearer bad")
	result = guarded(context.Background(), req)
	assert.Equal(t, http.StatusUnauthorized, result.Status)

	req.Header.Set("Authorization", "Bearer good")
	result = guarded(context.Background(), req)
	assert.Equal(t, http.StatusOK, result.Status)
}

func TestNilHandlerResultBecomesInternalError(t *testing.T) {
	rs := testResource()
	rs.List = func(ctx context.Context, req *Request) *Result { return nil }
	w, _ := invoke(t, rs, http.MethodGet, "/api/news")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestFailMapsTypedErrors(t *testing.T) {
	result := Fail(appErrors.Validation([]string{"a", "b"}))
	assert.Equal(t, http.StatusBadRequest, result.Status)
	assert.Len(t, result.Envelope.Errors, 2)

	result = Fail(errors.New("plain"))
	assert.Equal(t, http.StatusInternalServerError, result.Status)
	assert.Equal(t, appErrors.ErrInternal.Message, result.Envelope.Error)
}
