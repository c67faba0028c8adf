package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/testutil"
)

func assertErrorResponse(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	testutil.AssertStatusCode(t, rr, status)
	if ct := rr.Result().Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected content type application/json, got %q", ct)
	}

	response := testutil.ParseJSONResponse(t, rr.Body.Bytes())
	testutil.AssertEqual(t, message, response["error"], "error message")
}

// authedRequest attaches an authenticated user id the way the auth
// middleware does.
func authedRequest(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(SetUserIDInContext(req.Context(), userID))
}
