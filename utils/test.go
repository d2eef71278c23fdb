package utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRequest represents a test HTTP request
type TestRequest struct {
	Method  string
	Path    string
	Body    interface{}
	RawBody []byte
	Headers map[string]string
}

// TestResponse represents a test HTTP response
type TestResponse struct {
	StatusCode int
	Raw        []byte
	Body       map[string]interface{}
}

// MakeTestRequest sends req through router and decodes a JSON object body
// when there is one.
func MakeTestRequest(t *testing.T, router http.Handler, req TestRequest) TestResponse {
	t.Helper()

	body := req.RawBody
	if body == nil && req.Body != nil {
		var err error
		body, err = json.Marshal(req.Body)
		require.NoError(t, err, "marshal request body")
	}

	httpReq, err := http.NewRequest(req.Method, req.Path, bytes.NewReader(body))
	require.NoError(t, err, "create request")

	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	resp := TestResponse{StatusCode: w.Code, Raw: w.Body.Bytes()}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp.Body), "unmarshal response body")
	}
	return resp
}

// AssertResponse asserts the test response
func AssertResponse(t *testing.T, response TestResponse, expectedStatusCode int, expectedBody map[string]interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatusCode, response.StatusCode, string(response.Raw))
	if expectedBody != nil {
		assert.Equal(t, expectedBody, response.Body)
	}
}

// BearerHeader builds an Authorization header for a signed test token
func BearerHeader(t *testing.T, secret, userID string) map[string]string {
	t.Helper()
	token, err := GenerateToken(secret, userID, time.Hour)
	require.NoError(t, err, "generate test token")
	return map[string]string{"Authorization": "Bearer " + token}
}
