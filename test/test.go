// Package test provides helpers shared by the test suites.
package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/racedesk/backend/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TmpFile returns the path to a unique file to be used as a test database.
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}

// Request performs a HTTP request against a fresh router and returns the
// response recorder.
//
// A string body is sent as-is; structs and maps are marshalled to JSON.
func Request(t *testing.T, method, url string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var byteBuffer *bytes.Buffer

	switch {
	case body == nil:
		byteBuffer = bytes.NewBuffer(nil)
	case reflect.TypeOf(body).Kind() == reflect.String:
		byteBuffer = bytes.NewBufferString(body.(string))
	case reflect.TypeOf(body).Kind() == reflect.Struct,
		reflect.TypeOf(body).Kind() == reflect.Map,
		reflect.TypeOf(body).Kind() == reflect.Slice:
		byteStr, err := json.Marshal(body)
		if err != nil {
			require.FailNow(t, "Request body could not be marshalled from struct input", err)
		}
		byteBuffer = bytes.NewBuffer(byteStr)
	default:
		// Assume we got a *bytes.Buffer, e.g. for a file
		byteBuffer = body.(*bytes.Buffer)
	}

	r := router.Router()

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, byteBuffer)

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	r.ServeHTTP(recorder, req)

	return *recorder
}

// AssertHTTPStatus checks that the recorder has one of the expected HTTP
// status codes, printing the response body when it does not.
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	assert.Contains(t, expectedStatus, r.Code, "HTTP status is wrong. Response body: %s", r.Body.String())
}

// DecodeResponse decodes the response into the target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.Unmarshal(r.Body.Bytes(), target)
	if err != nil {
		require.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v', Request ID: %s", r.Body, reflect.TypeOf(target), err, r.Result().Header.Get("x-request-id"))
	}
}
