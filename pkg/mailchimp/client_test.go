package mailchimp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"

	"go.miloapis.com/email-provider-mailchimp/pkg/version"
)

// recorder is a fake API endpoint. It records the last request and answers
// with a canned body.
type recorder struct {
	t        *testing.T
	path     string
	response string
	status   int
	calls    int
	body     map[string]any
}

func newRecorder(t *testing.T, path, response string) (*recorder, *Client) {
	t.Helper()
	rec := &recorder{t: t, path: path, response: response, status: http.StatusOK}
	ts := httptest.NewServer(rec)
	t.Cleanup(ts.Close)

	client, err := NewSDK("test-key-us9", WithBaseURL(ts.URL))
	if err != nil {
		t.Fatalf("NewSDK() failed: %v", err)
	}
	return rec, client
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec.calls++
	if r.Method != http.MethodPost {
		rec.t.Errorf("Expected POST request, got %s", r.Method)
	}
	if rec.path != "" && r.URL.Path != rec.path {
		rec.t.Errorf("Expected path %s, got %s", rec.path, r.URL.Path)
	}
	rec.body = map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&rec.body); err != nil {
		rec.t.Errorf("Failed to decode request body: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rec.status)
	if _, err := w.Write([]byte(rec.response)); err != nil {
		rec.t.Errorf("Failed to write response: %v", err)
	}
}

// opts returns a nested parameter object of the last request.
func (rec *recorder) opts(key string) map[string]any {
	rec.t.Helper()
	m, ok := rec.body[key].(map[string]any)
	if !ok {
		rec.t.Fatalf("Expected %s to be an object, got %T", key, rec.body[key])
	}
	return m
}

func TestNewSDK(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		opts    []ClientOption
		wantURL string
		wantErr bool
	}{
		{
			name:    "Key with datacenter",
			apiKey:  "abc123-us2",
			wantURL: "https://us2.api.mailchimp.com/2.0",
		},
		{
			name:    "Key without datacenter",
			apiKey:  "abc123",
			wantURL: "https://us1.api.mailchimp.com/2.0",
		},
		{
			name:    "Custom base URL",
			apiKey:  "abc123-us2",
			opts:    []ClientOption{WithBaseURL("http://localhost:8080/2.0/")},
			wantURL: "http://localhost:8080/2.0",
		},
		{
			name:    "Missing API key",
			apiKey:  "",
			wantErr: true,
		},
		{
			name:    "Missing Base URL",
			apiKey:  "abc123-us2",
			opts:    []ClientOption{WithBaseURL("")},
			wantErr: true,
		},
		{
			name:    "Nil HTTP client",
			apiKey:  "abc123-us2",
			opts:    []ClientOption{WithHTTPClient(nil)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSDK(tt.apiKey, tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSDK() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got == nil {
				t.Fatal("NewSDK() returned nil client")
			}
			if got.BaseURL() != tt.wantURL {
				t.Errorf("Expected base URL %s, got %s", tt.wantURL, got.BaseURL())
			}
		})
	}
}

func TestDatacenter(t *testing.T) {
	tests := map[string]string{
		"abc-us2":      "us2",
		"abc-def-us13": "us13",
		"abc":          "us1",
		"abc-":         "us1",
	}
	for key, want := range tests {
		if got := Datacenter(key); got != want {
			t.Errorf("Datacenter(%q) = %s, expected %s", key, got, want)
		}
	}
}

func TestClient_Call(t *testing.T) {
	var gotHeaders http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		if r.URL.Path != "/lists/activity.json" {
			t.Errorf("Expected path /lists/activity.json, got %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		if body["apikey"] != "test-key-us9" {
			t.Errorf("Expected apikey in body, got %v", body["apikey"])
		}
		if body["id"] != "list-1" {
			t.Errorf("Expected id list-1, got %v", body["id"])
		}
		if _, err := w.Write([]byte(`[{"day":"2024-01-01","emails_sent":3}]`)); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	}))
	defer ts.Close()

	client, _ := NewSDK("test-key-us9", WithBaseURL(ts.URL))
	activity, err := client.GetListActivity(context.Background(), "list-1")
	if err != nil {
		t.Fatalf("GetListActivity() failed: %v", err)
	}
	if len(activity) != 1 || activity[0].EmailsSent != 3 {
		t.Errorf("Unexpected activity: %+v", activity)
	}
	if gotHeaders.Get("Content-Type") != "application/json" {
		t.Errorf("Expected JSON content type, got %s", gotHeaders.Get("Content-Type"))
	}
	if gotHeaders.Get("User-Agent") != version.UserAgent() {
		t.Errorf("Expected User-Agent %s, got %s", version.UserAgent(), gotHeaders.Get("User-Agent"))
	}
}

func TestClient_Errors(t *testing.T) {
	// The API reports most failures with a 500 and a JSON body.
	rec, client := newRecorder(t, "/lists/unsubscribe.json",
		`{"status":"error","code":232,"name":"Email_NotExists","error":"There is no record of \"a@b.c\" in the database"}`)
	rec.status = http.StatusInternalServerError

	_, err := client.Unsubscribe(context.Background(), "list-1", EmailParameter{Email: "a@b.c"}, nil)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !IsNotFound(err) {
		t.Errorf("Expected IsNotFound to be true, got error: %v", err)
	}
	apiErr, ok := asError(err)
	if !ok {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if apiErr.Code != 232 || apiErr.Name != ErrorNameEmailNotExists {
		t.Errorf("Unexpected error fields: %+v", apiErr)
	}

	// An error body with a 200 status is still an error.
	rec.path = ""
	rec.status = http.StatusOK
	rec.response = `{"status":"error","code":104,"name":"Invalid_ApiKey","error":"Invalid MailChimp API key"}`
	_, err = client.GetLists(context.Background(), nil)
	if err == nil || !IsInvalidAPIKey(err) {
		t.Errorf("Expected IsInvalidAPIKey to be true, got: %v", err)
	}

	rec.response = `{"status":"error","code":-100,"name":"ValidationError","error":"bad"}`
	_, err = client.GetLists(context.Background(), nil)
	if err == nil || !IsValidationError(err) || !IsBadRequest(err) {
		t.Errorf("Expected IsValidationError to be true, got: %v", err)
	}

	rec.response = `{"status":"error","code":214,"name":"List_AlreadySubscribed","error":"already"}`
	_, err = client.Subscribe(context.Background(), "list-1", EmailParameter{Email: "a@b.c"}, nil)
	if err == nil || !IsAlreadySubscribed(err) {
		t.Errorf("Expected IsAlreadySubscribed to be true, got: %v", err)
	}

	// Test Error String
	apiErr = &Error{StatusCode: 418, Body: "I'm a teapot"}
	if apiErr.Error() != "api request failed with status 418: I'm a teapot" {
		t.Errorf("Unexpected error string: %s", apiErr.Error())
	}
	apiErr = &Error{StatusCode: 500, Code: 200, Name: "List_DoesNotExist", Message: "Invalid MailChimp List ID"}
	if apiErr.Error() != "api request failed with status 500: List_DoesNotExist (code 200): Invalid MailChimp List ID" {
		t.Errorf("Unexpected error string: %s", apiErr.Error())
	}
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	rec, client := newRecorder(t, "", "<html>Bad Gateway</html>")
	rec.status = http.StatusBadGateway

	_, err := client.GetLists(context.Background(), nil)
	apiErr, ok := asError(err)
	if !ok {
		t.Fatalf("Expected *Error, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Name != "" {
		t.Errorf("Unexpected error fields: %+v", apiErr)
	}
	if !strings.Contains(apiErr.Error(), "Bad Gateway") {
		t.Errorf("Expected body in error string, got %s", apiErr.Error())
	}
}

func TestClient_NetworkErrors(t *testing.T) {
	// NewRequestWithContext checks URL parsing.
	client, _ := NewSDK("test-key", WithBaseURL("http://[::1]:namedport"))
	_, err := client.GetLists(context.Background(), nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}

	client2, _ := NewSDK("test-key", WithBaseURL("http://127.0.0.1:0"))
	_, err2 := client2.GetLists(context.Background(), nil)
	if err2 == nil {
		t.Error("Expected error for connection refusal")
	}
}

func TestClient_DecodeErrors(t *testing.T) {
	_, client := newRecorder(t, "", `{invalid-json}`)
	_, err := client.GetLists(context.Background(), nil)
	if err == nil {
		t.Error("Expected error for invalid JSON response")
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	_, client := newRecorder(t, "", `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.GetLists(ctx, nil); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestWithHTTPClient(t *testing.T) {
	customClient := &http.Client{Timeout: 5 * time.Second}
	sdk, _ := NewSDK("key", WithHTTPClient(customClient))
	if sdk == nil {
		t.Fatal("SDK should not be nil")
	}
	if sdk.httpClient != customClient {
		t.Error("Expected custom HTTP client to be used")
	}
}

func TestWithLogger(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"msg":"Everything's Chimpy!"}`)); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	}))
	defer ts.Close()

	client, _ := NewSDK("key", WithBaseURL(ts.URL), WithLogger(logger))
	if msg := client.Ping(context.Background()); !msg.OK() {
		t.Fatalf("Expected ping to succeed, got %s", msg.Msg)
	}

	if len(lines) == 0 {
		t.Fatal("Expected the call to be logged")
	}
	if !strings.Contains(lines[len(lines)-1], `"method"="helper/ping"`) {
		t.Errorf("Expected method in log line, got %s", lines[len(lines)-1])
	}
	if !strings.Contains(lines[len(lines)-1], `"requestID"`) {
		t.Errorf("Expected requestID in log line, got %s", lines[len(lines)-1])
	}
}
