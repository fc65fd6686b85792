package testutil_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/broady/watson"
	"github.com/broady/watson/testutil"
)

type Widget struct {
	Name string `json:"name" validate:"required"`
}

// TestServer_RecordsRequest shows the round trip a client test makes:
// register a canned response, call the service, then assert on what was sent.
func TestServer_RecordsRequest(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/widgets/a%2Fb", http.StatusCreated, `{"name":"gear"}`)

	svc, err := watson.NewService("widgets", "v1", &watson.ServiceOptions{URL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	b := svc.NewRequest(http.MethodPost).
		ResolvePath("/v1/widgets/{id}", map[string]string{"id": "a/b"}).
		AddQuery("dry_run", "true").
		AddHeader("X-Watson-Learning-Opt-Out", "true").
		SetJSONBody(&Widget{Name: "gear"})

	w, resp, err := watson.Invoke[Widget](context.Background(), svc, svc.Operation("create_widget"), b)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated || w.Name != "gear" {
		t.Errorf("unexpected result %d %+v", resp.StatusCode, w)
	}

	req := srv.LastRequest()
	testutil.AssertRequest(t, req, "POST", "/v1/widgets/a%2Fb")
	testutil.AssertQuery(t, req, "dry_run", "true")
	testutil.AssertNoQuery(t, req, "version")
	testutil.AssertHeader(t, req, "X-Watson-Learning-Opt-Out", "true")
	testutil.AssertJSONBody(t, req, &Widget{Name: "gear"})
}

func TestServer_NoRoute(t *testing.T) {
	srv := testutil.NewServer(t)

	resp, err := http.Get(srv.URL + "/v1/missing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "no route for GET /v1/missing") {
		t.Errorf("unexpected body %s", body)
	}
	if n := len(srv.Requests()); n != 1 {
		t.Errorf("expected 1 recorded request, got %d", n)
	}
}

func TestServer_ResponseHeaders(t *testing.T) {
	srv := testutil.NewServer(t).HandleResponse("DELETE", "/v1/widgets/1", testutil.Response{
		Status:  http.StatusNoContent,
		Headers: map[string]string{"X-Global-Transaction-Id": "tx-1"},
	})

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/widgets/1", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Global-Transaction-Id"); got != "tx-1" {
		t.Errorf("expected transaction header, got %q", got)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		t.Errorf("empty response should have no Content-Type, got %q", ct)
	}
}

func TestRecordedRequest_Multipart(t *testing.T) {
	srv := testutil.NewServer(t).Handle("POST", "/v1/upload", http.StatusOK, `{}`)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "words.txt")
	io.WriteString(fw, "hello\nworld\n")
	mw.WriteField("name", "vocab")
	mw.Close()

	resp, err := http.Post(srv.URL+"/v1/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	parts := srv.LastRequest().Multipart(t)
	if got := parts["file"]; got.Filename != "words.txt" || string(got.Body) != "hello\nworld\n" {
		t.Errorf("unexpected file part %+v", got)
	}
	if got := string(parts["name"].Body); got != "vocab" {
		t.Errorf("unexpected name part %q", got)
	}
}
