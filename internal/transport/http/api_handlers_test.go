package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	stdhttp "net/http"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/parlorchat/parlor-server/internal/proto"
	"github.com/parlorchat/parlor-server/internal/store"
)

func seedMessage(t *testing.T, st store.MessageStore, username, text string) {
	t.Helper()

	if _, err := st.AppendMessage(context.Background(), &store.Message{
		Username:  username,
		Color:     "#e74c3c",
		Text:      text,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed message: %v", err)
	}
}

func TestListMessagesEndpoint(t *testing.T) {
	ts, st := startTestServer(t)

	seedMessage(t, st, "alice", "one")
	seedMessage(t, st, "bob", "two")

	resp, err := ts.Client().Get(ts.URL + "/api/messages")
	if err != nil {
		t.Fatalf("get messages: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var messages []proto.WireMessage
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Text != "one" || messages[1].Text != "two" {
		t.Fatalf("unexpected order: %+v", messages)
	}
}

func TestClearMessagesRequiresAdminKey(t *testing.T) {
	ts, st := startTestServer(t)
	seedMessage(t, st, "alice", "keep me")

	req, _ := stdhttp.NewRequest(stdhttp.MethodDelete, ts.URL+"/api/messages", nil)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("delete without key: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", resp.StatusCode)
	}

	rows, err := st.ListMessages(context.Background())
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("log must be untouched after rejected clear, got %d rows", len(rows))
	}
}

func TestClearMessagesEndpoint(t *testing.T) {
	ts, st := startTestServer(t)
	seedMessage(t, st, "alice", "doomed")

	req, _ := stdhttp.NewRequest(stdhttp.MethodDelete, ts.URL+"/api/messages", nil)
	req.Header.Set("X-Admin-Key", "test-admin-key")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("delete messages: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["message"] != "chat history cleared" {
		t.Fatalf("unexpected confirmation: %+v", body)
	}

	rows, err := st.ListMessages(context.Background())
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty log after clear, got %d rows", len(rows))
	}
}

func TestUploadEndpoint(t *testing.T) {
	ts, _ := startTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "a.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("not really a png")); err != nil {
		t.Fatalf("write file content: %v", err)
	}
	writer.Close()

	resp, err := ts.Client().Post(ts.URL+"/upload", writer.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var upload UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&upload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if upload.FileName != "a.png" {
		t.Fatalf("unexpected file name: %q", upload.FileName)
	}
	if !strings.HasPrefix(upload.FileURL, "/uploads/") || !strings.HasSuffix(upload.FileURL, "-a.png") {
		t.Fatalf("unexpected file url: %q", upload.FileURL)
	}

	// The stored file must be served back under /uploads.
	served, err := ts.Client().Get(ts.URL + upload.FileURL)
	if err != nil {
		t.Fatalf("fetch uploaded file: %v", err)
	}
	defer served.Body.Close()
	if served.StatusCode != stdhttp.StatusOK {
		t.Fatalf("unexpected status fetching upload: %d", served.StatusCode)
	}
	content, _ := io.ReadAll(served.Body)
	if string(content) != "not really a png" {
		t.Fatalf("unexpected served content: %q", content)
	}
}

func TestUploadRequiresFile(t *testing.T) {
	ts, _ := startTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.Close()

	resp, err := ts.Client().Post(ts.URL+"/upload", writer.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400 without file, got %d", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ts, _ := startTestServer(t)

	conn := dialWS(ctx, t, ts.URL)
	defer conn.Close(websocket.StatusNormalClosure, "done")
	readEvent(ctx, t, conn, proto.EventChatHistory) // registration completed

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	content, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(content), "parlor_connections 1") {
		t.Fatalf("expected parlor_connections 1 in metrics output")
	}
}

func TestOTPEndpoints(t *testing.T) {
	ts, _ := startTestServer(t)

	body := bytes.NewBufferString(`{"contact":"+15551234567"}`)
	resp, err := ts.Client().Post(ts.URL+"/api/otp/request", "application/json", body)
	if err != nil {
		t.Fatalf("request code: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	// An arbitrary code must not verify.
	body = bytes.NewBufferString(`{"contact":"+15551234567","code":"000000","username":"alice"}`)
	resp, err = ts.Client().Post(ts.URL+"/api/otp/verify", "application/json", body)
	if err != nil {
		t.Fatalf("verify code: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong code, got %d", resp.StatusCode)
	}
}
