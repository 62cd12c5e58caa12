package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/solpin/solpin-service/internal/pinning"
	uploadService "github.com/solpin/solpin-service/internal/services/uploads"
	"github.com/solpin/solpin-service/internal/types"
)

type mockPinner struct {
	cids    []string
	calls   int
	fail    bool
	failErr error
}

func (m *mockPinner) Pin(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	m.calls++
	if m.fail {
		if m.failErr != nil {
			return "", m.failErr
		}
		return "", fmt.Errorf("provider down")
	}
	return m.cids[m.calls-1], nil
}

type mockStorage struct {
	records []types.UploadRecord
	creates int
}

func (m *mockStorage) CreateUpload(record types.UploadRecord) (types.UploadRecord, error) {
	m.creates++
	record.ID = fmt.Sprintf("%d", m.creates)
	m.records = append(m.records, record)
	return record, nil
}

func (m *mockStorage) ListUploads(limit int) ([]types.UploadRecord, error) {
	if limit < len(m.records) {
		return m.records[:limit], nil
	}
	return m.records, nil
}

type mockPublisher struct {
	published []types.UploadRecord
}

func (m *mockPublisher) PublishUploadCreated(record types.UploadRecord) {
	m.published = append(m.published, record)
}

// multipartBody builds a form with the given fields and, when fileBytes is
// non-nil, a file part named art.png.
func multipartBody(t *testing.T, fields map[string]string, fileBytes []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := form.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field %s: %v", k, err)
		}
	}

	if fileBytes != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="file"; filename="art.png"`)
		header.Set("Content-Type", "image/png")
		part, err := form.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := part.Write(fileBytes); err != nil {
			t.Fatalf("failed to write file part: %v", err)
		}
	}

	if err := form.Close(); err != nil {
		t.Fatalf("failed to close form: %v", err)
	}

	return &buf, form.FormDataContentType()
}

func newHandler(pinner *mockPinner, store *mockStorage, publisher *mockPublisher) http.HandlerFunc {
	svc := uploadService.NewService(pinner, store, "https://ipfs.io/ipfs")
	return Upload(svc, publisher, 50<<20)
}

func TestUpload_MissingFile(t *testing.T) {
	pinner := &mockPinner{cids: []string{"cid1", "cid2"}}
	store := &mockStorage{}
	handler := newHandler(pinner, store, &mockPublisher{})

	body, contentType := multipartBody(t, map[string]string{"name": "no file here"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var parsed map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if parsed["error"] == "" {
		t.Error("expected an error string in the body")
	}
	if pinner.calls != 0 || store.creates != 0 {
		t.Error("expected no collaborator calls for a missing file")
	}
}

func TestUpload_InvalidSignature(t *testing.T) {
	pinner := &mockPinner{cids: []string{"cid1", "cid2"}}
	store := &mockStorage{}
	handler := newHandler(pinner, store, &mockPublisher{})

	body, contentType := multipartBody(t, map[string]string{
		"publicKey": "11111111111111111111111111111111",
		"message":   "prove it",
		"signature": "not-a-real-signature",
	}, []byte("png"))

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if pinner.calls != 0 || store.creates != 0 {
		t.Error("expected no collaborator calls after invalid signature")
	}
}

func TestUpload_Success(t *testing.T) {
	pinner := &mockPinner{cids: []string{"filecid", "metacid"}}
	store := &mockStorage{}
	publisher := &mockPublisher{}
	handler := newHandler(pinner, store, publisher)

	body, contentType := multipartBody(t, map[string]string{
		"name":        "Sunset",
		"description": "over the bay",
		"tags":        "sky, orange",
	}, []byte("pngbytes"))

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var parsed UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}

	if !parsed.Ok {
		t.Error("expected ok=true")
	}
	if parsed.Metadata.FileCID != "filecid" {
		t.Errorf("expected fileCid filecid, got %q", parsed.Metadata.FileCID)
	}
	if parsed.Metadata.MetadataCID != "metacid" {
		t.Errorf("expected metadataCid metacid, got %q", parsed.Metadata.MetadataCID)
	}
	if parsed.Record.Name != "Sunset" {
		t.Errorf("expected record name Sunset, got %q", parsed.Record.Name)
	}
	if parsed.Record.FileName != "art.png" {
		t.Errorf("expected fileName art.png, got %q", parsed.Record.FileName)
	}
	if parsed.Record.FileType != "image/png" {
		t.Errorf("expected fileType image/png, got %q", parsed.Record.FileType)
	}

	if len(publisher.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.published))
	}
	if publisher.published[0].ID != parsed.Record.ID {
		t.Error("expected the persisted record to be published")
	}
}

func TestUpload_StorageFailure(t *testing.T) {
	pinner := &mockPinner{fail: true}
	store := &mockStorage{}
	publisher := &mockPublisher{}
	handler := newHandler(pinner, store, publisher)

	body, contentType := multipartBody(t, nil, []byte("pngbytes"))

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if store.creates != 0 {
		t.Error("expected nothing persisted after storage failure")
	}
	if len(publisher.published) != 0 {
		t.Error("expected no events after storage failure")
	}
}

func TestUpload_ProviderFailureCarriesStatus(t *testing.T) {
	pinner := &mockPinner{
		fail:    true,
		failErr: &pinning.ProviderError{StatusCode: http.StatusBadGateway, Body: `{"message":"upstream"}`},
	}
	store := &mockStorage{}
	handler := newHandler(pinner, store, &mockPublisher{})

	body, contentType := multipartBody(t, nil, []byte("pngbytes"))

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var parsed map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if !strings.Contains(parsed["error"], "502") {
		t.Errorf("expected the provider status in the error, got %q", parsed["error"])
	}
	if !strings.Contains(parsed["error"], "upstream") {
		t.Errorf("expected the provider body in the error, got %q", parsed["error"])
	}
}

func TestList(t *testing.T) {
	now := time.Now().UTC()
	store := &mockStorage{records: []types.UploadRecord{
		{ID: "3", Name: "newest", CreatedAt: now},
		{ID: "2", Name: "middle", CreatedAt: now.Add(-time.Minute)},
		{ID: "1", Name: "oldest", CreatedAt: now.Add(-2 * time.Minute)},
	}}
	svc := uploadService.NewService(&mockPinner{}, store, "https://ipfs.io/ipfs")
	handler := List(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/uploads", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var parsed ListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if !parsed.Ok {
		t.Error("expected ok=true")
	}
	if len(parsed.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(parsed.Items))
	}

	// Newest first, descending createdAt all the way through the handler.
	wantNames := []string{"newest", "middle", "oldest"}
	for i, item := range parsed.Items {
		if item.Name != wantNames[i] {
			t.Errorf("expected item %d to be %q, got %q", i, wantNames[i], item.Name)
		}
	}
	for i := 1; i < len(parsed.Items); i++ {
		if parsed.Items[i].CreatedAt.After(parsed.Items[i-1].CreatedAt) {
			t.Errorf("items not in descending createdAt order at index %d", i)
		}
	}
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	Health()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "{\"ok\":true}\n" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}
