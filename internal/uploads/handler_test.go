package uploads

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cvmentor-backend/internal/analyses"
	"cvmentor-backend/internal/gemini"
	"cvmentor-backend/internal/mentees"
	"cvmentor-backend/internal/resumes"
	"cvmentor-backend/internal/shared/storage/object/local"
)

const mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type stubAnalyzer struct {
	resp gemini.Response
	err  error
	got  gemini.Request
}

func (s *stubAnalyzer) Analyze(_ context.Context, req gemini.Request) (gemini.Response, error) {
	s.got = req
	return s.resp, s.err
}

type pipelineFixture struct {
	router   *gin.Engine
	analyzer *stubAnalyzer
	mentees  *mentees.MemoryRepo
	resumes  *resumes.MemoryRepo
	analyses *analyses.MemoryRepo
	storeDir string
}

func newPipelineFixture(t *testing.T, analyzer *stubAnalyzer) *pipelineFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storeDir := t.TempDir()
	store := local.New(storeDir, "http://localhost:8080")
	menteeRepo := mentees.NewMemoryRepo()
	resumeRepo := resumes.NewMemoryRepo()
	analysisRepo := analyses.NewMemoryRepo(resumeRepo, menteeRepo)

	service := NewService(store, menteeRepo, resumeRepo, analysisRepo, analyzer)
	router := gin.New()
	api := router.Group("/api/v1")
	NewHandler(service).RegisterRoutes(api)

	return &pipelineFixture{
		router:   router,
		analyzer: analyzer,
		mentees:  menteeRepo,
		resumes:  resumeRepo,
		analyses: analysisRepo,
		storeDir: storeDir,
	}
}

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>")
		body.WriteString(p)
		body.WriteString("</w:t></w:r></w:p>")
	}
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() +
		`</w:body></w:document>`

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/></Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`,
		"word/document.xml": document,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func buildUploadRequest(t *testing.T, fileName, contentType string, data []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write file part: %v", err)
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			t.Fatalf("WriteField %s: %v", name, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeErrorCode(t *testing.T, body []byte) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	return payload.Error.Code
}

func TestUploadPipelineEndToEnd(t *testing.T) {
	analyzer := &stubAnalyzer{
		resp: gemini.Response{
			Result:  map[string]any{"fit": "high", "skills": []any{"Go"}},
			RawText: `{"fit":"high","skills":["Go"]}`,
		},
	}
	fx := newPipelineFixture(t, analyzer)

	req := buildUploadRequest(t, "my resume.docx", mimeDOCX,
		buildDocx(t, "Ann Example", "Backend Developer at Acme"),
		map[string]string{
			"email":      "a@x.com",
			"name":       "Ann",
			"targetRole": "Backend Developer",
		})
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		AnalysisID int `json:"analysisId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.AnalysisID != 1 {
		t.Fatalf("expected analysisId 1, got %d", resp.AnalysisID)
	}

	if fx.mentees.Len() != 1 || fx.resumes.Len() != 1 || fx.analyses.Len() != 1 {
		t.Fatalf("expected one row per table, got mentees=%d resumes=%d analyses=%d",
			fx.mentees.Len(), fx.resumes.Len(), fx.analyses.Len())
	}

	if analyzer.got.TargetRole != "Backend Developer" {
		t.Fatalf("unexpected target role: %q", analyzer.got.TargetRole)
	}
	if !strings.Contains(analyzer.got.Text, "Ann Example") {
		t.Fatalf("expected extracted text in prompt, got %q", analyzer.got.Text)
	}
	if analyzer.got.IsChat {
		t.Fatal("upload pipeline must use assessment mode")
	}

	view, err := fx.analyses.GetView(context.Background(), resp.AnalysisID)
	if err != nil {
		t.Fatalf("GetView: %v", err)
	}
	if view.Mentee.Email != "a@x.com" {
		t.Fatalf("unexpected mentee email: %q", view.Mentee.Email)
	}
	var result map[string]any
	if err := json.Unmarshal(view.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result["fit"] != "high" {
		t.Fatalf("expected fit high, got %v", result["fit"])
	}
	if _, ok := result["tracks"].([]any); !ok {
		t.Fatalf("expected normalized tracks, got %v", result["tracks"])
	}

	if !strings.Contains(view.Resume.FileURL, "/files/cv/") {
		t.Fatalf("unexpected file url: %q", view.Resume.FileURL)
	}
	stored, err := filepath.Glob(filepath.Join(fx.storeDir, "cv", "*-my_resume.docx"))
	if err != nil || len(stored) != 1 {
		t.Fatalf("expected one stored blob, got %v (err %v)", stored, err)
	}
	if info, err := os.Stat(stored[0]); err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty blob, got %v (err %v)", info, err)
	}
}

func TestUploadRejectsUnsupportedFileType(t *testing.T) {
	fx := newPipelineFixture(t, &stubAnalyzer{})

	req := buildUploadRequest(t, "resume.txt", "text/plain", []byte("plain text resume"),
		map[string]string{"email": "a@x.com"})
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := decodeErrorCode(t, rec.Body.Bytes()); code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", code)
	}
	if fx.mentees.Len() != 0 || fx.resumes.Len() != 0 || fx.analyses.Len() != 0 {
		t.Fatalf("expected no rows, got mentees=%d resumes=%d analyses=%d",
			fx.mentees.Len(), fx.resumes.Len(), fx.analyses.Len())
	}
}

func TestUploadRequiresEmail(t *testing.T) {
	fx := newPipelineFixture(t, &stubAnalyzer{})

	req := buildUploadRequest(t, "resume.docx", mimeDOCX, buildDocx(t, "hello"), nil)
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec.Body.Bytes()); code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", code)
	}
	if fx.mentees.Len() != 0 {
		t.Fatalf("expected no mentee rows, got %d", fx.mentees.Len())
	}
}

func TestUploadRequiresFile(t *testing.T) {
	fx := newPipelineFixture(t, &stubAnalyzer{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("email", "a@x.com"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUploadReportsUpstreamFailure(t *testing.T) {
	analyzer := &stubAnalyzer{err: errors.New("model unavailable")}
	fx := newPipelineFixture(t, analyzer)

	req := buildUploadRequest(t, "resume.docx", mimeDOCX, buildDocx(t, "hello"),
		map[string]string{"email": "a@x.com"})
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := decodeErrorCode(t, rec.Body.Bytes()); code != "upstream_error" {
		t.Fatalf("expected upstream_error, got %q", code)
	}
	// Rows written before the upstream call stay behind; only the analysis
	// row is missing.
	if fx.mentees.Len() != 1 || fx.resumes.Len() != 1 {
		t.Fatalf("expected mentee and resume rows, got mentees=%d resumes=%d",
			fx.mentees.Len(), fx.resumes.Len())
	}
	if fx.analyses.Len() != 0 {
		t.Fatalf("expected no analysis rows, got %d", fx.analyses.Len())
	}
}

func TestServiceDefaultsTargetRole(t *testing.T) {
	analyzer := &stubAnalyzer{resp: gemini.Response{Result: map[string]any{}}}
	fx := newPipelineFixture(t, analyzer)

	req := buildUploadRequest(t, "resume.docx", mimeDOCX, buildDocx(t, "hello"),
		map[string]string{"email": "a@x.com"})
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if analyzer.got.TargetRole != "General" {
		t.Fatalf("expected default target role, got %q", analyzer.got.TargetRole)
	}
}

func TestServiceTruncatesLongText(t *testing.T) {
	analyzer := &stubAnalyzer{resp: gemini.Response{Result: map[string]any{}}}
	fx := newPipelineFixture(t, analyzer)

	long := strings.Repeat("experience with distributed systems ", 1000)
	req := buildUploadRequest(t, "resume.docx", mimeDOCX, buildDocx(t, long),
		map[string]string{"email": "a@x.com"})
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(analyzer.got.Text) != maxPromptChars {
		t.Fatalf("expected prompt cut to %d chars, got %d", maxPromptChars, len(analyzer.got.Text))
	}

	// The resume row keeps the full extracted text.
	resume, err := fx.resumes.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(resume.TextContent) <= maxPromptChars {
		t.Fatalf("expected untruncated stored text, got %d chars", len(resume.TextContent))
	}
}
