package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

const mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

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

func TestFromBytesDocxByMimeType(t *testing.T) {
	data := buildDocx(t, "Ann Example", "Backend Developer at Acme")

	text, err := FromBytes(context.Background(), data, mimeDOCX, "resume.docx")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !strings.Contains(text, "Ann Example") {
		t.Fatalf("expected extracted text to contain name, got %q", text)
	}
	if !strings.Contains(text, "Backend Developer at Acme") {
		t.Fatalf("expected extracted text to contain role, got %q", text)
	}
}

func TestFromBytesDocxByExtension(t *testing.T) {
	data := buildDocx(t, "hello")

	text, err := FromBytes(context.Background(), data, "application/octet-stream", "resume.DOCX")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if text != "hello" {
		t.Fatalf("expected %q, got %q", "hello", text)
	}
}

func TestFromBytesUnsupportedType(t *testing.T) {
	_, err := FromBytes(context.Background(), []byte("plain text"), "text/plain", "resume.txt")
	if err == nil {
		t.Fatal("expected error for text/plain")
	}
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestFromBytesMalformedPDF(t *testing.T) {
	if _, err := FromBytes(context.Background(), []byte("not a pdf"), "application/pdf", "resume.pdf"); err == nil {
		t.Fatal("expected error for malformed pdf")
	}
}

func TestFromBytesCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := FromBytes(ctx, nil, "application/pdf", "resume.pdf"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStripDocxXMLParagraphBreaks(t *testing.T) {
	raw := `<w:document><w:body><w:p><w:r><w:t>one</w:t></w:r></w:p><w:p><w:r><w:t>two</w:t></w:r></w:p></w:body></w:document>`
	got := stripDocxXML(raw)
	if got != "one\ntwo" {
		t.Fatalf("stripDocxXML = %q", got)
	}
}
