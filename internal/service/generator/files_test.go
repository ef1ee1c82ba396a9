package generator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFilePartImage(t *testing.T) {
	svc := NewService(&mockChat{}, nil, nil)
	part := svc.filePart(context.Background(), FileRef{
		Name: "sunset.jpg",
		Type: "image/jpeg",
		URL:  "https://example.test/sunset.jpg",
	})
	if part.OfImageURL == nil {
		t.Fatalf("expected an image part")
	}
	if part.OfImageURL.ImageURL.URL != "https://example.test/sunset.jpg" {
		t.Fatalf("unexpected image url: %s", part.OfImageURL.ImageURL.URL)
	}
	if part.OfImageURL.ImageURL.Detail != "high" {
		t.Fatalf("expected high detail hint, got %q", part.OfImageURL.ImageURL.Detail)
	}
}

func TestFilePartInlinesTextFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("line one\nline two"))
	}))
	defer server.Close()

	svc := NewService(&mockChat{}, server.Client(), nil)
	part := svc.filePart(context.Background(), FileRef{
		Name: "notes.txt",
		Type: "text/plain",
		URL:  server.URL,
	})
	if part.OfText == nil {
		t.Fatalf("expected a text part")
	}
	want := "Content from notes.txt:\nline one\nline two"
	if part.OfText.Text != want {
		t.Fatalf("unexpected inline content: %q", part.OfText.Text)
	}
}

func TestFilePartFetchStatusFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewService(&mockChat{}, server.Client(), nil)
	part := svc.filePart(context.Background(), FileRef{
		Name: "notes.md",
		Type: "text/markdown",
		URL:  server.URL,
	})
	if part.OfText == nil {
		t.Fatalf("expected a text part")
	}
	if part.OfText.Text != "[File attached: notes.md - could not fetch content]" {
		t.Fatalf("unexpected marker: %q", part.OfText.Text)
	}
}

func TestFilePartTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	svc := NewService(&mockChat{}, &http.Client{}, nil)
	part := svc.filePart(context.Background(), FileRef{
		Name: "notes.txt",
		Type: "text/plain",
		URL:  server.URL,
	})
	if part.OfText == nil {
		t.Fatalf("expected a text part")
	}
	if part.OfText.Text != "[File attached: notes.txt - could not process content]" {
		t.Fatalf("unexpected marker: %q", part.OfText.Text)
	}
}

func TestFilePartOpaqueTypes(t *testing.T) {
	svc := NewService(&mockChat{}, nil, nil)

	part := svc.filePart(context.Background(), FileRef{Name: "report.pdf", Type: "application/pdf"})
	if part.OfText == nil || part.OfText.Text != "[File attached: report.pdf]" {
		t.Fatalf("unexpected marker for pdf: %#v", part.OfText)
	}

	part = svc.filePart(context.Background(), FileRef{Type: "application/zip"})
	if part.OfText == nil || part.OfText.Text != "[File attached: unknown]" {
		t.Fatalf("expected unknown placeholder name, got %#v", part.OfText)
	}
}

func TestGenerateQuoteFileClassificationOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fetched body"))
	}))
	defer server.Close()

	chat := &mockChat{resp: "fine"}
	svc := NewService(chat, server.Client(), nil)

	svc.GenerateQuote(context.Background(), QuoteRequest{
		Text: "context",
		Files: []FileRef{
			{Name: "pic.png", Type: "image/png", URL: "https://example.test/pic.png"},
			{Name: "doc.txt", Type: "text/plain", URL: server.URL},
			{Name: "arch.zip", Type: "application/zip"},
		},
	})

	parts := chat.params.Messages[1].OfUser.Content.OfArrayOfContentParts
	if len(parts) != 4 {
		t.Fatalf("expected text + 3 file parts, got %d", len(parts))
	}
	if parts[0].OfText == nil || parts[0].OfText.Text != "Text content: context" {
		t.Fatalf("expected leading text part, got %#v", parts[0])
	}
	if parts[1].OfImageURL == nil {
		t.Fatalf("expected image part second, got %#v", parts[1])
	}
	if parts[2].OfText == nil || parts[2].OfText.Text != "Content from doc.txt:\nfetched body" {
		t.Fatalf("expected inlined text third, got %#v", parts[2])
	}
	if parts[3].OfText == nil || parts[3].OfText.Text != "[File attached: arch.zip]" {
		t.Fatalf("expected opaque marker last, got %#v", parts[3])
	}
}

func TestFilePartOpaqueBatchStillBuildsMessage(t *testing.T) {
	chat := &mockChat{resp: "fine"}
	svc := NewService(chat, nil, nil)

	// A batch of opaque files still yields a user message.
	svc.GenerateQuote(context.Background(), QuoteRequest{
		Files: []FileRef{{Name: "a.bin", Type: "application/octet-stream"}},
	})
	parts := chat.params.Messages[1].OfUser.Content.OfArrayOfContentParts
	if len(parts) != 1 {
		t.Fatalf("expected one part, got %d", len(parts))
	}
	if !strings.Contains(parts[0].OfText.Text, "a.bin") {
		t.Fatalf("expected marker naming the file, got %q", parts[0].OfText.Text)
	}
}
