package generator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
)

// FileRef points at an uploaded attachment accompanying a generation request.
type FileRef struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Text file types are fetched and inlined rather than referenced.
func isInlineTextType(mime string) bool {
	return mime == "text/plain" || mime == "text/markdown"
}

// filePart classifies one attachment into a user-message content part:
// images become image references with a high-detail hint, plain-text and
// markdown files are fetched and inlined, and everything else degrades to
// an opaque marker. Fetch failures degrade to a marker too; a file never
// aborts the request.
func (s *Service) filePart(ctx context.Context, f FileRef) openai.ChatCompletionContentPartUnionParam {
	name := f.Name
	if name == "" {
		name = "unknown"
	}
	switch {
	case f.Type == "":
		return openai.TextContentPart(fmt.Sprintf("[File attached: %s]", name))
	case strings.HasPrefix(f.Type, "image/"):
		return openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL:    f.URL,
			Detail: "high",
		})
	case isInlineTextType(f.Type):
		body, err := s.fetchText(ctx, f.URL)
		if err != nil {
			if err == errFetchStatus {
				return openai.TextContentPart(fmt.Sprintf("[File attached: %s - could not fetch content]", name))
			}
			return openai.TextContentPart(fmt.Sprintf("[File attached: %s - could not process content]", name))
		}
		return openai.TextContentPart(fmt.Sprintf("Content from %s:\n%s", name, body))
	default:
		return openai.TextContentPart(fmt.Sprintf("[File attached: %s]", name))
	}
}

// errFetchStatus distinguishes a reachable-but-unsuccessful fetch from a
// transport failure; the two degrade to different markers.
var errFetchStatus = fmt.Errorf("fetch returned non-success status")

func (s *Service) fetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build fetch request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errFetchStatus
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read file body: %w", err)
	}
	return string(body), nil
}
