package vertexclient

import (
	"strings"
	"testing"

	"cloud.google.com/go/vertexai/genai"
)

func TestPromptNamesLanguage(t *testing.T) {
	p := Prompt("Open an account", "ne")
	if !strings.Contains(p, "Nepali") || !strings.HasSuffix(p, "Open an account") {
		t.Fatalf("unexpected prompt %q", p)
	}
}

func TestParseTextUsesFirstCandidate(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("खाता "), genai.Text("खोल्नुहोस्")}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("other")}}},
		},
	}
	if got := parseText(resp); got != "खाता खोल्नुहोस्" {
		t.Fatalf("got %q", got)
	}
	if got := parseText(nil); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}
