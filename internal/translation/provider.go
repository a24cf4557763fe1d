package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrRateLimited is returned by a provider that asked us to back off.
var ErrRateLimited = errors.New("translation provider rate limited")

// Provider translates English text into the target language.
type Provider interface {
	Name() string
	Translate(ctx context.Context, text, target string) (string, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func doJSON(client httpDoer, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GoogleWeb calls the unauthenticated translate_a endpoint used by the web widget.
type GoogleWeb struct {
	BaseURL string
	Client  httpDoer
}

func (g *GoogleWeb) Name() string { return "google" }

func (g *GoogleWeb) Translate(ctx context.Context, text, target string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", SourceLanguage)
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	// response is [[["translated","source",...],...],...]
	var raw []any
	if err := doJSON(g.Client, req, &raw); err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", errors.New("empty response")
	}
	segments, ok := raw[0].([]any)
	if !ok {
		return "", errors.New("unexpected response shape")
	}
	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			sb.WriteString(s)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no translation in response")
	}
	return sb.String(), nil
}

// MyMemory calls the public MyMemory API.
type MyMemory struct {
	BaseURL string
	Client  httpDoer
}

func (m *MyMemory) Name() string { return "mymemory" }

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus json.Number `json:"responseStatus"`
}

func (m *MyMemory) Translate(ctx context.Context, text, target string) (string, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", SourceLanguage+"|"+target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	var out myMemoryResponse
	if err := doJSON(m.Client, req, &out); err != nil {
		return "", err
	}
	switch out.ResponseStatus.String() {
	case "200":
	case "429":
		return "", ErrRateLimited
	default:
		return "", fmt.Errorf("mymemory status %s", out.ResponseStatus)
	}
	if out.ResponseData.TranslatedText == "" {
		return "", errors.New("no translation in response")
	}
	return out.ResponseData.TranslatedText, nil
}

// Libre calls a LibreTranslate instance.
type Libre struct {
	BaseURL string
	APIKey  string
	Client  httpDoer
}

func (l *Libre) Name() string { return "libretranslate" }

func (l *Libre) Translate(ctx context.Context, text, target string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"q":       text,
		"source":  SourceLanguage,
		"target":  target,
		"format":  "text",
		"api_key": l.APIKey,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := doJSON(l.Client, req, &out); err != nil {
		return "", err
	}
	if out.TranslatedText == "" {
		return "", errors.New("no translation in response")
	}
	return out.TranslatedText, nil
}
