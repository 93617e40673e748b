// internal/recommend/explain.go
// Optional prose generation for a selected pair. The explainer is an
// external text-generation service; the pipeline must survive its
// absence and every possible failure, so every call goes through
// explainSafely and bottoms out in a deterministic template.

package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mehmet552/biletweb-online-ticket-assistant/internal/catalog"
)

// Explainer turns a profile and a selected pair into prose.
type Explainer interface {
	ExplainPair(ctx context.Context, profile UserProfile, pair []catalog.Event) (string, error)
}

// HTTPExplainer calls a text-generation service over HTTP.
type HTTPExplainer struct {
	url        string
	httpClient *http.Client
}

func NewHTTPExplainer(url string, timeout time.Duration) *HTTPExplainer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPExplainer{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (x *HTTPExplainer) ExplainPair(ctx context.Context, profile UserProfile, pair []catalog.Event) (string, error) {
	payload := struct {
		User struct {
			Name      string   `json:"name"`
			Interests []string `json:"interests_list"`
		} `json:"user"`
		Events []catalog.Event `json:"events"`
	}{Events: pair}
	payload.User.Name = profile.DisplayName
	payload.User.Interests = profile.Interests

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("explainer returned status %d", resp.StatusCode)
	}

	var result struct {
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.Comment == "" {
		return "", fmt.Errorf("explainer returned an empty comment")
	}
	return result.Comment, nil
}

// explainSafely invokes the explainer and absorbs every failure mode,
// panics included. A nil explainer or any error returns the empty
// string; the caller keeps its templated reason.
func explainSafely(ctx context.Context, explainer Explainer, profile UserProfile, pair []catalog.Event) (comment string) {
	if explainer == nil || len(pair) < 2 {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("recommend: explainer panicked: %v", r)
			comment = ""
		}
	}()

	comment, err := explainer.ExplainPair(ctx, profile, pair)
	if err != nil {
		log.Printf("recommend: explainer failed: %v", err)
		return ""
	}
	return comment
}

// templateReason builds the deterministic fallback description from
// the pair's categories and the user's interests.
func templateReason(profile UserProfile, pair []catalog.Event) string {
	if len(pair) < 2 {
		return ""
	}

	interests := strings.Join(profile.Interests, ", ")
	if interests == "" {
		interests = "Çeşitli ilgi alanları"
	}

	cat1 := pair[0].Category.Name
	if cat1 == "" {
		cat1 = "Genel"
	}
	cat2 := pair[1].Category.Name
	if cat2 == "" {
		cat2 = "Genel"
	}

	return fmt.Sprintf(
		"Bu etkinlikleri senin için seçtik:\n\n🎭 %s\n%s kategorisinde sana özel bir deneyim. %s ilgi alanına uygun, kaçırma!\n\n🎪 %s\n%s severler için harika bir fırsat.",
		pair[0].Name, cat1, interests, pair[1].Name, cat2,
	)
}
