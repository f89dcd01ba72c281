package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements OfferParser using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Use Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"

	// Extraction should be literal, not creative.
	model.SetTemperature(0.1)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// ParseOfferText extracts offer numbers from pasted text or a transcript.
func (p *GeminiProvider) ParseOfferText(ctx context.Context, text string) (*OfferExtract, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("gemini: empty text")
	}
	return p.generate(ctx, genai.Text(offerPrompt), genai.Text("Offer capture: "+text))
}

// ParseOfferImage extracts offer numbers from an offer screenshot.
func (p *GeminiProvider) ParseOfferImage(ctx context.Context, mimeType string, data []byte) (*OfferExtract, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("gemini: empty image")
	}
	format := strings.TrimPrefix(mimeType, "image/")
	if format == "" {
		format = "png"
	}
	return p.generate(ctx, genai.Text(offerPrompt), genai.ImageData(format, data))
}

func (p *GeminiProvider) generate(ctx context.Context, parts ...genai.Part) (*OfferExtract, error) {
	resp, err := p.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// Clean up potential markdown formatting (though json mode should handle this, safety first).
	cleanJSON := cleanJSONString(responseText.String())

	var result OfferExtract
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}

	return &result, nil
}

const offerPrompt = `Role: You extract delivery offer numbers for a gig-driver
offer calculator. The input is a screenshot, pasted text, or a spoken
transcript of a delivery offer (Spark, Instacart, DoorDash, etc.).

RULES:
1. Extract ONLY what the capture states. Never guess a value that is not shown.
2. "pay" is the total offered dollars. If base pay and tip are shown
   separately, sum them.
3. "miles" is the advertised trip distance in miles. Convert "mi"/"miles"
   text; if the capture shows kilometers, convert at 0.621371.
4. "pickups" and "drops" are stop counts. A plain single-store single-customer
   offer is 1 pickup and 1 drop; only report other counts when the capture
   says so ("2 orders", "3 stops", batched deliveries).
5. "items" is the shopping item count ("32 items"); omit for pure
   drop-off offers.
6. Omit any field the capture does not mention. Use "note" for anything
   ambiguous (e.g. distance shown per leg, currency unclear).

Output JSON schema:
{
  "pay": number | omitted,
  "pickups": integer | omitted,
  "drops": integer | omitted,
  "miles": number | omitted,
  "items": integer | omitted,
  "note": "string | omitted"
}`

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
