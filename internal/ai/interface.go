package ai

import (
	"context"
)

// OfferParser defines the contract for reducing raw offer captures (pasted
// text, speech transcripts, screenshots) to structured offer numbers.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.) in the future.
type OfferParser interface {
	// ParseOfferText extracts offer numbers from pasted text or a speech
	// transcript.
	ParseOfferText(ctx context.Context, text string) (*OfferExtract, error)

	// ParseOfferImage extracts offer numbers from an offer screenshot.
	// mimeType is an image MIME type such as "image/png".
	ParseOfferImage(ctx context.Context, mimeType string, data []byte) (*OfferExtract, error)
}
