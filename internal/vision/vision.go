// Package vision identifies road signs in photos through a vision-capable
// LLM.
package vision

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/roadsign/internal/errs"
	"github.com/abhisek/roadsign/internal/llm"
)

// PurposeRecognize labels recognition calls in the LLM request log.
const PurposeRecognize = "recognize-sign"

// Image is a picture submitted for recognition.
type Image struct {
	MediaType string
	Data      []byte
}

// Validate rejects empty payloads and non-image media types.
func (img Image) Validate() error {
	if len(img.Data) == 0 {
		return fmt.Errorf("image is empty: %w", errs.ErrInvalidArgument)
	}
	if !strings.HasPrefix(img.MediaType, "image/") {
		return fmt.Errorf("media type %q is not an image: %w", img.MediaType, errs.ErrInvalidArgument)
	}
	return nil
}

// Recognizer describes the signs visible in an image.
type Recognizer interface {
	Recognize(ctx context.Context, img Image) (string, error)
}

// LLMRecognizer implements Recognizer with a single free-text LLM call.
type LLMRecognizer struct {
	provider  llm.Provider
	maxTokens int
}

// New creates an LLMRecognizer.
func New(provider llm.Provider) *LLMRecognizer {
	return &LLMRecognizer{provider: provider, maxTokens: 1024}
}

// Recognize returns the model's French description of the signs found.
func (r *LLMRecognizer) Recognize(ctx context.Context, img Image) (string, error) {
	if err := img.Validate(); err != nil {
		return "", err
	}

	ctx = llm.WithPurpose(ctx, PurposeRecognize)

	resp, err := r.provider.Generate(ctx, llm.Request{
		System: recognizerPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: "Analyse les panneaux de cette image.",
			Images:  []llm.Image{{MediaType: img.MediaType, Data: img.Data}},
		}},
		MaxTokens: r.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: recognize sign: %w", errs.ErrGeneration, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty recognition result", errs.ErrGeneration)
	}
	return text, nil
}

const recognizerPrompt = `## Rôle : Expert certifié en signalisation routière

Tu connais parfaitement le code de la route français.

### Instructions
1. Identifie tous les panneaux visibles sur l'image.
2. Pour chaque panneau, donne son code officiel (ex. AB3a, B1), sa catégorie, sa signification, l'action attendue, le contexte et les sanctions éventuelles.
3. Si aucun panneau n'est visible, réponds "Aucun panneau reconnu", explique pourquoi (qualité, obstacle, angle) et donne un conseil.

### Format pour chaque panneau
🚦 [Code] | Catégorie : [Type]
📖 Signification : [3 à 6 mots]
❗ Action : [Consigne claire]
📍 Contexte : [Où et pourquoi]
⚖️ Sanctions : [Si applicable]
💡 Détails : [1 ou 2 phrases]

### Format sans panneau
🔍 Aucun panneau détecté
📸 Analyse : [Raison]
💡 Conseil : [Astuce pratique]`
