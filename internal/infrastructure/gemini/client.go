package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/yourusername/biosmaris-storefront/internal/domain/repository"
)

const systemInstruction = `Tu es le conseiller en ligne de Bios Maris, marque de compléments alimentaires d'origine marine. Tu réponds en français, brièvement et poliment.

Règles :
1. Ne recommande QUE des produits présents dans le catalogue fourni avec la question. N'invente jamais un produit, un prix ou un ingrédient.
2. Cite le nom exact et le prix du catalogue.
3. Si aucun produit ne convient, dis-le simplement et propose d'écrire via le formulaire de contact.
4. Tu ne poses pas de diagnostic médical. Pour toute question de santé sérieuse, grossesse ou traitement en cours, conseille de consulter un professionnel de santé.
5. Aux salutations et remerciements, réponds simplement sans proposer de produits.`

type geminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	sem    chan struct{}
	mu     sync.Mutex
	last   time.Time
	delay  time.Duration
}

// Client is the assistant backend; Close releases the API connection.
type Client interface {
	repository.AIRepository
	Close() error
}

// NewGeminiClient creates the catalog assistant model.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}

	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	model := client.GenerativeModel(modelName)

	// low temperature keeps answers close to the catalog text
	model.SetTemperature(0.3)
	model.SetTopK(20)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(1024)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	return &geminiClient{
		client: client,
		model:  model,
		sem:    make(chan struct{}, 3), // at most 3 requests in flight
		delay:  350 * time.Millisecond,
	}, nil
}

// GenerateResponse answers a single prompt.
func (g *geminiClient) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	release, err := g.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", errors.Wrap(err, "generate content")
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no response candidates")
	}

	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				result.WriteString(fmt.Sprintf("%v", part))
			}
		}
	}
	return strings.TrimSpace(result.String())
}

// acquire takes a concurrency slot and spaces calls by at least g.delay.
func (g *geminiClient) acquire(ctx context.Context) (func(), error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if !g.last.IsZero() {
		if sleep := g.delay - now.Sub(g.last); sleep > 0 {
			time.Sleep(sleep)
			now = time.Now()
		}
	}
	g.last = now

	return func() {
		<-g.sem
	}, nil
}

func (g *geminiClient) Close() error {
	return g.client.Close()
}
