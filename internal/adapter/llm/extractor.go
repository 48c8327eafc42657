package llm

import (
	"context"
	"fmt"
	"log/slog"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

// extractionInstruction is the fixed system instruction sent with every
// transcript. The model must answer with machine-parseable JSON only; any
// prose around it fails the strict parse below.
const extractionInstruction = `你是一位營養助理。請根據使用者的語音內容判斷所有提到的餐別
（早餐／午餐／下午茶／晚餐／宵夜）、時間及內容，並以 JSON 陣列格式回傳：
[
  { "meal_type": "早餐", "time": "07:30", "content": "蛋餅" },
  { "meal_type": "午餐", "time": "11:00", "content": "便當" }
]
若使用者沒有提到時間，"time" 請填空字串。
只輸出 JSON 陣列，請勿補充任何說明。`

// Extractor turns a free-speech transcript into structured meal drafts
// via the Anthropic API.
type Extractor struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// New creates an Extractor. The API key may be empty, in which case every
// Extract call fails with a transport error from the SDK.
func New(apiKey, model string, maxTokens int64, logger *slog.Logger) *Extractor {
	return &Extractor{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
		log:       logger.With("adapter", "llm"),
	}
}

// Extract sends the transcript and returns the extracted meal drafts.
// The response contract is strict: anything that is not a JSON array of
// {meal_type, time, content} objects fails the whole call with
// domain.ErrMalformedExtraction; there are no partial results. A missing
// or garbled time inside an otherwise valid item is the one tolerated
// defect; it becomes an unknown time on the draft.
func (e *Extractor) Extract(ctx context.Context, transcript string) ([]domain.VoiceDraftItem, error) {
	msg, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(e.model),
		MaxTokens: e.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: extractionInstruction},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(transcript)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("llm extract: %w", err)
	}

	if len(msg.Content) == 0 {
		return nil, fmt.Errorf("llm extract: %w: empty response", domain.ErrMalformedExtraction)
	}

	items, err := parseExtraction(msg.Content[0].Text)
	if err != nil {
		e.log.WarnContext(ctx, "extraction response rejected", slog.String("error", err.Error()))
		return nil, err
	}

	e.log.DebugContext(ctx, "transcript extracted", slog.Int("items", len(items)))
	return items, nil
}
