package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"golang.org/x/time/rate"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/config"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

const summaryInstructions = "You summarise chat mood trends for a support dashboard. Respond with JSON only."

type moodSummary struct {
	Summary string `json:"summary" jsonschema:"required,description=Two or three sentences describing the mood change and next steps"`
}

var moodSummarySchema = generateSchema[moodSummary]()

// OpenAILLM uses the OpenAI Responses API
type OpenAILLM struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
}

// NewOpenAILLM creates an OpenAI provider
func NewOpenAILLM(cfg *config.AIConfig, limiter *rate.Limiter) *OpenAILLM {
	client := openai.NewClient(
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithRequestTimeout(cfg.Timeout),
	)
	return &OpenAILLM{
		client:  &client,
		model:   cfg.OpenAIModel,
		limiter: limiter,
	}
}

// GenerateReply asks the model for the assistant's next turn
func (o *OpenAILLM) GenerateReply(ctx context.Context, history, userMessage string) (string, error) {
	params := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(800),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(BuildReplyPrompt(history, userMessage), responses.EasyInputMessageRoleUser),
			},
		},
	}

	resp, err := o.call(ctx, params)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.OutputText()), nil
}

// Summarize requests a structured {summary} object for the trend
func (o *OpenAILLM) Summarize(ctx context.Context, trend model.TrendResult) (string, error) {
	params := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(400),
		Instructions:    openai.String(summaryInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(BuildSummaryPrompt(trend), responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "MoodSummary",
					Schema:      moodSummarySchema,
					Strict:      openai.Bool(true),
					Description: openai.String("Mood trend summary JSON"),
					Type:        "json_schema",
				},
			},
		},
	}

	resp, err := o.call(ctx, params)
	if err != nil {
		return "", err
	}

	var out moodSummary
	if err := json.Unmarshal([]byte(resp.OutputText()), &out); err != nil {
		return "", fmt.Errorf("unmarshal summary: %w", err)
	}
	return strings.TrimSpace(out.Summary), nil
}

func (o *OpenAILLM) call(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("call OpenAI: %w", err)
	}
	return resp, nil
}

func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)

	data, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	out["additionalProperties"] = false
	delete(out, "$schema")
	delete(out, "$id")
	return out
}
