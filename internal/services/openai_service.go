package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// BinPhotoResult mirrors the expected JSON from the vision model.
type BinPhotoResult struct {
	BinVisible           bool   `json:"bin_visible"`
	AtKerbside           bool   `json:"at_kerbside"`
	StreetNumberMatches  bool   `json:"street_number_matches"`
	StreetNumberDetected string `json:"street_number_detected,omitempty"`
}

// OpenAIService wraps the OpenAI client. If client is nil, verification is skipped.
type OpenAIService struct {
	client *openai.Client
}

// NewOpenAIService creates the service. Pass an empty apiKey to disable calls.
func NewOpenAIService(apiKey string) *OpenAIService {
	if apiKey == "" {
		return &OpenAIService{client: nil}
	}
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIService{client: &c}
}

// VerifyBinPhoto sends the proof photo to the vision model and returns
// structured booleans about what it shows.
func (s *OpenAIService) VerifyBinPhoto(
	ctx context.Context,
	img []byte,
	expectedStreetNumber string,
) (*BinPhotoResult, error) {

	// Feature disabled; auto-accept.
	if s.client == nil {
		return &BinPhotoResult{
			BinVisible:          true,
			AtKerbside:          true,
			StreetNumberMatches: true,
		}, nil
	}

	b64 := base64.StdEncoding.EncodeToString(img)

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"bin_visible":            map[string]string{"type": "boolean"},
			"at_kerbside":            map[string]string{"type": "boolean"},
			"street_number_matches":  map[string]string{"type": "boolean"},
			"street_number_detected": map[string]string{"type": "string"},
		},
		"required": []string{
			"bin_visible",
			"at_kerbside",
			"street_number_matches",
			"street_number_detected",
		},
		"additionalProperties": false,
	}

	fn := shared.FunctionDefinitionParam{
		Name:        "verify_bin_photo",
		Description: openai.String("Return booleans indicating whether the kerbside bin photo meets all criteria."),
		Strict:      openai.Bool(true),
		Parameters:  schema,
	}

	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
						openai.TextContentPart(fmt.Sprintf(`Check this image.

Return JSON by calling verify_bin_photo(strict).
Rules:
1. bin_visible = true if ANY wheelie bin is visible.
2. at_kerbside = true only if the bin is at a kerb or footpath, not in a garage or yard.
3. street_number_matches = true if the visible street number == "%s".

If you can't see a street number set street_number_matches=false and street_number_detected="".`, expectedStreetNumber)),
						openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
							URL:    "data:image/jpeg;base64," + b64,
							Detail: "low",
						}),
					},
				},
			},
		}},
		Tools: []openai.ChatCompletionToolParam{{
			Function: fn,
		}},
		ToolChoice: openai.ChatCompletionToolChoiceOptionUnionParam{
			OfChatCompletionNamedToolChoice: &openai.ChatCompletionNamedToolChoiceParam{
				Function: openai.ChatCompletionNamedToolChoiceFunctionParam{
					Name: "verify_bin_photo",
				},
			},
		},
	}

	resp, err := s.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("openai: no function call returned")
	}

	var out BinPhotoResult
	if err := json.Unmarshal(
		[]byte(resp.Choices[0].Message.ToolCalls[0].Function.Arguments),
		&out,
	); err != nil {
		return nil, fmt.Errorf("unmarshal bin photo result: %w", err)
	}

	return &out, nil
}
