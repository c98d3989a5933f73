package gateway

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"lexstyle/types"
)

// Client wraps the chat model behind a small text/JSON completion surface.
// Every AI operation in the pipeline goes through here.
type Client struct {
	chatModel model.ToolCallingChatModel
	modelID   string
}

func NewClient(chatModel model.ToolCallingChatModel, modelID string) *Client {
	return &Client{chatModel: chatModel, modelID: modelID}
}

// ModelID identifies the underlying model for usage accounting.
func (c *Client) ModelID() string { return c.modelID }

// Completion is one model round trip. Token counts are zero when the backend
// reports no usage.
type Completion struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

type Option func(*callOpts)

type callOpts struct {
	temperature *float32
}

func WithTemperature(t float32) Option {
	return func(o *callOpts) { o.temperature = &t }
}

// Generate issues one completion call. Transport and timeout failures are
// reported as ErrUpstreamUnavailable.
func (c *Client) Generate(ctx context.Context, prompt string, opts ...Option) (*Completion, error) {
	return c.generate(ctx, []*schema.Message{schema.UserMessage(prompt)}, opts...)
}

// GenerateText is Generate without usage bookkeeping.
func (c *Client) GenerateText(ctx context.Context, prompt string, opts ...Option) (string, error) {
	comp, err := c.Generate(ctx, prompt, opts...)
	if err != nil {
		return "", err
	}
	return comp.Text, nil
}

// Part is one element of a mixed text/binary input (e.g. a scanned document
// page). Either Text is set, or MIME+Data are.
type Part struct {
	Text string
	MIME string
	Data []byte
}

// GenerateFromParts sends mixed text/binary content plus an optional trailing
// instruction prompt.
func (c *Client) GenerateFromParts(ctx context.Context, parts []Part, prompt string, opts ...Option) (*Completion, error) {
	content := make([]schema.ChatMessagePart, 0, len(parts)+1)
	for _, p := range parts {
		if len(p.Data) > 0 {
			content = append(content, schema.ChatMessagePart{
				Type: schema.ChatMessagePartTypeImageURL,
				ImageURL: &schema.ChatMessageImageURL{
					URL:      "data:" + p.MIME + ";base64," + base64.StdEncoding.EncodeToString(p.Data),
					MIMEType: p.MIME,
				},
			})
			continue
		}
		content = append(content, schema.ChatMessagePart{
			Type: schema.ChatMessagePartTypeText,
			Text: p.Text,
		})
	}
	if prompt != "" {
		content = append(content, schema.ChatMessagePart{
			Type: schema.ChatMessagePartTypeText,
			Text: prompt,
		})
	}
	msg := &schema.Message{Role: schema.User, MultiContent: content}
	return c.generate(ctx, []*schema.Message{msg}, opts...)
}

func (c *Client) generate(ctx context.Context, msgs []*schema.Message, opts ...Option) (*Completion, error) {
	var co callOpts
	for _, opt := range opts {
		opt(&co)
	}
	var modelOpts []model.Option
	if co.temperature != nil {
		modelOpts = append(modelOpts, model.WithTemperature(*co.temperature))
	}

	resp, err := c.chatModel.Generate(ctx, msgs, modelOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUpstreamUnavailable, err)
	}

	comp := &Completion{Text: resp.Content}
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		comp.InputTokens = resp.ResponseMeta.Usage.PromptTokens
		comp.OutputTokens = resp.ResponseMeta.Usage.CompletionTokens
	}
	return comp, nil
}

// JSON issues one completion call and parses the output into T. It is total
// over model output: any transport failure or unparseable response yields
// exactly the supplied fallback.
func JSON[T any](ctx context.Context, c *Client, prompt string, fallback T, opts ...Option) T {
	comp, err := c.Generate(ctx, prompt, opts...)
	if err != nil {
		return fallback
	}
	return ParseOrDefault(comp.Text, fallback)
}

// JSONStrict issues one completion call and decodes into out, propagating
// ErrUpstreamUnavailable and ErrMalformedCompletion. Used where the output is
// load-bearing and the caller owns the failure decision.
func JSONStrict[T any](ctx context.Context, c *Client, prompt string, out *T, opts ...Option) (*Completion, error) {
	comp, err := c.Generate(ctx, prompt, opts...)
	if err != nil {
		return nil, err
	}
	if err := ParseStrict(comp.Text, out); err != nil {
		return nil, err
	}
	return comp, nil
}
