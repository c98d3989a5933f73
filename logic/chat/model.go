package chat

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"lexstyle/vars"
)

// CreateChatModel builds the chat model for the configured provider.
func CreateChatModel(ctx context.Context) (model.ToolCallingChatModel, error) {
	switch vars.PROVIDER {
	case vars.ProviderOpenAI:
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey: vars.OPENAI_KEY,
			Model:  vars.CHAT_MODEL,
		})
	case vars.ProviderOllama:
		return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: vars.OLLAMA_PATH,
			Model:   vars.CHAT_MODEL,
		})
	default:
		return nil, fmt.Errorf("unknown chat provider: %s", vars.PROVIDER)
	}
}
