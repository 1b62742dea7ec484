package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/kiosk404/echonote/internal/notemind/service/llm/domain/entity"
	"github.com/kiosk404/echonote/pkg/logger"
)

// ChatCompleter sends a single user prompt to a chat model and returns the
// reply text. Each call is independent: no history is kept.
type ChatCompleter struct {
	ref   entity.ModelRef
	model model.BaseChatModel
}

func NewChatCompleter(ref entity.ModelRef, cm model.BaseChatModel) *ChatCompleter {
	return &ChatCompleter{ref: ref, model: cm}
}

func (c *ChatCompleter) Ref() entity.ModelRef {
	return c.ref
}

func (c *ChatCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := c.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", fmt.Errorf("generate with %s: %w", c.ref, err)
	}
	if msg == nil {
		return "", nil
	}
	reply := strings.TrimSpace(msg.Content)
	logger.Debug("[LLM] %s replied with %d bytes", c.ref, len(reply))
	return reply, nil
}
