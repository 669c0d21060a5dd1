package chat

import (
	chatModels "arbor/internal/domain/models/chat"
	llmSvc "arbor/internal/domain/services/llm"
)

// buildMessages converts an ancestor path (ordered root to leaf) into
// provider messages. Siblings of path nodes are invisible here: only the
// lineage the path walk visited reaches the provider.
func buildMessages(path []chatModels.Node) []llmSvc.Message {
	messages := make([]llmSvc.Message, 0, len(path))
	for _, node := range path {
		messages = append(messages, llmSvc.Message{
			Role:    string(node.Role),
			Content: node.Content,
		})
	}
	return messages
}
