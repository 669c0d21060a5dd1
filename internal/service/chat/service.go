package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"arbor/internal/config"
	"arbor/internal/domain"
	chatModels "arbor/internal/domain/models/chat"
	chatRepo "arbor/internal/domain/repositories/chat"
	chatSvc "arbor/internal/domain/services/chat"
	llmSvc "arbor/internal/domain/services/llm"
)

// fallbackReply is substituted when the completion provider errors or
// returns no usable text, so the exchange still completes and the user
// node is never left as a dangling half-exchange.
const fallbackReply = "Sorry, I was unable to generate a response. Please try again."

// Service implements the ConversationService interface.
// All domain validation happens here, before the structural store is
// touched; the store is a pure insert/walk/prune data structure.
type Service struct {
	forest   chatRepo.ForestStore
	provider llmSvc.Provider
	cfg      *config.Config
	logger   *slog.Logger
}

// NewService creates a new conversation service.
func NewService(
	forest chatRepo.ForestStore,
	provider llmSvc.Provider,
	cfg *config.Config,
	logger *slog.Logger,
) chatSvc.ConversationService {
	return &Service{
		forest:   forest,
		provider: provider,
		cfg:      cfg,
		logger:   logger,
	}
}

// PostMessage runs one full exchange and returns the pruned forest.
func (s *Service) PostMessage(ctx context.Context, req *chatSvc.PostMessageRequest) (*chatModels.Forest, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validatePostMessageRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Precondition checks run before any mutation: a user reply must
	// target an existing assistant node.
	if req.ParentID != nil {
		parent, ok := s.forest.Get(*req.ParentID)
		if !ok {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("parent node %s not found", *req.ParentID)}
		}
		if parent.Role != chatModels.RoleAssistant {
			return nil, &domain.ValidationError{Message: "user replies must target an assistant node"}
		}
	}

	userNode := s.forest.CreateNode(chatModels.RoleUser, req.Content, req.ParentID)

	path := s.forest.Path(userNode.ID)
	reply, err := s.provider.Complete(ctx, &llmSvc.CompletionRequest{
		System:    s.cfg.SystemPrompt,
		Messages:  buildMessages(path),
		Model:     s.cfg.DefaultModel,
		MaxTokens: s.cfg.MaxReplyTokens,
	})
	if err != nil || strings.TrimSpace(reply) == "" {
		// The user node stays in place; there is no rollback. The
		// assistant node is created with fallback content so the exchange
		// still narrows to a complete lineage.
		s.logger.Warn("completion provider failure, substituting fallback",
			"provider", s.provider.Name(),
			"node_id", userNode.ID,
			"error", err,
		)
		reply = fallbackReply
	}

	assistantNode := s.forest.CreateNode(chatModels.RoleAssistant, reply, &userNode.ID)

	s.forest.PruneToRoot(s.forest.RootID(userNode.ID))

	s.logger.Info("exchange complete",
		"user_node", userNode.ID,
		"assistant_node", assistantNode.ID,
		"root", userNode.RootID,
		"depth", len(path),
	)

	return s.forest.Snapshot(), nil
}

// DeleteMessage removes a non-root node with its descendants and prunes to
// the retained root.
func (s *Service) DeleteMessage(ctx context.Context, nodeID string) (*chatModels.Forest, error) {
	node, ok := s.forest.Get(nodeID)
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("node %s not found", nodeID)}
	}
	if node.IsRoot() {
		return nil, &domain.ValidationError{Message: "cannot delete a root message"}
	}

	// Prefer the node's cached root id, else resolve via its parent.
	retainedRoot := node.RootID
	if retainedRoot == "" {
		retainedRoot = s.forest.RootID(*node.ParentID)
	}

	s.forest.RemoveSubtree(nodeID)
	s.forest.PruneToRoot(retainedRoot)

	s.logger.Info("subtree deleted",
		"node_id", nodeID,
		"retained_root", retainedRoot,
	)

	return s.forest.Snapshot(), nil
}

// ListForest returns the serialized forest with no pruning side effect.
func (s *Service) ListForest(ctx context.Context) (*chatModels.Forest, error) {
	return s.forest.Snapshot(), nil
}

// Path retrieves the ancestor chain for a node, ordered root to node.
func (s *Service) Path(ctx context.Context, nodeID string) ([]chatModels.Node, error) {
	if _, ok := s.forest.Get(nodeID); !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("node %s not found", nodeID)}
	}
	return s.forest.Path(nodeID), nil
}

func validatePostMessageRequest(req *chatSvc.PostMessageRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Content,
			validation.Required,
			validation.Length(1, config.MaxMessageLength),
		),
	)
}
