package chat

import (
	"context"

	"arbor/internal/domain/models/chat"
)

// ConversationService defines the business logic for the conversation tree.
// Domain rules (reply targets, root protection) are enforced here, before
// the structural store is touched; the store itself is validation-free.
type ConversationService interface {
	// PostMessage runs one full exchange: insert the user node, assemble
	// its ancestor context, call the completion provider, insert the
	// assistant reply, then prune the forest to the active lineage's root.
	// A provider failure substitutes fallback content instead of aborting,
	// so the user node is never left without an assistant sibling.
	// Returns the pruned forest snapshot.
	PostMessage(ctx context.Context, req *PostMessageRequest) (*chat.Forest, error)

	// DeleteMessage removes a non-root node and all its descendants, then
	// prunes to the retained root. Deleting a root is rejected.
	// Returns the resulting forest snapshot.
	DeleteMessage(ctx context.Context, nodeID string) (*chat.Forest, error)

	// ListForest returns the serialized forest with no pruning side effect.
	ListForest(ctx context.Context) (*chat.Forest, error)

	// Path retrieves the ancestor chain for a node, ordered root to node.
	Path(ctx context.Context, nodeID string) ([]chat.Node, error)
}

// PostMessageRequest is the input for posting a user message.
type PostMessageRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id,omitempty"`
}
