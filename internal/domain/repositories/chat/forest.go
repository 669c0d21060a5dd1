package chat

import (
	"arbor/internal/domain/models/chat"
)

// ForestStore defines the in-memory conversation tree operations.
// The store is purely structural: it never enforces domain rules such as
// "user replies must target an assistant node" - callers validate before
// mutating. Missing references in read and prune paths are tolerated
// (treated as "nothing to do"), which Get makes an explicit contract.
type ForestStore interface {
	// CreateNode inserts a fresh node and returns it fully populated.
	// With a parent, the node inherits the parent's cached root id and is
	// appended to the parent's children sequence; without one it becomes
	// its own root and joins the root-id sequence. Pure insert, never fails.
	CreateNode(role chat.Role, content string, parentID *string) *chat.Node

	// Get looks up a node by id. The boolean result is the documented
	// contract for dangling references - there is no ambient nil-tolerance.
	Get(id string) (*chat.Node, bool)

	// Path retrieves the ancestor chain for a node, ordered root to node.
	// A missing node yields an empty path; a dangling parent reference
	// terminates the ascent without error.
	// Used to build context for completion provider requests.
	Path(id string) []chat.Node

	// RootID returns the node's cached root id, or id unchanged when the
	// node is missing, so downstream pruning never trips on a dangling
	// reference.
	RootID(id string) string

	// PruneToRoot discards every node not reachable from rootID via
	// children links and collapses the root-id sequence to [rootID].
	// Retained children lists are filtered to surviving ids. A no-op when
	// rootID does not resolve. Idempotent.
	PruneToRoot(rootID string)

	// RemoveSubtree detaches the node from its former parent's children
	// list and deletes the node together with all its descendants, as one
	// operation. Nodes already absent mid-traversal are skipped.
	RemoveSubtree(id string)

	// Snapshot returns a deep-copied read-only view of the forest.
	Snapshot() *chat.Forest
}
