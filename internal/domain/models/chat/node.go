package chat

import (
	"time"
)

// Role identifies who authored a message node.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Node represents a single conversation message.
// Nodes form a tree via ParentID; siblings are alternative branches that
// never see each other when conversation context is assembled.
type Node struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	ParentID  *string   `json:"parent_id,omitempty"` // nil marks a root
	Children  []string  `json:"children"`            // insertion order = reply order
	RootID    string    `json:"root_id"`             // cached at creation, never recomputed
	CreatedAt time.Time `json:"created_at"`
}

// IsRoot reports whether the node anchors a conversation lineage.
func (n *Node) IsRoot() bool {
	return n.ParentID == nil
}

// Forest is a read-only snapshot of the store's state, suitable for
// transmission to the display layer. No filtering or redaction.
type Forest struct {
	RootIDs []string         `json:"root_ids"`
	Nodes   map[string]*Node `json:"nodes"`
}
