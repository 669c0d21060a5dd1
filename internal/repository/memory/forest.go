package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"arbor/internal/domain/models/chat"
	chatRepo "arbor/internal/domain/repositories/chat"
)

// Forest is the in-memory implementation of the conversation tree store.
// State is volatile and process-lifetime only; there is no persisted layout.
//
// The design assumes a single logical mutator at a time. The mutex makes
// each operation atomic so a read racing a post-message exchange sees a
// consistent forest (possibly the user node without its assistant reply),
// but no cross-operation transactionality is provided.
type Forest struct {
	mu      sync.RWMutex
	nodes   map[string]*chat.Node
	rootIDs []string
}

// NewForest creates an empty forest store.
func NewForest() *Forest {
	return &Forest{
		nodes: make(map[string]*chat.Node),
	}
}

var _ chatRepo.ForestStore = (*Forest)(nil)

// CreateNode inserts a new node and returns it.
// Structural bookkeeping only - the caller has already validated that the
// parent exists and that the role transition is legal.
func (f *Forest) CreateNode(role chat.Role, content string, parentID *string) *chat.Node {
	f.mu.Lock()
	defer f.mu.Unlock()

	node := &chat.Node{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		ParentID:  parentID,
		Children:  []string{},
		CreatedAt: time.Now(),
	}

	if parentID != nil {
		if parent, ok := f.nodes[*parentID]; ok {
			node.RootID = parent.RootID
			if node.RootID == "" {
				node.RootID = parent.ID
			}
			parent.Children = append(parent.Children, node.ID)
		} else {
			// Dangling parent reference: keep the link for the ascent walk
			// to stop on, but anchor the root cache at the node itself.
			node.RootID = node.ID
		}
	} else {
		node.RootID = node.ID
		f.rootIDs = append(f.rootIDs, node.ID)
	}

	f.nodes[node.ID] = node
	return node
}

// Get looks up a node by id.
func (f *Forest) Get(id string) (*chat.Node, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	node, ok := f.nodes[id]
	if !ok {
		return nil, false
	}
	c := *node
	c.Children = append([]string(nil), node.Children...)
	return &c, true
}

// Path walks parent links from id up to a root (or a dangling reference,
// which terminates the ascent without error) and returns the visited nodes
// ordered root to node.
func (f *Forest) Path(id string) []chat.Node {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var ascent []chat.Node
	cur, ok := f.nodes[id]
	for ok {
		ascent = append(ascent, *cur)
		if cur.ParentID == nil {
			break
		}
		cur, ok = f.nodes[*cur.ParentID]
	}

	// Reverse ascent order to descent order.
	for i, j := 0, len(ascent)-1; i < j; i, j = i+1, j-1 {
		ascent[i], ascent[j] = ascent[j], ascent[i]
	}
	return ascent
}

// RootID returns the cached root id for a node, falling back to the input
// id when the node is missing so deletion bookkeeping never crashes on a
// dangling reference.
func (f *Forest) RootID(id string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if node, ok := f.nodes[id]; ok && node.RootID != "" {
		return node.RootID
	}
	return id
}

// PruneToRoot narrows the forest to the subtree rooted at rootID.
// Every successful message exchange calls this with the active lineage's
// root, bounding memory and guaranteeing no cross-branch leakage into
// future context assembly. Unknown rootID is a no-op; callers invoke this
// defensively.
func (f *Forest) PruneToRoot(rootID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.nodes[rootID]; !ok {
		return
	}

	// Breadth-first reachability over children links.
	reachable := map[string]bool{rootID: true}
	queue := []string{rootID}
	for len(queue) > 0 {
		node := f.nodes[queue[0]]
		queue = queue[1:]
		if node == nil {
			continue
		}
		for _, childID := range node.Children {
			if !reachable[childID] {
				reachable[childID] = true
				queue = append(queue, childID)
			}
		}
	}

	for id := range f.nodes {
		if !reachable[id] {
			delete(f.nodes, id)
		}
	}

	// Children lists must never reference dropped nodes.
	for _, node := range f.nodes {
		kept := node.Children[:0]
		for _, childID := range node.Children {
			if reachable[childID] {
				kept = append(kept, childID)
			}
		}
		node.Children = kept
	}

	f.rootIDs = []string{rootID}
}

// RemoveSubtree unlinks the node from its former parent's children list and
// deletes the node and every descendant in one operation, so no
// inconsistent intermediate state (deleted subtree still referenced by its
// parent) can be observed.
func (f *Forest) RemoveSubtree(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if node, ok := f.nodes[id]; ok && node.ParentID != nil {
		if parent, ok := f.nodes[*node.ParentID]; ok {
			kept := parent.Children[:0]
			for _, childID := range parent.Children {
				if childID != id {
					kept = append(kept, childID)
				}
			}
			parent.Children = kept
		}
	} else if ok {
		f.rootIDs = removeID(f.rootIDs, id)
	}

	// Iterative traversal; nodes already absent are silently skipped.
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node, ok := f.nodes[cur]
		if !ok {
			continue
		}
		stack = append(stack, node.Children...)
		delete(f.nodes, cur)
	}
}

// Snapshot returns a deep copy of the forest state.
func (f *Forest) Snapshot() *chat.Forest {
	f.mu.RLock()
	defer f.mu.RUnlock()

	snapshot := &chat.Forest{
		RootIDs: append([]string{}, f.rootIDs...),
		Nodes:   make(map[string]*chat.Node, len(f.nodes)),
	}
	for id, node := range f.nodes {
		c := *node
		c.Children = append([]string{}, node.Children...)
		snapshot.Nodes[id] = &c
	}
	return snapshot
}

func removeID(ids []string, id string) []string {
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}
