package cache

// Write describes a confirmed mutation against one entity. The ids scope
// which cached collections the write can reach; ids irrelevant to the
// mutated kind are left empty.
type Write struct {
	Kind    Kind
	BoardID string
	ListID  string
	TaskID  string
}

type scope int

const (
	scopeNone scope = iota
	scopeBoard
	scopeList
	scopeTask
)

type edge struct {
	dependent Kind
	scope     scope
}

// dependencyGraph is the static table mapping a mutated entity kind to the
// cache keys it invalidates. Invalidation is one hop only: a task write
// reaches tasks(list) and comments(task) but never boards or lists. This
// bounds invalidation cost and matches the product's consistency needs.
var dependencyGraph = map[Kind][]edge{
	KindBoards:   {{KindBoards, scopeNone}, {KindLists, scopeBoard}},
	KindLists:    {{KindLists, scopeBoard}, {KindTasks, scopeList}},
	KindTasks:    {{KindTasks, scopeList}, {KindComments, scopeTask}},
	KindComments: {{KindComments, scopeTask}},
	KindMembers:  {{KindMembers, scopeBoard}},
}

// DependentsOf is a pure function over the dependency table. Edges whose
// scoping id is absent from the write are skipped (a board-create has no
// lists collection to invalidate yet).
func DependentsOf(w Write) []Key {
	edges := dependencyGraph[w.Kind]
	keys := make([]Key, 0, len(edges))
	for _, e := range edges {
		var scopeID string
		switch e.scope {
		case scopeBoard:
			scopeID = w.BoardID
		case scopeList:
			scopeID = w.ListID
		case scopeTask:
			scopeID = w.TaskID
		}
		if e.scope != scopeNone && scopeID == "" {
			continue
		}
		keys = append(keys, Key{Kind: e.dependent, ScopeID: scopeID})
	}
	return keys
}
