// Package graph holds the in-memory knowledge graph: one node per ingested
// File or Block, undirected edges added in the linking phase.
package graph

import (
	"errors"
	"fmt"
)

// NodeKind discriminates the two node variants.
type NodeKind int

const (
	// KindFile is a node for an ingested page.
	KindFile NodeKind = iota
	// KindBlock is a node for a single block.
	KindBlock
)

func (k NodeKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindBlock:
		return "block"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Node is a graph node: a File (with title) or a Block.
type Node struct {
	Kind  NodeKind
	ID    string
	Title string // files only
}

// ErrNodeMissing indicates an entity's own node was never inserted before
// linking. This is an insertion/linking-order bug, not a user error.
var ErrNodeMissing = errors.New("node not found in graph")

// ErrTargetMissing indicates a relationship target (parent block, tag page,
// or wikilinked page) has no node in the graph.
var ErrTargetMissing = errors.New("edge target not found in graph")

// Graph is an arena of nodes with id/title lookup indexes and a
// duplicate-suppressed undirected edge set. Nodes must be inserted before
// any edge can reference them.
type Graph struct {
	nodes       []Node
	byID        map[string]int
	fileByTitle map[string]int
	adjacency   map[int]map[int]struct{}
	edgeCount   int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		byID:        make(map[string]int),
		fileByTitle: make(map[string]int),
		adjacency:   make(map[int]map[int]struct{}),
	}
}

// AddFile inserts a bare node for a File and returns its index. The lookup
// indexes keep the first node inserted for a given id or title.
func (g *Graph) AddFile(id, title string) int {
	return g.add(Node{Kind: KindFile, ID: id, Title: title})
}

// AddBlock inserts a bare node for a Block and returns its index.
func (g *Graph) AddBlock(id string) int {
	return g.add(Node{Kind: KindBlock, ID: id})
}

func (g *Graph) add(n Node) int {
	idx := len(g.nodes)
	g.nodes = append(g.nodes, n)
	if _, ok := g.byID[n.ID]; !ok {
		g.byID[n.ID] = idx
	}
	if n.Kind == KindFile {
		if _, ok := g.fileByTitle[n.Title]; !ok {
			g.fileByTitle[n.Title] = idx
		}
	}
	return idx
}

// NodeByID returns the index of the node with the given entity id.
func (g *Graph) NodeByID(id string) (int, bool) {
	idx, ok := g.byID[id]
	return idx, ok
}

// FileByTitle returns the index of the File node with the given title.
func (g *Graph) FileByTitle(title string) (int, bool) {
	idx, ok := g.fileByTitle[title]
	return idx, ok
}

// Node returns the node at the given index.
func (g *Graph) Node(idx int) Node {
	return g.nodes[idx]
}

// Nodes returns a copy of all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// AddEdge adds an undirected edge between two node indices. Duplicate
// edges are suppressed; the return value reports whether the edge is new.
func (g *Graph) AddEdge(a, b int) bool {
	if g.HasEdge(a, b) {
		return false
	}
	if g.adjacency[a] == nil {
		g.adjacency[a] = make(map[int]struct{})
	}
	if g.adjacency[b] == nil {
		g.adjacency[b] = make(map[int]struct{})
	}
	g.adjacency[a][b] = struct{}{}
	g.adjacency[b][a] = struct{}{}
	g.edgeCount++
	return true
}

// HasEdge reports whether an edge exists between two node indices.
func (g *Graph) HasEdge(a, b int) bool {
	_, ok := g.adjacency[a][b]
	return ok
}

// Neighbors returns the indices adjacent to a node.
func (g *Graph) Neighbors(idx int) []int {
	out := make([]int, 0, len(g.adjacency[idx]))
	for n := range g.adjacency[idx] {
		out = append(out, n)
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}
