package game

// TreeNode is a node of an explicit, hand-built game tree. Nodes are never
// modified once the tree is built, so positions walking the tree may share them.
type TreeNode struct {
	// Static score of the node, White's perspective
	Score float64
	// Result reported when the node is a leaf, a leaf without one is a draw
	Result   Outcome
	Children []*TreeNode
}

// Leaf node with a static score
func Leaf(score float64) *TreeNode {
	return &TreeNode{Score: score}
}

// Terminal leaf with a decided result
func Terminal(result Outcome) *TreeNode {
	return &TreeNode{Score: result.Value(), Result: result}
}

// Inner node, the moves are the children indices
func Node(children ...*TreeNode) *TreeNode {
	return &TreeNode{Children: children}
}

// Tree is a position walking an explicit game tree, moves are child indices.
// Handy for checking search algorithms against trees worked out by hand.
type Tree struct {
	path   []*TreeNode
	turn   Side
	pieces int
}

var _ PositionLike[int, *Tree] = (*Tree)(nil)

// Create a position at the root of the tree, with 'turn' to move
func NewTree(root *TreeNode, turn Side) *Tree {
	return &Tree{
		path:   []*TreeNode{root},
		turn:   turn,
		pieces: 32,
	}
}

// Set the reported piece count (constant across the whole tree)
func (t *Tree) SetPieceCount(n int) *Tree {
	t.pieces = n
	return t
}

func (t *Tree) current() *TreeNode {
	return t.path[len(t.path)-1]
}

func (t *Tree) LegalMoves() []int {
	moves := make([]int, len(t.current().Children))
	for i := range moves {
		moves[i] = i
	}
	return moves
}

func (t *Tree) MakeMove(m int) {
	t.path = append(t.path, t.current().Children[m])
	t.turn = t.turn.Other()
}

func (t *Tree) Undo() {
	if len(t.path) > 1 {
		t.path = t.path[:len(t.path)-1]
		t.turn = t.turn.Other()
	}
}

func (t *Tree) IsTerminated() bool {
	return len(t.current().Children) == 0
}

func (t *Tree) Outcome() Outcome {
	if !t.IsTerminated() {
		return NoOutcome
	}
	if r := t.current().Result; r != NoOutcome {
		return r
	}
	return Draw
}

func (t *Tree) Turn() Side {
	return t.turn
}

func (t *Tree) Clone() *Tree {
	path := make([]*TreeNode, len(t.path))
	copy(path, t.path)
	return &Tree{path: path, turn: t.turn, pieces: t.pieces}
}

func (t *Tree) PieceCount() int {
	return t.pieces
}

// Static score of the current node
func (t *Tree) Score() float64 {
	return t.current().Score
}

// Number of moves made from the root
func (t *Tree) Ply() int {
	return len(t.path) - 1
}
