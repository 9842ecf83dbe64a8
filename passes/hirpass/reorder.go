package hirpass

import (
	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/intern"
	"github.com/xenon-lang/xenonc/optable"
	"github.com/xenon-lang/xenonc/passes"
	"github.com/xenon-lang/xenonc/precedence"
)

// OperatorReorder: a naive parse strings infix operators together
// without regard to precedence, nesting each successive
// operator on the right child (`a + b * c` lowers to `+(a, *(b, c))`;
// `a + b + c` lowers to `+(a, +(b, c))`). This pass walks every such chain
// bottom-up and performs local rotations until each BinaryExpr's right
// child binds no looser than (and, for same-precedence left-associative
// operators, is not grouped ahead of) itself — the standard
// precedence-climbing fixup.
//
// It is not a passes.Pass: a rotation changes which node id serves as a
// subtree's root, so the walk must thread the (possibly new) root id back
// up into whatever field referenced the old one, something the generic
// node-order Walk can't express. Process instead starts from every
// statement in every function body block, the only place an expression
// appears as a standalone unit in this HIR, and its initializer if any.
//
// Each BinaryExpr's hir.Context.NeedsReorder starts true (set at node
// creation, hir.Store.Add) and is cleared once this pass has settled the
// node, making a second Process call over an already-fixed tree a no-op.
type OperatorReorder struct{}

func (OperatorReorder) Name() string { return "operator-reorder" }

func (p OperatorReorder) Process(pc *passes.Context, h *hir.Store) {
	for i := 0; i < h.Len(); i++ {
		node := h.Nodes[i]
		if node.Kind != hir.KindFunction {
			continue
		}
		data := node.Data.(hir.FunctionData)
		p.reorderBlock(pc, h, data.Body)
	}
}

func (p OperatorReorder) reorderBlock(pc *passes.Context, h *hir.Store, blockId hir.Id) {
	if blockId == hir.InvalidId {
		return
	}
	node, ok := h.Get(blockId)
	if !ok {
		return
	}
	data, ok := node.Data.(hir.BlockData)
	if !ok {
		return
	}
	changed := false
	for i, stmtId := range data.Statements {
		stmtNode, ok := h.Get(stmtId)
		if !ok {
			continue
		}
		if let, ok := stmtNode.Data.(hir.LetStmtData); ok {
			if let.Value != hir.InvalidId {
				let.Value = p.reorder(pc, h, let.Value)
				h.Nodes[stmtId].Data = let
			}
			continue
		}
		newId := p.reorder(pc, h, stmtId)
		if newId != stmtId {
			data.Statements[i] = newId
			changed = true
		}
	}
	if changed {
		h.Nodes[blockId].Data = data
	}
}

// reorder settles the subtree rooted at id, bottom-up, and returns the id
// that now serves as its root (unchanged unless id itself was a BinaryExpr
// rotated out of the root position).
func (p OperatorReorder) reorder(pc *passes.Context, h *hir.Store, id hir.Id) hir.Id {
	if id == hir.InvalidId {
		return id
	}
	node, ok := h.Get(id)
	if !ok || node.Kind != hir.KindBinaryExpr {
		return id
	}

	ctx := h.Ctx(id)
	if !ctx.NeedsReorder {
		return id
	}

	data := node.Data.(hir.BinaryExprData)
	data.Left = p.reorder(pc, h, data.Left)
	data.Right = p.reorder(pc, h, data.Right)
	h.Nodes[id].Data = data

	return p.fixupRoot(pc, h, id)
}

// fixupRoot rotates rootId against its right child as many times as
// necessary and returns the id now serving as root. rootId's own children
// must already be fully settled before calling this.
//
// A single rotation can expose a new mismatch one level down: demoting
// root makes its new right child the rotated-away node's old left side,
// which may itself bind looser than (or tie left-associatively with)
// root's operator and need another rotation before root is settled. So
// after rotating, fixupRoot recurses on rootId again (now holding its new
// right child) before attaching the result as the new root's left child —
// the standard cascading-rotation shape, not a single local swap.
func (p OperatorReorder) fixupRoot(pc *passes.Context, h *hir.Store, rootId hir.Id) hir.Id {
	rootNode, ok := h.Get(rootId)
	if !ok || rootNode.Kind != hir.KindBinaryExpr {
		return rootId
	}
	rootData := rootNode.Data.(hir.BinaryExprData)

	rightNode, ok := h.Get(rootData.Right)
	if !ok || rightNode.Kind != hir.KindBinaryExpr {
		h.Ctx(rootId).NeedsReorder = false
		return rootId
	}
	rightData := rightNode.Data.(hir.BinaryExprData)

	if !p.shouldRotate(pc, rootData.Operator, rightData.Operator) {
		h.Ctx(rootId).NeedsReorder = false
		return rootId
	}

	rootData.Right = rightData.Left
	h.Nodes[rootId].Data = rootData
	newLeft := p.fixupRoot(pc, h, rootId)

	rightData.Left = newLeft
	h.Nodes[rightNode.Id].Data = rightData
	h.Ctx(rightNode.Id).NeedsReorder = false
	return rightNode.Id
}

// shouldRotate reports whether a node whose operator is parentOp should
// rotate with its right child whose operator is childOp: rotate when the
// child binds at least as loosely as the parent, so the child becomes
// the new root. Strictly
// looser always rotates, and equal precedence rotates only when the
// shared precedence is left-associative (producing the `(a+b)+c` grouping
// left-associativity requires). Unknown operators or incomparable
// precedences leave the tree alone.
func (p OperatorReorder) shouldRotate(pc *passes.Context, parentOp, childOp intern.PunctuationId) bool {
	parentInfo, ok := pc.Operators.Get(optable.Infix, parentOp)
	if !ok {
		return false
	}
	childInfo, ok := pc.Operators.Get(optable.Infix, childOp)
	if !ok {
		return false
	}

	// GetOrder(a, b) == Lower means b is a transitive predecessor of a,
	// i.e. b binds looser than a — so parentPrec Lower than childPrec
	// means the child binds looser and must become the new root.
	switch pc.Precedence.GetOrder(parentInfo.PrecedenceID, childInfo.PrecedenceID) {
	case precedence.Lower:
		return true
	case precedence.Same:
		assoc, _ := pc.Precedence.Assoc(parentInfo.PrecedenceID)
		return assoc == precedence.AssocLeft
	default:
		return false
	}
}
