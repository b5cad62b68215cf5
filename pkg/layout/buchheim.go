package layout

import (
	"github.com/wordgrove/wordgrove/pkg/tree"
)

// scratch is the per-node working state of one layout run. It lives in a
// side table indexed by node ID; the tree model itself stays untouched.
type scratch struct {
	prelim float64 // tentative x, before ancestor modifiers
	mod    float64 // shift applied to the whole subtree below this node
	shift  float64 // pending shift from moveSubtree, spent by executeShifts
	change float64 // per-subtree decrease of shift, spent by executeShifts

	// thread is a shortcut into the next contour node when this node's
	// own subtree is exhausted. Not a tree edge; reset every run.
	thread tree.ID

	// ancestor is the greatest distinct ancestor used to attribute
	// contour conflicts to the right subtree. Initially the node itself.
	ancestor tree.ID
}

type walker struct {
	t   *tree.Tree
	cfg Config
	s   []scratch
}

func newWalker(t *tree.Tree, cfg Config) *walker {
	s := make([]scratch, t.Len())
	for i := range s {
		s[i].thread = tree.None
		s[i].ancestor = tree.ID(i)
	}
	return &walker{t: t, cfg: cfg, s: s}
}

// leftSibling returns the sibling immediately left of v, or None.
func (w *walker) leftSibling(v tree.ID) tree.ID {
	p := w.t.Parent(v)
	n := w.t.Number(v)
	if p == tree.None || n == 0 {
		return tree.None
	}
	return w.t.Children(p)[n-1]
}

// leftmostSibling returns the first child of v's parent, or None for the root.
func (w *walker) leftmostSibling(v tree.ID) tree.ID {
	p := w.t.Parent(v)
	if p == tree.None {
		return tree.None
	}
	return w.t.Children(p)[0]
}

// nextLeft returns the next node on the left contour below v: its first
// child, or its thread when v is a leaf.
func (w *walker) nextLeft(v tree.ID) tree.ID {
	if kids := w.t.Children(v); len(kids) > 0 {
		return kids[0]
	}
	return w.s[v].thread
}

// nextRight returns the next node on the right contour below v: its last
// child, or its thread when v is a leaf.
func (w *walker) nextRight(v tree.ID) tree.ID {
	if kids := w.t.Children(v); len(kids) > 0 {
		return kids[len(kids)-1]
	}
	return w.s[v].thread
}

// firstWalk assigns preliminary x positions bottom-up. Children are laid
// out first, then the parent is centered over them; apportion resolves
// any overlap with subtrees already placed to the left. The walk keeps an
// explicit frame stack so tree height never limits input size.
func (w *walker) firstWalk(root tree.ID) {
	type frame struct {
		id              tree.ID
		next            int // index of the next child to descend into
		defaultAncestor tree.ID
	}
	stack := []frame{{id: root}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		kids := w.t.Children(f.id)

		if len(kids) == 0 {
			if left := w.leftSibling(f.id); left != tree.None {
				w.s[f.id].prelim = w.s[left].prelim + w.cfg.SiblingDistance
			}
			stack = stack[:len(stack)-1]
			continue
		}

		// Each visit apportions the child finished on the previous visit,
		// so child k is apportioned right after its own subtree is placed.
		if f.next == 0 {
			f.defaultAncestor = kids[0]
		} else {
			f.defaultAncestor = w.apportion(kids[f.next-1], f.defaultAncestor)
		}

		if f.next < len(kids) {
			child := kids[f.next]
			f.next++
			stack = append(stack, frame{id: child})
			continue
		}

		w.executeShifts(f.id)

		midpoint := (w.s[kids[0]].prelim + w.s[kids[len(kids)-1]].prelim) / 2

		if left := w.leftSibling(f.id); left != tree.None {
			w.s[f.id].prelim = w.s[left].prelim + w.cfg.SiblingDistance
			w.s[f.id].mod = w.s[f.id].prelim - midpoint
		} else {
			w.s[f.id].prelim = midpoint
		}
		stack = stack[:len(stack)-1]
	}
}

// apportion compares the left contour of v's subtree with the right
// contour of everything already placed to its left, descending level by
// level. Where the contours get too close, the whole subtree of v is
// shifted right by the minimal amount. Threads are installed so later
// contour walks can skip across the shorter subtree in O(1).
//
// Naming follows the paper: i = inner, o = outer, l = left, r = right.
func (w *walker) apportion(v, defaultAncestor tree.ID) tree.ID {
	left := w.leftSibling(v)
	if left == tree.None {
		return defaultAncestor
	}

	vir, vor := v, v
	vil := left
	vol := w.leftmostSibling(v)
	sir, sor := w.s[v].mod, w.s[v].mod
	sil := w.s[vil].mod
	sol := w.s[vol].mod

	for w.nextRight(vil) != tree.None && w.nextLeft(vir) != tree.None {
		vil = w.nextRight(vil)
		vir = w.nextLeft(vir)
		vol = w.nextLeft(vol)
		vor = w.nextRight(vor)
		w.s[vor].ancestor = v

		shift := (w.s[vil].prelim + sil) - (w.s[vir].prelim + sir) + w.distance(vil, vir)
		if shift > 0 {
			w.moveSubtree(w.ancestor(vil, v, defaultAncestor), v, shift)
			sir += shift
			sor += shift
		}

		sil += w.s[vil].mod
		sir += w.s[vir].mod
		sol += w.s[vol].mod
		sor += w.s[vor].mod
	}

	if w.nextRight(vil) != tree.None && w.nextRight(vor) == tree.None {
		// Left side is deeper: thread the right outer contour into it.
		w.s[vor].thread = w.nextRight(vil)
		w.s[vor].mod += sil - sor
	} else {
		if w.nextLeft(vir) != tree.None && w.nextLeft(vol) == tree.None {
			// Right side is deeper: thread the left outer contour into it.
			w.s[vol].thread = w.nextLeft(vir)
			w.s[vol].mod += sir - sol
		}
		defaultAncestor = v
	}
	return defaultAncestor
}

// distance returns the minimum separation required between two contour
// nodes: SiblingDistance when they share a parent, SubtreeDistance when
// the conflict spans different subtrees.
func (w *walker) distance(a, b tree.ID) float64 {
	if w.t.Parent(a) == w.t.Parent(b) {
		return w.cfg.SiblingDistance
	}
	return w.cfg.SubtreeDistance
}

// moveSubtree shifts the subtree rooted at wr right by shift. The smaller
// subtrees between wl and wr are not moved here; shift/change bookkeeping
// lets executeShifts fan them out proportionally in one later pass.
func (w *walker) moveSubtree(wl, wr tree.ID, shift float64) {
	subtrees := float64(w.t.Number(wr) - w.t.Number(wl))
	w.s[wr].change -= shift / subtrees
	w.s[wr].shift += shift
	w.s[wl].change += shift / subtrees
	w.s[wr].prelim += shift
	w.s[wr].mod += shift
}

// executeShifts spends the accumulated shift/change amounts on v's
// children in a single right-to-left sweep.
func (w *walker) executeShifts(v tree.ID) {
	var shift, change float64
	kids := w.t.Children(v)
	for i := len(kids) - 1; i >= 0; i-- {
		c := kids[i]
		w.s[c].prelim += shift
		w.s[c].mod += shift
		change += w.s[c].change
		shift += w.s[c].shift + change
	}
}

// ancestor resolves which subtree a contour conflict belongs to: the
// stored ancestor of vil when it is still a sibling of v, otherwise the
// default ancestor.
func (w *walker) ancestor(vil, v, defaultAncestor tree.ID) tree.ID {
	if w.t.Parent(w.s[vil].ancestor) == w.t.Parent(v) {
		return w.s[vil].ancestor
	}
	return defaultAncestor
}

// secondWalk accumulates modifiers top-down, producing final canonical
// coordinates: x = prelim + sum of ancestor mods, y = depth · LevelDistance.
func (w *walker) secondWalk() []Point {
	pts := make([]Point, w.t.Len())

	type frame struct {
		id  tree.ID
		mod float64
	}
	stack := []frame{{id: w.t.Root()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		pts[f.id] = Point{
			X: w.s[f.id].prelim + f.mod,
			Y: float64(w.t.Depth(f.id)) * w.cfg.LevelDistance,
		}

		kids := w.t.Children(f.id)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: kids[i], mod: f.mod + w.s[f.id].mod})
		}
	}
	return pts
}
