package rbtree

// rotateLeft lifts p's right child into p's position.
//
//	   p               r
//	  / \             / \
//	 a   r    ==>    p   c
//	    / \         / \
//	   b   c       a   b
func (t *Tree[K, V]) rotateLeft(p *Node[K, V]) {
	if p == nil || p.right == nil {
		return
	}
	r := p.right
	p.right = r.left
	if r.left != nil {
		r.left.parent = p
	}
	r.parent = p.parent
	t.replaceChild(p.parent, p, r)
	r.left = p
	p.parent = r
}

// rotateRight lifts p's left child into p's position (mirror of rotateLeft).
func (t *Tree[K, V]) rotateRight(p *Node[K, V]) {
	if p == nil || p.left == nil {
		return
	}
	l := p.left
	p.left = l.right
	if l.right != nil {
		l.right.parent = p
	}
	l.parent = p.parent
	t.replaceChild(p.parent, p, l)
	l.right = p
	p.parent = l
}

// fixAfterInsert restores the red-black invariants after x has been linked
// in as a red leaf.
func (t *Tree[K, V]) fixAfterInsert(x *Node[K, V]) {
	x.color = Red
	for x != nil && x != t.root && x.parent.color == Red {
		p := x.parent
		g := p.parent // exists: a red node is never the root
		if p == g.left {
			u := g.right
			if colorOf(u) == Red {
				// red uncle: push blackness down from g, continue at g
				p.color = Black
				u.color = Black
				g.color = Red
				x = g
				continue
			}
			if x == p.right {
				// inner child: rotate into the outer case
				x = p
				t.rotateLeft(x)
				p = x.parent
			}
			p.color = Black
			g.color = Red
			t.rotateRight(g)
		} else {
			u := g.left
			if colorOf(u) == Red {
				p.color = Black
				u.color = Black
				g.color = Red
				x = g
				continue
			}
			if x == p.left {
				x = p
				t.rotateRight(x)
				p = x.parent
			}
			p.color = Black
			g.color = Red
			t.rotateLeft(g)
		}
	}
	t.root.color = Black
}

// fixAfterDelete repairs the black-height deficit at x after a black node has
// been spliced out. x is either the promoted child or, for a leafless
// removal, the removed node itself, still linked to its parent.
func (t *Tree[K, V]) fixAfterDelete(x *Node[K, V]) {
	for x != t.root && colorOf(x) == Black {
		if x == leftOf(parentOf(x)) {
			sib := rightOf(parentOf(x))
			if colorOf(sib) == Red {
				// expose the black sibling
				setColor(sib, Black)
				setColor(parentOf(x), Red)
				t.rotateLeft(parentOf(x))
				sib = rightOf(parentOf(x))
			}
			if colorOf(leftOf(sib)) == Black && colorOf(rightOf(sib)) == Black {
				// no red nephew: move the deficit one level up
				setColor(sib, Red)
				x = parentOf(x)
				continue
			}
			if colorOf(rightOf(sib)) == Black {
				setColor(leftOf(sib), Black)
				setColor(sib, Red)
				t.rotateRight(sib)
				sib = rightOf(parentOf(x))
			}
			setColor(sib, colorOf(parentOf(x)))
			setColor(parentOf(x), Black)
			setColor(rightOf(sib), Black)
			t.rotateLeft(parentOf(x))
			x = t.root
		} else {
			sib := leftOf(parentOf(x))
			if colorOf(sib) == Red {
				setColor(sib, Black)
				setColor(parentOf(x), Red)
				t.rotateRight(parentOf(x))
				sib = leftOf(parentOf(x))
			}
			if colorOf(rightOf(sib)) == Black && colorOf(leftOf(sib)) == Black {
				setColor(sib, Red)
				x = parentOf(x)
				continue
			}
			if colorOf(leftOf(sib)) == Black {
				setColor(rightOf(sib), Black)
				setColor(sib, Red)
				t.rotateLeft(sib)
				sib = leftOf(parentOf(x))
			}
			setColor(sib, colorOf(parentOf(x)))
			setColor(parentOf(x), Black)
			setColor(leftOf(sib), Black)
			t.rotateRight(parentOf(x))
			x = t.root
		}
	}
	setColor(x, Black)
}
