package segscroll

// link is one nesting level of the chain along the locked axis.
// Chains are ordered outermost first: root, container, page, keeping only
// the levels that scroll along the locked axis.
type link struct {
	level  Level
	offset float64 // current offset along the axis
	bounds Bounds
	// anchor is the offset at which the next inner level takes over:
	// the section alignment point for the root, the page-aligned offset
	// for a container. Unused for the innermost link.
	anchor float64
}

func (l link) roomIn(dir int, eps float64) bool {
	return hasRoom(l.offset, l.bounds, dir, eps)
}

// step is the input of one routing decision.
type step struct {
	chain  []link
	at     int     // reporting link
	last   float64 // reporting link offset before the event
	dir    int
	owner  Level
	policy BouncePolicy
	edge   edgeContext // outerPinned is filled in by advance
	eps    float64
}

// outcome is the result of one routing decision.
type outcome struct {
	perms  Permissions
	offset float64 // offset the reporting link must end up at
	reason string  // set when permission moved
}

// derive picks the owner for a fresh gesture moving in dir. Starting from
// the outermost level it descends while the current level sits on its
// anchor and a deeper level has room to move.
func derive(chain []link, dir int, eps float64) Level {
	if len(chain) == 0 {
		return LevelRoot
	}
	i := 0
	for i+1 < len(chain) && near(chain[i].offset, chain[i].anchor, eps) {
		j := innermostWithRoom(chain, i+1, dir, eps)
		if j < 0 {
			break
		}
		i = j
	}
	return chain[i].level
}

// advance routes one event reported by chain[s.at].
func advance(s step) outcome {
	cur := s.chain[s.at]
	if cur.level != s.owner {
		return outcome{perms: Grant(s.owner), offset: pinned(s)}
	}

	off := cur.offset
	if s.dir == 0 {
		return outcome{perms: Grant(s.owner), offset: off}
	}

	// hand inward once this level reaches the point where the next one takes over
	if s.at+1 < len(s.chain) && crosses(s.last, off, cur.anchor, s.dir, s.eps) {
		if j := innermostWithRoom(s.chain, s.at+1, s.dir, s.eps); j >= 0 {
			return outcome{perms: Grant(s.chain[j].level), offset: cur.anchor, reason: "aligned"}
		}
	}

	edge := cur.bounds.Edge(s.dir)
	if !reached(off, edge, s.dir, s.eps) {
		return outcome{perms: Grant(s.owner), offset: off}
	}

	outer := nearestOuterWithRoom(s.chain, s.at-1, s.dir, s.eps)
	ctx := s.edge
	ctx.outerPinned = outer < 0
	innermost := len(s.chain) - 1
	page := s.chain[innermost].level == LevelPage

	if s.at == innermost && page && s.policy.pageOwnsEdge(ctx) {
		return outcome{perms: Grant(cur.level), offset: off}
	}
	if outer >= 0 {
		return outcome{perms: Grant(s.chain[outer].level), offset: edge, reason: "edge"}
	}
	if s.policy.outerOwnsEdge() {
		if s.at == 0 {
			return outcome{perms: Grant(cur.level), offset: off}
		}
		return outcome{perms: Grant(s.chain[0].level), offset: edge, reason: "bounce"}
	}
	if s.at != innermost && page && s.policy.pageOwnsEdge(ctx) &&
		!s.chain[innermost].roomIn(s.dir, s.eps) {
		return outcome{perms: Grant(LevelPage), offset: edge, reason: "bounce"}
	}
	return outcome{perms: Grant(cur.level), offset: edge}
}

// pinned is where a level without permission is held: containers snap to
// the page-aligned offset, everything else stays where it was.
func pinned(s step) float64 {
	cur := s.chain[s.at]
	if cur.level == LevelContainer {
		return cur.anchor
	}
	return s.last
}

// crosses reports whether moving from last to cur in dir touches or passes
// anchor, starting from the near side of it.
func crosses(last, cur, anchor float64, dir int, eps float64) bool {
	if dir > 0 {
		return last <= anchor+eps && cur >= anchor-eps
	}
	return last >= anchor-eps && cur <= anchor+eps
}

func innermostWithRoom(chain []link, from, dir int, eps float64) int {
	for j := len(chain) - 1; j >= from; j-- {
		if chain[j].roomIn(dir, eps) {
			return j
		}
	}
	return -1
}

func nearestOuterWithRoom(chain []link, from, dir int, eps float64) int {
	for j := from; j >= 0; j-- {
		if chain[j].roomIn(dir, eps) {
			return j
		}
	}
	return -1
}

// find returns the index of the link for level l, or -1.
func find(chain []link, l Level) int {
	for i := range chain {
		if chain[i].level == l {
			return i
		}
	}
	return -1
}
