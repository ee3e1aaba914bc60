package segscroll

import "go.uber.org/zap"

// rootDidScroll routes an event from the root list. Without a target the
// chain is the root alone, which may only bounce if the policy allows it.
func (c *Coordinator) rootDidScroll(previous Point, dir int) {
	c.route(c.root, LevelRoot, previous, dir)
}

// containerDidScroll routes an event from the target's pages container and
// remembers the page under the finger for settling.
func (c *Coordinator) containerDidScroll(region Region, previous Point, dir int) {
	if c.touch.active && c.target >= 0 {
		if _, ok := region.TouchLocation(); ok {
			c.touch.page = c.targetPage(c.target)
		}
	}
	c.route(region, LevelContainer, previous, dir)
}

// pageDidScroll routes an event from the target's active page.
func (c *Coordinator) pageDidScroll(region Region, previous Point, dir int) {
	c.route(region, LevelPage, previous, dir)
}

// ignore reverts a region that may not take part in the gesture.
func (c *Coordinator) ignore(region Region, previous Point) {
	c.revert(region, previous)
}

func (c *Coordinator) revert(region Region, previous Point) {
	a := region.Axis()
	region.SetOffset(a.WithMain(region.Offset(), a.Main(previous)))
}

// route runs one routing decision for region at level in the target's
// chain and writes back the corrected offset.
func (c *Coordinator) route(region Region, level Level, previous Point, dir int) {
	ax := c.lock.axis
	ch := c.chainFor(c.target, ax)
	at := find(ch, level)
	if at < 0 {
		c.ignore(region, previous)
		return
	}
	last := ax.Main(previous)

	if find(ch, c.perms.Owner()) < 0 {
		settled := append([]link(nil), ch...)
		settled[at].offset = last
		c.grant(Grant(derive(settled, dir, c.eps)), "derive")
	}

	out := advance(step{
		chain:  ch,
		at:     at,
		last:   last,
		dir:    dir,
		owner:  c.perms.Owner(),
		policy: c.policy,
		edge:   c.edgeContext(dir),
		eps:    c.eps,
	})

	if cur := ch[at].offset; cur != out.offset {
		region.SetOffset(ax.WithMain(region.Offset(), out.offset))
		if out.reason != "" {
			c.log.Debug("clamped",
				zap.Stringer("level", level),
				zap.Float64("from", cur),
				zap.Float64("to", out.offset))
		}
	}
	c.grant(out.perms, out.reason)
}

// edgeContext describes whether the target sits at an extremity of the
// composite view in dir and whether the touch began inside its page.
func (c *Coordinator) edgeContext(dir int) edgeContext {
	t := c.target
	ext := false
	if dir < 0 {
		ext = c.isCurrentPageFirst(t)
	} else if dir > 0 {
		ext = c.isCurrentPageLast(t)
	}
	return edgeContext{
		extremity:   ext,
		touchInPage: c.touch.active && c.touch.section == t && c.touch.inPage,
	}
}
