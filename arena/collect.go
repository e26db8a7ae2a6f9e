// ABOUTME: Mark/sweep collection driven by the arena's root set
// ABOUTME: Safe points are the only places a collection can run

package arena

// MaybeCollect is a safe point. It collects when stress mode is on or the
// allocation count since the last collection has reached the threshold.
// Built-ins call it before allocating; any unrooted Obj held across it must
// be considered invalid.
func (a *Arena) MaybeCollect() bool {
	if !a.cfg.Stress && (a.cfg.Threshold <= 0 || a.sinceGC < a.cfg.Threshold) {
		return false
	}
	a.Collect()
	return true
}

// Collect marks everything reachable from the root set, frees the rest and
// starts a new epoch.
func (a *Arena) Collect() {
	if a.collecting {
		fatal(ErrCollecting, "collection re-entered")
	}
	a.collecting = true
	defer func() { a.collecting = false }()

	var stack WorkList
	a.roots.each(func(_ int, t Trace) {
		t.Mark(&stack)
	})
	rootRefs := stack.Len()

	marked := 0
	for {
		raw, ok := stack.pop()
		if !ok {
			break
		}
		idx := raw.Payload()
		if idx >= uint64(len(a.cells)) {
			fatal(ErrDeadObject, "traced reference to cell %d beyond heap", idx)
		}
		c := &a.cells[idx]
		if !c.used || c.tag != raw.Tag() {
			fatal(ErrDeadObject, "traced %s reference to freed cell %d", raw.Tag(), idx)
		}
		if c.marked {
			continue
		}
		c.marked = true
		marked++
		if c.cons != nil {
			c.cons.Mark(&stack)
		}
	}

	freed := a.sweep()
	a.epoch++
	if a.epoch == 0 {
		a.epoch = 1
	}
	a.sinceGC = 0
	a.stats.Collections++
	a.stats.Freed += uint64(freed)
	a.stats.LastMarked = marked
	a.stats.LastRootRefs = rootRefs

	a.log.Debug().
		Uint32("epoch", a.epoch).
		Int("roots", a.roots.Len()).
		Int("root_refs", rootRefs).
		Int("marked", marked).
		Int("freed", freed).
		Msg("collection finished")
}

func (a *Arena) sweep() int {
	freed := 0
	for i := range a.cells {
		c := &a.cells[i]
		if !c.used {
			continue
		}
		if c.marked {
			c.marked = false
			continue
		}
		if c.cons != nil {
			c.cons.dead = true
		}
		*c = cell{}
		a.free = append(a.free, uint32(i))
		freed++
	}
	return freed
}
