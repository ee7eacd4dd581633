package algo

import "github.com/elektrokombinacija/gridpath/internal/core"

// nodeSet is a coordinate-keyed collection of arena nodes that remembers
// insertion order. Iteration visits members oldest first, which fixes how
// equal-cost ties are broken.
type nodeSet struct {
	arena *nodeArena
	index map[core.Pos]int // position in order
	order []nodeAddr       // nullAddr marks a removed slot
	live  int
	dups  int // inserts that landed on an occupied cell
}

func newNodeSet(a *nodeArena) *nodeSet {
	return &nodeSet{
		arena: a,
		index: make(map[core.Pos]int),
	}
}

func (s *nodeSet) len() int {
	return s.live
}

// contains reports whether some member sits on (x, y).
func (s *nodeSet) contains(x, y int) bool {
	_, ok := s.index[core.Pos{X: x, Y: y}]
	return ok
}

// insert appends addr. A second node on an occupied cell is kept as a
// separate member; index then points at the newest one.
func (s *nodeSet) insert(addr nodeAddr) {
	n := s.arena.get(addr)
	if _, ok := s.index[n.Pos()]; ok {
		s.dups++
	}
	s.index[n.Pos()] = len(s.order)
	s.order = append(s.order, addr)
	s.live++
}

// removeByIdentity removes exactly addr and reports whether it was a member.
func (s *nodeSet) removeByIdentity(addr nodeAddr) (nodeAddr, bool) {
	if addr.isNull() {
		return nullAddr, false
	}
	p := s.arena.get(addr).Pos()
	i, ok := s.index[p]
	if !ok || s.order[i] != addr {
		if s.dups == 0 {
			return nullAddr, false
		}
		if i = s.find(addr); i < 0 {
			return nullAddr, false
		}
	}
	s.order[i] = nullAddr
	s.live--
	if j, ok := s.index[p]; ok && j == i {
		delete(s.index, p)
		if s.dups > 0 {
			s.reindex(p)
		}
	}
	if tombstones := len(s.order) - s.live; tombstones > 32 && tombstones > s.live {
		s.compact()
	}
	return addr, true
}

// find returns the slot of addr in order, or -1.
func (s *nodeSet) find(addr nodeAddr) int {
	for i, a := range s.order {
		if a == addr {
			return i
		}
	}
	return -1
}

// reindex points index[p] at the newest remaining member on p, if any.
func (s *nodeSet) reindex(p core.Pos) {
	for i := len(s.order) - 1; i >= 0; i-- {
		a := s.order[i]
		if !a.isNull() && s.arena.get(a).Pos() == p {
			s.index[p] = i
			return
		}
	}
}

func (s *nodeSet) compact() {
	j := 0
	for _, addr := range s.order {
		if addr.isNull() {
			continue
		}
		s.order[j] = addr
		s.index[s.arena.get(addr).Pos()] = j
		j++
	}
	clear(s.order[j:])
	s.order = s.order[:j]
}

// each calls fn on members in insertion order until fn returns false.
// Members inserted during the walk are not visited.
func (s *nodeSet) each(fn func(addr nodeAddr, n *SearchNode) bool) {
	end := len(s.order)
	for i := 0; i < end; i++ {
		addr := s.order[i]
		if addr.isNull() {
			continue
		}
		if !fn(addr, s.arena.get(addr)) {
			return
		}
	}
}

// positions lists member cells in insertion order.
func (s *nodeSet) positions() []core.Pos {
	out := make([]core.Pos, 0, s.live)
	s.each(func(_ nodeAddr, n *SearchNode) bool {
		out = append(out, n.Pos())
		return true
	})
	return out
}
