package algo

import (
	"math"
	"sync"
)

const (
	initBlockSize = 64
	maxBlockSize  = 1 << 16
)

var nullAddr = nodeAddr{math.MaxUint32, math.MaxUint32}

// nodeAddr locates a SearchNode inside a nodeArena. It is the node's identity
// for the lifetime of one search.
type nodeAddr struct {
	idx uint32
	off uint32
}

func (addr nodeAddr) isNull() bool {
	return addr == nullAddr
}

type nodeBlock struct {
	buf    []SearchNode
	length int
}

func (b *nodeBlock) alloc() (uint32, *SearchNode) {
	if b.length == len(b.buf) {
		return math.MaxUint32, nil
	}
	off := b.length
	b.length++
	return uint32(off), &b.buf[off]
}

// nodeArena owns every SearchNode created by one search. Blocks never move
// once allocated, so *SearchNode pointers stay valid until reset.
type nodeArena struct {
	blockSize int
	blocks    []nodeBlock
	allocated int
}

func (a *nodeArena) alloc() (nodeAddr, *SearchNode) {
	if len(a.blocks) == 0 {
		a.enlarge(initBlockSize)
	}
	idx := len(a.blocks) - 1
	off, n := a.blocks[idx].alloc()
	if n == nil {
		a.enlarge(a.blockSize << 1)
		idx++
		off, n = a.blocks[idx].alloc()
	}
	a.allocated++
	return nodeAddr{uint32(idx), off}, n
}

func (a *nodeArena) enlarge(blockSize int) {
	if blockSize > maxBlockSize {
		blockSize = maxBlockSize
	}
	a.blockSize = blockSize
	a.blocks = append(a.blocks, nodeBlock{buf: make([]SearchNode, blockSize)})
}

func (a *nodeArena) get(addr nodeAddr) *SearchNode {
	if addr.isNull() {
		return nil
	}
	return &a.blocks[addr.idx].buf[addr.off]
}

// capacity is the number of node slots currently held.
func (a *nodeArena) capacity() int {
	c := 0
	for i := range a.blocks {
		c += len(a.blocks[i].buf)
	}
	return c
}

// reset releases every node. The first block is kept for reuse.
func (a *nodeArena) reset() {
	if len(a.blocks) > 0 {
		first := a.blocks[0]
		clear(first.buf[:first.length])
		first.length = 0
		clear(a.blocks)
		a.blocks = append(a.blocks[:0], first)
		a.blockSize = len(first.buf)
	}
	a.allocated = 0
}

var arenaPool = sync.Pool{
	New: func() any { return new(nodeArena) },
}

func getArena() *nodeArena {
	return arenaPool.Get().(*nodeArena)
}

func putArena(a *nodeArena) {
	a.reset()
	arenaPool.Put(a)
}
