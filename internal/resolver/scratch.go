package resolver

import "sync"

// defaultScratchCapacity is the initial capacity of the operator and
// operand stacks. Scratch that grew past this capacity while
// evaluating an unusually deep expression is not returned to the pool, so
// a single deep call never inflates the steady-state memory of every
// subsequent caller.
const defaultScratchCapacity = 256

// scratch holds the per-call working state a single Resolve invocation
// needs: the operator stack, where each stackOp carries the byte position
// its operator was pushed at, and the operand stack. Function arguments
// are copied into a fresh slice per call and are not part of the scratch.
type scratch[T any] struct {
	ops      []stackOp
	operands []T
}

func newScratch[T any]() *scratch[T] {
	return &scratch[T]{
		ops:      make([]stackOp, 0, defaultScratchCapacity),
		operands: make([]T, 0, defaultScratchCapacity),
	}
}

// reset clears the scratch for reuse. If it grew beyond the default
// capacity, it is discarded rather than kept, and the caller should stop
// referencing it (a fresh one will be obtained from the pool next time).
func (s *scratch[T]) reset() (keep bool) {
	if cap(s.ops) > defaultScratchCapacity || cap(s.operands) > defaultScratchCapacity {
		return false
	}
	s.ops = s.ops[:0]
	var zero T
	for i := range s.operands {
		s.operands[i] = zero
	}
	s.operands = s.operands[:0]
	return true
}

// scratchPool wraps sync.Pool with the type-parameterized get/put pair the
// engine needs. Go has no goroutine-local storage, so pooling is how this
// gives every concurrent call independent scratch space while still
// amortizing allocation for the common case of repeated calls from a
// small set of hot goroutines.
type scratchPool[T any] struct {
	pool sync.Pool
}

func newScratchPool[T any]() *scratchPool[T] {
	return &scratchPool[T]{
		pool: sync.Pool{
			New: func() any { return newScratch[T]() },
		},
	}
}

func (p *scratchPool[T]) get() *scratch[T] {
	return p.pool.Get().(*scratch[T])
}

func (p *scratchPool[T]) put(s *scratch[T]) {
	if s.reset() {
		p.pool.Put(s)
	}
}
