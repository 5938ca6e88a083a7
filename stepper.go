package gridastar

import (
	"container/heap"
	"context"

	"github.com/zyedidia/generic/mapset"
)

// Snapshot exposes the per-expansion state of the search. Open and Closed
// are copies; callers may keep them across steps.
type Snapshot struct {
	Current   Cell
	Open      map[Cell]bool
	Closed    map[Cell]bool
	Done      bool
	Found     bool
	Path      []*Node // goal-first, set on the step that reaches the goal
	Cost      int
	StepIndex int
}

// Stepper provides a step-by-step orchestrator over the same concurrent
// workers Search uses.
type Stepper struct {
	ctx     context.Context
	cancel  context.CancelFunc
	grid    *Grid
	goal    Cell
	options Options

	openSet    priorityQueue
	openSetMap map[Cell]*Node
	closedSet  mapset.Set[Cell]

	expandCh chan expandTask
	relaxCh  chan relaxProposal

	stepCount int
	done      bool
	found     bool
}

// NewStepper validates the endpoints and prepares a stepwise search. Close
// must be called to release the workers.
func NewStepper(parent context.Context, grid *Grid, start, goal Cell, opts ...Option) (*Stepper, error) {
	if err := validateEndpoints(grid, start, goal); err != nil {
		return nil, err
	}
	options := buildOptions(opts)

	ctx, cancel := context.WithCancel(parent)
	s := &Stepper{
		ctx: ctx, cancel: cancel,
		grid: grid, goal: goal, options: options,
		openSet:    make(priorityQueue, 0),
		openSetMap: make(map[Cell]*Node),
		closedSet:  mapset.New[Cell](),
		expandCh:   make(chan expandTask),
		relaxCh:    make(chan relaxProposal, len(options.Moves)),
	}

	heap.Init(&s.openSet)
	startNode := newNode(start, grid.Cost(start), 0)
	startNode.score(goal, options.Heuristic)
	heap.Push(&s.openSet, startNode)
	s.openSetMap[start] = startNode

	// start workers
	for i := 0; i < options.Workers; i++ {
		go expandLoop(ctx, s.expandCh, s.relaxCh)
	}

	return s, nil
}

// Close stops the workers.
func (s *Stepper) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Step advances the search by one node expansion and returns a snapshot.
// Once the snapshot reports Done, further calls return the final state
// unchanged.
func (s *Stepper) Step() (Snapshot, error) {
	if s.done {
		return s.snapshot(Cell{}, nil, 0), nil
	}
	if s.openSet.Len() == 0 {
		s.done = true
		return s.snapshot(Cell{}, nil, 0), nil
	}
	select {
	case <-s.ctx.Done():
		s.done = true
		return Snapshot{Done: true, StepIndex: s.stepCount}, s.ctx.Err()
	default:
	}

	s.stepCount++
	current := heap.Pop(&s.openSet).(*Node)
	delete(s.openSetMap, current.Pos)
	s.closedSet.Put(current.Pos)

	if current.Pos == s.goal {
		s.done = true
		s.found = true
		return s.snapshot(current.Pos, reconstructPath(current), current.G), nil
	}

	neighbors := s.grid.neighbors(current.Pos, s.options.Moves, nil)
	for _, neighbor := range neighbors {
		task := expandTask{
			from:      current,
			neighbor:  neighbor,
			entryCost: s.grid.Cost(neighbor),
			goal:      s.goal,
			heuristic: s.options.Heuristic,
		}
		select {
		case <-s.ctx.Done():
			s.done = true
			return Snapshot{Done: true, StepIndex: s.stepCount}, s.ctx.Err()
		case s.expandCh <- task:
		}
	}
	for i := 0; i < len(neighbors); i++ {
		select {
		case <-s.ctx.Done():
			s.done = true
			return Snapshot{Done: true, StepIndex: s.stepCount}, s.ctx.Err()
		case proposal := <-s.relaxCh:
			relax(s.grid, &s.openSet, s.openSetMap, s.closedSet, proposal)
		}
	}

	return s.snapshot(current.Pos, nil, 0), nil
}

func (s *Stepper) snapshot(current Cell, path []*Node, cost int) Snapshot {
	open := make(map[Cell]bool, len(s.openSetMap))
	for pos := range s.openSetMap {
		open[pos] = true
	}
	closed := make(map[Cell]bool, s.closedSet.Size())
	s.closedSet.Each(func(pos Cell) { closed[pos] = true })
	return Snapshot{
		Current:   current,
		Open:      open,
		Closed:    closed,
		Done:      s.done,
		Found:     s.found,
		Path:      path,
		Cost:      cost,
		StepIndex: s.stepCount,
	}
}
