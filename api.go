package gridastar

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/zyedidia/generic/mapset"
)

// Sentinel errors returned by Search and NewStepper; match with errors.Is.
var (
	// ErrOutOfBounds reports a start or goal coordinate outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrImpassableEndpoint reports a start or goal cell with terrain cost zero.
	ErrImpassableEndpoint = errors.New("endpoint cell is impassable")
	// ErrUnreachable reports that the open set drained before the goal was reached.
	ErrUnreachable = errors.New("no path found")
)

// Result contains the outcome of a search.
type Result struct {
	Path     []*Node // goal-first; walk Parent links or reverse for start-first order
	Cost     int     // total terrain cost of Path, the start cell included
	Expanded int     // nodes moved to the closed set
	Found    bool
}

// Options defines parameters for the search.
type Options struct {
	Workers   int
	Heuristic Heuristic
	Moves     []Cell
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many worker goroutines should expand neighbors.
func WithWorkers(workers int) Option {
	return func(options *Options) { options.Workers = workers }
}

// WithHeuristic replaces the default Manhattan heuristic. Least-cost results
// hold only for admissible heuristics.
func WithHeuristic(h Heuristic) Option {
	return func(options *Options) { options.Heuristic = h }
}

// WithMoves replaces the default 4-way movement model with the given
// neighbor offsets.
func WithMoves(offsets ...Cell) Option {
	return func(options *Options) { options.Moves = append([]Cell(nil), offsets...) }
}

func buildOptions(opts []Option) Options {
	options := Options{
		Workers:   runtime.NumCPU(),
		Heuristic: Manhattan,
		Moves:     CardinalMoves,
	}
	for _, option := range opts {
		option(&options)
	}
	if options.Workers < 1 {
		options.Workers = 1
	}
	return options
}

// validateEndpoints rejects coordinates the search could never use: cells
// outside the grid and cells with terrain cost zero.
func validateEndpoints(grid *Grid, start, goal Cell) error {
	for _, c := range [...]Cell{start, goal} {
		if !grid.InBounds(c) {
			return fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, c.X, c.Y, grid.width, grid.height)
		}
		if grid.Cost(c) == 0 {
			return fmt.Errorf("%w: (%d,%d)", ErrImpassableEndpoint, c.X, c.Y)
		}
	}
	return nil
}

// Search executes the concurrent A* search over grid from start to goal.
//
// The returned path runs goal-first and includes both endpoints; Cost counts
// every traversed cell's terrain, the start cell included. When equally cheap
// paths exist the one returned depends on expansion order and is not
// guaranteed deterministic.
func Search(ctx context.Context, grid *Grid, start, goal Cell, opts ...Option) (Result, error) {
	if err := validateEndpoints(grid, start, goal); err != nil {
		return Result{}, err
	}

	// --- Apply options ---
	options := buildOptions(opts)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// --- Initialize state ---
	openSet := make(priorityQueue, 0)
	heap.Init(&openSet)

	startNode := newNode(start, grid.Cost(start), 0)
	startNode.score(goal, options.Heuristic)
	heap.Push(&openSet, startNode)

	openSetMap := map[Cell]*Node{start: startNode}
	closedSet := mapset.New[Cell]()

	// Channels for communication. The proposal channel holds a full batch so
	// a pool smaller than the neighbor count never blocks mid-batch.
	expandTaskChannel := make(chan expandTask)
	relaxProposalChannel := make(chan relaxProposal, len(options.Moves))

	// --- Start worker pool ---
	for i := 0; i < options.Workers; i++ {
		go expandLoop(ctx, expandTaskChannel, relaxProposalChannel)
	}

	// --- Orchestrator loop ---
	expandedNodes := 0
	scratch := make([]Cell, 0, len(options.Moves))
	for openSet.Len() > 0 {
		// Cancellation is honored once per iteration.
		select {
		case <-ctx.Done():
			return Result{Expanded: expandedNodes}, ctx.Err()
		default:
		}

		current := heap.Pop(&openSet).(*Node)
		delete(openSetMap, current.Pos)
		closedSet.Put(current.Pos)
		expandedNodes++

		// Goal check
		if current.Pos == goal {
			return Result{
				Path:     reconstructPath(current),
				Cost:     current.G,
				Expanded: expandedNodes,
				Found:    true,
			}, nil
		}

		// Send tasks to workers for each passable neighbor
		neighbors := grid.neighbors(current.Pos, options.Moves, scratch[:0])
		for _, neighbor := range neighbors {
			task := expandTask{
				from:      current,
				neighbor:  neighbor,
				entryCost: grid.Cost(neighbor),
				goal:      goal,
				heuristic: options.Heuristic,
			}
			select {
			case <-ctx.Done():
				return Result{Expanded: expandedNodes}, ctx.Err()
			case expandTaskChannel <- task:
			}
		}

		// Collect proposals for all neighbors of current node
		for i := 0; i < len(neighbors); i++ {
			select {
			case <-ctx.Done():
				return Result{Expanded: expandedNodes}, ctx.Err()
			case proposal := <-relaxProposalChannel:
				relax(grid, &openSet, openSetMap, closedSet, proposal)
			}
		}
	}

	return Result{Expanded: expandedNodes}, ErrUnreachable
}

// relax applies a worker proposal to the open set: closed cells are
// discarded, fresh cells are scored and pushed, and an open cell is rebound
// to the proposing node when the proposed path is strictly cheaper.
func relax(grid *Grid, openSet *priorityQueue, openSetMap map[Cell]*Node, closedSet mapset.Set[Cell], proposal relaxProposal) {
	if closedSet.Has(proposal.to) {
		return
	}
	node, inOpen := openSetMap[proposal.to]
	if !inOpen {
		node = newNode(proposal.to, grid.Cost(proposal.to), proposal.from.G)
		node.scoreWith(proposal.h)
		node.Parent = proposal.from
		heap.Push(openSet, node)
		openSetMap[proposal.to] = node
		return
	}
	if proposal.g < node.G {
		node.rebind(proposal.from)
		heap.Fix(openSet, node.index)
	}
}

// reconstructPath walks Parent links from the goal node's instance. The
// result is goal-first; its last element is the start node, whose Parent is
// nil.
func reconstructPath(goal *Node) []*Node {
	var path []*Node
	for node := goal; node != nil; node = node.Parent {
		path = append(path, node)
	}
	return path
}
