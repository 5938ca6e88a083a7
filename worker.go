package gridastar

import "context"

// expandTask represents a request from the orchestrator to the workers.
type expandTask struct {
	from      *Node
	neighbor  Cell
	entryCost int
	goal      Cell
	heuristic Heuristic
}

// relaxProposal is the worker's suggestion for updating a path.
type relaxProposal struct {
	from *Node
	to   Cell
	g    int
	h    int
}

// expandLoop answers expansion tasks with relaxation proposals until the
// context is cancelled. Tasks only read from.G; the orchestrator never pops
// a node while its batch is in flight, so no locking is needed.
func expandLoop(ctx context.Context, tasks <-chan expandTask, proposals chan<- relaxProposal) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-tasks:
			proposal := relaxProposal{
				from: task.from,
				to:   task.neighbor,
				g:    task.from.G + task.entryCost,
				h:    task.heuristic(task.neighbor, task.goal),
			}
			select {
			case <-ctx.Done():
				return
			case proposals <- proposal:
			}
		}
	}
}
