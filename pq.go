package gridastar

// priorityQueue orders open-set nodes by F, breaking ties toward the smaller
// H so nodes estimated closer to the goal come out first.
type priorityQueue []*Node

func (queue priorityQueue) Len() int { return len(queue) }
func (queue priorityQueue) Less(i, j int) bool {
	if queue[i].F != queue[j].F {
		return queue[i].F < queue[j].F
	}
	return queue[i].H < queue[j].H
}
func (queue priorityQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].index = i
	queue[j].index = j
}

func (queue *priorityQueue) Push(x any) {
	node := x.(*Node)
	node.index = len(*queue)
	*queue = append(*queue, node)
}

func (queue *priorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	node := oldQueue[n-1]
	oldQueue[n-1] = nil
	node.index = -1
	*queue = oldQueue[:n-1]
	return node
}
