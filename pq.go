package osmroute

// queueItem entry of open set. Several entries for the same node may coexist:
// stale ones are dropped on pop once node has been visited.
type queueItem struct {
	nodeID NodeID
	f      float64
	h      float64
}

// priorityQueue min-heap ordered by f, then by h, then by node identifier
type priorityQueue []queueItem

func (queue priorityQueue) Len() int { return len(queue) }
func (queue priorityQueue) Less(i, j int) bool {
	if queue[i].f != queue[j].f {
		return queue[i].f < queue[j].f
	}
	if queue[i].h != queue[j].h {
		return queue[i].h < queue[j].h
	}
	return queue[i].nodeID < queue[j].nodeID
}
func (queue priorityQueue) Swap(i, j int) { queue[i], queue[j] = queue[j], queue[i] }

func (queue *priorityQueue) Push(x any) {
	*queue = append(*queue, x.(queueItem))
}

func (queue *priorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	*queue = oldQueue[:n-1]
	return item
}
