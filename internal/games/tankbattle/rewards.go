package tankbattle

// rewardQueue buffers per-side scoring events. When full the oldest value
// is dropped.
type rewardQueue struct {
	vals  []int
	limit int
}

func newRewardQueue(limit int) rewardQueue {
	return rewardQueue{vals: make([]int, 0, limit), limit: limit}
}

func (q *rewardQueue) push(v int) {
	if len(q.vals) >= q.limit {
		copy(q.vals, q.vals[1:])
		q.vals = q.vals[:len(q.vals)-1]
	}
	q.vals = append(q.vals, v)
}

// pop returns the oldest value, or 0 when empty.
func (q *rewardQueue) pop() int {
	if len(q.vals) == 0 {
		return 0
	}
	v := q.vals[0]
	copy(q.vals, q.vals[1:])
	q.vals = q.vals[:len(q.vals)-1]
	return v
}

func (q *rewardQueue) len() int {
	return len(q.vals)
}

func (q *rewardQueue) clear() {
	q.vals = q.vals[:0]
}

// PopRewards drains at most one queued reward per side. Scoring events
// beyond the first within one read stay queued for later reads.
func (e *Engine) PopRewards() Rewards {
	return Rewards{
		P1: e.rewards[SidePlayer1].pop(),
		P2: e.rewards[SidePlayer2].pop(),
	}
}

// PendingRewards returns how many rewards are queued per side.
func (e *Engine) PendingRewards() (int, int) {
	return e.rewards[SidePlayer1].len(), e.rewards[SidePlayer2].len()
}
