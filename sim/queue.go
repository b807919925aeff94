// Implements the WaitQueue, which holds resource requests that could not be
// granted immediately. Requests are enqueued at the tail and granted from the
// head, so the longest-waiting requester is always served first.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue is a FIFO queue of pending resource requests.
type WaitQueue struct {
	queue []*ResourceRequest
}

// Enqueue adds a request to the back of the wait queue.
func (wq *WaitQueue) Enqueue(req *ResourceRequest) {
	wq.queue = append(wq.queue, req)
}

// Len returns the number of requests in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the request at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *ResourceRequest {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Dequeue removes and returns the request at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() *ResourceRequest {
	if len(wq.queue) == 0 {
		return nil
	}
	head := wq.queue[0]
	wq.queue = wq.queue[1:]
	return head
}

// Remove deletes a request from anywhere in the queue, preserving the order
// of the remaining entries. Used when a deadline fires before a grant.
// Returns false if the request is not queued.
func (wq *WaitQueue) Remove(req *ResourceRequest) bool {
	for i, queued := range wq.queue {
		if queued == req {
			wq.queue = append(wq.queue[:i], wq.queue[i+1:]...)
			return true
		}
	}
	return false
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, req := range wq.queue {
		sb.WriteString(fmt.Sprintf("p%d", req.Passenger.ID))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
