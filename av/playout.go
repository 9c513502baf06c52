package av

import "sync"

// playoutQueue is a byte FIFO of PCM chunks in the engine playout format.
// Chunks pushed with wrap are stored without copying.
type playoutQueue struct {
	mu     sync.Mutex
	chunks [][]byte
	head   int // read offset into chunks[0]
	size   int // queued bytes
	limit  int
}

func newPlayoutQueue(limit int) *playoutQueue {
	return &playoutQueue{limit: limit}
}

// Push appends b. It fails when the queue would exceed its limit.
func (q *playoutQueue) Push(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.size+len(b) > q.limit {
		return ErrPlayoutQueueFull
	}
	q.chunks = append(q.chunks, b)
	q.size += len(b)
	return nil
}

// Read fills dst from the front of the queue and returns the bytes copied.
func (q *playoutQueue) Read(dst []byte) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for n < len(dst) && len(q.chunks) > 0 {
		c := copy(dst[n:], q.chunks[0][q.head:])
		n += c
		q.head += c
		if q.head == len(q.chunks[0]) {
			q.chunks[0] = nil
			q.chunks = q.chunks[1:]
			q.head = 0
		}
	}
	q.size -= n
	return n
}

// Len returns the queued byte count.
func (q *playoutQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Drain discards everything queued.
func (q *playoutQueue) Drain() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.chunks = nil
	q.head = 0
	q.size = 0
}
