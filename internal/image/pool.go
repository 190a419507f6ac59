package image

import "sync"

// Pool recycles intermediate buffers, mostly transient mip levels that are
// discarded as soon as the next level has been computed from them.
//
// Pool groups buffers by dimensions and format. All methods are safe for
// concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*ImageBuf
	maxSize int // max buffers per bucket
}

// poolKey identifies a bucket of identical image specifications.
type poolKey struct {
	width  int
	height int
	format Format
}

// NewPool creates a pool retaining at most maxPerBucket buffers of each
// size and format. Zero means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*ImageBuf),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed buffer of the given size and format, reusing a
// pooled one when available. Returns nil for invalid parameters.
func (p *Pool) Get(width, height int, format Format) *ImageBuf {
	key := poolKey{width: width, height: height, format: format}

	p.mu.Lock()
	if bucket := p.buckets[key]; len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		bucket[len(bucket)-1] = nil
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()
		return buf
	}
	p.mu.Unlock()

	buf, err := NewImageBuf(width, height, format)
	if err != nil {
		return nil
	}
	return buf
}

// Put clears buf and stores it for reuse. Nil buffers and buffers beyond
// the bucket limit are dropped.
func (p *Pool) Put(buf *ImageBuf) {
	if buf == nil || buf.IsEmpty() {
		return
	}
	buf.Clear()

	key := poolKey{width: buf.width, height: buf.height, format: buf.format}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// Len returns the number of pooled buffers across all buckets.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}

// defaultPool backs GetFromDefault and PutToDefault.
var defaultPool = NewPool(8)

// GetFromDefault retrieves a buffer from the default pool.
func GetFromDefault(width, height int, format Format) *ImageBuf {
	return defaultPool.Get(width, height, format)
}

// PutToDefault returns a buffer to the default pool.
func PutToDefault(buf *ImageBuf) {
	defaultPool.Put(buf)
}
