package engine

import (
	"github.com/vexdb/vexdb/model"
)

// candidate is a scored record reference produced during a scan.
type candidate struct {
	id    string
	seq   model.Seq
	score float32
}

// topK keeps the k best candidates seen so far.
//
// It is a value-based binary heap whose root is the worst kept candidate, so
// a new candidate only displaces the root when it ranks strictly better.
// Ranking ties are broken by insertion sequence (earlier wins).
type topK struct {
	k              int
	higherIsCloser bool
	items          []candidate
}

func newTopK(k int, higherIsCloser bool) *topK {
	return &topK{
		k:              k,
		higherIsCloser: higherIsCloser,
		items:          make([]candidate, 0, k),
	}
}

// ranksBefore reports whether a belongs ahead of b in the final ordering.
func (t *topK) ranksBefore(a, b candidate) bool {
	if a.score != b.score {
		if t.higherIsCloser {
			return a.score > b.score
		}
		return a.score < b.score
	}
	return a.seq < b.seq
}

// heap ordering: the root is the candidate that ranks last.
func (t *topK) less(i, j int) bool {
	return t.ranksBefore(t.items[j], t.items[i])
}

func (t *topK) push(c candidate) {
	if len(t.items) < t.k {
		t.items = append(t.items, c)
		t.siftUp(len(t.items) - 1)
		return
	}
	if t.ranksBefore(c, t.items[0]) {
		t.items[0] = c
		t.siftDown(0)
	}
}

// drain empties the heap and returns the kept candidates ranked best-first.
func (t *topK) drain() []candidate {
	out := make([]candidate, len(t.items))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = t.pop()
	}
	return out
}

func (t *topK) pop() candidate {
	n := len(t.items)
	root := t.items[0]
	t.items[0] = t.items[n-1]
	t.items = t.items[:n-1]
	if len(t.items) > 0 {
		t.siftDown(0)
	}
	return root
}

func (t *topK) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !t.less(i, p) {
			return
		}
		t.items[i], t.items[p] = t.items[p], t.items[i]
		i = p
	}
}

func (t *topK) siftDown(i int) {
	n := len(t.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && t.less(r, l) {
			best = r
		}
		if !t.less(best, i) {
			return
		}
		t.items[i], t.items[best] = t.items[best], t.items[i]
		i = best
	}
}
