// Package bucketlist provides a small-set container used by the IR
// analyses to track sets of SSA node ids. Items live in an inline array
// and overflow into a singly linked chain of further buckets, so the
// common case of a handful of ids never allocates.
//
// The item value 0 is the end-of-set sentinel. Callers must not store 0;
// ids that can legitimately be zero have to be offset by one at the call
// site. Insertion order is kept on append but Erase backfills from the
// tail, so iteration order is unspecified.
package bucketlist

import (
	"github.com/emberemu/ember/log"
)

// Size is the inline capacity of one bucket. 14 items keeps the struct at
// 64 bytes on 64-bit hosts.
const Size = 14

// poison marks slots past the sentinel so stale reads stand out in dumps.
const poison = 0xDEADBEEF

// List is one bucket of the chain. The zero value is not ready for use;
// call New or Clear first so the sentinel is in place.
type List struct {
	Items [Size]uint32
	Next  *List
}

// New returns an empty list.
func New() *List {
	l := &List{}
	l.Clear()
	return l
}

// Clear empties the list, dropping any overflow buckets.
func (l *List) Clear() {
	l.Items[0] = 0
	for i := 1; i < Size; i++ {
		l.Items[i] = poison
	}
	l.Next = nil
}

// Iterate visits every stored item in chain order.
func (l *List) Iterate(fn func(item uint32)) {
	i := 0
	bucket := l

	for {
		item := bucket.Items[i]
		if item == 0 {
			break
		}

		fn(item)

		if i++; i == Size {
			if bucket.Next == nil {
				log.Crit(log.BucketMonitoring, "bucket chain not terminated")
			}
			bucket = bucket.Next
			i = 0
		}
	}
}

// Find reports whether pred is true for any stored item, stopping at the
// first hit.
func (l *List) Find(pred func(item uint32) bool) bool {
	i := 0
	bucket := l

	for {
		item := bucket.Items[i]
		if item == 0 {
			break
		}

		if pred(item) {
			return true
		}

		if i++; i == Size {
			if bucket.Next == nil {
				log.Crit(log.BucketMonitoring, "bucket in bad state")
			}
			bucket = bucket.Next
			i = 0
		}
	}

	return false
}

// Append stores val at the tail. val must not be 0.
func (l *List) Append(val uint32) {
	that := l
	for that.Next != nil {
		that = that.Next
	}

	var i int
	for i = 0; i < Size; i++ {
		if that.Items[i] == 0 {
			that.Items[i] = val
			break
		}
	}

	if i < Size-1 {
		that.Items[i+1] = 0
	} else {
		that.Next = New()
	}
}

// Erase removes val from the set by overwriting its slot with the current
// tail item. val must be present. A drained overflow bucket is released.
func (l *List) Erase(val uint32) {
	i := 0
	that := l
	foundThat := l
	foundI := 0

	for {
		if that.Items[i] == val {
			foundThat = that
			foundI = i
			break
		} else if i++; i == Size {
			i = 0
			if that.Next == nil {
				log.Crit(log.BucketMonitoring, "erase of element not contained")
			}
			that = that.Next
		}
	}

	for {
		if that.Items[i] == 0 {
			foundThat.Items[foundI] = that.Items[i-1]
			that.Items[i-1] = 0
			break
		} else if i++; i == Size {
			if that.Next.Items[0] == 0 {
				that.Next = nil
				foundThat.Items[foundI] = that.Items[Size-1]
				that.Items[Size-1] = 0
				break
			}
			i = 0
			that = that.Next
		}
	}
}
