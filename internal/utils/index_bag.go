package utils

// IndexBag holds a multiset of integer positions with O(1) removal.
// Removal swaps the taken slot with the last one and shrinks, so the
// iteration order of the remaining slots is not preserved.
type IndexBag struct {
	slots []int
}

// NewIndexBag creates a bag filled with positions 0..n-1.
func NewIndexBag(n int) *IndexBag {
	b := &IndexBag{}
	b.Fill(n)
	return b
}

// NewIndexBagFrom creates a bag holding a copy of the given positions.
func NewIndexBagFrom(values []int) *IndexBag {
	slots := make([]int, len(values))
	copy(slots, values)
	return &IndexBag{slots: slots}
}

// Fill resets the bag to positions 0..n-1.
func (b *IndexBag) Fill(n int) {
	if cap(b.slots) < n {
		b.slots = make([]int, n)
	} else {
		b.slots = b.slots[:n]
	}
	for i := 0; i < n; i++ {
		b.slots[i] = i
	}
}

// Len returns the number of positions currently in the bag.
func (b *IndexBag) Len() int {
	return len(b.slots)
}

// Add puts a position back into the bag.
func (b *IndexBag) Add(v int) {
	b.slots = append(b.slots, v)
}

// TakeAt removes and returns the position at slot i.
func (b *IndexBag) TakeAt(i int) int {
	v := b.slots[i]
	last := len(b.slots) - 1
	b.slots[i] = b.slots[last]
	b.slots = b.slots[:last]
	return v
}

// Remove takes a specific position out of the bag. It reports whether the
// position was present. Linear scan; only the replay path uses it.
func (b *IndexBag) Remove(v int) bool {
	for i, s := range b.slots {
		if s == v {
			b.TakeAt(i)
			return true
		}
	}
	return false
}

// Values returns a copy of the remaining positions.
func (b *IndexBag) Values() []int {
	out := make([]int, len(b.slots))
	copy(out, b.slots)
	return out
}
