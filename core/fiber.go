package core

// DefaultFiberSlots is the number of wavelength slots on a new fibre.
const DefaultFiberSlots = 10

// Fiber is a fixed set of wavelength slots. A slot holds the Gbps placed on
// it; 0 means free.
type Fiber struct {
	Slots []float64 `json:"slots"`
}

// NewFiber returns an empty fibre with n slots.
func NewFiber(n int) *Fiber {
	if n <= 0 {
		n = DefaultFiberSlots
	}
	return &Fiber{Slots: make([]float64, n)}
}

// FirstFree returns the index of the first free slot, or -1.
func (f *Fiber) FirstFree() int {
	for i, v := range f.Slots {
		if v == 0 {
			return i
		}
	}
	return -1
}

// Occupy writes capacity into the first free slot. It reports false when
// every slot is taken. A zero capacity leaves the slot free.
func (f *Fiber) Occupy(capacity float64) bool {
	i := f.FirstFree()
	if i < 0 {
		return false
	}
	f.Slots[i] = capacity
	return true
}

// Occupied reports whether any slot carries traffic.
func (f *Fiber) Occupied() bool {
	return f.Used() > 0
}

// Used counts the occupied slots.
func (f *Fiber) Used() int {
	n := 0
	for _, v := range f.Slots {
		if v > 0 {
			n++
		}
	}
	return n
}

// Load is the total Gbps carried.
func (f *Fiber) Load() float64 {
	var sum float64
	for _, v := range f.Slots {
		sum += v
	}
	return sum
}
