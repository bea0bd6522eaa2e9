package disk

// Usage is the I/O activity between two cumulative samples. Two Usage values
// are equal when all four fields match, so == can be used to spot records
// that share one physical device's counters.
type Usage struct {
	ReadBytes    uint64 `json:"read_bytes"`
	WrittenBytes uint64 `json:"written_bytes"`
	ReadOps      uint64 `json:"read_ops"`
	WrittenOps   uint64 `json:"written_ops"`
}

// Delta computes current-previous per field. A field that went backwards
// (wraparound, device reset after reconnection) yields 0.
func Delta(previous, current Counters) Usage {
	return Usage{
		ReadBytes:    clampedSub(current.ReadBytes, previous.ReadBytes),
		WrittenBytes: clampedSub(current.WrittenBytes, previous.WrittenBytes),
		ReadOps:      clampedSub(current.ReadOps, previous.ReadOps),
		WrittenOps:   clampedSub(current.WrittenOps, previous.WrittenOps),
	}
}

func clampedSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

// Equal reports whether all four fields match.
func (u Usage) Equal(o Usage) bool {
	return u == o
}

// IsZero reports whether no activity was observed.
func (u Usage) IsZero() bool {
	return u == Usage{}
}

// UniqueUsages returns the usage of each disk in order, dropping entries equal
// to the one right before them.
func UniqueUsages(disks []*Disk) []Usage {
	res := make([]Usage, 0, len(disks))
	for _, d := range disks {
		u := d.Usage()
		if len(res) > 0 && res[len(res)-1] == u {
			continue
		}
		res = append(res, u)
	}
	return res
}

// decreasedFrom reports whether any counter went backwards compared to prev.
func (c Counters) decreasedFrom(prev Counters) bool {
	return c.ReadBytes < prev.ReadBytes ||
		c.WrittenBytes < prev.WrittenBytes ||
		c.ReadOps < prev.ReadOps ||
		c.WrittenOps < prev.WrittenOps
}
