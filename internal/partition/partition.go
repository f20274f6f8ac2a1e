// Package partition computes chunk boundaries for fanning n items out over
// w workers. Both the index-build and ranking phases use this one function,
// so the two fan-outs share identical gap-free, overlap-free coverage.
package partition

// Range is a half-open interval [Start, End) over item positions.
type Range struct {
	Start int
	End   int
}

// Len returns the number of items in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Bounds splits n items into at most w contiguous ranges. The first n%w
// ranges carry one extra item when n does not divide evenly; empty trailing
// ranges (w > n) are omitted. Every position 0..n-1 appears in exactly one
// returned range.
func Bounds(n, w int) []Range {
	if n <= 0 || w <= 0 {
		return nil
	}
	if w > n {
		w = n
	}
	ranges := make([]Range, 0, w)
	size := n / w
	extra := n % w
	start := 0
	for i := 0; i < w; i++ {
		end := start + size
		if i < extra {
			end++
		}
		ranges = append(ranges, Range{Start: start, End: end})
		start = end
	}
	return ranges
}
