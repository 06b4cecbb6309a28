package parallel

// Band is a half-open range of image rows [Y0, Y1).
type Band struct {
	Y0 int
	Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// SplitRows divides [y0, y1) into at most n contiguous, non-overlapping
// bands whose sizes differ by at most one row. It returns nil when the
// range is empty.
func SplitRows(y0, y1, n int) []Band {
	total := y1 - y0
	if total <= 0 {
		return nil
	}
	n = max(min(n, total), 1)

	bands := make([]Band, 0, n)
	base, extra := total/n, total%n
	start := y0

	for i := range n {
		rows := base
		if i < extra {
			rows++
		}
		bands = append(bands, Band{Y0: start, Y1: start + rows})
		start += rows
	}

	return bands
}
