package renderer

import "fmt"

// ScanlineUnit is one independent unit of parallel work: a contiguous band of
// scanlines rendered with its own random stream. Rows are counted bottom-up.
type ScanlineUnit struct {
	Index    int // Position in the partition; also offsets the unit's seed
	StartRow int // First scanline
	Rows     int // Number of scanlines
}

// EndRow returns one past the last scanline of the unit
func (u ScanlineUnit) EndRow() int {
	return u.StartRow + u.Rows
}

// PartitionScanlines splits height scanlines for the requested number of tasks.
//
// With base = height / tasks and remainder = height % tasks, the result holds
// tasks units of base rows each, followed by remainder single-row units
// covering the final rows. Units are disjoint and their row counts sum to
// height exactly. When tasks exceeds height it is reduced to height so that no
// unit is empty.
func PartitionScanlines(height, tasks int) ([]ScanlineUnit, error) {
	if height <= 0 {
		return nil, fmt.Errorf("partition scanlines: height must be positive, got %d", height)
	}
	if tasks <= 0 {
		return nil, fmt.Errorf("partition scanlines: task count must be positive, got %d", tasks)
	}
	tasks = min(tasks, height)

	base := height / tasks
	remainder := height % tasks

	units := make([]ScanlineUnit, 0, tasks+remainder)
	for i := 0; i < tasks; i++ {
		units = append(units, ScanlineUnit{Index: i, StartRow: i * base, Rows: base})
	}
	for j := 0; j < remainder; j++ {
		units = append(units, ScanlineUnit{Index: tasks + j, StartRow: tasks*base + j, Rows: 1})
	}

	return units, nil
}
