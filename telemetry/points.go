package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/galaxy/galaxy"
)

// PointRecord is one particle of a generated buffer.
type PointRecord struct {
	X float32 `csv:"x"`
	Y float32 `csv:"y"`
	Z float32 `csv:"z"`
	R float32 `csv:"r"`
	G float32 `csv:"g"`
	B float32 `csv:"b"`
}

// PointRecords flattens a buffer into rows. Buffers without colors
// (the starfield) get zero color columns.
func PointRecords(buf *galaxy.Buffer) []PointRecord {
	n := buf.Len()
	rows := make([]PointRecord, n)
	for i := range rows {
		j := i * 3
		rows[i].X = buf.Positions[j]
		rows[i].Y = buf.Positions[j+1]
		rows[i].Z = buf.Positions[j+2]
		if len(buf.Colors) >= j+3 {
			rows[i].R = buf.Colors[j]
			rows[i].G = buf.Colors[j+1]
			rows[i].B = buf.Colors[j+2]
		}
	}
	return rows
}

// WritePoints writes buf as CSV with a header row.
func WritePoints(w io.Writer, buf *galaxy.Buffer) error {
	if err := gocsv.Marshal(PointRecords(buf), w); err != nil {
		return fmt.Errorf("writing points: %w", err)
	}
	return nil
}
