// Package batch groups assembled enclosing-subgraph records into training
// batches and hosts the sparsity diagnostic comparing the two extraction
// strategies.
package batch

import (
	"errors"
	"fmt"

	"github.com/oleksiik/enclose/subgraph"
)

// Sentinel errors for batching.
var (
	// ErrNoRecords is returned when collating an empty record list.
	ErrNoRecords = errors.New("batch: no records to collate")

	// ErrNilRecord is returned when a record slot is nil.
	ErrNilRecord = errors.New("batch: nil record")
)

// Batch is a list of records packed into one contiguous structure, the
// layout GNN frameworks expect: node arrays concatenated, edge indices
// shifted by each record's node offset, and an assignment vector mapping
// every node back to its originating record.
type Batch struct {
	// NodeIDs, Labels and Features are the per-node arrays, concatenated.
	NodeIDs  []int64
	Labels   []int64
	Features [][]float32

	// EdgeIndex holds all arcs with locally-shifted indices; EdgeWeight
	// and TargetMask stay aligned with it.
	EdgeIndex  [][2]int64
	EdgeWeight []float64
	TargetMask []bool

	// NodeToRecord maps each node row to its record's position.
	NodeToRecord []int64

	// Ptr holds record node offsets: record i owns rows Ptr[i]..Ptr[i+1].
	Ptr []int64

	// Y is the per-record binary link label.
	Y []int
}

// Collate packs records into a Batch, preserving record order and
// per-record boundaries. A pure layout operation: no values are changed,
// only indices are shifted.
func Collate(records []*subgraph.Record) (*Batch, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	totalNodes, totalEdges := 0, 0
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("%w: slot %d", ErrNilRecord, i)
		}
		totalNodes += rec.NumNodes()
		totalEdges += rec.NumEdges()
	}

	b := &Batch{
		NodeIDs:      make([]int64, 0, totalNodes),
		Labels:       make([]int64, 0, totalNodes),
		EdgeIndex:    make([][2]int64, 0, totalEdges),
		EdgeWeight:   make([]float64, 0, totalEdges),
		TargetMask:   make([]bool, 0, totalEdges),
		NodeToRecord: make([]int64, 0, totalNodes),
		Ptr:          make([]int64, 1, len(records)+1),
		Y:            make([]int, 0, len(records)),
	}
	withFeatures := records[0].Features != nil
	if withFeatures {
		b.Features = make([][]float32, 0, totalNodes)
	}

	offset := int64(0)
	for i, rec := range records {
		b.NodeIDs = append(b.NodeIDs, rec.NodeIDs...)
		b.Labels = append(b.Labels, rec.Labels...)
		if withFeatures {
			b.Features = append(b.Features, rec.Features...)
		}
		for _, e := range rec.EdgeIndex {
			b.EdgeIndex = append(b.EdgeIndex, [2]int64{e[0] + offset, e[1] + offset})
		}
		b.EdgeWeight = append(b.EdgeWeight, rec.EdgeWeight...)
		b.TargetMask = append(b.TargetMask, rec.TargetMask...)
		for range rec.NodeIDs {
			b.NodeToRecord = append(b.NodeToRecord, int64(i))
		}
		b.Y = append(b.Y, rec.Y)
		offset += int64(rec.NumNodes())
		b.Ptr = append(b.Ptr, offset)
	}

	return b, nil
}

// NumRecords returns the number of packed records.
func (b *Batch) NumRecords() int { return len(b.Y) }

// NumNodes returns the total node rows in the batch.
func (b *Batch) NumNodes() int { return len(b.NodeIDs) }

// NumEdges returns the total arcs in the batch, masked targets included.
func (b *Batch) NumEdges() int { return len(b.EdgeIndex) }
