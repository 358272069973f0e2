package worker

import (
	"fmt"
	"sort"
	"strings"
)

// Order decides the byte layout of the output file
type Order int

const (
	// OrderByLength sorts blocks by ascending compressed size. Equal sizes keep arrival order.
	OrderByLength Order = iota
	// OrderBySequence sorts by worker index, then by each worker's own block order.
	// With partitioned reads this is input order.
	OrderBySequence
)

func (o Order) String() string {
	switch o {
	case OrderByLength:
		return "length"
	case OrderBySequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// ParseOrder maps a flag value to an Order
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "length":
		return OrderByLength, nil
	case "sequence":
		return OrderBySequence, nil
	default:
		return OrderByLength, fmt.Errorf("invalid order: %s", s)
	}
}

// Arrange drops chunks without data and sorts the rest in place according to o
func (o Order) Arrange(chunks []Chunk) []Chunk {
	kept := chunks[:0]
	for _, c := range chunks {
		if c.Data != nil {
			kept = append(kept, c)
		}
	}

	switch o {
	case OrderBySequence:
		sort.SliceStable(kept, func(i, j int) bool {
			if kept[i].Worker != kept[j].Worker {
				return kept[i].Worker < kept[j].Worker
			}
			return kept[i].Seq < kept[j].Seq
		})
	default:
		sort.SliceStable(kept, func(i, j int) bool {
			return len(kept[i].Data) < len(kept[j].Data)
		})
	}
	return kept
}
