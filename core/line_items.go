package core

import (
	"fmt"

	"github.com/google/btree"
)

// LineItem is one row of a transaction: a product, a set component or a
// modification. Rows form a parent-pointing forest; children reference
// their parent, never the other way around.
type LineItem struct {
	LineItemID       string `json:"line_item_id"`
	LineNumber       int32  `json:"line_number"`
	ProductID        string `json:"product_id"`
	Quantity         int32  `json:"quantity"`
	UnitPrice        Money  `json:"unit_price"`
	ExtendedPrice    Money  `json:"extended_price"`
	ParentLineNumber int32  `json:"parent_line_number,omitempty"` // 0 = root
	ParentLineItemID string `json:"parent_line_item_id,omitempty"`
	Voided           bool   `json:"voided"`
	VoidReason       string `json:"void_reason,omitempty"`
}

// IsRoot reports whether the line has no parent.
func (li *LineItem) IsRoot() bool { return li.ParentLineNumber == 0 }

// lineIndex stores a transaction's rows ordered by line number with a
// secondary index on the stable id. Line numbers are monotonic and never
// compacted, so btree order is insertion order.
type lineIndex struct {
	byNumber *btree.BTreeG[*LineItem]
	byID     map[string]*LineItem
}

func newLineIndex() *lineIndex {
	return &lineIndex{
		byNumber: btree.NewG(8, func(a, b *LineItem) bool {
			return a.LineNumber < b.LineNumber
		}),
		byID: make(map[string]*LineItem),
	}
}

func (idx *lineIndex) len() int { return idx.byNumber.Len() }

// insert appends a fully built row. The caller assigns id and number;
// both must be fresh.
func (idx *lineIndex) insert(li *LineItem) {
	idx.byNumber.ReplaceOrInsert(li)
	idx.byID[li.LineItemID] = li
}

func (idx *lineIndex) findByNumber(n int32) (*LineItem, bool) {
	return idx.byNumber.Get(&LineItem{LineNumber: n})
}

func (idx *lineIndex) findByID(id string) (*LineItem, bool) {
	li, ok := idx.byID[id]
	return li, ok
}

// ascend visits every row in line-number order while fn returns true.
func (idx *lineIndex) ascend(fn func(*LineItem) bool) {
	idx.byNumber.Ascend(fn)
}

// childrenOf returns the direct descendants of parent in insertion
// order.
func (idx *lineIndex) childrenOf(parent int32) []*LineItem {
	var out []*LineItem
	idx.ascend(func(li *LineItem) bool {
		if li.ParentLineNumber == parent {
			out = append(out, li)
		}
		return true
	})
	return out
}

// descendantsOf returns the transitive closure of childrenOf in
// line-number order, which is insertion order. A single ascending pass
// suffices because a parent must exist before any of its children, so
// parents always carry smaller numbers.
func (idx *lineIndex) descendantsOf(parent int32) []*LineItem {
	members := map[int32]struct{}{parent: {}}
	var out []*LineItem
	idx.ascend(func(li *LineItem) bool {
		if li.LineNumber == parent {
			return true
		}
		if _, ok := members[li.ParentLineNumber]; ok {
			members[li.LineNumber] = struct{}{}
			out = append(out, li)
		}
		return true
	})
	return out
}

// validateParent checks that parent exists, is not voided and that its
// parent chain terminates. The chain walk guards against cycles that
// could only arise from a corrupted index; a well-formed insert cannot
// create one because the new row is not reachable yet.
func (idx *lineIndex) validateParent(parent int32) error {
	li, ok := idx.findByNumber(parent)
	if !ok {
		return fmt.Errorf("pos: parent line %d: %w", parent, ErrNotFound)
	}
	if li.Voided {
		return fmt.Errorf("pos: parent line %d is voided: %w", parent, ErrValidation)
	}
	seen := map[int32]struct{}{}
	for cur := li; !cur.IsRoot(); {
		if _, dup := seen[cur.LineNumber]; dup {
			return fmt.Errorf("pos: parent chain of line %d would create a cycle: %w", parent, ErrValidation)
		}
		seen[cur.LineNumber] = struct{}{}
		next, ok := idx.findByNumber(cur.ParentLineNumber)
		if !ok {
			return fmt.Errorf("pos: parent chain of line %d is broken at %d: %w", parent, cur.ParentLineNumber, ErrNotFound)
		}
		cur = next
	}
	return nil
}

// voidCascade marks the target row and every descendant voided, deepest
// first. Rows already voided are left untouched, which makes a repeat
// cascade a no-op. Descendants record that the void came from above.
func (idx *lineIndex) voidCascade(n int32, reason string) error {
	target, ok := idx.findByNumber(n)
	if !ok {
		return fmt.Errorf("pos: line %d: %w", n, ErrNotFound)
	}
	childReason := fmt.Sprintf("Parent voided: %s", reason)
	desc := idx.descendantsOf(n)
	for i := len(desc) - 1; i >= 0; i-- {
		if desc[i].Voided {
			continue
		}
		desc[i].Voided = true
		desc[i].VoidReason = childReason
	}
	if !target.Voided {
		target.Voided = true
		target.VoidReason = reason
	}
	return nil
}
