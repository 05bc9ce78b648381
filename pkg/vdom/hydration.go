package vdom

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// HIDGenerator hands out hydration IDs ("h1", "h2", ...). Numbering is
// in document order, so two renders of the same tree agree on IDs.
type HIDGenerator struct {
	counter atomic.Uint32
}

// NewHIDGenerator creates a generator starting at h1.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next hydration ID.
func (g *HIDGenerator) Next() string {
	return "h" + strconv.FormatUint(uint64(g.counter.Add(1)), 10)
}

// Reset restarts numbering at h1.
func (g *HIDGenerator) Reset() {
	g.counter.Store(0)
}

// Current returns the number of IDs handed out since the last reset.
func (g *HIDGenerator) Current() uint32 {
	return g.counter.Load()
}

// AssignHIDs gives every interactive element in the tree a fresh HID.
// Elements without handlers keep an empty HID.
func AssignHIDs(node *VNode, gen *HIDGenerator) {
	Walk(node, func(n *VNode) bool {
		if n.IsInteractive() {
			n.HID = gen.Next()
		} else {
			n.HID = ""
		}
		return true
	})
}

// CollectHandlers returns the event handlers of every node with a HID,
// keyed as "<hid>_<event>" (e.g. "h1_onclick").
func CollectHandlers(node *VNode) map[string]any {
	result := make(map[string]any)
	Walk(node, func(n *VNode) bool {
		if n.HID == "" {
			return true
		}
		for key, value := range n.Props {
			if strings.HasPrefix(key, "on") && value != nil {
				result[n.HID+"_"+key] = value
			}
		}
		return true
	})
	return result
}

// FindByHID returns the node carrying hid, or nil.
func FindByHID(node *VNode, hid string) *VNode {
	var found *VNode
	if hid == "" {
		return nil
	}
	Walk(node, func(n *VNode) bool {
		if found != nil {
			return false
		}
		if n.HID == hid {
			found = n
			return false
		}
		return true
	})
	return found
}

// CountInteractive returns the number of elements with event handlers.
func CountInteractive(node *VNode) int {
	count := 0
	Walk(node, func(n *VNode) bool {
		if n.IsInteractive() {
			count++
		}
		return true
	})
	return count
}

// ClearHIDs removes every HID from the tree.
func ClearHIDs(node *VNode) {
	Walk(node, func(n *VNode) bool {
		n.HID = ""
		return true
	})
}
