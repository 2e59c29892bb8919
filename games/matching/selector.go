/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package matching

import (
	"fmt"
	"slices"
)

// SelectionMode decides which available slot is activated next.
type SelectionMode int

const (
	SelectRandom SelectionMode = iota
	SelectSequential
)

func (m SelectionMode) String() string {
	switch m {
	case SelectRandom:
		return "random"
	case SelectSequential:
		return "sequential"
	}

	return fmt.Sprintf("SelectionMode(%d)", int(m))
}

func ParseSelectionMode(s string) (SelectionMode, error) {
	switch s {
	case "random":
		return SelectRandom, nil
	case "sequential":
		return SelectSequential, nil
	}

	return 0, fmt.Errorf("unknown selection mode %q (must be random or sequential)", s)
}

// Selector tracks which slots of a layout are still unfilled and which one,
// if any, is active.
type Selector struct {
	slots     []Slot
	available []int
	active    int
	mode      SelectionMode
	src       Source
}

func NewSelector(slots []Slot, mode SelectionMode, src Source) *Selector {
	s := &Selector{
		slots:  slots,
		active: -1,
		mode:   mode,
		src:    sourceOrDefault(src),
	}

	s.available = make([]int, len(slots))
	for i := range slots {
		s.available[i] = i
	}

	return s
}

// ActivateNext clears the current active slot and activates another
// available one. It returns false, leaving nothing active, once every slot
// has been filled.
func (s *Selector) ActivateNext() (Slot, bool) {
	s.active = -1

	if len(s.available) == 0 {
		return Slot{}, false
	}

	pick := 0
	if s.mode == SelectRandom {
		pick = s.src.IntN(len(s.available))
	}

	s.active = s.available[pick]

	return s.slots[s.active], true
}

func (s *Selector) Active() (Slot, bool) {
	if s.active < 0 {
		return Slot{}, false
	}

	return s.slots[s.active], true
}

// Fill removes the slot from the available set. Filling the active slot also
// deactivates it.
func (s *Selector) Fill(id int) bool {
	i := slices.IndexFunc(s.available, func(pos int) bool {
		return s.slots[pos].ID == id
	})
	if i < 0 {
		return false
	}

	if s.active == s.available[i] {
		s.active = -1
	}

	s.available = slices.Delete(s.available, i, i+1)

	return true
}

// Available returns the unfilled slots in layout order.
func (s *Selector) Available() []Slot {
	out := make([]Slot, 0, len(s.available))
	for _, i := range s.available {
		out = append(out, s.slots[i])
	}

	return out
}

func (s *Selector) Remaining() int {
	return len(s.available)
}
