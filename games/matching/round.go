/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package matching

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// State is the phase of a round.
type State int

const (
	Idle State = iota
	Active
	Resolving
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Resolving:
		return "resolving"
	case Complete:
		return "complete"
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// AdvanceMode decides what happens once a correct match has been shown.
type AdvanceMode int

const (
	// AdvanceAuto activates the next slot as soon as the match is resolved.
	AdvanceAuto AdvanceMode = iota
	// AdvancePress returns to Idle and waits for StartTurn.
	AdvancePress
)

func (m AdvanceMode) String() string {
	switch m {
	case AdvanceAuto:
		return "auto"
	case AdvancePress:
		return "press"
	}

	return fmt.Sprintf("AdvanceMode(%d)", int(m))
}

func ParseAdvanceMode(s string) (AdvanceMode, error) {
	switch s {
	case "auto":
		return AdvanceAuto, nil
	case "press":
		return AdvancePress, nil
	}

	return 0, fmt.Errorf("unknown advance mode %q (must be auto or press)", s)
}

type Options struct {
	Selection SelectionMode
	Advance   AdvanceMode

	// PoolSize is the number of choices for layouts without a distractor
	// count. Zero means DefaultPoolSize.
	PoolSize int

	// Source drives every random decision. Nil uses math/rand/v2.
	Source Source
}

func (o Options) poolSize() int {
	if o.PoolSize <= 0 {
		return DefaultPoolSize
	}

	return o.PoolSize
}

// Outcome classifies the result of a round operation.
type Outcome int

const (
	// Ignored means the operation was not valid in the current state and
	// nothing changed. Result.Reason says why.
	Ignored Outcome = iota
	Activated
	Waiting
	Match
	NoMatch
	Finished
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Activated:
		return "activated"
	case Waiting:
		return "waiting"
	case Match:
		return "match"
	case NoMatch:
		return "no_match"
	case Finished:
		return "finished"
	}

	return fmt.Sprintf("Outcome(%d)", int(o))
}

type Result struct {
	Outcome Outcome

	// Slot is the newly active slot for Activated, and the slot the choice
	// was tried against for Match and NoMatch.
	Slot Slot

	// Item is the submitted item for Match and NoMatch.
	Item Item

	Reason error
}

func ignored(reason error) Result {
	return Result{Outcome: Ignored, Reason: reason}
}

// Choice is one picture offered to the player.
type Choice struct {
	Item Item
	Used bool
}

// Round is the state of one play-through of a layout. It is not safe for
// concurrent use; a single owner drives it.
type Round struct {
	id     string
	layout *Layout
	items  []Item
	opts   Options

	state    State
	choices  []Choice
	selector *Selector
	filled   int
	used     map[string]bool
	placed   map[int]Item
}

// LoadRound prepares a round of layout in the Idle state. It fails with an
// *IntegrityError when some slot cannot be satisfied by any item.
func LoadRound(layout *Layout, items []Item, opts Options) (*Round, error) {
	if layout == nil {
		return nil, &LoadError{Doc: "layout", Err: errors.New("no layout given")}
	}

	pool, problem := GenerateChoicePool(layout, items, opts)
	if problem != nil {
		return nil, problem
	}

	r := &Round{
		layout: layout,
		items:  items,
		opts:   opts,
	}
	r.reset(pool)

	return r, nil
}

// Reset starts the layout over with a fresh pool. The layout and items were
// already accepted by LoadRound, so generation only fails if they have been
// changed since; the previous pool is reused then.
func (r *Round) Reset() {
	pool, ierr := GenerateChoicePool(r.layout, r.items, r.opts)
	if ierr != nil {
		pool = make([]Item, len(r.choices))
		for i, c := range r.choices {
			pool[i] = c.Item
		}
	}

	r.reset(pool)
}

func (r *Round) reset(pool []Item) {
	r.id = uuid.NewString()
	r.state = Idle

	r.choices = make([]Choice, len(pool))
	for i, item := range pool {
		r.choices[i] = Choice{Item: item}
	}

	r.selector = NewSelector(r.layout.Slots, r.opts.Selection, r.opts.Source)
	r.filled = 0
	r.used = make(map[string]bool)
	r.placed = make(map[int]Item)
}

// StartTurn activates the first slot of an idle round, or the next slot
// after a match when the round waits for the player.
func (r *Round) StartTurn() Result {
	if r.state != Idle {
		return ignored(ErrNotIdle)
	}

	return r.activateNext()
}

func (r *Round) activateNext() Result {
	slot, ok := r.selector.ActivateNext()
	if !ok {
		r.state = Complete
		return Result{Outcome: Finished}
	}

	r.state = Active

	return Result{Outcome: Activated, Slot: slot}
}

// SubmitChoice tries the choice with the given item id against the active
// slot.
func (r *Round) SubmitChoice(itemID string) Result {
	if r.state != Active {
		return ignored(ErrNotActive)
	}

	i := r.choiceIndex(itemID)
	if i < 0 {
		return ignored(ErrUnknownChoice)
	}
	if r.choices[i].Used {
		return ignored(ErrChoiceUsed)
	}

	slot, _ := r.selector.Active()
	item := r.choices[i].Item

	if !IsMatch(item, slot) {
		return Result{Outcome: NoMatch, Slot: slot, Item: item}
	}

	r.selector.Fill(slot.ID)
	r.filled++
	r.placed[slot.ID] = item

	if r.canRetire(i) {
		r.choices[i].Used = true
		r.used[item.ID] = true
	}

	r.state = Resolving

	return Result{Outcome: Match, Slot: slot, Item: item}
}

// canRetire reports whether every open slot can still get its own unused
// picture once choice i is taken out of play.
func (r *Round) canRetire(i int) bool {
	open := r.selector.Available()

	adj := make([][]int, len(open))
	for s, slot := range open {
		for j, c := range r.choices {
			if j == i || c.Used {
				continue
			}
			if IsMatch(c.Item, slot) {
				adj[s] = append(adj[s], j)
			}
		}
	}

	_, size := maxAssignment(adj, len(r.choices))

	return size == len(open)
}

// Resolve ends the feedback window that follows a match.
func (r *Round) Resolve() Result {
	if r.state != Resolving {
		return ignored(ErrNotResolving)
	}

	if r.selector.Remaining() == 0 {
		r.state = Complete
		return Result{Outcome: Finished}
	}

	if r.opts.Advance == AdvancePress {
		r.state = Idle
		return Result{Outcome: Waiting}
	}

	return r.activateNext()
}

func (r *Round) choiceIndex(itemID string) int {
	for i, c := range r.choices {
		if c.Item.ID == itemID {
			return i
		}
	}

	return -1
}

func (r *Round) ID() string {
	return r.id
}

func (r *Round) Layout() *Layout {
	return r.layout
}

func (r *Round) State() State {
	return r.state
}

func (r *Round) IsRoundComplete() bool {
	return r.state == Complete
}

func (r *Round) FilledCount() int {
	return r.filled
}

func (r *Round) TotalSlots() int {
	return len(r.layout.Slots)
}

// Snapshot is a copy of the round state for rendering.
type Snapshot struct {
	ID        string
	State     State
	Layout    *Layout
	Choices   []Choice
	Available []Slot
	Active    *Slot
	Placed    map[int]Item
	UsedIDs   []string
	Filled    int
	Total     int
}

func (r *Round) Snapshot() Snapshot {
	snap := Snapshot{
		ID:        r.id,
		State:     r.state,
		Layout:    r.layout,
		Choices:   append([]Choice(nil), r.choices...),
		Available: r.selector.Available(),
		Placed:    make(map[int]Item, len(r.placed)),
		Filled:    r.filled,
		Total:     len(r.layout.Slots),
	}

	if slot, ok := r.selector.Active(); ok {
		snap.Active = &slot
	}

	for id, item := range r.placed {
		snap.Placed[id] = item
	}

	for _, c := range r.choices {
		if r.used[c.Item.ID] {
			snap.UsedIDs = append(snap.UsedIDs, c.Item.ID)
		}
	}

	return snap
}
