/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkInvariants(t *testing.T, r *Round) {
	t.Helper()

	snap := r.Snapshot()

	assert.Equal(t, snap.Total, snap.Filled+len(snap.Available), "filled + available must equal total")
	assert.LessOrEqual(t, snap.Filled, snap.Total)
	assert.Len(t, snap.Placed, snap.Filled)

	if snap.Active != nil {
		assert.Equal(t, Active, snap.State)
		assert.Contains(t, snap.Available, *snap.Active)
	}
	if snap.State == Active {
		assert.NotNil(t, snap.Active)
	}
	if snap.State == Complete {
		assert.Empty(t, snap.Available)
		assert.Equal(t, snap.Total, snap.Filled)
	}
}

func TestRoundScenario(t *testing.T) {
	layout := scenarioLayout()
	layout.Distractors = intPtr(1)

	r, err := LoadRound(layout, scenarioItems(), Options{Selection: SelectSequential, Source: seeded(11)})
	require.NoError(t, err)
	assert.Equal(t, Idle, r.State())
	assert.Len(t, r.Snapshot().Choices, 3)
	checkInvariants(t, r)

	res := r.StartTurn()
	require.Equal(t, Activated, res.Outcome)
	assert.Equal(t, 0, res.Slot.ID)

	res = r.SubmitChoice("x1")
	assert.Equal(t, NoMatch, res.Outcome)
	assert.Equal(t, Active, r.State())
	checkInvariants(t, r)

	res = r.SubmitChoice("a1")
	require.Equal(t, Match, res.Outcome)
	assert.Equal(t, 0, res.Slot.ID)
	assert.Equal(t, Resolving, r.State())
	assert.Equal(t, 1, r.FilledCount())
	checkInvariants(t, r)

	// A second click while the match is being shown changes nothing.
	res = r.SubmitChoice("b1")
	assert.Equal(t, Ignored, res.Outcome)
	assert.ErrorIs(t, res.Reason, ErrNotActive)

	res = r.Resolve()
	require.Equal(t, Activated, res.Outcome)
	assert.Equal(t, 1, res.Slot.ID)

	res = r.SubmitChoice("b1")
	require.Equal(t, Match, res.Outcome)
	r.Resolve()
	checkInvariants(t, r)

	res = r.SubmitChoice("b1")
	assert.Equal(t, Ignored, res.Outcome)
	assert.ErrorIs(t, res.Reason, ErrChoiceUsed)

	res = r.SubmitChoice("a1")
	require.Equal(t, Match, res.Outcome, "a1 stays usable because the [A,B] slot still needs it")
	assert.Equal(t, 2, res.Slot.ID)
	assert.False(t, r.IsRoundComplete())

	res = r.Resolve()
	assert.Equal(t, Finished, res.Outcome)
	assert.True(t, r.IsRoundComplete())
	assert.Equal(t, 3, r.FilledCount())
	checkInvariants(t, r)

	assert.ElementsMatch(t, []string{"a1", "b1"}, r.Snapshot().UsedIDs)
}

func TestRoundAlwaysCompletable(t *testing.T) {
	layout := newLayout("shared", Tags{"A"}, Tags{"A"}, Tags{"A", "B"}, Tags{"B", "C"}, Tags{"C"})
	items := append([]Item{
		{ID: "a1", Index: Tags{"A"}},
		{ID: "b1", Index: Tags{"B"}},
		{ID: "c1", Index: Tags{"C"}},
	}, distractorItems(6)...)

	for seed := range uint64(200) {
		r, err := LoadRound(layout, items, Options{Source: seeded(seed)})
		require.NoError(t, err)

		res := r.StartTurn()
		require.Equal(t, Activated, res.Outcome)

		steps := 0
		for !r.IsRoundComplete() {
			steps++
			require.Less(t, steps, 50, "round did not finish (seed %d)", seed)

			snap := r.Snapshot()
			require.NotNil(t, snap.Active, "seed %d", seed)

			picked := ""
			for _, c := range snap.Choices {
				if !c.Used && IsMatch(c.Item, *snap.Active) {
					picked = c.Item.ID
					break
				}
			}
			require.NotEmpty(t, picked, "no usable picture for slot %d (seed %d)", snap.Active.ID, seed)

			require.Equal(t, Match, r.SubmitChoice(picked).Outcome)
			checkInvariants(t, r)
			r.Resolve()
			checkInvariants(t, r)
		}

		assert.Equal(t, r.TotalSlots(), r.FilledCount())
	}
}

func TestRoundPressToContinue(t *testing.T) {
	layout := newLayout("press", Tags{"A"}, Tags{"B"})
	items := []Item{{ID: "a1", Index: Tags{"A"}}, {ID: "b1", Index: Tags{"B"}}}

	r, err := LoadRound(layout, items, Options{Selection: SelectSequential, Advance: AdvancePress})
	require.NoError(t, err)

	require.Equal(t, Activated, r.StartTurn().Outcome)
	require.Equal(t, Match, r.SubmitChoice("a1").Outcome)

	res := r.Resolve()
	assert.Equal(t, Waiting, res.Outcome)
	assert.Equal(t, Idle, r.State())
	checkInvariants(t, r)

	assert.Equal(t, Ignored, r.SubmitChoice("b1").Outcome)

	res = r.StartTurn()
	require.Equal(t, Activated, res.Outcome)
	assert.Equal(t, 1, res.Slot.ID)

	require.Equal(t, Match, r.SubmitChoice("b1").Outcome)
	assert.Equal(t, Finished, r.Resolve().Outcome)
	assert.True(t, r.IsRoundComplete())
}

func TestRoundIgnoredLeavesStateUnchanged(t *testing.T) {
	r, err := LoadRound(scenarioLayout(), scenarioItems(), Options{Selection: SelectSequential, Source: seeded(2)})
	require.NoError(t, err)

	before := r.Snapshot()

	for _, res := range []Result{
		r.SubmitChoice("a1"),
		r.Resolve(),
	} {
		assert.Equal(t, Ignored, res.Outcome)
		assert.ErrorIs(t, res.Reason, ErrInvalidTransition)
	}
	assert.Equal(t, before, r.Snapshot())

	r.StartTurn()
	before = r.Snapshot()

	res := r.StartTurn()
	assert.ErrorIs(t, res.Reason, ErrNotIdle)
	res = r.SubmitChoice("nope")
	assert.ErrorIs(t, res.Reason, ErrUnknownChoice)
	res = r.Resolve()
	assert.ErrorIs(t, res.Reason, ErrNotResolving)

	assert.Equal(t, before, r.Snapshot())
}

func TestRoundReset(t *testing.T) {
	layout := newLayout("reset", Tags{"A"})
	items := []Item{{ID: "a1", Index: Tags{"A"}}}

	r, err := LoadRound(layout, items, Options{})
	require.NoError(t, err)

	firstID := r.ID()
	r.StartTurn()
	r.SubmitChoice("a1")
	r.Resolve()
	require.True(t, r.IsRoundComplete())

	r.Reset()

	assert.NotEqual(t, firstID, r.ID())
	assert.Equal(t, Idle, r.State())
	assert.Zero(t, r.FilledCount())
	assert.Len(t, r.Snapshot().Available, 1)
	assert.Empty(t, r.Snapshot().UsedIDs)
	assert.Empty(t, r.Snapshot().Placed)
	checkInvariants(t, r)
}

func TestRoundResetKeepsPoolWhenItemsChanged(t *testing.T) {
	layout := newLayout("reset", Tags{"A"})
	items := []Item{
		{ID: "a1", Index: Tags{"A"}},
		{ID: "x1", Index: Tags{"C"}},
	}

	r, err := LoadRound(layout, items, Options{Source: seeded(3)})
	require.NoError(t, err)

	var before []string
	for _, c := range r.Snapshot().Choices {
		before = append(before, c.Item.ID)
	}

	// Nothing in the catalog fits the slot any more.
	items[0].Index = Tags{"B"}

	r.Reset()

	var after []string
	for _, c := range r.Snapshot().Choices {
		after = append(after, c.Item.ID)
		assert.False(t, c.Used)
	}

	assert.ElementsMatch(t, before, after)
	assert.Equal(t, Idle, r.State())
	checkInvariants(t, r)
}

func TestRoundEmptyLayout(t *testing.T) {
	r, err := LoadRound(&Layout{ID: "empty"}, scenarioItems(), Options{})
	require.NoError(t, err)

	assert.Equal(t, Finished, r.StartTurn().Outcome)
	assert.True(t, r.IsRoundComplete())
}

func TestLoadRoundUnsolvable(t *testing.T) {
	r, err := LoadRound(newLayout("broken", Tags{"A"}, Tags{"Q"}), scenarioItems(), Options{})

	assert.Nil(t, r)
	require.ErrorIs(t, err, ErrDataIntegrity)

	var ie *IntegrityError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, []int{1}, ie.Slots)
}

func TestLoadRoundNilLayout(t *testing.T) {
	_, err := LoadRound(nil, scenarioItems(), Options{})

	assert.ErrorIs(t, err, ErrLoad)
}
