/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package matching

import "math/rand/v2"

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed*0x9e3779b97f4a7c15+1))
}

func intPtr(n int) *int {
	return &n
}

func newLayout(id string, indexes ...Tags) *Layout {
	l := &Layout{ID: id, Background: id + ".png"}
	for i, idx := range indexes {
		l.Slots = append(l.Slots, Slot{
			ID:       i,
			Index:    idx,
			Diameter: "10%",
			Position: Position{Top: "10%", Left: "10%"},
		})
	}

	return l
}

// scenarioLayout has slots [A], [B] and [A,B].
func scenarioLayout() *Layout {
	return newLayout("scenario", Tags{"A"}, Tags{"B"}, Tags{"A", "B"})
}

func scenarioItems() []Item {
	return []Item{
		{ID: "a1", Index: Tags{"A"}, Image: "a1.png", Name: "a1"},
		{ID: "b1", Index: Tags{"B"}, Image: "b1.png", Name: "b1"},
		{ID: "x1", Index: Tags{"C"}, Image: "x1.png", Name: "x1"},
	}
}

func distractorItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		id := string(rune('p' + i%10))
		items[i] = Item{ID: "d" + id + string(rune('0'+i/10)), Index: Tags{"D"}}
	}

	return items
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}

	return out
}
