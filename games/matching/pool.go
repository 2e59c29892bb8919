/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package matching

import "slices"

// DefaultPoolSize is the number of choices shown when a layout does not set
// its own distractor count.
const DefaultPoolSize = 8

// GenerateChoicePool builds the shuffled choices for one round of layout.
//
// Every slot that some catalog item can satisfy gets a matching item in the
// pool. Items are spread over the slots so that as many slots as possible
// have a picture of their own; the pool never holds the same item id twice.
// The rest of the pool is filled with distractors, items that fit no slot of
// the layout, up to the target size. Slots nothing fits are returned in the
// IntegrityError and contribute no item.
func GenerateChoicePool(layout *Layout, items []Item, opts Options) ([]Item, *IntegrityError) {
	src := sourceOrDefault(opts.Source)

	catalog := uniqueItems(items)
	slots := Shuffle(src, layout.Slots)

	var missing []int

	adj := make([][]int, len(slots))
	for i, s := range slots {
		for j, item := range catalog {
			if IsMatch(item, s) {
				adj[i] = append(adj[i], j)
			}
		}

		if len(adj[i]) == 0 {
			missing = append(missing, s.ID)
			continue
		}

		adj[i] = Shuffle(src, adj[i])
	}

	pairs, _ := maxAssignment(adj, len(catalog))

	correct := make([]Item, 0, len(slots))
	taken := make(map[int]bool, len(slots))
	for _, j := range pairs {
		if j < 0 || taken[j] {
			continue
		}
		taken[j] = true
		correct = append(correct, catalog[j])
	}

	var candidates []Item
	for _, item := range catalog {
		if !fitsAny(item, layout.Slots) {
			candidates = append(candidates, item)
		}
	}

	target := opts.poolSize()
	if layout.Distractors != nil {
		target = len(correct) + max(0, *layout.Distractors)
	}

	n := min(max(0, target-len(correct)), len(candidates))
	distractors := Shuffle(src, candidates)[:n]

	pool := Shuffle(src, append(correct, distractors...))

	if len(missing) > 0 {
		slices.Sort(missing)
		return pool, &IntegrityError{Layout: layout.ID, Slots: missing}
	}

	return pool, nil
}

func fitsAny(item Item, slots []Slot) bool {
	for _, s := range slots {
		if IsMatch(item, s) {
			return true
		}
	}

	return false
}

// uniqueItems keeps the first item for each id.
func uniqueItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	seen := make(map[string]bool, len(items))

	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}

	return out
}
