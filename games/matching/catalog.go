/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package matching

// Item is a catalog picture tagged with one or more category indices.
type Item struct {
	ID    string `json:"id" yaml:"id"`
	Index Tags   `json:"index" yaml:"index"`
	Image string `json:"image" yaml:"image"`
	Name  string `json:"name" yaml:"name"`
}

type Position struct {
	Top  string `json:"top" yaml:"top"`
	Left string `json:"left" yaml:"left"`
}

// Slot is a positioned target region on a layout. ID is assigned when the
// layout is loaded and is the slot's ordinal within the layout.
type Slot struct {
	ID       int      `json:"-" yaml:"-"`
	Index    Tags     `json:"index" yaml:"index"`
	Diameter string   `json:"diameter" yaml:"diameter"`
	Position Position `json:"position" yaml:"position"`
}

// Layout is one playable board.
type Layout struct {
	ID              string `json:"-" yaml:"-"`
	Background      string `json:"background,omitempty" yaml:"background,omitempty"`
	BackgroundSmall string `json:"background_small,omitempty" yaml:"background_small,omitempty"`
	BackgroundLarge string `json:"background_large,omitempty" yaml:"background_large,omitempty"`
	Slots           []Slot `json:"slots" yaml:"slots"`

	// Distractors, when set, overrides the default pool size: the pool holds
	// every correct item plus this many distractors.
	Distractors *int `json:"distractors,omitempty" yaml:"distractors,omitempty"`
}

// Backgrounds returns the small and large background references, falling
// back to the plain background (and then to each other) when one is missing.
func (l *Layout) Backgrounds() (small, large string) {
	small, large = l.BackgroundSmall, l.BackgroundLarge

	if small == "" {
		small = l.Background
	}
	if large == "" {
		large = l.Background
	}
	if small == "" {
		small = large
	}
	if large == "" {
		large = small
	}

	return small, large
}

// Portal is a themed collection of layouts.
type Portal struct {
	Name       string   `json:"name" yaml:"name"`
	Icon       string   `json:"icon" yaml:"icon"`
	Layouts    []string `json:"layouts" yaml:"layouts"`
	Background string   `json:"background,omitempty" yaml:"background,omitempty"`
}

// Content is everything the game reads from its documents. It is never
// modified after loading.
type Content struct {
	Items   []Item
	Portals []Portal
	Layouts map[string]*Layout
}

func (c *Content) Portal(name string) (*Portal, bool) {
	for i := range c.Portals {
		if c.Portals[i].Name == name {
			return &c.Portals[i], true
		}
	}

	return nil, false
}

func (c *Content) Layout(id string) (*Layout, bool) {
	l, ok := c.Layouts[id]

	return l, ok
}

// Validate returns one IntegrityError for each layout that has slots no
// catalog item can satisfy, ordered as the portals reference them.
func (c *Content) Validate() []*IntegrityError {
	var problems []*IntegrityError

	seen := make(map[string]bool, len(c.Layouts))

	for _, p := range c.Portals {
		for _, id := range p.Layouts {
			if seen[id] {
				continue
			}
			seen[id] = true

			l, ok := c.Layouts[id]
			if !ok {
				continue
			}

			if err := unsolvableSlots(l, c.Items); err != nil {
				problems = append(problems, err)
			}
		}
	}

	return problems
}

func unsolvableSlots(l *Layout, items []Item) *IntegrityError {
	var missing []int

	for _, s := range l.Slots {
		found := false
		for _, item := range items {
			if IsMatch(item, s) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, s.ID)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return &IntegrityError{Layout: l.ID, Slots: missing}
}
