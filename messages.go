/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"github.com/Seednode/matchbox/games/matching"
)

const (
	promptMenu     = "Pick a world to play in!"
	promptIdle     = "Press START to begin!"
	promptContinue = "Press START to keep going!"
	promptActive   = "What goes here?"
	promptCorrect  = "Well done!"
	promptWrong    = "Try again!"
	promptWin      = "Well done, let's play again!"
	promptBroken   = "This level cannot be played right now."
)

// Messages coming from clients
type ClientMessage struct {
	Type   string `json:"type"`             // "select_portal", "start", "choose", "play_again", "next_layout", "menu"
	Portal string `json:"portal,omitempty"` // select_portal
	Layout string `json:"layout,omitempty"` // select_portal, optional
	Choice string `json:"choice,omitempty"` // choose: item id
}

type PortalInfo struct {
	Name    string `json:"name"`
	Icon    string `json:"icon"`
	Layouts int    `json:"layouts"`
}

// SessionInfoMessage is sent immediately on connect.
type SessionInfoMessage struct {
	Type    string       `json:"type"` // "session_info"
	GameID  string       `json:"game_id"`
	Portals []PortalInfo `json:"portals"`
}

type SlotView struct {
	ID       int    `json:"id"`
	Diameter string `json:"diameter"`
	Top      string `json:"top"`
	Left     string `json:"left"`
	Active   bool   `json:"active"`
	Image    string `json:"image,omitempty"` // placed picture
	Name     string `json:"name,omitempty"`
}

type ChoiceView struct {
	ID    string `json:"id"`
	Image string `json:"image"`
	Name  string `json:"name"`
	Used  bool   `json:"used"`
}

// RoundStateMessage carries everything needed to draw the board. State is
// "menu" when no layout is loaded.
type RoundStateMessage struct {
	Type            string       `json:"type"` // "round_state"
	State           string       `json:"state"`
	RoundID         string       `json:"round_id,omitempty"`
	Portal          string       `json:"portal,omitempty"`
	Layout          string       `json:"layout,omitempty"`
	LayoutNumber    int          `json:"layout_number,omitempty"`
	LayoutCount     int          `json:"layout_count,omitempty"`
	BackgroundSmall string       `json:"background_small,omitempty"`
	BackgroundLarge string       `json:"background_large,omitempty"`
	Slots           []SlotView   `json:"slots,omitempty"`
	Choices         []ChoiceView `json:"choices,omitempty"`
	Filled          int          `json:"filled"`
	Total           int          `json:"total"`
	Prompt          string       `json:"prompt"`
}

// FeedbackMessage reports the outcome of a choice.
type FeedbackMessage struct {
	Type    string `json:"type"` // "feedback"
	Correct bool   `json:"correct"`
	Choice  string `json:"choice"`
	Message string `json:"message"`
}

// SimpleMessage is for generic notifications ("win", "error")
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func portalInfos(cfg *Config, c *matching.Content) []PortalInfo {
	out := make([]PortalInfo, 0, len(c.Portals))
	for _, p := range c.Portals {
		out = append(out, PortalInfo{
			Name:    p.Name,
			Icon:    contentURL(cfg, p.Icon),
			Layouts: len(p.Layouts),
		})
	}

	return out
}

func menuState() RoundStateMessage {
	return RoundStateMessage{
		Type:   "round_state",
		State:  "menu",
		Prompt: promptMenu,
	}
}

func roundState(cfg *Config, portal *matching.Portal, layoutIdx int, r *matching.Round) RoundStateMessage {
	snap := r.Snapshot()
	small, large := snap.Layout.Backgrounds()

	msg := RoundStateMessage{
		Type:            "round_state",
		State:           snap.State.String(),
		RoundID:         snap.ID,
		Portal:          portal.Name,
		Layout:          snap.Layout.ID,
		LayoutNumber:    layoutIdx + 1,
		LayoutCount:     len(portal.Layouts),
		BackgroundSmall: contentURL(cfg, small),
		BackgroundLarge: contentURL(cfg, large),
		Filled:          snap.Filled,
		Total:           snap.Total,
	}

	switch snap.State {
	case matching.Idle:
		msg.Prompt = promptIdle
		if snap.Filled > 0 {
			msg.Prompt = promptContinue
		}
	case matching.Active:
		msg.Prompt = promptActive
	case matching.Resolving:
		msg.Prompt = promptCorrect
	case matching.Complete:
		msg.Prompt = promptWin
	}

	msg.Slots = make([]SlotView, 0, len(snap.Layout.Slots))
	for _, s := range snap.Layout.Slots {
		view := SlotView{
			ID:       s.ID,
			Diameter: s.Diameter,
			Top:      s.Position.Top,
			Left:     s.Position.Left,
			Active:   snap.Active != nil && snap.Active.ID == s.ID,
		}
		if item, ok := snap.Placed[s.ID]; ok {
			view.Image = contentURL(cfg, item.Image)
			view.Name = item.Name
		}
		msg.Slots = append(msg.Slots, view)
	}

	msg.Choices = make([]ChoiceView, 0, len(snap.Choices))
	for _, c := range snap.Choices {
		msg.Choices = append(msg.Choices, ChoiceView{
			ID:    c.Item.ID,
			Image: contentURL(cfg, c.Item.Image),
			Name:  c.Item.Name,
			Used:  c.Used,
		})
	}

	return msg
}
