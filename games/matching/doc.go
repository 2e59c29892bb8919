/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package matching implements the rules of the portal matching game.
//
// A portal groups layouts. A layout is a background with marked slots, each
// slot tagged with the categories of picture it accepts. A round lights up
// one slot at a time; the player picks a picture from the choice pool, and a
// picture whose tags intersect the slot's tags is placed there. The round is
// complete once every slot holds a picture.
//
// How a round is played:
//   - LoadRound builds the choice pool: a matching picture for every slot,
//     padded with distractors that fit no slot, shuffled.
//   - StartTurn lights the first slot.
//   - SubmitChoice answers Match or NoMatch; a match places the picture and
//     moves the round to Resolving while feedback is shown.
//   - Resolve lights the next slot, or waits for StartTurn, or finishes.
//
// The package holds no global state and does no I/O besides LoadContent.
package matching
