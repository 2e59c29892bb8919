/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package matching

// IsMatch reports whether item can be placed in slot.
func IsMatch(item Item, slot Slot) bool {
	return item.Index.Intersects(slot.Index)
}
