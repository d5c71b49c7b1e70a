// Package toast provides handlers for transient notifications.
//
// Actions:
//   - toast.show: Show Args.Text at the level in Args.Extra["level"]
//   - toast.dismiss (x): Dismiss the toast with Args.Extra["id"], or the
//     visible one when no id is given
package toast
