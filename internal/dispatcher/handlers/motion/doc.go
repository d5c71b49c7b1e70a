// Package motion provides the dispatcher handler for word motions.
//
// Actions:
//   - motion.nextWordStart (w): Move to the next word start
//   - motion.prevWordStart (b): Move to the previous word start
//   - motion.nextWordEnd (e): Move to the next word end
//   - motion.nextLongWordStart (W): Move to the next WORD start
//   - motion.prevLongWordStart (B): Move to the previous WORD start
//   - motion.nextLongWordEnd (E): Move to the next WORD end
//   - motion.repeatLast (.): Repeat the last motion
//
// Every cursor moves independently with MapInPlace. In a mode that extends
// selections the anchor stays put. Otherwise the Behavior decides: with
// BehaviorReanchor the traversed text becomes the new selection, with
// BehaviorMove the cursor collapses onto the new head.
//
// The result carries "head" (the primary cursor's new head) and "found"
// (false when the primary scan was clamped at the edge of the text).
package motion
