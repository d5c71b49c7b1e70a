// Package dispatcher routes actions to handlers and coordinates execution.
//
// Handlers are found in two tiers. The Router maps the namespace prefix of
// an action ("motion" in "motion.nextWordStart") to namespace handlers; the
// Registry maps exact action names to handlers sorted by priority.
//
// When an action is dispatched:
//
//  1. An ExecutionContext is built from the attached subsystems
//  2. Pre-dispatch hooks run and may adjust or cancel the action
//  3. The handler runs, with panic recovery when enabled
//  4. Mode changes and redraw requests in the result are applied
//  5. Post-dispatch hooks run
//  6. Metrics are recorded when enabled
//
// Handlers receive the editor state explicitly through the context; nothing
// is reached through package-level state.
//
//	d := dispatcher.NewWithDefaults()
//	d.SetEngine(buf)
//	d.SetCursors(cursors)
//	d.RegisterNamespace("motion", motionhandler.NewHandler(finder, motionhandler.BehaviorReanchor))
//
//	result := d.Dispatch(input.Action{Name: "motion.nextWordStart", Count: 2})
package dispatcher
