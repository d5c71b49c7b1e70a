// Package input defines the actions handed to the dispatcher and the input
// context they are built in.
//
// An Action names a command ("motion.nextWordStart", "toast.show") and
// carries its arguments and repeat count. Keymaps in the keymap subpackage
// translate key presses into actions per mode, and the mode subpackage
// tracks whether motions move or extend the selection.
package input
