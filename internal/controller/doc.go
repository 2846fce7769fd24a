// Package controller owns all Engine I/O behind the screens.
//
// Each screen gets one controller. A controller holds the screen's
// state, mutates it only through the store's transition function, and
// broadcasts every new snapshot on a bus.Feed. Operations follow one
// template: validate local inputs, raise the busy flag, make the
// gateway calls in order, map the outcome into events, and lower the
// busy flag on every path.
//
// Failures never escape an operation. A call that is critical to the
// operation's purpose aborts it and lands in the state's Error field;
// a non-critical call is swallowed and the operation continues with
// an empty substitute. Close cancels the controller's context, and
// any call that completes afterwards is discarded without touching
// state.
package controller
