// Package controller owns the window state and reacts to user actions and
// worker events. Every exported method and every dispatched event handler
// runs on the UI thread, so the state needs no locking.
package controller
