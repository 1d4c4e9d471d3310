// Package ui contains the Fyne window of the application. RootUI renders the
// download form and implements the controller's View; every user action is
// forwarded to the controller. All UI strings are localized via Localization.
package ui
