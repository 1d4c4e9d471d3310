package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ConfirmMissingFFmpeg asks whether to continue without ffmpeg before the
// main window appears. decide receives true when the user chose to continue.
func ConfirmMissingFFmpeg(app fyne.App, localization *Localization, downloadURL string, decide func(proceed bool)) fyne.Window {
	title := localization.GetText(KeyFFmpegMissingTitle)
	w := app.NewWindow(title)
	w.SetContent(widget.NewLabel(""))
	w.Resize(fyne.NewSize(520, 280))
	w.CenterOnScreen()

	answered := false
	answer := func(proceed bool) {
		if answered {
			return
		}
		answered = true
		w.Hide()
		decide(proceed)
	}

	d := dialog.NewConfirm(title, fmt.Sprintf(localization.GetText(KeyFFmpegMissing), downloadURL), answer, w)
	d.SetConfirmText(localization.GetText(KeyYes))
	d.SetDismissText(localization.GetText(KeyNo))
	w.SetCloseIntercept(func() { answer(false) })

	w.Show()
	d.Show()
	return w
}
