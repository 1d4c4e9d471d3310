package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/youtomp3/internal/model"
)

// ShowHistoryDialog lists recent runs, newest first, under a summary of all recorded runs.
// onClear is called after the dialog closes when the user asks to clear the history.
func ShowHistoryDialog(window fyne.Window, localization *Localization, runs []*model.RunRecord, stats model.RunStats, onClear func()) dialog.Dialog {
	var d dialog.Dialog
	content, _ := historyContent(localization, runs, stats, func() {
		d.Hide()
		if onClear != nil {
			onClear()
		}
	})

	d = dialog.NewCustom(localization.GetText(KeyHistory), localization.GetText(KeyClose), content, window)
	d.Resize(fyne.NewSize(HistoryDialogWidth, HistoryDialogHeight))
	d.Show()
	return d
}

// historyContent builds the dialog body. The clear button is nil when there is nothing to clear.
func historyContent(localization *Localization, runs []*model.RunRecord, stats model.RunStats, onClear func()) (fyne.CanvasObject, *widget.Button) {
	if len(runs) == 0 {
		return widget.NewLabel(localization.GetText(KeyNoHistory)), nil
	}

	clearBtn := widget.NewButtonWithIcon(localization.GetText(KeyClearHistory), theme.DeleteIcon(), onClear)
	header := container.NewBorder(nil, nil, nil, clearBtn,
		widget.NewLabel(FormatRunStats(localization, stats)))

	list := widget.NewList(
		func() int { return len(runs) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(FormatRunRecord(runs[id]))
		},
	)
	return container.NewBorder(header, nil, nil, nil, list), clearBtn
}

// FormatRunStats renders the summary line above the history list
func FormatRunStats(localization *Localization, stats model.RunStats) string {
	return fmt.Sprintf(localization.GetText(KeyHistorySummary), stats.Total, stats.Succeeded, stats.Unsuccessful())
}

// FormatRunRecord renders one history line
func FormatRunRecord(rec *model.RunRecord) string {
	if rec == nil {
		return DashPlaceholder
	}

	when := DashPlaceholder
	if !rec.StartedAt.IsZero() {
		when = rec.StartedAt.Local().Format(HistoryTimeLayout)
	}

	format := strings.ToUpper(rec.Format)
	if rec.Quality != "" {
		format += " " + rec.Quality
	}

	name := rec.Title
	if name == "" {
		name = rec.Filename
	}
	if name == "" {
		name = rec.URL
	}

	parts := []string{when, rec.Status.String(), format, name}
	if rec.Error != "" {
		parts = append(parts, rec.Error)
	}
	return strings.Join(parts, MiddleDotSeparator)
}
