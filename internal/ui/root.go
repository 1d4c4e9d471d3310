package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/youtomp3/internal/config"
	"github.com/ytget/youtomp3/internal/model"
	"github.com/ytget/youtomp3/internal/options"
)

// Actions are the user operations handled by the controller
type Actions interface {
	StartDownload(req model.DownloadRequest) error
	StopDownload() bool
	SetFormat(format model.OutputFormat)
	SetQuality(quality string)
	SetDownloadPath(path string)
	ClearLog()
	OpenDownloadFolder() error
	RecentRuns(limit int) ([]*model.RunRecord, error)
	HistoryStats() (model.RunStats, error)
	ClearHistory() error
}

// RootUI represents the main window
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	actions      Actions
	logger       *zap.Logger
	historyLimit int

	urlLabel     *widget.Label
	pathLabel    *widget.Label
	formatLabel  *widget.Label
	qualityLabel *widget.Label
	logLabel     *widget.Label

	urlEntry      *widget.Entry
	pathEntry     *widget.Entry
	browseBtn     *widget.Button
	formatRadio   *widget.RadioGroup
	qualitySelect *widget.Select
	optionsCard   *widget.Card
	playlistCheck *widget.Check
	metadataCheck *widget.Check

	downloadBtn   *widget.Button
	stopBtn       *widget.Button
	clearBtn      *widget.Button
	historyBtn    *widget.Button
	openFolderBtn *widget.Button

	statusLabel *widget.Label
	progress    *widget.ProgressBarInfinite
	logLines    binding.StringList
	logList     *widget.List
}

// NewRootUI builds the window content. Callbacks stay inert until Bind is called.
func NewRootUI(window fyne.Window, settings *config.Settings, localization *Localization, logger *zap.Logger) *RootUI {
	if logger == nil {
		logger = zap.NewNop()
	}

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		logger:       logger,
		historyLimit: DefaultHistoryLimit,
		logLines:     binding.NewStringList(),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	ui.loadSettings()
	return ui
}

// Bind connects widget callbacks to the controller
func (ui *RootUI) Bind(actions Actions) {
	ui.actions = actions

	ui.urlEntry.OnSubmitted = func(string) { ui.onDownloadClick() }
	ui.downloadBtn.OnTapped = ui.onDownloadClick
	ui.stopBtn.OnTapped = func() { actions.StopDownload() }
	ui.clearBtn.OnTapped = actions.ClearLog
	ui.historyBtn.OnTapped = ui.onShowHistory
	ui.openFolderBtn.OnTapped = func() { _ = actions.OpenDownloadFolder() }
	ui.browseBtn.OnTapped = ui.onBrowse

	ui.formatRadio.OnChanged = func(string) {
		actions.SetFormat(ui.selectedFormat())
	}
	ui.qualitySelect.OnChanged = func(q string) {
		if q != "" {
			actions.SetQuality(q)
		}
	}
	ui.pathEntry.OnChanged = actions.SetDownloadPath
	ui.playlistCheck.OnChanged = ui.settings.SetIncludePlaylist
	ui.metadataCheck.OnChanged = ui.settings.SetEmbedMetadata
}

// SetHistoryLimit sets how many runs the history dialog lists
func (ui *RootUI) SetHistoryLimit(limit int) {
	if limit > 0 {
		ui.historyLimit = limit
	}
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlLabel = widget.NewLabel("")
	ui.urlEntry = widget.NewEntry()

	ui.pathLabel = widget.NewLabel("")
	ui.pathEntry = widget.NewEntry()
	ui.browseBtn = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), nil)
	pathRow := container.NewBorder(nil, nil, nil, ui.browseBtn, ui.pathEntry)

	ui.formatLabel = widget.NewLabel("")
	ui.formatRadio = widget.NewRadioGroup(nil, nil)
	ui.formatRadio.Horizontal = true
	ui.formatRadio.Required = true

	ui.qualityLabel = widget.NewLabel("")
	ui.qualitySelect = widget.NewSelect(nil, nil)

	ui.playlistCheck = widget.NewCheck("", nil)
	ui.metadataCheck = widget.NewCheck("", nil)
	ui.optionsCard = widget.NewCard("", "", container.NewVBox(ui.playlistCheck, ui.metadataCheck))

	form := container.New(
		layout.NewFormLayout(),
		ui.urlLabel, ui.urlEntry,
		ui.pathLabel, pathRow,
		ui.formatLabel, ui.formatRadio,
		ui.qualityLabel, container.NewHBox(ui.qualitySelect),
	)

	ui.downloadBtn = widget.NewButtonWithIcon("", theme.DownloadIcon(), nil)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButtonWithIcon("", theme.MediaStopIcon(), nil)
	ui.clearBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
	ui.historyBtn = widget.NewButtonWithIcon("", theme.HistoryIcon(), nil)
	ui.openFolderBtn = widget.NewButtonWithIcon("", theme.FolderIcon(), nil)
	buttons := container.NewCenter(container.NewHBox(
		ui.downloadBtn, ui.stopBtn, ui.clearBtn, ui.historyBtn, ui.openFolderBtn,
	))

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Alignment = fyne.TextAlignCenter
	ui.progress = widget.NewProgressBarInfinite()
	ui.progress.Stop()
	ui.progress.Hide()

	ui.logLabel = widget.NewLabel("")
	ui.logList = widget.NewListWithData(
		ui.logLines,
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(item binding.DataItem, obj fyne.CanvasObject) {
			obj.(*widget.Label).Bind(item.(binding.String))
		},
	)
	logScroll := container.NewStack(ui.logList)

	top := container.NewVBox(
		form,
		ui.optionsCard,
		buttons,
		ui.statusLabel,
		ui.progress,
		ui.logLabel,
	)

	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, logScroll))
	ui.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	ui.refreshUITexts()
	ui.SetRunning(false)
}

// loadSettings restores the last used selections
func (ui *RootUI) loadSettings() {
	ui.pathEntry.SetText(ui.settings.GetDownloadDirectory())
	ui.playlistCheck.SetChecked(ui.settings.GetIncludePlaylist())
	ui.metadataCheck.SetChecked(ui.settings.GetEmbedMetadata())

	format := ui.settings.GetOutputFormat()
	ui.selectFormat(format)
	ui.SetQualityOptions(options.QualityOptions(format), ui.settings.GetQuality(format))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	historyItem := fyne.NewMenuItem(ui.localization.GetText(KeyHistory), ui.onShowHistory)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), historyItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	format := ui.selectedFormat()

	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.urlLabel.SetText(l.GetText(KeyURL))
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.pathLabel.SetText(l.GetText(KeyDownloadPath))
	ui.browseBtn.SetText(l.GetText(KeyBrowse))
	ui.formatLabel.SetText(l.GetText(KeyOutputFormat))
	ui.qualityLabel.SetText(l.GetText(KeyQuality))
	ui.optionsCard.SetTitle(l.GetText(KeyDownloadOptions))
	ui.playlistCheck.Text = l.GetText(KeyIncludePlaylist)
	ui.playlistCheck.Refresh()
	ui.metadataCheck.Text = l.GetText(KeyEmbedMetadata)
	ui.metadataCheck.Refresh()
	ui.stopBtn.SetText(l.GetText(KeyStop))
	ui.clearBtn.SetText(l.GetText(KeyClearLog))
	ui.historyBtn.SetText(l.GetText(KeyHistory))
	ui.openFolderBtn.SetText(l.GetText(KeyOpenFolder))
	ui.logLabel.SetText(l.GetText(KeyDownloadLog))

	// swap radio captions without firing OnChanged
	changed := ui.formatRadio.OnChanged
	ui.formatRadio.OnChanged = nil
	ui.formatRadio.Options = []string{l.GetText(KeyFormatAudio), l.GetText(KeyFormatVideo)}
	ui.selectFormat(format)
	ui.formatRadio.OnChanged = changed
}

func (ui *RootUI) selectFormat(format model.OutputFormat) {
	if len(ui.formatRadio.Options) < 2 {
		return
	}
	if format.IsAudio() {
		ui.formatRadio.SetSelected(ui.formatRadio.Options[0])
	} else {
		ui.formatRadio.SetSelected(ui.formatRadio.Options[1])
	}
}

func (ui *RootUI) selectedFormat() model.OutputFormat {
	if len(ui.formatRadio.Options) > 1 && ui.formatRadio.Selected == ui.formatRadio.Options[1] {
		return model.FormatVideo
	}
	return model.FormatAudio
}

// Request snapshots the form into a download request
func (ui *RootUI) Request() model.DownloadRequest {
	return model.DownloadRequest{
		URL:             ui.urlEntry.Text,
		OutputFormat:    ui.selectedFormat(),
		Quality:         ui.qualitySelect.Selected,
		DownloadPath:    ui.pathEntry.Text,
		IncludePlaylist: ui.playlistCheck.Checked,
		EmbedMetadata:   ui.metadataCheck.Checked,
	}
}

func (ui *RootUI) onDownloadClick() {
	if ui.actions == nil {
		return
	}
	if err := ui.actions.StartDownload(ui.Request()); err != nil {
		ui.logger.Debug("Download not started", zap.Error(err))
	}
}

func (ui *RootUI) onBrowse() {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			ui.ShowError(err)
			return
		}
		if uri == nil {
			return
		}
		// OnChanged forwards the new path
		ui.pathEntry.SetText(uri.Path())
	}, ui.window)
	d.Show()
}

func (ui *RootUI) onShowHistory() {
	if ui.actions == nil {
		return
	}
	runs, err := ui.actions.RecentRuns(ui.historyLimit)
	if err != nil {
		ui.ShowError(err)
		return
	}
	stats, err := ui.actions.HistoryStats()
	if err != nil {
		ui.logger.Warn("Failed to count history", zap.Error(err))
	}
	ShowHistoryDialog(ui.window, ui.localization, runs, stats, ui.onClearHistory)
}

func (ui *RootUI) onClearHistory() {
	l := ui.localization
	confirm := dialog.NewConfirm(l.GetText(KeyClearHistory), l.GetText(KeyClearHistoryAsk), func(ok bool) {
		if !ok {
			return
		}
		if err := ui.actions.ClearHistory(); err != nil {
			ui.ShowError(err)
		}
	}, ui.window)
	confirm.SetConfirmText(l.GetText(KeyYes))
	confirm.SetDismissText(l.GetText(KeyNo))
	confirm.Show()
}

// SetRunning toggles the buttons and the indeterminate progress bar
func (ui *RootUI) SetRunning(running bool) {
	if running {
		ui.downloadBtn.Disable()
		ui.stopBtn.Enable()
		ui.progress.Show()
		ui.progress.Start()
		return
	}
	ui.downloadBtn.Enable()
	ui.stopBtn.Disable()
	ui.progress.Stop()
	ui.progress.Hide()
}

// SetStatus replaces the status line
func (ui *RootUI) SetStatus(text string) {
	ui.statusLabel.SetText(text)
}

// AppendLog adds one line to the log and scrolls to it
func (ui *RootUI) AppendLog(line string) {
	if err := ui.logLines.Append(line); err != nil {
		ui.logger.Warn("Failed to append log line", zap.Error(err))
		return
	}
	ui.logList.ScrollToBottom()
}

// ClearLog removes all log lines
func (ui *RootUI) ClearLog() {
	_ = ui.logLines.Set(nil)
}

// ShowError opens a blocking error dialog in the current language
func (ui *RootUI) ShowError(err error) {
	dialog.ShowError(ui.localization.dialogError(err), ui.window)
}

// SetQualityOptions replaces the quality choices
func (ui *RootUI) SetQualityOptions(choices []string, selected string) {
	ui.qualitySelect.Options = choices
	ui.qualitySelect.SetSelected(selected)
	ui.qualitySelect.Refresh()
}

// SetDownloadLabel sets the caption of the start button
func (ui *RootUI) SetDownloadLabel(label string) {
	ui.downloadBtn.SetText(label)
}

// LogLines returns the current log content
func (ui *RootUI) LogLines() []string {
	lines, _ := ui.logLines.Get()
	return lines
}
