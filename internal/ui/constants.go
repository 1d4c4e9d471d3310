package ui

// Window sizing
const (
	WindowWidth  float32 = 800
	WindowHeight float32 = 600

	HistoryDialogWidth  float32 = 640
	HistoryDialogHeight float32 = 420
)

// DefaultHistoryLimit is the number of runs shown in the history dialog
const DefaultHistoryLimit = 50

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	HistoryTimeLayout  = "2006-01-02 15:04"
)

// Language codes
const (
	LangSystem  = "system"
	LangEnglish = "en"
	LangRussian = "ru"
)
