package ui

import (
	"os"
	"strings"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyURL                = "url"
	KeyEnterURL           = "enter_url"
	KeyDownloadPath       = "download_path"
	KeyBrowse             = "browse"
	KeyOutputFormat       = "output_format"
	KeyFormatAudio        = "format_audio"
	KeyFormatVideo        = "format_video"
	KeyQuality            = "quality"
	KeyDownloadOptions    = "download_options"
	KeyIncludePlaylist    = "include_playlist"
	KeyEmbedMetadata      = "embed_metadata"
	KeyStop               = "stop"
	KeyClearLog           = "clear_log"
	KeyOpenFolder         = "open_folder"
	KeyHistory            = "history"
	KeyDownloadLog        = "download_log"
	KeyFile               = "file"
	KeyQuit               = "quit"
	KeyLanguage           = "language"
	KeyClose              = "close"
	KeyNoHistory          = "no_history"
	KeyFFmpegMissingTitle = "ffmpeg_missing_title"
	KeyFFmpegMissing      = "ffmpeg_missing"
	KeyYes                = "yes"
	KeyNo                 = "no"
	KeyClearHistory       = "clear_history"
	KeyClearHistoryAsk    = "clear_history_ask"
	KeyHistorySummary     = "history_summary"
	KeyErrEmptyURL        = "err_empty_url"
	KeyErrPathNotFound    = "err_path_not_found"
	KeyErrAlreadyRunning  = "err_already_running"
	KeyErrNoHistory       = "err_no_history"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LangEnglish,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == LangSystem {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[LangEnglish]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LangEnglish: "English",
		LangRussian: "Русский",
	}
}

// systemLanguage reads the two-letter code from the usual locale variables
func systemLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" && v != "C" && v != "POSIX" {
			if len(v) >= 2 {
				return strings.ToLower(v[:2])
			}
		}
	}
	return LangEnglish
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts[LangEnglish] = map[string]string{
		KeyAppTitle:           "YouTube Downloader - MP3 & MP4",
		KeyURL:                "YouTube URL:",
		KeyEnterURL:           "https://www.youtube.com/watch?v=...",
		KeyDownloadPath:       "Download Path:",
		KeyBrowse:             "Browse",
		KeyOutputFormat:       "Output Format:",
		KeyFormatAudio:        "MP3 (Audio Only)",
		KeyFormatVideo:        "MP4 (Video)",
		KeyQuality:            "Quality:",
		KeyDownloadOptions:    "Download Options",
		KeyIncludePlaylist:    "Download entire playlist/channel",
		KeyEmbedMetadata:      "Add metadata (artist, title, etc.)",
		KeyStop:               "Stop",
		KeyClearLog:           "Clear Log",
		KeyOpenFolder:         "Open Folder",
		KeyHistory:            "History",
		KeyDownloadLog:        "Download Log:",
		KeyFile:               "File",
		KeyQuit:               "Quit",
		KeyLanguage:           "Language",
		KeyClose:              "Close",
		KeyNoHistory:          "No downloads yet",
		KeyYes:                "Yes",
		KeyNo:                 "No",
		KeyClearHistory:       "Clear History",
		KeyClearHistoryAsk:    "Delete all recorded downloads?",
		KeyHistorySummary:     "%d downloads: %d completed, %d not completed",
		KeyErrEmptyURL:        "Please enter a YouTube URL",
		KeyErrPathNotFound:    "Download path does not exist",
		KeyErrAlreadyRunning:  "A download is already running",
		KeyErrNoHistory:       "Download history is disabled",
		KeyFFmpegMissingTitle: "FFmpeg Not Found",
		KeyFFmpegMissing: "FFmpeg is required for audio conversion but was not found on your system.\n\n" +
			"You can download it from %s\nor install it via package manager.\n\n" +
			"Continue anyway? (Downloads may fail without FFmpeg)",
	}

	l.texts[LangRussian] = map[string]string{
		KeyAppTitle:           "YouTube Загрузчик - MP3 и MP4",
		KeyURL:                "URL YouTube:",
		KeyEnterURL:           "https://www.youtube.com/watch?v=...",
		KeyDownloadPath:       "Папка загрузки:",
		KeyBrowse:             "Обзор",
		KeyOutputFormat:       "Формат:",
		KeyFormatAudio:        "MP3 (только аудио)",
		KeyFormatVideo:        "MP4 (видео)",
		KeyQuality:            "Качество:",
		KeyDownloadOptions:    "Параметры загрузки",
		KeyIncludePlaylist:    "Скачать весь плейлист/канал",
		KeyEmbedMetadata:      "Добавить метаданные (исполнитель, название и т.д.)",
		KeyStop:               "Стоп",
		KeyClearLog:           "Очистить журнал",
		KeyOpenFolder:         "Открыть папку",
		KeyHistory:            "История",
		KeyDownloadLog:        "Журнал загрузки:",
		KeyFile:               "Файл",
		KeyQuit:               "Выход",
		KeyLanguage:           "Язык",
		KeyClose:              "Закрыть",
		KeyNoHistory:          "Загрузок пока нет",
		KeyYes:                "Да",
		KeyNo:                 "Нет",
		KeyClearHistory:       "Очистить историю",
		KeyClearHistoryAsk:    "Удалить все записи о загрузках?",
		KeyHistorySummary:     "Загрузок: %d, завершено: %d, не завершено: %d",
		KeyErrEmptyURL:        "Введите URL YouTube",
		KeyErrPathNotFound:    "Папка загрузки не существует",
		KeyErrAlreadyRunning:  "Загрузка уже выполняется",
		KeyErrNoHistory:       "История загрузок отключена",
		KeyFFmpegMissingTitle: "FFmpeg не найден",
		KeyFFmpegMissing: "Для конвертации аудио требуется FFmpeg, но он не найден в системе.\n\n" +
			"Его можно скачать с %s\nили установить через менеджер пакетов.\n\n" +
			"Продолжить? (Без FFmpeg загрузки могут завершиться ошибкой)",
	}
}
