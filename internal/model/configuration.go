package model

// PostProcessorKey names a yt-dlp post-processing step
type PostProcessorKey string

const (
	PostProcessorExtractAudio   PostProcessorKey = "FFmpegExtractAudio"
	PostProcessorVideoConvertor PostProcessorKey = "FFmpegVideoConvertor"
	PostProcessorMetadata       PostProcessorKey = "FFmpegMetadata"
)

// PostProcessor is one step of the ordered post-processing pipeline
type PostProcessor struct {
	Key              PostProcessorKey
	PreferredCodec   string // audio extraction target codec
	PreferredQuality string // audio bitrate in kbps, empty for encoder default
	PreferredFormat  string // container for video conversion
	AddMetadata      bool
}

// DownloadConfiguration is the declarative option set handed to the extraction collaborator.
// It is derived once from a DownloadRequest and never modified afterwards.
type DownloadConfiguration struct {
	Format         string
	OutputTemplate string
	PostProcessors []PostProcessor
	IgnoreErrors   bool
	NoPlaylist     bool
}

// PostProcessorKeys returns the pipeline step keys in execution order
func (c DownloadConfiguration) PostProcessorKeys() []PostProcessorKey {
	keys := make([]PostProcessorKey, 0, len(c.PostProcessors))
	for _, pp := range c.PostProcessors {
		keys = append(keys, pp.Key)
	}
	return keys
}
