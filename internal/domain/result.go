package domain

// Format represents one downloadable rendition of a media item
type Format struct {
	URL      string `json:"url"`
	Protocol string `json:"protocol,omitempty"`
	Ext      string `json:"ext"`
	Format   string `json:"format,omitempty"`
	VideoExt string `json:"video_ext,omitempty"`
	AudioExt string `json:"audio_ext,omitempty"`
}

// MediaResult represents a resolved single media item with its format list
type MediaResult struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title,omitempty"`
	WebpageURL    string   `json:"webpage_url"`
	Duration      *float64 `json:"duration,omitempty"`
	Formats       []Format `json:"formats"`
}

// Kind returns the result kind for MediaResult
func (r *MediaResult) Kind() string {
	return "media"
}

// PlaylistEntry represents one item of a resolved collection
type PlaylistEntry struct {
	Type     string   `json:"_type"`
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Duration *float64 `json:"duration,omitempty"`
}

// PlaylistResult represents a resolved collection of media items
type PlaylistResult struct {
	Type       string          `json:"_type"`
	Title      string          `json:"title"`
	WebpageURL string          `json:"webpage_url"`
	Entries    []PlaylistEntry `json:"entries"`
}

// Kind returns the result kind for PlaylistResult
func (r *PlaylistResult) Kind() string {
	return "playlist"
}

// ParseResult is the common shape returned by all classifiers
type ParseResult interface {
	Kind() string
}

// ExtractorDocument mirrors the JSON document emitted by the bridge script.
// A single-item document carries formats; a playlist-shaped document carries
// entries and the "playlist" type tag. Unknown fields are ignored.
type ExtractorDocument struct {
	Type       string           `json:"_type,omitempty"`
	ID         string           `json:"id,omitempty"`
	Title      string           `json:"title,omitempty"`
	WebpageURL string           `json:"webpage_url,omitempty"`
	Duration   *float64         `json:"duration,omitempty"`
	Formats    []Format         `json:"formats,omitempty"`
	Entries    []ExtractorEntry `json:"entries,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// ExtractorEntry is a raw, possibly incomplete playlist entry from the bridge
type ExtractorEntry struct {
	URL        string   `json:"url,omitempty"`
	WebpageURL string   `json:"webpage_url,omitempty"`
	Title      string   `json:"title,omitempty"`
	Duration   *float64 `json:"duration,omitempty"`
}

// EntryURL returns the usable URL of a raw entry, or "" when the entry
// carries none and must be dropped during normalization.
func (e ExtractorEntry) EntryURL() string {
	if e.URL != "" {
		return e.URL
	}
	return e.WebpageURL
}
