package domain

import (
	"regexp"
	"strings"
)

// urlPrefix anchors every pattern at the string start: scheme, optional
// "www.", then a specific host and path shape. Never a bare substring match
// on the whole URL, so pages that merely mention a site name don't match.
const urlPrefix = `(?i)^https?://(?:www\.)?`

func compilePatterns(shapes []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(shapes))
	for _, shape := range shapes {
		patterns = append(patterns, regexp.MustCompile(urlPrefix+shape))
	}
	return patterns
}

// mediaSitePatterns match single playable items on known media sites
var mediaSitePatterns = compilePatterns([]string{
	`youtube\.com/watch`,
	`youtube\.com/shorts/`,
	`youtu\.be/`,
	`vimeo\.com/\d+`,
	`dailymotion\.com/video/`,
	`(?:clips\.)?twitch\.tv/`,
	`soundcloud\.com/[\w-]+/[\w-]+`,
	`(?:twitter|x)\.com/\w+/status/\d+`,
	`tiktok\.com/@[\w.-]+/video/\d+`,
	`instagram\.com/(?:p|reel|tv)/`,
	`facebook\.com/watch`,
	`reddit\.com/r/\w+/comments/`,
	`bilibili\.com/video/`,
	`streamable\.com/\w+`,
	`rumble\.com/v`,
	`odysee\.com/@[\w.-]+`,
	`mixcloud\.com/[\w-]+/[\w-]+`,
	`bandcamp\.com/track/`,
	`[\w-]+\.bandcamp\.com/track/`,
})

// playlistPatterns match collections: playlists, channels, sets, albums
var playlistPatterns = compilePatterns([]string{
	`youtube\.com/playlist\?`,
	`youtube\.com/watch\?(?:\S*&)?list=`,
	`youtube\.com/(?:channel|c|user)/`,
	`youtube\.com/@[\w.-]+/?$`,
	`soundcloud\.com/[\w-]+/sets/`,
	`vimeo\.com/(?:channels|showcase)/`,
	`mixcloud\.com/[\w-]+/playlists/`,
	`twitch\.tv/\w+/videos`,
	`tiktok\.com/@[\w.-]+/?$`,
	`bandcamp\.com/album/`,
	`[\w-]+\.bandcamp\.com/album/`,
})

// IsMediaSite reports whether the URL belongs to a known media site.
// Pure predicate, first match wins.
func IsMediaSite(rawURL string) bool {
	for _, pattern := range mediaSitePatterns {
		if pattern.MatchString(rawURL) {
			return true
		}
	}
	return false
}

// IsPlaylistURL reports whether the URL represents a known collection shape
func IsPlaylistURL(rawURL string) bool {
	for _, pattern := range playlistPatterns {
		if pattern.MatchString(rawURL) {
			return true
		}
	}
	return false
}

// directFileHints are extension substrings that mark a URL as a plain file,
// used by the collection pre-filter to defer to native handling
var directFileHints = []string{
	".zip", ".rar", ".7z", ".tar", ".gz", ".iso",
	".exe", ".msi", ".dmg", ".deb", ".rpm", ".apk",
	".pdf", ".doc", ".xls", ".ppt", ".epub",
	".jpg", ".jpeg", ".png", ".gif", ".webp",
	".mp3", ".m4a", ".flac", ".ogg",
	".mp4", ".mkv", ".webm", ".avi", ".mov",
}

// collectionHints are path fragments that suggest a set of items
var collectionHints = []string{
	"playlist", "list=",
	"/sets/", "/album/", "/albums/",
	"/channel/", "/c/", "/user/",
	"/collections/", "/gallery", "/showcase/",
}

// handleShape matches user-handle-only URLs such as .../@someone
var handleShape = regexp.MustCompile(`/@[\w.-]+/?$`)

// HasDirectFileHint reports whether the URL contains a direct-file
// extension substring
func HasDirectFileHint(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, hint := range directFileHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// HasCollectionHint reports whether the URL contains a collection-indicator
// substring or ends in a bare user handle
func HasCollectionHint(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, hint := range collectionHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return handleShape.MatchString(lower)
}
