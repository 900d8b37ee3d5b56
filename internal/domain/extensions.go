package domain

import (
	"net/url"
	"path"
	"strings"
)

// ExtensionCategory is the semantic category of a file extension
type ExtensionCategory string

const (
	CategoryArchive    ExtensionCategory = "archive"
	CategoryExecutable ExtensionCategory = "executable"
	CategoryDocument   ExtensionCategory = "document"
	CategoryImage      ExtensionCategory = "image"
	CategoryAudio      ExtensionCategory = "audio"
	CategoryVideo      ExtensionCategory = "video"
	CategoryFont       ExtensionCategory = "font"
	CategoryCode       ExtensionCategory = "code"
	CategoryData       ExtensionCategory = "data"
	CategoryFile       ExtensionCategory = "file"
)

// Extension sets are disjoint: an extension belongs to exactly one category.
var extensionCategories = map[ExtensionCategory][]string{
	CategoryArchive: {
		"zip", "rar", "7z", "tar", "gz", "bz2", "xz", "iso", "cab", "arj", "lzh", "ace",
	},
	CategoryExecutable: {
		"exe", "msi", "dmg", "pkg", "deb", "rpm", "appimage", "apk", "ipa", "run", "bin", "sh", "bat", "cmd", "ps1",
	},
	CategoryDocument: {
		"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "odt", "ods", "odp", "rtf", "txt", "csv", "epub", "mobi",
	},
	CategoryImage: {
		"jpg", "jpeg", "png", "gif", "webp", "bmp", "svg", "ico", "tiff", "tif", "psd", "ai", "raw", "cr2", "nef",
	},
	CategoryAudio: {
		"mp3", "m4a", "wav", "flac", "ogg", "aac", "wma", "opus", "aiff", "ape", "alac",
	},
	CategoryVideo: {
		"mp4", "mkv", "webm", "avi", "mov", "wmv", "flv", "m4v", "mpeg", "mpg", "3gp", "ts", "m2ts", "vob",
	},
	CategoryFont: {
		"ttf", "otf", "woff", "woff2", "eot", "fon",
	},
	CategoryCode: {
		"js", "py", "java", "cpp", "c", "h", "cs", "php", "rb", "go", "rs", "swift", "kt", "scala", "sql",
	},
	CategoryData: {
		"json", "xml", "yml", "yaml", "toml", "ini", "db", "sqlite", "parquet",
	},
}

// directExtensions is the union of all category sets, keyed by extension
var directExtensions = func() map[string]ExtensionCategory {
	union := make(map[string]ExtensionCategory)
	for category, exts := range extensionCategories {
		for _, ext := range exts {
			union[ext] = category
		}
	}
	return union
}()

// ExtensionOf extracts the file extension from a URL's path, ignoring query
// string and fragment. Only extensions of 1-10 alphanumeric characters
// qualify; everything else, including unparseable URLs, yields ok=false.
func ExtensionOf(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	segment := path.Base(u.Path)
	idx := strings.LastIndex(segment, ".")
	if idx < 0 || idx == len(segment)-1 {
		return "", false
	}
	ext := strings.ToLower(segment[idx+1:])
	if len(ext) > 10 {
		return "", false
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return "", false
		}
	}
	return ext, true
}

// CategoryOf returns the category of an extension, CategoryFile when unknown
func CategoryOf(ext string) ExtensionCategory {
	if category, ok := directExtensions[strings.ToLower(ext)]; ok {
		return category
	}
	return CategoryFile
}

// IsDirectDownloadURL reports whether the URL points straight at a
// retrievable file, identified by a known extension
func IsDirectDownloadURL(rawURL string) bool {
	ext, ok := ExtensionOf(rawURL)
	if !ok {
		return false
	}
	_, known := directExtensions[ext]
	return known
}

// FilenameFromURL returns the last path segment of a URL, "download" when
// the path carries none
func FilenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "download"
	}
	segment := path.Base(u.Path)
	if segment == "" || segment == "." || segment == "/" {
		return "download"
	}
	return segment
}
