package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/croxz/croxz-go/internal/domain"
)

func newTestPlaylistClassifier(runner domain.ProcessRunner) *PlaylistClassifier {
	return NewPlaylistClassifier(runner, testBridgeConfig(), testClassifyConfig(), zap.NewNop())
}

func TestPlaylistClassifier_IsSupportedSource(t *testing.T) {
	c := newTestPlaylistClassifier(&fakeRunner{})

	assert.True(t, c.IsSupportedSource("https://www.youtube.com/playlist?list=PLabc"))
	assert.True(t, c.IsSupportedSource("https://soundcloud.com/artist/sets/mixtape"))
	assert.False(t, c.IsSupportedSource("https://www.youtube.com/watch?v=abc123"))
	assert.False(t, c.IsSupportedSource("https://example.com/page"))
}

func TestPlaylistClassifier_IsPossiblySupportedSource(t *testing.T) {
	c := newTestPlaylistClassifier(&fakeRunner{})

	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{"playlist keyword", "https://www.youtube.com/playlist?list=PLabc", true},
		{"sets path", "https://soundcloud.com/artist/sets/mix", true},
		{"album path", "https://artist.bandcamp.com/album/record", true},
		{"bare handle", "https://www.tiktok.com/@someone", true},
		{"direct file wins over hint", "https://example.com/album/cover.zip", false},
		{"plain page", "https://example.com/about", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := domain.ParseRequest{URL: tt.url}
			assert.Equal(t, tt.expected, c.IsPossiblySupportedSource(req))
		})
	}
}

func TestPlaylistClassifier_Parse_Success(t *testing.T) {
	runner := &fakeRunner{outcome: &domain.ProcessOutcome{
		ExitCode: 0,
		Output: `{
			"_type": "playlist",
			"title": "My Mix",
			"webpage_url": "https://www.youtube.com/playlist?list=PLabc",
			"entries": [
				{"url": "https://www.youtube.com/watch?v=a", "title": "First", "duration": 120},
				{"url": "https://www.youtube.com/watch?v=b"},
				{"webpage_url": "https://www.youtube.com/watch?v=c", "title": "Third"},
				{"title": "no url, dropped"}
			]
		}`,
	}}
	c := newTestPlaylistClassifier(runner)

	result, err := c.Parse(context.Background(), domain.ParseRequest{ID: "r1", URL: "https://www.youtube.com/playlist?list=PLabc"})
	require.NoError(t, err)

	assert.Equal(t, []string{"playlist", "https://www.youtube.com/playlist?list=PLabc"}, runner.lastReq.Args)

	playlist, ok := result.(*domain.PlaylistResult)
	require.True(t, ok)
	assert.Equal(t, "playlist", playlist.Kind())
	assert.Equal(t, "playlist", playlist.Type)
	assert.Equal(t, "My Mix", playlist.Title)

	require.Len(t, playlist.Entries, 3)
	assert.Equal(t, "First", playlist.Entries[0].Title)
	require.NotNil(t, playlist.Entries[0].Duration)
	assert.InDelta(t, 120, *playlist.Entries[0].Duration, 0.001)

	// Entry title falls back to Unknown, entry URL to webpage_url
	assert.Equal(t, "Unknown", playlist.Entries[1].Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=c", playlist.Entries[2].URL)
	for _, entry := range playlist.Entries {
		assert.Equal(t, "url", entry.Type)
	}
}

func TestPlaylistClassifier_Parse_TitleAndWebpageFallbacks(t *testing.T) {
	runner := &fakeRunner{outcome: &domain.ProcessOutcome{
		ExitCode: 0,
		Output:   `{"_type": "playlist", "entries": [{"url": "https://example.com/a"}]}`,
	}}
	c := newTestPlaylistClassifier(runner)

	result, err := c.Parse(context.Background(), domain.ParseRequest{URL: "https://www.youtube.com/playlist?list=PLabc"})
	require.NoError(t, err)

	playlist := result.(*domain.PlaylistResult)
	assert.Equal(t, "Playlist", playlist.Title)
	assert.Equal(t, "https://www.youtube.com/playlist?list=PLabc", playlist.WebpageURL)
}

func TestPlaylistClassifier_Parse_WrapsSingleItem(t *testing.T) {
	tests := []struct {
		name          string
		output        string
		expectedTitle string
		expectedEntry domain.PlaylistEntry
	}{
		{
			"titled single item",
			`{"title": "One Video", "webpage_url": "https://www.youtube.com/watch?v=a", "duration": 60}`,
			"One Video",
			domain.PlaylistEntry{Type: "url", URL: "https://www.youtube.com/watch?v=a", Title: "One Video"},
		},
		{
			"bare single item",
			`{"formats": [{"url": "https://cdn.example.com/v.mp4"}]}`,
			"Download",
			domain.PlaylistEntry{Type: "url", URL: "https://www.youtube.com/@someone", Title: "Unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestPlaylistClassifier(&fakeRunner{outcome: &domain.ProcessOutcome{ExitCode: 0, Output: tt.output}})

			result, err := c.Parse(context.Background(), domain.ParseRequest{URL: "https://www.youtube.com/@someone"})
			require.NoError(t, err)

			playlist := result.(*domain.PlaylistResult)
			assert.Equal(t, "playlist", playlist.Type)
			assert.Equal(t, tt.expectedTitle, playlist.Title)
			require.Len(t, playlist.Entries, 1)
			assert.Equal(t, tt.expectedEntry.URL, playlist.Entries[0].URL)
			assert.Equal(t, tt.expectedEntry.Title, playlist.Entries[0].Title)
		})
	}
}

func TestPlaylistClassifier_Parse_Failures(t *testing.T) {
	playlistURL := "https://www.youtube.com/playlist?list=PLabc"

	tests := []struct {
		name     string
		outcome  *domain.ProcessOutcome
		expected string
	}{
		{
			"nonzero exit",
			&domain.ProcessOutcome{ExitCode: 1, ErrorOutput: "ERROR: private playlist"},
			"ERROR: private playlist",
		},
		{
			"empty output",
			&domain.ProcessOutcome{ExitCode: 0, Output: ""},
			"No output from extractor",
		},
		{
			"explicit error field",
			&domain.ProcessOutcome{ExitCode: 0, Output: `{"error": "This playlist does not exist"}`},
			"This playlist does not exist",
		},
		{
			"all entries url-less",
			&domain.ProcessOutcome{ExitCode: 0, Output: `{"_type": "playlist", "entries": [{"title": "a"}, {"title": "b"}]}`},
			"No entries found",
		},
		{
			"empty entry list",
			&domain.ProcessOutcome{ExitCode: 0, Output: `{"_type": "playlist", "entries": []}`},
			"No entries found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestPlaylistClassifier(&fakeRunner{outcome: tt.outcome})
			_, err := c.Parse(context.Background(), domain.ParseRequest{URL: playlistURL})
			require.Error(t, err)
			assert.True(t, domain.IsParseError(err))
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}
