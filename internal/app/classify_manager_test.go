package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/croxz/croxz-go/internal/domain"
)

// fakeHistory collects records in memory
type fakeHistory struct {
	records []*domain.ClassifyRecord
}

func (f *fakeHistory) Create(record *domain.ClassifyRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeHistory) FindRecent(limit int) ([]*domain.ClassifyRecord, error) {
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

func (f *fakeHistory) FindByURL(url string) ([]*domain.ClassifyRecord, error) {
	var out []*domain.ClassifyRecord
	for _, r := range f.records {
		if r.URL == url {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeHistory) Count() (int64, error) {
	return int64(len(f.records)), nil
}

func (f *fakeHistory) GetStats() (*domain.ClassifyStats, error) {
	return &domain.ClassifyStats{Total: int64(len(f.records))}, nil
}

func (f *fakeHistory) Close() error { return nil }

func newTestManager(runner domain.ProcessRunner, history domain.HistoryRepository, cfg domain.ClassifyConfig) *ClassifyManager {
	log := zap.NewNop()
	manager := NewClassifyManager(history, nil, log)
	manager.Register(NewMediaClassifier(runner, testBridgeConfig(), cfg, log))
	manager.Register(NewPlaylistClassifier(runner, testBridgeConfig(), cfg, log))
	return manager
}

func TestClassifyManager_Register_PriorityOrder(t *testing.T) {
	log := zap.NewNop()
	manager := NewClassifyManager(nil, nil, log)

	low := testClassifyConfig()
	low.CheckPriority = 10
	high := testClassifyConfig()
	high.CheckPriority = 90

	manager.Register(NewMediaClassifier(&fakeRunner{}, testBridgeConfig(), low, log))
	manager.Register(NewPlaylistClassifier(&fakeRunner{}, testBridgeConfig(), high, log))

	classifiers := manager.Classifiers()
	require.Len(t, classifiers, 2)
	assert.Equal(t, "playlist", classifiers[0].Name())
	assert.Equal(t, "media", classifiers[1].Name())
}

func TestClassifyManager_Check(t *testing.T) {
	manager := newTestManager(&fakeRunner{}, nil, testClassifyConfig())

	tests := []struct {
		name       string
		url        string
		supported  bool
		classifier string
		decision   domain.ClassifyDecision
		extension  string
		category   string
	}{
		{
			"direct file", "https://example.com/archive.zip",
			false, "", domain.DecisionDirect, "zip", "archive",
		},
		{
			"media site", "https://www.youtube.com/watch?v=abc123",
			true, "media", domain.DecisionMedia, "", "",
		},
		{
			"playlist", "https://www.youtube.com/playlist?list=PLabc",
			true, "playlist", domain.DecisionPlaylist, "", "",
		},
		{
			"unsupported", "https://example.com/about",
			false, "", domain.DecisionUnsupported, "", "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := manager.Check(tt.url, "")
			assert.Equal(t, tt.supported, result.Supported)
			assert.Equal(t, tt.classifier, result.Classifier)
			assert.Equal(t, tt.decision, result.Decision)
			assert.Equal(t, tt.extension, result.Extension)
			assert.Equal(t, tt.category, result.Category)
		})
	}
}

func TestClassifyManager_Check_ContentTypeHint(t *testing.T) {
	manager := newTestManager(&fakeRunner{}, nil, testClassifyConfig())

	result := manager.Check("https://example.com/stream", "video/mp4")
	assert.False(t, result.Supported)
	assert.True(t, result.Possibly)

	result = manager.Check("https://example.com/stream", "application/zip")
	assert.False(t, result.Possibly)
}

func TestClassifyManager_Parse_SelectsByURL(t *testing.T) {
	runner := &fakeRunner{outcome: &domain.ProcessOutcome{
		ExitCode: 0,
		Output:   `{"title": "x", "formats": [{"url": "https://cdn.example.com/v", "ext": "mp4"}]}`,
	}}
	history := &fakeHistory{}
	manager := newTestManager(runner, history, testClassifyConfig())

	result, err := manager.Parse(context.Background(), "https://www.youtube.com/watch?v=abc123", "", false)
	require.NoError(t, err)
	assert.Equal(t, "media", result.Kind())
	assert.Equal(t, []string{"extract", "https://www.youtube.com/watch?v=abc123"}, runner.lastReq.Args)

	require.Len(t, history.records, 1)
	record := history.records[0]
	assert.Equal(t, "extract", record.Mode)
	assert.Equal(t, domain.DecisionMedia, record.Decision)
	assert.Equal(t, "media", record.Classifier)
	assert.True(t, record.OK)
	assert.NotEmpty(t, record.ID)
}

func TestClassifyManager_Parse_SelectsByName(t *testing.T) {
	runner := &fakeRunner{outcome: &domain.ProcessOutcome{
		ExitCode: 0,
		Output:   `{"_type": "playlist", "entries": [{"url": "https://example.com/a", "title": "A"}]}`,
	}}
	history := &fakeHistory{}
	manager := newTestManager(runner, history, testClassifyConfig())

	result, err := manager.Parse(context.Background(), "https://www.youtube.com/playlist?list=PLabc", "playlist", false)
	require.NoError(t, err)
	assert.Equal(t, "playlist", result.Kind())
	assert.Equal(t, []string{"playlist", "https://www.youtube.com/playlist?list=PLabc"}, runner.lastReq.Args)

	require.Len(t, history.records, 1)
	assert.Equal(t, "playlist", history.records[0].Mode)
	assert.Equal(t, domain.DecisionPlaylist, history.records[0].Decision)
}

func TestClassifyManager_Parse_UnknownName(t *testing.T) {
	manager := newTestManager(&fakeRunner{}, nil, testClassifyConfig())

	_, err := manager.Parse(context.Background(), "https://www.youtube.com/watch?v=abc", "torrent", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown classifier")
}

func TestClassifyManager_Parse_DirectFallback(t *testing.T) {
	runner := &fakeRunner{}
	history := &fakeHistory{}
	manager := newTestManager(runner, history, testClassifyConfig())

	// No classifier claims a direct file URL, but the single-item classifier
	// still resolves it locally.
	result, err := manager.Parse(context.Background(), "https://example.com/archive.zip", "", false)
	require.NoError(t, err)
	assert.Equal(t, "media", result.Kind())
	assert.Zero(t, runner.calls)

	require.Len(t, history.records, 1)
	assert.Equal(t, domain.DecisionDirect, history.records[0].Decision)
	assert.True(t, history.records[0].OK)
}

func TestClassifyManager_Parse_NoClaim(t *testing.T) {
	history := &fakeHistory{}
	manager := newTestManager(&fakeRunner{}, history, testClassifyConfig())

	_, err := manager.Parse(context.Background(), "https://example.com/about", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no classifier claims URL")
	assert.Empty(t, history.records, "nothing to record when no classifier is selected")
}

func TestClassifyManager_Parse_RecordsFailure(t *testing.T) {
	runner := &fakeRunner{outcome: &domain.ProcessOutcome{ExitCode: 1, ErrorOutput: "ERROR: video unavailable"}}
	history := &fakeHistory{}
	manager := newTestManager(runner, history, testClassifyConfig())

	_, err := manager.Parse(context.Background(), "https://www.youtube.com/watch?v=abc123", "", false)
	require.Error(t, err)

	require.Len(t, history.records, 1)
	record := history.records[0]
	assert.False(t, record.OK)
	assert.True(t, record.ParseError)
	assert.Equal(t, "ERROR: video unavailable", record.ErrorMessage)
}

func TestClassifyManager_Parse_EnforcesMinInterval(t *testing.T) {
	cfg := testClassifyConfig()
	cfg.MediaMinInterval = 50 * time.Millisecond
	manager := newTestManager(&fakeRunner{}, nil, cfg)

	url := "https://example.com/archive.zip"

	started := time.Now()
	_, err := manager.Parse(context.Background(), url, "", false)
	require.NoError(t, err)

	// The second query must be held back until the interval has elapsed
	// since the first one.
	_, err = manager.Parse(context.Background(), url, "", false)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(started), 50*time.Millisecond)
}

func TestClassifyManager_Parse_IntervalWaitHonorsContext(t *testing.T) {
	cfg := testClassifyConfig()
	cfg.MediaMinInterval = 10 * time.Second
	manager := newTestManager(&fakeRunner{}, nil, cfg)

	url := "https://example.com/archive.zip"

	_, err := manager.Parse(context.Background(), url, "", false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = manager.Parse(ctx, url, "", false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRequestID(t *testing.T) {
	first := NewRequestID()
	second := NewRequestID()
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
