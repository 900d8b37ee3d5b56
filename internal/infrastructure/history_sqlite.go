package infrastructure

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/croxz/croxz-go/internal/domain"
)

// SQLiteHistoryRepository implements HistoryRepository using SQLite
type SQLiteHistoryRepository struct {
	db *gorm.DB
}

// NewSQLiteHistoryRepository creates a new SQLite history repository
func NewSQLiteHistoryRepository(dbPath string) (*SQLiteHistoryRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(&domain.ClassifyRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteHistoryRepository{db: db}, nil
}

// Create stores a new record
func (r *SQLiteHistoryRepository) Create(record *domain.ClassifyRecord) error {
	return r.db.Create(record).Error
}

// FindRecent returns the most recent records, newest first
func (r *SQLiteHistoryRepository) FindRecent(limit int) ([]*domain.ClassifyRecord, error) {
	var records []*domain.ClassifyRecord
	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}

// FindByURL returns all records for a URL, newest first
func (r *SQLiteHistoryRepository) FindByURL(url string) ([]*domain.ClassifyRecord, error) {
	var records []*domain.ClassifyRecord
	err := r.db.Where("url = ?", url).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// Count returns the total number of records
func (r *SQLiteHistoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.ClassifyRecord{}).Count(&count).Error
	return count, err
}

// GetStats returns per-decision counts
func (r *SQLiteHistoryRepository) GetStats() (*domain.ClassifyStats, error) {
	stats := &domain.ClassifyStats{}

	if err := r.db.Model(&domain.ClassifyRecord{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	counts := map[domain.ClassifyDecision]*int64{
		domain.DecisionDirect:      &stats.Direct,
		domain.DecisionMedia:       &stats.Media,
		domain.DecisionPlaylist:    &stats.Playlist,
		domain.DecisionUnsupported: &stats.Unsupported,
	}
	for decision, target := range counts {
		if err := r.db.Model(&domain.ClassifyRecord{}).
			Where("decision = ?", decision).
			Count(target).Error; err != nil {
			return nil, err
		}
	}

	if err := r.db.Model(&domain.ClassifyRecord{}).
		Where("ok = ?", false).
		Count(&stats.Failed).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// Close closes the database connection
func (r *SQLiteHistoryRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
