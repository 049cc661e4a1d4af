package refapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrHasChildren = errors.New("record still has dependent records")
)

// Store persists the three resources with gorm.
type Store struct {
	db *gorm.DB
}

// OpenStore opens the database named by dsn and migrates the schema. An empty dsn means a
// private in-memory SQLite database; a postgres:// or postgresql:// URL selects PostgreSQL;
// anything else is taken as a SQLite file name or DSN.
func OpenStore(dsn string) (*Store, error) {
	var dialector gorm.Dialector
	memory := false
	switch {
	case dsn == "":
		dialector = sqlite.Open(fmt.Sprintf("file:refapi-%s?mode=memory&cache=shared", uuid.NewString()))
		memory = true
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if memory {
		// The database lives only as long as its connection; a single connection also
		// serializes access so that SQLite never reports the table as locked.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&User{}, &Post{}, &Comment{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying connection pool. An in-memory database is discarded.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) exists(ctx context.Context, model interface{}, id int) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return n > 0, nil
}

func (s *Store) emailTaken(ctx context.Context, email string, exceptID int) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return n > 0, nil
}

func (s *Store) countWhere(ctx context.Context, model interface{}, column string, id int) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Where(column+" = ?", id).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count dependents: %w", err)
	}
	return n, nil
}

func getByID[T any](ctx context.Context, s *Store, id int) (*T, error) {
	var record T
	err := s.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return &record, nil
}

// listWhere returns matching records ordered by id. With no query it returns all records.
func listWhere[T any](ctx context.Context, s *Store, query string, args ...interface{}) ([]T, error) {
	records := make([]T, 0)
	db := s.db.WithContext(ctx).Order("id")
	if query != "" {
		db = db.Where(query, args...)
	}
	if err := db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

func create[T any](ctx context.Context, s *Store, record *T) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

func save[T any](ctx context.Context, s *Store, record *T) error {
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	return nil
}

func deleteByID[T any](ctx context.Context, s *Store, id int) error {
	result := s.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
