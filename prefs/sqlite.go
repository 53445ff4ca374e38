package prefs

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Daskott/sosphone/utils"
	sqliteEncrypt "github.com/Daskott/gorm-sqlite-cipher"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"
)

const DB_NAME = "sosphone.db"

type BaseModel struct {
	ID        uint      `json:"id,omitempty" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Preference is a single key/value pair, in the store named 'Namespace'
type Preference struct {
	BaseModel
	Namespace string `gorm:"not null;uniqueIndex:idx_namespace_key"`
	Key       string `gorm:"column:pref_key;not null;uniqueIndex:idx_namespace_key"`
	Value     string `gorm:"not null"`
}

// SQLiteStore is a Store persisted in an encrypted sqlite db.
// Several named stores can share the same db.
type SQLiteStore struct {
	db   *gorm.DB
	name string
}

// OpenDB opens (or creates) the encrypted db in '<dbRootDir>/db' & migrates its schema
func OpenDB(passPhrase string, dbRootDir string) (*gorm.DB, error) {
	dbDSNVal, err := dbDSN(passPhrase, dbRootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to set sqlite DSN: %v", err)
	}

	db, err := gorm.Open(sqliteEncrypt.Open(dbDSNVal), &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				LogLevel:                  gormLogger.Silent,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&Preference{})
	if err != nil {
		return nil, pkgErrors.Wrap(err, "failed to migrate database")
	}

	return db, nil
}

// CloseDB closes the connection pool behind db
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func NewSQLiteStore(db *gorm.DB, name string) *SQLiteStore {
	return &SQLiteStore{db: db, name: name}
}

func (s *SQLiteStore) Name() string {
	return s.name
}

func (s *SQLiteStore) Get(key string) (*string, error) {
	pref := Preference{}
	err := s.db.Select("value").First(&pref, "namespace = ? AND pref_key = ?", s.name, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, pkgErrors.Wrapf(err, "unable to read %q from %v", key, s.name)
	}

	return &pref.Value, nil
}

func (s *SQLiteStore) Set(key string, value *string) error {
	return s.set(s.db, key, value)
}

func (s *SQLiteStore) SetMany(entries map[string]*string) error {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, key := range keys {
			if err := s.set(tx, key, entries[key]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Clear(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	err := s.db.Where("namespace = ? AND pref_key IN ?", s.name, keys).Delete(&Preference{}).Error
	if err != nil {
		return pkgErrors.Wrapf(err, "unable to clear %v from %v", keys, s.name)
	}

	return nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func (s *SQLiteStore) set(tx *gorm.DB, key string, value *string) error {
	var err error

	if value == nil {
		err = tx.Where("namespace = ? AND pref_key = ?", s.name, key).Delete(&Preference{}).Error
	} else {
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}, {Name: "pref_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&Preference{Namespace: s.name, Key: key, Value: *value}).Error
	}

	if err != nil {
		return pkgErrors.Wrapf(err, "unable to write %q to %v", key, s.name)
	}

	return nil
}

func dbDSN(passPhrase string, dbRootDir string) (string, error) {
	dbFilePath, err := DbFilePath(dbRootDir)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"file:%v?_pragma_key=%s&_pragma_cipher_page_size=4096&_journal_mode=WAL",
		dbFilePath,
		url.QueryEscape(passPhrase),
	), nil
}

// DbFilePath returns the path of the db file, creating its directory if needed
func DbFilePath(dbRootDir string) (string, error) {
	dbDir := filepath.Join(dbRootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return filepath.Join(dbDir, DB_NAME), nil
}

// Checkpoint moves everything in the write-ahead log into the db file, so the
// file can be copied on its own
func Checkpoint(db *gorm.DB) error {
	err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error
	if err != nil {
		return pkgErrors.Wrap(err, "failed to checkpoint database")
	}
	return nil
}
