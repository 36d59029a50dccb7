package db

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const (
	ResultsBucket = "game_results"
)

// ResultsDB представляет базу данных результатов игр
type ResultsDB struct {
	db         *bbolt.DB
	mu         sync.RWMutex
	serializer Serializer
}

// Config содержит конфигурацию для ResultsDB
type Config struct {
	Path       string
	FileMode   os.FileMode
	Options    *bbolt.Options
	Serializer Serializer
}

// NewResultsDB создает новый экземпляр ResultsDB
func NewResultsDB(cfg Config) (*ResultsDB, error) {
	if cfg.Serializer == nil {
		cfg.Serializer = &GobSerializer{}
	}

	if cfg.FileMode == 0 {
		cfg.FileMode = 0666
	}

	if cfg.Options == nil {
		cfg.Options = &bbolt.Options{Timeout: time.Second}
	}

	db, err := bbolt.Open(cfg.Path, cfg.FileMode, cfg.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to open results db %s: %w", cfg.Path, err)
	}

	// Создаем bucket при инициализации
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(ResultsBucket))
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close() // Закрываем БД в случае ошибки
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &ResultsDB{
		db:         db,
		serializer: cfg.Serializer,
	}, nil
}

func (rdb *ResultsDB) Close() error {
	if rdb.db == nil {
		return ErrNilDB
	}
	return rdb.db.Close()
}

// SaveResult сохраняет результат игры; пустой ID заполняется новым uuid
func (rdb *ResultsDB) SaveResult(r *Result) error {
	if r == nil {
		return ErrNilResult
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	data, err := rdb.serializer.Serialize(r)
	if err != nil {
		return fmt.Errorf("serialize result %s: %w", r.ID, err)
	}

	rdb.mu.Lock()
	defer rdb.mu.Unlock()

	return rdb.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(ResultsBucket))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(r.ID), data)
	})
}

// GetResult загружает результат по его ID
func (rdb *ResultsDB) GetResult(id string) (*Result, error) {
	var r Result

	rdb.mu.RLock()
	defer rdb.mu.RUnlock()

	err := rdb.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(ResultsBucket))
		if bucket == nil {
			return ErrBucketNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return ErrResultNotFound
		}

		return rdb.serializer.Deserialize(data, &r)
	})

	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListResults возвращает все результаты: сначала лучший счет, при равенстве - более новые
func (rdb *ResultsDB) ListResults() ([]*Result, error) {
	var results []*Result

	rdb.mu.RLock()
	defer rdb.mu.RUnlock()

	err := rdb.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(ResultsBucket))
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var r Result
			if err := rdb.serializer.Deserialize(v, &r); err != nil {
				return err
			}
			results = append(results, &r)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].PlayedAt.After(results[j].PlayedAt)
	})
	return results, nil
}

// DeleteResult удаляет результат из базы данных
func (rdb *ResultsDB) DeleteResult(id string) error {
	rdb.mu.Lock()
	defer rdb.mu.Unlock()

	return rdb.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(ResultsBucket))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(id))
	})
}
