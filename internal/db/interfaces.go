package db

// ResultStorage определяет интерфейс для хранения результатов игр
type ResultStorage interface {
	SaveResult(r *Result) error
	GetResult(id string) (*Result, error)
	ListResults() ([]*Result, error)
	DeleteResult(id string) error
	Close() error
}
