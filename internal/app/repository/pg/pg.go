package pg

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// PostgresDB implements the repository DAOs on PostgreSQL. The embedded
// *sql.DB pool hands each operation its own connection and returns it when
// the operation finishes.
type PostgresDB struct {
	db *sql.DB
}

// NewPostgresDB opens a connection pool for the given connection string.
func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, err
	}
	return &PostgresDB{db: db}, nil
}

func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}
