package postgres

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/solpin/solpin-service/internal/config"
	"github.com/solpin/solpin-service/internal/types"
)

type Postgres struct {
	Db *sql.DB
}

func NewPostgres(cfg *config.Config) (*Postgres, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.PGSQL.Host, cfg.PGSQL.Port, cfg.PGSQL.User, cfg.PGSQL.Password, cfg.PGSQL.DBName, cfg.PGSQL.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}

	pg := &Postgres{Db: db}
	if err := pg.CreateTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pg, nil
}

func (p *Postgres) CreateTables() error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS uploads (
			id SERIAL PRIMARY KEY,
			name VARCHAR(256) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			metadata_cid VARCHAR(255) NOT NULL,
			metadata_url TEXT NOT NULL,
			file_cid VARCHAR(255) NOT NULL,
			file_name VARCHAR(255) NOT NULL DEFAULT '',
			file_type VARCHAR(128) NOT NULL DEFAULT '',
			uploader VARCHAR(64),
			tags TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		`,
		`CREATE INDEX IF NOT EXISTS idx_uploads_created_at ON uploads (created_at DESC);`,
	}

	for _, q := range queries {
		if _, err := p.Db.Exec(q); err != nil {
			return err
		}
	}

	return nil
}

func (p *Postgres) CreateUpload(record types.UploadRecord) (types.UploadRecord, error) {
	query := `
	INSERT INTO uploads (name, description, metadata_cid, metadata_url, file_cid, file_name, file_type, uploader, tags)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id, created_at
	`

	var id int
	err := p.Db.QueryRow(query,
		record.Name,
		record.Description,
		record.MetadataCID,
		record.MetadataURL,
		record.FileCID,
		record.FileName,
		record.FileType,
		record.Uploader,
		pq.Array(record.Tags),
	).Scan(&id, &record.CreatedAt)
	if err != nil {
		return types.UploadRecord{}, err
	}

	record.ID = fmt.Sprintf("%d", id)
	return record, nil
}

func (p *Postgres) ListUploads(limit int) ([]types.UploadRecord, error) {
	query := `
	SELECT id, name, description, metadata_cid, metadata_url, file_cid, file_name, file_type, uploader, tags, created_at
	FROM uploads
	ORDER BY created_at DESC
	LIMIT $1
	`

	rows, err := p.Db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []types.UploadRecord{}
	for rows.Next() {
		var record types.UploadRecord
		var id int
		var tags pq.StringArray

		err := rows.Scan(&id, &record.Name, &record.Description, &record.MetadataCID, &record.MetadataURL,
			&record.FileCID, &record.FileName, &record.FileType, &record.Uploader, &tags, &record.CreatedAt)
		if err != nil {
			return nil, err
		}

		record.ID = fmt.Sprintf("%d", id)
		record.Tags = []string(tags)
		items = append(items, record)
	}

	return items, rows.Err()
}
