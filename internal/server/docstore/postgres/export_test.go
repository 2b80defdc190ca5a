package postgres

import (
	"io/fs"

	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore/postgres/migrations"
)

func migrationsDir() ([]string, error) {
	entries, err := fs.ReadDir(migrations.Migrations, ".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
