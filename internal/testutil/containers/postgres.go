//go:build integration

package containers

import (
	migration "Pasikuthu/cmd/database/migrate"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// PostgresContainer is a migrated database shared by every test in the run.
type PostgresContainer struct {
	DB *gorm.DB
}

// NewPostgresContainer starts PostgreSQL once per test binary, applies the
// migrations and returns a fresh connection to it. Ryuk removes the container.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	once.Do(func() {
		sharedDSN, initErr = startContainerAndMigrate()
	})
	if initErr != nil {
		t.Fatalf("failed to start postgres container: %v", initErr)
	}

	db, err := open(sharedDSN)
	if err != nil {
		t.Fatalf("failed to connect to postgres container: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &PostgresContainer{DB: db}
}

// TruncateTables empties the given tables between tests.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if err := p.DB.WithContext(ctx).Exec(fmt.Sprintf("TRUNCATE TABLE %s", table)).Error; err != nil {
			return err
		}
	}
	return nil
}

func startContainerAndMigrate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "pasikuthu",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	dsn := fmt.Sprintf("host=%s user=testuser password=testpass dbname=pasikuthu port=%s sslmode=disable", host, port.Port())

	db, err := open(dsn)
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	if err := migration.Migrate(db); err != nil {
		return "", fmt.Errorf("migrate: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	return dsn, nil
}

func open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}
