package database

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/smartcook/smartcook-backend/config"
	"github.com/smartcook/smartcook-backend/internal/model"
)

// New opens the database and configures the connection pool. A postgres DSN
// is detected by its scheme prefix; anything else is treated as a sqlite
// file path.
func New(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	url := cfg.Database.URL
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		dialector = postgres.Open(url)
	} else {
		dialector = sqlite.Open(url)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("database connected", zap.String("dialect", db.Dialector.Name()))
	return db, nil
}

// Migrate creates all tables if they do not exist. There is no schema
// versioning; AutoMigrate is idempotent.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Ingredient{},
		&model.Recipe{},
		&model.FavoriteGroup{},
		&model.Favorite{},
		&model.ShoppingListItem{},
		&model.RecipeStepProgress{},
		&model.IngredientSubstitution{},
	)
}
