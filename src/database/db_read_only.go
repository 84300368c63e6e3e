package database

import (
	"fmt"
	"portfoliotracker/src/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sirupsen/logrus"
)

// ReadOnlyDB serves projection-heavy reads (quotes, portfolio summaries) so
// they can be pointed at a replica. The database user for this connection
// should have SELECT-only permissions.
var ReadOnlyDB *gorm.DB

// InitReadOnlyDB initializes the read-only database connection.
// It does not run any migrations and should only be used for reading data.
func InitReadOnlyDB() error {
	config := GetConfig()
	db, err := gorm.Open(postgres.Open(config.DatabaseURLReadOnly),
		&gorm.Config{
			PrepareStmt:    true,
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.LogLevel(config.GormLogLevel)),
		},
	)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from ReadOnlyDB: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping ReadOnlyDB: %w", err)
	}

	var dbName, schema string
	if err := db.
		Raw("SELECT current_database(), current_schema()").
		Row().
		Scan(&dbName, &schema); err != nil {
		return fmt.Errorf("failed to query current db/schema on ReadOnlyDB: %w", err)
	}

	logrus.WithFields(map[string]interface{}{"dbName": dbName, "schema": schema}).Info("[ReadOnlyDB] connected")

	// Make sure the replica actually carries the schema before handing the
	// connection out to the read paths.
	var count int64
	if err1 := db.
		Model(&model.Stock{}).
		Count(&count).Error; err1 != nil {

		return fmt.Errorf("failed to access stocks: %w", err1)
	}

	logrus.WithFields(map[string]interface{}{"count": count}).Info("[ReadOnlyDB] stocks table reachable")

	ReadOnlyDB = db

	return nil
}
