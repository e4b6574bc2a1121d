package query

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/riskbases/riskbases/pkg/config"
	"github.com/riskbases/riskbases/pkg/logutils"
)

var (
	once     sync.Once
	instance *gorm.DB
)

// GetDB returns the singleton instance of the database connection.
func GetDB() *gorm.DB {
	once.Do(func() {
		dbConfig := config.GetConfig()

		host := dbConfig.Postgres.Host
		port := dbConfig.Postgres.Port
		dbName := dbConfig.Postgres.DBName
		user := dbConfig.Postgres.User
		password := dbConfig.Postgres.Password
		sslMode := dbConfig.Postgres.SSLMode
		timeZone := dbConfig.Postgres.TimeZone

		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbName, port, sslMode, timeZone)
		var err error
		instance, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			panic(err)
		}
		sqlDB, err := instance.DB()
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxIdleConns(dbConfig.Postgres.MaxIdleConns)
		sqlDB.SetMaxOpenConns(dbConfig.Postgres.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(time.Hour)

		logutils.Log.Infof("Postgres init success! (idle=%d open=%d)",
			dbConfig.Postgres.MaxIdleConns, dbConfig.Postgres.MaxOpenConns)
	})
	return instance
}
