package config

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"support-desk-api/config/common"
	"support-desk-api/config/logger"
	"support-desk-api/entity"
)

type DBConfig struct {
	*gorm.DB
	*logger.AppLogger
}

func NewDB(config *common.Config, log *logger.AppLogger) *DBConfig {
	db := initDatabase(config, log)
	return &DBConfig{DB: db, AppLogger: log}
}

func (db *DBConfig) GetDB() *gorm.DB {
	return db.DB
}

func initDatabase(cfg *common.Config, log *logger.AppLogger) *gorm.DB {
	dbHost, dbUser, dbPassword, dbName, dbPort := cfg.GetDatabaseConfig()
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		dbHost, dbUser, dbPassword, dbName, dbPort, cfg.GetDatabaseTimezone(),
	)
	db, err := gorm.Open(postgres.Open(dsn), common.GormConfig())
	if err != nil {
		log.Http.Error.Fatal().Err(err).Msg("failed to connect to database")
	}

	log.Http.Info.Info().Str("host", dbHost).Str("db", dbName).Msg("Connection Opened to Database")
	conn, err := db.DB()
	if err != nil {
		log.Http.Error.Fatal().Err(err).Msg("failed to get database handle")
	}

	if err := db.AutoMigrate(entity.All()...); err != nil {
		log.Http.Error.Fatal().Err(err).Msg("failed run migration")
	}

	conn.SetMaxIdleConns(10)
	conn.SetMaxOpenConns(100)
	conn.SetConnMaxLifetime(time.Second * time.Duration(300))
	return db
}
