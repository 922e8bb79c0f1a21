package main

import (
	"errors"
	"flag"
	"log"
	"os"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const createSessions = `
CREATE TABLE IF NOT EXISTS console_sessions (
  id CHAR(36) NOT NULL,
  username VARCHAR(255) NOT NULL,
  remote_uid VARCHAR(64) NOT NULL DEFAULT '',
  token TEXT NOT NULL,
  expires_at DATETIME(3) NOT NULL,
  created_at DATETIME(3) NOT NULL,
  PRIMARY KEY (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// tables created before the sweep job existed have no expiry index
const addExpiryIndex = `CREATE INDEX ix_console_sessions_expires_at ON console_sessions (expires_at)`

const errDupKeyName = 1061

func main() {
	_ = godotenv.Load()

	dsn := flag.String("dsn", os.Getenv("DB_DSN"), "MySQL DSN (defaults to DB_DSN)")
	flag.Parse()
	if *dsn == "" {
		log.Fatal("DB_DSN not set and -dsn not given")
	}

	db, err := gorm.Open(mysql.Open(*dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Exec(createSessions).Error; err != nil {
		log.Fatalf("Failed to create console_sessions: %v", err)
	}
	log.Println("✓ console_sessions table ready")

	if err := db.Exec(addExpiryIndex).Error; err != nil {
		var me *gomysql.MySQLError
		if !errors.As(err, &me) || me.Number != errDupKeyName {
			log.Fatalf("Failed to add expiry index: %v", err)
		}
	}
	log.Println("✓ ix_console_sessions_expires_at index ready")
}
