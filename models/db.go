package models

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *sql.DB
var GormDB *gorm.DB

// KVEntry 持久化 store 的一行：key -> JSON 文档
type KVEntry struct {
	Key       string         `gorm:"column:key;primaryKey;type:varchar(191)" json:"key"`
	Value     datatypes.JSON `gorm:"column:value;type:json" json:"value"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updatedAt"`
}

func (KVEntry) TableName() string {
	return "kv_entry"
}

// InitDB 打开 MySQL 连接池（原生 sql + GORM 共用同一个连接），并自动建表
func InitDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("mysql dsn is empty")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn: db,
	}), &gorm.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("GORM 初始化失败: %w", err)
	}

	if err := gdb.AutoMigrate(&KVEntry{}); err != nil {
		db.Close()
		return nil, fmt.Errorf("自动建表失败: %w", err)
	}

	DB = db
	GormDB = gdb
	log.Info().Msg("数据库连接成功 (Native SQL + GORM)")
	return gdb, nil
}
