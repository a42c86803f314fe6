package migrate

import (
	"database/sql"

	"delivery-zones/internal/logger"
)

// 文档注释：首次运行创建解析统计表
// 约束：仅统计解析次数，不持久化区域表；使用 IF NOT EXISTS，可重复执行。
func EnsureSchema(db *sql.DB) error {
	for i, s := range Statements() {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done")
	return nil
}

func Statements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS _zone_resolve_total (
            id INT PRIMARY KEY,
            total BIGINT NOT NULL DEFAULT 0,
            misses BIGINT NOT NULL DEFAULT 0
        )`,
		`INSERT INTO _zone_resolve_total(id, total, misses)
         VALUES(1, 0, 0)
         ON CONFLICT (id) DO NOTHING`,
		`CREATE TABLE IF NOT EXISTS _zone_resolve_daily (
            day DATE NOT NULL,
            zone_id TEXT NOT NULL,
            hits BIGINT NOT NULL DEFAULT 0,
            PRIMARY KEY (day, zone_id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_zone_resolve_daily_zone ON _zone_resolve_daily(zone_id, day)`,
	}
}
