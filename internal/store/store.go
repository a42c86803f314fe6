// 包 store: PostgreSQL 数据访问层，记录区域解析统计（不持久化区域表本身）
package store

import (
	"context"
	"database/sql"
	"time"

	"delivery-zones/internal/logger"

	_ "github.com/lib/pq"
)

// Store: 数据库访问入口，持有连接池
type Store struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

// RecordResolve: 记录一次解析；zoneID 为空表示未命中任何区域
func (s *Store) RecordResolve(ctx context.Context, zoneID string) error {
	miss := 0
	if zoneID == "" {
		miss = 1
	}
	if _, err := s.db.ExecContext(ctx, "UPDATE _zone_resolve_total SET total=total+1, misses=misses+$1 WHERE id=1", miss); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO _zone_resolve_daily(day, zone_id, hits) VALUES(current_date, $1, 1)
        ON CONFLICT (day, zone_id) DO UPDATE SET hits=_zone_resolve_daily.hits+1`, zoneID); err != nil {
		return err
	}
	logger.L().Debug("stats_incr", "zone_id", zoneID)
	return nil
}

// Totals: 累计解析次数、累计未命中次数与当日解析次数
type Totals struct {
	Total  int64 `json:"total"`
	Misses int64 `json:"misses"`
	Today  int64 `json:"today"`
}

func (s *Store) GetTotals(ctx context.Context) (*Totals, error) {
	var t Totals
	row := s.db.QueryRowContext(ctx, "SELECT total, misses FROM _zone_resolve_total WHERE id=1")
	if err := row.Scan(&t.Total, &t.Misses); err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	row2 := s.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(hits), 0) FROM _zone_resolve_daily WHERE day=current_date")
	if err := row2.Scan(&t.Today); err != nil {
		return nil, err
	}
	logger.L().Debug("stats_totals", "total", t.Total, "misses", t.Misses, "today", t.Today)
	return &t, nil
}

// ZoneCount: 某日某区域的解析次数，ZoneID 为空表示未命中
type ZoneCount struct {
	ZoneID string `json:"zone_id"`
	Hits   int64  `json:"hits"`
}

// DailyByZone: 按命中次数降序返回指定日期的区域分布
func (s *Store) DailyByZone(ctx context.Context, day time.Time) ([]ZoneCount, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT zone_id, hits FROM _zone_resolve_daily WHERE day=$1 ORDER BY hits DESC, zone_id ASC", day.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ZoneCount{}
	for rows.Next() {
		var c ZoneCount
		if err := rows.Scan(&c.ZoneID, &c.Hits); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
