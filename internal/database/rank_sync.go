package database

import (
	"gorm.io/gorm"

	"github.com/uniem/uniem-api/internal/rank"
)

// rankSync is a GORM plugin that guards the points/rank invariant on the
// update path. Several call sites mutate users.points with column updates
// that bypass model hooks; instead of trusting each of them to refresh the
// rank label, the plugin rewrites any such update to assign the recomputed
// rank in the same statement. Struct saves are covered by User.BeforeSave.
type rankSync struct{}

func (rankSync) Name() string { return "uniem:rank_sync" }

func (rankSync) Initialize(db *gorm.DB) error {
	return db.Callback().Update().
		Before("gorm:update").
		Register("uniem:rank_sync", syncRankOnPointsUpdate)
}

// RegisterRankSync installs the rank-sync plugin. A registration failure
// leaves the invariant to User.BeforeSave alone, so callers may treat the
// error as non-fatal (log and continue).
func RegisterRankSync(db *gorm.DB) error {
	return db.Use(rankSync{})
}

func syncRankOnPointsUpdate(tx *gorm.DB) {
	stmt := tx.Statement
	if stmt == nil {
		return
	}

	table := stmt.Table
	if table == "" && stmt.Schema != nil {
		table = stmt.Schema.Table
	}
	if table != "users" {
		return
	}

	values, ok := stmt.Dest.(map[string]interface{})
	if !ok {
		return
	}

	raw, ok := values["points"]
	if !ok {
		return
	}

	points, ok := asInt(raw)
	if !ok {
		// SQL expressions (points = points + n) carry no final value here;
		// those callers re-read and save, which goes through BeforeSave.
		return
	}

	if points < 0 {
		points = 0
		values["points"] = points
	}
	values["rank"] = rank.Calculate(points)
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
