package blockdrop

import (
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// Rules holds the tunable numbers of the scoring and gravity progression
type Rules struct {
	BaseInterval  time.Duration
	IntervalStep  time.Duration
	MinInterval   time.Duration
	PointsPerLine int
	LinesPerLevel int
}

// DefaultRules returns the standard block drop progression
func DefaultRules() Rules {
	return Rules{
		BaseInterval:  1000 * time.Millisecond,
		IntervalStep:  100 * time.Millisecond,
		MinInterval:   200 * time.Millisecond,
		PointsPerLine: 100,
		LinesPerLevel: 10,
	}
}

// Level returns the level reached after clearing the given number of lines
func (r Rules) Level(lines int) int {
	return lines/r.LinesPerLevel + 1
}

// LineScore returns the points for clearing n lines at the given level
func (r Rules) LineScore(n, level int) int {
	return n * r.PointsPerLine * level
}

// GravityInterval returns the delay between gravity ticks at a level
func (r Rules) GravityInterval(level int) time.Duration {
	interval := r.BaseInterval - time.Duration(level-1)*r.IntervalStep
	if interval < r.MinInterval {
		return r.MinInterval
	}
	return interval
}

// LoadRules reads rule overrides from a Lua script returning a table
// with a "rules" field. A missing script yields the defaults. Fields that
// are absent or not positive keep their default value.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return rules, nil
	}

	L := lua.NewState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return rules, fmt.Errorf("failed to load rules script %s: %w", path, err)
	}

	tbl, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		return rules, fmt.Errorf("rules script %s must return a table", path)
	}
	rulesTbl, ok := tbl.RawGetString("rules").(*lua.LTable)
	if !ok {
		return rules, fmt.Errorf("rules script %s has no rules table", path)
	}

	rules.BaseInterval = getLuaMillis(rulesTbl, "base_interval_ms", rules.BaseInterval)
	rules.IntervalStep = getLuaMillis(rulesTbl, "interval_step_ms", rules.IntervalStep)
	rules.MinInterval = getLuaMillis(rulesTbl, "min_interval_ms", rules.MinInterval)
	rules.PointsPerLine = getLuaInt(rulesTbl, "points_per_line", rules.PointsPerLine)
	rules.LinesPerLevel = getLuaInt(rulesTbl, "lines_per_level", rules.LinesPerLevel)

	if rules.MinInterval > rules.BaseInterval {
		rules.MinInterval = rules.BaseInterval
	}
	return rules, nil
}

// Helper functions to safely get positive values from a Lua table.
// Values are checked after conversion so fractions never truncate to zero.
func getLuaInt(tbl *lua.LTable, key string, fallback int) int {
	if num, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		if n := int(num); n >= 1 {
			return n
		}
	}
	return fallback
}

func getLuaMillis(tbl *lua.LTable, key string, fallback time.Duration) time.Duration {
	if num, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		if d := time.Duration(float64(num) * float64(time.Millisecond)); d > 0 {
			return d
		}
	}
	return fallback
}
