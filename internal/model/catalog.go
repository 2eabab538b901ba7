package model

import (
	"fmt"
	"time"
)

// Rotation anchor keys. They share the persisted key space with task keys.
const (
	AnchorDragonNest = "dragon_nest_start_week"
	AnchorGuildBoss  = "guild_boss_start_week"
)

// AnchorKeys lists the reserved anchor keys in display order.
func AnchorKeys() []string {
	return []string{AnchorDragonNest, AnchorGuildBoss}
}

func IsAnchorKey(key string) bool {
	return key == AnchorDragonNest || key == AnchorGuildBoss
}

// AnchorLabel is the player-facing name of a rotation anchor.
func AnchorLabel(key string) string {
	switch key {
	case AnchorDragonNest:
		return "龙巢周期"
	case AnchorGuildBoss:
		return "公会Boss周期"
	default:
		return key
	}
}

// Catalog is an ordered, immutable set of task definitions.
type Catalog struct {
	defs  []TaskDefinition
	index map[string]int
}

func NewCatalog(defs ...TaskDefinition) (Catalog, error) {
	c := Catalog{
		defs:  make([]TaskDefinition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return Catalog{}, err
		}
		if _, dup := c.index[def.Key]; dup {
			return Catalog{}, fmt.Errorf("model: duplicate task key %q", def.Key)
		}
		c.index[def.Key] = len(c.defs)
		c.defs = append(c.defs, def)
	}
	return c, nil
}

func MustCatalog(defs ...TaskDefinition) Catalog {
	c, err := NewCatalog(defs...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Catalog) Len() int { return len(c.defs) }

// All returns every definition in catalog order.
func (c Catalog) All() []TaskDefinition {
	out := make([]TaskDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

func (c Catalog) Lookup(key string) (TaskDefinition, bool) {
	i, ok := c.index[key]
	if !ok {
		return TaskDefinition{}, false
	}
	return c.defs[i], true
}

// ByCategory returns the definitions of one category in catalog order.
func (c Catalog) ByCategory(cat Category) []TaskDefinition {
	out := make([]TaskDefinition, 0)
	for _, def := range c.defs {
		if def.Category == cat {
			out = append(out, def)
		}
	}
	return out
}

func (c Catalog) Periodic() []TaskDefinition {
	return c.ByCategory(CategoryPeriodic)
}

// DefaultCatalog is the built-in routine.
func DefaultCatalog() Catalog {
	return defaultCatalog
}

var defaultCatalog = MustCatalog(
	TaskDefinition{Key: "elemental_small_mine", Name: "元素小矿", Category: CategoryDaily, Cadence: Daily(), Location: "海心圣域-拥环之辉, 海心圣域-深空流金, 海心圣域-蓝影之歌"},
	TaskDefinition{Key: "daily_chest", Name: "每日宝箱", Category: CategoryDaily, Cadence: Daily()},
	TaskDefinition{Key: "arena", Name: "竞技场", Category: CategoryDaily, Cadence: Daily()},
	TaskDefinition{Key: "guild_tasks", Name: "工会任务", Category: CategoryDaily, Cadence: Daily()},
	TaskDefinition{Key: "trial_tower", Name: "试炼塔", Category: CategoryDaily, Cadence: Daily()},
	TaskDefinition{Key: "elemental_tower", Name: "元素塔", Category: CategoryDaily, Cadence: Daily()},
	TaskDefinition{Key: "black_market", Name: "黑市购买", Category: CategoryDaily, Cadence: Daily()},
	TaskDefinition{Key: "village_lottery", Name: "百炼村抽奖", Category: CategoryDaily, Cadence: Daily()},
	TaskDefinition{Key: "game_circle", Name: "游戏圈", Category: CategoryDaily, Cadence: Daily()},
	TaskDefinition{Key: "clover_gathering", Name: "幸运草采集", Category: CategoryDaily, Cadence: Daily()},

	TaskDefinition{Key: "elemental_giant_mine", Name: "元素巨型矿", Category: CategoryWeekly, Cadence: OnWeekday(time.Monday), Location: "海心圣域-望角游龙"},
	TaskDefinition{Key: "guild_war", Name: "公会战", Category: CategoryWeekly, Cadence: Weekly()},
	TaskDefinition{Key: "dragon_nest", Name: "龙巢", Category: CategoryWeekly, Cadence: Biweekly(AnchorDragonNest), Note: "本周二开启"},
	TaskDefinition{Key: "guild_boss", Name: "公会boss", Category: CategoryWeekly, Cadence: Biweekly(AnchorGuildBoss), Note: "周四开启"},

	TaskDefinition{Key: "red_small_mine", Name: "红小矿", Category: CategoryPeriodic, Cadence: EveryNDays(2), Location: "危险洞窟-赤色险地"},
	TaskDefinition{Key: "red_medium_mine", Name: "红中矿", Category: CategoryPeriodic, Cadence: EveryNDays(4), Location: "危险洞窟-赤色险地"},
	TaskDefinition{Key: "red_large_mine", Name: "红大矿", Category: CategoryPeriodic, Cadence: EveryNDays(6), Location: "危险洞窟-赤色险地"},
	TaskDefinition{Key: "rainbow_mine", Name: "彩矿", Category: CategoryPeriodic, Cadence: EveryNDays(3), Location: "彩晶深谷-迷晶归途"},
	TaskDefinition{Key: "elemental_large_mine", Name: "元素大矿", Category: CategoryPeriodic, Cadence: EveryNDays(2), Location: "海底皇城-海王东庭"},
	TaskDefinition{Key: "elemental_xl_mine", Name: "元素特大矿", Category: CategoryPeriodic, Cadence: EveryNDays(3), Location: "海心圣域-浮光小径, 海心圣域-流萤一处"},
)
