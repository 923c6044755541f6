package weather

import (
	"strings"

	"github.com/jerseymet/weather-aggregation/internal/common"
)

// iconConditions maps upstream icon file names to normalized conditions.
var iconConditions = map[string]Condition{
	"a.svg": ConditionSunny,
	"b.svg": ConditionPartlyCloudy,
	"c.svg": ConditionClearNight,
	"d.svg": ConditionPartlyCloudy,
	"e.svg": ConditionCloudy,
	"f.svg": ConditionCloudy,
	"g.svg": ConditionFog,
	"h.svg": ConditionRainy,
	"i.svg": ConditionPouring,
	"j.svg": ConditionLightningRainy,
	"k.svg": ConditionSnowy,
	"l.svg": ConditionSnowyRainy,
}

// summaryConditions is an ordered keyword fallback for free-text summaries.
// Order matters: more specific phrases are matched first.
var summaryConditions = []struct {
	keywords []string
	cond     Condition
}{
	{[]string{"thunder", "storm"}, ConditionLightningRainy},
	{[]string{"lightning"}, ConditionLightning},
	{[]string{"sleet"}, ConditionSnowyRainy},
	{[]string{"snow"}, ConditionSnowy},
	{[]string{"hail"}, ConditionHail},
	{[]string{"heavy rain"}, ConditionPouring},
	{[]string{"rain", "shower", "drizzle"}, ConditionRainy},
	{[]string{"fog", "mist"}, ConditionFog},
	{[]string{"overcast", "cloud"}, ConditionCloudy},
	{[]string{"sunny"}, ConditionSunny},
	{[]string{"clear", "fine", "fair"}, ConditionClearNight},
	{[]string{"bright", "hazy"}, ConditionPartlyCloudy},
}

// MapCondition resolves the condition for a forecast day from its icon,
// falling back to the summary text. Defaults to cloudy, matching the
// upstream display behavior for unknown icons.
func MapCondition(icon, summary string) Condition {
	if c, ok := iconConditions[strings.ToLower(strings.TrimSpace(icon))]; ok {
		return c
	}
	if c := MapSummaryCondition(summary); c != ConditionUnknown {
		return c
	}
	return ConditionCloudy
}

// MapSummaryCondition classifies a free-text description by keyword.
func MapSummaryCondition(summary string) Condition {
	s := strings.ToLower(summary)
	if strings.TrimSpace(s) == "" {
		return ConditionUnknown
	}
	for _, m := range summaryConditions {
		if common.HasAny(s, m.keywords...) {
			return m.cond
		}
	}
	return ConditionUnknown
}
