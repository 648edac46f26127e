package alerts

import "strings"

// Render substitutes {variable} placeholders in a template with values from
// the variable bag. Placeholders without a matching variable are left
// intact so template problems stay visible instead of silently vanishing.
func Render(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}
	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
