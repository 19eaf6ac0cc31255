package pageobject

import "strings"

// ParseArgs splits keyword arguments into key=value pairs and positional
// arguments, preserving order within each group. Keys are normalized the
// same way keyword names are, so "Filter Name=Recent" and
// "filter_name=Recent" are equivalent.
func ParseArgs(args []string) (kwargs map[string]string, positional []string) {
	kwargs = make(map[string]string)
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || strings.TrimSpace(key) == "" {
			positional = append(positional, arg)
			continue
		}
		kwargs[NormalizeKeyword(key)] = value
	}
	return kwargs, positional
}
