package collector

import (
	"fmt"
	"strconv"

	"connwatch/internal/stats"
)

// Flatten converts one decoded JSON object into connection stats. Nested
// objects and arrays get dotted keys ("rtc.rtt", "codecs.0"); numbers become
// numeric values, everything else its text rendering.
func Flatten(obj map[string]any) stats.ConnectionStats {
	out := make(stats.ConnectionStats, len(obj))
	for k, v := range obj {
		flattenInto(out, k, v)
	}
	return out
}

func flattenInto(dst stats.ConnectionStats, key string, v any) {
	switch v := v.(type) {
	case map[string]any:
		for k, child := range v {
			flattenInto(dst, key+"."+k, child)
		}
	case []any:
		for i, child := range v {
			flattenInto(dst, key+"."+strconv.Itoa(i), child)
		}
	case float64:
		dst[key] = stats.Number(v)
	case string:
		dst[key] = stats.Text(v)
	case bool:
		dst[key] = stats.Text(strconv.FormatBool(v))
	case nil:
		dst[key] = stats.Text("null")
	default:
		dst[key] = stats.Text(fmt.Sprint(v))
	}
}
