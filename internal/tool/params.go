package tool

func getString(params map[string]any, key string) string {
	v, _ := params[key].(string)
	return v
}

// getInt reads an integer parameter. JSON numbers decode as float64, so both
// shapes are accepted.
func getInt(params map[string]any, key string, def int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}
