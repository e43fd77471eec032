package analyses

// Fixed mentorship call-to-action appended when the model suggests no tracks.
var defaultTracks = []any{
	map[string]any{
		"id":     "mentorship-basic",
		"title":  "1-1 CV + Mock Interview",
		"ctaUrl": "https://calendly.com/your-mentor/intro",
	},
}

// NormalizeResult fills defaults for any field the model omitted. It is the
// single shaping point between the loose upstream payload and what gets
// persisted: consumers can rely on every key existing, but field types stay
// loose (fit may be a string or a number, skills a list or a hard/soft map).
func NormalizeResult(result map[string]any) map[string]any {
	if result == nil {
		result = map[string]any{}
	}
	normalized := map[string]any{
		"skills":      defaultList(result["skills"]),
		"experience":  defaultList(result["experience"]),
		"gaps":        defaultList(result["gaps"]),
		"suggestions": defaultList(result["suggestions"]),
		"fit":         defaultFit(result["fit"]),
		"tracks":      defaultTracksFor(result["tracks"]),
	}
	return normalized
}

func defaultList(value any) any {
	switch v := value.(type) {
	case nil:
		return []any{}
	case []any:
		return v
	case map[string]any:
		// skills sometimes arrive as {hard: [...], soft: [...]}; keep the shape.
		return v
	default:
		return []any{}
	}
}

func defaultFit(value any) any {
	switch value.(type) {
	case nil:
		return 7
	case string, float64, int:
		return value
	default:
		return 7
	}
}

func defaultTracksFor(value any) any {
	if list, ok := value.([]any); ok && len(list) > 0 {
		return list
	}
	return defaultTracks
}
