package vectorindex

// WhereClause is a metadata filter compiled to Chroma's operator dialect
// ($gte/$lte/$eq/$in) and independently interpretable by MemoryIndex, so
// both backends accept the exact same filter value.
type WhereClause map[string]any

// Eq matches metadata field equal to val.
func Eq(field string, val any) WhereClause {
	return WhereClause{field: map[string]any{"$eq": val}}
}

// Gte matches metadata field greater than or equal to val.
func Gte(field string, val any) WhereClause {
	return WhereClause{field: map[string]any{"$gte": val}}
}

// Lte matches metadata field less than or equal to val.
func Lte(field string, val any) WhereClause {
	return WhereClause{field: map[string]any{"$lte": val}}
}

// In matches metadata field against a set of allowed values.
func In(field string, vals []any) WhereClause {
	return WhereClause{field: map[string]any{"$in": vals}}
}

// And merges clauses, requiring every one to match (Chroma itself only
// needs a flat multi-key map for AND semantics across distinct fields).
func And(clauses ...WhereClause) WhereClause {
	out := WhereClause{}
	for _, c := range clauses {
		for k, v := range c {
			out[k] = v
		}
	}
	return out
}

// Matches reports whether metadata satisfies where. Used by MemoryIndex;
// Chroma evaluates the same WhereClause server-side.
func Matches(metadata map[string]any, where WhereClause) bool {
	for field, condRaw := range where {
		cond, ok := condRaw.(map[string]any)
		if !ok {
			if metadata[field] != condRaw {
				return false
			}
			continue
		}
		value, present := metadata[field]
		for op, target := range cond {
			switch op {
			case "$eq":
				if !present || value != target {
					return false
				}
			case "$gte":
				if !present || !numericCompare(value, target, func(a, b float64) bool { return a >= b }) {
					return false
				}
			case "$lte":
				if !present || !numericCompare(value, target, func(a, b float64) bool { return a <= b }) {
					return false
				}
			case "$in":
				if !present || !containsAny(target, value) {
					return false
				}
			}
		}
	}
	return true
}

func numericCompare(value, target any, cmp func(a, b float64) bool) bool {
	vf, ok1 := toFloat(value)
	tf, ok2 := toFloat(target)
	if !ok1 || !ok2 {
		if vs, ok := value.(string); ok {
			if ts, ok2 := target.(string); ok2 {
				return cmp(stringOrder(vs, ts), 0)
			}
		}
		return false
	}
	return cmp(vf, tf)
}

// stringOrder returns a value whose sign encodes a's lexicographic order
// relative to b, letting ISO-8601 timestamp fields use the same
// numericCompare path as numeric fields.
func stringOrder(a, b string) float64 {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func containsAny(target, value any) bool {
	vals, ok := target.([]any)
	if !ok {
		return false
	}
	for _, v := range vals {
		if v == value {
			return true
		}
	}
	return false
}
