package model

// Document is a flexible map of a stored record's searchable and filterable fields.
// The documentID is the only required field. Other fields are accessed by key,
// e.g. doc["title"], doc["skills"].
type Document map[string]interface{}

// GetDocumentID returns the documentID if it's stored in the document map under "documentID" key.
func (d Document) GetDocumentID() (string, bool) {
	if id, ok := d["documentID"]; ok {
		if str, sok := id.(string); sok && str != "" {
			return str, true
		}
	}
	return "", false
}

// Vector returns a numeric slice field, e.g. an embedding.
func (d Document) Vector(field string) ([]float64, bool) {
	switch v := d[field].(type) {
	case []float64:
		return v, len(v) > 0
	case []interface{}:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			f, ok := item.(float64)
			if !ok {
				return nil, false
			}
			out = append(out, f)
		}
		return out, len(out) > 0
	}
	return nil, false
}
