package retrieval

import (
	"strconv"
	"strings"
	"time"

	"github.com/ShreekarSeelavantula/career-compass/model"
)

// docMatchesFilters checks if a document matches every filter.
// A document missing a filtered field never matches.
func docMatchesFilters(doc model.Document, filters []Filter) bool {
	for _, filter := range filters {
		docFieldVal, exists := doc[filter.Field]
		if !exists {
			return false
		}
		if !applyFilterLogic(docFieldVal, filter.Operator, filter.Value) {
			return false
		}
	}
	return true
}

// applyFilterLogic applies the filter logic based on the operator.
// Unknown operators are treated as equality.
func applyFilterLogic(docFieldVal interface{}, operator string, filterValue interface{}) bool {
	switch operator {
	case OpNotEqual:
		return !applyEqualityFilter(docFieldVal, filterValue)
	case OpGreater, OpGreaterEqual, OpLess, OpLessEqual:
		return applyComparisonFilter(docFieldVal, filterValue, operator)
	case OpContains:
		return applyContainsFilter(docFieldVal, filterValue)
	case OpContainsAnyOf:
		return applyContainsAnyOfFilter(docFieldVal, filterValue)
	default:
		return applyEqualityFilter(docFieldVal, filterValue)
	}
}

// asList returns the elements of a list-valued field.
func asList(val interface{}) ([]interface{}, bool) {
	switch v := val.(type) {
	case []interface{}:
		return v, true
	case []string:
		items := make([]interface{}, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items, true
	}
	return nil, false
}

// applyEqualityFilter checks if two values are equal; list fields match on any element.
func applyEqualityFilter(docFieldVal, filterValue interface{}) bool {
	if items, isList := asList(docFieldVal); isList {
		for _, item := range items {
			if compareValues(item, filterValue) {
				return true
			}
		}
		return false
	}
	return compareValues(docFieldVal, filterValue)
}

// applyComparisonFilter applies gt, gte, lt, lte; list fields match on any element.
func applyComparisonFilter(docFieldVal, filterValue interface{}, operator string) bool {
	if items, isList := asList(docFieldVal); isList {
		for _, item := range items {
			if compareValuesWithOperator(item, filterValue, operator) {
				return true
			}
		}
		return false
	}
	return compareValuesWithOperator(docFieldVal, filterValue, operator)
}

// applyContainsFilter is a case-insensitive substring match.
func applyContainsFilter(docFieldVal, filterValue interface{}) bool {
	filterStr, isFilterStr := filterValue.(string)
	if !isFilterStr {
		return false
	}
	needle := strings.ToLower(filterStr)

	if items, isList := asList(docFieldVal); isList {
		for _, item := range items {
			if itemStr, isStr := item.(string); isStr && strings.Contains(strings.ToLower(itemStr), needle) {
				return true
			}
		}
		return false
	}

	if docStr, isDocStr := docFieldVal.(string); isDocStr {
		return strings.Contains(strings.ToLower(docStr), needle)
	}
	return false
}

// applyContainsAnyOfFilter checks if a field matches any of the provided values
func applyContainsAnyOfFilter(docFieldVal, filterValue interface{}) bool {
	filterItems, isFilterList := asList(filterValue)
	if !isFilterList {
		return false
	}

	if docItems, isList := asList(docFieldVal); isList {
		for _, docItem := range docItems {
			for _, filterItem := range filterItems {
				if compareValues(docItem, filterItem) {
					return true
				}
			}
		}
		return false
	}

	for _, filterItem := range filterItems {
		if compareValues(docFieldVal, filterItem) {
			return true
		}
	}
	return false
}

// compareValues compares two values for equality. Strings compare
// case-insensitively, since stored keyword fields are lower-cased.
func compareValues(docVal, filterVal interface{}) bool {
	if docStr, isDocStr := docVal.(string); isDocStr {
		if filterStr, isFilterStr := filterVal.(string); isFilterStr {
			return strings.EqualFold(docStr, strings.TrimSpace(filterStr))
		}
	}

	if docFloat, docOk := convertToFloat64(docVal); docOk {
		if filterFloat, filterOk := convertToFloat64(filterVal); filterOk {
			return docFloat == filterFloat
		}
	}

	if docTime, docOk := convertToTime(docVal); docOk {
		if filterTime, filterOk := convertToTime(filterVal); filterOk {
			return docTime.Equal(filterTime)
		}
	}

	if docBool, docOk := docVal.(bool); docOk {
		if filterBool, filterOk := filterVal.(bool); filterOk {
			return docBool == filterBool
		}
	}

	return false
}

// compareValuesWithOperator compares two values with a specific operator
func compareValuesWithOperator(docVal, filterVal interface{}, operator string) bool {
	if cmp, ok := compareOrdered(docVal, filterVal); ok {
		switch operator {
		case OpGreater:
			return cmp > 0
		case OpGreaterEqual:
			return cmp >= 0
		case OpLess:
			return cmp < 0
		case OpLessEqual:
			return cmp <= 0
		}
	}
	return false
}

// compareOrdered returns -1, 0 or 1, trying numbers, then times, then strings.
func compareOrdered(a, b interface{}) (int, bool) {
	if af, aOk := convertToFloat64(a); aOk {
		if bf, bOk := convertToFloat64(b); bOk {
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			}
			return 0, true
		}
	}

	if at, aOk := convertToTime(a); aOk {
		if bt, bOk := convertToTime(b); bOk {
			return at.Compare(bt), true
		}
	}

	if as, aOk := a.(string); aOk {
		if bs, bOk := b.(string); bOk {
			return strings.Compare(as, bs), true
		}
	}

	return 0, false
}

// convertToFloat64 converts various numeric types to float64
func convertToFloat64(val interface{}) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// convertToTime converts various time representations to time.Time
func convertToTime(val interface{}) (time.Time, bool) {
	switch v := val.(type) {
	case time.Time:
		return v, true
	case string:
		formats := []string{
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
		}
		for _, format := range formats {
			if t, err := time.Parse(format, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
