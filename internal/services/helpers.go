package services

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// toJSONList marshals a string slice into a jsonb column value.
func toJSONList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return datatypes.JSON(raw)
}

// fromJSONList unmarshals a jsonb column value back into a string slice.
func fromJSONList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return []string{}
	}
	return values
}

// totalPages computes the page count for a list response.
func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}
