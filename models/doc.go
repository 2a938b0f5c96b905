// Package models holds the Likee entities and the functions that map decoded
// API payloads onto them.
//
// Payloads arrive as the generic values produced by the JSON codec
// (map[string]any, []any, json.Number). Mapping is tolerant of the API's
// habit of sending numbers as strings and vice versa, and of nested JSON
// documents carried inside string fields (hashtagInfos, atUserInfos, comMsg).
//
// Collection mappers return an empty slice when the list key is missing:
//
//	videos, err := models.MapVideoCollection(resp.Body())
//	if err != nil {
//		return err
//	}
//	for _, v := range videos {
//		fmt.Println(v.ID, v.ID.Time(), v.Title)
//	}
package models
