package cachestore

import "fmt"

// Key builders for the board keyspace. One office never shares a key with
// another, so every key embeds the office id.

// StatusKey is the per-office member status snapshot.
func StatusKey(officeID string) string {
	return fmt.Sprintf("status:%s", officeID)
}

// WatermarkKey is the per-office highest observed write timestamp.
func WatermarkKey(officeID string) string {
	return fmt.Sprintf("lastUpdate:%s", officeID)
}

// ConfigKey is the per-office grouped roster document.
func ConfigKey(officeID string) string {
	return fmt.Sprintf("config:%s", officeID)
}

// VacationsKey is the per-office vacation/event list.
func VacationsKey(officeID string) string {
	return fmt.Sprintf("vacations:%s", officeID)
}

// NoticesKey is the per-office notice list.
func NoticesKey(officeID string) string {
	return fmt.Sprintf("notices:%s", officeID)
}

// ToolsKey is the per-office tool list.
func ToolsKey(officeID string) string {
	return fmt.Sprintf("tools:%s", officeID)
}
