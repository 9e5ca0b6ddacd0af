package registry

import (
	"strings"
	"unicode"
)

// entitySuffix is stripped from entity names before deriving a table name
const entitySuffix = "Entity"

// CamelToSnake converts CamelCase to lowercase_with_underscores.
// Runs of capitals stay together: "HTTPRule" -> "http_rule".
func CamelToSnake(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DeriveTableName produces the storage table name for an entity declared
// without an explicit table_name override: strip a trailing "Entity"
// token, snake-case the remainder, append "s".
//
//	TaskEntity          -> tasks
//	NoteEntity          -> notes
//	TimerReminderEntity -> timer_reminders
func DeriveTableName(entityName string) string {
	base := entityName
	if strings.HasSuffix(base, entitySuffix) && len(base) > len(entitySuffix) {
		base = base[:len(base)-len(entitySuffix)]
	}
	return CamelToSnake(base) + "s"
}

// isValidTableName reports whether name is a safe SQL identifier
func isValidTableName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
