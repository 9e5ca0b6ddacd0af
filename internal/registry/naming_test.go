package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelToSnake(t *testing.T) {
	cases := map[string]string{
		"Task":          "task",
		"TimerReminder": "timer_reminder",
		"HTTPRule":      "http_rule",
		"note":          "note",
		"A":             "a",
	}
	for in, want := range cases {
		assert.Equal(t, want, CamelToSnake(in), "input %q", in)
	}
}

func TestDeriveTableName(t *testing.T) {
	cases := map[string]string{
		"TaskEntity":          "tasks",
		"NoteEntity":          "notes",
		"TimerReminderEntity": "timer_reminders",
		// No suffix: the whole name is snake-cased
		"Contact": "contacts",
		// A name that IS the suffix keeps it rather than deriving "s"
		"Entity": "entitys",
	}
	for in, want := range cases {
		assert.Equal(t, want, DeriveTableName(in), "input %q", in)
	}
}

func TestIsValidTableName(t *testing.T) {
	assert.True(t, isValidTableName("tasks"))
	assert.True(t, isValidTableName("timer_reminders"))
	assert.False(t, isValidTableName(""))
	assert.False(t, isValidTableName("9tasks"))
	assert.False(t, isValidTableName("tasks; drop"))
	assert.False(t, isValidTableName("Tasks"))
}
