package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDottedID_ThreeSegments(t *testing.T) {
	assert.Equal(t, "1.203", FormatDottedID("1.2.03"))
	assert.Equal(t, "12.34", FormatDottedID("12.3.4"))
}

func TestFormatDottedID_PassThrough(t *testing.T) {
	cases := []string{"", "7", "1.203", "a.b.c.d"}
	for _, id := range cases {
		assert.Equal(t, id, FormatDottedID(id), "id=%q", id)
	}
}

func TestFormatDottedID_Idempotent(t *testing.T) {
	cases := []string{"1.2.03", "10.1.1", "3.14", "plain"}
	for _, id := range cases {
		once := FormatDottedID(id)
		assert.Equal(t, once, FormatDottedID(once), "id=%q", id)
	}
}
