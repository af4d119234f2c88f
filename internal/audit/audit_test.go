package audit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordAppendsTaggedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trail.log")
	trail := New(path)

	trail.Record("WARN", "uid=%d count=%d/%d", 7, 3, 3)
	trail.Record("WARN", "LIMIT_REACHED uid=%d, escalating for review", 7)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[WARN] uid=7 count=3/3\n")
	assert.Contains(t, content, "[WARN] LIMIT_REACHED uid=7, escalating for review\n")
}

func TestRecordForwardsEveryLine(t *testing.T) {
	trail := New(filepath.Join(t.TempDir(), "trail.log"))

	var got []string
	trail.SetForward(func(text string) { got = append(got, text) })

	trail.Record("EOD", "confirm requests sent for 2024-03-01")
	trail.Record("WARN", "RESET uid=7")

	assert.Len(t, got, 2)
	assert.Contains(t, got[0], "[EOD] confirm requests sent for 2024-03-01")
	assert.Contains(t, got[1], "[WARN] RESET uid=7")
}

func TestEmptyPathDisablesFileSink(t *testing.T) {
	trail := New("")

	forwarded := 0
	trail.SetForward(func(string) { forwarded++ })

	trail.Record("EOD", "no file behind this trail")
	assert.Equal(t, 1, forwarded)
}
