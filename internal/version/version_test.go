package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBanner(t *testing.T) {
	banner := Banner()
	assert.Contains(t, banner, "SQLite demo "+Version)
	assert.NotContains(t, banner, "%s")
}

func TestCLIVersion(t *testing.T) {
	assert.Equal(t, "driversdb "+Version, CLIVersion())
}
