package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
)

func TestVersionAtLeast(t *testing.T) {
	tests := []struct {
		have, want string
		ok         bool
	}{
		{"6.2", "6.2", true},
		{"6.10", "6.2", true},
		{"6.1", "6.2", false},
		{"7", "6.7", true},
		{"6", "6.0", true},
		{"", "6.1", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, domain.VersionAtLeast(tt.have, tt.want), "%s >= %s", tt.have, tt.want)
	}
}
