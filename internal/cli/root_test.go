package cli

import (
	"testing"

	"github.com/patchgate/patchgate/internal/config"
	"github.com/patchgate/patchgate/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTargetFromArgs(t *testing.T) {
	cfg := &config.Config{Namespace: "linux-bsp"}

	tests := []struct {
		name string
		args []string
		want models.RepoTarget
	}{
		{"defaults", nil, models.RepoTarget{Namespace: "linux-bsp", Name: "widget"}},
		{"namespace only", []string{"rd"}, models.RepoTarget{Namespace: "rd", Name: "widget"}},
		{"namespace and repository", []string{"rd", "linux-imx"}, models.RepoTarget{Namespace: "rd", Name: "linux-imx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := targetFromArgs(cfg, tt.args, "/builds/linux-bsp/widget")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f785a1c", shortID("3f785a1c9e2d4b60718293a4b5c6d7e8f9012345"))
	assert.Equal(t, "abc", shortID("abc"))
}
