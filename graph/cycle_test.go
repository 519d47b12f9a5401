package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Endeer/pontoon"
)

func TestCheckCycles(t *testing.T) {
	t.Parallel()
	backToLocales := func(root string) Selection {
		return Node(root, Node("localizations", Node("locale", Node("localizations", Leaf("totalStrings")))))
	}
	backToProjects := func(root string) Selection {
		return Node(root, Node("localizations", Node("project", Node("localizations", Leaf("totalStrings")))))
	}
	tests := []struct {
		root    string
		sel     Selection
		wantErr bool
	}{
		{root: "projects", sel: backToLocales("projects"), wantErr: true},
		{root: "project", sel: backToLocales("project"), wantErr: true},
		{root: "locales", sel: backToProjects("locales"), wantErr: true},
		{root: "locale", sel: backToProjects("locale"), wantErr: true},
		// Only the expansion through the opposite side is cyclic.
		{root: "projects", sel: backToProjects("projects")},
		{root: "locale", sel: backToLocales("locale")},
		{root: "projects", sel: Node("projects", Node("localizations", Node("locale", Leaf("code"))))},
		{root: "locales", sel: Node("locales", Node("localizations", Node("project", Node("tags", Leaf("slug")))))},
	}
	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			t.Parallel()
			err := checkCycles(tt.root, Fields(tt.sel))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, pontoon.IsCyclicQuery(err))
			assert.EqualError(t, err, "Cyclic queries are forbidden")
		})
	}
}
