package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFileFormatter(t *testing.T) {
	f := NewDefaultFileFormatter()

	tests := []struct {
		name string
		info FileInfo
		want string
	}{
		{
			name: "fixed",
			info: FileInfo{Path: "app/api/skema/[id]/route.ts", Status: StatusFixed},
			want: "✅ Fixed: app/api/skema/[id]/route.ts",
		},
		{
			name: "skipped",
			info: FileInfo{Path: "app/api/skema/route.ts", Status: StatusSkipped},
			want: "⏭️  Skipped: app/api/skema/route.ts (no changes needed)",
		},
		{
			name: "would_fix",
			info: FileInfo{Path: "app/api/x/route.ts", Status: StatusWouldFix},
			want: "📝 Would fix: app/api/x/route.ts",
		},
		{
			name: "unknown",
			info: FileInfo{Path: "x"},
			want: "❓ Unknown: x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatFileOperation(tt.info))
		})
	}

	assert.Equal(t, "🎉 Fixed 2 files!", f.FormatSummary(2, false))
	assert.Equal(t, "🔎 Would fix 3 files (dry run, nothing written)", f.FormatSummary(3, true))
}
