package ui

import "testing"

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{1024, "1.0KiB"},
		{1536, "1.5KiB"},
		{1048576, "1.0MiB"},
		{5 * 1048576, "5.0MiB"},
		{3 * 1073741824, "3.0GiB"},
	}
	for _, tt := range tests {
		if got := humanBytes(tt.n); got != tt.want {
			t.Errorf("humanBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestProgressModelView(t *testing.T) {
	m := newProgressModel("video.mp4")

	updated, _ := m.Update(progressMsg{written: 2048, total: -1})
	m = updated.(progressModel)
	if view := m.View(); view == "" {
		t.Error("View() empty for unknown total")
	}

	updated, _ = m.Update(doneMsg{})
	m = updated.(progressModel)
	if view := m.View(); view != "" {
		t.Errorf("View() after done = %q, want empty", view)
	}
}
