package models

import (
	"testing"
	"time"
)

func TestClampMediaIndex(t *testing.T) {
	items := func(n int) []MediaItem { return make([]MediaItem, n) }

	cases := []struct {
		name  string
		media []MediaItem
		index int
		want  int
	}{
		{"within range", items(3), 1, 1},
		{"past the end", items(2), 2, 1},
		{"empty", items(0), 4, 0},
		{"negative", items(2), -1, 0},
	}
	for _, tc := range cases {
		h := HeroContent{Media: tc.media, CurrentMediaIndex: tc.index}
		h.ClampMediaIndex()
		if h.CurrentMediaIndex != tc.want {
			t.Fatalf("%s: index = %d, want %d", tc.name, h.CurrentMediaIndex, tc.want)
		}
	}
}

func TestRemoveMediaKeepsOrder(t *testing.T) {
	in := []MediaItem{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	out, removed, ok := RemoveMedia(in, "b")
	if !ok || removed.ID != "b" {
		t.Fatalf("expected b removed, got ok=%v removed=%v", ok, removed)
	}
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "c" {
		t.Fatalf("unexpected remaining media: %+v", out)
	}
	if len(in) != 3 {
		t.Fatalf("input slice was modified: %+v", in)
	}

	if _, _, ok := RemoveMedia(out, "zzz"); ok {
		t.Fatal("unknown id reported as removed")
	}
}

func TestNoticeSetStatusStampsDateOnPublish(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	n := Notice{Status: NoticeDraft}

	n.SetStatus(NoticePublished, now)
	if n.Date == nil || !n.Date.Equal(now) {
		t.Fatalf("date not stamped on publish: %v", n.Date)
	}

	later := now.Add(time.Hour)
	n.SetStatus(NoticePublished, later)
	if !n.Date.Equal(now) {
		t.Fatalf("date changed on re-publish: %v", n.Date)
	}

	n.SetStatus(NoticeArchived, later)
	if !n.Date.Equal(now) {
		t.Fatalf("date changed on archive: %v", n.Date)
	}
}
