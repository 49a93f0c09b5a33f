package archive

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"

	"hipstertrail/internal/app/ports"
)

func readEvents(t *testing.T, path string) []ports.Event {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer dec.Close()

	var out []ports.Event
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var evt ports.Event
		if err := json.Unmarshal(sc.Bytes(), &evt); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		out = append(out, evt)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan archive: %v", err)
	}
	return out
}

func TestWriter_RotatesHourly(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, nil)
	clock := time.Date(2026, 3, 1, 10, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return clock }

	w.Publish(context.Background(), ports.Event{ID: "a", Kind: ports.EventTierFailed})
	w.Publish(context.Background(), ports.Event{ID: "b", Kind: ports.EventHardcoded})
	clock = clock.Add(2 * time.Minute)
	w.Publish(context.Background(), ports.Event{ID: "c", Kind: ports.EventTurnCompleted})
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	first := readEvents(t, w.PathForHour("2026-03-01-10"))
	if len(first) != 2 || first[0].ID != "a" || first[1].Kind != ports.EventHardcoded {
		t.Fatalf("unexpected first hour: %+v", first)
	}
	second := readEvents(t, w.PathForHour("2026-03-01-11"))
	if len(second) != 1 || second[0].ID != "c" {
		t.Fatalf("unexpected second hour: %+v", second)
	}
}
