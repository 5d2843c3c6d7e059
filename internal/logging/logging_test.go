package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/nextiwant/wishlist-backend/internal/models"
	"github.com/nextiwant/wishlist-backend/internal/testutil"
)

func TestPGHandler_PersistsErrorsOnly(t *testing.T) {
	db := testutil.DB(t)
	h := NewPGHandler(db, time.Hour)
	defer h.Stop()

	logger := slog.New(h).With("request_id", "req-1")
	logger.Info("not persisted")
	logger.Error("claim failed", "user_id", "u-1", "wishlist_id", "w-1", "action", "claim", "error", "boom", "token_prefix", "abc")
	h.Flush()

	var rows []models.SystemLog
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(rows))
	}
	r := rows[0]
	if r.Message != "claim failed" || r.Level != "ERROR" || r.RequestID != "req-1" || r.Action != "claim" || r.Error != "boom" {
		t.Fatalf("unexpected row: %+v", r)
	}
	if r.UserID == nil || *r.UserID != "u-1" || r.WishlistID == nil || *r.WishlistID != "w-1" {
		t.Fatalf("ids not mapped: %+v", r)
	}
	if !strings.Contains(string(r.Extra), "token_prefix") {
		t.Fatalf("unknown attrs should land in extra, got %s", r.Extra)
	}
}

func TestPGHandler_StopFlushes(t *testing.T) {
	db := testutil.DB(t)
	h := NewPGHandler(db, time.Hour)
	slog.New(h).Error("late record")
	h.Stop()
	h.Stop()

	var count int64
	db.Model(&models.SystemLog{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected buffered record to be flushed on stop, got %d", count)
	}
}

func TestPGHandler_StopWaitsForFullBufferWrites(t *testing.T) {
	db := testutil.DB(t)
	h := NewPGHandler(db, time.Hour)
	logger := slog.New(h)
	total := 3*pgBatchSize + 5
	for i := 0; i < total; i++ {
		logger.Error("burst", "n", i)
	}
	h.Stop()

	var count int64
	db.Model(&models.SystemLog{}).Count(&count)
	if count != int64(total) {
		t.Fatalf("expected %d records after stop, got %d", total, count)
	}
}

func TestPurgeOlderThan(t *testing.T) {
	db := testutil.DB(t)
	h := NewPGHandler(db, time.Hour)
	slog.New(h).Error("old")
	h.Stop()

	deleted, err := PurgeOlderThan(context.Background(), db, time.Now().Add(-time.Hour))
	if err != nil || deleted != 0 {
		t.Fatalf("fresh record purged: deleted=%d err=%v", deleted, err)
	}
	deleted, err = PurgeOlderThan(context.Background(), db, time.Now().Add(time.Hour))
	if err != nil || deleted != 1 {
		t.Fatalf("expected 1 purged record, got %d (%v)", deleted, err)
	}
}

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)).With("component", "test")

	logger.Debug("quiet")
	logger.Warn("loud")

	if !strings.Contains(debugBuf.String(), "quiet") || !strings.Contains(debugBuf.String(), "loud") {
		t.Fatalf("debug handler missed records: %s", debugBuf.String())
	}
	if strings.Contains(warnBuf.String(), "quiet") || !strings.Contains(warnBuf.String(), "component=test") {
		t.Fatalf("warn handler output wrong: %s", warnBuf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{"DEBUG": slog.LevelDebug, "warning": slog.LevelWarn, "error": slog.LevelError, "bogus": slog.LevelInfo}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
