package captcha

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestLoggerSilent(t *testing.T) {
	l := Logger()
	test.That(t, l != nil)
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		test.That(t, !l.Enabled(context.Background(), level), level)
	}
	test.Error(t, nopHandler{}.Handle(context.Background(), slog.Record{}))
	_, ok := nopHandler{}.WithAttrs([]slog.Attr{slog.String("key", "val")}).(nopHandler)
	test.That(t, ok)
	_, ok = nopHandler{}.WithGroup("group").(nopHandler)
	test.That(t, ok)
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	buf := &bytes.Buffer{}
	l := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(l)
	test.That(t, Logger() == l)
	Logger().Debug("sweep", "removed", 3)
	test.That(t, strings.Contains(buf.String(), "removed=3"), buf.String())

	SetLogger(nil)
	test.That(t, !Logger().Enabled(context.Background(), slog.LevelError))
}
