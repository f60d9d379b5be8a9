package logger

import (
	"log/slog"
	"time"

	"github.com/contentstudio/studio/pkg/sanitizer"
)

// Error records err under the key "error". A nil err yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records an account identifier under the key "user_id".
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// Email records an address under the key "email" with the local part masked.
func Email(email string) slog.Attr {
	if email == "" {
		return slog.Attr{}
	}
	return slog.String("email", sanitizer.MaskEmail(email))
}

// Purpose records a magic-link purpose.
func Purpose(purpose string) slog.Attr {
	return slog.String("purpose", purpose)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
