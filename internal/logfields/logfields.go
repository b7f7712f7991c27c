package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyDocument   = "document"
	KeyLink       = "link"
	KeyCount      = "count"
	KeyStage      = "stage"
	KeyFormat     = "format"
	KeyQuery      = "query"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Document(id string) slog.Attr { return slog.String(KeyDocument, id) }
func Link(l string) slog.Attr { return slog.String(KeyLink, l) }
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
func Stage(name string) slog.Attr { return slog.String(KeyStage, name) }
func Format(f string) slog.Attr { return slog.String(KeyFormat, f) }
func Query(q string) slog.Attr { return slog.String(KeyQuery, q) }
func DurationMS(ms int64) slog.Attr { return slog.Int64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
