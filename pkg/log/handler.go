package log

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

const (
	ErrAttrKey = "error"
)

// withError attaches err to a zerolog event: the message under "error", the
// stack recorded by cockroachdb/errors under StacktraceKey and any structured
// fields the error type knows how to marshal.
func withError(ev *zerolog.Event, err error) *zerolog.Event {
	ev = ev.AnErr(ErrAttrKey, err).Str(ErrorTypeKey, fmt.Sprintf("%T", errors.UnwrapAll(err)))
	if stacktrace := extractStacktrace(err); stacktrace != "" {
		ev = ev.Str(StacktraceKey, stacktrace)
	}
	var obj zerolog.LogObjectMarshaler
	if errors.As(err, &obj) {
		ev = ev.EmbedObject(obj)
	}
	return ev
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
