package logging

import "github.com/rs/zerolog"

// ZerologSink adapts a zerolog.Logger to the Sink contract. zerolog loggers
// are safe for concurrent use, which is why the pipeline can pass the same
// sink into every worker in the crawler and extractor pools.
type ZerologSink struct {
	log zerolog.Logger
}

// NewZerologSink wraps an existing zerolog.Logger.
func NewZerologSink(log zerolog.Logger) *ZerologSink {
	return &ZerologSink{log: log}
}

func (s *ZerologSink) Debug(msg string, kv ...any) {
	event(s.log.Debug(), kv).Msg(msg)
}

func (s *ZerologSink) Info(msg string, kv ...any) {
	event(s.log.Info(), kv).Msg(msg)
}

func (s *ZerologSink) Warn(msg string, kv ...any) {
	event(s.log.Warn(), kv).Msg(msg)
}

func event(e *zerolog.Event, kv []any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	return e
}
