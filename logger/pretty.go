package logger

import (
	"encoding/json"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

//nolint:gochecknoglobals // static palette shared by every encoder instance
var levelColors = map[zapcore.Level]*color.Color{
	zapcore.DebugLevel: color.New(color.FgCyan),
	zapcore.InfoLevel:  color.New(color.FgGreen),
	zapcore.WarnLevel:  color.New(color.FgYellow),
	zapcore.ErrorLevel: color.New(color.FgRed, color.Bold),
}

// prettyEncoder prints the console line of an entry with a colored level and
// appends its fields as indented JSON.
type prettyEncoder struct {
	zapcore.Encoder
	jsonEncoder zapcore.Encoder
	pool        buffer.Pool
}

func newPrettyEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return &prettyEncoder{
		Encoder:     zapcore.NewConsoleEncoder(cfg),
		jsonEncoder: zapcore.NewJSONEncoder(cfg),
		pool:        buffer.NewPool(),
	}
}

func (e *prettyEncoder) Clone() zapcore.Encoder {
	return &prettyEncoder{
		Encoder:     e.Encoder.Clone(),
		jsonEncoder: e.jsonEncoder.Clone(),
		pool:        e.pool,
	}
}

func (e *prettyEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	consoleBuf, err := e.Encoder.EncodeEntry(entry, nil)
	if err != nil {
		return nil, err
	}
	line := strings.TrimRight(consoleBuf.String(), "\n")
	consoleBuf.Free()

	if c, ok := levelColors[entry.Level]; ok {
		lvl := entry.Level.CapitalString()
		line = strings.Replace(line, lvl, c.Sprint(lvl), 1)
	}

	fieldBuf, err := e.jsonEncoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}
	defer fieldBuf.Free()

	var fieldsMap map[string]any
	if json.Unmarshal(fieldBuf.Bytes(), &fieldsMap) == nil {
		for _, k := range []string{messageKey, levelKey, timeKey, nameKey} {
			delete(fieldsMap, k)
		}
		if len(fieldsMap) > 0 {
			if pretty, mErr := json.MarshalIndent(fieldsMap, "", "  "); mErr == nil {
				line += "\n" + string(pretty)
			}
		}
	}

	buf := e.pool.Get()
	buf.AppendString(line)
	buf.AppendString("\n")
	return buf, nil
}
