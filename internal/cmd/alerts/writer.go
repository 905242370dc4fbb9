package alerts

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/auditgrid/shadowmap/internal/cmd/output"
)

// FormatWriter writes alerts in different output formats.
type FormatWriter struct {
	writer   io.Writer
	format   output.Format
	useColor bool
}

// NewFormatWriter creates a new FormatWriter for the specified format.
// Color is enabled automatically when the writer is a terminal.
func NewFormatWriter(w io.Writer, format output.Format) *FormatWriter {
	return &FormatWriter{
		writer:   w,
		format:   format,
		useColor: isTerminal(w),
	}
}

// DisableColor turns off ANSI colors regardless of terminal detection.
func (fw *FormatWriter) DisableColor() *FormatWriter {
	fw.useColor = false
	return fw
}

// WriteAlert writes an alert in the configured format.
func (fw *FormatWriter) WriteAlert(alert *Alert) error {
	switch fw.format {
	case output.FormatJSON:
		return fw.writeJSON(alert)
	case output.FormatYAML:
		return fw.writeYAML(alert)
	case output.FormatTable, output.FormatWide:
		return fw.writeTable(alert)
	default:
		return fw.writePlain(alert)
	}
}

// alertData represents alert data for structured output.
type alertData struct {
	Level     string   `json:"level" yaml:"level"`
	Message   string   `json:"message" yaml:"message"`
	Details   []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
	Timestamp string   `json:"timestamp" yaml:"timestamp"`
}

func (fw *FormatWriter) toAlertData(alert *Alert) alertData {
	data := alertData{
		Level:     alert.Level.String(),
		Message:   alert.Message,
		Details:   alert.Details,
		Timestamp: alert.Timestamp.Format(time.RFC3339),
	}

	if alert.Err != nil {
		data.Error = alert.Err.Error()
	}

	return data
}

func (fw *FormatWriter) writeJSON(alert *Alert) error {
	data := fw.toAlertData(alert)
	encoder := json.NewEncoder(fw.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (fw *FormatWriter) writeYAML(alert *Alert) error {
	data := fw.toAlertData(alert)
	out, err := yaml.MarshalWithOptions(data, yaml.Indent(2))
	if err != nil {
		return err
	}
	_, err = fw.writer.Write(out)
	return err
}

func (fw *FormatWriter) writeTable(alert *Alert) error {
	// Simple, clean output like industry standard CLIs
	icon := alert.Level.Icon()
	message := fmt.Sprintf("%s %s", icon, alert.Message)

	if alert.Err != nil {
		message += fmt.Sprintf(": %v", alert.Err)
	}

	fmt.Fprintln(fw.writer, message)

	// Add details if present with indentation
	for _, detail := range alert.Details {
		fmt.Fprintf(fw.writer, "   %s\n", detail)
	}

	return nil
}

func (fw *FormatWriter) writePlain(alert *Alert) error {
	message := alert.String()

	if fw.useColor {
		message = fmt.Sprintf("%s%s%s", alert.Level.Color(), message, ResetColor())
	}

	fmt.Fprintln(fw.writer, message)

	for _, detail := range alert.Details {
		fmt.Fprintf(fw.writer, "   %s\n", detail)
	}

	return nil
}

// isTerminal checks if the writer is a terminal (for color support).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
