package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vaultenv/cipherlab/pkg/history"
)

// Exporter interface for different file formats
type Exporter interface {
	Export(entries []history.Entry, writer io.Writer) error
	FileExtension() string
	ContentType() string
}

// ExporterOptions contains common options for all exporters
type ExporterOptions struct {
	ShowComments bool                   // Include a header comment where supported
	OmitInput    bool                   // Drop plaintext inputs from the output
	TemplateData map[string]interface{} // Additional template data
	Now          func() time.Time       // Clock for header comments
}

func (o ExporterOptions) now() string {
	if o.Now != nil {
		return o.Now().UTC().Format(time.RFC3339)
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// record is the flat shape shared by the structured exporters
type record struct {
	ID        string `json:"id" yaml:"id"`
	Time      string `json:"time" yaml:"time"`
	Cipher    string `json:"cipher" yaml:"cipher"`
	Direction string `json:"direction" yaml:"direction"`
	Input     string `json:"input,omitempty" yaml:"input,omitempty"`
	Output    string `json:"output" yaml:"output"`
}

func toRecords(entries []history.Entry, opts ExporterOptions) []record {
	records := make([]record, len(entries))
	for i, e := range entries {
		records[i] = record{
			ID:        e.ID.String(),
			Time:      e.Timestamp.UTC().Format(time.RFC3339),
			Cipher:    e.Cipher.String(),
			Direction: e.Direction.String(),
			Output:    e.Output,
		}
		if !opts.OmitInput {
			records[i].Input = e.Input
		}
	}
	return records
}

// JSONExporter exports as a JSON array
type JSONExporter struct {
	Options     ExporterOptions
	PrettyPrint bool
	Indent      string
}

// NewJSONExporter creates a new JSON format exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{
		PrettyPrint: true,
		Indent:      "  ",
	}
}

func (j *JSONExporter) Export(entries []history.Entry, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if j.PrettyPrint {
		encoder.SetIndent("", j.Indent)
	}
	return encoder.Encode(toRecords(entries, j.Options))
}

func (j *JSONExporter) FileExtension() string {
	return ".json"
}

func (j *JSONExporter) ContentType() string {
	return "application/json"
}

// YAMLExporter exports as YAML format
type YAMLExporter struct {
	Options ExporterOptions
}

// NewYAMLExporter creates a new YAML format exporter
func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{}
}

func (y *YAMLExporter) Export(entries []history.Entry, w io.Writer) error {
	if y.Options.ShowComments {
		fmt.Fprintln(w, "# Operation history exported by cipherlab")
		fmt.Fprintln(w, "# Generated at:", y.Options.now())
	}

	encoder := yaml.NewEncoder(w)
	defer encoder.Close()

	return encoder.Encode(toRecords(entries, y.Options))
}

func (y *YAMLExporter) FileExtension() string {
	return ".yaml"
}

func (y *YAMLExporter) ContentType() string {
	return "application/x-yaml"
}

// CSVExporter exports one row per entry with a header row
type CSVExporter struct {
	Options ExporterOptions
	Comma   rune
}

// NewCSVExporter creates a new CSV format exporter
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{Comma: ','}
}

func (c *CSVExporter) Export(entries []history.Entry, w io.Writer) error {
	cw := csv.NewWriter(w)
	if c.Comma != 0 {
		cw.Comma = c.Comma
	}

	header := []string{"id", "time", "cipher", "direction", "input", "output"}
	if c.Options.OmitInput {
		header = []string{"id", "time", "cipher", "direction", "output"}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range toRecords(entries, c.Options) {
		row := []string{r.ID, r.Time, r.Cipher, r.Direction, r.Input, r.Output}
		if c.Options.OmitInput {
			row = []string{r.ID, r.Time, r.Cipher, r.Direction, r.Output}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func (c *CSVExporter) FileExtension() string {
	return ".csv"
}

func (c *CSVExporter) ContentType() string {
	return "text/csv"
}

// defaultLogTemplate renders the classic operation log, one line per entry
const defaultLogTemplate = `{{range .Entries}}{{.Clock}} {{upper .Cipher.String}} {{.Direction}}: {{if not $.OmitInput}}{{.Input}} -> {{end}}{{.Output}}
{{end}}`

// TemplateExporter exports using a custom template
type TemplateExporter struct {
	Options      ExporterOptions
	Template     *template.Template
	TemplateName string
}

// NewTemplateExporter creates a new template-based exporter
func NewTemplateExporter(tmplContent string, name string) (*TemplateExporter, error) {
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"upper": strings.ToUpper,
	}).Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &TemplateExporter{
		Template:     tmpl,
		TemplateName: name,
	}, nil
}

// NewLogExporter renders entries as "[HH:MM:SS] CIPHER ENC: input -> output"
func NewLogExporter() *TemplateExporter {
	t, err := NewTemplateExporter(defaultLogTemplate, "log")
	if err != nil {
		panic(err)
	}
	return t
}

func (t *TemplateExporter) Export(entries []history.Entry, w io.Writer) error {
	data := map[string]interface{}{
		"Entries":   entries,
		"OmitInput": t.Options.OmitInput,
		"Timestamp": t.Options.now(),
	}

	for k, v := range t.Options.TemplateData {
		data[k] = v
	}

	return t.Template.Execute(w, data)
}

func (t *TemplateExporter) FileExtension() string {
	return ".log"
}

func (t *TemplateExporter) ContentType() string {
	return "text/plain"
}

// ExporterFactory creates exporters by format name
type ExporterFactory struct{}

// NewExporterFactory creates a new exporter factory
func NewExporterFactory() *ExporterFactory {
	return &ExporterFactory{}
}

// CreateExporter creates an exporter for the specified format
func (f *ExporterFactory) CreateExporter(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONExporter(), nil
	case "yaml", "yml":
		return NewYAMLExporter(), nil
	case "csv":
		return NewCSVExporter(), nil
	case "log", "text", "txt":
		return NewLogExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// GetSupportedFormats returns a list of supported export formats
func (f *ExporterFactory) GetSupportedFormats() []string {
	return []string{"json", "yaml", "csv", "log"}
}
