package ui

import (
    "fmt"
    "io"
    "os"
    "strings"
    "time"
    "unicode/utf8"

    "github.com/briandowns/spinner"
    "github.com/fatih/color"
    "github.com/spf13/viper"
)

// Level grades a measured value for display
type Level int

const (
    LevelGood Level = iota
    LevelFair
    LevelPoor
)

// Color scheme for consistent output
var (
    // Success is used for positive confirmations
    successColor = color.New(color.FgGreen, color.Bold)

    // Error is used for error messages
    errorColor = color.New(color.FgRed, color.Bold)

    // Warning is used for cautionary messages
    warningColor = color.New(color.FgYellow)

    // Info is used for informational messages
    infoColor = color.New(color.FgCyan)

    // Muted is used for less important information
    mutedColor = color.New(color.FgHiBlack)

    // Header is used for section headers
    headerColor = color.New(color.FgHiWhite, color.Bold)

    levelColors = map[Level]*color.Color{
        LevelGood: color.New(color.FgGreen),
        LevelFair: color.New(color.FgYellow),
        LevelPoor: color.New(color.FgRed),
    }

    // Output writers (can be overridden for testing)
    stdout io.Writer = os.Stdout
    stderr io.Writer = os.Stderr

    showEmoji    = true
    showProgress = true
)

// Success prints a success message with a checkmark
func Success(format string, args ...interface{}) {
    message := fmt.Sprintf(format, args...)
    successColor.Fprintf(stdout, "✓ %s\n", message)
}

// Error prints an error message with an X
func Error(format string, args ...interface{}) {
    message := fmt.Sprintf(format, args...)
    errorColor.Fprintf(stderr, "✗ %s\n", message)
}

// Warning prints a warning message with an exclamation
func Warning(format string, args ...interface{}) {
    message := fmt.Sprintf(format, args...)
    warningColor.Fprintf(stderr, "! %s\n", message)
}

// Info prints an informational message
func Info(format string, args ...interface{}) {
    message := fmt.Sprintf(format, args...)
    infoColor.Fprintf(stdout, "ℹ %s\n", message)
}

// Debug prints debug information (only in verbose mode)
func Debug(format string, args ...interface{}) {
    if !isVerbose() {
        return
    }
    message := fmt.Sprintf(format, args...)
    mutedColor.Fprintf(stderr, "› %s\n", message)
}

// Header prints a section header
func Header(text string) {
    fmt.Fprintln(stdout)
    headerColor.Fprintln(stdout, text)
    headerColor.Fprintln(stdout, strings.Repeat("─", width(text)))
}

// Field prints an aligned "label: value" line
func Field(label, value string) {
    mutedColor.Fprintf(stdout, "  %-12s ", label+":")
    fmt.Fprintln(stdout, value)
}

// Gauge prints a labelled bar for a percentage in [0, 100]
func Gauge(label string, percent float64, level Level, detail string) {
    const slots = 20
    filled := int(percent/100*slots + 0.5)
    filled = min(max(filled, 0), slots)

    mutedColor.Fprintf(stdout, "  %-12s ", label+":")
    levelColors[level].Fprint(stdout, strings.Repeat("█", filled))
    mutedColor.Fprint(stdout, strings.Repeat("░", slots-filled))
    fmt.Fprintf(stdout, " %s\n", detail)
}

// StartProgress begins showing a progress indicator while work runs.
// Nothing is printed on success.
func StartProgress(message string, work func() error) error {
    if !showProgress {
        return work()
    }

    // Choose spinner style based on terminal capabilities
    spinnerStyle := spinner.CharSets[14] // Dots style
    if !supportsUnicode() {
        spinnerStyle = spinner.CharSets[9] // ASCII style
    }

    s := spinner.New(spinnerStyle, 100*time.Millisecond, spinner.WithWriter(stderr))
    s.Suffix = " " + message

    if !color.NoColor {
        s.Color("cyan", "bold")
    }

    s.Start()
    err := work()
    s.Stop()

    return err
}

// Grid prints cells separated by single spaces, one row per line
func Grid(rows [][]string) {
    for _, row := range rows {
        headerColor.Fprintln(stdout, "  "+strings.Join(row, " "))
    }
}

// Table renders data in a nice table format
func Table(headers []string, rows [][]string) {
    // Calculate column widths
    widths := make([]int, len(headers))
    for i, header := range headers {
        widths[i] = width(header)
    }

    for _, row := range rows {
        for i, cell := range row {
            if i < len(widths) && width(cell) > widths[i] {
                widths[i] = width(cell)
            }
        }
    }

    // Print headers
    headerColor.Fprint(stdout, "┌")
    for i, w := range widths {
        headerColor.Fprint(stdout, strings.Repeat("─", w+2))
        if i < len(widths)-1 {
            headerColor.Fprint(stdout, "┬")
        }
    }
    headerColor.Fprintln(stdout, "┐")

    headerColor.Fprint(stdout, "│")
    for i, header := range headers {
        headerColor.Fprintf(stdout, " %s ", pad(header, widths[i]))
        headerColor.Fprint(stdout, "│")
    }
    headerColor.Fprintln(stdout)

    // Print separator
    headerColor.Fprint(stdout, "├")
    for i, w := range widths {
        headerColor.Fprint(stdout, strings.Repeat("─", w+2))
        if i < len(widths)-1 {
            headerColor.Fprint(stdout, "┼")
        }
    }
    headerColor.Fprintln(stdout, "┤")

    // Print rows
    for _, row := range rows {
        fmt.Fprint(stdout, "│")
        for i, cell := range row {
            if i < len(widths) {
                fmt.Fprintf(stdout, " %s ", pad(cell, widths[i]))
                fmt.Fprint(stdout, "│")
            }
        }
        fmt.Fprintln(stdout)
    }

    // Print footer
    fmt.Fprint(stdout, "└")
    for i, w := range widths {
        fmt.Fprint(stdout, strings.Repeat("─", w+2))
        if i < len(widths)-1 {
            fmt.Fprint(stdout, "┴")
        }
    }
    fmt.Fprintln(stdout, "┘")
}

// SetOutput configures the output writers (useful for testing)
func SetOutput(out, err io.Writer) {
    stdout = out
    stderr = err
}

// ResetOutput restores the default output writers
func ResetOutput() {
    stdout = os.Stdout
    stderr = os.Stderr
}

// SetEmoji toggles emoji in help output
func SetEmoji(enabled bool) {
    showEmoji = enabled
}

// SetProgress toggles spinners
func SetProgress(enabled bool) {
    showProgress = enabled
}

// Helper functions
func isVerbose() bool {
    return viper.GetBool("verbose")
}

func supportsUnicode() bool {
    lang := os.Getenv("LANG")
    return strings.Contains(lang, "UTF-8") || strings.Contains(lang, "utf8")
}

// width counts runes so accented plaintext lines up
func width(s string) int {
    return utf8.RuneCountInString(s)
}

func pad(s string, w int) string {
    if n := width(s); n < w {
        return s + strings.Repeat(" ", w-n)
    }
    return s
}
