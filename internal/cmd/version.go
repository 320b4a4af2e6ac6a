package cmd

import (
    "fmt"
    "runtime"

    "github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
    cmd := &cobra.Command{
        Use:         "version",
        Short:       "Display version information",
        Long:        `Display detailed version information about cipherlab`,
        Args:        cobra.NoArgs,
        Annotations: map[string]string{skipConfig: "true"},
        Run: func(cmd *cobra.Command, args []string) {
            out := cmd.OutOrStdout()
            fmt.Fprintf(out, "cipherlab %s\n", buildInfo.Version)
            fmt.Fprintf(out, "  Commit:     %s\n", buildInfo.Commit)
            fmt.Fprintf(out, "  Built:      %s\n", buildInfo.BuildTime)
            fmt.Fprintf(out, "  Built by:   %s\n", buildInfo.BuiltBy)
            fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
            fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
        },
    }
    return cmd
}
