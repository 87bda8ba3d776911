package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/doeshing/replize-go/internal/domain"
	"github.com/doeshing/replize-go/internal/version"
)

func displayVersionInformation(out io.Writer) {
	fmt.Fprintf(out, "replize version %s\n", version.Version)

	if version.Commit != "" {
		fmt.Fprintf(out, "Commit: %s\n", version.Commit)
	}

	if version.BuildDate != "" {
		fmt.Fprintf(out, "Built: %s\n", version.BuildDate)
	}

	fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
}

// versionTemplate renders the build information as a cobra version template.
// Braces are escaped because cobra feeds the result through text/template.
func versionTemplate() string {
	var b strings.Builder
	displayVersionInformation(&b)
	return strings.NewReplacer("{{", `{{"{{"}}`).Replace(b.String())
}

func displayHealthReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}
