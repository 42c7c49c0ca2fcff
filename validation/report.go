package validation

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/fatih/color"
)

// Print renders a validation report the way an operator reads it: one line
// per required file, the config and import diagnostics, then the summary
// block with deployment instructions when the checkout is ready.
func Print(out io.Writer, r Report) {
	fmt.Fprintln(out, "Validating Vercel deployment files...")

	missing := make(map[string]bool, len(r.MissingFiles))
	for _, f := range r.MissingFiles {
		missing[f] = true
	}
	for _, f := range RequiredFiles {
		if missing[f.Path] {
			fmt.Fprintf(out, "%s %s - %s (MISSING)\n", failMark(), f.Path, f.Description)
		} else {
			fmt.Fprintf(out, "%s %s - %s\n", passMark(), f.Path, f.Description)
		}
	}

	printConfigFindings(out, r)
	printImportFindings(out, r)

	banner(out, "VALIDATION SUMMARY")
	if !r.Ready {
		fmt.Fprintf(out, "%s Missing files: %s\n", failMark(), strings.Join(r.MissingFiles, ", "))
		return
	}
	fmt.Fprintf(out, "%s All required files present\n", passMark())
	fmt.Fprintln(out, "\nReady for Vercel deployment!")
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "1. Install the Vercel CLI: npm install -g vercel")
	fmt.Fprintln(out, "2. Login to Vercel: vercel login")
	fmt.Fprintln(out, "3. Deploy: vercel --prod")
	fmt.Fprintln(out, "4. Set environment variables in the Vercel dashboard:")
	fmt.Fprintln(out, "   - AIPIPE_API_KEY (recommended)")
	fmt.Fprintln(out, "   - OPENAI_API_KEY (alternative)")
	fmt.Fprintln(out, "5. Test the deployment with test-vercel.html")
}

func printConfigFindings(out io.Writer, r Report) {
	switch {
	case r.ConfigValid && r.ConfigSections:
		fmt.Fprintf(out, "%s %s - Valid JSON syntax\n", passMark(), configFile)
		fmt.Fprintf(out, "%s %s - Has required builds and routes\n", passMark(), configFile)
	case r.ConfigValid:
		fmt.Fprintf(out, "%s %s - Valid JSON syntax\n", passMark(), configFile)
		fmt.Fprintf(out, "%s %s - Missing builds or routes configuration\n", failMark(), configFile)
	case errors.Is(r.ConfigError, fs.ErrNotExist):
		fmt.Fprintf(out, "%s %s - File not found\n", failMark(), configFile)
	default:
		fmt.Fprintf(out, "%s %s - %s\n", failMark(), configFile, r.ConfigError)
	}
}

func printImportFindings(out io.Writer, r Report) {
	if r.HandlerError != nil {
		if errors.Is(r.HandlerError, fs.ErrNotExist) {
			fmt.Fprintf(out, "%s %s - File not found\n", failMark(), handlerFile)
		} else {
			fmt.Fprintf(out, "%s %s - %s\n", failMark(), handlerFile, r.HandlerError)
		}
		return
	}
	missing := make(map[string]bool, len(r.MissingImports))
	for _, name := range r.MissingImports {
		missing[name] = true
	}
	for _, name := range RequiredImports {
		if missing[name] {
			fmt.Fprintf(out, "%s %s - Missing %s import\n", failMark(), handlerFile, name)
		} else {
			fmt.Fprintf(out, "%s %s - Has %s import\n", passMark(), handlerFile, name)
		}
	}
}

func passMark() string { return color.GreenString("✓") }
func failMark() string { return color.RedString("✗") }

func banner(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, strings.Repeat("=", 50))
}
