package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	shellquote "github.com/kballard/go-shellquote"
)

// openReport hands the generated report to the system viewer. The BROWSER
// environment variable overrides the platform default and may carry extra
// arguments.
func openReport(path string) error {
	if override := os.Getenv("BROWSER"); override != "" {
		parts, err := shellquote.Split(override)
		if err != nil || len(parts) == 0 {
			return fmt.Errorf("invalid BROWSER value %q", override)
		}
		args := append(parts[1:], path)
		return exec.Command(parts[0], args...).Start()
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
