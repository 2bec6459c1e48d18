// Package dashboard renders the repo's Grafana dashboard templates,
// injecting datasource UIDs from the environment.
package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/template"
)

const dashboardTemplate = "grafana-dashboard.json.tmpl"

// rootDir resolves the repository root relative to this source file, so
// the renderer works from any working directory.
func rootDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filepath.Dir(file)))
}

// Render writes the rendered dashboard JSON to outDir. It fails when a
// referenced environment variable is unset, so broken dashboards never
// reach provisioning.
func Render(outDir string) error {
	funcMap := template.FuncMap{
		"env": func(key string) (string, error) {
			v := os.Getenv(key)
			if v == "" {
				return "", fmt.Errorf("environment variable %s not set", key)
			}
			return v, nil
		},
	}

	t, err := template.New(dashboardTemplate).Funcs(funcMap).ParseFiles(filepath.Join(rootDir(), dashboardTemplate))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	outPath := filepath.Join(outDir, strings.TrimSuffix(dashboardTemplate, ".tmpl"))
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := t.Execute(f, nil); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
