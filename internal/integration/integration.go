// Package integration provides embedded shell integration snippets.
package integration

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"
)

// ZshFzf contains the zsh shell integration script with fzf support.
//
//go:embed zsh-fzf.sh
var ZshFzf string

// Script holds the values substituted into the integration script.
type Script struct {
	// Zsh is the zsh interpreter the script was generated for.
	Zsh string
	// Duim is the duim binary the duim-cd function runs.
	Duim string
}

// Resolve locates zsh and the running duim binary. If the executable path
// cannot be determined, duim is looked up in PATH when the function runs.
func Resolve() (Script, error) {
	zsh, err := exec.LookPath("zsh")
	if err != nil {
		return Script{}, fmt.Errorf("locating zsh: %w", err)
	}

	duim := "duim"
	if exe, err := os.Executable(); err == nil {
		duim = exe
	}

	return Script{Zsh: filepath.ToSlash(zsh), Duim: filepath.ToSlash(duim)}, nil
}

// Render renders the zsh integration script for s.
func (s Script) Render() (string, error) {
	tmpl, err := template.New("zsh-fzf").Parse(ZshFzf)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s); err != nil {
		return "", err
	}

	return buf.String(), nil
}
