package notification

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

// ErrNoPlayer is returned when no audio player is available on this system.
var ErrNoPlayer = errors.New("no audio player found")

// SoundPlayer plays cue files from a directory with the platform's audio
// player. A missing cue file falls back to the system beep.
type SoundPlayer struct {
	dir      string
	enabled  bool
	goos     string
	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
	beep     func() error
}

// Ensure SoundPlayer implements ports.SoundPlayer.
var _ ports.SoundPlayer = (*SoundPlayer)(nil)

// NewSoundPlayer creates a player for the cue files in dir.
func NewSoundPlayer(dir string, enabled bool) *SoundPlayer {
	return &SoundPlayer{
		dir:      dir,
		enabled:  enabled,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
		beep: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
	}
}

// Play plays one cue and waits for it to finish or for ctx to end.
func (p *SoundPlayer) Play(ctx context.Context, cue domain.SoundCue) error {
	if !p.enabled {
		return nil
	}

	path := filepath.Join(p.dir, cue.FileName())
	if _, err := os.Stat(path); err != nil {
		if err := p.beep(); err != nil {
			return fmt.Errorf("failed to beep for %s: %w", cue, err)
		}
		return nil
	}

	name, args, err := p.command(path)
	if err != nil {
		return err
	}
	if err := p.run(ctx, name, args...); err != nil {
		return fmt.Errorf("failed to play %s: %w", cue, err)
	}
	return nil
}

// command returns the player invocation for the current platform.
func (p *SoundPlayer) command(path string) (string, []string, error) {
	switch p.goos {
	case "darwin":
		return "afplay", []string{path}, nil
	case "windows":
		// Single-quoted PowerShell strings escape a quote by doubling it.
		quoted := strings.ReplaceAll(path, "'", "''")
		script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", quoted)
		return "powershell", []string{"-NoProfile", "-NonInteractive", "-Command", script}, nil
	default:
		for _, name := range []string{"paplay", "aplay"} {
			if _, err := p.lookPath(name); err == nil {
				return name, []string{path}, nil
			}
		}
		return "", nil, ErrNoPlayer
	}
}
