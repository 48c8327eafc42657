package speech

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

// Transcriber is the speech capture capability, backed by an external
// transcriber command (e.g. a whisper wrapper) that records from the
// microphone and prints the recognized text to stdout. The command runs
// through the shell so users can configure full pipelines; the selected
// language is exported as DIETDIARY_SPEECH_LANGUAGE for it.
//
// Availability is not guaranteed: with no command configured, Start
// reports domain.ErrSpeechUnavailable and nothing else happens.
type Transcriber struct {
	command  string
	language string
	timeout  time.Duration
	log      *slog.Logger
}

// New creates a Transcriber. An empty command means the capability is
// absent on this machine.
func New(command, language string, timeout time.Duration, logger *slog.Logger) *Transcriber {
	return &Transcriber{
		command:  command,
		language: language,
		timeout:  timeout,
		log:      logger.With("adapter", "speech"),
	}
}

// Start runs one capture attempt. Exactly one of onFinal or onErr is
// called, synchronously, before Start returns. The first non-empty line
// the transcriber prints is the finalized transcript; later output is
// ignored rather than treated as further attempts.
func (t *Transcriber) Start(ctx context.Context, onFinal func(transcript string), onErr func(err error)) {
	if strings.TrimSpace(t.command) == "" {
		onErr(domain.ErrSpeechUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	t.log.DebugContext(ctx, "starting capture", slog.String("command", t.command))

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", t.command)
	cmd.Env = append(os.Environ(), "DIETDIARY_SPEECH_LANGUAGE="+t.language)

	out, err := cmd.Output()
	if err != nil {
		onErr(fmt.Errorf("speech capture: %w", err))
		return
	}

	transcript := firstLine(string(out))
	if transcript == "" {
		onErr(fmt.Errorf("speech capture: transcriber produced no text"))
		return
	}

	t.log.DebugContext(ctx, "capture finalized", slog.Int("len", len(transcript)))
	onFinal(transcript)
}

func firstLine(s string) string {
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line
		}
	}
	return ""
}
