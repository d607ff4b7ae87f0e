package narrate

import (
	"context"
	"log/slog"
	"os/exec"
	"sync"

	"github.com/dawsen1208/shelfd/internal/errors"

	"github.com/google/shlex"
)

// Speaker is a cancellable speech channel. Implementations must
// guarantee a single utterance at a time: Speak cancels any in-flight
// utterance before starting the new one.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Stop()
}

// CommandSpeaker speaks by running a configured TTS command (espeak,
// say, ...) with the text appended as the final argument.
type CommandSpeaker struct {
	command string

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewCommandSpeaker(command string) *CommandSpeaker {
	return &CommandSpeaker{command: command}
}

func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	argv, err := shlex.Split(s.command)
	if err != nil {
		return errors.Wrap(err, "parse speech command")
	}
	if len(argv) == 0 {
		return errors.Malformed("speech command is empty")
	}
	argv = append(argv, text)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	utterCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	cmd := exec.CommandContext(utterCtx, argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		cancel()
		return errors.Wrap(err, "start speech command")
	}

	go func() {
		if err := cmd.Wait(); err != nil && utterCtx.Err() == nil {
			slog.Debug("Speech command exited with error", "error", err)
		}
		cancel()
	}()

	return nil
}

// Stop kills any in-flight utterance.
func (s *CommandSpeaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
