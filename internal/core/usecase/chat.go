package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/kirillkom/realty-assistant/internal/core/domain"
	"github.com/kirillkom/realty-assistant/internal/core/parser"
	"github.com/kirillkom/realty-assistant/internal/core/ports"
)

// Greeting and farewell lines of the assistant.
const (
	MsgGreeting = "Вітаємо в тестовому боті для операцій з нерухомістю"
	MsgFarewell = "До побачення!"
)

// QueryObserver receives the outcome of every handled query. The
// metrics layer implements it.
type QueryObserver interface {
	ObserveQuery(role, outcome string, duration time.Duration)
}

// Outcome is one handled user input: either a rendered reply or a quit
// signal.
type Outcome struct {
	Reply string
	Quit  bool
}

// ChatUseCase runs the whole pipeline for one user input: normalize,
// quit check, action location, field classification, dispatch, render.
// It holds no per-query state and serves concurrent sessions.
type ChatUseCase struct {
	normalizer ports.Normalizer
	quit       *parser.QuitDetector
	locator    *parser.Locator
	classifier *parser.Classifier
	dispatcher *DispatchUseCase
	renderer   ports.ResponseRenderer
	observer   QueryObserver
}

func NewChatUseCase(
	normalizer ports.Normalizer,
	quit *parser.QuitDetector,
	locator *parser.Locator,
	classifier *parser.Classifier,
	dispatcher *DispatchUseCase,
	renderer ports.ResponseRenderer,
	observer QueryObserver,
) *ChatUseCase {
	return &ChatUseCase{
		normalizer: normalizer,
		quit:       quit,
		locator:    locator,
		classifier: classifier,
		dispatcher: dispatcher,
		renderer:   renderer,
		observer:   observer,
	}
}

// Handle processes one raw user input for the given role.
func (uc *ChatUseCase) Handle(ctx context.Context, role domain.Role, text string) (Outcome, error) {
	started := time.Now()
	outcome, err := uc.handle(ctx, role, text)
	uc.observe(role, err, time.Since(started))
	return outcome, err
}

func (uc *ChatUseCase) handle(ctx context.Context, role domain.Role, text string) (Outcome, error) {
	words, err := uc.normalizer.Normalize(ctx, text)
	if err != nil {
		return Outcome{}, fmt.Errorf("normalize query: %w", err)
	}

	if uc.quit.IsQuit(words) {
		return Outcome{Reply: MsgFarewell, Quit: true}, nil
	}

	fieldWords, phrase, err := uc.locator.Locate(words)
	if err != nil {
		return Outcome{}, err
	}

	buckets, err := uc.classifier.Classify(fieldWords)
	if err != nil {
		return Outcome{}, err
	}

	result, err := uc.dispatcher.Dispatch(ctx, role, phrase, buckets)
	if err != nil {
		return Outcome{}, err
	}

	reply, err := uc.renderer.Format(*result)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Reply: reply}, nil
}

func (uc *ChatUseCase) observe(role domain.Role, err error, duration time.Duration) {
	if uc.observer == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = outcomeLabel(err)
	}
	uc.observer.ObserveQuery(string(role), outcome, duration)
}

func outcomeLabel(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrPatternNotFound):
		return "pattern_not_found"
	case domain.IsKind(err, domain.ErrMalformedQuery):
		return "malformed"
	case domain.IsKind(err, domain.ErrUnknownTarget):
		return "unknown_target"
	case domain.IsKind(err, domain.ErrUnknownVerb):
		return "unknown_verb"
	case domain.IsKind(err, domain.ErrPermissionDenied):
		return "denied"
	case domain.IsKind(err, domain.ErrMissingRequiredField):
		return "missing_field"
	default:
		return "error"
	}
}
