package application

import (
	"context"
	"fmt"
	"strings"

	"voice-assistant/internal/domain"
)

const (
	phraseGreeting    = "Приветствую"
	phraseFarewell    = "Хорошего вам дня"
	phraseAcknowledge = "Рада помочь"
	phraseFoundPrefix = "Вот, что было найдено по запросу"
)

// Actions holds the side effects the command table can trigger.
type Actions struct {
	speaker Speaker
	browser Browser
	profile domain.VoiceProfile
}

func NewActions(speaker Speaker, browser Browser, profile domain.VoiceProfile) *Actions {
	return &Actions{
		speaker: speaker,
		browser: browser,
		profile: profile,
	}
}

func (a *Actions) Greet(ctx context.Context, _ []string) (domain.Outcome, error) {
	return domain.OutcomeContinue, a.speaker.Speak(ctx, phraseGreeting)
}

func (a *Actions) Acknowledge(ctx context.Context, _ []string) (domain.Outcome, error) {
	return domain.OutcomeContinue, a.speaker.Speak(ctx, phraseAcknowledge)
}

// Farewell says goodbye and asks the loop to stop. The loop releases the
// speaker.
func (a *Actions) Farewell(ctx context.Context, _ []string) (domain.Outcome, error) {
	return domain.OutcomeTerminate, a.speaker.Speak(ctx, phraseFarewell)
}

func (a *Actions) Search(provider domain.SearchProvider) domain.Handler {
	return func(ctx context.Context, args []string) (domain.Outcome, error) {
		if len(args) == 0 {
			return domain.OutcomeContinue, nil
		}

		query := strings.Join(args, " ")
		if err := a.browser.Open(provider.URL(query)); err != nil {
			return domain.OutcomeContinue, fmt.Errorf("opening %s: %w", provider.Name, err)
		}

		phrase := fmt.Sprintf("%s %s %s", phraseFoundPrefix, query, provider.Phrase)
		return domain.OutcomeContinue, a.speaker.Speak(ctx, phrase)
	}
}

// DefaultCommandTable returns the built-in commands in matching order.
func DefaultCommandTable(a *Actions, mode domain.MatchMode) *domain.CommandTable {
	return domain.NewCommandTable(mode,
		domain.Command{
			Name:     "greeting",
			Keywords: []string{"здравствуй", "привет", "доброе", "добрый", "приветствую"},
			Handler:  a.Greet,
		},
		domain.Command{
			Name:     "farewell",
			Keywords: []string{"пока", "выйти", "выключись", "остановись", "прекратить"},
			Handler:  a.Farewell,
		},
		domain.Command{
			Name:     "google",
			Keywords: []string{"найди", "найти", "поиск", "загугли", "открой"},
			Handler:  a.Search(domain.GoogleSearch()),
		},
		domain.Command{
			Name:     "youtube",
			Keywords: []string{"смотреть", "видео"},
			Handler:  a.Search(domain.YouTubeSearch()),
		},
		domain.Command{
			Name:     "wikipedia",
			Keywords: []string{"определение", "википедия", "словарь"},
			Handler:  a.Search(domain.WikipediaSearch(a.profile.Locale)),
		},
		domain.Command{
			Name:     "acknowledgment",
			Keywords: []string{"спасибо", "благодарю", "молодец"},
			Handler:  a.Acknowledge,
		},
	)
}
