package domain

import (
	"net/url"
	"strings"
)

type SearchProvider struct {
	Name string
	// Phrase ends the spoken confirmation, e.g. "в гугл".
	Phrase string
	build  func(query string) string
}

func (p SearchProvider) URL(query string) string {
	return p.build(query)
}

func GoogleSearch() SearchProvider {
	return SearchProvider{
		Name:   "google",
		Phrase: "в гугл",
		build: func(q string) string {
			return "https://www.google.com/search?q=" + url.QueryEscape(q)
		},
	}
}

func YouTubeSearch() SearchProvider {
	return SearchProvider{
		Name:   "youtube",
		Phrase: "на youtube",
		build: func(q string) string {
			return "https://www.youtube.com/results?search_query=" + url.QueryEscape(q)
		},
	}
}

// WikipediaSearch opens the article on the wiki for the given locale.
func WikipediaSearch(locale string) SearchProvider {
	host := strings.ToLower(strings.SplitN(locale, "-", 2)[0])
	if host == "" {
		host = "ru"
	}
	return SearchProvider{
		Name:   "wikipedia",
		Phrase: "в википедии",
		build: func(q string) string {
			return "https://" + host + ".wikipedia.org/wiki/" + url.PathEscape(q)
		},
	}
}

// VoiceProfile is the process-wide voice configuration.
type VoiceProfile struct {
	AssistantName string
	Locale        string
	Voice         string
}
