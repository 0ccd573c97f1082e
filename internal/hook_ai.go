package prayerlog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"prayerlog/internal/journal"
	"prayerlog/internal/stats"
)

const encouragementPrompt = `You are a gentle prayer companion. The user just finished a guided prayer session.

Based on their prayer stats, write one or two warm sentences encouraging them to keep praying tomorrow. Mention their streak if it is more than one day. No markdown, no headings, no bullet points, no emojis. Reply in Portuguese.`

const encouragementTimeout = 30 * time.Second

// Completer is the subset of the AI client the hook needs.
type Completer interface {
	Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error)
}

type EncouragementMessage struct {
	Event   string `json:"event"`
	Content string `json:"content"`
}

// EncouragementHook asks the AI endpoint for a short message after each
// logged session and broadcasts the reply. The request runs in its own
// goroutine; done, when non-nil, is called once it finishes.
func EncouragementHook(client Completer, model string, done func(error)) Hook {
	return func(s *State, e Event) {
		if e.Kind != EventSessionAdded || e.Session == nil {
			return
		}
		userMessage := GatherContext(s.Stats(), *e.Session)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), encouragementTimeout)
			defer cancel()

			log.Info("Requesting encouragement", "model", model, "session", e.Session.ID)
			response, err := client.Complete(ctx, model, encouragementPrompt, userMessage)
			if err != nil {
				log.Warn("Encouragement request failed", "error", err)
			} else {
				s.NotifyAllClients(EncouragementMessage{Event: "encouragement", Content: strings.TrimSpace(response)})
			}
			if done != nil {
				done(err)
			}
		}()
	}
}

// GatherContext renders the stats and the finished session for the prompt.
// Note text stays on the device; only which stages were filled is sent.
func GatherContext(snapshot stats.PrayerStats, session journal.Session) string {
	var b strings.Builder

	b.WriteString("## Prayer Stats\n")
	fmt.Fprintf(&b, "- Consecutive days: %d\n", snapshot.ConsecutiveDays)
	fmt.Fprintf(&b, "- Longest streak: %d\n", snapshot.LongestStreak)
	fmt.Fprintf(&b, "- Answered prayers: %d\n", snapshot.AnsweredPrayers)
	fmt.Fprintf(&b, "- Prayer time this week: %dm\n", snapshot.WeeklyPrayerTime/60)
	fmt.Fprintf(&b, "- Prayer time this month: %dm\n", snapshot.MonthlyPrayerTime/60)

	b.WriteString("\n## Session\n")
	fmt.Fprintf(&b, "- Date: %s\n", session.Date)
	fmt.Fprintf(&b, "- Duration: %ds\n", session.Duration)
	notes := []struct{ name, text string }{
		{"adoration", session.Notes.Adoration},
		{"confession", session.Notes.Confession},
		{"thanksgiving", session.Notes.Thanksgiving},
		{"supplication", session.Notes.Supplication},
	}
	var filled []string
	for _, n := range notes {
		if strings.TrimSpace(n.text) != "" {
			filled = append(filled, n.name)
		}
	}
	if len(filled) > 0 {
		fmt.Fprintf(&b, "- Stages with notes: %s\n", strings.Join(filled, ", "))
	}
	return b.String()
}
