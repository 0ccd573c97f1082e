package prayerlog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Stage is one step of the guided ACTS prayer.
type Stage struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Placeholder string `json:"placeholder,omitempty"`
}

// GuideStore holds the ACTS stages shown by the prayer timer.
type GuideStore struct {
	stages []Stage
}

// Load reads stages from path, one per line as
// id|title|subtitle|description[|placeholder]. Blank lines and lines
// starting with # are skipped.
func (g *GuideStore) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var stages []Stage
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) < 4 {
			return fmt.Errorf("%s:%d: expected at least 4 fields, got %d", path, lineNo, len(fields))
		}
		stage := Stage{
			ID:          strings.TrimSpace(fields[0]),
			Title:       strings.TrimSpace(fields[1]),
			Subtitle:    strings.TrimSpace(fields[2]),
			Description: strings.TrimSpace(fields[3]),
		}
		if len(fields) > 4 {
			stage.Placeholder = strings.TrimSpace(fields[4])
		}
		stages = append(stages, stage)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	g.stages = stages
	return nil
}

// Stages returns a copy of the loaded stages in order.
func (g *GuideStore) Stages() []Stage {
	out := make([]Stage, len(g.stages))
	copy(out, g.stages)
	return out
}

func (g *GuideStore) Stage(id string) (Stage, bool) {
	for _, s := range g.stages {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}
