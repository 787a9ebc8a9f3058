// Package export renders finished or running sessions as shareable documents.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/onekill0503/dnd-bot/internal/entities/game"
	"github.com/onekill0503/dnd-bot/internal/errors"
)

const (
	margin     = 40.0
	lineHeight = 14.0
	fontFamily = "Helvetica"
)

// Transcript renders the session as a PDF: header, party roster, story
// memory and the full session history in order.
func Transcript(s *game.Session) ([]byte, error) {
	if s == nil {
		return nil, errors.InvalidArgument("session is required")
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle("Session transcript "+s.SessionID, true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin + 10)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// core fonts are cp1252; translate so accented narration survives
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	heading := func(text string) {
		pdf.Ln(6)
		pdf.SetFont(fontFamily, "B", 13)
		pdf.SetTextColor(80, 50, 30)
		pdf.CellFormat(0, 18, tr(text), "B", 1, "L", false, 0, "")
		pdf.Ln(4)
		pdf.SetFont(fontFamily, "", 10)
		pdf.SetTextColor(20, 20, 20)
	}
	para := func(text string) {
		pdf.MultiCell(0, lineHeight, tr(text), "", "L", false)
	}
	bullet := func(text string) {
		pdf.MultiCell(0, lineHeight, tr("- "+text), "", "L", false)
	}

	pdf.SetFont(fontFamily, "B", 18)
	pdf.SetTextColor(80, 50, 30)
	title := "Adventure Transcript"
	if s.Theme != "" {
		title += ": " + s.Theme
	}
	pdf.MultiCell(0, 22, tr(title), "", "L", false)

	pdf.SetFont(fontFamily, "", 9)
	pdf.SetTextColor(90, 90, 90)
	para(fmt.Sprintf("Session %s | status %s | round %d | party level %d | language %s",
		s.SessionID, statusLabel(s), s.SessionRound, s.PartyLevel, s.Language))
	para(fmt.Sprintf("Started %s, last updated %s",
		s.CreatedAt.UTC().Format(time.RFC1123), s.UpdatedAt.UTC().Format(time.RFC1123)))
	pdf.SetFont(fontFamily, "", 10)
	pdf.SetTextColor(20, 20, 20)

	heading("Party")
	if s.Players.Len() == 0 {
		para("No characters joined.")
	}
	for _, pc := range s.Players.Values() {
		bullet(fmt.Sprintf("%s (%s), %s %s, %s. HP %d/%d, AC %d, %s",
			pc.Name, pc.Username, pc.Race, pc.Class, pc.Background,
			pc.HitPoints, pc.MaxHitPoints, pc.ArmorClass, pc.Status))
	}

	if s.StorySummary != "" || s.CurrentScene != "" {
		heading("Where the story stands")
		if s.StorySummary != "" {
			para(s.StorySummary)
		}
		if s.CurrentScene != "" {
			para("Current scene: " + s.CurrentScene)
		}
	}

	if len(s.ImportantEvents) > 0 {
		heading("Important events")
		for _, e := range s.ImportantEvents {
			bullet(e)
		}
	}

	if s.QuestProgress.Len() > 0 {
		heading("Quests")
		for _, q := range s.QuestProgress.Pairs() {
			bullet(fmt.Sprintf("%s [%s]: %s", q.Key, q.Value.Status, q.Value.Progress))
		}
	}

	if s.NPCInteractions.Len() > 0 {
		heading("People met")
		for _, n := range s.NPCInteractions.Pairs() {
			bullet(fmt.Sprintf("%s: %s", n.Key, strings.Join(n.Value, "; ")))
		}
	}

	heading("Session history")
	if len(s.SessionHistory) == 0 {
		para("Nothing has happened yet.")
	}
	for i, entry := range s.SessionHistory {
		pdf.SetFont(fontFamily, "B", 9)
		pdf.SetTextColor(120, 90, 60)
		pdf.CellFormat(0, lineHeight, fmt.Sprintf("#%d", i+1), "", 1, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		pdf.SetTextColor(20, 20, 20)
		para(entry)
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to render transcript")
	}
	return buf.Bytes(), nil
}

func statusLabel(s *game.Session) string {
	if s.EndReason != "" {
		return fmt.Sprintf("%s (%s)", s.Status, s.EndReason)
	}
	return string(s.Status)
}
