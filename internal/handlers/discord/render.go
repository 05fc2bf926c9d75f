package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	"github.com/Draft-Lab/panela-tracker/internal/services/tracker"
)

const (
	colorActive   = 0x00ff00
	colorFinished = 0x5865f2
	colorError    = 0xff0000
)

// currentSessionsEmbed lists every session in progress, one field per game
func currentSessionsEmbed(out *tracker.ListCurrentSessionsOutput, now time.Time) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Sessions in progress",
		Color: colorActive,
	}
	if len(out.Sessions) == 0 {
		embed.Description = "Nobody is playing right now."
		return embed
	}

	for _, cs := range out.Sessions {
		title := cs.Session.GameID
		if cs.Game != nil {
			title = cs.Game.Title
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: title,
			Value: fmt.Sprintf("%s, %s, for %s",
				playersLabel(cs.Session.ActivePlayers),
				cs.Session.SessionType,
				formatMinutes(int(now.Sub(cs.Session.FirstEventAt)/time.Minute)),
			),
		})
	}
	return embed
}

// sessionEmbed shows one session with per-player durations
func sessionEmbed(out *tracker.GetSessionOutput) *discordgo.MessageEmbed {
	s := out.Session
	title := s.GameID
	if out.Game != nil {
		title = out.Game.Title
	}

	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: colorActive,
		Footer: &discordgo.MessageEmbedFooter{
			Text: s.ID,
		},
	}
	if s.IsCurrent {
		embed.Description = fmt.Sprintf("In progress, %s (%s)", playersLabel(s.ActivePlayers), s.SessionType)
	} else {
		embed.Color = colorFinished
		embed.Description = fmt.Sprintf("Finished after %s", formatMinutes(s.TotalDurationMinutes))
	}

	for _, m := range out.Memberships {
		name := m.PlayerID
		if p, ok := out.Players[m.PlayerID]; ok && p != nil {
			name = p.Name
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  membershipLine(m),
			Inline: true,
		})
	}
	return embed
}

func membershipLine(m *models.Membership) string {
	var parts []string
	if m.IsActive {
		parts = append(parts, "playing")
	}
	parts = append(parts,
		fmt.Sprintf("solo %s", formatMinutes(m.SoloDurationMinutes)),
		fmt.Sprintf("group %s", formatMinutes(m.GroupDurationMinutes)),
	)
	if m.Status != "" {
		parts = append(parts, m.Status)
	}
	return strings.Join(parts, " | ")
}

func playersLabel(n int) string {
	if n == 1 {
		return "1 player"
	}
	return fmt.Sprintf("%d players", n)
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
