package prompt

import (
	"fmt"
	"strings"

	"irene-companion-be/internal/entity"
)

const persona = "You are Irene, a mental health companion. Respond in a short, conversational, and empathetic tone, like a caring friend on WhatsApp. Keep it under 2-3 sentences. Be warm and lovely, but also provide actionable solutions to the user's problem."

// Builder renders one generation prompt: the fixed persona, the conversation
// so far, the sentiment-annotated user turn and whichever profile facts exist.
type Builder struct {
	profile   *entity.UserProfile
	history   []*entity.Message
	turn      string
	sentiment string
}

func NewBuilder(profile *entity.UserProfile, history []*entity.Message, turn, sentiment string) *Builder {
	return &Builder{
		profile:   profile,
		history:   history,
		turn:      turn,
		sentiment: sentiment,
	}
}

func (b *Builder) Build() string {
	var prompt strings.Builder

	prompt.WriteString(persona)
	prompt.WriteString(" Here's the conversation history:\n")

	b.writeHistory(&prompt)
	b.writeTurn(&prompt)
	b.writeProfileFacts(&prompt)

	return prompt.String()
}

func (b *Builder) writeHistory(prompt *strings.Builder) {
	for _, msg := range b.history {
		speaker := "User"
		if msg.Role == entity.RoleAssistant {
			speaker = "Irene"
		}
		prompt.WriteString(speaker)
		prompt.WriteString(": ")
		prompt.WriteString(msg.Content)
		prompt.WriteString("\n")
	}
}

func (b *Builder) writeTurn(prompt *strings.Builder) {
	fmt.Fprintf(prompt, "The user's message has a %q sentiment. Respond appropriately. User: %s", b.sentiment, b.turn)
}

func (b *Builder) writeProfileFacts(prompt *strings.Builder) {
	if b.profile == nil {
		return
	}

	if b.profile.Name != "" {
		fmt.Fprintf(prompt, "\nNote: The user's name is %s.", b.profile.Name)
	}
	if b.profile.Behavior != "" {
		fmt.Fprintf(prompt, "\nThe user's recent behavior has been %s.", b.profile.Behavior)
	}
	if b.profile.Tone != "" {
		fmt.Fprintf(prompt, "\nThe user's tone is %s.", b.profile.Tone)
	}
	if len(b.profile.Problems) > 0 {
		fmt.Fprintf(prompt, "\nThe user has mentioned the following problems: %s.", strings.Join(b.profile.Problems, ", "))
	}
}
