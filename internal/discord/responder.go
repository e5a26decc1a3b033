package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// interactionSession is the slice of the gateway session the responder talks
// to. *discordgo.Session satisfies it.
type interactionSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type ackState int

const (
	ackNone ackState = iota
	ackDeferred
	ackReplied
)

// Message is one outgoing interaction reply.
type Message struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Ephemeral  bool
}

// Responder acknowledges one interaction exactly once and routes every
// subsequent reply through the matching follow-up endpoint. An interaction
// token is single-acknowledge: a second InteractionRespond fails, so the
// responder tracks whether the interaction is unacknowledged, deferred, or
// already replied and picks the right call. Not safe for concurrent use;
// one interaction is handled by one goroutine.
type Responder struct {
	s     interactionSession
	ix    *discordgo.Interaction
	state ackState
}

func NewResponder(s interactionSession, ix *discordgo.Interaction) *Responder {
	return &Responder{s: s, ix: ix}
}

// Defer acknowledges the interaction immediately so slow work can follow.
// No-op when the interaction is already acknowledged.
func (r *Responder) Defer(ephemeral bool) error {
	if r.state != ackNone {
		return nil
	}
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	err := r.s.InteractionRespond(r.ix, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: flags},
	})
	if err != nil {
		return fmt.Errorf("defer interaction: %w", err)
	}
	r.state = ackDeferred
	return nil
}

// Send delivers a reply through whichever endpoint the acknowledgement state
// requires: initial response, deferred-response edit, or follow-up.
func (r *Responder) Send(msg Message) error {
	var flags discordgo.MessageFlags
	if msg.Ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	switch r.state {
	case ackNone:
		err := r.s.InteractionRespond(r.ix, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content:    msg.Content,
				Embeds:     msg.Embeds,
				Components: msg.Components,
				Flags:      flags,
			},
		})
		if err != nil {
			return fmt.Errorf("respond to interaction: %w", err)
		}
		r.state = ackReplied
		return nil

	case ackDeferred:
		_, err := r.s.InteractionResponseEdit(r.ix, &discordgo.WebhookEdit{
			Content:    &msg.Content,
			Embeds:     &msg.Embeds,
			Components: &msg.Components,
		})
		if err != nil {
			return fmt.Errorf("edit deferred response: %w", err)
		}
		r.state = ackReplied
		return nil

	default:
		_, err := r.s.FollowupMessageCreate(r.ix, true, &discordgo.WebhookParams{
			Content:    msg.Content,
			Embeds:     msg.Embeds,
			Components: msg.Components,
			Flags:      flags,
		})
		if err != nil {
			return fmt.Errorf("send follow-up: %w", err)
		}
		return nil
	}
}

// Text is Send with plain ephemeral-or-not content.
func (r *Responder) Text(content string, ephemeral bool) error {
	return r.Send(Message{Content: content, Ephemeral: ephemeral})
}

// Modal opens a modal. Only valid as the first acknowledgement; a deferred
// or replied interaction can no longer open one.
func (r *Responder) Modal(customID, title string, components []discordgo.MessageComponent) error {
	if r.state != ackNone {
		return fmt.Errorf("cannot open modal: interaction already acknowledged")
	}
	err := r.s.InteractionRespond(r.ix, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: components,
		},
	})
	if err != nil {
		return fmt.Errorf("open modal: %w", err)
	}
	r.state = ackReplied
	return nil
}
