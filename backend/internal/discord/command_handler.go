package discord

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"lexigraph/backend/internal/constants"
	"lexigraph/backend/internal/vocabulary"
	apperrors "lexigraph/backend/pkg/errors"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const (
	lookupTimeout = 15 * time.Second
	// Brief pause between the parts of a split reply
	chunkDelay = 100 * time.Millisecond
)

// VocabularyFetcher is the lookup the chat command needs
type VocabularyFetcher interface {
	FetchByLanguage(ctx context.Context, language vocabulary.Language) (vocabulary.Mapping, error)
}

// MessageSender is the part of *discordgo.Session used for replies
type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Command is a parsed vocabulary lookup
type Command struct {
	Language vocabulary.Language
	Term     string
}

// Handler answers vocabulary commands posted in Discord
type Handler struct {
	vocab  VocabularyFetcher
	prefix string
	logger *zap.Logger
}

// NewHandler creates a Discord vocabulary command handler
func NewHandler(vocab VocabularyFetcher, prefix string, logger *zap.Logger) *Handler {
	if prefix == "" {
		prefix = constants.DefaultCommandPrefix
	}
	return &Handler{
		vocab:  vocab,
		prefix: prefix,
		logger: logger,
	}
}

// HandleMessage processes a Discord message
func (h *Handler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	botUserID := ""
	if s.State != nil && s.State.User != nil {
		botUserID = s.State.User.ID
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	h.handle(ctx, s, botUserID, m)
}

func (h *Handler) handle(ctx context.Context, sender MessageSender, botUserID string, m *discordgo.MessageCreate) {
	if !shouldHandle(m, botUserID) {
		return
	}

	cmd, ok := ParseCommand(h.prefix, m.Content)
	if !ok {
		return
	}

	h.logger.Info("Processing vocabulary command",
		zap.String("user_id", m.Author.ID),
		zap.String("channel_id", m.ChannelID),
		zap.String("language", cmd.Language.String()),
		zap.String("term", cmd.Term),
	)

	if cmd.Language == "" {
		h.reply(sender, m.ChannelID, h.usage())
		return
	}

	mapping, err := h.vocab.FetchByLanguage(ctx, cmd.Language)
	if err != nil {
		h.logger.Error("Failed to fetch vocabulary",
			zap.String("language", cmd.Language.String()),
			zap.Error(err),
		)
		h.reply(sender, m.ChannelID, failureMessage(err))
		return
	}

	if cmd.Term != "" {
		entry, found := mapping.Lookup(cmd.Term)
		if !found {
			h.reply(sender, m.ChannelID, fmt.Sprintf("No %s definition found for **%s**.", cmd.Language.Name(), cmd.Term))
			return
		}
		h.reply(sender, m.ChannelID, fmt.Sprintf("**%s**: %s", entry.Term, entry.Definition))
		return
	}

	h.reply(sender, m.ChannelID, FormatVocabulary(cmd.Language, mapping, constants.DiscordMaxMessageLength))
}

// reply sends content, split into numbered parts when it exceeds Discord's
// message limit
func (h *Handler) reply(sender MessageSender, channelID, content string) {
	maxLength := constants.DiscordMaxMessageLength

	if len(content) <= maxLength {
		if _, err := sender.ChannelMessageSend(channelID, content); err != nil {
			h.logger.Error("Failed to send message",
				zap.Error(err),
				zap.String("channel_id", channelID),
			)
		}
		return
	}

	// "*(Part X/Y)*" plus the newline before it
	const partIndicatorReserve = 20
	chunks := splitMessage(content, maxLength-partIndicatorReserve)

	for i, chunk := range chunks {
		message := fmt.Sprintf("%s\n*(Part %d/%d)*", chunk, i+1, len(chunks))
		if _, err := sender.ChannelMessageSend(channelID, message); err != nil {
			h.logger.Error("Failed to send message chunk",
				zap.Error(err),
				zap.String("channel_id", channelID),
				zap.Int("chunk", i+1),
				zap.Int("total_chunks", len(chunks)),
			)
			return
		}
		if i < len(chunks)-1 {
			time.Sleep(chunkDelay)
		}
	}
}

// splitMessage breaks content into chunks of at most maxLength bytes,
// preferring line breaks and never cutting inside a UTF-8 sequence
func splitMessage(content string, maxLength int) []string {
	var chunks []string
	current := ""

	for _, line := range strings.Split(content, "\n") {
		for len(line) > maxLength {
			if current != "" {
				chunks = append(chunks, current)
				current = ""
			}
			cut := maxLength
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}

		switch {
		case current == "":
			current = line
		case len(current)+1+len(line) <= maxLength:
			current += "\n" + line
		default:
			chunks = append(chunks, current)
			current = line
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

func (h *Handler) usage() string {
	codes := make([]string, 0, len(vocabulary.Languages()))
	for _, language := range vocabulary.Languages() {
		codes = append(codes, language.String())
	}
	return fmt.Sprintf("Usage: `%s <language> [term]`\nLanguages: %s", h.prefix, strings.Join(codes, ", "))
}

// shouldHandle drops messages from the bot itself and from other bots
func shouldHandle(m *discordgo.MessageCreate, botUserID string) bool {
	if m == nil || m.Message == nil || m.Author == nil {
		return false
	}
	if m.Author.ID == botUserID || m.Author.Bot {
		return false
	}
	return true
}

// ParseCommand extracts a lookup from content. ok is false when the content
// is not addressed to the command. A bare prefix yields an empty Command.
func ParseCommand(prefix, content string) (Command, bool) {
	fields := strings.Fields(content)
	if len(fields) == 0 || !strings.EqualFold(fields[0], prefix) {
		return Command{}, false
	}

	var cmd Command
	if len(fields) > 1 {
		cmd.Language, _ = vocabulary.ParseLanguage(fields[1])
	}
	if len(fields) > 2 {
		cmd.Term = strings.Join(fields[2:], " ")
	}
	return cmd, true
}

// FormatVocabulary renders a mapping sorted by term, cut to fit maxLength
func FormatVocabulary(language vocabulary.Language, mapping vocabulary.Mapping, maxLength int) string {
	if len(mapping) == 0 {
		return fmt.Sprintf("No %s vocabulary found.", language.Name())
	}

	// Reserve room for the "...and N more" footer
	const footerReserve = 40

	var b strings.Builder
	fmt.Fprintf(&b, "**%s vocabulary** (%d terms)\n", language.Name(), len(mapping))

	entries := mapping.Entries()
	for i, entry := range entries {
		line := fmt.Sprintf("• **%s**: %s\n", entry.Term, entry.Definition)
		if b.Len()+len(line) > maxLength-footerReserve {
			fmt.Fprintf(&b, "...and %d more", len(entries)-i)
			return b.String()
		}
		b.WriteString(line)
	}
	return strings.TrimRight(b.String(), "\n")
}

func failureMessage(err error) string {
	if apperrors.IsRetryable(err) {
		return "The vocabulary database is unreachable right now, try again shortly."
	}
	return "Sorry, I couldn't fetch that vocabulary."
}
