package api

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/utils/v2"

	"leximap/internal/lexeme"
	"leximap/internal/metrics"
	"leximap/internal/models"
)

// LexemeAssembler builds the lexeme record for a requested word.
type LexemeAssembler interface {
	Assemble(ctx context.Context, word string) (*models.Lexeme, error)
}

// LexemeHandler serves GET /lexeme/:word.
type LexemeHandler struct {
	assembler LexemeAssembler
	log       *slog.Logger
}

// NewLexemeHandler creates a new lexeme handler.
func NewLexemeHandler(assembler LexemeAssembler, logger *slog.Logger) *LexemeHandler {
	return &LexemeHandler{assembler: assembler, log: logger.With("handler", "lexeme")}
}

// Get assembles and returns the lexeme for the word path segment.
func (h *LexemeHandler) Get(c fiber.Ctx) error {
	word, err := wordParam(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, MsgInvalidWord)
	}

	lex, err := h.assembler.Assemble(c.Context(), word)
	if err != nil {
		if errors.Is(err, lexeme.ErrMissingWord) {
			return jsonError(c, fiber.StatusBadRequest, MsgMissingWord)
		}
		h.log.ErrorContext(c.Context(), "lexeme assembly failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return jsonError(c, fiber.StatusInternalServerError, MsgServerError)
	}

	outcome := models.OutcomeResolved
	if len(lex.Senses) == 1 && lex.Senses[0].IsFallback() {
		outcome = models.OutcomeFallback
	}
	metrics.RecordLexemeLookup(lex.ID, outcome)

	return c.JSON(lex)
}

// wordParam percent-decodes the word segment after routing, so an escaped
// slash stays part of the word. The returned string does not alias the
// request buffer and may outlive the handler.
func wordParam(c fiber.Ctx) (string, error) {
	word, err := url.PathUnescape(c.Params("word"))
	if err != nil {
		return "", err
	}
	return utils.CopyString(word), nil
}
