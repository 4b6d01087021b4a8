// Package source runs the lexer over files, strings and readers.
package source

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mcncl/jsonlex/internal/errors"
	"github.com/mcncl/jsonlex/internal/lexer"
	"github.com/mcncl/jsonlex/internal/models"
)

// Options controls how lexing errors are handled.
type Options struct {
	// KeepGoing collects errors and resumes lexing after each one.
	KeepGoing bool
	// MaxErrors stops keep-going mode after this many errors. Zero means no limit.
	MaxErrors int
	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// Tokenize reads JSON text from reader and splits it into tokens. Malformed
// input is reported through the Errors of the returned stream; the error
// return is reserved for failures to read the input.
func Tokenize(reader io.Reader, opts Options) (models.TokenStream, error) {
	log := opts.logger()
	lx := lexer.New(bufio.NewReader(reader))

	var stream models.TokenStream
	for {
		tok, err := lx.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var lexErr *lexer.Error
			if !stderrors.As(err, &lexErr) {
				return stream, errors.NewInputError("failed to read input", err)
			}
			if lexErr.Kind == lexer.UnexpectedEndOfInput {
				return stream, errors.NewInputError("failed to read input", lexErr)
			}

			log.Debug("lexing error", "kind", lexErr.Kind.String(), "offset", lexErr.Offset, "text", lexErr.Text)
			stream.Errors = append(stream.Errors, lexErr)
			if !opts.KeepGoing {
				break
			}
			if opts.MaxErrors > 0 && len(stream.Errors) >= opts.MaxErrors {
				stream.Truncated = true
				break
			}
			continue
		}
		stream.Tokens = append(stream.Tokens, tok)
	}

	log.Debug("tokenized input", "tokens", len(stream.Tokens), "errors", len(stream.Errors), "runes", lx.Offset())
	return stream, nil
}

// TokenizeString tokenizes JSON from a string
func TokenizeString(jsonString string, opts Options) (models.TokenStream, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.TokenStream{}, errors.NewInputError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}
	return Tokenize(strings.NewReader(jsonString), opts)
}

// TokenizeFile tokenizes JSON from a file path
func TokenizeFile(filePath string, opts Options) (models.TokenStream, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.TokenStream{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.TokenStream{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.TokenStream{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			opts.logger().Debug("failed to close input file", "path", filePath, "error", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.TokenStream{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.TokenStream{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	opts.logger().Debug("reading input file", "path", filePath, "bytes", stat.Size())
	return Tokenize(file, opts)
}

// FirstError wraps the first lexing error of a stream as an application
// error, or returns nil when the stream is clean.
func FirstError(stream models.TokenStream) error {
	if stream.OK() {
		return nil
	}
	first := stream.Errors[0]
	msg := first.Error()
	if n := len(stream.Errors); n > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, n-1)
	}
	return errors.NewLexingError(msg, stderrors.Join(errors.ErrInvalidTokens, first))
}
