package generator

import (
	"encoding/json"
	"testing"

	"github.com/mcncl/jsonlex/internal/analyzer"
	"github.com/mcncl/jsonlex/internal/config"
	"github.com/mcncl/jsonlex/internal/models"
	"github.com/mcncl/jsonlex/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func tokenize(t *testing.T, input string, keepGoing bool) models.TokenStream {
	t.Helper()
	stream, err := source.TokenizeString(input, source.Options{KeepGoing: keepGoing})
	require.NoError(t, err)
	return stream
}

func generatorFor(format string) *Generator {
	cfg := config.NewConfig()
	cfg.Output.Format = format
	return NewGeneratorWithConfig(cfg)
}

func TestGenerate_Text(t *testing.T) {
	stream := tokenize(t, `{"a": [4E-2, true, null]}`, false)

	result, err := NewGenerator().Generate(stream, nil)
	require.NoError(t, err)

	expected := `curly_bracket_open
string "a"
key_delimiter
bracket_open
number 4e-2
element_delimiter
boolean true
element_delimiter
null
bracket_close
curly_bracket_close
`
	assert.Equal(t, expected, result)
}

func TestGenerate_TextWithErrorsAndSummary(t *testing.T) {
	stream := tokenize(t, `[1, nope, @]`, true)
	summary := analyzer.NewAnalyzer().Analyze(stream)

	result, err := NewGenerator().Generate(stream, &summary)
	require.NoError(t, err)

	expected := `bracket_open
number 1
element_delimiter
element_delimiter
bracket_close
error: unknown keyword at offset 4: "nope"
error: unknown character at offset 10: "@"
-- summary --
total: 5
max depth: 1
balanced: true
errors: 2
bracket_close: 1
bracket_open: 1
element_delimiter: 2
number: 1
`
	assert.Equal(t, expected, result)
}

func TestGenerate_JSON(t *testing.T) {
	stream := tokenize(t, `[false, 0, 4E-2, "x", nope]`, true)
	summary := analyzer.NewAnalyzer().Analyze(stream)

	result, err := generatorFor(config.FormatJSON).Generate(stream, &summary)
	require.NoError(t, err)

	var report models.Report
	require.NoError(t, json.Unmarshal([]byte(result), &report))

	require.Len(t, report.Tokens, 10)
	assert.Equal(t, "bracket_open", report.Tokens[0].Kind)

	assert.Equal(t, "boolean", report.Tokens[1].Kind)
	require.NotNil(t, report.Tokens[1].Bool)
	assert.False(t, *report.Tokens[1].Bool)

	require.NotNil(t, report.Tokens[3].Mantissa)
	assert.Equal(t, 0.0, *report.Tokens[3].Mantissa)
	assert.Nil(t, report.Tokens[3].Exponent)

	require.NotNil(t, report.Tokens[5].Exponent)
	assert.Equal(t, int16(-2), *report.Tokens[5].Exponent)

	require.NotNil(t, report.Tokens[7].Text)
	assert.Equal(t, "x", *report.Tokens[7].Text)

	require.Len(t, report.Errors, 1)
	assert.Equal(t, "unknown_keyword", report.Errors[0].Kind)
	assert.Equal(t, 22, report.Errors[0].Offset)
	assert.Equal(t, "nope", report.Errors[0].Text)

	require.NotNil(t, report.Summary)
	assert.Equal(t, 10, report.Summary.Total)
	assert.Contains(t, result, "\n  \"tokens\": [")
}

func TestGenerate_YAML(t *testing.T) {
	stream := tokenize(t, `{"k": 12.5E-0002}`, false)

	cfg := config.NewConfig()
	cfg.Output.Format = config.FormatYAML
	cfg.Output.KindCase = config.CaseKebab
	result, err := NewGeneratorWithConfig(cfg).Generate(stream, nil)
	require.NoError(t, err)

	var report models.Report
	require.NoError(t, yaml.Unmarshal([]byte(result), &report))

	kinds := make([]string, 0, len(report.Tokens))
	for _, rec := range report.Tokens {
		kinds = append(kinds, rec.Kind)
	}
	assert.Equal(t, []string{"curly-bracket-open", "string", "key-delimiter", "number", "curly-bracket-close"}, kinds)
	require.NotNil(t, report.Tokens[3].Mantissa)
	assert.Equal(t, 12.5, *report.Tokens[3].Mantissa)
	require.NotNil(t, report.Tokens[3].Exponent)
	assert.Equal(t, int16(-2), *report.Tokens[3].Exponent)
	assert.Nil(t, report.Summary)
	assert.Empty(t, report.Errors)
}

func TestGenerate_Pretty(t *testing.T) {
	stream := tokenize(t, `{"a":[1,2]}`, false)

	result, err := generatorFor(config.FormatPretty).Generate(stream, nil)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ]\n}\n", result)
}

func TestGenerate_PrettyRejectsErrors(t *testing.T) {
	stream := tokenize(t, `[nope]`, false)

	_, err := generatorFor(config.FormatPretty).Generate(stream, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot pretty-print input with 1 lexing error(s)")
}

func TestGenerate_UnknownFormat(t *testing.T) {
	_, err := generatorFor("xml").Generate(models.TokenStream{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format 'xml'")
}

func TestGenerate_Truncated(t *testing.T) {
	stream, err := source.TokenizeString(`@ @ @`, source.Options{KeepGoing: true, MaxErrors: 1})
	require.NoError(t, err)

	result, err := NewGenerator().Generate(stream, nil)
	require.NoError(t, err)
	assert.Equal(t, "error: unknown character at offset 0: \"@\"\nerror: too many errors, stopped\n", result)
}
