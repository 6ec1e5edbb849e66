package validator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yoeunes/regexlab/internal/parser"
)

func TestValidateCleanPattern(t *testing.T) {
	root, errs, err := parser.Parse(`/(?<word>\w+)\s\1/`, parser.DefaultConfig())
	require.NoError(t, err)
	require.Empty(t, errs)

	res := Validate(root, []byte(`/(?<word>\w+)\s\1/`), DefaultConfig())
	require.True(t, res.IsValid)
	require.Nil(t, res.Error)
	require.Positive(t, res.ComplexityScore)
}

func TestValidateDuplicateNameRejected(t *testing.T) {
	pattern := `/(?<id>\w+)(?<id>\d+)/`
	root, errs, err := parser.Parse(pattern, parser.DefaultConfig())
	require.NoError(t, err)
	require.Empty(t, errs)

	res := Validate(root, []byte(pattern), DefaultConfig())
	require.False(t, res.IsValid)
	require.Equal(t, "regex.semantic.duplicate-group-name", res.ErrorCode)
}

func TestValidateDuplicateNameAllowedWithJFlag(t *testing.T) {
	pattern := `/(?<id>\w+)(?<id>\d+)/J`
	root, errs, err := parser.Parse(pattern, parser.DefaultConfig())
	require.NoError(t, err)
	require.Empty(t, errs)

	res := Validate(root, []byte(pattern), DefaultConfig())
	require.True(t, res.IsValid)
}

func TestValidateUnknownGroupNameSuggestsClosest(t *testing.T) {
	pattern := `/(?<word>\w+)\k<ward>/`
	root, errs, err := parser.Parse(pattern, parser.DefaultConfig())
	require.NoError(t, err)
	require.Empty(t, errs)

	res := Validate(root, []byte(pattern), DefaultConfig())
	require.False(t, res.IsValid)
	require.Equal(t, "regex.semantic.unknown-group-name", res.ErrorCode)
	require.Contains(t, res.Hint, "word")
}

func TestValidateUnboundedLookbehindRejected(t *testing.T) {
	pattern := `/(?<=a+)b/`
	root, errs, err := parser.Parse(pattern, parser.DefaultConfig())
	require.NoError(t, err)
	require.Empty(t, errs)

	res := Validate(root, []byte(pattern), DefaultConfig())
	require.False(t, res.IsValid)
	require.Equal(t, "regex.semantic.unbounded-lookbehind", res.ErrorCode)
	require.Equal(t, 4, res.Offset)
}

func TestValidateLookbehindTooLong(t *testing.T) {
	pattern := `/(?<=a{300})b/`
	root, errs, err := parser.Parse(pattern, parser.DefaultConfig())
	require.NoError(t, err)
	require.Empty(t, errs)

	cfg := DefaultConfig()
	res := Validate(root, []byte(pattern), cfg)
	require.False(t, res.IsValid)
	require.Equal(t, "regex.semantic.lookbehind-too-long", res.ErrorCode)
}

func TestValidateBadQuantifierBounds(t *testing.T) {
	pattern := `/a{5,2}/`
	root, errs, err := parser.Parse(pattern, parser.DefaultConfig())
	require.NoError(t, err)
	require.Empty(t, errs)

	res := Validate(root, []byte(pattern), DefaultConfig())
	require.False(t, res.IsValid)
	require.Equal(t, "regex.semantic.bad-quantifier-bounds", res.ErrorCode)
}

func TestValidateEmptyQuantifierIsInformationalOnly(t *testing.T) {
	pattern := `/a{0,0}/`
	root, errs, err := parser.Parse(pattern, parser.DefaultConfig())
	require.NoError(t, err)
	require.Empty(t, errs)

	res := Validate(root, []byte(pattern), DefaultConfig())
	require.True(t, res.IsValid)
	require.Len(t, res.Diagnostics, 1)
	require.Equal(t, SeverityInfo, res.Diagnostics[0].Severity)
}

func TestValidateRangeCrossingCaseWarns(t *testing.T) {
	pattern := `/[A-z]/`
	root, errs, err := parser.Parse(pattern, parser.DefaultConfig())
	require.NoError(t, err)
	require.Empty(t, errs)

	res := Validate(root, []byte(pattern), DefaultConfig())
	require.True(t, res.IsValid)
	require.Len(t, res.Diagnostics, 1)
	require.Equal(t, "regex.semantic.range-crosses-case", res.Diagnostics[0].Code)
}

func TestValidateUnknownNumericBackref(t *testing.T) {
	pattern := `/(a)\9/`
	root, errs, err := parser.Parse(pattern, parser.DefaultConfig())
	require.NoError(t, err)
	require.Empty(t, errs)

	res := Validate(root, []byte(pattern), DefaultConfig())
	require.False(t, res.IsValid)
	require.Equal(t, "regex.semantic.unknown-group-number", res.ErrorCode)
}
