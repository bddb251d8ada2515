package fakeapp_test

import (
	"strings"
	"testing"

	fakeapp "github.com/Flagsmith/fakeapp-go"
	"github.com/stretchr/testify/assert"
)

func TestUserAgentFormat(t *testing.T) {
	// Given/When
	userAgent := fakeapp.UserAgent()

	// Then
	parts := strings.Split(userAgent, "/")
	assert.Equal(t, 2, len(parts), "User-Agent should have exactly two parts separated by '/'")
	assert.Equal(t, "fakeapp", parts[0])

	versionPart := parts[1]
	isValid := versionPart == "unknown" || strings.HasPrefix(versionPart, "v")
	assert.True(t, isValid, "Version should be 'unknown' or start with 'v', got: %s", versionPart)
}

func TestNormalizeVersion(t *testing.T) {
	cases := map[string]string{
		"":                                   "unknown",
		"(devel)":                            "unknown",
		"not-a-version":                      "unknown",
		"v1.2.3":                             "v1.2.3",
		"v0.0.0-20240101000000-abcdef123456": "v0.0.0-20240101000000-abcdef123456",
	}
	for raw, expected := range cases {
		assert.Equal(t, expected, fakeapp.NormalizeVersionForTest(raw), "raw version %q", raw)
	}
}
