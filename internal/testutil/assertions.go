package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// DecodeArtifact parses a JSON artifact from the harness output.
func DecodeArtifact(t *testing.T, result *HarnessResult) map[string]any {
	t.Helper()
	require.NoError(t, result.Err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Output), &doc), "artifact is not JSON:\n%s", result.Output)
	return doc
}

// PluginNames returns the plugin names of an artifact in order.
func PluginNames(t *testing.T, doc map[string]any) []string {
	t.Helper()

	list, ok := doc["plugins"].([]any)
	require.True(t, ok, "artifact has no plugin list")
	names := make([]string, 0, len(list))
	for _, p := range list {
		names = append(names, p.(map[string]any)["name"].(string))
	}
	return names
}

func artifactRules(t *testing.T, doc map[string]any) []map[string]any {
	t.Helper()

	module, ok := doc["module"].(map[string]any)
	require.True(t, ok, "artifact has no module section")
	list, ok := module["rules"].([]any)
	require.True(t, ok, "artifact has no rule list")
	rules := make([]map[string]any, len(list))
	for i, r := range list {
		rules[i] = r.(map[string]any)
	}
	return rules
}

func findRule(t *testing.T, doc map[string]any, rule string) map[string]any {
	t.Helper()

	for _, r := range artifactRules(t, doc) {
		if r["name"] == rule {
			return r
		}
	}
	require.Failf(t, "rule not found", "no rule named %q in artifact", rule)
	return nil
}

// RuleNames returns the rule names of an artifact in order.
func RuleNames(t *testing.T, doc map[string]any) []string {
	t.Helper()

	var names []string
	for _, r := range artifactRules(t, doc) {
		names = append(names, r["name"].(string))
	}
	return names
}

// RuleLoaders returns the loader chain of the named rule.
func RuleLoaders(t *testing.T, doc map[string]any, rule string) []string {
	t.Helper()

	var loaders []string
	for _, u := range findRule(t, doc, rule)["use"].([]any) {
		loaders = append(loaders, u.(map[string]any)["loader"].(string))
	}
	return loaders
}

// RuleTest returns the file pattern of the named rule.
func RuleTest(t *testing.T, doc map[string]any, rule string) string {
	t.Helper()

	test, _ := findRule(t, doc, rule)["test"].(string)
	return test
}

// AssertFailedWithoutOutput checks that a run failed and wrote nothing.
func AssertFailedWithoutOutput(t *testing.T, result *HarnessResult) {
	t.Helper()

	require.Error(t, result.Err, "expected the composition to fail")
	require.Empty(t, result.Output, "a failed composition must not write an artifact")
}
