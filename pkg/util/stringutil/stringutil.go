package stringutil

import (
	"regexp"
	"strings"

	"github.com/huandu/xstrings"
)

var (
	regex        = regexp.MustCompile(`-([0-9]+)`)
	nameReplacer = strings.NewReplacer(".", "-", "_", "-", " ", "-")
	envReplacer  = strings.NewReplacer("-", "_", ".", "_")
)

// ToName normalizes step and result names so that "Pipe1Result",
// "pipe1-result" and "pipe1_result" all refer to the same entry.
func ToName(name string) string {
	n := xstrings.ToKebabCase(nameReplacer.Replace(strings.TrimSpace(name)))
	n = strings.Trim(regex.ReplaceAllString(n, "$1-"), "-")
	for strings.Contains(n, "--") {
		n = strings.Replace(n, "--", "-", -1)
	}
	return n
}

// ToEnvironmentName converts a config key into the suffix of an environment
// variable name, e.g. "log-level" to "LOG_LEVEL".
func ToEnvironmentName(name string) string {
	return strings.ToUpper(envReplacer.Replace(ToName(name)))
}
