package rewrite

import "sort"

// Rule names. They key the per-rule toggles in the configuration file and
// the nomigrate suppression comments.
const (
	RuleImportRename     = "import-rename"
	RuleAnnotationRename = "annotation-rename"
	RuleIgnoreDisabled   = "ignore-disabled"
	RuleTestAttributes   = "test-attributes"
	RuleAssumptionCall   = "assumption-call"
)

// Rules returns every rule name in a stable order.
func Rules() []string {
	return []string{
		RuleImportRename,
		RuleAnnotationRename,
		RuleIgnoreDisabled,
		RuleTestAttributes,
		RuleAssumptionCall,
	}
}

const (
	disableSource = "Ignore"
	disableTarget = "Disabled"
	testSource    = "Test"
	testTarget    = "Test"

	timeoutKey  = "timeout"
	expectedKey = "expected"

	assumptionNamespace = "Assumptions"

	durationOfMillis    = "java.time.Duration.ofMillis"
	assertTimeoutImport = "org.junit.jupiter.api.Assertions.assertTimeout"
	assertThrowsImport  = "org.junit.jupiter.api.Assertions.assertThrows"

	ofMillisCall      = "ofMillis"
	assertTimeoutCall = "assertTimeout"
	assertThrowsCall  = "assertThrows"
)

// renames maps JUnit 4 names to their Jupiter replacements. Qualified
// import names and bare annotation names share the table. It is never
// written after package initialization.
var renames = map[string]string{
	// imports
	"org.junit.Test":               "org.junit.jupiter.api.Test",
	"org.junit.Before":             "org.junit.jupiter.api.BeforeEach",
	"org.junit.BeforeClass":        "org.junit.jupiter.api.BeforeAll",
	"org.junit.After":              "org.junit.jupiter.api.AfterEach",
	"org.junit.AfterClass":         "org.junit.jupiter.api.AfterAll",
	"org.junit.Ignore":             "org.junit.jupiter.api.Disabled",
	"org.junit.Assume":             "org.junit.jupiter.api.Assumptions",
	"org.junit.Assume.assumeTrue":  "org.junit.jupiter.api.Assumptions.assumeTrue",
	"org.junit.Assume.assumeFalse": "org.junit.jupiter.api.Assumptions.assumeFalse",
	"org.junit.Assert.assertThat":  "org.hamcrest.MatcherAssert.assertThat",

	// annotations
	"Before":      "BeforeEach",
	"BeforeClass": "BeforeAll",
	"After":       "AfterEach",
	"AfterClass":  "AfterAll",
}

// Lookup returns the replacement for a JUnit 4 name.
func Lookup(name string) (string, bool) {
	target, ok := renames[name]
	return target, ok
}

// Rename is one entry of the rename table.
type Rename struct {
	From string
	To   string
}

// Renames returns a sorted copy of the rename table.
func Renames() []Rename {
	out := make([]Rename, 0, len(renames))
	for from, to := range renames {
		out = append(out, Rename{From: from, To: to})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].From < out[j].From
	})
	return out
}
