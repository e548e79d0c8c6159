// Package classify categorizes review comments into engineering-principle
// buckets and derives an overall feedback-quality score.
package classify

import "github.com/huangsam/reviewlens/schema"

// PatternTableVersion identifies the keyword table revision. Bump it when
// the categories or keyword sets change so that cached results built from
// an older table are not compared against newer ones.
const PatternTableVersion = 1

// Pattern defines one comment category: the keywords that trigger it, the
// principle it maps to, and the action items recommended when it ranks as
// a top issue. Matching is case-insensitive substring containment.
type Pattern struct {
	Category    string
	Keywords    []string
	Principle   string
	Description string
	Severity    schema.Severity
	ActionItems []string
}

// Patterns is the process-wide category table. Categories are not mutually
// exclusive: a comment may match several of them.
var Patterns = []Pattern{
	{
		Category: "Code Quality",
		Keywords: []string{
			"clean up", "refactor", "simplify", "complex", "readable", "clarity",
			"naming", "variable name", "function name", "method name", "confusing",
			"unclear", "hard to understand", "magic number", "constant", "clean code",
			"improve", "better", "cleaner", "optimize", "enhancement",
		},
		Principle:   "Clean Code",
		Description: "Code should be readable, maintainable, and self-documenting",
		Severity:    schema.MediumSeverity,
		ActionItems: []string{
			"Review and refactor complex functions into smaller, focused methods",
			"Use meaningful variable and function names that express intent",
			"Extract magic numbers into named constants",
			"Apply the Boy Scout Rule: leave code cleaner than you found it",
		},
	},
	{
		Category: "Testing",
		Keywords: []string{
			"test", "unit test", "integration test", "coverage", "mock", "stub",
			"test case", "edge case", "assertion", "verify", "validate", "spec",
		},
		Principle:   "Test-Driven Development",
		Description: "Code should be thoroughly tested with appropriate test coverage",
		Severity:    schema.HighSeverity,
		ActionItems: []string{
			"Write unit tests for all new functions and methods",
			"Aim for at least 80% code coverage on critical paths",
			"Include edge cases and error scenarios in test suites",
			"Practice Test-Driven Development (TDD) for new features",
		},
	},
	{
		Category: "Performance",
		Keywords: []string{
			"performance", "optimize", "slow", "inefficient", "memory", "leak",
			"algorithm", "complexity", "cache", "database", "query", "n+1", "bottleneck",
		},
		Principle:   "Performance Optimization",
		Description: "Code should be efficient and performant",
		Severity:    schema.MediumSeverity,
		ActionItems: []string{
			"Profile code to identify actual bottlenecks before optimizing",
			"Implement caching strategies for expensive operations",
			"Review database queries for N+1 problems and optimization opportunities",
			"Consider algorithmic complexity when choosing data structures",
		},
	},
	{
		Category: "Security",
		Keywords: []string{
			"security", "vulnerability", "sanitize", "validate", "injection",
			"xss", "csrf", "authentication", "authorization", "encrypt", "hash", "secure",
		},
		Principle:   "Security Best Practices",
		Description: "Code should follow security best practices and be secure by design",
		Severity:    schema.HighSeverity,
		ActionItems: []string{
			"Always validate and sanitize user input",
			"Use parameterized queries to prevent SQL injection",
			"Implement proper authentication and authorization checks",
			"Follow the principle of least privilege for access controls",
		},
	},
	{
		Category: "Error Handling",
		Keywords: []string{
			"error", "exception", "try catch", "handle", "fail", "graceful",
			"fallback", "recovery", "logging", "debug", "throw",
		},
		Principle:   "Robust Error Handling",
		Description: "Code should handle errors gracefully and provide meaningful feedback",
		Severity:    schema.MediumSeverity,
		ActionItems: []string{
			"Implement comprehensive error handling for all external dependencies",
			"Provide meaningful error messages that help users understand issues",
			"Use proper logging levels and structured logging",
			"Design graceful degradation for non-critical failures",
		},
	},
	{
		Category: "Documentation",
		Keywords: []string{
			"comment", "documentation", "doc", "explain", "document", "readme",
			"jsdoc", "javadoc", "api doc", "inline comment", "describe",
		},
		Principle:   "Self-Documenting Code",
		Description: "Code should be well-documented and self-explanatory",
		Severity:    schema.LowSeverity,
		ActionItems: []string{
			"Write clear, concise comments that explain \"why\" not \"what\"",
			"Maintain up-to-date API documentation",
			"Include usage examples in documentation",
			"Document complex business logic and architectural decisions",
		},
	},
	{
		Category: "Architecture",
		Keywords: []string{
			"architecture", "design", "pattern", "solid", "coupling", "cohesion",
			"separation", "responsibility", "dependency", "interface", "abstraction",
		},
		Principle:   "SOLID Principles",
		Description: "Code should follow good architectural principles and design patterns",
		Severity:    schema.HighSeverity,
		ActionItems: []string{
			"Apply SOLID principles: Single Responsibility, Open/Closed, etc.",
			"Reduce coupling between modules and increase cohesion within modules",
			"Use dependency injection for better testability",
			"Consider design patterns that fit the problem domain",
		},
	},
	{
		Category: "Code Style",
		Keywords: []string{
			"style", "format", "lint", "prettier", "indentation", "spacing",
			"convention", "consistent", "formatting", "eslint",
		},
		Principle:   "Consistent Code Style",
		Description: "Code should follow consistent styling and formatting conventions",
		Severity:    schema.LowSeverity,
		ActionItems: []string{
			"Fix formatting",
			"Follow established coding standards and conventions",
			"Automate style enforcement with linters and formatters",
			"Keep formatting consistent across the codebase",
		},
	},
	{
		Category: "Logic Issues",
		Keywords: []string{
			"logic", "bug", "incorrect", "wrong", "fix", "issue", "problem",
			"condition", "if statement", "loop", "algorithm", "broken",
		},
		Principle:   "Correctness",
		Description: "Code should be logically correct and free of bugs",
		Severity:    schema.HighSeverity,
		ActionItems: []string{
			"Double-check conditional logic and edge cases",
			"Use code reviews to catch logical errors early",
			"Write comprehensive tests to verify business logic",
			"Consider pair programming for complex algorithmic work",
		},
	},
	{
		Category: "Best Practices",
		Keywords: []string{
			"best practice", "convention", "standard", "guideline", "pattern",
			"anti-pattern", "code smell", "technical debt", "improve", "suggestion",
			"recommend", "consider", "should", "could", "might", "perhaps",
		},
		Principle:   "Industry Best Practices",
		Description: "Code should follow established industry best practices and conventions",
		Severity:    schema.MediumSeverity,
		ActionItems: []string{
			"Follow established coding standards and conventions",
			"Regularly refactor code to eliminate technical debt",
			"Stay updated with industry best practices",
			"Seek feedback from senior developers on code design",
		},
	},
}

// DefaultRecommendation is emitted when no specific issues were found.
var DefaultRecommendation = schema.Recommendation{
	Principle:   "Continuous Improvement",
	Description: "Keep learning and improving your software engineering skills",
	ActionItems: []string{
		"Regularly read code written by experienced developers",
		"Stay updated with industry best practices and new technologies",
		"Participate in code reviews both as author and reviewer",
		"Practice writing clean, maintainable code",
	},
	Priority: schema.LowSeverity,
}
