package outwriter

import (
	"fmt"
	"strings"

	"github.com/huangsam/reviewlens/core/classify"
)

// PrintScoringReference displays the formal definitions of all scores the
// tool produces. This is a static display that does not require API calls.
func PrintScoringReference() error {
	fmt.Println("🔍 Review Scoring Reference")
	fmt.Println("===========================")
	fmt.Println()

	fmt.Println("🧩 COMPLEXITY: How hard a change is to review, in [0.1, 10.0]")
	fmt.Println("   Formula: Score = 0.30*files + 0.50*log10(total_lines) + 0.30*deletion_ratio")
	fmt.Println("   Penalties: +(total_lines-500)/1000 above 500 lines, +0.1 per file above 5 files")
	fmt.Println("   Labels: Heavy >= 5, Moderate >= 2.5, Light >= 1, Trivial below")
	fmt.Println("   Fallback: 1.0 (estimated) when diff data could not be fetched")
	fmt.Println()

	fmt.Println("⚖️  WORKLOAD: Current review load per engineer")
	fmt.Println("   Formula: Score = 2.0*reviewing + 1.0*open_authored + 0.5*draft_authored")
	fmt.Println("            + 0.5*reviewed_complexity + 0.3*authored_complexity")
	fmt.Println("   The suggested next reviewer is the pool member with the lowest score.")
	fmt.Println()

	fmt.Println("💬 FEEDBACK QUALITY: Comment substance, in [20, 100]")
	fmt.Println("   Formula: Score = max(20, 100 - min(sum(pct*severity)/100 * 80, 80))")
	fmt.Println("   A run with no classifiable comments scores a perfect 100.")
	fmt.Println()

	fmt.Println("📚 Comment Categories")
	for _, p := range classify.Patterns {
		fmt.Printf("   %-15s (%s) %s\n", p.Category, p.Severity, p.Description)
		fmt.Printf("   %15s keywords: %s\n", "", strings.Join(p.Keywords, ", "))
	}
	fmt.Println()

	fmt.Println("🔗 Severity Weights")
	fmt.Println("high = 3.0, medium = 2.0, low = 1.0")
	fmt.Println("(weight scales each category's share of the feedback penalty)")

	return nil
}
