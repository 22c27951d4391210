package bench

import "testing"

// TestEvalAllNodesGrowWithDepth is a loose non-functional sanity check:
// whatever the search tuning, a deeper pass must never search fewer
// nodes than a shallower one over the same games.
func TestEvalAllNodesGrowWithDepth(t *testing.T) {
	shallow, _ := EvalAll(2)
	deep, _ := EvalAll(3)
	if deep < shallow {
		t.Fatalf("depth 3 searched fewer nodes (%d) than depth 2 (%d)", deep, shallow)
	}
}

func BenchmarkEvalAllDepth3(b *testing.B) {
	for i := 0; i < b.N; i++ {
		EvalAll(3)
	}
}
