package lattice

import "testing"

// BenchmarkBuildAndViterbi mirrors the teacher's BenchmarkAnalyzeSequential
// shape: report allocations and run the full build+decode pipeline b.N times.
func BenchmarkBuildAndViterbi(b *testing.B) {
	d := newTestDict(nil)
	const input = "テストテストテストあいうえお"

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l := Build(d, input)
		l.Viterbi()
	}
}
