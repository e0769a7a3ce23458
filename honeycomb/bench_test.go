package honeycomb_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/hydroterra/honeycomb"
)

// BenchmarkBuild measures partitioning the 37-node island fixture.
func BenchmarkBuild(b *testing.B) {
	s := islandShore(b)
	net := islandNetwork(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := honeycomb.Build(context.Background(), s, net); err != nil {
			b.Fatal(err)
		}
	}
}
