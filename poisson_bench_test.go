package poisson

import (
	"math"
	"os"
	"testing"

	"github.com/aouyang1/go-poisson/pde"
	"github.com/goccy/go-json"
	"github.com/pkg/profile"
)

var benchSolveRes *Results

func benchmarkSolve(b *testing.B, method pde.Method, n int) {
	p, err := New(&Options{Lower: 0, Upper: math.Pi, Method: method})
	if err != nil {
		panic(err)
	}
	prob, err := GetProblem("harmonic-sin")
	if err != nil {
		panic(err)
	}

	b.ResetTimer()
	for b.Loop() {
		benchSolveRes, err = p.Solve(prob, n)
		if err != nil {
			panic(err)
		}
	}
}

func BenchmarkSolveGaussian(b *testing.B) {
	benchmarkSolve(b, pde.Gaussian, 20)
}

func BenchmarkSolveCholesky(b *testing.B) {
	benchmarkSolve(b, pde.Cholesky, 20)
}

func BenchmarkSolveAuto(b *testing.B) {
	benchmarkSolve(b, pde.Auto, 20)
}

func BenchmarkStudy(b *testing.B) {
	p, err := New(nil)
	if err != nil {
		panic(err)
	}
	prob, err := GetProblem("harmonic-sin")
	if err != nil {
		panic(err)
	}

	var points []StudyPoint
	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	for b.Loop() {
		points, err = p.Study(prob, []int{5, 10, 15, 20}, []pde.Method{pde.Gaussian, pde.Cholesky})
		if err != nil {
			panic(err)
		}
	}

	bytes, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile("benchmark_study.json", bytes, 0o644); err != nil {
		panic(err)
	}
}
