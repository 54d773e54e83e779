package poisson

import (
	"fmt"

	"github.com/aouyang1/go-poisson/pde"
)

func ExamplePoisson_Solve() {
	p, err := New(nil)
	if err != nil {
		panic(err)
	}
	prob, err := GetProblem("harmonic-sin")
	if err != nil {
		panic(err)
	}

	res, err := p.Solve(prob, 2)
	if err != nil {
		panic(err)
	}
	fmt.Printf("unknowns: %d\n", res.Unknowns)
	fmt.Printf("center: %.4f\n", res.Solution[0])
	fmt.Printf("grid l2 error: %.4f\n", res.Scores.GridL2)
	// Output:
	// unknowns: 1
	// center: 0.5000
	// grid l2 error: 0.0507
}

func ExamplePoisson_Study() {
	p, err := New(&Options{Lower: -1, Upper: 1, Method: pde.Auto})
	if err != nil {
		panic(err)
	}
	prob, err := GetProblem("saddle")
	if err != nil {
		panic(err)
	}

	points, err := p.Study(prob, []int{4, 8}, []pde.Method{pde.Gaussian, pde.Cholesky})
	if err != nil {
		panic(err)
	}
	for _, pt := range points {
		fmt.Printf("%s n=%d unknowns=%d exact=%t\n", pt.Method, pt.Partitions, pt.Unknowns, pt.GridL2 < 1e-6)
	}
	// Output:
	// gaussian n=4 unknowns=9 exact=true
	// gaussian n=8 unknowns=49 exact=true
	// cholesky n=4 unknowns=9 exact=true
	// cholesky n=8 unknowns=49 exact=true
}

func ExampleListProblems() {
	for _, name := range ListProblems() {
		fmt.Println(name)
	}
	// Output:
	// constant
	// harmonic-sin
	// saddle
	// single-edge
}
