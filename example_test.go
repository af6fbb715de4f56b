package espigot_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/espigot"
	"github.com/aretw0/espigot/pkg/domain"
)

// ExampleGenerator_Format renders a fixed number of digits.
func ExampleGenerator_Format() {
	gen, err := espigot.New(domain.EngineSeries)
	if err != nil {
		log.Fatal(err)
	}

	s, err := gen.Format(context.Background(), 20)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(s)
	// Output: 2.71828182845904523536
}

// ExampleGenerator_Stream pulls digits lazily and stops after ten.
func ExampleGenerator_Stream() {
	gen, err := espigot.New(domain.EngineCFrac)
	if err != nil {
		log.Fatal(err)
	}

	n := 0
	for d := range gen.Stream(context.Background()) {
		fmt.Print(d)
		n++
		if n == 10 {
			break
		}
	}
	fmt.Println()
	// Output: 2718281828
}

// ExampleRunner shows the wrapped output mode.
func ExampleRunner() {
	gen, _ := espigot.New("")
	r := &espigot.Runner{Output: os.Stdout, Width: 20}
	if err := r.Run(context.Background(), gen, 45); err != nil {
		log.Fatal(err)
	}
	// Output:
	// 2.718281828459045235
	// 36028747135266249775
	// 7247093
}
