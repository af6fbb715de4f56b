/*
Package espigot streams the decimal digits of Euler's number e, exactly and
without limit, using only integer arithmetic.

Two independent spigot engines are available:

  - cfrac (default): a continued-fraction engine that keeps a homographic
    transformation of e's unknown tail and emits a digit only when every
    possible tail agrees on it. It is single-threaded and lazily pulled.
  - series: a Taylor-series engine that advances a growing pool of fractional
    terms in parallel each step and folds their contributions into a digit
    buffer with carry propagation.

Both yield 2, 7, 1, 8, 2, 8, 1, 8, 2, 8, 4, 5, ... and must agree digit for
digit; Verify runs that comparison.

# Usage

	gen, err := espigot.New(domain.EngineCFrac)
	if err != nil {
		log.Fatal(err)
	}

	// Pull digits lazily; stop whenever you like.
	for d := range gen.Stream(ctx) {
		fmt.Print(d)
		if enough() {
			break
		}
	}

	// Or render a fixed precision.
	s, err := gen.Format(ctx, 100) // "2.7182818284..."

	// Or write wrapped output to a stream, tolerating closed pipes.
	err = espigot.NewRunner(os.Stdout).Run(ctx, gen, 10000)

The engines live in pkg/cfrac and pkg/series and can be used directly.
*/
package espigot
