/*
Package cfrac streams the decimal digits of e from its continued fraction.

e = [2; 1, 2, 1, 1, 4, 1, 1, 6, ...]. The engine keeps a homographic
transformation x ↦ (Q·x + R) / (S·x + T) that maps the unknown tail of the
continued fraction onto the part of e not yet emitted. A digit is emitted only
when every possible tail maps to the same integer part; otherwise the next
partial quotient is absorbed and the transformation refined.

# Usage

	eng := cfrac.New()
	for d := range eng.All() {
		fmt.Print(d)
		if done() {
			break
		}
	}

An Engine is a single-threaded state machine. Independent engines share no
state and may run in parallel.
*/
package cfrac
