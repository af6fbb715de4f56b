/*
Package series computes the decimal digits of e by summing its Taylor series
e = Σ 1/k! as a spigot.

Every series term is a Fraction holding its remainder in units of the last
decimal place computed so far. Each step multiplies every remainder by ten,
peels off the integer part as that term's contribution to the new decimal
place, and adds the contributions into a big-endian digit buffer with carry
propagation. Terms are independent, so the per-step extraction fans out over
a worker pool; the carry pass is sequential.

Only one not-yet-significant term is tracked at a time (the pending term). It
joins the pool the first time it contributes a non-zero digit.

Use Compute for a fixed number of digits, or Engine.All for an unbounded
stream of digits that are released as soon as later carries can no longer
change them.
*/
package series
