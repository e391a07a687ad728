// Package addressing renders the "locate this pin" argument of every
// generated forwarding call. The shape of that expression is a swappable
// Strategy, independent of the platform variant: Descriptor passes the
// expander descriptor and a numeric pin, PinTable passes a single entry of a
// unit-by-pin descriptor table.
package addressing
