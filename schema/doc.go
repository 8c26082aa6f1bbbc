// Package schema is the I/O boundary for the beltflow solvers: it decodes
// the JSON problem documents consumed by the CLIs into flownet.Problem and
// steady.Plant values, and renders solver results back to their canonical
// JSON shapes.
//
// The solver cores stay pure functions over in-memory structures; every
// format concern — defaulted tolerances, inferred node sets, generated
// edge names, the historical "recipies" spelling, stripped source/sink
// caps — lives here.
//
// Encoding is deterministic: object keys are sorted (encoding/json map
// order), list order comes from the solvers' deterministic iteration, and
// output is 2-space indented. Identical input documents therefore yield
// byte-identical output documents.
package schema
