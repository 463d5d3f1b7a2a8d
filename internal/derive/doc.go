// Package derive builds a profiled schema from a base schema and an ordered
// list of element constraints.
//
// For each constraint the Engine:
//  1. resolves the constraint path ("Class.feature") against the base schema
//  2. ensures the class exists in the output schema
//  3. appends an independent copy of the resolved feature to it
//  4. layers bounds, slicing, must-support/binding and documentation
//     annotations onto the copy
//
// A constraint that cannot be resolved is skipped and recorded as a
// diagnostic; it never aborts the run and never leaves a partial change in
// the output schema.
//
// # Path addressing
//
// Only the first two path segments are used. "Patient.contact.name" is
// applied to Patient.contact and noted with a path_truncated info
// diagnostic. A feature segment ending in "[x]" falls back to the name
// without the suffix when no exact feature exists.
//
// # Annotations
//
// Each sub-step writes into a single annotation per source namespace,
// located or created on demand:
//
//	slicing        discriminator:<i> = <type>:<path>, rules, ordered, description
//	domain         mustSupport = true, binding.valueSet, binding.strength
//	documentation  documentation
//
// Writes are last-write-wins per key; keys not written are left alone.
package derive
