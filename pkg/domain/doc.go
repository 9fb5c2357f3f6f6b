/*
Package domain contains the core domain models shared by the claim form engine.

It defines the value bags submitted by the form, the validation summary handed
back to the caller, the declarative path mappings used to build the claim XML,
and the error taxonomy. This package is kept pure and free of external
dependencies like I/O or configuration loading.

# Key Entities

  - FieldValues: Request or session values keyed by field name (multi-valued).
  - ClaimValues: The flat value bag consumed by the XML assembler.
  - ValidationSummary: Ordered collection of field errors produced by a validation pass.
  - PathMapping: Binds a logical value key to a location in the output document.
*/
package domain
