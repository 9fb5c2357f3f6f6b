/*
Package ports defines the driven ports (interfaces) for the claim form engine.

These interfaces decouple the rule interpreters from where their configuration
comes from, allowing the engine to work with property files, YAML mapping files,
or in-memory tables in tests.

# Key Interfaces

  - MessageSource: Read-only key/value message resources (field lists, rules, questions).
  - MappingLoader: Responsible for loading ordered path mapping lists by name.
*/
package ports
