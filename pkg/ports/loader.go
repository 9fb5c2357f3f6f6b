package ports

import "github.com/aretw0/claimform/pkg/domain"

// MappingLoader defines how the assembler retrieves path mapping lists.
// This allows the mapping source (files, memory) to be decoupled.
type MappingLoader interface {
	// LoadMappings returns the ordered mapping list registered under name.
	LoadMappings(name string) (domain.MappingList, error)
}
