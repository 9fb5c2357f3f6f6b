package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/claimform/pkg/adapters/memory"
	"github.com/aretw0/claimform/pkg/domain"
	contract "github.com/aretw0/claimform/pkg/ports/tests"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	list := domain.MappingList{
		{ValueKey: "transactionId", XPath: "DWPBody/DWPCATransaction", ProcessingInstruction: "@id"},
		{ValueKey: "carerSurname", XPath: "DWPBody/DWPCATransaction/DWPCAClaim/Claimant/Surname"},
	}

	loader := memory.NewLoader(map[string]domain.MappingList{"claim": list})

	contract.MappingLoaderContractTest(t, loader, "claim", list)
}

func TestInMemoryLoader_ReturnsCopies(t *testing.T) {
	loader := memory.NewLoader(map[string]domain.MappingList{
		"claim": {{ValueKey: "a", XPath: "A"}},
	})

	first, err := loader.LoadMappings("claim")
	require.NoError(t, err)
	first[0].XPath = "Mutated"

	second, err := loader.LoadMappings("claim")
	require.NoError(t, err)
	assert.Equal(t, "A", second[0].XPath)
	assert.Equal(t, []string{"claim"}, loader.Names())
}

func TestInMemoryMessages_Contract(t *testing.T) {
	data := map[string]string{
		"about-you.fields":                 "carerTitle, carerSurname",
		"carerSurname.validation.mandatory": "true",
		"carerSurname.label":               "Last name",
	}

	messages := memory.NewMessages(data)

	contract.MessageSourceContractTest(t, messages, data)
	assert.Equal(t, 3, messages.Len())
}
