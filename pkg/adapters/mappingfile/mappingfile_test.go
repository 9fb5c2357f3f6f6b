package mappingfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/claimform/pkg/adapters/mappingfile"
	"github.com/aretw0/claimform/pkg/domain"
	contract "github.com/aretw0/claimform/pkg/ports/tests"
)

var claimMappings = domain.MappingList{
	{ValueKey: "transactionId", XPath: "DWPBody/DWPCATransaction", ProcessingInstruction: "@id"},
	{ValueKey: "carerSurname.label", XPath: "DWPBody/DWPCATransaction/DWPCAClaim/Claimant/Surname/QuestionLabel"},
	{ValueKey: "carerSurname", XPath: "DWPBody/DWPCATransaction/DWPCAClaim/Claimant/Surname/Answer"},
}

const claimLines = `# valueKey, xpath, processingInstruction
transactionId, DWPBody/DWPCATransaction, @id

carerSurname.label, DWPBody/DWPCATransaction/DWPCAClaim/Claimant/Surname/QuestionLabel
carerSurname,       DWPBody/DWPCATransaction/DWPCAClaim/Claimant/Surname/Answer
`

const claimYAML = `claim:
  - value: transactionId
    xpath: DWPBody/DWPCATransaction
    pi: "@id"
  - value: carerSurname.label
    xpath: DWPBody/DWPCATransaction/DWPCAClaim/Claimant/Surname/QuestionLabel
  - value: carerSurname
    xpath: DWPBody/DWPCATransaction/DWPCAClaim/Claimant/Surname/Answer
`

func TestParseLines(t *testing.T) {
	list, err := mappingfile.ParseLines(strings.NewReader(claimLines))
	require.NoError(t, err)
	assert.Equal(t, claimMappings, list)
}

func TestParseLines_WrongColumnCount(t *testing.T) {
	_, err := mappingfile.ParseLines(strings.NewReader("a,b,c,d\n"))
	assert.Error(t, err)

	_, err = mappingfile.ParseLines(strings.NewReader("onlyKey\n"))
	assert.Error(t, err)
}

func TestParseYAML(t *testing.T) {
	lists, err := mappingfile.ParseYAML([]byte(claimYAML))
	require.NoError(t, err)
	assert.Equal(t, claimMappings, lists["claim"])
}

func TestParseYAML_UnknownColumn(t *testing.T) {
	_, err := mappingfile.ParseYAML([]byte("claim:\n  - value: a\n    xpath: A\n    colour: red\n"))
	assert.Error(t, err)
}

func TestLoader_Contract(t *testing.T) {
	t.Run("Lines", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "claim.csv"), []byte(claimLines), 0644))
		contract.MappingLoaderContractTest(t, mappingfile.NewLoader(dir), "claim", claimMappings)
	})

	t.Run("YAML", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "claim.yaml"), []byte(claimYAML), 0644))
		contract.MappingLoaderContractTest(t, mappingfile.NewLoader(dir), "claim", claimMappings)
	})
}
