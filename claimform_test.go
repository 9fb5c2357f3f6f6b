package claimform_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/claimform"
	"github.com/aretw0/claimform/internal/testutils"
	"github.com/aretw0/claimform/pkg/adapters/memory"
	"github.com/aretw0/claimform/pkg/domain"
	"github.com/aretw0/claimform/pkg/observability"
)

func newEngine(t *testing.T, opts ...claimform.Option) *claimform.Engine {
	t.Helper()
	messages := memory.NewMessages(map[string]string{
		"about-you.fields":                  "surname,hasPartner,partnerName",
		"surname.label":                     "Last name",
		"surname.validation.mandatory":      "true",
		"partnerName.validation.dependency": "hasPartner=yes",
		"partnerName.validation.mandatory":  "true",
		"validation.mandatory.message":      "{0} is required",
		"hasPartner.label":                  "Is {0} your partner?",
		"hasPartner.label.args":             "${partnerName}",
	})
	mappings := memory.NewLoader(map[string]domain.MappingList{
		"claim": {
			{ValueKey: "surname", XPath: "Claimant/Surname"},
			{ValueKey: "hasPartner.label", XPath: "Claimant/Partner/QuestionLabel"},
			{ValueKey: "hasPartner", XPath: "Claimant/Partner/Answer"},
		},
	})

	base := []claimform.Option{
		claimform.WithMessages(messages),
		claimform.WithMappingLoader(mappings),
		claimform.WithClock(testutils.Clock(2016, time.March, 14)),
		claimform.WithNamespaces(nil),
	}
	eng, err := claimform.New(append(base, opts...)...)
	require.NoError(t, err)
	return eng
}

func TestEngine_Validate(t *testing.T) {
	eng := newEngine(t)

	tests := []struct {
		name     string
		request  domain.FieldValues
		existing domain.FieldValues
		wantIDs  []string
	}{
		{
			name:    "fold-out closed",
			request: domain.FieldValues{"hasPartner": {"no"}},
			wantIDs: []string{"surname"},
		},
		{
			name:    "fold-out open",
			request: domain.FieldValues{"surname": {"Smith"}, "hasPartner": {"yes"}},
			wantIDs: []string{"partnerName"},
		},
		{
			name:     "existing values fill the gaps",
			request:  domain.FieldValues{"hasPartner": {"yes"}},
			existing: domain.FieldValues{"surname": {"Smith"}, "partnerName": {"Jo"}},
			wantIDs:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := eng.Validate("about-you", tt.request, tt.existing)
			require.NoError(t, err)

			var ids []string
			for _, e := range summary.FormErrors() {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	summary, err := eng.Validate("about-you", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Last name is required", summary.ErrorMessage("surname"))
}

func TestEngine_FormIsCached(t *testing.T) {
	eng := newEngine(t)

	first, err := eng.Form("about-you")
	require.NoError(t, err)
	second, err := eng.Form("about-you")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestEngine_UnknownForm(t *testing.T) {
	eng := newEngine(t)

	_, err := eng.Validate("missing", nil, nil)
	require.Error(t, err)

	var cfgErr *domain.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.ErrorIs(t, err, domain.ErrMessageNotFound)
}

func TestEngine_Assemble(t *testing.T) {
	eng := newEngine(t)

	doc, err := eng.Assemble(domain.ClaimValues{
		"surname":     "Smith",
		"hasPartner":  "yes",
		"partnerName": "Jo",
	}, "claim")
	require.NoError(t, err)

	out, err := doc.Render(false, false)
	require.NoError(t, err)
	assert.Equal(t,
		"<DWPBody><Claimant><Surname>Smith</Surname><Partner><QuestionLabel>Is Jo your partner?</QuestionLabel><Answer>Yes</Answer></Partner></Claimant></DWPBody>",
		out)

	_, err = eng.Assemble(nil, "unknown")
	assert.Error(t, err)
}

func TestEngine_AssembleWithoutLoader(t *testing.T) {
	eng, err := claimform.New()
	require.NoError(t, err)

	_, err = eng.Assemble(nil, "claim")
	assert.EqualError(t, err, "no mapping loader configured")
}

func TestEngine_Evaluate(t *testing.T) {
	eng := newEngine(t)

	got, err := eng.Evaluate("${cads:dateOffsetFromCurrent('dd-MM-yyyy', '+1 day')}", nil)
	require.NoError(t, err)
	assert.Equal(t, "15-03-2016", got)

	got, err = eng.Evaluate("${partnerName}", domain.ClaimValues{"partnerName": "Jo"})
	require.NoError(t, err)
	assert.Equal(t, "Jo", got)
}

func TestEngine_InvalidRootTag(t *testing.T) {
	_, err := claimform.New(claimform.WithRootTag("1bad"))
	assert.Error(t, err)
}

func TestEngine_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	eng := newEngine(t, claimform.WithMetrics(observability.NewMetrics(reg)))

	_, err := eng.Validate("about-you", nil, nil)
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "claimform_validation_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
