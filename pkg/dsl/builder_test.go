package dsl_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/claimform"
	"github.com/aretw0/claimform/pkg/domain"
	"github.com/aretw0/claimform/pkg/dsl"
)

func TestBuilder_Keys(t *testing.T) {
	b := dsl.New()
	b.Form("about-you").
		Field("surname").Label("Last name").Mandatory().MaxLength(35).Regex(`[A-Za-z\- ]+`).
		Field("email").Regex(`[^@]+@[^@]+`).
		Field("emailConfirm").Equals("email").
		Field("dob").Date(true).DateLimits("1900-01-01", "now()").
		Field("hasPartner").
		Field("partnerName").DependsOn("hasPartner", "yes").DependsOn("surname", "Smith").Mandatory().
		Message("mandatory", "{0} - Tell us the name of your partner")
	b.Question("hasPartner.text", "Partner since {0}?", "${cads:dateOffsetFromCurrent('d MMMM yyyy', '-3 months')}")
	b.GlobalRegex(`[^<>]*`)

	messages, err := b.Build()
	require.NoError(t, err)

	tests := []struct {
		key  string
		want string
	}{
		{"about-you.fields", "surname,email,emailConfirm,dob,hasPartner,partnerName"},
		{"surname.label", "Last name"},
		{"surname.validation.mandatory", "true"},
		{"surname.validation.maxlength", "35"},
		{"surname.validation.regex", `"[A-Za-z\- ]+"`},
		{"emailConfirm.validation.equals", "email"},
		{"dob.validation.date", "mandatory=true"},
		{"dob.validation.date.lowerlimit", "1900-01-01"},
		{"dob.validation.date.upperlimit", "now()"},
		{"partnerName.validation.dependency", "hasPartner=yes,&surname=Smith"},
		{"partnerName.validation.mandatory.message", "{0} - Tell us the name of your partner"},
		{"hasPartner.text", "Partner since {0}?"},
		{"hasPartner.text.args", "${cads:dateOffsetFromCurrent('d MMMM yyyy', '-3 months')}"},
		{"global.validation.regex", "[^<>]*"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := messages.Message(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := messages.Message("hasPartner.validation.mandatory")
	assert.False(t, ok)
	assert.Contains(t, b.Keys(), "about-you.fields")
}

func TestBuilder_DrivesEngine(t *testing.T) {
	b := dsl.New()
	b.Form("about-you").
		Field("surname").Label("Last name").Mandatory().
		Field("hasPartner").
		Field("partnerName").Label("Partner's name").DependsOn("hasPartner", "yes").Mandatory().
		Message("mandatory", "{0} - Tell us the name of your partner")

	messages, err := b.Build()
	require.NoError(t, err)

	eng, err := claimform.New(
		claimform.WithMessages(messages),
		claimform.WithClock(func() time.Time { return time.Date(2016, 3, 14, 0, 0, 0, 0, time.UTC) }),
	)
	require.NoError(t, err)

	summary, err := eng.Validate("about-you", domain.FieldValues{"hasPartner": {"yes"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, []domain.FormError{
		{ID: "surname", DisplayName: "Last name", Message: "Last name - You must complete this section"},
		{ID: "partnerName", DisplayName: "Partner's name", Message: "Partner's name - Tell us the name of your partner"},
	}, summary.FormErrors())
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("form without fields", func(t *testing.T) {
		b := dsl.New()
		b.Form("empty")
		_, err := b.Build()

		var cfgErr *domain.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "empty.fields", cfgErr.Key)
		assert.Nil(t, b.Keys())
	})

	t.Run("blank field id", func(t *testing.T) {
		b := dsl.New()
		b.Form("f").Field(" ")
		_, err := b.Build()
		assert.EqualError(t, err, `form "f": blank field id`)
	})

	t.Run("resumed forms and fields", func(t *testing.T) {
		b := dsl.New()
		b.Form("f").Field("a").Mandatory()
		b.Form("f").Field("b")
		b.Form("f").Field("a").MaxLength(3)

		messages, err := b.Build()
		require.NoError(t, err)
		fields, _ := messages.Message("f.fields")
		assert.Equal(t, "a,b", fields)
		max, _ := messages.Message("a.validation.maxlength")
		assert.Equal(t, "3", max)
	})
}
