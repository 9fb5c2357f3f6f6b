package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/claimform/pkg/adapters/memory"
	"github.com/aretw0/claimform/pkg/domain"
)

func fixedNow() time.Time {
	return time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
}

func TestKind(t *testing.T) {
	assert.Equal(t, []Kind{KindMandatory, KindRegex, KindMaxLength, KindDate, KindEquals}, Kinds())
	assert.Equal(t, "%s.validation.maxlength", KindMaxLength.KeyFormat())
	assert.Equal(t, "Kind(42)", Kind(42).String())

	k, err := ParseKind("date")
	require.NoError(t, err)
	assert.Equal(t, KindDate, k)

	_, err = ParseKind("postcode")
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestNewRule_Conditions(t *testing.T) {
	source := memory.NewMessages(nil)

	tests := []struct {
		name      string
		kind      Kind
		condition string
		wantNil   bool
		wantErr   bool
	}{
		{"Empty condition does not apply", KindMandatory, "  ", true, false},
		{"Mandatory true", KindMandatory, "true", false, false},
		{"Mandatory assignment", KindMandatory, "mandatory=true", false, false},
		{"Mandatory false", KindMandatory, "false", true, false},
		{"Mandatory garbage", KindMandatory, "sometimes", false, true},
		{"Regex quoted", KindRegex, `"[A-Z]+"`, false, false},
		{"Regex invalid", KindRegex, "([", false, true},
		{"MaxLength", KindMaxLength, "35", false, false},
		{"MaxLength not a number", KindMaxLength, "lots", false, true},
		{"Date optional", KindDate, "mandatory=false", false, false},
		{"Date wrong parameter", KindDate, "required=true", false, true},
		{"Date bare flag", KindDate, "true", false, false},
		{"Date garbage", KindDate, "sometimes", false, true},
		{"Equals", KindEquals, "carerEmail", false, false},
		{"Unknown kind", Kind(99), "true", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewRule(tt.kind, "field.validation.x", tt.condition, nil, source)
			if tt.wantErr {
				var cfgErr *domain.ConfigurationError
				assert.ErrorAs(t, err, &cfgErr)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, rule)
			} else {
				assert.NotNil(t, rule)
			}
		})
	}
}

func TestMandatoryRule(t *testing.T) {
	source := memory.NewMessages(map[string]string{
		"carerSurname.label": "Surname",
	})
	rule, err := NewRule(KindMandatory, "carerSurname.validation.mandatory", "true", nil, source)
	require.NoError(t, err)

	t.Run("Present", func(t *testing.T) {
		summary := domain.NewValidationSummary()
		assert.True(t, rule.Validate(summary, "carerSurname", domain.FieldValues{"carerSurname": {"Lovelace"}}, nil))
		assert.False(t, summary.HasFormErrors())
	})

	t.Run("Blank", func(t *testing.T) {
		summary := domain.NewValidationSummary()
		assert.False(t, rule.Validate(summary, "carerSurname", domain.FieldValues{"carerSurname": {"  "}}, nil))
		e, ok := summary.Error("carerSurname")
		require.True(t, ok)
		assert.Equal(t, "Surname", e.DisplayName)
		assert.Equal(t, "Surname - You must complete this section", e.Message)
	})

	t.Run("Falls Back To Existing", func(t *testing.T) {
		summary := domain.NewValidationSummary()
		assert.True(t, rule.Validate(summary, "carerSurname", domain.FieldValues{}, domain.FieldValues{"carerSurname": {"Lovelace"}}))
	})

	t.Run("Date Parts", func(t *testing.T) {
		summary := domain.NewValidationSummary()
		complete := domain.FieldValues{"carerSurname_day": {"1"}, "carerSurname_month": {"2"}, "carerSurname_year": {"1990"}}
		assert.True(t, rule.Validate(summary, "carerSurname", complete, nil))

		partial := domain.FieldValues{"carerSurname_day": {"1"}, "carerSurname_year": {"1990"}}
		assert.False(t, rule.Validate(summary, "carerSurname", partial, nil))
	})
}

func TestRegexRule(t *testing.T) {
	source := memory.NewMessages(map[string]string{
		"postcode.validation.regex.message": "{0} is not a postcode",
	})
	rule, err := NewRule(KindRegex, "postcode.validation.regex", `"[A-Z]{1,2}[0-9][A-Z0-9]? ?[0-9][A-Z]{2}"`, nil, source)
	require.NoError(t, err)

	summary := domain.NewValidationSummary()
	assert.True(t, rule.Validate(summary, "postcode", domain.FieldValues{"postcode": {"SW1A 1AA"}}, nil))
	assert.True(t, rule.Validate(summary, "postcode", domain.FieldValues{"postcode": {""}}, nil), "blank values are left to mandatory")
	assert.False(t, summary.HasFormErrors())

	// Full match only.
	assert.False(t, rule.Validate(summary, "postcode", domain.FieldValues{"postcode": {"xx SW1A 1AA"}}, nil))
	assert.Equal(t, "postcode is not a postcode", summary.ErrorMessage("postcode"))
}

func TestMaxLengthRule(t *testing.T) {
	source := memory.NewMessages(map[string]string{
		"validation.maxlength.message": "{0}: at most {1}",
	})
	rule, err := NewRule(KindMaxLength, "name.validation.maxlength", "5", nil, source)
	require.NoError(t, err)

	summary := domain.NewValidationSummary()
	assert.True(t, rule.Validate(summary, "name", domain.FieldValues{"name": {"Zoë"}}, nil))
	assert.True(t, rule.Validate(summary, "name", domain.FieldValues{"name": {"çaçaç"}}, nil), "counts characters, not bytes")
	assert.False(t, rule.Validate(summary, "name", domain.FieldValues{"name": {"abcdef"}}, nil))
	assert.Equal(t, "name: at most 5", summary.ErrorMessage("name"))
}

func TestDateRule(t *testing.T) {
	source := memory.NewMessages(map[string]string{"dob.label": "Date of birth"})
	params := map[string]string{"lowerlimit": "1900-01-01", "upperlimit": "now()"}
	rule, err := NewRule(KindDate, "dob.validation.date", "mandatory=true", params, source, WithNow(fixedNow))
	require.NoError(t, err)

	parts := func(d, m, y string) domain.FieldValues {
		return domain.FieldValues{"dob_day": {d}, "dob_month": {m}, "dob_year": {y}}
	}

	tests := []struct {
		name    string
		request domain.FieldValues
		want    bool
		message string
	}{
		{"Valid Parts", parts("29", "2", "2000"), true, ""},
		{"Leap Day In Non Leap Year", parts("29", "2", "2001"), false, "Date of birth - Invalid date"},
		{"Partial", parts("12", "", "2000"), false, "Date of birth - Invalid date"},
		{"Not Numeric", parts("x", "1", "2000"), false, "Date of birth - Invalid date"},
		{"Missing", domain.FieldValues{}, false, "Date of birth - You must enter a date"},
		{"Before Lower", parts("31", "12", "1899"), false, "Date of birth - Date must be on or after 1900-01-01"},
		{"After Now", parts("16", "3", "2024"), false, "Date of birth - Date must be on or before 2024-03-15"},
		{"Today", parts("15", "3", "2024"), true, ""},
		{"Single Value", domain.FieldValues{"dob": {"01-02-1980"}}, true, ""},
		{"Single ISO Value", domain.FieldValues{"dob": {"1980-02-01"}}, true, ""},
		{"Single Garbage", domain.FieldValues{"dob": {"yesterday"}}, false, "Date of birth - Invalid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := domain.NewValidationSummary()
			assert.Equal(t, tt.want, rule.Validate(summary, "dob", tt.request, nil))
			assert.Equal(t, tt.message, summary.ErrorMessage("dob"))
		})
	}

	t.Run("Optional", func(t *testing.T) {
		optional, err := NewRule(KindDate, "dob.validation.date", "mandatory=false", nil, source)
		require.NoError(t, err)
		assert.True(t, optional.Validate(domain.NewValidationSummary(), "dob", domain.FieldValues{}, nil))
	})

	t.Run("Bare Flag Is Optional", func(t *testing.T) {
		bare, err := NewRule(KindDate, "dob.validation.date", "true", nil, source)
		require.NoError(t, err)
		assert.False(t, bare.(*DateRule).Mandatory)
		assert.True(t, bare.Validate(domain.NewValidationSummary(), "dob", domain.FieldValues{}, nil))

		summary := domain.NewValidationSummary()
		assert.False(t, bare.Validate(summary, "dob", parts("31", "2", "2000"), nil))
		assert.Equal(t, "Date of birth - Invalid date", summary.ErrorMessage("dob"))
	})

	t.Run("Invalid Limit", func(t *testing.T) {
		_, err := NewRule(KindDate, "dob.validation.date", "mandatory=true", map[string]string{"lowerlimit": "01/01/1900"}, source)
		var cfgErr *domain.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "dob.validation.date.lowerlimit", cfgErr.Key)
	})
}

func TestEqualsRule(t *testing.T) {
	source := memory.NewMessages(map[string]string{"email.label": "Email"})
	rule, err := NewRule(KindEquals, "emailConfirm.validation.equals", "email", nil, source)
	require.NoError(t, err)

	summary := domain.NewValidationSummary()
	same := domain.FieldValues{"email": {"a@b.c"}, "emailConfirm": {"a@b.c"}}
	assert.True(t, rule.Validate(summary, "emailConfirm", same, nil))

	fromSession := domain.FieldValues{"emailConfirm": {"a@b.c"}}
	assert.True(t, rule.Validate(summary, "emailConfirm", fromSession, domain.FieldValues{"email": {"a@b.c"}}))

	different := domain.FieldValues{"email": {"a@b.c"}, "emailConfirm": {"x@b.c"}}
	assert.False(t, rule.Validate(summary, "emailConfirm", different, nil))
	assert.Equal(t, "emailConfirm - Must match Email", summary.ErrorMessage("emailConfirm"))
}

func TestGlobalRegexRule(t *testing.T) {
	rule, err := NewGlobalRegexRule(memory.NewMessages(nil))
	require.NoError(t, err)
	assert.Nil(t, rule)

	rule, err = NewGlobalRegexRule(memory.NewMessages(map[string]string{GlobalRegexKey: `"[^<>]*"`}))
	require.NoError(t, err)
	require.NotNil(t, rule)
	assert.Equal(t, GlobalRegexKey, rule.Key())

	summary := domain.NewValidationSummary()
	assert.False(t, rule.Validate(summary, "any", domain.FieldValues{"any": {"<script>"}}, nil))
	assert.True(t, summary.HasError("any"))
}
