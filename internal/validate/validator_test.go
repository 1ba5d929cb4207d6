package validate

import (
	"testing"

	"github.com/ASTHA22/healthcare-doc-processing/constants"
	"github.com/ASTHA22/healthcare-doc-processing/internal/extract"
	"github.com/ASTHA22/healthcare-doc-processing/internal/rules"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	reg, err := rules.LoadDefault()
	if err != nil {
		t.Fatalf("rules.LoadDefault() error = %v", err)
	}
	return NewValidator(reg)
}

func validClaimFields() extract.Fields {
	return extract.Fields{
		"patient_name":    "John Doe",
		"member_id":       "ABC123456",
		"date_of_service": "2023-05-10",
		"amount":          "150.00",
	}
}

func TestValidateCompleteClaim(t *testing.T) {
	v := newValidator(t)

	res := v.Validate(validClaimFields(), constants.InsuranceClaim)
	if !res.IsValid {
		t.Fatalf("IsValid = false, violations: %s", res.Reasons())
	}
	if len(res.MissingFields) != 0 || len(res.FormatErrors) != 0 {
		t.Errorf("valid result carries violations: %+v", res)
	}
}

// Removing any single required field must surface exactly that field.
func TestValidateMissingRequired(t *testing.T) {
	v := newValidator(t)

	for _, required := range []string{"patient_name", "member_id", "date_of_service"} {
		t.Run(required, func(t *testing.T) {
			fields := validClaimFields()
			delete(fields, required)

			res := v.Validate(fields, constants.InsuranceClaim)
			if res.IsValid {
				t.Fatal("IsValid = true, want false")
			}
			if len(res.MissingFields) != 1 || res.MissingFields[0] != required {
				t.Errorf("MissingFields = %v, want [%s]", res.MissingFields, required)
			}
		})
	}
}

func TestValidateFormatErrors(t *testing.T) {
	v := newValidator(t)

	cases := []struct {
		name  string
		field string
		value string
	}{
		{name: "non canonical date", field: "date_of_service", value: "05/10/2023"},
		{name: "unparseable date", field: "date_of_service", value: "2023-13-45"},
		{name: "negative amount", field: "amount", value: "-10.00"},
		{name: "non decimal amount", field: "amount", value: "lots"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := validClaimFields()
			fields[tc.field] = tc.value

			res := v.Validate(fields, constants.InsuranceClaim)
			if res.IsValid {
				t.Fatal("IsValid = true, want false")
			}
			if len(res.FormatErrors) != 1 || res.FormatErrors[0].Field != tc.field {
				t.Errorf("FormatErrors = %+v, want one for %s", res.FormatErrors, tc.field)
			}
		})
	}
}

func TestValidateDoesNotMutateFields(t *testing.T) {
	v := newValidator(t)

	fields := validClaimFields()
	fields["amount"] = "-10.00"
	before := len(fields)

	_ = v.Validate(fields, constants.InsuranceClaim)

	if len(fields) != before {
		t.Errorf("fields length changed: %d -> %d", before, len(fields))
	}
	if fields["amount"] != "-10.00" {
		t.Errorf("fields mutated: amount = %q", fields["amount"])
	}
}

func TestValidatePrescriptionRequired(t *testing.T) {
	v := newValidator(t)

	res := v.Validate(extract.Fields{"patient_name": "Jane Roe"}, constants.Prescription)
	if res.IsValid {
		t.Fatal("IsValid = true, want false")
	}
	want := []string{"dosage", "medication"}
	if len(res.MissingFields) != len(want) {
		t.Fatalf("MissingFields = %v, want %v", res.MissingFields, want)
	}
	for i := range want {
		if res.MissingFields[i] != want[i] {
			t.Errorf("MissingFields = %v, want %v", res.MissingFields, want)
			break
		}
	}
}

func TestUnclassifiable(t *testing.T) {
	res := Unclassifiable()
	if res.IsValid {
		t.Error("Unclassifiable().IsValid = true")
	}
	if len(res.FormatErrors) != 1 || res.FormatErrors[0].Reason != "unclassifiable document" {
		t.Errorf("FormatErrors = %+v", res.FormatErrors)
	}
}

func TestReasons(t *testing.T) {
	res := Result{
		MissingFields: []string{"member_id"},
		FormatErrors:  []FormatError{{Field: "amount", Reason: "negative amount: \"-1.00\""}},
	}
	got := res.Reasons()
	want := `missing member_id; amount: negative amount: "-1.00"`
	if got != want {
		t.Errorf("Reasons() = %q, want %q", got, want)
	}
}
