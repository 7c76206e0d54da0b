package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"hallticket_backend/internals/features/applications/submissions/model"
	helper "hallticket_backend/internals/helpers"
)

func strPtr(s string) *string { return &s }

func validRequest() CreateSubmissionRequest {
	return CreateSubmissionRequest{
		SubmissionCategory: " ecc ",
		SubmissionPersonal: model.PersonalDetails{
			Name: " Ali ", FatherName: "Hassan", DateOfBirth: "2005-01-01",
			PhoneNumber: "9000000000", WhatsAppNumber: "9000000000", Address: "Kerala",
			PhotoURL: "https://cdn.test/p.jpg", MembershipID: "M-1", PositionHeld: "Member",
		},
		SubmissionEducation: model.EducationDetails{
			InstituteType: "Arabic College", InstituteName: "Darul Huda",
			PrincipalOrMudarisName: "Usthad", District: "Malappuram", State: "Kerala",
			Zone: "North", PaymentProofURL: "https://cdn.test/x.pdf",
		},
	}
}

func TestCreateSubmissionRequestValid(t *testing.T) {
	req := validRequest()
	req.Normalize()
	if err := req.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if req.SubmissionCategory != "ECC" || req.SubmissionPersonal.Name != "Ali" {
		t.Fatalf("normalize failed: %+v", req)
	}
	m := req.ToModel()
	if m.SubmissionStatus != model.StatusSubmitted {
		t.Fatalf("status = %s", m.SubmissionStatus)
	}
}

func TestCreateSubmissionRequestFieldErrors(t *testing.T) {
	req := validRequest()
	req.SubmissionCategory = "XYZ"
	req.SubmissionPersonal.Name = "   "
	req.SubmissionEducation.InstituteType = "School"
	req.SubmissionUniqueID = "bad id!"
	req.Normalize()

	err := req.Validate()
	ve, ok := helper.AsValidationErrors(err)
	if !ok {
		t.Fatalf("want validation errors, got %v", err)
	}
	fields := helper.ValidationFields(ve)
	want := map[string]string{
		"submission_category":                 "oneof",
		"submission_personal.name":            "required",
		"submission_education.institute_type": "oneof",
		"submission_unique_id":                "alphanum",
	}
	for k, tag := range want {
		if fields[k] != tag {
			t.Errorf("field %s: got %q want %q (all: %v)", k, fields[k], tag, fields)
		}
	}
}

func TestUpdateSubmissionRequestToCommand(t *testing.T) {
	personal := validRequest().SubmissionPersonal

	t.Run("legacy status body", func(t *testing.T) {
		r := UpdateSubmissionRequest{Status: strPtr(" Approved ")}
		cmd, err := r.ToCommand()
		if err != nil {
			t.Fatal(err)
		}
		ss, ok := cmd.(SetStatus)
		if !ok || ss.Status != model.StatusApproved {
			t.Fatalf("got %#v", cmd)
		}
	})

	t.Run("replace fields", func(t *testing.T) {
		r := UpdateSubmissionRequest{Op: OpReplaceFields, SubmissionPersonal: &personal}
		cmd, err := r.ToCommand()
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := cmd.(ReplaceFields); !ok {
			t.Fatalf("got %#v", cmd)
		}
	})

	invalid := map[string]UpdateSubmissionRequest{
		"mixed":           {Status: strPtr("approved"), SubmissionPersonal: &personal},
		"empty":           {},
		"unknown op":      {Op: "merge", Status: strPtr("approved")},
		"set without one": {Op: OpSetStatus},
		"replace no body": {Op: OpReplaceFields},
	}
	for name, r := range invalid {
		t.Run(name, func(t *testing.T) {
			if _, err := r.ToCommand(); !errors.Is(err, helper.ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
		})
	}

	t.Run("bad status value", func(t *testing.T) {
		r := UpdateSubmissionRequest{Status: strPtr("archived")}
		_, err := r.ToCommand()
		if _, ok := helper.AsValidationErrors(err); !ok {
			t.Fatalf("want validation error, got %v", err)
		}
	})
}

func TestCreateSubmissionRequestCamelCase(t *testing.T) {
	body := `{
		"uniqueId": "ECC123456789",
		"category": "tcc",
		"personalDetails": {
			"name": "Ali", "fatherName": "Hassan", "dateOfBirth": "2005-01-01",
			"phoneNumber": "9000000000", "whatsappNumber": "9000000001", "address": "Kerala",
			"photoUrl": "https://cdn.test/p.jpg", "skssflMembershipId": "M-7", "positionHeld": "Member"
		},
		"educationDetails": {
			"instituteType": "Dars", "instituteName": "Darul Huda", "principalOrMudarisName": "Usthad",
			"district": "Malappuram", "state": "Kerala", "zone": "South",
			"paymentProofUrl": "https://cdn.test/x.pdf"
		}
	}`
	var req CreateSubmissionRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatal(err)
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	m := req.ToModel()
	if m.SubmissionUniqueID != "ECC123456789" || m.SubmissionCategory != "TCC" {
		t.Fatalf("top level = %q %q", m.SubmissionUniqueID, m.SubmissionCategory)
	}
	if m.SubmissionPersonal.WhatsAppNumber != "9000000001" || m.SubmissionPersonal.MembershipID != "M-7" {
		t.Fatalf("personal = %+v", m.SubmissionPersonal)
	}
	if m.SubmissionEducation.PrincipalOrMudarisName != "Usthad" || m.SubmissionEducation.Zone != "South" {
		t.Fatalf("education = %+v", m.SubmissionEducation)
	}
}

func TestCreateSubmissionRequestSnakeCaseWins(t *testing.T) {
	req := validRequest()
	req.CategoryCamel = "TCC"
	req.PersonalCamel = &PersonalDetailsCamel{Name: "Other"}
	req.Normalize()
	if req.SubmissionCategory != "ECC" || req.SubmissionPersonal.Name != "Ali" {
		t.Fatalf("snake_case overwritten: %+v", req)
	}
	if req.PersonalCamel != nil || req.CategoryCamel != "" {
		t.Fatal("aliases must be cleared after merge")
	}
}
