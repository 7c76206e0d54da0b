package memory

import (
	"fmt"
	"sync/atomic"

	subModel "hallticket_backend/internals/features/applications/submissions/model"

	"github.com/google/uuid"
)

var fixtureSeq atomic.Int64

// NewSubmission membuat submission lengkap (semua field wajib terisi) untuk test.
func NewSubmission(category, status, zone string) *subModel.SubmissionModel {
	n := fixtureSeq.Add(1)
	return &subModel.SubmissionModel{
		SubmissionID:       uuid.New(),
		SubmissionUniqueID: fmt.Sprintf("%s%09d", category, n),
		SubmissionCategory: category,
		SubmissionStatus:   status,
		SubmissionPersonal: subModel.PersonalDetails{
			Name:           fmt.Sprintf("Student %d", n),
			FatherName:     "Father",
			DateOfBirth:    "2005-04-12",
			PhoneNumber:    "9876543210",
			WhatsAppNumber: "9876543210",
			Address:        "Main Road, Malappuram",
			PhotoURL:       fmt.Sprintf("https://cdn.test/student-photos/%d-photo.jpg", n),
			MembershipID:   fmt.Sprintf("SKSSF-%d", n),
			PositionHeld:   "Member",
		},
		SubmissionEducation: subModel.EducationDetails{
			InstituteType:          subModel.InstituteDars,
			InstituteName:          "Darul Huda",
			PrincipalOrMudarisName: "Usthad",
			District:               "Malappuram",
			State:                  "Kerala",
			Zone:                   zone,
			PaymentProofURL:        fmt.Sprintf("https://cdn.test/payment-proofs/%d-proof.pdf", n),
		},
	}
}
