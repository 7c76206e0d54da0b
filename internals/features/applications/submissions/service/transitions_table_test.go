package service

import (
	"errors"
	"testing"

	"hallticket_backend/internals/features/applications/submissions/model"
	helper "hallticket_backend/internals/helpers"
)

func TestCheckTransition(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{model.StatusDraft, model.StatusSubmitted, true},
		{model.StatusSubmitted, model.StatusApproved, true},
		{model.StatusSubmitted, model.StatusRejected, true},
		{model.StatusApproved, model.StatusRejected, true},
		{model.StatusRejected, model.StatusApproved, true},
		{model.StatusApproved, model.StatusApproved, true},
		{model.StatusApproved, model.StatusDraft, false},
		{model.StatusApproved, model.StatusSubmitted, false},
		{model.StatusDraft, model.StatusApproved, false},
		{model.StatusRejected, model.StatusDraft, false},
	}
	for _, tc := range cases {
		err := CheckTransition(tc.from, tc.to)
		if tc.ok && err != nil {
			t.Errorf("%s → %s: unexpected error %v", tc.from, tc.to, err)
		}
		if !tc.ok && !errors.Is(err, helper.ErrInvalidTransition) {
			t.Errorf("%s → %s: want ErrInvalidTransition, got %v", tc.from, tc.to, err)
		}
	}
}
